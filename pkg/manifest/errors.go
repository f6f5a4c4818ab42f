package manifest

import "fmt"

// Common manifest errors.
var (
	// ErrMissing is returned when a pack has no pack_metadata.json.
	ErrMissing = fmt.Errorf("pack manifest not found")

	// ErrMalformed is returned when a pack_metadata.json exists but cannot
	// be parsed into the expected field set.
	ErrMalformed = fmt.Errorf("pack manifest is malformed")
)
