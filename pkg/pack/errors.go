package pack

import "fmt"

// Common discovery errors.
var (
	// ErrDuplicatePack is returned when two candidate directories normalize
	// to the same pack name.
	ErrDuplicatePack = fmt.Errorf("duplicate pack name")

	// ErrPacksDirMissing is returned when the configured packs directory
	// does not exist.
	ErrPacksDirMissing = fmt.Errorf("packs directory does not exist")
)
