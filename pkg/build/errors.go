package build

import "fmt"

// Static errors for the build pipeline.
var (
	// ErrValidationFailed indicates a pack failed its validation hooks.
	ErrValidationFailed = fmt.Errorf("pack validation failed")
	// ErrWarningsRejected indicates validation produced warnings and the
	// configuration does not allow them.
	ErrWarningsRejected = fmt.Errorf("validation warnings not allowed")
	// ErrBuildFailed indicates at least one pack in a multi-pack build
	// failed.
	ErrBuildFailed = fmt.Errorf("one or more packs failed to build")
)
