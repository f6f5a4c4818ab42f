package version

import "fmt"

// Common version errors.
var (
	// ErrInvalidFormat is returned when a version string is not a canonical
	// MAJOR.MINOR.REVISION triple.
	ErrInvalidFormat = fmt.Errorf("invalid version format (expected MAJOR.MINOR.REVISION)")

	// ErrRegression is returned when a requested version is lower than the
	// current one and no override was given.
	ErrRegression = fmt.Errorf("version regression")

	// ErrInvalidConstraint is returned when a dependency version constraint
	// cannot be parsed.
	ErrInvalidConstraint = fmt.Errorf("invalid version constraint")
)
