package cli

// Build-time version information, overridden via -ldflags on release builds.
const (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// MaxDescriptionLength is the maximum length of a pack description to
// display in listings.
const MaxDescriptionLength = 50
