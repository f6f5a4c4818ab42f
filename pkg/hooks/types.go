package hooks

// HookType represents the lifecycle point a script is attached to.
type HookType string

// Supported hook types.
const (
	Validate    HookType = "validate"
	PreBuild    HookType = "pre-build"
	PostBuild   HookType = "post-build"
	PreRelease  HookType = "pre-release"
	PostRelease HookType = "post-release"
)

// Hook represents a hook script with its type and content.
type Hook struct {
	Type    HookType
	Content string
}

// HookContext contains information passed to hook scripts.
type HookContext struct {
	PackName     string
	PackVersion  string
	PackPath     string
	ArtifactPath string
	Vars         map[string]interface{}
}

// Report carries the non-fatal findings a hook script produced.
type Report struct {
	Warnings []string
}
