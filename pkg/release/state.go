package release

import "github.com/gocortexio/spellbook/pkg/version"

// State identifies where a release transaction currently stands. Each failure
// mode maps to a distinct transition out of one of these states.
type State int

// Transaction states, in transition order.
const (
	StateIdle State = iota
	StateVersionComputed
	StateManifestWritten
	StateStaged
	StateCommitted
	StateTagged
	StateDone
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:            "idle",
	StateVersionComputed: "version-computed",
	StateManifestWritten: "manifest-written",
	StateStaged:          "staged",
	StateCommitted:       "committed",
	StateTagged:          "tagged",
	StateDone:            "done",
	StateFailed:          "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Record is the outcome of a single release transaction. It exists only for
// reporting and rollback decisions within one invocation.
type Record struct {
	Pack       string
	OldVersion version.Version
	NewVersion version.Version
	Commit     string
	Tag        string
}
