package build

//go:generate mockgen -destination=./mocks/build.go -package=mocks . Packager,HookRunner

import (
	"context"

	"github.com/gocortexio/spellbook/pkg/hooks"
	"github.com/gocortexio/spellbook/pkg/pack"
)

// Packager turns a pack directory into a distributable artifact.
type Packager interface {
	Package(ctx context.Context, pk *pack.Pack) (string, error)
}

// HookRunner executes lifecycle hook scripts for a pack.
type HookRunner interface {
	Execute(hookType hooks.HookType, ctx hooks.HookContext) (*hooks.Report, error)
	ExecuteScript(hookType hooks.HookType, script string, ctx hooks.HookContext) (*hooks.Report, error)
}
