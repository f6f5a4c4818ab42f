// Package hooks executes instance-level Tengo scripts at pack lifecycle
// points. Scripts fail a step by assigning a non-empty string to `err` and
// report non-fatal findings by appending to `warnings`.
package hooks

import (
	"fmt"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// TengoExecutor handles the execution of Tengo hook scripts.
type TengoExecutor struct {
	scripts map[HookType]string
	mutex   sync.RWMutex
}

// NewTengoExecutor creates a new Tengo script executor.
func NewTengoExecutor() *TengoExecutor {
	return &TengoExecutor{
		scripts: make(map[HookType]string),
	}
}

// Execute runs the script registered for the hook type with the given
// context. A missing script is a pass with an empty report.
func (e *TengoExecutor) Execute(hookType HookType, ctx HookContext) (*Report, error) {
	e.mutex.RLock()
	script, exists := e.scripts[hookType]
	e.mutex.RUnlock()

	if !exists {
		return &Report{}, nil
	}
	return e.ExecuteScript(hookType, script, ctx)
}

// ExecuteScript runs an ad-hoc script that is not registered with the
// executor, such as a per-pack override shipped inside a pack directory. The
// hook type only labels errors.
func (e *TengoExecutor) ExecuteScript(hookType HookType, script string, ctx HookContext) (*Report, error) {
	scriptInstance := tengo.NewScript([]byte(script))
	scriptInstance.SetImports(stdlib.GetModuleMap("fmt", "os", "text", "times"))

	bindings := map[string]interface{}{
		"packName":     ctx.PackName,
		"packVersion":  ctx.PackVersion,
		"packPath":     ctx.PackPath,
		"artifactPath": ctx.ArtifactPath,
	}
	for k, v := range ctx.Vars {
		bindings[k] = v
	}
	for k, v := range bindings {
		if err := scriptInstance.Add(k, v); err != nil {
			return nil, fmt.Errorf("failed to add variable %q to script: %w", k, err)
		}
	}

	compiled, err := scriptInstance.Run()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", hookType, ErrHookExecution, err)
	}

	report := &Report{}
	if warnVar := compiled.Get("warnings"); warnVar != nil {
		switch v := warnVar.Value().(type) {
		case []interface{}:
			for _, w := range v {
				if s, ok := w.(string); ok && s != "" {
					report.Warnings = append(report.Warnings, s)
				}
			}
		case string:
			if v != "" {
				report.Warnings = append(report.Warnings, v)
			}
		}
	}

	if errVar := compiled.Get("err"); errVar != nil {
		switch v := errVar.Value().(type) {
		case error:
			return report, fmt.Errorf("%s: %w: %w", hookType, ErrHookScript, v)
		case string:
			if v != "" {
				return report, fmt.Errorf("%s: %w: %s", hookType, ErrHookScript, v)
			}
		}
	}

	return report, nil
}

// AddScript adds or updates a script for the specified hook type.
func (e *TengoExecutor) AddScript(hookType HookType, script string) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.scripts[hookType] = script
}

// RemoveScript removes the script for the specified hook type.
func (e *TengoExecutor) RemoveScript(hookType HookType) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	delete(e.scripts, hookType)
}

// HasScript checks if a script exists for the specified hook type.
func (e *TengoExecutor) HasScript(hookType HookType) bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	_, exists := e.scripts[hookType]
	return exists
}
