// Package errors provides shared error helpers and cross-cutting sentinel
// errors for spellbook. Component-specific errors live in their own packages
// next to the code that raises them.
package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath  = fmt.Errorf("config file path cannot be empty")
	ErrConfigParse      = fmt.Errorf("failed to parse config")
	ErrConfigValidation = fmt.Errorf("invalid configuration")

	// Instance errors.
	ErrInstanceExists = fmt.Errorf("instance already exists")

	// Pack errors.
	ErrPackNotFound = fmt.Errorf("pack not found")
	ErrPackExists   = fmt.Errorf("pack already exists")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
