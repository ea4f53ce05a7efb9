// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

// Symbol constants for CLI output provide a consistent visual language across commands.
const (
	// Success represents a passing check or a completed operation.
	Success = "✓"

	// Error represents a failing check or a failed operation.
	Error = "✗"

	// Warning represents a check that failed with warning severity.
	Warning = "!"

	// Info represents informational messages.
	// Used for: watch notices, skipped checks, tips.
	Info = "i"
)
