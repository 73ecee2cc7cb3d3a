// Package output provides output formatting.
// This package produces human and machine-readable outputs.
package output

import (
	"io"
	"sort"

	"storage-planner/core/engine"
	"storage-planner/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable terminal report
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given result
	Render(w io.Writer, result *engine.Result) error
}

// Registry manages formatter registration
type Registry struct {
	formatters map[Format]Formatter
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[Format]Formatter)}
}

// DefaultRegistry returns a registry with every built-in formatter
func DefaultRegistry(noColor bool) *Registry {
	r := NewRegistry()
	r.Register(NewCLIFormatter(noColor))
	r.Register(NewJSONFormatter())
	r.Register(NewMarkdownFormatter())
	return r
}

// Register adds a formatter, replacing any existing one for its format
func (r *Registry) Register(f Formatter) {
	r.formatters[f.Format()] = f
}

// Get returns the formatter for a format name
func (r *Registry) Get(name string) (Formatter, error) {
	f, ok := r.formatters[Format(name)]
	if !ok {
		return nil, errors.NotFound("output format", name).WithContext("available", r.Formats())
	}
	return f, nil
}

// Formats returns the registered format names, sorted
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.formatters))
	for f := range r.formatters {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}
