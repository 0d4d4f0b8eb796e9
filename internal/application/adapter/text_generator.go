// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// TextGenerator is the external natural-language generation service.
type TextGenerator interface {
	// Ping performs a lightweight reachability check before committing to a
	// generation.
	Ping(ctx context.Context) error

	// Generate sends a free-form prompt and returns the generated text verbatim.
	Generate(ctx context.Context, prompt string) (string, error)

	// IsAvailable reports whether the service is configured at all.
	IsAvailable() bool
}
