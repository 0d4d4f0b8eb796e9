package mock

import (
	"context"
	"errors"
	"sync"
)

// ErrGeneratorUnreachable is returned by Ping while the generator is down.
var ErrGeneratorUnreachable = errors.New("generator unreachable")

// Generator is a scripted text generation service.
type Generator struct {
	mu      sync.Mutex
	text    string
	down    bool
	prompts []string
}

// NewGenerator creates a reachable generator answering with a fixed text.
func NewGenerator() *Generator {
	return &Generator{text: "Great month overall."}
}

// Reset restores the default behavior and forgets recorded prompts.
func (g *Generator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.text = "Great month overall."
	g.down = false
	g.prompts = nil
}

// RespondWith sets the generated text.
func (g *Generator) RespondWith(text string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.text = text
}

// SetDown toggles reachability.
func (g *Generator) SetDown(down bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.down = down
}

// Prompts returns the prompts received so far.
func (g *Generator) Prompts() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.prompts...)
}

// Ping fails while the generator is down.
func (g *Generator) Ping(context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.down {
		return ErrGeneratorUnreachable
	}
	return nil
}

// Generate records the prompt and returns the scripted text.
func (g *Generator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.down {
		return "", ErrGeneratorUnreachable
	}
	g.prompts = append(g.prompts, prompt)
	return g.text, nil
}

// IsAvailable always reports a configured service.
func (g *Generator) IsAvailable() bool {
	return true
}
