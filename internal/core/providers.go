package core

import "context"

// Generator turns a single prompt into generated text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
