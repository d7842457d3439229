package chat

import (
	"errors"
	"fmt"
)

var ErrEmptyReply = errors.New("empty reply")

// GenerationError marks a failure before a reply existed: while building
// the context or while calling the generation API.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed at %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Reply is what the chat adapter sends back. Text is always safe to send;
// on failure it holds the apology and Err carries the cause.
type Reply struct {
	Text string
	Err  error
}

func (r Reply) Failed() bool {
	return r.Err != nil
}
