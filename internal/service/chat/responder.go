package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/saya/internal/core"
	"github.com/sandevgo/saya/pkg/log"
)

const (
	StageContext  = "context"
	StageGenerate = "generate"
)

type ContextBuilder interface {
	Build(ctx context.Context, userID int64, name string) (string, error)
}

type MemoryWriter interface {
	SaveMemory(ctx context.Context, userID int64, text string) error
}

type Responder struct {
	builder ContextBuilder
	gen     core.Generator
	repo    MemoryWriter
}

func NewResponder(builder ContextBuilder, gen core.Generator, repo MemoryWriter) *Responder {
	return &Responder{
		builder: builder,
		gen:     gen,
		repo:    repo,
	}
}

// Respond produces the reply to one incoming message. Generation failures
// are reported inside Reply and leave the store untouched. The returned
// error is set only when a reply was generated but could not be stored.
func (r *Responder) Respond(ctx context.Context, userID int64, name, message string) (Reply, error) {
	logger := log.FromCtx(ctx)

	base, err := r.builder.Build(ctx, userID, name)
	if err != nil {
		return r.fail(ctx, StageContext, err), nil
	}

	text, err := r.gen.Generate(ctx, Prompt(base, message))
	if err != nil {
		return r.fail(ctx, StageGenerate, err), nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return r.fail(ctx, StageGenerate, ErrEmptyReply), nil
	}

	if err := r.repo.SaveMemory(ctx, userID, core.FormatMemory(message, text)); err != nil {
		return Reply{Text: text}, fmt.Errorf("failed to save memory: %w", err)
	}

	logger.Debug().Int64("user_id", userID).Int("reply_len", len(text)).Msg("reply generated")
	return Reply{Text: text}, nil
}

func (r *Responder) fail(ctx context.Context, stage string, err error) Reply {
	genErr := &GenerationError{Stage: stage, Err: err}
	log.FromCtx(ctx).Error().Err(err).Str("stage", stage).Msg("failed to generate reply")
	return Reply{Text: core.ApologyMessage, Err: genErr}
}

// Prompt appends the new message and the reply instruction to a context.
func Prompt(base, message string) string {
	return fmt.Sprintf("%s\n\n%s %s\n\n%s", base, core.NewMessageLabel, message, core.ReplyInstruction)
}
