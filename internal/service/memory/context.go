package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/saya/internal/core"
	"github.com/sandevgo/saya/pkg/log"
)

const DefaultHistoryLimit = 10

// Repository is the part of the store the context builder needs.
type Repository interface {
	SaveUserName(ctx context.Context, userID int64, name string) error
	GetMemories(ctx context.Context, userID int64, limit int) ([]string, error)
}

type Owner struct {
	ID   int64
	Name string
}

type ContextBuilder struct {
	repo         Repository
	persona      Persona
	owner        Owner
	historyLimit int
	meter        TokenMeter
}

type Option func(*ContextBuilder)

func WithHistoryLimit(n int) Option {
	return func(b *ContextBuilder) { b.historyLimit = n }
}

func WithTokenMeter(m TokenMeter) Option {
	return func(b *ContextBuilder) { b.meter = m }
}

func NewContextBuilder(repo Repository, persona Persona, owner Owner, opts ...Option) *ContextBuilder {
	b := &ContextBuilder{
		repo:         repo,
		persona:      persona,
		owner:        owner,
		historyLimit: DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// IsOwner reports whether userID is the privileged identity. Zero never is.
func (b *ContextBuilder) IsOwner(userID int64) bool {
	return b.owner.ID != 0 && userID == b.owner.ID
}

// Build stores the display name and returns the conversation context for
// the user. The name is written on every call, reads included.
func (b *ContextBuilder) Build(ctx context.Context, userID int64, name string) (string, error) {
	if err := b.repo.SaveUserName(ctx, userID, name); err != nil {
		return "", fmt.Errorf("save user name: %w", err)
	}

	memories, err := b.repo.GetMemories(ctx, userID, b.historyLimit)
	if err != nil {
		return "", fmt.Errorf("load memories: %w", err)
	}

	prompt := b.render(name, b.IsOwner(userID), memories)

	if b.meter != nil {
		// Counting runs only when the debug line is emitted
		if e := log.FromCtx(ctx).Debug(); e.Enabled() {
			e.Int64("user_id", userID).
				Int("memories", len(memories)).
				Int("prompt_tokens", b.meter.Count(prompt)).
				Msg("context assembled")
		}
	}
	return prompt, nil
}

func (b *ContextBuilder) render(name string, owner bool, memories []string) string {
	history := core.NoHistoryMessage
	if len(memories) > 0 {
		history = strings.Join(memories, "\n")
	}

	var sb strings.Builder
	sb.WriteString("\n")
	if owner {
		sb.WriteString(b.persona.Base)
		sb.WriteString("\n\n")
		sb.WriteString(b.persona.Owner)
		sb.WriteString("\n\n")
		fmt.Fprintf(&sb, "%s سازندت هست و باهاش حرف می‌زنی.\n", b.owner.Name)
		fmt.Fprintf(&sb, "تاریخچه مکالمات قبلی با %s:\n", b.owner.Name)
	} else {
		sb.WriteString(b.persona.Base)
		sb.WriteString("\n\n")
		fmt.Fprintf(&sb, "داری با %s حرف می‌زنی.\n", name)
		fmt.Fprintf(&sb, "تاریخچه مکالمات قبلی با %s:\n", name)
	}
	sb.WriteString(history)
	sb.WriteString("\n")
	return sb.String()
}
