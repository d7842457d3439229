package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/saya/internal/core"
	"github.com/sandevgo/saya/internal/service/chat"
	"github.com/sandevgo/saya/pkg/log"
	"github.com/sandevgo/saya/pkg/retry"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type Responder interface {
	Respond(ctx context.Context, userID int64, name, message string) (chat.Reply, error)
}

type Bot struct {
	bot       *tele.Bot
	sender    *sender
	responder Responder
	notify    func(c tele.Context)
	ownerID   int64
	ownerName string
}

func NewBot(
	ctx context.Context,
	cfg core.TelegramConfig,
	responder Responder,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.GetTelegramToken(),
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	return newBot(ctx, pref, cfg, responder)
}

func newBot(
	ctx context.Context,
	pref tele.Settings,
	cfg core.TelegramConfig,
	responder Responder,
) (*Bot, error) {
	// One update at a time, each handled to completion
	pref.Synchronous = true
	if pref.OnError == nil {
		pref.OnError = func(err error, c tele.Context) {
			logCtx := ctx
			if c != nil {
				if v, ok := c.Get(baseContextKey).(context.Context); ok {
					logCtx = v
				}
			}
			log.FromCtx(logCtx).Error().Err(err).Msg("telegram handler failed")
		}
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:       b,
		sender:    newSender(b, retry.NewDefaultRetrier()),
		responder: responder,
		notify:    func(c tele.Context) { _ = c.Notify(tele.Typing) },
		ownerID:   cfg.GetOwnerID(),
		ownerName: cfg.GetOwnerName(),
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Use(bot.withRequestLogger)

	b.Handle("/start", bot.handleStart)
	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	// Skip the backlog that piled up while the bot was down
	if err := b.bot.RemoveWebhook(true); err != nil {
		logger.Warn().Err(err).Msg("failed to drop pending updates")
	}

	logger.Info().Str("bot", b.bot.Me.Username).Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("stopping telegram bot")
	b.bot.Stop()
	return nil
}

// withRequestLogger attaches a per-update logger to the base context.
func (b *Bot) withRequestLogger(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := c.Get(baseContextKey).(context.Context)
		fields := map[string]any{
			"request_id": uuid.NewString(),
			"update_id":  c.Update().ID,
		}
		if u := c.Sender(); u != nil {
			fields["user_id"] = u.ID
		}
		c.Set(baseContextKey, log.WithFields(ctx, fields))
		return next(c)
	}
}

func (b *Bot) handleStart(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	user := c.Sender()
	if user == nil {
		return nil
	}

	greeting := b.greeting(user.ID, displayName(user))
	log.FromCtx(ctx).Info().Msg("start command")
	return b.sender.sendText(ctx, c.Recipient(), greeting)
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)

	msg := c.Message()
	user := c.Sender()
	if msg == nil || user == nil || isCommand(msg) {
		return nil
	}

	b.notify(c)

	reply, err := b.responder.Respond(ctx, user.ID, displayName(user), msg.Text)
	if err != nil {
		return fmt.Errorf("respond to %d: %w", user.ID, err)
	}
	if reply.Failed() {
		logger.Warn().Err(reply.Err).Msg("sending apology")
	}

	return b.sender.sendMarkdown(ctx, c.Recipient(), reply.Text)
}

func (b *Bot) greeting(userID int64, name string) string {
	if b.ownerID != 0 && userID == b.ownerID {
		return core.OwnerGreeting(b.ownerName)
	}
	return core.Greeting(name)
}

// displayName is the sender's first name, or the generic fallback when
// Telegram gives none.
func displayName(u *tele.User) string {
	if u == nil {
		return core.FallbackUserName
	}
	if name := strings.TrimSpace(u.FirstName); name != "" {
		return name
	}
	return core.FallbackUserName
}

// isCommand reports whether the message starts with a bot command entity.
// Unregistered commands still reach OnText in telebot.
func isCommand(m *tele.Message) bool {
	for _, e := range m.Entities {
		if e.Type == tele.EntityCommand && e.Offset == 0 {
			return true
		}
	}
	return false
}
