package telegram

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"
	"unicode/utf8"

	"github.com/sandevgo/saya/pkg/conv"
	"github.com/sandevgo/saya/pkg/log"
	"github.com/sandevgo/saya/pkg/retry"
	tele "gopkg.in/telebot.v3"
)

const maxTelegramMsgLen = 4000 // Safety margin below 4096

// messageSender is the part of *tele.Bot used for replies.
type messageSender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type sender struct {
	api     messageSender
	retrier *retry.Retrier
}

func newSender(api messageSender, retrier *retry.Retrier) *sender {
	return &sender{api: api, retrier: retrier}
}

// sendMarkdown converts Markdown to Telegram HTML and sends it in chunks if needed.
// A chunk Telegram refuses to parse is resent as plain text.
func (s *sender) sendMarkdown(ctx context.Context, to tele.Recipient, md string) error {
	logger := log.FromCtx(ctx)
	html := strings.TrimSpace(conv.MarkdownToTelegramHTML([]byte(md)))
	if html == "" {
		html = md
	}

	for i, chunk := range splitHTML(html, maxTelegramMsgLen) {
		err := s.send(ctx, to, chunk, tele.ModeHTML)
		if err != nil && isParseError(err) {
			logger.Warn().Err(err).Int("chunk", i).Msg("telegram rejected html, sending plain text")
			var text string
			if text, err = conv.HTMLToText(chunk); err == nil {
				err = s.send(ctx, to, text)
			}
		}
		if err != nil {
			logger.Error().Err(err).Int("chunk", i).Int("len", len(chunk)).Msg("failed to send telegram chunk")
			return err
		}
	}
	return nil
}

// sendText sends text as is, without parse mode.
func (s *sender) sendText(ctx context.Context, to tele.Recipient, text string) error {
	return s.send(ctx, to, text)
}

func (s *sender) send(ctx context.Context, to tele.Recipient, text string, opts ...interface{}) error {
	return s.retrier.Do(ctx, func() error {
		_, err := s.api.Send(to, text, opts...)
		if err != nil && !isTransient(err) {
			return retry.Permanent(err)
		}
		return err
	})
}

// isTransient reports whether a send should be retried: flood control,
// Telegram server errors and failures before the request left, such as DNS
// lookups and refused dials. Read timeouts are final; Telegram may already
// have delivered the message.
func isTransient(err error) bool {
	var flood *tele.FloodError
	if errors.As(err, &flood) {
		return true
	}
	var apiErr *tele.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code >= 500
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Op == "dial"
	}
	return errors.Is(err, syscall.ECONNREFUSED)
}

func isParseError(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "can't parse entities")
}

// splitHTML splits text into chunks respecting Telegram's limit.
// It tries to split at newlines and never splits a UTF-8 sequence.
func splitHTML(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var chunks []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			chunks = append(chunks, text)
			break
		}

		cut := maxLen
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		// Prefer a newline in the last two thirds of the chunk
		if idx := strings.LastIndex(text[:cut], "\n"); idx > maxLen/3 {
			cut = idx
		}

		chunks = append(chunks, text[:cut])
		text = strings.TrimSpace(text[cut:])
	}
	return chunks
}
