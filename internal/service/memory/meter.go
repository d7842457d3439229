package memory

import (
	"context"
	"sync/atomic"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sandevgo/saya/pkg/log"
)

const meterEncoding = "cl100k_base"

// TokenMeter estimates prompt size for logging. It never limits the prompt.
type TokenMeter interface {
	Count(text string) int
}

// TiktokenMeter counts cl100k_base tokens. Count never loads the encoding
// itself and reports -1 until Warm has succeeded.
type TiktokenMeter struct {
	tk   atomic.Pointer[tiktoken.Tiktoken]
	load func(encoding string) (*tiktoken.Tiktoken, error)
}

func NewTiktokenMeter() *TiktokenMeter {
	return &TiktokenMeter{load: tiktoken.GetEncoding}
}

// Warm loads the encoding, which may download it on first run. Call it off
// the message path.
func (m *TiktokenMeter) Warm(ctx context.Context) {
	logger := log.FromCtx(ctx)

	tk, err := m.load(meterEncoding)
	if err != nil {
		logger.Warn().Err(err).Str("encoding", meterEncoding).Msg("token meter disabled")
		return
	}
	m.tk.Store(tk)
	logger.Debug().Str("encoding", meterEncoding).Msg("token meter ready")
}

func (m *TiktokenMeter) Count(text string) int {
	tk := m.tk.Load()
	if tk == nil {
		return -1
	}
	return len(tk.Encode(text, nil, nil))
}
