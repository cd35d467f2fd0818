package telegram

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"telegram-appointment-monitor/internal/domain/ports/adapter"
)

var _ adapter.TelegramBotAdapter = (*NoopBotAdapter)(nil)

// NoopBotAdapter implements adapter.TelegramBotAdapter for local/dev
// runs. It logs outbound messages instead of sending them.
type NoopBotAdapter struct {
	log *zerolog.Logger
}

func NewNoopBotAdapter(logger *zerolog.Logger) *NoopBotAdapter {
	return &NoopBotAdapter{log: logger}
}

// SendMessage logs the message and simulates a small send delay.
func (b *NoopBotAdapter) SendMessage(ctx context.Context, chatID int64, text string) error {
	select {
	case <-time.After(100 * time.Millisecond):
	case <-ctx.Done():
		return ctx.Err()
	}
	b.log.Info().Int64("chat_id", chatID).Str("text", text).Msg("[noop-telegram] send")
	return nil
}

// SetMenuCommands logs the call and does nothing.
func (b *NoopBotAdapter) SetMenuCommands(ctx context.Context) error {
	b.log.Info().Msg("[noop-telegram] SetMenuCommands")
	return nil
}
