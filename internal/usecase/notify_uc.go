package usecase

import (
	"context"

	"telegram-appointment-monitor/internal/domain/ports/adapter"
	"telegram-appointment-monitor/internal/infra/logging"
	"telegram-appointment-monitor/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ AlertNotifierUseCase = (*notifyUC)(nil)

// AlertNotifierUseCase delivers one message to every operator chat
// through the bot port. Swapping the port (real bot, noop bot) swaps
// the delivery mechanism without touching callers.
type AlertNotifierUseCase interface {
	Broadcast(ctx context.Context, text string) error
}

type notifyUC struct {
	bot     adapter.TelegramBotAdapter
	chatIDs []int64
	log     *zerolog.Logger
}

func NewAlertNotifierUseCase(bot adapter.TelegramBotAdapter, chatIDs []int64, logger *zerolog.Logger) *notifyUC {
	return &notifyUC{bot: bot, chatIDs: chatIDs, log: logger}
}

// Broadcast sends text to every operator chat. A failed chat does not
// block delivery to the rest; the first error is returned after all
// chats have been attempted.
func (u *notifyUC) Broadcast(ctx context.Context, text string) error {
	defer logging.TraceDuration(u.log, "NotifyUC.Broadcast")()

	var firstErr error
	for _, chatID := range u.chatIDs {
		if err := u.bot.SendMessage(ctx, chatID, text); err != nil {
			metrics.IncAlertSendFailure()
			u.log.Error().Err(err).Int64("chat_id", chatID).Msg("alert send failed")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		metrics.IncAlertSent()
	}
	return firstErr
}
