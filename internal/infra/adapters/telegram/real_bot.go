package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"telegram-appointment-monitor/internal/config"
	"telegram-appointment-monitor/internal/domain/ports/adapter"
	"telegram-appointment-monitor/internal/infra/metrics"
)

// Ensure interface compliance
var _ adapter.TelegramBotAdapter = (*RealTelegramBotAdapter)(nil)

// RealTelegramBotAdapter wraps the Telegram client behind the outbound
// bot port. Update intake lives in UpdatePoller; every message the
// system sends goes out through here.
type RealTelegramBotAdapter struct {
	bot *tgbotapi.BotAPI
	log *zerolog.Logger
}

func NewRealTelegramBotAdapter(cfg *config.BotConfig, logger *zerolog.Logger) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	return &RealTelegramBotAdapter{bot: bot, log: logger}, nil
}

// SendMessage sends Markdown-formatted text to a chat.
func (r *RealTelegramBotAdapter) SendMessage(ctx context.Context, chatID int64, text string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := r.bot.Send(msg); err != nil {
		metrics.IncTelegramSendFailure()
		return err
	}
	return nil
}

// SetMenuCommands registers the command list with Telegram so the
// operator gets a command menu.
func (r *RealTelegramBotAdapter) SetMenuCommands(ctx context.Context) error {
	cmds := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Configuration summary"},
		tgbotapi.BotCommand{Command: "list", Description: "Show current patterns"},
		tgbotapi.BotCommand{Command: "add", Description: "Add a pattern (Country · City)"},
		tgbotapi.BotCommand{Command: "remove", Description: "Remove a pattern"},
		tgbotapi.BotCommand{Command: "status", Description: "Monitor status"},
	)
	_, err := r.bot.Request(cmds)
	return err
}
