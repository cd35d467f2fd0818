package adapter

import "context"

// TelegramBotAdapter is the outbound port used to reach the operator.
type TelegramBotAdapter interface {
	// SendMessage delivers a plain text message to a chat.
	SendMessage(ctx context.Context, chatID int64, text string) error
	// SetMenuCommands registers the bot's command menu with Telegram.
	SetMenuCommands(ctx context.Context) error
}
