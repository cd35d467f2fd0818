//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"testing"

	"telegram-appointment-monitor/internal/usecase"
)

func TestNotifierBroadcast(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to every operator chat in order", func(t *testing.T) {
		bot := &MockBotAdapter{}
		uc := usecase.NewAlertNotifierUseCase(bot, []int64{1111, 2222}, nopLogger())

		if err := uc.Broadcast(ctx, "slots open"); err != nil {
			t.Fatalf("Broadcast: %v", err)
		}
		if len(bot.Sent) != 2 {
			t.Fatalf("expected 2 sends, got %d", len(bot.Sent))
		}
		if bot.Sent[0].ChatID != 1111 || bot.Sent[1].ChatID != 2222 {
			t.Errorf("unexpected recipients: %+v", bot.Sent)
		}
		if bot.Sent[0].Text != "slots open" {
			t.Errorf("unexpected text: %q", bot.Sent[0].Text)
		}
	})

	t.Run("one failing chat does not block the rest", func(t *testing.T) {
		bot := &MockBotAdapter{
			SendFunc: func(ctx context.Context, chatID int64, text string) error {
				if chatID == 1111 {
					return errors.New("blocked by user")
				}
				return nil
			},
		}
		uc := usecase.NewAlertNotifierUseCase(bot, []int64{1111, 2222}, nopLogger())

		err := uc.Broadcast(ctx, "slots open")
		if err == nil {
			t.Fatal("expected the failed send to surface")
		}
		if len(bot.Sent) != 1 || bot.Sent[0].ChatID != 2222 {
			t.Fatalf("expected delivery to the remaining chat, got %+v", bot.Sent)
		}
	})

	t.Run("no operator chats is a no-op", func(t *testing.T) {
		bot := &MockBotAdapter{}
		uc := usecase.NewAlertNotifierUseCase(bot, nil, nopLogger())

		if err := uc.Broadcast(ctx, "slots open"); err != nil {
			t.Fatalf("Broadcast: %v", err)
		}
		if len(bot.Sent) != 0 {
			t.Fatalf("expected no sends, got %+v", bot.Sent)
		}
	})
}
