//go:build !integration

package usecase_test

import (
	"context"
	"sync"

	"telegram-appointment-monitor/internal/domain"
	"telegram-appointment-monitor/internal/domain/model"
	"telegram-appointment-monitor/internal/domain/ports/adapter"
	"telegram-appointment-monitor/internal/domain/ports/repository"

	"github.com/rs/zerolog"
)

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// ---- Mock PatternRepository ----

// MockPatternRepo keeps patterns in memory with the same duplicate and
// not-found semantics as the file store. Func fields override behavior
// per test.
type MockPatternRepo struct {
	mu       sync.Mutex
	Patterns []model.Pattern

	AddFunc    func(ctx context.Context, p model.Pattern) error
	RemoveFunc func(ctx context.Context, p model.Pattern) error
	ListFunc   func(ctx context.Context) ([]model.Pattern, error)
	CountFunc  func(ctx context.Context) (int, error)
}

var _ repository.PatternRepository = (*MockPatternRepo)(nil)

func (m *MockPatternRepo) Add(ctx context.Context, p model.Pattern) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.Patterns {
		if existing.Raw == p.Raw {
			return domain.ErrAlreadyExists
		}
	}
	m.Patterns = append(m.Patterns, p)
	return nil
}

func (m *MockPatternRepo) Remove(ctx context.Context, p model.Pattern) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.Patterns {
		if existing.Raw == p.Raw {
			m.Patterns = append(m.Patterns[:i], m.Patterns[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *MockPatternRepo) List(ctx context.Context) ([]model.Pattern, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Pattern(nil), m.Patterns...), nil
}

func (m *MockPatternRepo) Count(ctx context.Context) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Patterns), nil
}

// ---- Mock TelegramBotAdapter ----

type sentMessage struct {
	ChatID int64
	Text   string
}

// MockBotAdapter records outbound messages. SendFunc overrides behavior
// per test.
type MockBotAdapter struct {
	mu   sync.Mutex
	Sent []sentMessage

	SendFunc func(ctx context.Context, chatID int64, text string) error
}

var _ adapter.TelegramBotAdapter = (*MockBotAdapter)(nil)

func (m *MockBotAdapter) SendMessage(ctx context.Context, chatID int64, text string) error {
	if m.SendFunc != nil {
		if err := m.SendFunc(ctx, chatID, text); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, sentMessage{ChatID: chatID, Text: text})
	return nil
}

func (m *MockBotAdapter) SetMenuCommands(ctx context.Context) error { return nil }

func seededRepo(raws ...string) *MockPatternRepo {
	repo := &MockPatternRepo{}
	for _, raw := range raws {
		repo.Patterns = append(repo.Patterns, model.MustPattern(raw))
	}
	return repo
}
