//go:build !integration

package web

import (
	"context"

	"telegram-appointment-monitor/internal/domain/model"
)

// mockRegistryUC serves a fixed pattern list; err, when set, is
// returned by every method.
type mockRegistryUC struct {
	patterns []model.Pattern
	err      error
}

func (m *mockRegistryUC) Add(ctx context.Context, raw string) (model.Pattern, error) {
	if m.err != nil {
		return model.Pattern{}, m.err
	}
	p, err := model.NewPattern(raw)
	if err != nil {
		return model.Pattern{}, err
	}
	m.patterns = append(m.patterns, p)
	return p, nil
}

func (m *mockRegistryUC) Remove(ctx context.Context, raw string) (model.Pattern, error) {
	if m.err != nil {
		return model.Pattern{}, m.err
	}
	return model.NewPattern(raw)
}

func (m *mockRegistryUC) List(ctx context.Context) ([]model.Pattern, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]model.Pattern(nil), m.patterns...), nil
}

func (m *mockRegistryUC) Count(ctx context.Context) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return len(m.patterns), nil
}
