package usecase

import (
	"context"
	"fmt"
	"regexp"

	"telegram-appointment-monitor/internal/domain/model"
	"telegram-appointment-monitor/internal/domain/ports/repository"
	"telegram-appointment-monitor/internal/infra/logging"
	"telegram-appointment-monitor/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ MonitorUseCase = (*monitorUC)(nil)

// MonitorUseCase evaluates channel posts against the stored patterns.
type MonitorUseCase interface {
	Scan(ctx context.Context, msg model.ChannelMessage) ([]model.Match, error)
}

type monitorUC struct {
	store repository.PatternRepository
	hint  *regexp.Regexp
	log   *zerolog.Logger
}

// NewMonitorUseCase compiles the appointment hint expression. An empty
// expression disables the pre-filter and every post goes to matching.
func NewMonitorUseCase(store repository.PatternRepository, hintExpr string, logger *zerolog.Logger) (*monitorUC, error) {
	var hint *regexp.Regexp
	if hintExpr != "" {
		re, err := regexp.Compile(hintExpr)
		if err != nil {
			return nil, fmt.Errorf("compile appointment hint: %w", err)
		}
		hint = re
	}
	return &monitorUC{store: store, hint: hint, log: logger}, nil
}

// Scan runs the hint gate, then tests every stored pattern in registry
// order. All matching patterns are returned; a post that fails the gate
// is a non-match, not an error.
func (u *monitorUC) Scan(ctx context.Context, msg model.ChannelMessage) ([]model.Match, error) {
	defer logging.TraceDuration(u.log, "MonitorUC.Scan")()

	metrics.IncChannelPostScanned()

	if u.hint != nil && !u.hint.MatchString(msg.Text) {
		metrics.IncChannelPostSkipped()
		u.log.Debug().
			Str("channel", msg.Channel).
			Int("message_id", msg.MessageID).
			Msg("post failed appointment hint, skipping")
		return nil, nil
	}

	patterns, err := u.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("Scan list patterns: %w", err)
	}

	var matches []model.Match
	for _, p := range patterns {
		if p.Matches(msg.Text) {
			metrics.IncPatternMatch(p.Raw)
			matches = append(matches, model.Match{Pattern: p, Message: msg})
		}
	}
	if len(matches) > 0 {
		u.log.Info().
			Str("channel", msg.Channel).
			Int("message_id", msg.MessageID).
			Int("matches", len(matches)).
			Msg("post matched patterns")
	}
	return matches, nil
}
