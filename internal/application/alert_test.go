//go:build !integration

package application

import (
	"strings"
	"testing"
	"time"

	"telegram-appointment-monitor/internal/domain/model"
)

func TestFormatAlert(t *testing.T) {
	m := model.Match{
		Pattern: model.MustPattern("France · Edinburgh"),
		Message: model.ChannelMessage{
			Channel:   "Visasoon",
			MessageID: 4217,
			Text:      "🇫🇷 France · Edinburgh\nAppointment Date: | 2026-09-03 [09:20]",
			// Non-UTC zone: the alert must render in UTC.
			ReceivedAt: time.Date(2026, 9, 1, 14, 30, 0, 0, time.FixedZone("CEST", 2*60*60)),
		},
	}

	alert := FormatAlert(m)

	for _, want := range []string{
		"🚨 **APPOINTMENT ALERT** 🚨",
		"**Matched Pattern:** France · Edinburgh",
		"**Channel:** @Visasoon",
		"**Received:** 2026-09-01T12:30:00Z",
		m.Message.Text,
		"**Direct Link:** https://t.me/Visasoon/4217",
	} {
		if !strings.Contains(alert, want) {
			t.Errorf("alert missing %q:\n%s", want, alert)
		}
	}
}

func TestFormatCombinedAlert(t *testing.T) {
	msg := model.ChannelMessage{
		Channel:    "Visasoon",
		MessageID:  7,
		Text:       "open slots",
		ReceivedAt: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
	}

	t.Run("single match falls back to the plain alert", func(t *testing.T) {
		matches := []model.Match{{Pattern: model.MustPattern("France · London"), Message: msg}}

		if got, want := FormatCombinedAlert(matches), FormatAlert(matches[0]); got != want {
			t.Errorf("single-match combined alert diverges:\n%s", got)
		}
	})

	t.Run("multiple matches are listed once", func(t *testing.T) {
		matches := []model.Match{
			{Pattern: model.MustPattern("France · London"), Message: msg},
			{Pattern: model.MustPattern("Cyprus · London"), Message: msg},
		}

		alert := FormatCombinedAlert(matches)

		if !strings.Contains(alert, "• France · London") || !strings.Contains(alert, "• Cyprus · London") {
			t.Errorf("combined alert missing a pattern:\n%s", alert)
		}
		if strings.Count(alert, "https://t.me/Visasoon/7") != 1 {
			t.Errorf("combined alert should carry exactly one link:\n%s", alert)
		}
	})

	t.Run("no matches renders empty", func(t *testing.T) {
		if got := FormatCombinedAlert(nil); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}
