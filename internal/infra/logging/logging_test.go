//go:build !integration

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRedact(t *testing.T) {
	t.Run("dev mode keeps the value", func(t *testing.T) {
		if got := Redact("123456:ABCDEF", true); got != "123456:ABCDEF" {
			t.Errorf("expected verbatim value in dev, got %q", got)
		}
	})

	t.Run("short secrets are fully masked", func(t *testing.T) {
		for _, in := range []string{"", "abc", "12345678"} {
			if got := Redact(in, false); got != "***" {
				t.Errorf("expected full mask for %q, got %q", in, got)
			}
		}
	})

	t.Run("long secrets keep only a preview", func(t *testing.T) {
		got := Redact("123456:ABCDEF", false)
		if got != "1234...EF" {
			t.Errorf("expected preview form, got %q", got)
		}
		if strings.Contains(got, "56:ABCD") {
			t.Errorf("middle of the secret leaked: %q", got)
		}
	})
}

func TestWithContextFields(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	ctx := WithTraceID(context.Background(), "trace-1")
	ctx = WithChatID(ctx, 42)
	ctx = WithChannel(ctx, "Visasoon")
	ctx = WithMsgID(ctx, 4217)

	With(ctx, &base).Info().Msg("event")

	out := buf.String()
	for _, want := range []string{
		`"trace_id":"trace-1"`,
		`"chat_id":42`,
		`"channel":"Visasoon"`,
		`"message_id":4217`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log line missing %s: %s", want, out)
		}
	}
}
