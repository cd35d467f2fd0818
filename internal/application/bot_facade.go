package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"telegram-appointment-monitor/internal/domain"
	"telegram-appointment-monitor/internal/domain/model"
	"telegram-appointment-monitor/internal/usecase"

	"github.com/rs/zerolog"
)

// BotFacade composes the registry and monitor usecases into the
// operator-facing command and alert flows. Methods return reply strings
// so the Telegram adapter just forwards them to the chat.
type BotFacade struct {
	registry usecase.PatternRegistryUseCase
	monitor  usecase.MonitorUseCase

	channel       string
	combineAlerts bool
	startedAt     time.Time
	log           *zerolog.Logger
}

func NewBotFacade(
	registry usecase.PatternRegistryUseCase,
	monitor usecase.MonitorUseCase,
	channel string,
	combineAlerts bool,
	logger *zerolog.Logger,
) *BotFacade {
	return &BotFacade{
		registry:      registry,
		monitor:       monitor,
		channel:       channel,
		combineAlerts: combineAlerts,
		startedAt:     time.Now(),
		log:           logger,
	}
}

const (
	usageAdd    = "Usage: `/add Country · City` (also accepts `/add Country, City`)"
	usageRemove = "Usage: `/remove Country · City`"
	replyFailed = "❌ Command failed, please try again."
)

// Dispatch routes a parsed command to its handler and always returns a
// reply. Store failures fold into a failure reply; the loop never sees
// an error from here.
func (b *BotFacade) Dispatch(ctx context.Context, cmd model.Command) string {
	var (
		reply string
		err   error
	)
	switch cmd.Verb {
	case model.VerbStart:
		reply, err = b.HandleStart(ctx)
	case model.VerbList:
		reply, err = b.HandleList(ctx)
	case model.VerbAdd:
		reply, err = b.HandleAdd(ctx, cmd.Arg)
	case model.VerbRemove:
		reply, err = b.HandleRemove(ctx, cmd.Arg)
	case model.VerbStatus:
		reply, err = b.HandleStatus(ctx)
	default:
		reply = b.HandleUnknown()
	}
	if err != nil {
		b.log.Error().Err(err).Str("verb", string(cmd.Verb)).Msg("command handler failed")
		return replyFailed
	}
	return reply
}

// HandleStart returns the configuration summary with the command list
// and the current patterns.
func (b *BotFacade) HandleStart(ctx context.Context) (string, error) {
	patterns, err := b.registry.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list patterns: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("🤖 **Appointment Monitor Bot**\n\n")
	fmt.Fprintf(&sb, "**Monitoring:** @%s\n", b.channel)
	fmt.Fprintf(&sb, "**Active Patterns:** %d\n\n", len(patterns))
	sb.WriteString("**Commands:**\n")
	sb.WriteString("• `/list` - Show current patterns\n")
	sb.WriteString("• `/add Country · City` - Add new pattern\n")
	sb.WriteString("• `/remove Country · City` - Remove pattern\n")
	sb.WriteString("• `/status` - Show monitor status\n\n")
	sb.WriteString("**Current Patterns:**\n")
	for _, p := range patterns {
		fmt.Fprintf(&sb, "• %s\n", p.Raw)
	}
	return sb.String(), nil
}

// HandleList returns the numbered pattern list in registry order.
func (b *BotFacade) HandleList(ctx context.Context) (string, error) {
	patterns, err := b.registry.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list patterns: %w", err)
	}
	if len(patterns) == 0 {
		return "❌ No patterns configured", nil
	}

	var sb strings.Builder
	sb.WriteString("📋 **Current Patterns:**\n\n")
	for i, p := range patterns {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, p.Raw)
	}
	return sb.String(), nil
}

func (b *BotFacade) HandleAdd(ctx context.Context, arg string) (string, error) {
	if strings.TrimSpace(arg) == "" {
		return usageAdd, nil
	}
	p, err := b.registry.Add(ctx, arg)
	switch {
	case err == nil:
		return fmt.Sprintf("✅ Added pattern: `%s`", p.Raw), nil
	case errors.Is(err, domain.ErrAlreadyExists):
		return fmt.Sprintf("❌ Pattern already exists: `%s`", p.Raw), nil
	case errors.Is(err, domain.ErrInvalidArgument):
		return usageAdd, nil
	default:
		return "", err
	}
}

func (b *BotFacade) HandleRemove(ctx context.Context, arg string) (string, error) {
	if strings.TrimSpace(arg) == "" {
		return usageRemove, nil
	}
	p, err := b.registry.Remove(ctx, arg)
	switch {
	case err == nil:
		return fmt.Sprintf("✅ Removed pattern: `%s`", p.Raw), nil
	case errors.Is(err, domain.ErrNotFound):
		return fmt.Sprintf("❌ Pattern not found: `%s`", p.Raw), nil
	case errors.Is(err, domain.ErrInvalidArgument):
		return usageRemove, nil
	default:
		return "", err
	}
}

// HandleStatus reports the running state, monitored channel, pattern
// count and process uptime.
func (b *BotFacade) HandleStatus(ctx context.Context) (string, error) {
	count, err := b.registry.Count(ctx)
	if err != nil {
		return "", fmt.Errorf("count patterns: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("📊 **Monitor Status**\n\n")
	sb.WriteString("**Running:** ✅\n")
	fmt.Fprintf(&sb, "**Channel:** @%s\n", b.channel)
	fmt.Fprintf(&sb, "**Active Patterns:** %d\n", count)
	fmt.Fprintf(&sb, "**Uptime:** %s\n", time.Since(b.startedAt).Round(time.Second))
	return sb.String(), nil
}

func (b *BotFacade) HandleUnknown() string {
	return "Commands:\n" +
		"/start - configuration summary\n" +
		"/list - show current patterns\n" +
		"/add Country · City - add a pattern\n" +
		"/remove Country · City - remove a pattern\n" +
		"/status - monitor status"
}

// HandleChannelPost scans one channel post and renders the alerts to
// send. Zero matches yields zero alerts; combine_alerts folds multiple
// matches into a single alert.
func (b *BotFacade) HandleChannelPost(ctx context.Context, msg model.ChannelMessage) ([]string, error) {
	matches, err := b.monitor.Scan(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("scan channel post: %w", err)
	}
	if len(matches) == 0 {
		return nil, nil
	}

	if b.combineAlerts {
		return []string{FormatCombinedAlert(matches)}, nil
	}
	alerts := make([]string, len(matches))
	for i, m := range matches {
		alerts[i] = FormatAlert(m)
	}
	return alerts, nil
}
