package telegram

import (
	"context"
	"errors"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"telegram-appointment-monitor/internal/application"
	"telegram-appointment-monitor/internal/config"
	"telegram-appointment-monitor/internal/domain/model"
	"telegram-appointment-monitor/internal/infra/logging"
	"telegram-appointment-monitor/internal/infra/metrics"
	red "telegram-appointment-monitor/internal/infra/redis"
	"telegram-appointment-monitor/internal/infra/worker"
	"telegram-appointment-monitor/internal/usecase"
)

// UpdatePoller polls Telegram for updates and routes them: posts from
// the monitored channel into the scan flow, operator messages into the
// command flow. Updates run through a sequential dispatch pool so one
// update finishes before the next starts. Outbound delivery goes
// through the bot port: alerts via the notifier, command replies to
// the chat they came from.
type UpdatePoller struct {
	bot         *RealTelegramBotAdapter
	channel     string
	facade      *application.BotFacade
	notifier    usecase.AlertNotifierUseCase
	rateLimiter *red.RateLimiter
	pool        *worker.Pool
	operatorIDs map[int64]struct{}
	log         *zerolog.Logger

	cancelPolling context.CancelFunc
}

// NewUpdatePoller creates the polling loop. rateLimiter may be nil to
// disable per-chat command limiting.
func NewUpdatePoller(
	cfg *config.BotConfig,
	channel string,
	bot *RealTelegramBotAdapter,
	facade *application.BotFacade,
	notifier usecase.AlertNotifierUseCase,
	rateLimiter *red.RateLimiter,
	logger *zerolog.Logger,
) (*UpdatePoller, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	if bot == nil {
		return nil, errors.New("bot adapter is nil")
	}
	if facade == nil {
		return nil, errors.New("bot facade is nil")
	}
	if notifier == nil {
		return nil, errors.New("alert notifier is nil")
	}
	if channel == "" {
		return nil, errors.New("monitored channel is empty")
	}

	operatorMap := make(map[int64]struct{}, len(cfg.OperatorIDs))
	for _, id := range cfg.OperatorIDs {
		operatorMap[id] = struct{}{}
	}

	return &UpdatePoller{
		bot:         bot,
		channel:     strings.TrimPrefix(channel, "@"),
		facade:      facade,
		notifier:    notifier,
		rateLimiter: rateLimiter,
		pool:        worker.NewPool(cfg.Workers, logger),
		operatorIDs: operatorMap,
		log:         logger,
	}, nil
}

// StartPolling runs until ctx is canceled. Reconnecting after transient
// network failures is tgbotapi's concern.
func (p *UpdatePoller) StartPolling(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := p.bot.bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	p.cancelPolling = cancel

	p.pool.Start(ctx)
	p.log.Info().Str("channel", p.channel).Msg("polling started")

	for {
		select {
		case <-ctx.Done():
			p.bot.bot.StopReceivingUpdates()
			p.pool.Stop()
			return nil
		case update := <-updates:
			up := update
			err := p.pool.Submit(ctx, func(tctx context.Context) error {
				return p.handleUpdate(tctx, up)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				p.log.Warn().Err(err).Msg("update not enqueued")
			}
		}
	}
}

// StopPolling stops the polling loop gracefully.
func (p *UpdatePoller) StopPolling() {
	if p.cancelPolling != nil {
		p.cancelPolling()
	}
}

func (p *UpdatePoller) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	ctx = logging.WithTraceID(ctx, uuid.NewString())

	if update.ChannelPost != nil {
		return p.handleChannelPost(ctx, update.ChannelPost)
	}
	if update.Message != nil {
		return p.handleOperatorMessage(ctx, update.Message)
	}
	return nil
}

// channelMessage converts a raw channel post into the domain message.
// Posts from other chats and posts without text are discarded.
func (p *UpdatePoller) channelMessage(post *tgbotapi.Message) (model.ChannelMessage, bool) {
	if post.Chat == nil || !strings.EqualFold(post.Chat.UserName, p.channel) {
		return model.ChannelMessage{}, false
	}
	text := post.Text
	if text == "" {
		text = post.Caption
	}
	if text == "" {
		return model.ChannelMessage{}, false
	}
	receivedAt := time.Now().UTC()
	if post.Date > 0 {
		receivedAt = time.Unix(int64(post.Date), 0).UTC()
	}
	return model.ChannelMessage{
		Channel:    p.channel,
		MessageID:  post.MessageID,
		Text:       text,
		ReceivedAt: receivedAt,
	}, true
}

func (p *UpdatePoller) handleChannelPost(ctx context.Context, post *tgbotapi.Message) error {
	msg, ok := p.channelMessage(post)
	if !ok {
		return nil
	}
	ctx = logging.WithChannel(ctx, msg.Channel)
	ctx = logging.WithMsgID(ctx, msg.MessageID)
	log := logging.With(ctx, p.log)

	log.Info().Msg("channel post received")

	alerts, err := p.facade.HandleChannelPost(ctx, msg)
	if err != nil {
		return err
	}
	for _, alert := range alerts {
		if err := p.notifier.Broadcast(ctx, alert); err != nil {
			log.Error().Err(err).Msg("alert broadcast incomplete")
		}
	}
	return nil
}

func (p *UpdatePoller) isOperator(senderID int64) bool {
	_, ok := p.operatorIDs[senderID]
	return ok
}

func (p *UpdatePoller) handleOperatorMessage(ctx context.Context, m *tgbotapi.Message) error {
	if m.From == nil || m.Text == "" {
		return nil
	}
	ctx = logging.WithChatID(ctx, m.Chat.ID)
	log := logging.With(ctx, p.log)

	if !p.isOperator(m.From.ID) {
		log.Debug().Int64("sender", m.From.ID).Msg("ignoring non-operator message")
		return nil
	}

	cmd := model.ParseCommand(m.Text)

	if p.rateLimiter != nil {
		key := red.ChatCommandKey(m.Chat.ID, string(cmd.Verb))
		allowed, err := p.rateLimiter.Allow(ctx, key, 20, time.Minute)
		if err != nil {
			log.Warn().Err(err).Msg("rate limiter unavailable")
		} else if !allowed {
			metrics.IncRateLimitTriggered()
			return p.bot.SendMessage(ctx, m.Chat.ID, "Rate limit exceeded. Please try again later.")
		}
	}

	metrics.IncTelegramCommand(string(cmd.Verb))
	reply := p.facade.Dispatch(ctx, cmd)
	return p.bot.SendMessage(ctx, m.Chat.ID, reply)
}
