package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		telegramCommandsTotal,
		telegramSendFailuresTotal,
		rateLimitTriggeredTotal,
	)
}

var (
	telegramCommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_commands_total",
			Help: "Operator commands handled, by verb.",
		},
		[]string{"command"},
	)

	telegramSendFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_send_failures_total",
			Help: "Outbound Telegram sends that returned an error.",
		},
	)

	rateLimitTriggeredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_rate_limit_triggered_total",
			Help: "Commands rejected by the per-chat rate limiter.",
		},
	)
)

func IncTelegramCommand(command string) {
	telegramCommandsTotal.WithLabelValues(norm(command)).Inc()
}

func IncTelegramSendFailure() { telegramSendFailuresTotal.Inc() }

func IncRateLimitTriggered() { rateLimitTriggeredTotal.Inc() }
