package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		channelPostsScannedTotal,
		channelPostsSkippedTotal,
		patternMatchesTotal,
		alertsSentTotal,
		alertSendFailuresTotal,
	)
}

var (
	channelPostsScannedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "channel_posts_scanned_total",
			Help: "Total number of channel posts run through the matcher.",
		},
	)

	channelPostsSkippedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "channel_posts_skipped_total",
			Help: "Posts rejected by the appointment hint before matching.",
		},
	)

	patternMatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pattern_matches_total",
			Help: "Matches per configured pattern.",
		},
		[]string{"pattern"},
	)

	alertsSentTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "alerts_sent_total",
			Help: "Alerts delivered to the operator chat.",
		},
	)

	alertSendFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "alert_send_failures_total",
			Help: "Alerts that could not be delivered.",
		},
	)
)

func IncChannelPostScanned() { channelPostsScannedTotal.Inc() }

func IncChannelPostSkipped() { channelPostsSkippedTotal.Inc() }

func IncPatternMatch(pattern string) {
	patternMatchesTotal.WithLabelValues(norm(pattern)).Inc()
}

func IncAlertSent() { alertsSentTotal.Inc() }

func IncAlertSendFailure() { alertSendFailuresTotal.Inc() }
