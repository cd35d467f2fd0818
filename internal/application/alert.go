// File: internal/application/alert.go
package application

import (
	"fmt"
	"strings"
	"time"

	"telegram-appointment-monitor/internal/domain/model"
)

const alertDivider = "─────────────────────"

// FormatAlert renders the operator alert for one match. Pure function,
// called once per matched pattern. The message body is included
// verbatim, untruncated.
func FormatAlert(m model.Match) string {
	var b strings.Builder
	b.WriteString("🚨 **APPOINTMENT ALERT** 🚨\n\n")
	fmt.Fprintf(&b, "**Matched Pattern:** %s\n", m.Pattern.Raw)
	fmt.Fprintf(&b, "**Channel:** @%s\n", m.Message.Channel)
	fmt.Fprintf(&b, "**Received:** %s\n\n", m.Message.ReceivedAt.UTC().Format(time.RFC3339))
	b.WriteString("**Original Message:**\n")
	b.WriteString(alertDivider + "\n")
	b.WriteString(m.Message.Text)
	b.WriteString("\n\n**Direct Link:** " + m.Message.Link())
	return b.String()
}

// FormatCombinedAlert renders a single alert naming every matched
// pattern. All matches are assumed to reference the same message.
func FormatCombinedAlert(matches []model.Match) string {
	if len(matches) == 0 {
		return ""
	}
	if len(matches) == 1 {
		return FormatAlert(matches[0])
	}

	msg := matches[0].Message
	var b strings.Builder
	b.WriteString("🚨 **APPOINTMENT ALERT** 🚨\n\n")
	b.WriteString("**Matched Patterns:**\n")
	for _, m := range matches {
		fmt.Fprintf(&b, "• %s\n", m.Pattern.Raw)
	}
	fmt.Fprintf(&b, "**Channel:** @%s\n", msg.Channel)
	fmt.Fprintf(&b, "**Received:** %s\n\n", msg.ReceivedAt.UTC().Format(time.RFC3339))
	b.WriteString("**Original Message:**\n")
	b.WriteString(alertDivider + "\n")
	b.WriteString(msg.Text)
	b.WriteString("\n\n**Direct Link:** " + msg.Link())
	return b.String()
}
