package model

import (
	"fmt"
	"time"
)

// ChannelMessage is a post delivered from the monitored channel. The core
// only reads it; delivery, ordering and reconnection belong to the Telegram
// client.
type ChannelMessage struct {
	Channel    string // channel username without the leading @
	MessageID  int
	Text       string
	ReceivedAt time.Time
}

// Link returns the public address of the original post.
func (m ChannelMessage) Link() string {
	return fmt.Sprintf("https://t.me/%s/%d", m.Channel, m.MessageID)
}

// Match pairs a pattern with the message its rule fired on. A match lives
// only until the alert is sent; it is never persisted.
type Match struct {
	Pattern Pattern
	Message ChannelMessage
}
