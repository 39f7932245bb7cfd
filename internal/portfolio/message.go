// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package portfolio

import "time"

// MessageTTL is how long a status message stays on screen.
const MessageTTL = 3 * time.Second

// MessageKind selects the styling of a status message.
type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Message is a transient status line shown at the top of the admin panel.
type Message struct {
	Text      string      `json:"text"`
	Kind      MessageKind `json:"kind"`
	CreatedAt time.Time   `json:"created_at"`
}

// IsError reports whether the message describes a failure.
func (m Message) IsError() bool {
	return m.Kind == MessageError
}

// ExpiresAt is when the message should disappear.
func (m Message) ExpiresAt() time.Time {
	return m.CreatedAt.Add(MessageTTL)
}

// Expired reports whether the message is no longer shown at now.
func (m Message) Expired(now time.Time) bool {
	return m.Text == "" || !now.Before(m.ExpiresAt())
}

// Remaining is how long the message stays visible after now, never negative.
func (m Message) Remaining(now time.Time) time.Duration {
	if d := m.ExpiresAt().Sub(now); d > 0 {
		return d
	}
	return 0
}

// NewMessage creates a message stamped with the current time.
func NewMessage(text string, kind MessageKind) Message {
	return Message{Text: text, Kind: kind, CreatedAt: time.Now()}
}
