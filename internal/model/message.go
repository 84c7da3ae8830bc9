// Package model holds the canonical, immutable data types shared by every
// stage of the chat analysis pipeline: parsed messages through to the
// final rolled-up analysis.
package model

import "time"

// Platform identifies the chat export format a Message was parsed from.
type Platform string

const (
	PlatformWhatsApp Platform = "whatsapp"
	PlatformTelegram Platform = "telegram"
	PlatformDiscord  Platform = "discord"
	PlatformIMessage Platform = "imessage"
	PlatformGeneric  Platform = "generic"
)

// Role is a participant's standing relative to the caller-supplied self name.
type Role string

const (
	RoleSelf  Role = "self"
	RoleOther Role = "other"
)

// Message is a single canonical chat line, immutable once parsed.
type Message struct {
	// Timestamp is nil when the source line carried no parseable instant.
	// Non-nil values are always in UTC.
	Timestamp *time.Time `json:"timestamp"`
	Sender    string     `json:"sender"`
	Text      string     `json:"text"`
	Platform  Platform   `json:"platform"`
	IsMedia   bool        `json:"is_media"`
}

// Participant describes one sender's role and coarse activity within a
// conversation.
type Participant struct {
	Name          string  `json:"name"`
	Role          Role    `json:"role"`
	MessageCount  int     `json:"message_count"`
	AverageLength float64 `json:"average_length"`
}
