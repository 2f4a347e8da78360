package reply

import "time"

// Platform 回复的目标渠道。
type Platform string

const (
	WhatsApp  Platform = "whatsapp"
	Instagram Platform = "instagram"
)

// Platforms lists every accepted platform in display order.
var Platforms = []Platform{WhatsApp, Instagram}

// ParsePlatform maps a raw value onto the closed Platform set.
func ParsePlatform(raw string) (Platform, bool) {
	for _, p := range Platforms {
		if string(p) == raw {
			return p, true
		}
	}
	return "", false
}

// SavedReply pairs a customer message with the reply chosen for it.
type SavedReply struct {
	ID              int64     `json:"id"`
	OriginalMessage string    `json:"originalMessage"`
	GeneratedReply  string    `json:"generatedReply"`
	Platform        Platform  `json:"platform"`
	CreatedAt       time.Time `json:"createdAt"`
}

// NewReply 创建存档记录时的输入。
type NewReply struct {
	OriginalMessage string `json:"originalMessage"`
	GeneratedReply  string `json:"generatedReply"`
	Platform        string `json:"platform"`
}

// GenerationRequest is the transient input of a reply generation.
type GenerationRequest struct {
	Message  string `json:"message"`
	Platform string `json:"platform"`
}

// GenerationResult carries the drafted reply text.
type GenerationResult struct {
	Reply string `json:"reply"`
}
