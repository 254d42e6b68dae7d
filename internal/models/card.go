// Package models defines the greeting-card entity shared by the server
// (persistence, HTTP API) and the reveal client.
package models

import "time"

// TemplateValentine2026 is the only presentation variant currently defined.
// Cards with an unknown template id render as an "unsupported template"
// notice on the client; they are never rejected by the server.
const TemplateValentine2026 = "valentine-2026"

const (
	// ImageSlots is the fixed number of slots in every image sequence.
	ImageSlots = 3

	// CaptionMaxLen bounds memory-card captions; descriptions are free-length.
	CaptionMaxLen = 40

	// PasscodeLength is the exact length of a card passcode when present.
	PasscodeLength = 8
)

// GreetingCard is the persisted card record. It is created once, read many
// times and never updated in place; ViewCount is bumped best-effort on load.
type GreetingCard struct {
	ID                string    `json:"id"`
	SenderName        string    `json:"senderName"`
	ReceiverName      string    `json:"receiverName"`
	TemplateID        string    `json:"templateId"`
	CustomMessage     string    `json:"customMessage,omitempty"`
	Passcode          string    `json:"passcode,omitempty"`
	PasscodeHint      string    `json:"passcodeHint,omitempty"`
	PasscodeMessage   string    `json:"passcodeMessage,omitempty"`
	YoutubeURL        string    `json:"youtubeUrl,omitempty"`
	Images            []string  `json:"images"`
	EventImages       []string  `json:"eventImages"`
	ImageCaptions     []string  `json:"imageCaptions"`
	EventDescriptions []string  `json:"eventDescriptions"`
	CreatedAt         time.Time `json:"createdAt"`
	ViewCount         int64     `json:"viewCount"`
	IsPublic          bool      `json:"isPublic"`
}

// CreateCardInput is the creation payload: the entity minus the fields the
// repository assigns (id, createdAt, viewCount).
type CreateCardInput struct {
	SenderName        string   `json:"senderName"`
	ReceiverName      string   `json:"receiverName"`
	TemplateID        string   `json:"templateId"`
	CustomMessage     string   `json:"customMessage,omitempty"`
	Passcode          string   `json:"passcode,omitempty"`
	PasscodeHint      string   `json:"passcodeHint,omitempty"`
	PasscodeMessage   string   `json:"passcodeMessage,omitempty"`
	YoutubeURL        string   `json:"youtubeUrl,omitempty"`
	Images            []string `json:"images"`
	EventImages       []string `json:"eventImages"`
	ImageCaptions     []string `json:"imageCaptions"`
	EventDescriptions []string `json:"eventDescriptions"`
	IsPublic          bool     `json:"isPublic"`
}

// Normalize pads or truncates every image-related sequence to exactly
// ImageSlots entries and clamps captions to CaptionMaxLen runes. Missing
// slots become empty strings, which downstream layers treat as "no image".
func (in *CreateCardInput) Normalize() {
	in.Images = padSlots(in.Images)
	in.EventImages = padSlots(in.EventImages)
	in.ImageCaptions = padSlots(in.ImageCaptions)
	in.EventDescriptions = padSlots(in.EventDescriptions)

	for i, c := range in.ImageCaptions {
		in.ImageCaptions[i] = clampRunes(c, CaptionMaxLen)
	}
}

func padSlots(s []string) []string {
	out := make([]string, ImageSlots)
	copy(out, s)
	return out
}

func clampRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
