package cards

import (
	"crypto/rand"
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/unbox-app/unbox/internal/models"
)

// newID is a seam for testing id assignment.
var newID = func() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// timeNow is a seam for testing creation timestamps.
var timeNow = func() time.Time { return time.Now().UTC() }

// marshalSlots encodes an image sequence as a JSON array for a TEXT column.
// A nil sequence encodes as "[]", never "null".
func marshalSlots(s []string) (string, error) {
	if s == nil {
		s = []string{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalSlots(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var s []string
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, err
	}
	if s == nil {
		s = []string{}
	}
	return s, nil
}

// newCardFromInput assembles the entity a Create call stores: the input
// fields plus a fresh id and timestamp.
func newCardFromInput(in *models.CreateCardInput) *models.GreetingCard {
	return &models.GreetingCard{
		ID:                newID(),
		SenderName:        in.SenderName,
		ReceiverName:      in.ReceiverName,
		TemplateID:        in.TemplateID,
		CustomMessage:     in.CustomMessage,
		Passcode:          in.Passcode,
		PasscodeHint:      in.PasscodeHint,
		PasscodeMessage:   in.PasscodeMessage,
		YoutubeURL:        in.YoutubeURL,
		Images:            in.Images,
		EventImages:       in.EventImages,
		ImageCaptions:     in.ImageCaptions,
		EventDescriptions: in.EventDescriptions,
		CreatedAt:         timeNow(),
		ViewCount:         0,
		IsPublic:          in.IsPublic,
	}
}
