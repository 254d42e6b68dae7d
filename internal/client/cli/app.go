// Package cli is the terminal reveal experience: it walks a recipient
// through a fetched card stage by stage, driven by the reveal state machine.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/unbox-app/unbox/internal/models"
	"github.com/unbox-app/unbox/internal/reveal"
)

type App struct {
	card    *models.GreetingCard
	machine *reveal.Machine
	reader  *bufio.Reader
	out     io.Writer
	updates chan reveal.StageName

	// envelopeFlipped is presentation-only state for the sealed envelope's
	// two faces; it never touches the machine.
	envelopeFlipped bool
}

// NewApp builds the interactive reveal for card, reading commands from in
// and writing to out.
func NewApp(card *models.GreetingCard, in io.Reader, out io.Writer) *App {
	a := &App{
		card:    card,
		reader:  bufio.NewReader(in),
		out:     out,
		updates: make(chan reveal.StageName, 32),
	}
	a.machine = reveal.NewMachine(reveal.Content{
		SenderName:        card.SenderName,
		ReceiverName:      card.ReceiverName,
		CustomMessage:     card.CustomMessage,
		Passcode:          card.Passcode,
		PasscodeHint:      card.PasscodeHint,
		PasscodeMessage:   card.PasscodeMessage,
		YoutubeURL:        card.YoutubeURL,
		Images:            card.Images,
		EventImages:       card.EventImages,
		ImageCaptions:     card.ImageCaptions,
		EventDescriptions: card.EventDescriptions,
	}, func() {
		fmt.Fprintln(out, "The card is yours now. Happy Valentine's!")
	})
	a.machine.SetObserver(func(n reveal.StageName) {
		select {
		case a.updates <- n:
		default:
		}
	})
	return a
}

// Run drives the reveal until the card is fully revealed, the input ends or
// ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	defer a.machine.Close()

	if a.card.TemplateID != models.TemplateValentine2026 {
		fmt.Fprintf(a.out, "Note: this card uses template %q, which this client does not fully support.\n", a.card.TemplateID)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch st := a.machine.Stage().(type) {
		case reveal.Sealed:
			err = a.stageSealed()
		case reveal.Opening, reveal.ClosingEnvelope:
			err = a.waitForChange(ctx)
		case reveal.EnteringPasscode:
			err = a.stagePasscode(ctx, st)
		case reveal.ShowingPasscodeMessage:
			err = a.stagePasscodeMessage()
		case reveal.ViewingPhotos:
			err = a.stagePhotos(st)
		case reveal.PreMessage:
			err = a.stagePreMessage()
		case reveal.ViewingEventCards:
			err = a.stageEventCards(st)
		case reveal.ShowingMusicMessage:
			err = a.stageMusicMessage()
		case reveal.PlayingMusic:
			err = a.stagePlayingMusic()
		case reveal.ShowingMessage:
			err = a.stageMessage()
		case reveal.Revealed:
			a.renderRevealed()
			return nil
		default:
			err = a.waitForChange(ctx)
		}
		if err != nil {
			return err
		}
	}
}

// waitForChange blocks until the machine transitions or ctx is canceled.
// Stale notifications are harmless: the loop re-reads the stage either way.
func (a *App) waitForChange(ctx context.Context) error {
	select {
	case <-a.updates:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *App) stageSealed() error {
	if a.envelopeFlipped {
		fmt.Fprintf(a.out, "\n[ A sealed envelope, back side. Wax seal intact. ]\n")
	} else {
		fmt.Fprintf(a.out, "\nAn envelope for %s, from %s.\n", a.card.ReceiverName, a.card.SenderName)
	}
	line, err := GetSimpleText(a.reader, "Press Enter to open it (f flips the envelope)", a.out)
	if err != nil {
		return err
	}
	if strings.EqualFold(line, "f") {
		a.envelopeFlipped = !a.envelopeFlipped
		return nil
	}
	fmt.Fprintln(a.out, "Opening...")
	a.machine.OpenEnvelope()
	return nil
}

func (a *App) stagePasscode(ctx context.Context, st reveal.EnteringPasscode) error {
	if st.Entry.Matched {
		fmt.Fprintln(a.out, "That's it!")
		return a.waitForChange(ctx)
	}
	if st.Entry.Wrong {
		fmt.Fprintln(a.out, "That's not it. Try again.")
	}
	if a.card.PasscodeHint != "" {
		fmt.Fprintf(a.out, "Hint: %s\n", a.card.PasscodeHint)
	}

	code, err := a.readPasscode()
	if err != nil {
		return err
	}

	a.machine.ClearPasscode()
	for _, r := range code {
		if r >= '0' && r <= '9' {
			a.machine.EnterDigit(int(r - '0'))
		}
	}
	return nil
}

func (a *App) stagePasscodeMessage() error {
	fmt.Fprintf(a.out, "\n%s\n", a.card.PasscodeMessage)
	if _, err := GetSimpleText(a.reader, "Press Enter to continue", a.out); err != nil {
		return err
	}
	a.machine.DismissPasscodeMessage()
	return nil
}

func (a *App) stagePhotos(st reveal.ViewingPhotos) error {
	photos := a.machine.Photos()
	if len(photos) > 0 {
		caption := ""
		captions := a.machine.Content().ImageCaptions
		if st.Cursor < len(captions) {
			caption = captions[st.Cursor]
		}
		fmt.Fprintf(a.out, "\nPhoto %d of %d: %s\n", st.Cursor+1, len(photos), photos[st.Cursor])
		if caption != "" {
			fmt.Fprintf(a.out, "  %q\n", caption)
		}
	} else {
		fmt.Fprintln(a.out, "\nThe envelope holds no photos.")
	}
	if _, err := GetSimpleText(a.reader, "Press Enter for the next one", a.out); err != nil {
		return err
	}
	a.machine.AdvancePhoto()
	return nil
}

func (a *App) stagePreMessage() error {
	fmt.Fprintf(a.out, "\n%s put together a few memories for you.\n", a.card.SenderName)
	if _, err := GetSimpleText(a.reader, "Press Enter to see them", a.out); err != nil {
		return err
	}
	a.machine.DismissPreMessage()
	return nil
}

func (a *App) stageEventCards(st reveal.ViewingEventCards) error {
	cards := a.machine.EventPhotos()
	descriptions := a.machine.Content().EventDescriptions

	if st.Selected >= 0 {
		fmt.Fprintf(a.out, "\nMemory %d: %s\n", st.Selected+1, cards[st.Selected])
		if st.Selected < len(descriptions) && descriptions[st.Selected] != "" {
			fmt.Fprintf(a.out, "  %s\n", descriptions[st.Selected])
		}
		if _, err := GetSimpleText(a.reader, "Press Enter to put it back", a.out); err != nil {
			return err
		}
		a.machine.CloseEventCard()
		return nil
	}

	fmt.Fprintf(a.out, "\n%d memories to browse.\n", len(cards))
	line, err := GetSimpleText(a.reader, "Enter a number to look closer, or press Enter to move on", a.out)
	if err != nil {
		return err
	}
	if n, convErr := strconv.Atoi(line); convErr == nil && n >= 1 && n <= len(cards) {
		a.machine.SelectEventCard(n - 1)
		return nil
	}
	a.machine.FinishEventCards()
	return nil
}

func (a *App) stageMusicMessage() error {
	fmt.Fprintf(a.out, "\n%s picked a song for you.\n", a.card.SenderName)
	if _, err := GetSimpleText(a.reader, "Press Enter to play it", a.out); err != nil {
		return err
	}
	a.machine.DismissMusicMessage()
	return nil
}

func (a *App) stagePlayingMusic() error {
	if id := reveal.YoutubeVideoID(a.card.YoutubeURL); id != "" {
		fmt.Fprintf(a.out, "\nNow playing: https://www.youtube.com/watch?v=%s\n", id)
	} else {
		fmt.Fprintf(a.out, "\nNow playing: %s\n", a.card.YoutubeURL)
	}
	if _, err := GetSimpleText(a.reader, "Press Enter when the song is over", a.out); err != nil {
		return err
	}
	a.machine.FinishMusic()
	return nil
}

func (a *App) stageMessage() error {
	fmt.Fprintf(a.out, "\nA message from %s:\n\n%s\n", a.card.SenderName, a.card.CustomMessage)
	if _, err := GetSimpleText(a.reader, "Press Enter to finish", a.out); err != nil {
		return err
	}
	a.machine.DismissMessage()
	return nil
}

func (a *App) renderRevealed() {
	fmt.Fprintf(a.out, "\nWith love, %s.\n", a.card.SenderName)
}
