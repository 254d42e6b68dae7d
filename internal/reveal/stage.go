// Package reveal implements the scripted "unboxing" experience for a
// greeting card: an ordered sequence of stages driven by user gestures and
// timers, optionally gated by a passcode, that always terminates in the
// revealed state regardless of which optional content is present.
package reveal

// StageName identifies a stage in the unboxing sequence.
type StageName string

const (
	StageSealed                 StageName = "sealed"
	StageOpening                StageName = "opening"
	StageEnteringPasscode       StageName = "enteringPasscode"
	StageShowingPasscodeMessage StageName = "showingPasscodeMessage"
	StageViewingPhotos          StageName = "viewingPhotos"
	StageClosingEnvelope        StageName = "closingEnvelope"
	StagePreMessage             StageName = "preMessage"
	StageViewingEventCards      StageName = "viewingEventCards"
	StageShowingMusicMessage    StageName = "showingMusicMessage"
	StagePlayingMusic           StageName = "playingMusic"
	StageShowingMessage         StageName = "showingMessage"
	StageRevealed               StageName = "revealed"
)

// Stage is the closed set of reveal stages. Each stage carries only the data
// that stage needs, so illegal combinations (a passcode buffer after the
// envelope opened, a photo cursor inside the gallery) cannot be represented.
type Stage interface {
	Name() StageName
	stage()
}

// Sealed is the initial stage: the envelope is closed and waits for a click.
type Sealed struct{}

// Opening plays the envelope-flap animation before the entry guard decides
// between the passcode gate and the photo stack.
type Opening struct{}

// EnteringPasscode is the passcode gate. Entry holds the verifier state.
type EnteringPasscode struct {
	Entry PasscodeEntry
}

// ShowingPasscodeMessage shows the optional post-passcode note.
type ShowingPasscodeMessage struct{}

// ViewingPhotos pages through the non-empty envelope photos. Cursor is the
// zero-based index of the visible photo; Direction is the exit side of the
// previous photo (cosmetic, alternates left/right).
type ViewingPhotos struct {
	Cursor    int
	Direction int
}

// ClosingEnvelope plays the envelope close-out before the memory gallery.
type ClosingEnvelope struct{}

// PreMessage shows the "do you remember..." interstitial.
type PreMessage struct{}

// ViewingEventCards presents the memory-card gallery. Selected is the index
// of the open detail view, or -1 when none; it is transient sub-state and
// never affects the parent stage.
type ViewingEventCards struct {
	Selected int
}

// ShowingMusicMessage announces the background track.
type ShowingMusicMessage struct{}

// PlayingMusic plays the track until the user finishes or skips it.
type PlayingMusic struct{}

// ShowingMessage shows the custom message, or passes straight through to
// Revealed when the card has none.
type ShowingMessage struct{}

// Revealed is terminal. The two final card faces toggled within it are local
// presentation state, not machine stages.
type Revealed struct{}

func (Sealed) Name() StageName                 { return StageSealed }
func (Opening) Name() StageName                { return StageOpening }
func (EnteringPasscode) Name() StageName       { return StageEnteringPasscode }
func (ShowingPasscodeMessage) Name() StageName { return StageShowingPasscodeMessage }
func (ViewingPhotos) Name() StageName          { return StageViewingPhotos }
func (ClosingEnvelope) Name() StageName        { return StageClosingEnvelope }
func (PreMessage) Name() StageName             { return StagePreMessage }
func (ViewingEventCards) Name() StageName      { return StageViewingEventCards }
func (ShowingMusicMessage) Name() StageName    { return StageShowingMusicMessage }
func (PlayingMusic) Name() StageName           { return StagePlayingMusic }
func (ShowingMessage) Name() StageName         { return StageShowingMessage }
func (Revealed) Name() StageName               { return StageRevealed }

func (Sealed) stage()                 {}
func (Opening) stage()                {}
func (EnteringPasscode) stage()       {}
func (ShowingPasscodeMessage) stage() {}
func (ViewingPhotos) stage()          {}
func (ClosingEnvelope) stage()        {}
func (PreMessage) stage()             {}
func (ViewingEventCards) stage()      {}
func (ShowingMusicMessage) stage()    {}
func (PlayingMusic) stage()           {}
func (ShowingMessage) stage()         {}
func (Revealed) stage()               {}
