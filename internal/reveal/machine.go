package reveal

import (
	"sync"
	"time"
)

// Delays for the timer-driven transitions, matching the original experience.
const (
	OpenDelay     = 1200 * time.Millisecond
	CloseDelay    = 1500 * time.Millisecond
	SettleDelay   = 1500 * time.Millisecond
	MismatchFlash = 500 * time.Millisecond
)

// Content is the card material the machine sequences. Empty optional fields
// skip their stages: no passcode skips the gate, no youtubeUrl skips the
// music stages, no customMessage passes straight through to revealed.
type Content struct {
	SenderName        string
	ReceiverName      string
	CustomMessage     string
	Passcode          string
	PasscodeHint      string
	PasscodeMessage   string
	YoutubeURL        string
	Images            []string
	EventImages       []string
	ImageCaptions     []string
	EventDescriptions []string
}

// startTimer is a test seam for delayed transitions. The returned func stops
// the timer and reports whether it was still pending.
var startTimer = func(d time.Duration, fn func()) func() bool {
	t := time.AfterFunc(d, fn)
	return t.Stop
}

// Machine drives one recipient's reveal experience. All methods are safe for
// use from gesture callbacks and timer goroutines; transitions are applied
// under a single mutex so the sequence stays strictly ordered.
//
// A Machine is single-use: once Revealed is reached no transition leaves it,
// and the completion callback has fired exactly once. Close cancels any
// pending timer so a torn-down machine never advances afterwards.
type Machine struct {
	mu sync.Mutex

	content     Content
	photos      []string
	eventPhotos []string

	stage  Stage
	gen    int
	cancel func() bool
	closed bool

	observer   func(StageName)
	onComplete func()
	completed  bool
}

// NewMachine builds a machine in the sealed stage. onComplete (optional) is
// invoked exactly once, on first entry to the revealed stage.
//
// Image slots are filtered to their non-empty entries, order preserved. When
// every eventImages slot is empty the gallery falls back to the envelope
// photos.
func NewMachine(content Content, onComplete func()) *Machine {
	photos := filterEmpty(content.Images)
	events := filterEmpty(content.EventImages)
	if len(events) == 0 {
		events = photos
	}
	return &Machine{
		content:     content,
		photos:      photos,
		eventPhotos: events,
		stage:       Sealed{},
		onComplete:  onComplete,
	}
}

// SetObserver registers fn to be called on every stage transition with the
// entered stage's name, including re-entries of viewingPhotos on cursor
// advance. fn runs with the machine lock held and must not call back in.
func (m *Machine) SetObserver(fn func(StageName)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observer = fn
}

// Stage returns the current stage.
func (m *Machine) Stage() Stage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stage
}

// Content returns the card material the machine was built from.
func (m *Machine) Content() Content {
	return m.content
}

// Photos returns the non-empty envelope photos.
func (m *Machine) Photos() []string {
	return m.photos
}

// EventPhotos returns the gallery images after the fallback rule.
func (m *Machine) EventPhotos() []string {
	return m.eventPhotos
}

// Completed reports whether the completion callback has fired.
func (m *Machine) Completed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.completed
}

// Close tears the machine down: any pending timed transition is canceled and
// will never apply to this instance.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.gen++
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// OpenEnvelope handles the initial click on the sealed envelope. After the
// opening delay the entry guard routes to the passcode gate when the card
// has a passcode, otherwise straight to the photo stack.
func (m *Machine) OpenEnvelope() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stage.(Sealed); !ok {
		return
	}
	m.setLocked(Opening{})
	m.scheduleLocked(OpenDelay, func() {
		if m.content.Passcode != "" {
			m.setLocked(EnteringPasscode{})
		} else {
			m.setLocked(ViewingPhotos{})
		}
	})
}

// EnterDigit appends one digit (0–9) to the passcode buffer. When the buffer
// reaches eight digits it is compared against the card's passcode: a match
// enters the success state and advances after the settle delay; a mismatch
// raises a transient error flash and retains the buffer.
func (m *Machine) EnterDigit(d int) {
	if d < 0 || d > 9 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.stage.(EnteringPasscode)
	if !ok || st.Entry.Matched {
		return
	}
	st.Entry = st.Entry.push(d)
	if !st.Entry.full() {
		m.stage = st
		return
	}
	if st.Entry.Buffer == m.content.Passcode {
		st.Entry.Matched = true
		st.Entry.Wrong = false
		m.stage = st
		m.scheduleLocked(SettleDelay, func() {
			if m.content.PasscodeMessage != "" {
				m.setLocked(ShowingPasscodeMessage{})
			} else {
				m.setLocked(ViewingPhotos{})
			}
		})
		return
	}
	st.Entry.Wrong = true
	m.stage = st
	m.scheduleLocked(MismatchFlash, func() {
		if cur, ok := m.stage.(EnteringPasscode); ok {
			cur.Entry.Wrong = false
			m.stage = cur
		}
	})
}

// EraseDigit removes the last buffered digit.
func (m *Machine) EraseDigit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.stage.(EnteringPasscode); ok && !st.Entry.Matched {
		st.Entry = st.Entry.backspace()
		m.stage = st
	}
}

// ClearPasscode empties the buffer.
func (m *Machine) ClearPasscode() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.stage.(EnteringPasscode); ok && !st.Entry.Matched {
		st.Entry = st.Entry.clear()
		m.stage = st
	}
}

// DismissPasscodeMessage leaves the post-passcode note for the photo stack.
func (m *Machine) DismissPasscodeMessage() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stage.(ShowingPasscodeMessage); ok {
		m.setLocked(ViewingPhotos{})
	}
}

// AdvancePhoto handles a tap or upward swipe on the visible photo. While
// photos remain it re-enters viewingPhotos with the next cursor; past the
// last photo (or with no photos at all) it closes the envelope and, after
// the close delay, shows the interstitial.
func (m *Machine) AdvancePhoto() {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.stage.(ViewingPhotos)
	if !ok {
		return
	}
	dir := 1
	if st.Cursor%2 != 0 {
		dir = -1
	}
	if st.Cursor < len(m.photos)-1 {
		m.setLocked(ViewingPhotos{Cursor: st.Cursor + 1, Direction: dir})
		return
	}
	m.setLocked(ClosingEnvelope{})
	m.scheduleLocked(CloseDelay, func() {
		m.setLocked(PreMessage{})
	})
}

// DismissPreMessage leaves the interstitial for the memory-card gallery.
func (m *Machine) DismissPreMessage() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stage.(PreMessage); ok {
		m.setLocked(ViewingEventCards{Selected: -1})
	}
}

// SelectEventCard opens the detail view for gallery card i. This is modal
// sub-state: it does not transition the machine.
func (m *Machine) SelectEventCard(i int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stage.(ViewingEventCards); ok && i >= 0 && i < len(m.eventPhotos) {
		m.stage = ViewingEventCards{Selected: i}
	}
}

// CloseEventCard closes the detail view.
func (m *Machine) CloseEventCard() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stage.(ViewingEventCards); ok {
		m.stage = ViewingEventCards{Selected: -1}
	}
}

// FinishEventCards leaves the gallery: to the music announcement when the
// card has a track, otherwise to the message stage.
func (m *Machine) FinishEventCards() {
	m.mu.Lock()
	if _, ok := m.stage.(ViewingEventCards); !ok {
		m.mu.Unlock()
		return
	}
	var fire func()
	if m.content.YoutubeURL != "" {
		m.setLocked(ShowingMusicMessage{})
	} else {
		fire = m.enterMessageLocked()
	}
	m.mu.Unlock()
	if fire != nil {
		fire()
	}
}

// DismissMusicMessage starts playback.
func (m *Machine) DismissMusicMessage() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stage.(ShowingMusicMessage); ok {
		m.setLocked(PlayingMusic{})
	}
}

// FinishMusic ends or skips playback and moves on to the message stage.
func (m *Machine) FinishMusic() {
	m.mu.Lock()
	if _, ok := m.stage.(PlayingMusic); !ok {
		m.mu.Unlock()
		return
	}
	fire := m.enterMessageLocked()
	m.mu.Unlock()
	if fire != nil {
		fire()
	}
}

// DismissMessage acknowledges the custom message and reveals the card.
func (m *Machine) DismissMessage() {
	m.mu.Lock()
	if _, ok := m.stage.(ShowingMessage); !ok {
		m.mu.Unlock()
		return
	}
	fire := m.revealLocked()
	m.mu.Unlock()
	if fire != nil {
		fire()
	}
}

// enterMessageLocked enters showingMessage; with no custom message the stage
// is a pass-through and the machine reveals immediately. Returns the
// completion callback to invoke after unlocking, if any.
func (m *Machine) enterMessageLocked() func() {
	m.setLocked(ShowingMessage{})
	if m.content.CustomMessage == "" {
		return m.revealLocked()
	}
	return nil
}

func (m *Machine) revealLocked() func() {
	m.setLocked(Revealed{})
	if m.completed {
		return nil
	}
	m.completed = true
	return m.onComplete
}

// setLocked applies a stage transition: the generation bump invalidates any
// timer scheduled for the previous stage.
func (m *Machine) setLocked(s Stage) {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.gen++
	m.stage = s
	if m.observer != nil {
		m.observer(s.Name())
	}
}

// scheduleLocked arms a delayed action. The action runs under the lock and
// is dropped if the machine was closed or transitioned in the meantime.
func (m *Machine) scheduleLocked(d time.Duration, fn func()) {
	if m.cancel != nil {
		m.cancel()
	}
	gen := m.gen
	m.cancel = startTimer(d, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.closed || gen != m.gen {
			return
		}
		m.cancel = nil
		fn()
	})
}

func filterEmpty(s []string) []string {
	out := make([]string, 0, len(s))
	for _, v := range s {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
