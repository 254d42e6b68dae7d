package reveal

// PasscodeLength is the exact number of digits in a card passcode.
const PasscodeLength = 8

// PasscodeEntry is the verifier's transient state embedded in the
// enteringPasscode stage. Buffer holds the digits typed so far; Wrong is a
// brief mismatch flash that auto-clears; Matched marks the success visual
// state during the settle delay before the parent machine advances.
//
// There is no lockout or attempt counting: mismatches are unlimited and the
// buffer is retained so the user can correct it with backspace or clear.
type PasscodeEntry struct {
	Buffer  string
	Wrong   bool
	Matched bool
}

func (e PasscodeEntry) push(d int) PasscodeEntry {
	if len(e.Buffer) >= PasscodeLength {
		return e
	}
	e.Buffer += string(rune('0' + d))
	return e
}

func (e PasscodeEntry) backspace() PasscodeEntry {
	if len(e.Buffer) > 0 {
		e.Buffer = e.Buffer[:len(e.Buffer)-1]
	}
	return e
}

func (e PasscodeEntry) clear() PasscodeEntry {
	e.Buffer = ""
	return e
}

func (e PasscodeEntry) full() bool {
	return len(e.Buffer) == PasscodeLength
}
