package reveal

import "testing"

func TestPasscodeEntry_PushCapsAtLength(t *testing.T) {
	var e PasscodeEntry
	for i := 0; i < PasscodeLength+3; i++ {
		e = e.push(i % 10)
	}
	if e.Buffer != "01234567" {
		t.Fatalf("buffer = %q, want %q", e.Buffer, "01234567")
	}
	if !e.full() {
		t.Fatal("expected full buffer")
	}
}

func TestPasscodeEntry_BackspaceAndClear(t *testing.T) {
	var e PasscodeEntry
	e = e.push(1)
	e = e.push(2)

	e = e.backspace()
	if e.Buffer != "1" {
		t.Fatalf("buffer after backspace = %q", e.Buffer)
	}

	e = e.backspace()
	e = e.backspace() // empty: no-op
	if e.Buffer != "" {
		t.Fatalf("buffer = %q, want empty", e.Buffer)
	}

	e = e.push(7)
	e = e.clear()
	if e.Buffer != "" || e.full() {
		t.Fatalf("clear left %q", e.Buffer)
	}
}
