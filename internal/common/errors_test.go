package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelsMatchWithWrapping(t *testing.T) {
	err := fmt.Errorf("%w: sender name must not be empty", ErrValidation)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected wrapped error to match ErrValidation")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("wrapped validation error must not match ErrNotFound")
	}
}
