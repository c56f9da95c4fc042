package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorClassChecks(t *testing.T) {
	v := Validation("bad input")
	b := BusinessRule("pool closed")
	tc := TransientConflict(errors.New("deadlock"))

	if !IsValidation(v) || IsValidation(b) || IsValidation(tc) {
		t.Error("IsValidation misclassified")
	}
	if !IsBusinessRule(b) || IsBusinessRule(v) || IsBusinessRule(tc) {
		t.Error("IsBusinessRule misclassified")
	}
	if !IsTransientConflict(tc) || IsTransientConflict(v) || IsTransientConflict(b) {
		t.Error("IsTransientConflict misclassified")
	}
}

func TestErrorClassChecksSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("invest: %w", TransientConflict(errors.New("lock wait timeout")))
	if !IsTransientConflict(wrapped) {
		t.Error("wrapped transient conflict not detected")
	}
	if !IsValidation(fmt.Errorf("handler: %w", Validation("nope"))) {
		t.Error("wrapped validation not detected")
	}
}

func TestTransientConflictUnwrap(t *testing.T) {
	cause := errors.New("deadlock found")
	tc := TransientConflict(cause)
	if !errors.Is(tc, cause) {
		t.Error("cause not reachable through Unwrap")
	}
	if got := (&TransientConflictError{}).Error(); got != "transient transaction conflict" {
		t.Errorf("nil-cause message = %q", got)
	}
}
