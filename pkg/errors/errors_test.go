package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidDegree, "degree must be at least %d", 1)
	if err.Code != ErrCodeInvalidDegree {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidDegree)
	}
	if err.Message != "degree must be at least 1" {
		t.Errorf("Message = %q", err.Message)
	}
	if !strings.Contains(err.Error(), string(ErrCodeInvalidDegree)) {
		t.Errorf("Error() = %q, want code prefix", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeInternal, cause, "writing result")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Error() = %q, want cause included", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidCycle, "bad cycle")
	if !Is(err, ErrCodeInvalidCycle) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is should not match a plain error")
	}

	// code survives wrapping in plain error chains
	wrapped := fmt.Errorf("context: %w", err)
	if !Is(wrapped, ErrCodeInvalidCycle) {
		t.Error("Is should unwrap to find the code")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeNotFound, "gone")); got != ErrCodeNotFound {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeNotFound)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidInput, "expression is malformed")
	if got := UserMessage(err); got != "expression is malformed" {
		t.Errorf("UserMessage = %q", got)
	}
	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
