package util

import (
	"encoding/hex"
	"testing"
)

func TestNewResetToken(t *testing.T) {
	token, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken returned error: %v", err)
	}
	raw, err := hex.DecodeString(token)
	if err != nil {
		t.Fatalf("expected hex token, got %q: %v", token, err)
	}
	if len(raw) != resetTokenBytes {
		t.Fatalf("expected %d random bytes, got %d", resetTokenBytes, len(raw))
	}

	other, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken returned error: %v", err)
	}
	if token == other {
		t.Fatalf("expected consecutive tokens to differ")
	}
}
