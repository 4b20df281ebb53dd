package txhash

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	h := New()
	if !strings.HasPrefix(h, "0x") {
		t.Errorf("expected 0x prefix, got %q", h)
	}
	if len(h) != 66 {
		t.Errorf("expected 66 chars (0x + 64 hex), got %d", len(h))
	}
	if New() == h {
		t.Error("expected successive hashes to differ")
	}
}
