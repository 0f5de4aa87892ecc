package discord

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	if got := truncate("short"); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}

	exact := strings.Repeat("a", maxMessageLen)
	if got := truncate(exact); got != exact {
		t.Error("text at the limit should pass through untouched")
	}

	long := strings.Repeat("a", maxMessageLen+1)
	got := truncate(long)
	if len(got) != maxMessageLen {
		t.Errorf("len = %d, want %d", len(got), maxMessageLen)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated text should end with an ellipsis marker")
	}
}

func TestTruncateDoesNotSplitRunes(t *testing.T) {
	long := strings.Repeat("★", maxMessageLen)
	got := truncate(long)
	if !utf8.ValidString(got) {
		t.Error("truncation split a multi-byte rune")
	}
	if len(got) > maxMessageLen {
		t.Errorf("len = %d, exceeds the message limit", len(got))
	}
}
