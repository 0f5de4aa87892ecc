package telegram

import (
	"testing"

	"github.com/PaulSonOfLars/gotgbot/v2"
)

func TestMentionFor(t *testing.T) {
	withUsername := &gotgbot.User{Username: "peon_bot", FirstName: "Peon"}
	if got := mentionFor(withUsername); got != "@peon_bot" {
		t.Errorf("mentionFor = %q, want @peon_bot", got)
	}

	noUsername := &gotgbot.User{FirstName: "Peon"}
	if got := mentionFor(noUsername); got != "Peon" {
		t.Errorf("mentionFor = %q, want first name fallback", got)
	}
}
