package command

import (
	"context"
	"errors"
	"strings"

	"github.com/peonbot/peon/internal/gpt"
)

// GPTMention answers free-form messages addressed to the bot: any direct
// message, or a channel message containing the bot's mention.
type GPTMention struct {
	completer *gpt.Completer
	mention   func() string
}

// NewGPTMention creates the handler. mention is resolved lazily because
// adapters learn their own identity only after connecting.
func NewGPTMention(completer *gpt.Completer, mention func() string) *GPTMention {
	return &GPTMention{completer: completer, mention: mention}
}

func (h *GPTMention) TryHandle(ctx context.Context, req Request) (*Response, bool, error) {
	mention := h.mention()
	if !req.Message.Private {
		if mention == "" || !strings.Contains(req.Arg, mention) {
			return nil, false, nil
		}
	}

	prompt := gpt.SanitizePrompt(req.Arg, mention)
	if strings.TrimSpace(prompt) == "" {
		return nil, false, nil
	}

	answer, err := h.completer.Complete(ctx, ownerID(req.Message), prompt)
	if errors.Is(err, gpt.ErrRateLimited) {
		return &Response{Text: "not so fast, friend", Mention: true}, true, nil
	}
	if err != nil {
		return nil, true, err
	}
	return &Response{Text: answer, Mention: true}, true, nil
}
