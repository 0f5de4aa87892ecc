package command

import (
	"context"
	"sort"
	"strings"

	"github.com/peonbot/peon/internal/gpt"
)

// GPTRoleCommand inspects or rewrites the conversational role the bot
// assumes in the current channel (or direct chat).
type GPTRoleCommand struct {
	Info
	completer *gpt.Completer
}

func NewGPTRoleCommand(completer *gpt.Completer) *GPTRoleCommand {
	return &GPTRoleCommand{
		Info: Info{
			Name: "gptrole",
			Help: "show or set the bot's conversational role here",
			Use:  []string{"gptrole", "gptrole a grumpy dwarven blacksmith", "gptrole reset"},
		},
		completer: completer,
	}
}

func (c *GPTRoleCommand) Execute(ctx context.Context, req Request) (*Response, error) {
	owner := ownerID(req.Message)
	arg := strings.TrimSpace(req.Arg)

	switch strings.ToLower(arg) {
	case "":
		return &Response{Text: "current role:\n" + c.completer.Role(owner)}, nil
	case "reset":
		if err := c.completer.ResetRole(owner); err != nil {
			return nil, err
		}
		return &Response{Text: "role reset to default"}, nil
	case "presets":
		names := make([]string, 0, len(gpt.RolePresets))
		for name := range gpt.RolePresets {
			names = append(names, name)
		}
		sort.Strings(names)
		return &Response{Text: "presets: " + strings.Join(names, ", ")}, nil
	}

	if err := c.completer.SetRole(owner, arg); err != nil {
		return nil, err
	}
	return &Response{Text: "role updated"}, nil
}

// ownerID scopes role and history state: the peer in a direct chat, the
// channel everywhere else.
func ownerID(msg Message) string {
	if msg.Private {
		return msg.Sender
	}
	return msg.ChannelID
}
