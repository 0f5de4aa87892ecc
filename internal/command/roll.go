package command

import (
	"context"
	"regexp"

	"github.com/peonbot/peon/internal/dice"
	"github.com/peonbot/peon/internal/textkit"
)

var rollSplitRe = regexp.MustCompile(`\s*\+\s*`)

// RollCommand evaluates dice expressions like "2d6 + d20 + 1-100".
type RollCommand struct {
	Info
	roller *dice.Roller
}

// NewRollCommand creates a roll command on top of the given roller.
func NewRollCommand(roller *dice.Roller) *RollCommand {
	return &RollCommand{
		Info: Info{
			Name: "roll",
			Help: "roll dice: a bare number, NdM throws, or a low-high range",
			Use:  []string{"roll 2d8 + d12", "roll 100", "roll 59-211"},
		},
		roller: roller,
	}
}

func (c *RollCommand) Execute(ctx context.Context, req Request) (*Response, error) {
	// clients decorate pasted expressions with emphasis characters
	raw := textkit.Normalize(req.Arg, textkit.NormalizeOptions{Markdown: true})
	terms := rollSplitRe.Split(raw, -1)
	result, err := c.roller.Roll(terms)
	if err != nil {
		return nil, err
	}
	return &Response{Text: result}, nil
}
