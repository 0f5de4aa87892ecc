package command

import (
	"context"
	"strings"

	"github.com/peonbot/peon/internal/starify"
)

// StarifyCommand writes a sentence on a night sky and removes the
// triggering message so only the sky stays in the channel.
type StarifyCommand struct {
	Info
	engine *starify.Engine
}

func NewStarifyCommand(engine *starify.Engine) *StarifyCommand {
	return &StarifyCommand{
		Info: Info{
			Name: "starify",
			Help: "scatter a sentence across a night sky",
			Use:  []string{"starify wish upon a star"},
		},
		engine: engine,
	}
}

func (c *StarifyCommand) Execute(ctx context.Context, req Request) (*Response, error) {
	sentence := strings.TrimSpace(req.Arg)
	if sentence == "" {
		return nil, nil
	}
	sky, err := c.engine.Starify(sentence, starify.DefaultLimit)
	if err != nil {
		return nil, err
	}
	return &Response{Text: sky, DeleteRequest: true}, nil
}
