package command

import (
	"context"
	"math/rand"
)

// icosahedron holds the canonical magic 8-ball answers.
var icosahedron = []string{
	"As I see it, yes.",
	"Ask again later.",
	"Better not tell you now.",
	"Cannot predict now.",
	"Concentrate and ask again.",
	"Don't count on it.",
	"It is certain.",
	"It is decidedly so.",
	"Most likely.",
	"My reply is no.",
	"My sources say no.",
	"Outlook not so good.",
	"Outlook good.",
	"Reply hazy, try again.",
	"Signs point to yes.",
	"Very doubtful.",
	"Without a doubt.",
	"Yes.",
	"Yes - definitely.",
	"You may rely on it.",
}

// EightBallCommand answers yes/no questions with the usual authority.
type EightBallCommand struct {
	Info
	rnd *rand.Rand
}

func NewEightBallCommand(rnd *rand.Rand) *EightBallCommand {
	return &EightBallCommand{
		Info: Info{
			Name: "8ball",
			Help: "ask the magic 8-ball a question",
			Use:  []string{"8ball will the raid wipe tonight?"},
		},
		rnd: rnd,
	}
}

func (c *EightBallCommand) Execute(ctx context.Context, req Request) (*Response, error) {
	answer := icosahedron[c.rnd.Intn(len(icosahedron))]
	if req.Message.SenderMention != "" {
		answer = req.Message.SenderMention + " " + answer
	}
	return &Response{Text: answer}, nil
}
