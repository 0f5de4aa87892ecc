package command

import (
	"context"
	"strings"

	"github.com/peonbot/peon/internal/errs"
	"github.com/peonbot/peon/internal/textkit"
)

// textFunc rewrites an argument into a reply.
type textFunc func(text string) (string, error)

// TextCommand wraps a pure text transformation as a chat command.
type TextCommand struct {
	Info
	apply textFunc
}

func (c *TextCommand) Execute(ctx context.Context, req Request) (*Response, error) {
	text := strings.TrimSpace(req.Arg)
	if text == "" {
		return nil, errs.Malformedf("give me some text to work with")
	}
	out, err := c.apply(text)
	if err != nil {
		return nil, err
	}
	return &Response{Text: out}, nil
}

// NewMorseCommand encodes text to morse or decodes it back, picking the
// direction from the input.
func NewMorseCommand() *TextCommand {
	return &TextCommand{
		Info: Info{
			Name: "morse",
			Help: "encode text to morse code, or decode morse back",
			Use:  []string{"morse work complete", "morse .-- --- .-. -.-"},
		},
		apply: textkit.Morse,
	}
}

// NewPuntoCommand unscrambles text typed in the wrong keyboard layout.
func NewPuntoCommand() *TextCommand {
	return &TextCommand{
		Info: Info{
			Name: "punto",
			Help: "fix text typed in the wrong keyboard layout",
			Use:  []string{"punto ghbdtn"},
		},
		apply: func(text string) (string, error) {
			return textkit.Punto(text), nil
		},
	}
}

// NewLitifyCommand transliterates cyrillic text into latin letters.
func NewLitifyCommand() *TextCommand {
	return &TextCommand{
		Info: Info{
			Name: "litify",
			Help: "transliterate cyrillic text into latin",
			Use:  []string{"litify привет"},
		},
		apply: func(text string) (string, error) {
			return textkit.Translitify(text), nil
		},
	}
}

// NewReverseCommand reverses the argument rune by rune.
func NewReverseCommand() *TextCommand {
	return &TextCommand{
		Info: Info{
			Name: "reverse",
			Help: "reverse text",
			Use:  []string{"reverse dammit i'm mad"},
		},
		apply: func(text string) (string, error) {
			return textkit.Reverse(text), nil
		},
	}
}
