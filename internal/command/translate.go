package command

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/peonbot/peon/internal/errs"
	"github.com/peonbot/peon/internal/services"
)

const trUsage = "tr <text> | tr<to> <text> | tr<from><to> <text>"

// TranslateCommand translates text between languages. Target and source
// languages are glued onto the prefix as two-letter codes, so "tren" means
// "to english" and "trruen" means "russian to english".
type TranslateCommand struct {
	Info
	translator *services.Translator
}

func NewTranslateCommand(translator *services.Translator) *TranslateCommand {
	return &TranslateCommand{
		Info: Info{
			Name: "tr",
			Help: "translate text, auto-detecting the source language",
			Use:  []string{"tr bonjour", "tren привет", "trdeen hallo"},
		},
		translator: translator,
	}
}

func (c *TranslateCommand) Execute(ctx context.Context, req Request) (*Response, error) {
	codes, text := splitLangCodes(req.Arg)
	if strings.TrimSpace(text) == "" {
		return nil, errs.Malformedf("usage: %s", trUsage)
	}

	from, to := "", ""
	switch len(codes) {
	case 0:
	case 1:
		to = codes[0]
	case 2:
		from, to = codes[0], codes[1]
	}

	tr, err := c.translator.Translate(ctx, strings.TrimSpace(text), from, to)
	if err != nil {
		return nil, err
	}
	return &Response{Text: fmt.Sprintf("(%s) %s", tr.Lang, tr.Text)}, nil
}

// splitLangCodes peels the language codes glued to the command prefix off
// the argument: the first word of "tren привет" is one target code, the
// first word of "trruen hello" is a source and a target. A first word that
// is not a known code is simply the start of the text.
func splitLangCodes(arg string) (codes []string, text string) {
	head, tail, found := strings.Cut(arg, " ")
	if !found {
		return nil, arg
	}
	switch {
	case len(head) == 2 && services.IsLanguage(head):
		return []string{head}, tail
	case len(head) == 4 && services.IsLanguage(head[:2]) && services.IsLanguage(head[2:]):
		return []string{head[:2], head[2:]}, tail
	default:
		return nil, arg
	}
}

// MangleCommand scrambles text by translating it through several random
// languages and back.
type MangleCommand struct {
	Info
	translator *services.Translator
	rnd        *rand.Rand
}

func NewMangleCommand(translator *services.Translator, rnd *rand.Rand) *MangleCommand {
	return &MangleCommand{
		Info: Info{
			Name: "mangle",
			Help: "scramble text through a chain of machine translations",
			Use:  []string{"mangle никогда такого не было и вот опять"},
		},
		translator: translator,
		rnd:        rnd,
	}
}

func (c *MangleCommand) Execute(ctx context.Context, req Request) (*Response, error) {
	text := strings.TrimSpace(req.Arg)
	if text == "" {
		return nil, errs.Malformedf("nothing to mangle")
	}
	mangled, err := c.translator.Mangle(ctx, text, "ru", c.rnd)
	if err != nil {
		return nil, err
	}
	return &Response{Text: mangled}, nil
}
