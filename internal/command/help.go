package command

import (
	"context"
	"strings"
)

// HelpCommand lists every registered command with its description and
// usage examples, rendered with the platform's command sign.
type HelpCommand struct {
	Info
	router *Router
	sign   string
}

func NewHelpCommand(router *Router, sign string) *HelpCommand {
	return &HelpCommand{
		Info: Info{
			Name: "help",
			Help: "list available commands",
			Use:  []string{"help"},
		},
		router: router,
		sign:   sign,
	}
}

func (c *HelpCommand) Execute(ctx context.Context, req Request) (*Response, error) {
	var b strings.Builder
	for i, cmd := range c.router.Commands() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(c.sign)
		b.WriteString(cmd.Prefix())
		d, ok := cmd.(Describer)
		if !ok {
			continue
		}
		if desc := d.Description(); desc != "" {
			b.WriteString(" - " + desc)
		}
		if use := d.Examples(); len(use) > 0 {
			b.WriteString("\n  e.g. " + c.sign + strings.Join(use, ", "+c.sign))
		}
	}
	return &Response{Text: b.String()}, nil
}
