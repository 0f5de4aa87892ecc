package command

import (
	"context"
	"strings"

	"github.com/peonbot/peon/internal/errs"
	"github.com/peonbot/peon/internal/services"
)

// WikiCommand replies with a Wikipedia page summary.
type WikiCommand struct {
	Info
	client *services.WikiClient
}

func NewWikiCommand(client *services.WikiClient) *WikiCommand {
	return &WikiCommand{
		Info: Info{
			Name: "wiki",
			Help: "look up a wikipedia page summary",
			Use:  []string{"wiki orcish language"},
		},
		client: client,
	}
}

func (c *WikiCommand) Execute(ctx context.Context, req Request) (*Response, error) {
	query := strings.TrimSpace(req.Arg)
	if query == "" {
		return nil, errs.Malformedf("what should I look up?")
	}
	summary, err := c.client.Summary(ctx, query)
	if err != nil {
		return nil, err
	}
	return &Response{Text: summary}, nil
}

// UrbanCommand replies with an Urban Dictionary definition.
type UrbanCommand struct {
	Info
	client *services.UrbanClient
}

func NewUrbanCommand(client *services.UrbanClient) *UrbanCommand {
	return &UrbanCommand{
		Info: Info{
			Name: "urban",
			Help: "look up an urban dictionary definition",
			Use:  []string{"urban zug zug"},
		},
		client: client,
	}
}

func (c *UrbanCommand) Execute(ctx context.Context, req Request) (*Response, error) {
	term := strings.TrimSpace(req.Arg)
	if term == "" {
		return nil, errs.Malformedf("what should I look up?")
	}
	def, err := c.client.Define(ctx, term)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return &Response{Text: "nothing found"}, nil
	}
	text := def.Word + ":\n" + def.Definition
	if def.Example != "" {
		text += "\n\nexample:\n" + def.Example
	}
	if def.Permalink != "" {
		text += "\n(" + def.Permalink + ")"
	}
	return &Response{Text: text}, nil
}

// WeatherCommand replies with current conditions for a location.
type WeatherCommand struct {
	Info
	client *services.WeatherClient
}

func NewWeatherCommand(client *services.WeatherClient) *WeatherCommand {
	return &WeatherCommand{
		Info: Info{
			Name: "weather",
			Help: "current weather for a location",
			Use:  []string{"weather orgrimmar"},
		},
		client: client,
	}
}

func (c *WeatherCommand) Execute(ctx context.Context, req Request) (*Response, error) {
	location := strings.TrimSpace(req.Arg)
	if location == "" {
		return nil, errs.Malformedf("weather where?")
	}
	report, err := c.client.Current(ctx, location)
	if err != nil {
		return nil, err
	}
	return &Response{Text: report}, nil
}
