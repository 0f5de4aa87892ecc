package command

import (
	"context"
	"log/slog"

	"github.com/peonbot/peon/internal/auction"
)

// AuctionCommand looks up average auction-house buyout prices for one or
// more item references.
type AuctionCommand struct {
	Info
	matcher *auction.Matcher
	scraper *auction.Scraper
	logger  *slog.Logger
}

func NewAuctionCommand(matcher *auction.Matcher, scraper *auction.Scraper, logger *slog.Logger) *AuctionCommand {
	return &AuctionCommand{
		Info: Info{
			Name: "ah",
			Help: "average auction buyout price for an item (fuzzy names accepted)",
			Use:  []string{"ah dreamfoil", "ah major mana potion, greater fire protection potion"},
		},
		matcher: matcher,
		scraper: scraper,
		logger:  logger,
	}
}

func (c *AuctionCommand) Execute(ctx context.Context, req Request) (*Response, error) {
	items := c.matcher.FindAll(req.Arg)

	var lastErr error
	failed := 0
	for _, item := range items {
		if err := c.scraper.Query(ctx, item); err != nil {
			// one stale price should not sink a multi-item listing
			failed++
			lastErr = err
			c.logger.Warn("price lookup failed",
				"item", item.Name,
				"error", err,
			)
		}
	}
	if len(items) > 0 && failed == len(items) {
		return nil, lastErr
	}
	return &Response{Text: auction.FormatPrices(items)}, nil
}
