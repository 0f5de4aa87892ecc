package auction

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/singleflight"

	"github.com/peonbot/peon/internal/errs"
)

// invalidateAfter is how long a cached price stays valid.
const invalidateAfter = 86400 * time.Second

const fetchTimeout = 5 * time.Second

// slugAlphabet is the character set item names are reduced to when
// building a page URL.
const slugAlphabet = "abcdefghijklmnopqrstuvwxyz 0123456789"

// Scraper fetches item prices from auction-house pages and keeps a
// TTL-bounded in-memory cache keyed by item id.
type Scraper struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
	now     func() time.Time

	mu    sync.Mutex
	cache map[string]*Item
	group singleflight.Group
}

// NewScraper creates a scraper for pages under baseURL.
func NewScraper(baseURL string, logger *slog.Logger) *Scraper {
	return &Scraper{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: fetchTimeout},
		logger:  logger,
		now:     time.Now,
		cache:   make(map[string]*Item),
	}
}

// QueryURL computes the page URL for an item: the name reduced to a slug
// with the id appended, e.g. ".../dreamfoil-8831".
func (s *Scraper) QueryURL(item *Item) string {
	var b strings.Builder
	for _, c := range strings.ToLower(item.Name) {
		if strings.ContainsRune(slugAlphabet, c) {
			b.WriteRune(c)
		}
	}
	slug := strings.Join(strings.Fields(b.String()), "-")
	return fmt.Sprintf("%s/%s-%s", s.baseURL, slug, item.ID)
}

// Query fills in the item's price, from cache when fresh, otherwise by
// fetching its page. Concurrent misses for the same id collapse into a
// single fetch; the first resolves, the rest share its result.
func (s *Scraper) Query(ctx context.Context, item *Item) error {
	s.mu.Lock()
	if cached, ok := s.cache[item.ID]; ok && s.now().Sub(cached.LastUpdated) < invalidateAfter {
		item.update(cached)
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	v, err, _ := s.group.Do(item.ID, func() (any, error) {
		return s.fetch(ctx, item)
	})
	if err != nil {
		return err
	}
	item.update(v.(*Item))
	return nil
}

func (s *Scraper) fetch(ctx context.Context, item *Item) (*Item, error) {
	url := s.QueryURL(item)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building auction request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("auction fetch failed", "url", url, "error", err)
		return nil, errs.Unavailablef("unable to fetch auction data")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("auction fetch failed", "url", url, "status", resp.StatusCode)
		return nil, errs.Unavailablef("unable to fetch auction data")
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errs.Unavailablef("unable to parse auction page")
	}

	cells := doc.Find("td").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return strings.Contains(sel.Text(), "Average Buyout")
	})
	if cells.Length() != 1 {
		return nil, errs.Unavailablef("no buyout data for '%s'", item.Name)
	}

	price, err := ParsePrice(strings.TrimSpace(cells.First().Next().Text()))
	if err != nil {
		return nil, errs.Unavailablef("unreadable buyout price for '%s'", item.Name)
	}

	fetched := &Item{
		ID:          item.ID,
		Name:        item.Name,
		Price:       price,
		LastUpdated: s.now(),
	}

	s.mu.Lock()
	s.cache[item.ID] = fetched
	s.mu.Unlock()

	s.logger.Debug("auction price fetched", "item", item.Name, "price", price.String())
	return fetched, nil
}
