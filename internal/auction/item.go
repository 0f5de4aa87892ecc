package auction

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Item is a tradeable auction-house entry. Identity is the catalog id;
// price and freshness are filled in by the scraper.
type Item struct {
	ID          string
	Name        string
	Price       Price
	LastUpdated time.Time
}

// update copies the fetched fields from another item.
func (it *Item) update(from *Item) {
	it.Name = from.Name
	it.Price = from.Price
	it.LastUpdated = from.LastUpdated
}

// PriceReadable renders the price, or "?" when it was never fetched.
func (it *Item) PriceReadable() string {
	if it.Price == 0 {
		return "?"
	}
	return it.Price.String()
}

// Catalog maps lowercase item names to catalog ids. Read-only after load.
type Catalog map[string]string

// LoadCatalog reads an on-disk {"<id>": "<name>"} JSON table and inverts it
// into the name-keyed form the matcher wants.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading item catalog: %w", err)
	}

	var byID map[string]string
	if err := json.Unmarshal(data, &byID); err != nil {
		return nil, fmt.Errorf("parsing item catalog: %w", err)
	}

	catalog := make(Catalog, len(byID))
	for id, name := range byID {
		catalog[strings.ToLower(name)] = id
	}
	return catalog, nil
}

// FormatPrices renders the reply for a set of priced items.
func FormatPrices(items []*Item) string {
	switch len(items) {
	case 0:
		return "nothing found"
	case 1:
		return fmt.Sprintf("Average price for '%s': %s", items[0].Name, items[0].PriceReadable())
	}

	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%s: %s", it.Name, it.PriceReadable())
	}
	return "Avg prices: " + strings.Join(parts, "; ")
}
