package auction

import (
	"regexp"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// DefaultCutoff is the minimum similarity score (0-100) a fuzzy match must
// clear. Tuned empirically against the reference catalog; override per
// deployment via Matcher.Cutoff.
const DefaultCutoff = 60

// linkRe matches embedded item references of the form
// [Item Name](https://host/path/?item=1234).
var linkRe = regexp.MustCompile(`\[([\w\s#:'!(,.\-/&)]+)\]\([\w.:\-/]+/\?item=(\d+)\)`)

// Matcher resolves free-text item mentions against the catalog.
type Matcher struct {
	catalog Catalog
	names   []string // sorted, for deterministic tie-breaking

	// Cutoff is the fuzzy-match acceptance threshold.
	Cutoff int
}

// NewMatcher creates a matcher over the given catalog.
func NewMatcher(catalog Catalog) *Matcher {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return &Matcher{catalog: catalog, names: names, Cutoff: DefaultCutoff}
}

// Find resolves a single free-form mention. Catalog names containing the
// query as a substring are preferred, closest by edit distance; otherwise
// the best fuzzy candidate wins if its score clears the cutoff. No match is
// nil, not an error.
func (m *Matcher) Find(text string) *Item {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}

	best := ""
	bestDist := -1
	for _, name := range m.names {
		if !strings.Contains(name, text) {
			continue
		}
		d := levenshtein.ComputeDistance(text, name)
		if bestDist < 0 || d < bestDist {
			best, bestDist = name, d
		}
	}
	if best != "" {
		return &Item{ID: m.catalog[best], Name: best}
	}

	bestScore := 0
	for _, name := range m.names {
		s := similarity(text, name)
		if s >= m.Cutoff && s > bestScore {
			best, bestScore = name, s
		}
	}
	if best == "" {
		return nil
	}
	return &Item{ID: m.catalog[best], Name: best}
}

// FindAll resolves every mention in text: embedded link references are
// extracted directly, the remainder is split on commas and matched
// fuzzily. Results are de-duplicated by item id, in mention order.
func (m *Matcher) FindAll(text string) []*Item {
	var items []*Item
	seen := map[string]bool{}
	add := func(it *Item) {
		if it != nil && !seen[it.ID] {
			seen[it.ID] = true
			items = append(items, it)
		}
	}

	rest := text
	for _, match := range linkRe.FindAllStringSubmatch(text, -1) {
		add(&Item{ID: match[2], Name: strings.ToLower(strings.TrimSpace(match[1]))})
		rest = strings.Replace(rest, match[0], "", 1)
	}

	if strings.TrimSpace(rest) != "" {
		for _, part := range strings.Split(rest, ",") {
			add(m.Find(part))
		}
	}
	return items
}

// similarity is a 0-100 score derived from normalized edit distance.
func similarity(a, b string) int {
	longest := len([]rune(a))
	if n := len([]rune(b)); n > longest {
		longest = n
	}
	if longest == 0 {
		return 0
	}
	d := levenshtein.ComputeDistance(a, b)
	return 100 - 100*d/longest
}
