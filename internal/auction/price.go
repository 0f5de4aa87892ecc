package auction

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/peonbot/peon/internal/errs"
)

const (
	copperPerSilver = 100
	copperPerGold   = 10000
)

// Price is an amount of money counted in copper, the smallest currency unit.
// Being an integer type it supports arithmetic and ordering directly.
type Price int64

var priceRe = regexp.MustCompile(`^\s*(?:(\d+)g\s*)?(?:(\d+)s\s*)?(?:(\d+)c\s*)?$`)

// ParsePrice parses a "1g 22s 33c" style string. Any component may be
// omitted, but a string with no recognized component at all is malformed.
func ParsePrice(s string) (Price, error) {
	m := priceRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil || (m[1] == "" && m[2] == "" && m[3] == "") {
		return 0, errs.Malformedf("invalid currency string %q", s)
	}

	var total int64
	for i, mult := range []int64{copperPerGold, copperPerSilver, 1} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil {
			return 0, errs.Malformedf("invalid currency string %q", s)
		}
		total += n * mult
	}
	return Price(total), nil
}

// String renders the canonical component form, e.g. "1g 22s 33c". The
// rendering parses back to the same value. Zero components are omitted;
// a zero price renders as "0c".
func (p Price) String() string {
	if p == 0 {
		return "0c"
	}

	v := int64(p)
	var parts []string
	if g := v / copperPerGold; g > 0 {
		parts = append(parts, strconv.FormatInt(g, 10)+"g")
	}
	if s := v % copperPerGold / copperPerSilver; s > 0 {
		parts = append(parts, strconv.FormatInt(s, 10)+"s")
	}
	if c := v % copperPerSilver; c > 0 {
		parts = append(parts, strconv.FormatInt(c, 10)+"c")
	}
	return strings.Join(parts, " ")
}
