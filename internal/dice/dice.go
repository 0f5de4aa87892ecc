// Package dice evaluates roll expressions like "2d8", "d20", "100" or "42-59".
package dice

import (
	"errors"
	"fmt"
	"math/big"
	"math/rand"
	"strconv"
	"strings"
	"sync"

	"github.com/peonbot/peon/internal/errs"
)

const maxThrows = 100

// maxMagnitude bounds die sides and range endpoints (10^30), guarding
// against pathological allocations from a single crafted command.
var maxMagnitude = new(big.Int).Exp(big.NewInt(10), big.NewInt(30), nil)

var bigOne = big.NewInt(1)

// Source yields uniform random integers. Injectable so rolls are
// deterministic under test.
type Source interface {
	// BigN returns a uniform random integer in [0, n). n must be positive.
	BigN(n *big.Int) *big.Int
}

type randSource struct {
	rnd *rand.Rand
}

func (s randSource) BigN(n *big.Int) *big.Int {
	return new(big.Int).Rand(s.rnd, n)
}

// NewSource wraps a math/rand generator as a Source.
func NewSource(rnd *rand.Rand) Source {
	return randSource{rnd: rnd}
}

// lockedSource guards a rand source with a mutex. rand.Rand itself is not
// safe for concurrent use, and platform adapters dispatch messages from
// multiple goroutines.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source64
}

func (s *lockedSource) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Int63()
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

func (s *lockedSource) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Seed(seed)
}

// NewLockedRand returns a generator safe to share across goroutines.
func NewLockedRand(seed int64) *rand.Rand {
	return rand.New(&lockedSource{src: rand.NewSource(seed).(rand.Source64)})
}

// Roller evaluates roll expressions.
type Roller struct {
	src Source
}

// NewRoller creates a roller drawing from the given source.
func NewRoller(src Source) *Roller {
	return &Roller{src: src}
}

type term struct {
	label string

	// dice form
	throws int
	sides  *big.Int

	// range form
	isRange   bool
	low, high *big.Int
}

// Roll parses and evaluates the given terms and formats the result.
// All terms are validated before any randomness is drawn, so a bad term
// fails the whole request without partial output.
func (r *Roller) Roll(terms []string) (string, error) {
	if len(terms) == 0 {
		return "", errs.Malformedf("no roll terms given")
	}

	parsed := make([]term, 0, len(terms))
	for _, raw := range terms {
		t, err := parseTerm(strings.TrimSpace(raw))
		if err != nil {
			return "", err
		}
		parsed = append(parsed, t)
	}

	results := make([][]*big.Int, len(parsed))
	total := new(big.Int)
	count := 0
	for i, t := range parsed {
		values := r.evaluate(t)
		results[i] = values
		count += len(values)
		for _, v := range values {
			total.Add(total, v)
		}
	}

	if count == 1 {
		return fmt.Sprintf("rolls: %s", results[0][0]), nil
	}

	var b strings.Builder
	for i, t := range parsed {
		strs := make([]string, len(results[i]))
		for j, v := range results[i] {
			strs[j] = v.String()
		}
		fmt.Fprintf(&b, "%s: %s\n", t.label, strings.Join(strs, ", "))
	}
	fmt.Fprintf(&b, "---\ntotal: %s", total)
	return b.String(), nil
}

func (r *Roller) evaluate(t term) []*big.Int {
	if t.isRange {
		span := new(big.Int).Sub(t.high, t.low)
		span.Add(span, bigOne)
		v := r.src.BigN(span)
		return []*big.Int{v.Add(v, t.low)}
	}

	values := make([]*big.Int, t.throws)
	for i := range values {
		v := r.src.BigN(t.sides)
		values[i] = v.Add(v, bigOne)
	}
	return values
}

func parseTerm(s string) (term, error) {
	if s == "" {
		return term{}, errs.Malformedf("empty roll term")
	}

	if strings.Contains(s, "-") {
		return parseRange(s)
	}

	expr := s
	if !strings.Contains(expr, "d") {
		expr = "d" + expr
	}
	parts := strings.SplitN(expr, "d", 2)

	throws := 1
	if parts[0] != "" {
		n, err := strconv.Atoi(parts[0])
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return term{}, errs.OutOfRangef("too many throws in %q (limit %d)", s, maxThrows)
			}
			return term{}, errs.Malformedf("bad throw count in %q", s)
		}
		throws = n
	}
	if throws < 1 {
		return term{}, errs.Malformedf("bad throw count in %q", s)
	}
	if throws > maxThrows {
		return term{}, errs.OutOfRangef("too many throws in %q (limit %d)", s, maxThrows)
	}

	sides, ok := new(big.Int).SetString(parts[1], 10)
	if !ok {
		return term{}, errs.Malformedf("bad die sides in %q", s)
	}
	if sides.Sign() == 0 {
		return term{}, errs.Malformedf("a die cannot have zero sides")
	}
	if sides.Sign() < 0 {
		return term{}, errs.Malformedf("bad die sides in %q", s)
	}
	if sides.Cmp(maxMagnitude) > 0 {
		return term{}, errs.OutOfRangef("die sides too large in %q", s)
	}

	return term{
		label:  fmt.Sprintf("%dd%s", throws, sides),
		throws: throws,
		sides:  sides,
	}, nil
}

func parseRange(s string) (term, error) {
	parts := strings.SplitN(s, "-", 2)
	low, okL := new(big.Int).SetString(parts[0], 10)
	high, okH := new(big.Int).SetString(parts[1], 10)
	if !okL || !okH {
		return term{}, errs.Malformedf("bad range term %q", s)
	}
	if low.CmpAbs(maxMagnitude) > 0 || high.CmpAbs(maxMagnitude) > 0 {
		return term{}, errs.OutOfRangef("range bounds too large in %q", s)
	}
	// A reversed range is rejected rather than swapped: "42-9" is more
	// likely a typo for "42d9" than a request for [9,42].
	if low.Cmp(high) > 0 {
		return term{}, errs.Malformedf("range low is greater than high in %q", s)
	}

	return term{
		label:   fmt.Sprintf("%s-%s", low, high),
		isRange: true,
		low:     low,
		high:    high,
	}, nil
}

