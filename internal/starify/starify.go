// Package starify spreads a sentence across a decorated "night sky" string.
package starify

import (
	"math/rand"
	"strings"

	"github.com/peonbot/peon/internal/errs"
)

// DefaultLimit is the total output length used by the starify command.
const DefaultLimit = 600

// alphabet is heavily weighted towards spaces so the sky stays mostly dark.
var alphabet = []rune(strings.Repeat(" ", 50) + "★★●°°☾☆¸¸¸,..:'")

// Engine lays out words over randomly generated filler.
type Engine struct {
	rnd *rand.Rand
}

// New creates an engine drawing filler glyphs from rnd.
func New(rnd *rand.Rand) *Engine {
	return &Engine{rnd: rnd}
}

// Starify decorates the words of sentence and spreads them at evenly spaced
// offsets into a stream of filler glyphs. The result is exactly limit runes
// long. A sentence whose decorated words alone exceed limit is rejected.
func (e *Engine) Starify(sentence string, limit int) (string, error) {
	words := strings.Split(sentence, " ")
	for i, w := range words {
		switch i {
		case 0:
			words[i] = " " + w + ".. "
		case len(words) - 1:
			words[i] = " ..." + w + " "
		default:
			words[i] = " .." + w + ".. "
		}
	}

	budget := limit
	for _, w := range words {
		budget -= len([]rune(w))
	}
	if budget < 0 {
		return "", errs.Malformedf("sentence does not fit the sky (limit %d)", limit)
	}
	if budget == 0 {
		return strings.Join(words, ""), nil
	}

	// Word i of n is inserted when the filler stream reaches offset
	// budget*(i+1)/(n+1), so words never sit at the very edges.
	insertions := make(map[int][]string, len(words))
	for i, w := range words {
		p := budget * (i + 1) / (len(words) + 1)
		insertions[p] = append(insertions[p], w)
	}

	sky := make([]rune, 0, limit)
	var last rune
	for p := 0; p < budget; p++ {
		for _, w := range insertions[p] {
			sky = append(sky, []rune(w)...)
		}
		c := e.pick(last)
		sky = append(sky, c)
		last = c
	}
	return string(sky), nil
}

// pick draws a filler glyph, never repeating the previous one unless it was
// a space.
func (e *Engine) pick(last rune) rune {
	for {
		c := alphabet[e.rnd.Intn(len(alphabet))]
		if last == 0 || last == ' ' || c != last {
			return c
		}
	}
}
