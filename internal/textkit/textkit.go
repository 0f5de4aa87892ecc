// Package textkit holds the small text transformations behind the scrambling
// commands: keyboard-layout switching, transliteration, morse code and the
// normalization applied to inbound command text.
package textkit

import (
	"regexp"
	"strings"
)

var translitMap = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sh'",
	'ы': "y", 'э': "e", 'ю': "yu", 'я': "ya",
}

// puntoMap maps latin keys to the cyrillic characters sharing the same
// physical key on a standard ЙЦУКЕН/QWERTY layout pair.
var puntoMap = map[rune]rune{
	'a': 'ф', 'b': 'и', 'c': 'с', 'd': 'в', 'e': 'у', 'f': 'а', 'g': 'п',
	'h': 'р', 'i': 'ш', 'j': 'о', 'k': 'л', 'l': 'д', 'm': 'ь', 'n': 'т',
	'o': 'щ', 'p': 'з', 'q': 'й', 'r': 'к', 's': 'ы', 't': 'е', 'u': 'г',
	'v': 'м', 'w': 'ц', 'x': 'ч', 'y': 'н', 'z': 'я',
	';': 'ж', '\'': 'э', '`': 'ё', ',': 'б', '.': 'ю',
}

var puntoMapReversed = func() map[rune]rune {
	m := make(map[rune]rune, len(puntoMap))
	for k, v := range puntoMap {
		m[v] = k
	}
	return m
}()

// latinLookalikes are latin characters visually identical to cyrillic ones.
var latinLookalikes = map[rune]rune{
	'e': 'е', 't': 'т', 'y': 'у', 'o': 'о', 'p': 'р', 'a': 'а', 'h': 'н',
	'k': 'к', 'x': 'х', 'c': 'с', 'b': 'в', 'm': 'м',
}

var specialSequences = []struct{ from, to string }{
	{"}{", "х"},
	{"III", "ш"},
	{"()", "o"},
}

var (
	simpleMaskRe = regexp.MustCompile(`[\^$!#%&€£¢¥§<>?~*,0-9:;\[\]=\-+_]`)
	markdownRe   = regexp.MustCompile("[*_~]")
)

// Punto converts text typed in the wrong keyboard layout, picking the
// direction from whichever alphabet dominates.
func Punto(text string) string {
	latin, cyrillic := 0, 0
	seen := map[rune]bool{}
	for _, c := range text {
		if seen[c] {
			continue
		}
		seen[c] = true
		if _, ok := puntoMap[c]; ok {
			latin++
		}
		if _, ok := puntoMapReversed[c]; ok {
			cyrillic++
		}
	}

	lookup := puntoMap
	if cyrillic > latin {
		lookup = puntoMapReversed
	}

	var b strings.Builder
	for _, c := range text {
		if r, ok := lookup[c]; ok {
			b.WriteRune(r)
		} else {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// Translitify converts cyrillic text into a latin rendition.
func Translitify(text string) string {
	var b strings.Builder
	for _, c := range text {
		if s, ok := translitMap[c]; ok {
			b.WriteString(s)
		} else {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// DeLatinize replaces latin characters with their cyrillic lookalikes.
func DeLatinize(text string) string {
	var b strings.Builder
	for _, c := range text {
		if r, ok := latinLookalikes[c]; ok {
			b.WriteRune(r)
		} else {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// NormalizeOptions selects which normalization passes to apply.
type NormalizeOptions struct {
	SimpleMask   bool // strip punctuation, digits and casing
	DeLatinize   bool // fold latin lookalikes into cyrillic
	SpecialChars bool // collapse char-art sequences like "}{"
	Markdown     bool // strip markdown emphasis characters
}

// Normalize applies the selected passes to text.
func Normalize(text string, opts NormalizeOptions) string {
	if opts.SimpleMask {
		text = simpleMaskRe.ReplaceAllString(strings.ToLower(text), "")
		text = strings.ReplaceAll(text, "ё", "е")
	}
	if opts.DeLatinize {
		text = DeLatinize(text)
	}
	if opts.SpecialChars {
		for _, seq := range specialSequences {
			text = strings.ReplaceAll(text, seq.from, seq.to)
		}
	}
	if opts.Markdown {
		text = markdownRe.ReplaceAllString(text, "")
	}
	return text
}

// Reverse reverses text rune-wise.
func Reverse(text string) string {
	runes := []rune(text)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
