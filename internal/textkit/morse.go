package textkit

import (
	"strings"

	"github.com/peonbot/peon/internal/errs"
)

var morseCode = map[rune]string{
	'a': ".-", 'b': "-...", 'c': "-.-.", 'd': "-..", 'e': ".", 'f': "..-.",
	'g': "--.", 'h': "....", 'i': "..", 'j': ".---", 'k': "-.-", 'l': ".-..",
	'm': "--", 'n': "-.", 'o': "---", 'p': ".--.", 'q': "--.-", 'r': ".-.",
	's': "...", 't': "-", 'u': "..-", 'v': "...-", 'w': ".--", 'x': "-..-",
	'y': "-.--", 'z': "--..",
	'1': ".----", '2': "..---", '3': "...--", '4': "....-", '5': ".....",
	'6': "-....", '7': "--...", '8': "---..", '9': "----.", '0': "-----",
	',': "--..--", '.': ".-.-.-", '?': "..--..", '/': "-..-.", '-': "-....-",
	'(': "-.--.", ')': "-.--.-", ' ': " ",
}

var morseLetters = func() map[string]rune {
	m := make(map[string]rune, len(morseCode))
	for r, code := range morseCode {
		if r != ' ' {
			m[code] = r
		}
	}
	return m
}()

// IsMorse reports whether text consists solely of dots, dashes and spaces.
func IsMorse(text string) bool {
	if text == "" {
		return false
	}
	for _, c := range text {
		if c != '.' && c != '-' && c != ' ' {
			return false
		}
	}
	return true
}

// ToMorse encodes text as morse code, letters separated by single spaces.
func ToMorse(text string) (string, error) {
	var codes []string
	for _, c := range strings.ToLower(text) {
		code, ok := morseCode[c]
		if !ok {
			return "", errs.Malformedf("cannot encode %q as morse", c)
		}
		codes = append(codes, code)
	}
	return strings.Join(codes, " "), nil
}

// FromMorse decodes morse code. Letters are separated by single spaces,
// words by double spaces. Unknown sequences decode to nothing.
func FromMorse(text string) string {
	words := []string{text}
	if strings.Contains(text, "  ") {
		words = strings.Split(text, "  ")
	}

	var decoded []string
	for _, word := range words {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		var b strings.Builder
		for _, code := range strings.Fields(word) {
			if r, ok := morseLetters[code]; ok {
				b.WriteRune(r)
			}
		}
		decoded = append(decoded, b.String())
	}
	return strings.Join(decoded, " ")
}

// Morse translates to or from morse code, guessing the direction.
func Morse(text string) (string, error) {
	if IsMorse(text) {
		return FromMorse(text), nil
	}
	return ToMorse(text)
}
