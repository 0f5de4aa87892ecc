// Package services wraps the third-party HTTP endpoints the chat commands
// call out to: translation, wiki summaries, urban dictionary and weather.
// Every client carries a bounded-timeout http.Client and reports upstream
// failures as unavailable, never hanging a dispatch.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/peonbot/peon/internal/errs"
)

const httpTimeout = 5 * time.Second

// Languages are the two-letter codes the translation endpoints accept.
var Languages = []string{
	"af", "ga", "sq", "it", "ar", "ja", "az", "kn", "eu", "ko", "bn", "la",
	"be", "lv", "bg", "lt", "ca", "mk", "ms", "mt", "hr", "no", "cs", "fa",
	"da", "pl", "nl", "pt", "en", "ro", "eo", "ru", "et", "sr", "tl", "sk",
	"fi", "sl", "fr", "es", "gl", "sw", "ka", "sv", "de", "ta", "el", "te",
	"gu", "th", "ht", "tr", "iw", "uk", "hi", "ur", "hu", "vi", "is", "cy",
	"id", "yi",
}

var languageSet = func() map[string]bool {
	m := make(map[string]bool, len(Languages))
	for _, l := range Languages {
		m[l] = true
	}
	return m
}()

// IsLanguage reports whether code is a supported two-letter language code.
func IsLanguage(code string) bool {
	return languageSet[code]
}

// Translation is a translated text with the detected source language.
type Translation struct {
	Lang string
	Text string
}

// Translator talks to the public Google translation endpoints. Two wire
// formats are supported; "translate" is the default.
type Translator struct {
	client *http.Client

	// endpoint bases, overridable in tests
	translateBase string
	clients5Base  string
}

// NewTranslator creates a translator with the production endpoints.
func NewTranslator() *Translator {
	return &Translator{
		client:        &http.Client{Timeout: httpTimeout},
		translateBase: "https://translate.googleapis.com",
		clients5Base:  "https://clients5.google.com",
	}
}

// Translate translates text. Empty from means auto-detect, empty to means
// English.
func (t *Translator) Translate(ctx context.Context, text, from, to string) (*Translation, error) {
	if from == "" {
		from = "auto"
	}
	if to == "" {
		to = "en"
	}

	u := fmt.Sprintf(
		"%s/translate_a/single?client=gtx&sl=%s&tl=%s&dt=t&q=%s",
		t.translateBase, from, to, url.QueryEscape(text),
	)
	body, err := t.get(ctx, u)
	if err != nil {
		return nil, err
	}
	return parseTranslateReply(body)
}

// TranslateDict uses the alternate "clients5" dictionary endpoint.
func (t *Translator) TranslateDict(ctx context.Context, text, from, to string) (*Translation, error) {
	if from == "" {
		from = "auto"
	}
	if to == "" {
		to = "en"
	}

	u := fmt.Sprintf(
		"%s/translate_a/t?client=dict-chrome-ex&sl=%s&tl=%s&dt=t&q=%s",
		t.clients5Base, from, to, url.QueryEscape(text),
	)
	body, err := t.get(ctx, u)
	if err != nil {
		return nil, err
	}
	return parseDictReply(body)
}

const mangleMaxLen = 800

const mangleHops = 4

// Mangle scrambles text by translating it through several random languages
// before landing on the final one.
func (t *Translator) Mangle(ctx context.Context, text, finalLang string, rnd *rand.Rand) (string, error) {
	if len(text) > mangleMaxLen {
		return "", errs.Malformedf("text is too long to mangle (>%d)", mangleMaxLen)
	}
	if finalLang == "" {
		finalLang = "en"
	}

	hops := make([]string, 0, mangleHops+1)
	for _, i := range rnd.Perm(len(Languages)) {
		if lang := Languages[i]; lang != finalLang {
			hops = append(hops, lang)
		}
		if len(hops) == mangleHops {
			break
		}
	}
	hops = append(hops, finalLang)

	from := "auto"
	for _, lang := range hops {
		tr, err := t.Translate(ctx, text, from, lang)
		if err != nil {
			return "", err
		}
		text = tr.Text
		from = lang

		// be gentle with the endpoint between hops
		select {
		case <-time.After(120 * time.Millisecond):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return text, nil
}

func (t *Translator) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building translate request: %w", err)
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, errs.Unavailablef("translation service is unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errs.Unavailablef("translation service replied %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// parseTranslateReply decodes the loosely typed array-of-arrays reply of the
// gtx endpoint: sentence pairs under index 0, detected language at index 2.
func parseTranslateReply(body []byte) (*Translation, error) {
	var raw []any
	if err := json.Unmarshal(body, &raw); err != nil || len(raw) < 3 {
		return nil, errs.Unavailablef("unexpected translation reply")
	}

	sentences, ok := raw[0].([]any)
	if !ok {
		return nil, errs.Unavailablef("unexpected translation reply")
	}
	var b strings.Builder
	for _, s := range sentences {
		pair, ok := s.([]any)
		if !ok || len(pair) == 0 {
			continue
		}
		if text, ok := pair[0].(string); ok {
			b.WriteString(text)
		}
	}

	lang, _ := raw[2].(string)
	return &Translation{Lang: lang, Text: b.String()}, nil
}

func parseDictReply(body []byte) (*Translation, error) {
	var raw struct {
		LdResult struct {
			SrcLangs []string `json:"srclangs"`
		} `json:"ld_result"`
		Sentences struct {
			Trans string `json:"trans"`
		} `json:"sentences"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errs.Unavailablef("unexpected translation reply")
	}

	lang := ""
	if len(raw.LdResult.SrcLangs) > 0 {
		lang = raw.LdResult.SrcLangs[0]
	}
	return &Translation{Lang: lang, Text: raw.Sentences.Trans}, nil
}
