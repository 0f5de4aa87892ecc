package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/peonbot/peon/internal/errs"
)

func TestTranslateParsesReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "hello world" {
			t.Errorf("query q = %q, want %q", got, "hello world")
		}
		w.Write([]byte(`[[["привет ","hello ",null],["мир","world",null]],null,"en"]`))
	}))
	defer srv.Close()

	tr := NewTranslator()
	tr.translateBase = srv.URL

	got, err := tr.Translate(context.Background(), "hello world", "", "ru")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got.Lang != "en" {
		t.Errorf("Lang = %q, want en", got.Lang)
	}
	if got.Text != "привет мир" {
		t.Errorf("Text = %q, want %q", got.Text, "привет мир")
	}
}

func TestTranslateDictParsesReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ld_result":{"srclangs":["fi"]},"sentences":{"trans":"hello"}}`))
	}))
	defer srv.Close()

	tr := NewTranslator()
	tr.clients5Base = srv.URL

	got, err := tr.TranslateDict(context.Background(), "moi", "", "")
	if err != nil {
		t.Fatalf("TranslateDict() error = %v", err)
	}
	if got.Lang != "fi" || got.Text != "hello" {
		t.Errorf("TranslateDict() = %+v, want fi/hello", got)
	}
}

func TestTranslateUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	tr := NewTranslator()
	tr.translateBase = srv.URL

	_, err := tr.Translate(context.Background(), "hi", "", "")
	if err == nil {
		t.Fatal("Translate() expected error")
	}
	if !errs.Is(err, errs.Unavailable) {
		t.Errorf("Translate() error = %v, want unavailable kind", err)
	}
}

func TestIsLanguage(t *testing.T) {
	if !IsLanguage("en") || !IsLanguage("ru") {
		t.Error("expected en and ru to be supported")
	}
	if IsLanguage("xx") || IsLanguage("english") {
		t.Error("expected xx and english to be rejected")
	}
}

func TestWikiSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/Nuclear_fission") {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"title": "Nuclear fission",
			"extract": "Nuclear fission is a reaction.",
			"content_urls": {"desktop": {"page": "https://en.wikipedia.org/wiki/Nuclear_fission"}}
		}`))
	}))
	defer srv.Close()

	wc := NewWikiClient()
	wc.baseURL = srv.URL

	got, err := wc.Summary(context.Background(), "Nuclear_fission")
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	want := "Nuclear fission:\nNuclear fission is a reaction.\n(https://en.wikipedia.org/wiki/Nuclear_fission)"
	if got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestWikiSummaryMultiWordQuery(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{
			"title": "Orcish language",
			"extract": "A constructed language.",
			"content_urls": {"desktop": {"page": "https://en.wikipedia.org/wiki/Orcish_language"}}
		}`))
	}))
	defer srv.Close()

	wc := NewWikiClient()
	wc.baseURL = srv.URL

	if _, err := wc.Summary(context.Background(), "orcish language"); err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if want := "/api/rest_v1/page/summary/orcish_language"; gotPath != want {
		t.Errorf("request path = %q, want %q", gotPath, want)
	}
}

func TestWikiSummaryMissingPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"title": "Not found."}`))
	}))
	defer srv.Close()

	wc := NewWikiClient()
	wc.baseURL = srv.URL

	_, err := wc.Summary(context.Background(), "zzz")
	if err == nil {
		t.Fatal("Summary() expected error")
	}
	if !errs.Is(err, errs.Unavailable) {
		t.Errorf("Summary() error = %v, want unavailable kind", err)
	}
}

func TestUrbanDefine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-rapidapi-key") != "test-key" {
			t.Errorf("missing rapidapi key header")
		}
		w.Write([]byte(`{"list":[{
			"word": "lollygagging",
			"definition": "[wasting] time",
			"example": "stop [lollygagging]!",
			"permalink": "https://urbanup.example/1"
		}]}`))
	}))
	defer srv.Close()

	uc := NewUrbanClient("test-key")
	uc.baseURL = srv.URL

	got, err := uc.Define(context.Background(), "lollygagging")
	if err != nil {
		t.Fatalf("Define() error = %v", err)
	}
	if got.Definition != "wasting time" {
		t.Errorf("Definition = %q, want brackets stripped", got.Definition)
	}
	if got.Example != "stop lollygagging!" {
		t.Errorf("Example = %q, want brackets stripped", got.Example)
	}
}

func TestUrbanDefineNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"list":[]}`))
	}))
	defer srv.Close()

	uc := NewUrbanClient("test-key")
	uc.baseURL = srv.URL

	got, err := uc.Define(context.Background(), "qqq")
	if err != nil {
		t.Fatalf("Define() error = %v", err)
	}
	if got != nil {
		t.Errorf("Define() = %+v, want nil", got)
	}
}

func TestWeatherCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"name": "test_location",
			"weather": [{"main": "Clouds", "description": "broken clouds"}],
			"main": {"temp": 292.84, "feels_like": 292.88, "humidity": 77, "pressure": 1013},
			"wind": {"speed": 7.72, "deg": 270},
			"clouds": {"all": 75}
		}`))
	}))
	defer srv.Close()

	wc := NewWeatherClient("test-key")
	wc.baseURL = srv.URL

	got, err := wc.Current(context.Background(), "test_location")
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	want := "location: test_location\n" +
		"description: Clouds (broken clouds)\n" +
		"temperature: 19.7, feels like 19.7 (celsius)\n" +
		"humidity: 77%\n" +
		"pressure: 1013hPa\n" +
		"wind: 7.72m/s, W\n" +
		"clouds: 75%"
	if got != want {
		t.Errorf("Current() = %q, want %q", got, want)
	}
}

func TestWeatherUnknownLocation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"cod": "404", "message": "city not found"}`))
	}))
	defer srv.Close()

	wc := NewWeatherClient("test-key")
	wc.baseURL = srv.URL

	_, err := wc.Current(context.Background(), "nowhere")
	if err == nil {
		t.Fatal("Current() expected error")
	}
	if !errs.Is(err, errs.Unavailable) {
		t.Errorf("Current() error = %v, want unavailable kind", err)
	}
}

func TestFormatDirection(t *testing.T) {
	tests := []struct {
		deg  float64
		want string
	}{
		{0, "N"}, {90, "E"}, {180, "S"}, {270, "W"}, {350, "N"}, {200, "SSW"},
	}
	for _, tt := range tests {
		if got := FormatDirection(tt.deg); got != tt.want {
			t.Errorf("FormatDirection(%v) = %q, want %q", tt.deg, got, tt.want)
		}
	}
}
