package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"github.com/peonbot/peon/internal/errs"
)

const urbanHost = "mashape-community-urban-dictionary.p.rapidapi.com"

var urbanBracketsRe = regexp.MustCompile(`[\[\]]`)

// UrbanDefinition is one urban dictionary entry, brackets stripped.
type UrbanDefinition struct {
	Word       string
	Definition string
	Example    string
	Permalink  string
}

// UrbanClient queries the urban dictionary RapidAPI endpoint.
type UrbanClient struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewUrbanClient creates a client authenticated with the given RapidAPI key.
func NewUrbanClient(token string) *UrbanClient {
	return &UrbanClient{
		client:  &http.Client{Timeout: httpTimeout},
		baseURL: "https://" + urbanHost,
		token:   token,
	}
}

// Define returns the top definition for term, or nil when there is none.
func (u *UrbanClient) Define(ctx context.Context, term string) (*UrbanDefinition, error) {
	reqURL := fmt.Sprintf("%s/define?term=%s", u.baseURL, url.QueryEscape(term))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building urban request: %w", err)
	}
	req.Header.Set("x-rapidapi-host", urbanHost)
	req.Header.Set("x-rapidapi-key", u.token)

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, errs.Unavailablef("urban dictionary is unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errs.Unavailablef("urban dictionary replied %d", resp.StatusCode)
	}

	var reply struct {
		List []struct {
			Word       string `json:"word"`
			Definition string `json:"definition"`
			Example    string `json:"example"`
			Permalink  string `json:"permalink"`
		} `json:"list"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, errs.Unavailablef("unexpected urban dictionary reply")
	}
	if len(reply.List) == 0 {
		return nil, nil
	}

	top := reply.List[0]
	return &UrbanDefinition{
		Word:       top.Word,
		Definition: urbanBracketsRe.ReplaceAllString(top.Definition, ""),
		Example:    urbanBracketsRe.ReplaceAllString(top.Example, ""),
		Permalink:  top.Permalink,
	}, nil
}
