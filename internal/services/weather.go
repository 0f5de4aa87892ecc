package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/peonbot/peon/internal/errs"
)

const kelvinZero = 273.15

var compassDirections = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// WeatherClient queries current conditions from OpenWeather.
type WeatherClient struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewWeatherClient creates a client authenticated with the given API key.
func NewWeatherClient(token string) *WeatherClient {
	return &WeatherClient{
		client:  &http.Client{Timeout: httpTimeout},
		baseURL: "http://api.openweathermap.org",
		token:   token,
	}
}

// Current returns a formatted conditions block for location.
func (w *WeatherClient) Current(ctx context.Context, location string) (string, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return "", errs.Malformedf("location required")
	}

	q := url.Values{"q": {location}, "appid": {w.token}}
	reqURL := fmt.Sprintf("%s/data/2.5/weather?%s", w.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("building weather request: %w", err)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return "", errs.Unavailablef("weather service is unreachable")
	}
	defer resp.Body.Close()

	var reply struct {
		Name    string `json:"name"`
		Message string `json:"message"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
			Pressure  int     `json:"pressure"`
		} `json:"main"`
		Wind *struct {
			Speed float64 `json:"speed"`
			Deg   float64 `json:"deg"`
		} `json:"wind"`
		Clouds *struct {
			All int `json:"all"`
		} `json:"clouds"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", errs.Unavailablef("unexpected weather reply")
	}

	if resp.StatusCode != http.StatusOK {
		if reply.Message != "" {
			return "", errs.Unavailablef("%s: %s", location, reply.Message)
		}
		return "", errs.Unavailablef("weather service replied %d", resp.StatusCode)
	}
	if len(reply.Weather) == 0 {
		return "", errs.Unavailablef("no weather data for %q", location)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "location: %s\n", reply.Name)
	fmt.Fprintf(&b, "description: %s (%s)\n", reply.Weather[0].Main, reply.Weather[0].Description)
	fmt.Fprintf(&b, "temperature: %.1f, feels like %.1f (celsius)\n",
		reply.Main.Temp-kelvinZero, reply.Main.FeelsLike-kelvinZero)
	fmt.Fprintf(&b, "humidity: %d%%\n", reply.Main.Humidity)
	fmt.Fprintf(&b, "pressure: %dhPa", reply.Main.Pressure)
	if reply.Wind != nil {
		fmt.Fprintf(&b, "\nwind: %gm/s, %s", reply.Wind.Speed, FormatDirection(reply.Wind.Deg))
	}
	if reply.Clouds != nil {
		fmt.Fprintf(&b, "\nclouds: %d%%", reply.Clouds.All)
	}
	return b.String(), nil
}

// FormatDirection converts wind degrees to a 16-point compass name.
func FormatDirection(degrees float64) string {
	return compassDirections[int(degrees/22.5+0.5)%16]
}
