package auction

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peonbot/peon/internal/errs"
)

const buyoutPage = `<html><body><table>
<tr><td>Minimum Buyout</td><td>10g</td></tr>
<tr><td>Average Buyout</td><td>12g 20s</td></tr>
</table></body></html>`

func newTestScraper(t *testing.T, handler http.HandlerFunc) *Scraper {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewScraper(srv.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestScraperQuery(t *testing.T) {
	var fetches atomic.Int64
	s := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		w.Write([]byte(buyoutPage))
	})

	item := &Item{ID: "8831", Name: "dreamfoil"}
	require.NoError(t, s.Query(context.Background(), item))

	assert.Equal(t, Price(122000), item.Price)
	assert.False(t, item.LastUpdated.IsZero())
	assert.Equal(t, int64(1), fetches.Load())
}

func TestScraperQueryURL(t *testing.T) {
	s := NewScraper("https://ah.example.com/base/", slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		item *Item
		want string
	}{
		{&Item{ID: "0", Name: "item0"}, "https://ah.example.com/base/item0-0"},
		{
			&Item{ID: "123", Name: "A rather complex 'string' #abc!"},
			"https://ah.example.com/base/a-rather-complex-string-abc-123",
		},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.QueryURL(tt.item))
	}
}

func TestScraperCacheTTL(t *testing.T) {
	var fetches atomic.Int64
	s := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		w.Write([]byte(buyoutPage))
	})

	t0 := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	now := t0
	s.now = func() time.Time { return now }

	item := &Item{ID: "8831", Name: "dreamfoil"}
	require.NoError(t, s.Query(context.Background(), item))
	require.Equal(t, int64(1), fetches.Load())

	// one second before expiry: served from cache
	now = t0.Add(invalidateAfter - time.Second)
	require.NoError(t, s.Query(context.Background(), &Item{ID: "8831", Name: "dreamfoil"}))
	assert.Equal(t, int64(1), fetches.Load())

	// at expiry: exactly one refetch
	now = t0.Add(invalidateAfter)
	refreshed := &Item{ID: "8831", Name: "dreamfoil"}
	require.NoError(t, s.Query(context.Background(), refreshed))
	assert.Equal(t, int64(2), fetches.Load())
	assert.Equal(t, now, refreshed.LastUpdated)
}

func TestScraperFetchFailure(t *testing.T) {
	s := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	})

	err := s.Query(context.Background(), &Item{ID: "1", Name: "bleach"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.Unavailable))
}

func TestScraperMissingBuyoutCell(t *testing.T) {
	s := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>no auctions</p></body></html>"))
	})

	err := s.Query(context.Background(), &Item{ID: "1", Name: "bleach"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.Unavailable))
}

func TestScraperFailureDoesNotPopulateCache(t *testing.T) {
	var fetches atomic.Int64
	s := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		if fetches.Add(1) == 1 {
			http.Error(w, "nope", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(buyoutPage))
	})

	item := &Item{ID: "8831", Name: "dreamfoil"}
	require.Error(t, s.Query(context.Background(), item))

	// second query retries instead of serving a poisoned entry
	require.NoError(t, s.Query(context.Background(), item))
	assert.Equal(t, Price(122000), item.Price)
	assert.Equal(t, int64(2), fetches.Load())
}
