// Package catalog implements the read-only movie metadata client.
// The ledger never owns catalog content: it stores movie ids plus a
// denormalized title/showtime/date snapshot, and this client only
// enriches display reads.  A metadata failure must never affect
// quota or purchase correctness, so every error path degrades to a
// placeholder instead of propagating.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// ErrUnavailable is returned when the metadata provider cannot be
// reached, answers with a non-200 status, or no API key is
// configured.  Handlers translate it into a placeholder payload.
var ErrUnavailable = errors.New("movie metadata unavailable")

// Client fetches movie details from TMDB and caches responses.
// Lookup order is redis first (shared across instances), then an
// in-process cache used when redis is not configured, then the
// network.  Both caches hold the raw JSON body.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	rdb     *redis.Client // may be nil; redis caching is then skipped
	local   *gocache.Cache
	ttl     time.Duration
}

// New builds a Client.  An empty apiKey is allowed; every lookup
// then fails with ErrUnavailable and callers serve placeholders.
// rdb may be nil when redis is down, the in-process cache still
// bounds the request rate against the provider.
func New(apiKey, baseURL string, rdb *redis.Client, ttl time.Duration) *Client {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
		rdb:     rdb,
		local:   gocache.New(ttl, 2*ttl),
		ttl:     ttl,
	}
}

// Movie returns the raw metadata document for a movie id, including
// credits and videos.  The returned bytes are the provider's JSON
// as-is; the ledger does not reinterpret catalog content.
func (c *Client) Movie(ctx context.Context, movieID uint64) (json.RawMessage, error) {
	key := fmt.Sprintf("catalog:movie:%d", movieID)

	if c.rdb != nil {
		if bs, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(bs) > 0 {
			return bs, nil
		}
	}
	if v, ok := c.local.Get(key); ok {
		if bs, ok := v.([]byte); ok {
			return bs, nil
		}
	}

	if c.apiKey == "" {
		return nil, ErrUnavailable
	}
	url := fmt.Sprintf("%s/movie/%d?api_key=%s&append_to_response=credits,videos", c.baseURL, movieID, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, ErrUnavailable
	}
	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("catalog: fetch movie %d failed: %v", movieID, err)
		return nil, ErrUnavailable
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("catalog: fetch movie %d: status %d", movieID, resp.StatusCode)
		return nil, ErrUnavailable
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || !json.Valid(body) {
		return nil, ErrUnavailable
	}

	c.local.Set(key, body, c.ttl)
	if c.rdb != nil {
		_ = c.rdb.SetEx(ctx, key, body, c.ttl).Err()
	}
	return body, nil
}
