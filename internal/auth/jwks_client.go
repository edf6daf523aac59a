package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// KeySource supplies the current trusted signing keys. Verification itself
// never fetches anything; the source is asked once per request, before the
// token is handed to the verifier.
type KeySource interface {
	Keys(ctx context.Context) (KeySet, error)
}

// StaticKeys is a KeySource over a fixed KeySet. Used for tests and for
// deployments that pin their keys.
type StaticKeys struct {
	Set KeySet
}

func (s StaticKeys) Keys(context.Context) (KeySet, error) {
	return s.Set, nil
}

// JWKSClient fetches the identity provider's published JWKS document and
// caches the parsed KeySet for a TTL. Concurrent callers during a refresh
// share a single fetch.
type JWKSClient struct {
	url    string
	client *http.Client
	ttl    time.Duration
	now    func() time.Time

	mu        sync.RWMutex
	cached    KeySet
	fetchedAt time.Time
}

// NewJWKSClient builds a client for the given JWKS URL. A nil httpClient
// falls back to a client with a sane timeout.
func NewJWKSClient(url string, ttl time.Duration, httpClient *http.Client) *JWKSClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &JWKSClient{
		url:    url,
		client: httpClient,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Keys returns the cached KeySet, refreshing it when the TTL has lapsed.
// A failed refresh keeps serving the previous set if one exists.
func (c *JWKSClient) Keys(ctx context.Context) (KeySet, error) {
	c.mu.RLock()
	cached, fetchedAt := c.cached, c.fetchedAt
	c.mu.RUnlock()

	if cached.Len() > 0 && c.now().Sub(fetchedAt) < c.ttl {
		return cached, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another caller may have refreshed while we waited for the lock.
	if c.cached.Len() > 0 && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.cached, nil
	}

	set, err := c.fetch(ctx)
	if err != nil {
		if c.cached.Len() > 0 {
			return c.cached, nil
		}
		return KeySet{}, err
	}
	c.cached = set
	c.fetchedAt = c.now()
	return set, nil
}

func (c *JWKSClient) fetch(ctx context.Context) (KeySet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return KeySet{}, fmt.Errorf("build jwks request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return KeySet{}, fmt.Errorf("fetch jwks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return KeySet{}, errors.New("jwks endpoint returned " + resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return KeySet{}, fmt.Errorf("read jwks response: %w", err)
	}
	return ParseJWKS(body)
}
