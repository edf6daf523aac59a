package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jwksFor(t *testing.T, kid string, pub *rsa.PublicKey, extra ...map[string]string) string {
	t.Helper()
	keys := []map[string]string{{
		"kty": "RSA",
		"kid": kid,
		"use": "sig",
		"alg": "RS256",
		"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
		"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
	}}
	keys = append(keys, extra...)
	doc, err := json.Marshal(map[string]any{"keys": keys})
	require.NoError(t, err)
	return string(doc)
}

func TestParseJWKS(t *testing.T) {
	key := newTestKey(t)
	doc := jwksFor(t, testKid, &key.PublicKey,
		map[string]string{"kty": "EC", "kid": "ec-key"},
		map[string]string{"kty": "RSA"}, // no kid, skipped
	)

	set, err := ParseJWKS([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())

	got, ok := set.Key(testKid)
	require.True(t, ok)
	assert.Equal(t, 0, got.N.Cmp(key.PublicKey.N))

	_, ok = set.Key("ec-key")
	assert.False(t, ok)
}

func TestParseJWKS_NoUsableKeys(t *testing.T) {
	_, err := ParseJWKS([]byte(`{"keys":[{"kty":"EC","kid":"ec-only"}]}`))
	require.Error(t, err)
}

func TestParseJWKS_CorruptKeyMaterial(t *testing.T) {
	doc := `{"keys":[{"kty":"RSA","kid":"bad","n":"!!!not-base64!!!","e":"AQAB"}]}`
	_, err := ParseJWKS([]byte(doc))
	require.Error(t, err)
}

func TestParseJWKS_InvalidJSON(t *testing.T) {
	_, err := ParseJWKS([]byte(`{`))
	require.Error(t, err)
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func bodyResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestJWKSClient_CachesWithinTTL(t *testing.T) {
	key := newTestKey(t)
	doc := jwksFor(t, testKid, &key.PublicKey)

	var fetches int32
	client := NewJWKSClient("https://issuer.test/.well-known/jwks.json", time.Minute, &http.Client{
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			atomic.AddInt32(&fetches, 1)
			return bodyResponse(http.StatusOK, doc), nil
		}),
	})

	ctx := context.Background()
	first, err := client.Keys(ctx)
	require.NoError(t, err)
	second, err := client.Keys(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches))
	assert.Equal(t, first.Len(), second.Len())
}

func TestJWKSClient_RefreshesAfterTTL(t *testing.T) {
	key := newTestKey(t)
	doc := jwksFor(t, testKid, &key.PublicKey)

	var fetches int32
	client := NewJWKSClient("https://issuer.test/.well-known/jwks.json", time.Minute, &http.Client{
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			atomic.AddInt32(&fetches, 1)
			return bodyResponse(http.StatusOK, doc), nil
		}),
	})

	now := time.Now()
	client.now = func() time.Time { return now }

	_, err := client.Keys(context.Background())
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = client.Keys(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&fetches))
}

func TestJWKSClient_ServesStaleOnFetchFailure(t *testing.T) {
	key := newTestKey(t)
	doc := jwksFor(t, testKid, &key.PublicKey)

	var fetches int32
	client := NewJWKSClient("https://issuer.test/.well-known/jwks.json", time.Minute, &http.Client{
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if atomic.AddInt32(&fetches, 1) == 1 {
				return bodyResponse(http.StatusOK, doc), nil
			}
			return bodyResponse(http.StatusInternalServerError, `{}`), nil
		}),
	})

	now := time.Now()
	client.now = func() time.Time { return now }

	first, err := client.Keys(context.Background())
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	second, err := client.Keys(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.Len(), second.Len())
}

func TestJWKSClient_ErrorsWithoutCache(t *testing.T) {
	client := NewJWKSClient("https://issuer.test/.well-known/jwks.json", time.Minute, &http.Client{
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			return bodyResponse(http.StatusServiceUnavailable, `{}`), nil
		}),
	})

	_, err := client.Keys(context.Background())
	require.Error(t, err)
}
