package auth

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
)

// KeySet is an immutable lookup table of trusted public signing keys,
// indexed by key id. Construct it once and share it freely; nothing
// mutates it after construction.
type KeySet struct {
	keys map[string]*rsa.PublicKey
}

// NewKeySet builds a KeySet from an explicit kid to key mapping.
func NewKeySet(keys map[string]*rsa.PublicKey) KeySet {
	copied := make(map[string]*rsa.PublicKey, len(keys))
	for kid, key := range keys {
		copied[kid] = key
	}
	return KeySet{keys: copied}
}

// Key returns the public key registered under kid.
func (ks KeySet) Key(kid string) (*rsa.PublicKey, bool) {
	key, ok := ks.keys[kid]
	return key, ok
}

// Len reports the number of usable keys.
func (ks KeySet) Len() int {
	return len(ks.keys)
}

type jwksDocument struct {
	Keys []jwksEntry `json:"keys"`
}

type jwksEntry struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// ParseJWKS decodes a JWKS document into a KeySet. Non-RSA entries and
// entries without a kid are skipped; an entry with corrupt key material is
// an error rather than a silently smaller set.
func ParseJWKS(doc []byte) (KeySet, error) {
	var parsed jwksDocument
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return KeySet{}, fmt.Errorf("parse jwks: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(parsed.Keys))
	for _, entry := range parsed.Keys {
		if entry.Kty != "RSA" || entry.Kid == "" {
			continue
		}
		pub, err := rsaPublicKey(entry)
		if err != nil {
			return KeySet{}, fmt.Errorf("jwks key %q: %w", entry.Kid, err)
		}
		keys[entry.Kid] = pub
	}
	if len(keys) == 0 {
		return KeySet{}, errors.New("jwks contains no usable RSA keys")
	}
	return KeySet{keys: keys}, nil
}

func rsaPublicKey(entry jwksEntry) (*rsa.PublicKey, error) {
	if entry.N == "" || entry.E == "" {
		return nil, errors.New("missing modulus or exponent")
	}
	nBytes, err := base64.RawURLEncoding.DecodeString(entry.N)
	if err != nil {
		return nil, fmt.Errorf("decode modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(entry.E)
	if err != nil {
		return nil, fmt.Errorf("decode exponent: %w", err)
	}
	e := new(big.Int).SetBytes(eBytes).Int64()
	if e <= 0 || e > int64(^uint32(0)) {
		return nil, errors.New("exponent out of range")
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: int(e),
	}, nil
}
