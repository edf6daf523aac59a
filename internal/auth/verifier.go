package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded payload of a verified token. It only ever exists
// for tokens whose signature checked out against the trusted key set.
//
// Permissions stays nil when the token carries no permissions claim at all,
// which is distinct from an explicitly empty list.
type Claims struct {
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// Verifier checks token signatures against a KeySet and validates the
// standard claims. It holds no mutable state and is safe for concurrent use.
type Verifier struct {
	issuer   string
	audience string
	now      func() time.Time
}

// VerifierOption customizes a Verifier.
type VerifierOption func(*Verifier)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) VerifierOption {
	return func(v *Verifier) {
		v.now = now
	}
}

// NewVerifier builds a Verifier expecting the given issuer and audience.
func NewVerifier(issuer, audience string, opts ...VerifierOption) *Verifier {
	v := &Verifier{issuer: issuer, audience: audience, now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify validates the token against keys and returns its claims. Every
// failure is a Rejection with a distinct kind; nothing here does I/O.
func (v *Verifier) Verify(token string, keys KeySet) (*Claims, *Rejection) {
	parser := jwt.NewParser(
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)

	claims := &Claims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		// Only the asymmetric RSA family is acceptable. Rejecting by method
		// type also covers "none" and HMAC signature-confusion attempts.
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, reject(RejectionUnsupportedAlgorithm, "token algorithm "+t.Method.Alg()+" is not allowed")
		}
		kid, _ := t.Header["kid"].(string)
		key, ok := keys.Key(kid)
		if !ok {
			return nil, reject(RejectionUnknownSigningKey, "token signing key is not trusted")
		}
		return key, nil
	})
	if err != nil {
		return nil, mapVerifyError(err, claims)
	}
	if !parsed.Valid {
		return nil, reject(RejectionInvalidSignature, "token could not be verified")
	}
	return claims, nil
}

// mapVerifyError translates jwt/v5 parse errors into rejection kinds,
// checking in the same order verification proceeds: structure, key
// selection, signature, then claim validity. jwt/v5 reports any missing
// required claim with a single sentinel, so the decoded claims are consulted
// to tell a missing exp from a missing iss or aud.
func mapVerifyError(err error, claims *Claims) *Rejection {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej
	}
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return reject(RejectionMalformedToken, "token is not a well-formed JWT")
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return reject(RejectionInvalidSignature, "token signature verification failed")
	case errors.Is(err, jwt.ErrTokenExpired):
		return reject(RejectionTokenExpired, "token is expired")
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return reject(RejectionIssuerMismatch, "token issuer is not accepted")
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return reject(RejectionAudienceMismatch, "token audience is not accepted")
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		switch {
		case claims.ExpiresAt == nil:
			return reject(RejectionTokenExpired, "token has no expiry")
		case claims.Issuer == "":
			return reject(RejectionIssuerMismatch, "token has no issuer")
		default:
			return reject(RejectionAudienceMismatch, "token has no audience")
		}
	default:
		return reject(RejectionMalformedToken, "token could not be parsed")
	}
}
