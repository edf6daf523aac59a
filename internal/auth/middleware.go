package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/drinks-service/pkg/util"
)

const claimsKey = "auth_claims"

// Authorizer composes header extraction, signature verification and
// permission enforcement into a single reusable gate.
type Authorizer struct {
	verifier *Verifier
	keys     KeySource
}

// NewAuthorizer constructs the gate.
func NewAuthorizer(verifier *Verifier, keys KeySource) *Authorizer {
	return &Authorizer{verifier: verifier, keys: keys}
}

// Authorize runs the full decision for one request: extract the bearer
// token, verify it against the current key set, then check the required
// permission. The returned error is a *Rejection for every expected refusal;
// only a key source failure surfaces as an internal error.
func (a *Authorizer) Authorize(ctx context.Context, rawHeader, required string) (*Claims, error) {
	token, rej := ExtractBearer(rawHeader)
	if rej != nil {
		return nil, rej
	}

	keys, err := a.keys.Keys(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	claims, rej := a.verifier.Verify(token, keys)
	if rej != nil {
		return nil, rej
	}

	if rej := claims.CheckPermission(required); rej != nil {
		return nil, rej
	}
	return claims, nil
}

// RequirePermission guards a route with the given permission. On success the
// verified claims are stored in request locals for the handler; on failure
// the request short-circuits with the rejection.
func (a *Authorizer) RequirePermission(required string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := a.Authorize(c.UserContext(), c.Get(fiber.HeaderAuthorization), required)
		if err != nil {
			return err
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// ClaimsFromContext retrieves the claims stored by RequirePermission.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}
