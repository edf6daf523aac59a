package auth

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthorizer(t *testing.T) (*Authorizer, string) {
	t.Helper()
	key := newTestKey(t)
	verifier := NewVerifier(testIssuer, testAudience)
	authorizer := NewAuthorizer(verifier, StaticKeys{Set: keySetFor(key, testKid)})

	token := signToken(t, key, testKid, validClaims([]string{"get:drinks-detail"}))
	return authorizer, token
}

func rejectionKind(t *testing.T, err error) RejectionKind {
	t.Helper()
	var rej *Rejection
	require.ErrorAs(t, err, &rej)
	return rej.Kind
}

func TestAuthorize_Success(t *testing.T) {
	authorizer, token := newTestAuthorizer(t)

	claims, err := authorizer.Authorize(context.Background(), "Bearer "+token, "get:drinks-detail")
	require.NoError(t, err)
	assert.Equal(t, []string{"get:drinks-detail"}, claims.Permissions)
}

func TestAuthorize_MissingHeader(t *testing.T) {
	authorizer, _ := newTestAuthorizer(t)

	_, err := authorizer.Authorize(context.Background(), "", "get:drinks-detail")
	assert.Equal(t, RejectionMissingHeader, rejectionKind(t, err))
}

func TestAuthorize_BasicScheme(t *testing.T) {
	authorizer, _ := newTestAuthorizer(t)

	_, err := authorizer.Authorize(context.Background(), "Basic abc123", "get:drinks-detail")
	assert.Equal(t, RejectionUnsupportedScheme, rejectionKind(t, err))
}

func TestAuthorize_InsufficientPermission(t *testing.T) {
	authorizer, token := newTestAuthorizer(t)

	_, err := authorizer.Authorize(context.Background(), "Bearer "+token, "post:drinks")
	assert.Equal(t, RejectionPermissionDenied, rejectionKind(t, err))
}

func TestAuthorize_NoPermissionsClaim(t *testing.T) {
	key := newTestKey(t)
	authorizer := NewAuthorizer(
		NewVerifier(testIssuer, testAudience),
		StaticKeys{Set: keySetFor(key, testKid)},
	)
	token := signToken(t, key, testKid, validClaims(nil))

	_, err := authorizer.Authorize(context.Background(), "Bearer "+token, "post:drinks")
	assert.Equal(t, RejectionPermissionsClaimMissing, rejectionKind(t, err))
}

func TestAuthorize_Idempotent(t *testing.T) {
	authorizer, token := newTestAuthorizer(t)
	header := "Bearer " + token

	first, firstErr := authorizer.Authorize(context.Background(), header, "get:drinks-detail")
	second, secondErr := authorizer.Authorize(context.Background(), header, "get:drinks-detail")

	require.NoError(t, firstErr)
	require.NoError(t, secondErr)
	assert.Equal(t, first.Permissions, second.Permissions)
	assert.Equal(t, first.Subject, second.Subject)

	_, deniedFirst := authorizer.Authorize(context.Background(), header, "post:drinks")
	_, deniedSecond := authorizer.Authorize(context.Background(), header, "post:drinks")
	assert.Equal(t, rejectionKind(t, deniedFirst), rejectionKind(t, deniedSecond))
}

func TestAuthorize_KeySourceFailureIsInternal(t *testing.T) {
	authorizer := NewAuthorizer(
		NewVerifier(testIssuer, testAudience),
		failingKeySource{},
	)

	_, err := authorizer.Authorize(context.Background(), "Bearer whatever.x.y", "post:drinks")
	require.Error(t, err)
	var rej *Rejection
	assert.False(t, errors.As(err, &rej), "key source failures are not rejections")
}

type failingKeySource struct{}

func (failingKeySource) Keys(context.Context) (KeySet, error) {
	return KeySet{}, errors.New("jwks unavailable")
}

func TestRequirePermission_InjectsClaims(t *testing.T) {
	authorizer, token := newTestAuthorizer(t)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var rej *Rejection
			if errors.As(err, &rej) {
				return c.Status(rej.Status()).SendString(string(rej.Kind))
			}
			return c.Status(fiber.StatusInternalServerError).SendString("internal")
		},
	})
	app.Get("/protected", authorizer.RequirePermission("get:drinks-detail"), func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		require.True(t, ok)
		return c.SendString(claims.Subject)
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
