package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPermission_Granted(t *testing.T) {
	claims := &Claims{Permissions: []string{"a", "b"}}

	assert.Nil(t, claims.CheckPermission("a"))
	assert.Nil(t, claims.CheckPermission("b"))
	assert.True(t, claims.HasPermission("a"))
}

func TestCheckPermission_Denied(t *testing.T) {
	claims := &Claims{Permissions: []string{"a", "b"}}

	rej := claims.CheckPermission("c")
	require.NotNil(t, rej)
	assert.Equal(t, RejectionPermissionDenied, rej.Kind)
	assert.Equal(t, 403, rej.Status())
}

func TestCheckPermission_ClaimMissing(t *testing.T) {
	claims := &Claims{}

	for _, required := range []string{"get:drinks-detail", "post:drinks", ""} {
		rej := claims.CheckPermission(required)
		require.NotNil(t, rej)
		assert.Equal(t, RejectionPermissionsClaimMissing, rej.Kind)
		assert.Equal(t, 403, rej.Status())
	}
}

func TestCheckPermission_EmptyListIsDeniedNotMissing(t *testing.T) {
	claims := &Claims{Permissions: []string{}}

	rej := claims.CheckPermission("get:drinks-detail")
	require.NotNil(t, rej)
	assert.Equal(t, RejectionPermissionDenied, rej.Kind)
}

func TestCheckPermission_DuplicatesActAsSet(t *testing.T) {
	claims := &Claims{Permissions: []string{"a", "a", "b"}}

	assert.Nil(t, claims.CheckPermission("a"))
	assert.NotNil(t, claims.CheckPermission("c"))
}
