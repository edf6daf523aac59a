package auth

// CheckPermission decides whether the claims grant the required permission.
// A token without any permissions claim is reported separately from a token
// whose claimed set simply lacks the required entry.
func (c *Claims) CheckPermission(required string) *Rejection {
	if c.Permissions == nil {
		return reject(RejectionPermissionsClaimMissing, "token carries no permissions claim")
	}
	for _, granted := range c.Permissions {
		if granted == required {
			return nil
		}
	}
	return reject(RejectionPermissionDenied, "permission "+required+" is not granted")
}

// HasPermission reports membership without constructing a rejection.
func (c *Claims) HasPermission(required string) bool {
	return c.CheckPermission(required) == nil
}
