package auth

import "strings"

const bearerScheme = "Bearer"

// ExtractBearer pulls the token out of an Authorization header value.
// Pure parsing: no logging, no shared state.
func ExtractBearer(rawHeader string) (string, *Rejection) {
	if rawHeader == "" {
		return "", reject(RejectionMissingHeader, "authorization header is required")
	}

	parts := strings.Fields(rawHeader)
	if len(parts) != 2 {
		return "", reject(RejectionMalformedHeader, "authorization header must be scheme and token")
	}

	// Scheme comparison is case-sensitive on purpose: "bearer" is rejected.
	if parts[0] != bearerScheme {
		return "", reject(RejectionUnsupportedScheme, "authorization header scheme must be Bearer")
	}

	return parts[1], nil
}
