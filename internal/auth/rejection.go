package auth

import "net/http"

// RejectionKind identifies why an authorization check refused a request.
// The kind doubles as the machine-readable error code in responses.
type RejectionKind string

const (
	RejectionMissingHeader           RejectionKind = "missing_header"
	RejectionMalformedHeader         RejectionKind = "malformed_header"
	RejectionUnsupportedScheme       RejectionKind = "unsupported_scheme"
	RejectionMalformedToken          RejectionKind = "malformed_token"
	RejectionUnsupportedAlgorithm    RejectionKind = "unsupported_algorithm"
	RejectionUnknownSigningKey       RejectionKind = "unknown_signing_key"
	RejectionInvalidSignature        RejectionKind = "invalid_signature"
	RejectionTokenExpired            RejectionKind = "token_expired"
	RejectionIssuerMismatch          RejectionKind = "issuer_mismatch"
	RejectionAudienceMismatch        RejectionKind = "audience_mismatch"
	RejectionPermissionsClaimMissing RejectionKind = "permissions_claim_missing"
	RejectionPermissionDenied        RejectionKind = "permission_denied"
)

// Status returns the HTTP status for the kind. Only the two scope failures
// are 403: the credential was valid but insufficient. Everything else means
// the credential itself could not be accepted, which is 401.
func (k RejectionKind) Status() int {
	switch k {
	case RejectionPermissionsClaimMissing, RejectionPermissionDenied:
		return http.StatusForbidden
	default:
		return http.StatusUnauthorized
	}
}

// Rejection is a refused authorization outcome. It is a plain value that
// travels up to the HTTP layer as an error; it never carries claims.
type Rejection struct {
	Kind    RejectionKind
	Message string
}

func (r *Rejection) Error() string {
	return string(r.Kind) + ": " + r.Message
}

// Status returns the HTTP status code this rejection maps to.
func (r *Rejection) Status() int {
	return r.Kind.Status()
}

func reject(kind RejectionKind, message string) *Rejection {
	return &Rejection{Kind: kind, Message: message}
}
