// Package common contains constants shared by the client's transport,
// session and storage layers.
package common

const (
	// AuthorizationHeaderName carries the bearer credential on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the credential in the Authorization header.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName tags each outbound request for log correlation.
	RequestIDHeaderName = "X-Request-ID"

	// CredentialKey is the well-known storage key of the persisted credential.
	CredentialKey = "jwtToken"

	// DateLayout is the wire format of reading dates.
	DateLayout = "2006-01-02"
)
