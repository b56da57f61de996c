// Package common contains shared constants and sentinel errors used across
// firemap components.
package common

// AuthorizationHeaderName is the HTTP header used to carry the bearer token
// on outbound API requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the session token in the Authorization header.
const BearerPrefix = "Bearer "

// Roles assigned by the server. Only editors see mutating actions.
const (
	RoleEditor = "Editor"
	RoleViewer = "Viewer"
)
