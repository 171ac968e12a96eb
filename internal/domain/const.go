package domain

// Inter-service identity propagation. Every mutating call to a backend
// service carries the resolved principal id, never a credential.
const (
	UserIDHeader   = "X-User-Id"
	UserRoleHeader = "X-User-Role"
)

// SessionCookieName carries the signed session id in session auth mode.
const SessionCookieName = "blog_session"

// MaxCommentLength bounds comment content, in runes.
const MaxCommentLength = 5000

// AuthMode selects how the gateway resolves the caller's identity.
// Exactly one mode is active per deployment.
const (
	AuthModeSession = "session"
	AuthModeToken   = "token"
)
