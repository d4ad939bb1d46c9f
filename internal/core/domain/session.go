package domain

// SessionStatus tracks where the process-wide session is in its lifecycle.
type SessionStatus string

const (
	// StatusInitializing holds from process start until the stored
	// credential has been verified (or found absent).
	StatusInitializing    SessionStatus = "initializing"
	StatusAuthenticated   SessionStatus = "authenticated"
	StatusUnauthenticated SessionStatus = "unauthenticated"
)
