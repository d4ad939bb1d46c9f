package ports

import (
	"context"

	"github.com/khatahub/khata-dashboard/internal/core/domain"
)

// Session is the single source of truth for who is logged in.
type Session interface {
	// Initialize resolves the stored credential into an authenticated or
	// unauthenticated state. Runs exactly once per process; later calls
	// are no-ops.
	Initialize(ctx context.Context)
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, data domain.RegistrationData) error
	// Logout always succeeds from the caller's perspective.
	Logout(ctx context.Context)
	// Invalidate drops the session to unauthenticated without a server
	// call. Target of the gateway's global 401 hook.
	Invalidate()

	Status() domain.SessionStatus
	Identity() *domain.Identity
	LastError() string
}
