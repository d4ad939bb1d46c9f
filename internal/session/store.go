// Package session holds the process-wide authenticated identity. One
// logical session exists per process; switching users requires an explicit
// logout. Only the bearer credential persists across restarts — the
// identity is re-fetched on every Initialize.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/khatahub/khata-dashboard/internal/api/metrics"
	"github.com/khatahub/khata-dashboard/internal/core/domain"
	"github.com/khatahub/khata-dashboard/internal/core/ports"
	"github.com/khatahub/khata-dashboard/internal/credential"
)

const (
	fallbackLoginError    = "invalid credentials"
	fallbackRegisterError = "registration failed"
)

// Store implements ports.Session. The mutex guards field consistency only:
// overlapping Login/Register calls each hit the network independently and
// the last response to resolve wins the state update.
type Store struct {
	api   ports.AuthAPI
	creds credential.Store
	log   zerolog.Logger

	mu          sync.Mutex
	initialized bool
	status      domain.SessionStatus
	identity    *domain.Identity
	lastError   string
}

// NewStore creates the session in the initializing state.
func NewStore(api ports.AuthAPI, creds credential.Store, log zerolog.Logger) *Store {
	return &Store{
		api:    api,
		creds:  creds,
		log:    log,
		status: domain.StatusInitializing,
	}
}

// Initialize resolves the stored credential. Absent credential: immediately
// unauthenticated. Present: verify it with an identity fetch; any failure
// (network, expired token, server error) discards the credential and falls
// back to unauthenticated without surfacing an error. Runs exactly once per
// process lifetime; later calls are no-ops.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return
	}
	s.initialized = true
	s.mu.Unlock()

	if _, err := s.creds.Load(); err != nil {
		if !errors.Is(err, credential.ErrNotFound) {
			s.log.Warn().Err(err).Msg("credential load failed")
		}
		s.setState(domain.StatusUnauthenticated, nil)
		return
	}

	ident, err := s.api.Profile(ctx)
	if err != nil {
		s.log.Debug().Err(err).Msg("stored credential rejected, discarding")
		if err := s.creds.Clear(); err != nil {
			s.log.Error().Err(err).Msg("failed to discard credential")
		}
		s.setState(domain.StatusUnauthenticated, nil)
		return
	}

	s.log.Info().Str("business", ident.BusinessName).Str("user_type", ident.UserType).
		Msg("session restored from stored credential")
	s.setState(domain.StatusAuthenticated, ident)
}

// Login authenticates against the remote service. On failure the session
// state is untouched apart from lastError, so the caller can keep its form
// open.
func (s *Store) Login(ctx context.Context, email, password string) error {
	token, ident, err := s.api.Login(ctx, email, password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		s.recordError(domain.UpstreamDetail(err, fallbackLoginError))
		return err
	}

	s.persistCredential(token)
	s.setAuthenticated(ident)
	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	s.log.Info().Str("business", ident.BusinessName).Msg("login succeeded")
	return nil
}

// Register creates an account. The store performs no business validation of
// its own — shaping and validation are the server's responsibility — and
// follows the same success/failure contract as Login.
func (s *Store) Register(ctx context.Context, data domain.RegistrationData) error {
	token, ident, err := s.api.Register(ctx, data)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "failure").Inc()
		s.recordError(domain.UpstreamDetail(err, fallbackRegisterError))
		return err
	}

	s.persistCredential(token)
	s.setAuthenticated(ident)
	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	s.log.Info().Str("business", ident.BusinessName).Str("user_type", ident.UserType).
		Msg("registration succeeded")
	return nil
}

// Logout is best-effort: the server call may fail, the local state is
// cleared regardless and the caller never sees an error.
func (s *Store) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		s.log.Debug().Err(err).Msg("server-side logout failed, clearing locally anyway")
	}
	if err := s.creds.Clear(); err != nil {
		s.log.Error().Err(err).Msg("failed to clear credential on logout")
	}

	s.mu.Lock()
	s.identity = nil
	s.status = domain.StatusUnauthenticated
	s.lastError = ""
	s.mu.Unlock()
}

// Invalidate drops the session to unauthenticated without any server call.
// The gateway invokes this after a 401 has already cleared the credential.
func (s *Store) Invalidate() {
	s.setState(domain.StatusUnauthenticated, nil)
}

func (s *Store) Status() domain.SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Identity returns the authenticated identity, or nil. Non-nil exactly when
// Status is authenticated.
func (s *Store) Identity() *domain.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// LastError returns the message from the most recent failed auth operation.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

func (s *Store) persistCredential(token string) {
	if token == "" {
		return
	}
	if err := s.creds.Save(token); err != nil {
		s.log.Error().Err(err).Msg("failed to persist credential")
	}
}

func (s *Store) setAuthenticated(ident *domain.Identity) {
	s.mu.Lock()
	s.identity = ident
	s.status = domain.StatusAuthenticated
	s.lastError = ""
	s.mu.Unlock()
}

func (s *Store) setState(status domain.SessionStatus, ident *domain.Identity) {
	s.mu.Lock()
	s.status = status
	s.identity = ident
	s.mu.Unlock()
}

func (s *Store) recordError(msg string) {
	s.mu.Lock()
	s.lastError = msg
	s.mu.Unlock()
}
