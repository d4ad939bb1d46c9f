package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/khatahub/khata-dashboard/internal/core/domain"
	"github.com/khatahub/khata-dashboard/internal/credential"
)

type stubAuthAPI struct {
	loginFn    func(ctx context.Context, email, password string) (string, *domain.Identity, error)
	registerFn func(ctx context.Context, data domain.RegistrationData) (string, *domain.Identity, error)
	logoutFn   func(ctx context.Context) error
	profileFn  func(ctx context.Context) (*domain.Identity, error)
}

func (s *stubAuthAPI) Login(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthAPI) Register(ctx context.Context, data domain.RegistrationData) (string, *domain.Identity, error) {
	return s.registerFn(ctx, data)
}

func (s *stubAuthAPI) Logout(ctx context.Context) error {
	return s.logoutFn(ctx)
}

func (s *stubAuthAPI) Profile(ctx context.Context) (*domain.Identity, error) {
	return s.profileFn(ctx)
}

func newFileStore(t *testing.T) credential.Store {
	t.Helper()
	store, err := credential.NewFileStore(filepath.Join(t.TempDir(), "credential.json"))
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	return store
}

func TestStore_Initialize_NoCredential(t *testing.T) {
	creds := newFileStore(t)
	stub := &stubAuthAPI{
		profileFn: func(ctx context.Context) (*domain.Identity, error) {
			t.Fatalf("profile should not be called without a credential")
			return nil, nil
		},
	}
	store := NewStore(stub, creds, zerolog.Nop())

	if store.Status() != domain.StatusInitializing {
		t.Fatalf("expected initializing before Initialize, got %s", store.Status())
	}

	store.Initialize(context.Background())

	if store.Status() != domain.StatusUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", store.Status())
	}
	if store.Identity() != nil {
		t.Fatalf("expected nil identity")
	}
}

func TestStore_Initialize_StoredCredentialValid(t *testing.T) {
	creds := newFileStore(t)
	if err := creds.Save("stored-token"); err != nil {
		t.Fatalf("save: %v", err)
	}

	stub := &stubAuthAPI{
		profileFn: func(ctx context.Context) (*domain.Identity, error) {
			return &domain.Identity{
				ID:           1,
				BusinessName: "Shah Traders",
				UserType:     domain.UserTypeRetailer,
				Phone:        "9900000000",
				Address:      "Pune",
			}, nil
		},
	}
	store := NewStore(stub, creds, zerolog.Nop())
	store.Initialize(context.Background())

	if store.Status() != domain.StatusAuthenticated {
		t.Fatalf("expected authenticated, got %s", store.Status())
	}
	ident := store.Identity()
	if ident == nil || ident.UserType != domain.UserTypeRetailer || ident.BusinessName != "Shah Traders" {
		t.Fatalf("unexpected identity: %+v", ident)
	}
}

func TestStore_Initialize_StoredCredentialRejected(t *testing.T) {
	creds := newFileStore(t)
	if err := creds.Save("expired-token"); err != nil {
		t.Fatalf("save: %v", err)
	}

	stub := &stubAuthAPI{
		profileFn: func(ctx context.Context) (*domain.Identity, error) {
			return nil, &domain.UpstreamError{StatusCode: 403, Detail: "token expired"}
		},
	}
	store := NewStore(stub, creds, zerolog.Nop())
	store.Initialize(context.Background())

	if store.Status() != domain.StatusUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", store.Status())
	}
	// Background check failures are silent.
	if store.LastError() != "" {
		t.Fatalf("expected no lastError, got %q", store.LastError())
	}
	if _, err := creds.Load(); !errors.Is(err, credential.ErrNotFound) {
		t.Fatalf("expected credential discarded, got %v", err)
	}
}

func TestStore_Initialize_RunsOnce(t *testing.T) {
	creds := newFileStore(t)
	if err := creds.Save("stored-token"); err != nil {
		t.Fatalf("save: %v", err)
	}

	calls := 0
	stub := &stubAuthAPI{
		profileFn: func(ctx context.Context) (*domain.Identity, error) {
			calls++
			return &domain.Identity{ID: 1, BusinessName: "Shah Traders", UserType: domain.UserTypeRetailer}, nil
		},
	}
	store := NewStore(stub, creds, zerolog.Nop())
	store.Initialize(context.Background())
	store.Initialize(context.Background())

	if calls != 1 {
		t.Fatalf("expected exactly one identity fetch, got %d", calls)
	}
	if store.Status() != domain.StatusAuthenticated {
		t.Fatalf("expected authenticated, got %s", store.Status())
	}
}

func TestStore_Login_SuccessPersistsCredential(t *testing.T) {
	creds := newFileStore(t)
	ident := &domain.Identity{ID: 7, BusinessName: "Mehta Supplies", UserType: domain.UserTypeSupplier}
	stub := &stubAuthAPI{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Identity, error) {
			if email != "mehta@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "fresh-token", ident, nil
		},
		profileFn: func(ctx context.Context) (*domain.Identity, error) {
			return ident, nil
		},
	}
	store := NewStore(stub, creds, zerolog.Nop())

	if err := store.Login(context.Background(), "mehta@example.com", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if store.Status() != domain.StatusAuthenticated {
		t.Fatalf("expected authenticated, got %s", store.Status())
	}
	if store.LastError() != "" {
		t.Fatalf("expected lastError cleared, got %q", store.LastError())
	}

	token, err := creds.Load()
	if err != nil || token != "fresh-token" {
		t.Fatalf("expected persisted token, got %q err=%v", token, err)
	}

	// Simulated reload: a fresh store over the same slot resolves to the
	// same identity.
	reloaded := NewStore(stub, creds, zerolog.Nop())
	reloaded.Initialize(context.Background())
	if reloaded.Status() != domain.StatusAuthenticated {
		t.Fatalf("expected authenticated after reload, got %s", reloaded.Status())
	}
	if got := reloaded.Identity(); got == nil || got.ID != 7 {
		t.Fatalf("unexpected identity after reload: %+v", got)
	}
}

func TestStore_Login_FailureSetsLastError(t *testing.T) {
	creds := newFileStore(t)
	stub := &stubAuthAPI{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Identity, error) {
			return "", nil, &domain.UpstreamError{StatusCode: 400, Detail: "Invalid credentials"}
		},
		profileFn: func(ctx context.Context) (*domain.Identity, error) {
			return nil, nil
		},
	}
	store := NewStore(stub, creds, zerolog.Nop())
	store.Initialize(context.Background())

	err := store.Login(context.Background(), "ghost@example.com", "wrong")
	if err == nil {
		t.Fatalf("expected error")
	}
	if store.LastError() != "Invalid credentials" {
		t.Fatalf("expected upstream detail, got %q", store.LastError())
	}
	if store.Status() != domain.StatusUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", store.Status())
	}
	if store.Identity() != nil {
		t.Fatalf("expected nil identity")
	}
	if _, err := creds.Load(); !errors.Is(err, credential.ErrNotFound) {
		t.Fatalf("expected no persisted credential, got %v", err)
	}
}

func TestStore_Login_TransportFailureUsesFallbackMessage(t *testing.T) {
	creds := newFileStore(t)
	stub := &stubAuthAPI{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Identity, error) {
			return "", nil, domain.ErrUnreachable
		},
	}
	store := NewStore(stub, creds, zerolog.Nop())

	if err := store.Login(context.Background(), "a@example.com", "pw"); err == nil {
		t.Fatalf("expected error")
	}
	if store.LastError() != "invalid credentials" {
		t.Fatalf("expected fallback message, got %q", store.LastError())
	}
}

func TestStore_Register_FailureFallbackMessage(t *testing.T) {
	creds := newFileStore(t)
	stub := &stubAuthAPI{
		registerFn: func(ctx context.Context, data domain.RegistrationData) (string, *domain.Identity, error) {
			return "", nil, &domain.UpstreamError{StatusCode: 400}
		},
	}
	store := NewStore(stub, creds, zerolog.Nop())

	if err := store.Register(context.Background(), domain.RegistrationData{UserType: "SUPPLIER"}); err == nil {
		t.Fatalf("expected error")
	}
	if store.LastError() != "registration failed" {
		t.Fatalf("expected fallback message, got %q", store.LastError())
	}
}

func TestStore_Register_Success(t *testing.T) {
	creds := newFileStore(t)
	stub := &stubAuthAPI{
		registerFn: func(ctx context.Context, data domain.RegistrationData) (string, *domain.Identity, error) {
			if data.UserType != "RETAILER" {
				t.Fatalf("unexpected user type: %s", data.UserType)
			}
			return "reg-token", &domain.Identity{ID: 3, BusinessName: "Shah Traders", UserType: domain.UserTypeRetailer}, nil
		},
	}
	store := NewStore(stub, creds, zerolog.Nop())

	if err := store.Register(context.Background(), domain.RegistrationData{UserType: "RETAILER"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if store.Status() != domain.StatusAuthenticated {
		t.Fatalf("expected authenticated, got %s", store.Status())
	}
	if token, err := creds.Load(); err != nil || token != "reg-token" {
		t.Fatalf("expected persisted token, got %q err=%v", token, err)
	}
}

func TestStore_Logout_AlwaysClears(t *testing.T) {
	creds := newFileStore(t)
	if err := creds.Save("live-token"); err != nil {
		t.Fatalf("save: %v", err)
	}

	stub := &stubAuthAPI{
		logoutFn: func(ctx context.Context) error {
			return domain.ErrUnreachable
		},
		profileFn: func(ctx context.Context) (*domain.Identity, error) {
			return &domain.Identity{ID: 1, BusinessName: "Shah Traders", UserType: domain.UserTypeRetailer}, nil
		},
	}
	store := NewStore(stub, creds, zerolog.Nop())
	store.Initialize(context.Background())
	if store.Status() != domain.StatusAuthenticated {
		t.Fatalf("precondition: expected authenticated")
	}

	store.Logout(context.Background())

	if store.Status() != domain.StatusUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", store.Status())
	}
	if store.Identity() != nil {
		t.Fatalf("expected nil identity")
	}
	if _, err := creds.Load(); !errors.Is(err, credential.ErrNotFound) {
		t.Fatalf("expected credential cleared, got %v", err)
	}
}

func TestStore_Invalidate(t *testing.T) {
	creds := newFileStore(t)
	if err := creds.Save("t"); err != nil {
		t.Fatalf("save: %v", err)
	}
	stub := &stubAuthAPI{
		profileFn: func(ctx context.Context) (*domain.Identity, error) {
			return &domain.Identity{ID: 1, BusinessName: "Shah Traders", UserType: domain.UserTypeRetailer}, nil
		},
	}
	store := NewStore(stub, creds, zerolog.Nop())
	store.Initialize(context.Background())

	store.Invalidate()

	if store.Status() != domain.StatusUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", store.Status())
	}
	if store.Identity() != nil {
		t.Fatalf("expected nil identity")
	}
}
