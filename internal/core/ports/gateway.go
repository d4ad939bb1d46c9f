package ports

import (
	"context"

	"github.com/khatahub/khata-dashboard/internal/core/domain"
)

// AuthAPI is the slice of the remote khata API the session store depends on.
type AuthAPI interface {
	// Login exchanges credentials for a bearer token and the identity.
	Login(ctx context.Context, email, password string) (string, *domain.Identity, error)
	// Register creates an account and returns a bearer token and identity,
	// mirroring Login.
	Register(ctx context.Context, data domain.RegistrationData) (string, *domain.Identity, error)
	// Logout invalidates the server-side session. Callers treat failures
	// as non-fatal.
	Logout(ctx context.Context) error
	// Profile fetches the identity for the stored credential.
	Profile(ctx context.Context) (*domain.Identity, error)
}

// DataAPI is the slice of the remote khata API the dashboard screens consume.
type DataAPI interface {
	Health(ctx context.Context) error
	SearchRetailers(ctx context.Context, query string) ([]domain.Identity, error)
	GetRetailer(ctx context.Context, id int) (*domain.Identity, error)
	ListDues(ctx context.Context) ([]domain.Due, error)
	CreateDue(ctx context.Context, due domain.NewDue) (*domain.Due, error)
	DuesSummary(ctx context.Context) (*domain.DueSummary, error)
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	CreateTransaction(ctx context.Context, tx domain.NewTransaction) (*domain.Transaction, error)
	Profile(ctx context.Context) (*domain.Identity, error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Identity, error)
}
