// Package credential persists the opaque bearer token that proves an
// authenticated session to the remote khata API. The credential slot is the
// only durable state the dashboard process owns: both the session store and
// the gateway client read it, and either may clear it.
package credential

import "errors"

// ErrNotFound is returned by Load when no credential is stored.
var ErrNotFound = errors.New("credential: not found")

// Store is a durable slot holding at most one bearer credential.
type Store interface {
	// Load returns the stored credential, or ErrNotFound when absent.
	Load() (string, error)
	// Save replaces the stored credential.
	Save(token string) error
	// Clear removes the stored credential. Clearing an empty slot is not
	// an error.
	Clear() error
}
