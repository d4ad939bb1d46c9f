package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized marks a 401 from the remote API. The gateway has
	// already cleared the stored credential by the time callers see it.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnreachable marks a transport-level failure: no response arrived
	// from the remote khata API at all.
	ErrUnreachable = errors.New("khata service unreachable")
)

// UpstreamError is a non-2xx reply from the remote khata API, with the
// human-readable detail extracted from its body when present.
type UpstreamError struct {
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("upstream status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Detail)
}

// UpstreamDetail extracts the server-provided message from err, or returns
// fallback when err carries none.
func UpstreamDetail(err error, fallback string) string {
	var ue *UpstreamError
	if errors.As(err, &ue) && ue.Detail != "" {
		return ue.Detail
	}
	return fallback
}
