package errs

import (
	"context"
	"errors"
	"fmt"
)

// UnknownProvider is returned when resolving a provider name nobody registered.
type UnknownProvider struct {
	Name string
}

func (e UnknownProvider) Error() string {
	return fmt.Sprintf("unknown provider %q", e.Name)
}

// MissingCredentials is returned when a known provider lacks required configuration.
type MissingCredentials struct {
	Provider string
	Vars     []string
}

func (e MissingCredentials) Error() string {
	return fmt.Sprintf("missing credentials for provider %q: %v", e.Provider, e.Vars)
}

// Unsupported is returned when a provider lacks the requested capability.
type Unsupported struct {
	Provider   string
	Capability string
}

func (e Unsupported) Error() string {
	return fmt.Sprintf("provider %q does not support %s", e.Provider, e.Capability)
}

// UpstreamError is a non-timeout failure from a generation backend.
type UpstreamError struct {
	Status  int
	Message string
}

func (e UpstreamError) Error() string {
	return fmt.Sprintf("upstream error %d: %s", e.Status, e.Message)
}

// ErrUpstreamTimeout marks a generation call that exceeded its time budget.
var ErrUpstreamTimeout = errors.New("upstream timeout")

// ErrGone marks a push endpoint that is permanently unreachable (404/410).
var ErrGone = errors.New("subscription gone")

// IsTimeout reports whether err is timeout-class: either the upstream call
// reported a timeout or the job's own context deadline fired.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrUpstreamTimeout) || errors.Is(err, context.DeadlineExceeded)
}
