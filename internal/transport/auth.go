package transport

import (
	"context"
	"net/http"

	"github.com/agentstation/registermodel/internal/auth"
	"github.com/agentstation/registermodel/pkg/errors"
)

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(ctx context.Context, req *http.Request) error
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ context.Context, _ *http.Request) error {
	// No authentication applied
	return nil
}

// BearerAuth implements Bearer token authentication backed by a token source.
type BearerAuth struct {
	Source auth.TokenSource
}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(ctx context.Context, req *http.Request) error {
	if a.Source == nil {
		return errors.ErrUnauthorized
	}
	token, err := a.Source.Token(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

// HeaderAuth implements custom header authentication.
type HeaderAuth struct {
	Header string
	Value  string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(_ context.Context, req *http.Request) error {
	req.Header.Set(a.Header, a.Value)
	return nil
}
