package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/agentstation/registermodel/internal/config"
	"github.com/agentstation/registermodel/pkg/constants"
	"github.com/agentstation/registermodel/pkg/errors"
	"github.com/agentstation/registermodel/pkg/workspace"
)

// TokenSource supplies bearer tokens.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed bearer token.
type StaticToken string

// Token implements TokenSource.
func (s StaticToken) Token(context.Context) (string, error) {
	if strings.TrimSpace(string(s)) == "" {
		return "", errors.ErrUnauthorized
	}
	return string(s), nil
}

// expiryMargin refreshes cached tokens before they expire.
const expiryMargin = 2 * time.Minute

// AzureCredential fetches and caches tokens from an azcore credential.
type AzureCredential struct {
	cred   azcore.TokenCredential
	scopes []string

	mu      sync.Mutex
	token   string
	expires time.Time
	now     func() time.Time
}

// NewAzureCredential wraps cred for the given scopes, defaulting to the
// resource manager scope.
func NewAzureCredential(cred azcore.TokenCredential, scopes ...string) *AzureCredential {
	if len(scopes) == 0 {
		scopes = []string{constants.ARMScope}
	}
	return &AzureCredential{cred: cred, scopes: scopes, now: time.Now}
}

// NewDefaultAzureCredential builds an AzureCredential on the SDK's default
// credential chain (environment, workload identity, managed identity, CLI).
func NewDefaultAzureCredential() (*AzureCredential, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, errors.NewConfigError("auth", "create default azure credential", err)
	}
	return NewAzureCredential(cred), nil
}

// Token implements TokenSource.
func (a *AzureCredential) Token(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.token != "" && a.now().Add(expiryMargin).Before(a.expires) {
		return a.token, nil
	}

	tok, err := a.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: a.scopes})
	if err != nil {
		return "", errors.Join(errors.ErrUnauthorized, err)
	}
	a.token = tok.Token
	a.expires = tok.ExpiresOn
	return a.token, nil
}

// ForRun picks the token source for a run: the tracked run token, then
// AZURE_ACCESS_TOKEN, then the default Azure credential chain.
func ForRun(run *workspace.RunContext) (TokenSource, error) {
	if run != nil && !run.Offline && run.Token != "" {
		return StaticToken(run.Token), nil
	}
	if token := config.GetString(EnvAccessToken); token != "" {
		return StaticToken(token), nil
	}
	return NewDefaultAzureCredential()
}
