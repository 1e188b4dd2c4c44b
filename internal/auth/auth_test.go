package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/registermodel/pkg/errors"
	"github.com/agentstation/registermodel/pkg/workspace"
)

const jwt = "aaa.bbb.ccc"

type fakeCredential struct {
	calls   int
	scopes  []string
	expires time.Time
	err     error
}

func (f *fakeCredential) GetToken(_ context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	f.calls++
	f.scopes = opts.Scopes
	if f.err != nil {
		return azcore.AccessToken{}, f.err
	}
	return azcore.AccessToken{Token: jwt, ExpiresOn: f.expires}, nil
}

func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvAccessToken, EnvClientID, EnvTenantID, EnvClientSecret, EnvFederatedTokenFile} {
		t.Setenv(key, "")
	}
}

func TestStaticToken(t *testing.T) {
	tok, err := StaticToken(jwt).Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, jwt, tok)

	_, err = StaticToken(" ").Token(context.Background())
	assert.True(t, pkgerrors.IsUnauthorized(err))
}

func TestAzureCredential_Caches(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	fake := &fakeCredential{expires: now.Add(time.Hour)}
	cred := NewAzureCredential(fake)
	cred.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		tok, err := cred.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, jwt, tok)
	}
	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, []string{"https://management.azure.com/.default"}, fake.scopes)

	// Inside the refresh margin a new token is fetched.
	now = now.Add(59 * time.Minute)
	_, err := cred.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fake.calls)
}

func TestAzureCredential_Error(t *testing.T) {
	boom := errors.New("no managed identity endpoint")
	cred := NewAzureCredential(&fakeCredential{err: boom}, "scope/.default")

	_, err := cred.Token(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.True(t, pkgerrors.IsUnauthorized(err))
}

func TestForRun(t *testing.T) {
	clearCredentialEnv(t)

	src, err := ForRun(&workspace.RunContext{RunID: "r", Token: jwt})
	require.NoError(t, err)
	assert.Equal(t, StaticToken(jwt), src)

	t.Setenv(EnvAccessToken, "env.token.value")
	src, err = ForRun(&workspace.RunContext{Offline: true, Token: jwt})
	require.NoError(t, err)
	assert.Equal(t, StaticToken("env.token.value"), src)
}

func TestChecker_Check(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		run     *workspace.RunContext
		env     map[string]string
		state   State
		source  string
	}{
		{name: "local backend", backend: "local", state: StateOptional, source: SourceNone},
		{name: "run token", backend: "azureml", run: &workspace.RunContext{RunID: "r", Token: jwt}, state: StateConfigured, source: SourceRunToken},
		{name: "malformed run token", backend: "azureml", run: &workspace.RunContext{RunID: "r", Token: "opaque"}, state: StateInvalid, source: SourceRunToken},
		{name: "env token", backend: "azureml", run: &workspace.RunContext{Offline: true}, env: map[string]string{EnvAccessToken: jwt}, state: StateConfigured, source: SourceEnvToken},
		{name: "service principal", backend: "azureml", env: map[string]string{EnvClientID: "id", EnvTenantID: "t", EnvClientSecret: "s"}, state: StateConfigured, source: SourceServicePrincipal},
		{name: "service principal without secret", backend: "azureml", env: map[string]string{EnvClientID: "id", EnvTenantID: "t"}, state: StateInvalid, source: SourceServicePrincipal},
		{name: "nothing configured", backend: "azureml", state: StateMissing, source: SourceDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearCredentialEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			status := NewChecker().Check(tt.backend, tt.run)
			assert.Equal(t, tt.state, status.State)
			assert.Equal(t, tt.source, status.Source)
			assert.NotEmpty(t, status.Summary)
		})
	}
}
