package auth

import (
	"fmt"
	"strings"

	"github.com/agentstation/registermodel/internal/config"
	"github.com/agentstation/registermodel/pkg/workspace"
)

// Check reports the credential source for the given backend and run.
// Performs local checks only - no network calls are made.
func (c *Checker) Check(backend string, run *workspace.RunContext) *Status {
	if backend == "local" {
		return &Status{
			State:   StateOptional,
			Source:  SourceNone,
			Summary: "Local registry needs no credentials",
		}
	}

	if run != nil && !run.Offline && run.Token != "" {
		return checkToken(SourceRunToken, run.Token, "Using the tracked run token")
	}

	if token := config.GetString(EnvAccessToken); token != "" {
		return checkToken(SourceEnvToken, token, fmt.Sprintf("Using %s", EnvAccessToken))
	}

	if config.GetString(EnvClientID) != "" && config.GetString(EnvTenantID) != "" {
		if config.FirstString(EnvClientSecret, EnvFederatedTokenFile) == "" {
			return &Status{
				State:   StateInvalid,
				Source:  SourceServicePrincipal,
				Summary: fmt.Sprintf("Set %s or %s", EnvClientSecret, EnvFederatedTokenFile),
			}
		}
		return &Status{
			State:   StateConfigured,
			Source:  SourceServicePrincipal,
			Summary: fmt.Sprintf("Service principal %s", config.GetString(EnvClientID)),
		}
	}

	return &Status{
		State:   StateMissing,
		Source:  SourceDefault,
		Summary: "No explicit credential, falling back to managed identity or Azure CLI",
	}
}

// checkToken validates the JWT shape of a bearer token.
func checkToken(source, token, summary string) *Status {
	if len(strings.Split(token, ".")) != 3 {
		return &Status{
			State:   StateInvalid,
			Source:  source,
			Summary: "Token is not a JWT",
		}
	}
	return &Status{
		State:   StateConfigured,
		Source:  source,
		Summary: summary,
	}
}
