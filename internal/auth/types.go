// Package auth provides bearer tokens for the model registry and reports
// which credential source a run would use.
package auth

// State represents the credential state for the registry.
type State int

const (
	// StateConfigured means a credential source is available.
	StateConfigured State = iota
	// StateMissing means no explicit credential is configured.
	StateMissing
	// StateInvalid means a credential was found but is malformed.
	StateInvalid
	// StateOptional means the backend needs no credentials.
	StateOptional
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateConfigured:
		return "configured"
	case StateMissing:
		return "missing"
	case StateInvalid:
		return "invalid"
	case StateOptional:
		return "optional"
	default:
		return "unknown"
	}
}

// Credential sources.
const (
	SourceRunToken         = "run token"
	SourceEnvToken         = "env"
	SourceServicePrincipal = "service principal"
	SourceDefault          = "default azure credential"
	SourceNone             = "none"
)

// Environment variables consulted for credentials.
const (
	EnvAccessToken        = "AZURE_ACCESS_TOKEN"
	EnvClientID           = "AZURE_CLIENT_ID"
	EnvTenantID           = "AZURE_TENANT_ID"
	EnvClientSecret       = "AZURE_CLIENT_SECRET"
	EnvFederatedTokenFile = "AZURE_FEDERATED_TOKEN_FILE"
)

// Status describes the credential a registration would use.
type Status struct {
	State   State  `json:"state" yaml:"state"`
	Source  string `json:"source" yaml:"source"`
	Summary string `json:"summary" yaml:"summary"`
}

// Checker checks credential status without network calls.
type Checker struct{}

// NewChecker creates a new credential checker.
func NewChecker() *Checker {
	return &Checker{}
}
