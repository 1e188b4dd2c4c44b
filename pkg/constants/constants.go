// Package constants provides shared constants used throughout the registermodel codebase.
// This includes timeouts, file permissions, file names, and registry defaults
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the transport-level timeout for registry API requests.
	// The registration call itself is not bounded beyond this.
	DefaultHTTPTimeout = 5 * time.Minute

	// ShutdownTimeout is how long main waits for cleanup after a failed run
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// File and extension constants
const (
	// RegistrationDetailsFile is the result file written into the registration details folder
	RegistrationDetailsFile = "model_registration_details.json"

	// BinaryWeightsExtension is the extension of PyTorch pickled weight files
	BinaryWeightsExtension = ".bin"

	// SafetensorsExtension is the extension of converted weight files
	SafetensorsExtension = ".safetensors"

	// WorkspaceConfigFile is the workspace configuration file searched for offline runs
	WorkspaceConfigFile = "config.json"

	// WorkspaceConfigDir is the hidden directory that may hold the workspace configuration
	WorkspaceConfigDir = ".azureml"

	// ModelRecordFile is the record file name used by the local registry
	ModelRecordFile = "model.json"
)

// Default values
const (
	// DefaultModelName is the base name used when the fine-tune metadata has no usable identifier
	DefaultModelName = "default_model_name"

	// FineTunedSuffix separates the base model name from the unique token
	FineTunedSuffix = "-ft-"

	// DefaultRegistryBackend is the registry backend used when none is configured
	DefaultRegistryBackend = "azureml"

	// DefaultARMEndpoint is the Azure Resource Manager endpoint
	DefaultARMEndpoint = "https://management.azure.com"

	// DefaultARMAPIVersion is the api-version used for workspace model requests
	DefaultARMAPIVersion = "2023-04-01"

	// ARMScope is the token scope for Azure Resource Manager
	ARMScope = "https://management.azure.com/.default"

	// BaseModelWeightsVersion is the fixed schema marker attached to every registration
	BaseModelWeightsVersion = 1.0
)
