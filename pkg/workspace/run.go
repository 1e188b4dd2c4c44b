package workspace

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/registermodel/internal/config"
	"github.com/agentstation/registermodel/pkg/errors"
	"github.com/agentstation/registermodel/pkg/logging"
)

// Environment variables set on tracked pipeline runs.
const (
	EnvRunID           = "AZUREML_RUN_ID"
	EnvRunToken        = "AZUREML_RUN_TOKEN"
	EnvSubscription    = "AZUREML_ARM_SUBSCRIPTION"
	EnvResourceGroup   = "AZUREML_ARM_RESOURCEGROUP"
	EnvWorkspaceName   = "AZUREML_ARM_WORKSPACE_NAME"
	EnvExperimentName  = "AZUREML_ARM_PROJECT_NAME"
	EnvServiceEndpoint = "AZUREML_SERVICE_ENDPOINT"
)

// offlinePrefix marks run IDs generated outside a tracked run.
const offlinePrefix = "OfflineRun_"

// RunContext describes the pipeline run this process belongs to.
type RunContext struct {
	RunID           string
	Experiment      string
	Token           string
	ServiceEndpoint string
	Workspace       *Workspace
	Offline         bool
}

// CurrentRun reads the run context from the environment.
func CurrentRun() *RunContext {
	runID := config.GetString(EnvRunID)
	run := &RunContext{
		RunID:           runID,
		Experiment:      config.GetString(EnvExperimentName),
		Token:           config.GetString(EnvRunToken),
		ServiceEndpoint: config.GetString(EnvServiceEndpoint),
		Offline:         IsOfflineRunID(runID),
	}

	ws := &Workspace{
		SubscriptionID: config.GetString(EnvSubscription),
		ResourceGroup:  config.GetString(EnvResourceGroup),
		Name:           config.GetString(EnvWorkspaceName),
	}
	if ws.Validate() == nil {
		run.Workspace = ws
	}
	return run
}

// IsOfflineRunID reports whether runID belongs to an untracked run.
func IsOfflineRunID(runID string) bool {
	return runID == "" || strings.HasPrefix(runID, offlinePrefix)
}

// Resolve returns the workspace for run. Tracked runs use the workspace
// from their environment; offline runs load configPath, or search upward
// from the working directory when configPath is empty.
func Resolve(ctx context.Context, run *RunContext, configPath string) (*Workspace, error) {
	logger := logging.FromContext(ctx)

	if run != nil && !run.Offline && run.Workspace != nil {
		logger.Debug().Str("workspace", run.Workspace.String()).Msg("Using workspace from run context")
		return run.Workspace, nil
	}

	if configPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.WrapIO("resolve", "working directory", err)
		}
		found, err := FindConfig(wd)
		if err != nil {
			return nil, errors.WrapResource("resolve", "workspace", "", err)
		}
		configPath = found
	}

	ws, err := FromConfig(configPath)
	if err != nil {
		return nil, errors.WrapResource("resolve", "workspace", "", err)
	}
	logger.Debug().
		Str("workspace", ws.String()).
		Str("config", configPath).
		Msg("Using workspace from config file")
	return ws, nil
}

// ModelURI returns the location of the model handed to the registry. An
// explicit URI wins and remote paths pass through; a local path becomes a
// file URI, which backends that cannot read local files upload first.
func ModelURI(modelPath, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if strings.Contains(modelPath, "://") {
		return modelPath, nil
	}

	abs, err := filepath.Abs(modelPath)
	if err != nil {
		return "", errors.WrapIO("resolve", modelPath, err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}
