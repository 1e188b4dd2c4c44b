package workspace_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/registermodel/pkg/errors"
	"github.com/agentstation/registermodel/pkg/workspace"
)

const configBody = `{
    "subscription_id": "sub-1",
    "resource_group": "rg-1",
    "workspace_name": "ws-1"
}`

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func setRunEnv(t *testing.T, runID string) {
	t.Helper()
	t.Setenv(workspace.EnvRunID, runID)
	t.Setenv(workspace.EnvRunToken, "tok")
	t.Setenv(workspace.EnvSubscription, "sub-env")
	t.Setenv(workspace.EnvResourceGroup, "rg-env")
	t.Setenv(workspace.EnvWorkspaceName, "ws-env")
	t.Setenv(workspace.EnvExperimentName, "finetune")
	t.Setenv(workspace.EnvServiceEndpoint, "https://eastus.api.azureml.ms")
}

func TestFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeConfig(t, path, configBody)

	ws, err := workspace.FromConfig(path)
	require.NoError(t, err)
	assert.Equal(t, &workspace.Workspace{SubscriptionID: "sub-1", ResourceGroup: "rg-1", Name: "ws-1"}, ws)
	assert.Equal(t,
		"/subscriptions/sub-1/resourceGroups/rg-1/providers/Microsoft.MachineLearningServices/workspaces/ws-1",
		ws.ResourceID())
}

func TestFromConfig_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := workspace.FromConfig(filepath.Join(t.TempDir(), "config.json"))
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("incomplete", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		writeConfig(t, path, `{"subscription_id": "sub-1"}`)
		_, err := workspace.FromConfig(path)
		var cfgErr *pkgerrors.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Contains(t, err.Error(), "resource_group")
	})
}

func TestFindConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	hidden := filepath.Join(root, ".azureml", "config.json")
	writeConfig(t, hidden, configBody)

	got, err := workspace.FindConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, hidden, got)

	direct := filepath.Join(root, "a", "config.json")
	writeConfig(t, direct, configBody)
	got, err = workspace.FindConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, direct, got, "nearest directory wins")
}

func TestCurrentRun(t *testing.T) {
	t.Run("tracked run", func(t *testing.T) {
		setRunEnv(t, "run-42")
		run := workspace.CurrentRun()
		assert.False(t, run.Offline)
		assert.Equal(t, "run-42", run.RunID)
		assert.Equal(t, "tok", run.Token)
		assert.Equal(t, "finetune", run.Experiment)
		require.NotNil(t, run.Workspace)
		assert.Equal(t, "ws-env", run.Workspace.Name)
	})

	t.Run("offline run id", func(t *testing.T) {
		setRunEnv(t, "OfflineRun_1234")
		assert.True(t, workspace.CurrentRun().Offline)
	})

	t.Run("no run id", func(t *testing.T) {
		setRunEnv(t, "")
		assert.True(t, workspace.CurrentRun().Offline)
	})
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("tracked run uses environment", func(t *testing.T) {
		run := &workspace.RunContext{RunID: "r", Workspace: &workspace.Workspace{SubscriptionID: "s", ResourceGroup: "g", Name: "w"}}
		ws, err := workspace.Resolve(ctx, run, "")
		require.NoError(t, err)
		assert.Equal(t, "w", ws.Name)
	})

	t.Run("offline uses explicit config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ws.json")
		writeConfig(t, path, configBody)
		ws, err := workspace.Resolve(ctx, &workspace.RunContext{Offline: true}, path)
		require.NoError(t, err)
		assert.Equal(t, "ws-1", ws.Name)
	})

	t.Run("offline without config fails", func(t *testing.T) {
		_, err := workspace.Resolve(ctx, &workspace.RunContext{Offline: true}, filepath.Join(t.TempDir(), "none.json"))
		require.Error(t, err)
		var resErr *pkgerrors.ResourceError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, "workspace", resErr.Resource)
	})
}

func TestModelURI(t *testing.T) {
	uri, err := workspace.ModelURI("/mnt/model", "azureml://datastores/ws/paths/m")
	require.NoError(t, err)
	assert.Equal(t, "azureml://datastores/ws/paths/m", uri)

	uri, err = workspace.ModelURI("azureml://registries/r/models/m/versions/1", "")
	require.NoError(t, err)
	assert.Equal(t, "azureml://registries/r/models/m/versions/1", uri)

	dir := t.TempDir()
	uri, err = workspace.ModelURI(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "file://"+filepath.ToSlash(dir), uri)
}
