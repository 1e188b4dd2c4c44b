// Package workspace resolves the machine-learning workspace a model is
// registered into, either from the tracked pipeline run or, when running
// offline, from a workspace config.json file.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/agentstation/registermodel/pkg/constants"
	"github.com/agentstation/registermodel/pkg/errors"
)

// Workspace identifies a workspace within a subscription.
type Workspace struct {
	SubscriptionID string `json:"subscription_id" yaml:"subscription_id"`
	ResourceGroup  string `json:"resource_group" yaml:"resource_group"`
	Name           string `json:"workspace_name" yaml:"workspace_name"`
	Location       string `json:"location,omitempty" yaml:"location,omitempty"`
}

// Validate reports the first missing identifier.
func (w *Workspace) Validate() error {
	switch {
	case w == nil:
		return errors.NewConfigError("workspace", "no workspace configured", nil)
	case w.SubscriptionID == "":
		return errors.NewConfigError("workspace", "subscription_id is empty", nil)
	case w.ResourceGroup == "":
		return errors.NewConfigError("workspace", "resource_group is empty", nil)
	case w.Name == "":
		return errors.NewConfigError("workspace", "workspace_name is empty", nil)
	}
	return nil
}

// ResourceID returns the ARM resource path of the workspace.
func (w *Workspace) ResourceID() string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.MachineLearningServices/workspaces/%s",
		w.SubscriptionID, w.ResourceGroup, w.Name)
}

// String implements fmt.Stringer.
func (w *Workspace) String() string {
	return w.ResourceGroup + "/" + w.Name
}

// FromConfig loads a workspace config.json.
func FromConfig(path string) (*Workspace, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			return nil, errors.NewNotFoundError("workspace config", path)
		}
		return nil, errors.WrapParse("json", path, err)
	}

	ws := &Workspace{
		SubscriptionID: v.GetString("subscription_id"),
		ResourceGroup:  v.GetString("resource_group"),
		Name:           v.GetString("workspace_name"),
		Location:       v.GetString("location"),
	}
	if err := ws.Validate(); err != nil {
		return nil, errors.NewConfigError("workspace", path+": "+err.Error(), err)
	}
	return ws, nil
}

// FindConfig searches start and each parent directory for config.json or
// .azureml/config.json and returns the first match.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", errors.WrapIO("resolve", start, err)
	}

	for {
		for _, candidate := range []string{
			filepath.Join(dir, constants.WorkspaceConfigFile),
			filepath.Join(dir, constants.WorkspaceConfigDir, constants.WorkspaceConfigFile),
		} {
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.NewNotFoundError("workspace config", start)
		}
		dir = parent
	}
}
