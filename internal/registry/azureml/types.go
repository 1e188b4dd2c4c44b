package azureml

import (
	"github.com/agentstation/registermodel/pkg/registry"
)

// Wire values for modelType.
const (
	modelTypeCustom = "custom_model"
	modelTypePreset = "preset_model"
)

// ModelVersion is a workspace model version resource.
type ModelVersion struct {
	ID         string                 `json:"id,omitempty"`
	Name       string                 `json:"name,omitempty"`
	Type       string                 `json:"type,omitempty"`
	Properties ModelVersionProperties `json:"properties"`
	SystemData *SystemData            `json:"systemData,omitempty"`
}

// ModelVersionProperties holds the registered model's attributes.
type ModelVersionProperties struct {
	Description string            `json:"description"`
	Tags        map[string]string `json:"tags"`
	Properties  map[string]string `json:"properties"`
	ModelType   string            `json:"modelType"`
	ModelURI    string            `json:"modelUri"`
	IsArchived  bool              `json:"isArchived,omitempty"`
}

// SystemData contains resource metadata set by the service.
type SystemData struct {
	CreatedAt     string `json:"createdAt,omitempty"`
	CreatedBy     string `json:"createdBy,omitempty"`
	CreatedByType string `json:"createdByType,omitempty"`
}

// ListModelVersionsResponse is one page of model versions.
type ListModelVersionsResponse struct {
	Value    []ModelVersion `json:"value"`
	NextLink string         `json:"nextLink,omitempty"`
}

func toModelType(f registry.Framework) string {
	if f == registry.FrameworkPresets {
		return modelTypePreset
	}
	return modelTypeCustom
}

func fromModelType(s string) registry.Framework {
	if s == modelTypePreset {
		return registry.FrameworkPresets
	}
	return registry.FrameworkCustom
}

// toModel converts a version resource to a registry model.
func (v *ModelVersion) toModel(name string) *registry.Model {
	props := v.Properties.Properties
	if props == nil {
		props = map[string]string{}
	}
	tags := v.Properties.Tags
	if tags == nil {
		tags = map[string]string{}
	}
	return &registry.Model{
		ID:          v.ID,
		Name:        name,
		Version:     v.Name,
		Type:        fromModelType(v.Properties.ModelType),
		Properties:  props,
		Tags:        tags,
		Description: v.Properties.Description,
	}
}

// Datastore is a workspace datastore resource.
type Datastore struct {
	ID         string              `json:"id,omitempty"`
	Name       string              `json:"name"`
	Properties DatastoreProperties `json:"properties"`
}

// DatastoreProperties describes the storage behind a datastore.
type DatastoreProperties struct {
	DatastoreType string `json:"datastoreType"`
	AccountName   string `json:"accountName,omitempty"`
	ContainerName string `json:"containerName,omitempty"`
	Endpoint      string `json:"endpoint,omitempty"`
	Protocol      string `json:"protocol,omitempty"`
	IsDefault     bool   `json:"isDefault,omitempty"`
}

// ListDatastoresResponse is one page of datastores.
type ListDatastoresResponse struct {
	Value    []Datastore `json:"value"`
	NextLink string      `json:"nextLink,omitempty"`
}

// DatastoreSecrets is the body returned by listSecrets.
type DatastoreSecrets struct {
	SecretsType string `json:"secretsType"`
	Key         string `json:"key,omitempty"`
	SASToken    string `json:"sasToken,omitempty"`
}
