// Package azureml registers models in a machine-learning workspace through
// the resource manager REST API.
package azureml

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/agentstation/registermodel/internal/transport"
	"github.com/agentstation/registermodel/pkg/constants"
	"github.com/agentstation/registermodel/pkg/errors"
	"github.com/agentstation/registermodel/pkg/logging"
	"github.com/agentstation/registermodel/pkg/registry"
	"github.com/agentstation/registermodel/pkg/workspace"
)

const serviceName = "azureml"

// Client implements registry.Client for a workspace.
type Client struct {
	transport  *transport.Client
	workspace  *workspace.Workspace
	endpoint   string
	apiVersion string
	uploader   Uploader
	newID      func() string
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the resource manager endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = strings.TrimRight(endpoint, "/")
		}
	}
}

// WithAPIVersion overrides the api-version query parameter.
func WithAPIVersion(v string) Option {
	return func(c *Client) {
		if v != "" {
			c.apiVersion = v
		}
	}
}

// WithUploader sets how local model directories reach the default
// datastore. Without one, registrations need a remote model URI.
func WithUploader(u Uploader) Option {
	return func(c *Client) {
		c.uploader = u
	}
}

// WithIDGenerator overrides the unique component of upload paths.
func WithIDGenerator(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// New creates a client for ws using t for HTTP.
func New(t *transport.Client, ws *workspace.Workspace, opts ...Option) (*Client, error) {
	if err := ws.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		transport:  t,
		workspace:  ws,
		endpoint:   constants.DefaultARMEndpoint,
		apiVersion: constants.DefaultARMAPIVersion,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var _ registry.Client = (*Client)(nil)

func (c *Client) versionsURL(name string) string {
	return c.endpoint + c.workspace.ResourceID() + "/models/" + url.PathEscape(name) + "/versions"
}

func (c *Client) withAPIVersion(u string) string {
	return u + "?api-version=" + url.QueryEscape(c.apiVersion)
}

// Register creates the next version of req.Name. A local model directory is
// uploaded to the workspace's default datastore first and registered from
// there.
func (c *Client) Register(ctx context.Context, req registry.Request) (*registry.Model, error) {
	uri := req.URI
	if dir := localPath(req.URI, req.Path); dir != "" {
		if c.uploader == nil {
			return nil, errors.NewValidationError("model_uri", req.URI,
				"local model paths cannot be registered without an upload; pass a remote --model_uri")
		}
		var err error
		if uri, err = c.upload(ctx, dir); err != nil {
			return nil, err
		}
	}
	if uri == "" {
		return nil, errors.NewValidationError("model_uri", req.URI, "a model URI is required for workspace registration")
	}

	version, err := c.nextVersion(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Debug().
		Str("model_name", req.Name).
		Str("version", version).
		Msg("Creating model version")

	tags := req.Tags
	if tags == nil {
		tags = map[string]string{}
	}
	props := req.Properties
	if props == nil {
		props = map[string]string{}
	}
	body := ModelVersion{
		Properties: ModelVersionProperties{
			Description: req.Description,
			Tags:        tags,
			Properties:  props,
			ModelType:   toModelType(req.Type),
			ModelURI:    uri,
		},
	}

	resp, err := c.transport.Put(ctx, c.withAPIVersion(c.versionsURL(req.Name)+"/"+url.PathEscape(version)), body)
	if err != nil {
		return nil, errors.WrapAPI(serviceName, 0, err)
	}

	var created ModelVersion
	if err := transport.DecodeResponse(resp, serviceName, &created); err != nil {
		return nil, err
	}
	if created.Name == "" {
		created.Name = version
	}
	return created.toModel(req.Name), nil
}

// Get fetches a single model version.
func (c *Client) Get(ctx context.Context, name, version string) (*registry.Model, error) {
	resp, err := c.transport.Get(ctx, c.withAPIVersion(c.versionsURL(name)+"/"+url.PathEscape(version)))
	if err != nil {
		return nil, errors.WrapAPI(serviceName, 0, err)
	}

	var mv ModelVersion
	if err := transport.DecodeResponse(resp, serviceName, &mv); err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewNotFoundError("model", name+":"+version)
		}
		return nil, err
	}
	return mv.toModel(name), nil
}

// nextVersion returns one past the highest integer version of name, or "1"
// when the model does not exist yet.
func (c *Client) nextVersion(ctx context.Context, name string) (string, error) {
	versions, err := c.listVersions(ctx, name)
	if err != nil {
		if errors.IsNotFound(err) {
			return "1", nil
		}
		return "", err
	}
	return strconv.Itoa(highestVersion(versions) + 1), nil
}

func (c *Client) listVersions(ctx context.Context, name string) ([]ModelVersion, error) {
	var all []ModelVersion
	next := c.withAPIVersion(c.versionsURL(name))
	for next != "" {
		resp, err := c.transport.Get(ctx, next)
		if err != nil {
			return nil, errors.WrapAPI(serviceName, 0, err)
		}
		var page ListModelVersionsResponse
		if err := transport.DecodeResponse(resp, serviceName, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Value...)
		next = page.NextLink
	}
	return all, nil
}

// highestVersion ignores non-integer version names.
func highestVersion(versions []ModelVersion) int {
	highest := 0
	for _, v := range versions {
		if n, err := strconv.Atoi(v.Name); err == nil && n > highest {
			highest = n
		}
	}
	return highest
}
