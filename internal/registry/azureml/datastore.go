package azureml

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/agentstation/registermodel/internal/storage/blob"
	"github.com/agentstation/registermodel/internal/transport"
	"github.com/agentstation/registermodel/pkg/errors"
	"github.com/agentstation/registermodel/pkg/logging"
)

const (
	datastoreTypeBlob = "AzureBlob"
	// uploadRoot is where local models land in the default datastore.
	uploadRoot = "LocalUpload"
)

// Uploader copies a local directory into a blob container.
type Uploader interface {
	UploadDir(ctx context.Context, target blob.Target, dir, prefix string) (*blob.Stats, error)
}

func (c *Client) datastoresURL() string {
	return c.endpoint + c.workspace.ResourceID() + "/datastores"
}

// defaultDatastore returns the workspace's default blob datastore.
func (c *Client) defaultDatastore(ctx context.Context) (*Datastore, error) {
	next := c.withAPIVersion(c.datastoresURL()) + "&isDefault=true"
	for next != "" {
		resp, err := c.transport.Get(ctx, next)
		if err != nil {
			return nil, errors.WrapAPI(serviceName, 0, err)
		}
		var page ListDatastoresResponse
		if err := transport.DecodeResponse(resp, serviceName, &page); err != nil {
			return nil, err
		}
		for i := range page.Value {
			if page.Value[i].Properties.IsDefault {
				ds := page.Value[i]
				if ds.Properties.DatastoreType != datastoreTypeBlob {
					return nil, errors.NewConfigError("datastore",
						"default datastore "+ds.Name+" is "+ds.Properties.DatastoreType+", not "+datastoreTypeBlob, nil)
				}
				return &ds, nil
			}
		}
		next = page.NextLink
	}
	return nil, errors.NewNotFoundError("default datastore", c.workspace.Name)
}

// datastoreSecrets fetches the account key or SAS token of a datastore.
func (c *Client) datastoreSecrets(ctx context.Context, name string) (*DatastoreSecrets, error) {
	u := c.withAPIVersion(c.datastoresURL() + "/" + url.PathEscape(name) + "/listSecrets")
	resp, err := c.transport.Post(ctx, u, nil)
	if err != nil {
		return nil, errors.WrapAPI(serviceName, 0, err)
	}
	var secrets DatastoreSecrets
	if err := transport.DecodeResponse(resp, serviceName, &secrets); err != nil {
		return nil, err
	}
	return &secrets, nil
}

// serviceURL is the blob endpoint of the datastore's storage account.
func (d *Datastore) serviceURL() string {
	protocol := d.Properties.Protocol
	if protocol == "" {
		protocol = "https"
	}
	suffix := d.Properties.Endpoint
	if suffix == "" {
		suffix = "core.windows.net"
	}
	return protocol + "://" + d.Properties.AccountName + ".blob." + suffix + "/"
}

// datastoreURI is the model URI of path in datastore name.
func (c *Client) datastoreURI(name, path string) string {
	ws := c.workspace
	return "azureml://subscriptions/" + ws.SubscriptionID +
		"/resourcegroups/" + ws.ResourceGroup +
		"/workspaces/" + ws.Name +
		"/datastores/" + name +
		"/paths/" + path
}

// upload copies dir into the default datastore and returns its model URI.
func (c *Client) upload(ctx context.Context, dir string) (string, error) {
	logger := logging.FromContext(ctx)

	ds, err := c.defaultDatastore(ctx)
	if err != nil {
		return "", errors.WrapResource("resolve", "datastore", c.workspace.Name, err)
	}
	secrets, err := c.datastoreSecrets(ctx, ds.Name)
	if err != nil {
		return "", errors.WrapResource("read", "datastore secrets", ds.Name, err)
	}

	prefix := uploadRoot + "/" + c.newID() + "/" + filepath.Base(filepath.Clean(dir))
	target := blob.Target{
		ServiceURL:  ds.serviceURL(),
		AccountName: ds.Properties.AccountName,
		Container:   ds.Properties.ContainerName,
		Credential:  blob.Credential{AccountKey: secrets.Key, SASToken: secrets.SASToken},
	}

	logger.Info().
		Str("datastore", ds.Name).
		Str("path", prefix).
		Msg("Uploading model to datastore")
	stats, err := c.uploader.UploadDir(ctx, target, dir, prefix)
	if err != nil {
		return "", err
	}
	logger.Info().
		Int("files", stats.Files).
		Int64("bytes", stats.Bytes).
		Msg("Uploaded model")

	return c.datastoreURI(ds.Name, prefix), nil
}

// localPath returns the local directory behind a registration, or "" when
// the request already names a remote artifact.
func localPath(uri, path string) string {
	switch {
	case strings.HasPrefix(uri, "file://"):
		return strings.TrimPrefix(uri, "file://")
	case uri == "" && path != "" && !strings.Contains(path, "://"):
		return path
	}
	return ""
}
