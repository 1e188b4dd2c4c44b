// Package blob uploads local model directories to Azure storage containers.
package blob

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	"github.com/agentstation/registermodel/internal/fsutil"
	"github.com/agentstation/registermodel/pkg/errors"
	"github.com/agentstation/registermodel/pkg/logging"
)

// Credential authorizes writes to a container. AccountKey wins over
// SASToken when both are set.
type Credential struct {
	AccountKey string
	SASToken   string
}

// Target is the container an upload writes to.
type Target struct {
	// ServiceURL is the account's blob endpoint, e.g.
	// https://account.blob.core.windows.net/.
	ServiceURL  string
	AccountName string
	Container   string
	Credential  Credential
}

// Stats summarizes an upload.
type Stats struct {
	Files int   `json:"files"`
	Bytes int64 `json:"bytes"`
}

// Uploader writes directory trees as blobs.
type Uploader struct {
	options *azblob.ClientOptions
}

// Option configures an Uploader.
type Option func(*Uploader)

// WithClientOptions sets the options of the underlying blob client.
func WithClientOptions(o *azblob.ClientOptions) Option {
	return func(u *Uploader) {
		u.options = o
	}
}

// NewUploader creates an Uploader.
func NewUploader(opts ...Option) *Uploader {
	u := &Uploader{}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Uploader) client(t Target) (*azblob.Client, error) {
	switch {
	case t.Credential.AccountKey != "":
		cred, err := azblob.NewSharedKeyCredential(t.AccountName, t.Credential.AccountKey)
		if err != nil {
			return nil, errors.NewConfigError("datastore", "invalid account key for "+t.AccountName, err)
		}
		return azblob.NewClientWithSharedKeyCredential(t.ServiceURL, cred, u.options)
	case t.Credential.SASToken != "":
		return azblob.NewClientWithNoCredential(t.ServiceURL+"?"+strings.TrimPrefix(t.Credential.SASToken, "?"), u.options)
	}
	return nil, errors.NewConfigError("datastore", "no account key or SAS token for storage account "+t.AccountName, nil)
}

// UploadDir uploads every regular file under dir as prefix/<relative path>.
// Symlinks are followed. Blobs at the same names are overwritten.
func (u *Uploader) UploadDir(ctx context.Context, t Target, dir, prefix string) (*Stats, error) {
	logger := logging.FromContext(ctx)

	client, err := u.client(t)
	if err != nil {
		return nil, err
	}

	stats := &Stats{}
	err = fsutil.Walk(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.WrapIO("walk", p, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return errors.WrapIO("stat", p, err)
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return errors.WrapIO("resolve", p, err)
		}
		name := path.Join(prefix, filepath.ToSlash(rel))

		f, err := os.Open(p)
		if err != nil {
			return errors.WrapIO("open", p, err)
		}
		_, err = client.UploadFile(ctx, t.Container, name, f, nil)
		_ = f.Close()
		if err != nil {
			return errors.WrapResource("upload", "blob", t.Container+"/"+name, err)
		}

		logger.Debug().Str("blob", name).Int64("bytes", info.Size()).Msg("Uploaded file")
		stats.Files++
		stats.Bytes += info.Size()
		return nil
	})
	if err != nil {
		return stats, err
	}
	return stats, nil
}
