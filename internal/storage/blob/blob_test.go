package blob_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/registermodel/internal/storage/blob"
	pkgerrors "github.com/agentstation/registermodel/pkg/errors"
)

// fakeStorage records block blob uploads by path.
type fakeStorage struct {
	mu    sync.Mutex
	blobs map[string]string
	query []string
}

func (f *fakeStorage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.Method != http.MethodPut || r.Header.Get("x-ms-blob-type") != "BlockBlob" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	f.blobs[r.URL.Path] = string(body)
	f.query = append(f.query, r.URL.Query().Get("sig"))
	w.WriteHeader(http.StatusCreated)
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestUploadDir(t *testing.T) {
	storage := &fakeStorage{blobs: map[string]string{}}
	srv := httptest.NewServer(storage)
	t.Cleanup(srv.Close)

	base := t.TempDir()
	real := filepath.Join(base, "real")
	writeFile(t, filepath.Join(real, "config.json"), "{}")
	writeFile(t, filepath.Join(real, "weights", "adapter_model.safetensors"), "tensors")
	model := filepath.Join(base, "model")
	require.NoError(t, os.Symlink(real, model))

	target := blob.Target{
		ServiceURL:  srv.URL + "/",
		AccountName: "acct",
		Container:   "azureml-blobstore",
		Credential:  blob.Credential{SASToken: "?sv=2022-11-02&sig=abc"},
	}
	stats, err := blob.NewUploader().UploadDir(context.Background(), target, model, "LocalUpload/1234/model")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Files)
	assert.Equal(t, int64(9), stats.Bytes)

	assert.Equal(t, map[string]string{
		"/azureml-blobstore/LocalUpload/1234/model/config.json":                       "{}",
		"/azureml-blobstore/LocalUpload/1234/model/weights/adapter_model.safetensors": "tensors",
	}, storage.blobs)
	assert.Equal(t, []string{"abc", "abc"}, storage.query)
}

func TestUploadDir_Errors(t *testing.T) {
	t.Run("no credential", func(t *testing.T) {
		_, err := blob.NewUploader().UploadDir(context.Background(), blob.Target{
			ServiceURL:  "https://acct.blob.core.windows.net/",
			AccountName: "acct",
			Container:   "c",
		}, t.TempDir(), "p")
		var cfgErr *pkgerrors.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Contains(t, err.Error(), "acct")
	})

	t.Run("upload rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		t.Cleanup(srv.Close)

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "config.json"), "{}")
		_, err := blob.NewUploader().UploadDir(context.Background(), blob.Target{
			ServiceURL: srv.URL + "/",
			Container:  "c",
			Credential: blob.Credential{SASToken: "sig=abc"},
		}, dir, "p")
		var resErr *pkgerrors.ResourceError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, "upload", resErr.Operation)
	})
}
