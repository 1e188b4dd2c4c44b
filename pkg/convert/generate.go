//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/agentstation/registermodel --repository.default-branch master --repository.path /pkg/convert

// Package convert rewrites PyTorch pickled weight files (*.bin) under a
// model directory as safetensors files, removing each original once its
// replacement is on disk.
package convert
