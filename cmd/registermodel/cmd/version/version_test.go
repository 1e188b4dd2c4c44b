package version

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/registermodel/internal/appcontext"
)

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	cmd := NewCommand(&appcontext.Mock{VersionFunc: func() string { return "1.2.3" }})
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "registermodel version 1.2.3")
	assert.Contains(t, out.String(), "commit: unknown")
	assert.Contains(t, out.String(), "built by: test")
}
