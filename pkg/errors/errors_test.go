package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/registermodel/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "model",
			ID:       "llama-ft:3",
		}
		assert.Equal(t, "model with ID llama-ft:3 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("model", "test")
		wrapped := fmt.Errorf("lookup: %w", base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("convert_to_safetensors", "maybe", "must be one of true, 1, false, 0")
		assert.Equal(t, "validation failed for field convert_to_safetensors: must be one of true, 1, false, 0", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "invalid options"}
		assert.Equal(t, "validation failed: invalid options", err.Error())
	})

	t.Run("WrapValidation nil passthrough", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapValidation("field", nil))
	})
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		status int
		target error
	}{
		{401, pkgerrors.ErrUnauthorized},
		{403, pkgerrors.ErrUnauthorized},
		{404, pkgerrors.ErrNotFound},
		{429, pkgerrors.ErrRateLimited},
		{503, pkgerrors.ErrRegistryUnavailable},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			err := pkgerrors.NewAPIError("azureml", tt.status, "boom")
			assert.True(t, errors.Is(err, tt.target))
			assert.Contains(t, err.Error(), "azureml")
			assert.Contains(t, err.Error(), fmt.Sprint(tt.status))
		})
	}

	t.Run("unwrap", func(t *testing.T) {
		base := errors.New("connection reset")
		err := pkgerrors.WrapAPI("azureml", 0, base)
		require.Error(t, err)
		assert.ErrorIs(t, err, base)
		assert.Equal(t, "API error from azureml: connection reset", err.Error())
	})
}

func TestIOError(t *testing.T) {
	base := errors.New("permission denied")
	err := pkgerrors.WrapIO("write", "/out/model_registration_details.json", base)

	var ioErr *pkgerrors.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "write", ioErr.Operation)
	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "/out/model_registration_details.json")
}

func TestParseError(t *testing.T) {
	err := pkgerrors.WrapParse("json", "finetune_args.json", errors.New("unexpected EOF"))
	assert.Equal(t, "parse error in json file finetune_args.json: unexpected EOF", err.Error())

	err = pkgerrors.NewParseError("pickle", "", "bad opcode", nil)
	assert.Equal(t, "pickle parse error: bad opcode", err.Error())
}

func TestResourceError(t *testing.T) {
	err := pkgerrors.WrapResource("register", "model", "my-model", errors.New("timeout"))
	assert.Equal(t, "failed to register model my-model: timeout", err.Error())

	err = pkgerrors.WrapResource("resolve", "workspace", "", errors.New("no config.json"))
	assert.Equal(t, "failed to resolve workspace: no config.json", err.Error())
}

func TestConversionError(t *testing.T) {
	base := errors.New("truncated")
	err := &pkgerrors.ConversionError{Source: "a.bin", Target: "a.safetensors", Err: base}
	assert.Equal(t, "convert a.bin to a.safetensors: truncated", err.Error())
	assert.ErrorIs(t, err, base)
}

func TestConfigError(t *testing.T) {
	err := pkgerrors.NewConfigError("workspace", "subscription_id is empty", nil)
	assert.Contains(t, err.Error(), "workspace")
	assert.Contains(t, err.Error(), "subscription_id")
	assert.Nil(t, err.Unwrap())
}
