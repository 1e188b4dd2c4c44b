package globals

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/agentstation/registermodel/pkg/errors"
	"github.com/agentstation/registermodel/pkg/registry"
)

// StrictBool is a boolean flag that only accepts true, 1, false or 0.
// Unlike pflag's bool it always requires a value.
type StrictBool struct {
	name   string
	target *bool
}

// NewStrictBool binds a strict boolean flag named name to p.
func NewStrictBool(name string, p *bool, value bool) *StrictBool {
	*p = value
	return &StrictBool{name: name, target: p}
}

// ParseStrictBool parses s as a strict boolean.
func ParseStrictBool(field, s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, errors.NewValidationError(field, s, "must be one of true, 1, false, 0")
	}
}

// Set implements pflag.Value.
func (b *StrictBool) Set(s string) error {
	v, err := ParseStrictBool(b.name, s)
	if err != nil {
		return err
	}
	*b.target = v
	return nil
}

// String implements pflag.Value.
func (b *StrictBool) String() string {
	if b.target != nil && *b.target {
		return "true"
	}
	return "false"
}

// Type implements pflag.Value.
func (b *StrictBool) Type() string {
	return "true|false"
}

// FrameworkValue is an enum flag over the supported model types.
type FrameworkValue struct {
	target *registry.Framework
}

// NewFrameworkValue binds a model type flag to p with a default.
func NewFrameworkValue(p *registry.Framework, value registry.Framework) *FrameworkValue {
	*p = value
	return &FrameworkValue{target: p}
}

// Set implements pflag.Value.
func (f *FrameworkValue) Set(s string) error {
	v, err := registry.ParseFramework(s)
	if err != nil {
		return err
	}
	*f.target = v
	return nil
}

// String implements pflag.Value.
func (f *FrameworkValue) String() string {
	if f.target == nil {
		return ""
	}
	return f.target.String()
}

// Type implements pflag.Value.
func (f *FrameworkValue) Type() string {
	return "Custom|PRESETS"
}

var (
	_ pflag.Value = (*StrictBool)(nil)
	_ pflag.Value = (*FrameworkValue)(nil)
)
