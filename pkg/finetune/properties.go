package finetune

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/agentstation/registermodel/pkg/constants"
	"github.com/agentstation/registermodel/pkg/errors"
)

// Property keys attached to every registration.
const (
	PropertyBaseModelID             = "baseModelId"
	PropertyBaseModelWeightsVersion = "baseModelWeightsVersion"
)

// propertySources maps property keys to the metadata keys they are read from.
var propertySources = map[string]string{
	PropertyBaseModelID: ModelAssetIDKey,
}

// Properties describes model provenance. Values are strings or numbers.
type Properties map[string]any

// ExtractProperties builds the provenance properties from metadata.
// The base model identifier must be present with at least three segments;
// its last two segments (version marker and version) are dropped.
func ExtractProperties(meta Metadata) (Properties, error) {
	props := Properties{}

	for propKey, metaKey := range propertySources {
		raw, ok := meta[metaKey]
		if !ok {
			return nil, errors.NewValidationError(metaKey, nil, "missing from fine-tune metadata")
		}
		value, ok := raw.(string)
		if !ok {
			return nil, errors.NewValidationError(metaKey, raw, "must be a string")
		}

		if propKey == PropertyBaseModelID {
			parts, ok := segments(value)
			if !ok {
				return nil, errors.NewValidationError(metaKey, value, "must have at least three '/'-separated segments")
			}
			value = strings.Join(parts[:len(parts)-2], "/")
		}
		props[propKey] = value
	}

	props[PropertyBaseModelWeightsVersion] = constants.BaseModelWeightsVersion

	return props, nil
}

// Strings renders every value as a string for the registry wire format.
// Whole floats keep one decimal place, so 1.0 renders as "1.0".
func (p Properties) Strings() map[string]string {
	out := make(map[string]string, len(p))
	for k, v := range p {
		out[k] = formatValue(v)
	}
	return out
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == math.Trunc(val) && !math.IsInf(val, 0) {
			return strconv.FormatFloat(val, 'f', 1, 64)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}
