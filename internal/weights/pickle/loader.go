// Package pickle loads PyTorch checkpoint files (torch.save state dicts)
// into contiguous safetensors tensors.
package pickle

import (
	"container/list"
	"fmt"

	"github.com/nlpodyssey/gopickle/pytorch"
	"github.com/nlpodyssey/gopickle/types"

	"github.com/agentstation/registermodel/pkg/errors"
	"github.com/agentstation/registermodel/pkg/safetensors"
)

// Loader reads state dicts with gopickle. The zero value is ready to use.
type Loader struct{}

// New returns a Loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the checkpoint at path. Every top-level value must be a tensor.
func (l *Loader) Load(path string) ([]safetensors.Tensor, error) {
	obj, err := pytorch.Load(path)
	if err != nil {
		return nil, errors.NewParseError("pickle", path, "load checkpoint", err)
	}

	entries, err := stateDictEntries(obj)
	if err != nil {
		return nil, errors.NewParseError("pickle", path, err.Error(), err)
	}

	tensors := make([]safetensors.Tensor, 0, len(entries))
	for _, e := range entries {
		t, ok := e.value.(*pytorch.Tensor)
		if !ok {
			return nil, fmt.Errorf("%w: %s is %T, not a tensor", errors.ErrUnsupportedTensor, e.key, e.value)
		}
		st, err := materialize(e.key, t)
		if err != nil {
			return nil, err
		}
		tensors = append(tensors, st)
	}
	return tensors, nil
}

type entry struct {
	key   string
	value any
}

func stateDictEntries(obj any) ([]entry, error) {
	switch d := obj.(type) {
	case *types.OrderedDict:
		return listEntries(d.List)
	case *types.Dict:
		out := make([]entry, 0, len(*d))
		for _, de := range *d {
			key, ok := de.Key.(string)
			if !ok {
				return nil, fmt.Errorf("state dict key %v is %T, not a string", de.Key, de.Key)
			}
			out = append(out, entry{key: key, value: de.Value})
		}
		return out, nil
	default:
		return nil, fmt.Errorf("checkpoint root is %T, not a state dict", obj)
	}
}

func listEntries(l *list.List) ([]entry, error) {
	var out []entry
	if l == nil {
		return out, nil
	}
	for el := l.Front(); el != nil; el = el.Next() {
		de, ok := el.Value.(*types.OrderedDictEntry)
		if !ok {
			return nil, fmt.Errorf("unexpected ordered dict element %T", el.Value)
		}
		key, ok := de.Key.(string)
		if !ok {
			return nil, fmt.Errorf("state dict key %v is %T, not a string", de.Key, de.Key)
		}
		out = append(out, entry{key: key, value: de.Value})
	}
	return out, nil
}
