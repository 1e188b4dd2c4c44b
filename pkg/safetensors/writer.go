// Package safetensors writes and reads the safetensors weight format:
// an 8-byte little-endian header length, a JSON header describing each
// tensor, and the raw tensor bytes.
package safetensors

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/agentstation/registermodel/pkg/constants"
	"github.com/agentstation/registermodel/pkg/errors"
)

const (
	metadataKey = "__metadata__"
	headerAlign = 8
)

// Entry describes one tensor in the header.
type Entry struct {
	DType       DType    `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// Write serializes tensors and optional string metadata to w.
func Write(w io.Writer, tensors []Tensor, metadata map[string]string) error {
	ordered, err := order(tensors)
	if err != nil {
		return err
	}

	header, err := encodeHeader(ordered, metadata)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	var size [8]byte
	binary.LittleEndian.PutUint64(size[:], uint64(len(header)))
	if _, err := bw.Write(size[:]); err != nil {
		return err
	}
	if _, err := bw.Write(header); err != nil {
		return err
	}
	for _, t := range ordered {
		if _, err := bw.Write(t.Data); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes tensors to path, truncating any existing file.
func WriteFile(path string, tensors []Tensor, metadata map[string]string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	if err := Write(f, tensors, metadata); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.WrapIO("close", path, err)
	}
	return nil
}

// order validates tensors and sorts them by alignment, largest first,
// then by name.
func order(tensors []Tensor) ([]Tensor, error) {
	seen := make(map[string]struct{}, len(tensors))
	ordered := make([]Tensor, len(tensors))
	for i, t := range tensors {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[t.Name]; dup {
			return nil, errors.NewValidationError("name", t.Name, "duplicate tensor name")
		}
		seen[t.Name] = struct{}{}
		ordered[i] = t
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		si, sj := ordered[i].DType.Size(), ordered[j].DType.Size()
		if si != sj {
			return si > sj
		}
		return ordered[i].Name < ordered[j].Name
	})
	return ordered, nil
}

func encodeHeader(ordered []Tensor, metadata map[string]string) ([]byte, error) {
	fields := make(map[string]any, len(ordered)+1)
	if len(metadata) > 0 {
		fields[metadataKey] = metadata
	}

	var offset int64
	for _, t := range ordered {
		shape := t.Shape
		if shape == nil {
			shape = []int64{}
		}
		end := offset + int64(len(t.Data))
		fields[t.Name] = Entry{DType: t.DType, Shape: shape, DataOffsets: [2]int64{offset, end}}
		offset = end
	}

	header, err := json.Marshal(fields)
	if err != nil {
		return nil, errors.WrapParse("json", "", err)
	}
	if pad := len(header) % headerAlign; pad != 0 {
		header = append(header, bytes.Repeat([]byte{' '}, headerAlign-pad)...)
	}
	return header, nil
}
