package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/filmstrip/internal/output"
)

// ErrUnsupportedFormat is returned for manifest paths that are not .yaml, .yml, .toml or .json.
var ErrUnsupportedFormat = errors.New("unsupported manifest format")

type codec struct {
	marshal   func(v any) ([]byte, error)
	unmarshal func(data []byte, v any) error
}

var codecs = map[string]codec{
	".yaml": {yaml.Marshal, yaml.Unmarshal},
	".yml":  {yaml.Marshal, yaml.Unmarshal},
	".toml": {toml.Marshal, toml.Unmarshal},
	".json": {marshalJSON, json.Unmarshal},
}

func marshalJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func codecFor(path string) (codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	c, ok := codecs[ext]
	if !ok {
		return codec{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return c, nil
}

// CheckPath reports whether path has a supported manifest extension.
func CheckPath(path string) error {
	_, err := codecFor(path)
	return err
}

// Encode marshals a manifest in the encoding picked from the extension of path.
func Encode(m *Manifest, path string) ([]byte, error) {
	c, err := codecFor(path)
	if err != nil {
		return nil, err
	}

	data, err := c.marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return data, nil
}

// Write writes a manifest to path through a temporary file, so a failed write leaves
// nothing behind.
func Write(m *Manifest, path string) error {
	data, err := Encode(m, path)
	if err != nil {
		return err
	}

	pending, err := output.StageBytes(path, data)
	if err != nil {
		return err
	}
	return pending.Commit()
}

// Read reads a manifest from path.
func Read(path string) (*Manifest, error) {
	c, err := codecFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := c.unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}

	return &m, nil
}
