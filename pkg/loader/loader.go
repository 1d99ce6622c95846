// Package loader reads mind map documents from disk. JSON is the
// canonical format; YAML is accepted for hand-written maps. The decoded
// tree always comes back with every node carrying an id: missing ids are
// synthesized from traversal position so rendering can proceed.
package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/mindweave/pkg/metrics"
	"github.com/vanderheijden86/mindweave/pkg/model"
)

// Format identifies a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath infers the document format from a file extension.
// Unknown extensions default to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and decodes the mind map document at path.
func Load(path string) (*model.Node, error) {
	defer metrics.Timer(metrics.TreeLoad)()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map document: %w", err)
	}
	defer f.Close()

	root, err := Decode(f, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	return root, nil
}

// Decode parses one document from r in the given format.
func Decode(r io.Reader, format Format) (*model.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read map document: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty map document")
	}

	var root model.Node
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	}

	model.EnsureIDs(&root)
	return &root, nil
}

// Save writes the tree back out in the given format, preserving the
// children/hiddenChildren wire shape.
func Save(path string, root *model.Node) error {
	var (
		data []byte
		err  error
	)
	switch FormatForPath(path) {
	case FormatYAML:
		data, err = yaml.Marshal(root)
	default:
		data, err = json.MarshalIndent(root, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode map document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write map document: %w", err)
	}
	return nil
}
