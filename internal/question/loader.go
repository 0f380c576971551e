package question

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned when a pool file extension has no codec.
var ErrUnknownFormat = errors.New("unknown question file format")

// document is the object form of a pool file. A bare list of questions is
// accepted as well.
type document struct {
	Questions []Question `json:"questions" yaml:"questions"`
}

// FormatFromPath picks the codec for a pool file by its extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// LoadFile reads a JSON or YAML question file and builds a Pool from it.
func LoadFile(path string) (*Pool, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open question file: %w", err)
	}
	defer f.Close()

	pool, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return pool, nil
}

// Decode reads questions in the given format and builds a Pool from them.
func Decode(r io.Reader, format Format) (*Pool, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}

	var questions []Question

	switch format {
	case FormatJSON:
		questions, err = decodeJSON(data)
	case FormatYAML:
		questions, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}

	return NewPool(questions)
}

func decodeJSON(data []byte) ([]Question, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var questions []Question
		if err := json.Unmarshal(trimmed, &questions); err != nil {
			return nil, fmt.Errorf("decode question list: %w", err)
		}
		return questions, nil
	}

	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("decode question document: %w", err)
	}
	return doc.Questions, nil
}

func decodeYAML(data []byte) ([]Question, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode question yaml: %w", err)
	}

	// Empty input yields a zero node.
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, nil
	}

	node := root.Content[0]

	if node.Kind == yaml.SequenceNode {
		var questions []Question
		if err := node.Decode(&questions); err != nil {
			return nil, fmt.Errorf("decode question list: %w", err)
		}
		return questions, nil
	}

	var doc document
	if err := node.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode question document: %w", err)
	}
	return doc.Questions, nil
}
