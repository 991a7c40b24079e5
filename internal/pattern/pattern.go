// Package pattern reads pattern documents: a named instruction program with
// optional symmetry and size, stored as YAML or as plain text.
package pattern

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"girih/internal/instruction"
)

// ErrFormat is returned for documents that do not have the expected shape.
var ErrFormat = errors.New("malformed pattern document")

// Document is a pattern as stored on disk. Zero Symmetry and Size mean the
// document leaves them to the configuration.
type Document struct {
	Name         string  `yaml:"name"`
	Symmetry     int     `yaml:"symmetry,omitempty"`
	Size         float64 `yaml:"size,omitempty"`
	Instructions []Entry `yaml:"instructions"`
}

// Entry is one round of a program: either a single instruction or a group
// written as a list.
type Entry instruction.Group

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*e = Entry{node.Value}
		return nil
	case yaml.SequenceNode:
		group := make(Entry, 0, len(node.Content))
		for _, n := range node.Content {
			if n.Kind != yaml.ScalarNode {
				return fmt.Errorf("%w: line %d: group entries must be instruction strings", ErrFormat, n.Line)
			}
			group = append(group, n.Value)
		}
		*e = group
		return nil
	default:
		return fmt.Errorf("%w: line %d: instruction must be a string or a list of strings", ErrFormat, node.Line)
	}
}

// MarshalYAML writes single-instruction entries as plain strings.
func (e Entry) MarshalYAML() (interface{}, error) {
	if len(e) == 1 {
		return e[0], nil
	}
	return []string(e), nil
}

// Program returns the document's instructions as a program.
func (d *Document) Program() instruction.Program {
	prog := make(instruction.Program, len(d.Instructions))
	for i, e := range d.Instructions {
		prog[i] = instruction.Group(e)
	}
	return prog
}

// Validate checks the document-level settings.
func (d *Document) Validate() error {
	if d.Symmetry < 0 {
		return fmt.Errorf("%w: symmetry %d", ErrFormat, d.Symmetry)
	}
	if d.Size < 0 {
		return fmt.Errorf("%w: size %g", ErrFormat, d.Size)
	}
	for i, e := range d.Instructions {
		if len(e) == 0 {
			return fmt.Errorf("%w: entry %d is an empty group", ErrFormat, i)
		}
	}
	return nil
}

// Load reads a document, choosing the format by extension: .yaml and .yml
// are YAML, anything else is the line format. Unnamed documents are named
// after the file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern: %w", err)
	}

	var doc *Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		doc, err = ParseYAML(bytes.NewReader(data))
	default:
		doc, err = ParseText(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}

// ParseYAML decodes a YAML document. Unknown keys are rejected.
func ParseYAML(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrFormat)
		}
		if errors.Is(err, ErrFormat) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// WriteYAML encodes d as YAML.
func WriteYAML(w io.Writer, d *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode pattern: %w", err)
	}
	return enc.Close()
}
