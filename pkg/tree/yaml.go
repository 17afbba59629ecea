package tree

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLBuilder converts a YAML object tree into a Node tree, following the
// same children-key convention as JSONBuilder.
type YAMLBuilder struct{}

// Build converts an already-decoded document.
func (b YAMLBuilder) Build(data any) *Node {
	return JSONBuilder{}.Build(data)
}

// BuildBytes decodes and builds a YAML document.
func (b YAMLBuilder) BuildBytes(data []byte) (*Node, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Format: "yaml", Err: err}
	}
	return b.Build(doc), nil
}

// BuildFile reads and builds a YAML document from disk.
func (b YAMLBuilder) BuildFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return b.BuildBytes(data)
}
