package tree

import (
	"bytes"
	"encoding/json"
	"os"
)

// JSONBuilder converts a JSON object tree into a Node tree. Every object
// becomes a node whose attributes are its non-"children" keys; the optional
// "children" array is built recursively, in order. Numbers decode as
// json.Number so integer attributes render without a float suffix.
type JSONBuilder struct{}

// Build converts an already-decoded document. A non-object input yields a
// nil node (the recursion base case); non-object entries inside a children
// array are skipped.
func (b JSONBuilder) Build(data any) *Node {
	obj, ok := data.(map[string]any)
	if !ok {
		return nil
	}

	attrs := make(map[string]any, len(obj))
	for k, v := range obj {
		if k == KeyChildren {
			continue
		}
		attrs[k] = v
	}

	var children []*Node
	if raw, ok := obj[KeyChildren].([]any); ok {
		for _, entry := range raw {
			if child := b.Build(entry); child != nil {
				children = append(children, child)
			}
		}
	}
	return New(attrs, children...)
}

// BuildBytes decodes and builds a JSON document.
func (b JSONBuilder) BuildBytes(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, &ParseError{Format: "json", Err: err}
	}
	return b.Build(doc), nil
}

// BuildFile reads and builds a JSON document from disk.
func (b JSONBuilder) BuildFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return b.BuildBytes(data)
}
