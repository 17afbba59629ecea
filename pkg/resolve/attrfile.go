package resolve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-coral/pkg/template"
	"github.com/goliatone/go-coral/pkg/tree"
)

// DefaultAttributeExt is the extension external attribute files use.
const DefaultAttributeExt = ".yaml"

// AttributeFileFormatError reports an external attribute file whose
// rendered content does not decode as a sequence of mappings.
type AttributeFileFormatError struct {
	Path string
	Err  error
}

func (e *AttributeFileFormatError) Error() string {
	return fmt.Sprintf("resolve: attribute file %s: %v", e.Path, e.Err)
}

func (e *AttributeFileFormatError) Unwrap() error { return e.Err }

// AttributeFileVisitor merges per-tag attribute files into visited nodes.
// Directories are scanned in order and the first one containing
// "{tag}.yaml" wins — directories are not merged. The file content is
// itself a template, rendered against the node before decoding; the decoded
// mappings merge into the node's attributes in order, later mappings and
// file values overriding. Nodes without a matching file in any directory
// are left unchanged.
type AttributeFileVisitor struct {
	engine template.Renderer
	dirs   []string
	ext    string
}

// NewAttributeFileVisitor constructs the visitor over an ordered directory
// search path.
func NewAttributeFileVisitor(engine template.Renderer, dirs []string) *AttributeFileVisitor {
	return &AttributeFileVisitor{engine: engine, dirs: dirs, ext: DefaultAttributeExt}
}

var _ tree.Visitor = (*AttributeFileVisitor)(nil)

// Visit locates and merges the node's attribute file, if any.
func (v *AttributeFileVisitor) Visit(n *tree.Node) error {
	tag, err := n.Tag()
	if err != nil {
		return err
	}

	for _, dir := range v.dirs {
		path := filepath.Join(dir, tag+v.ext)
		raw, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("resolve: read attribute file %s: %w", path, err)
		}
		return v.merge(n, path, string(raw))
	}
	return nil
}

func (v *AttributeFileVisitor) merge(n *tree.Node, path, raw string) error {
	if err := tree.CheckTemplateRefs(raw, n); err != nil {
		return err
	}
	rendered, err := v.engine.RenderString(raw, map[string]any{
		"node": n.TemplateContext(),
	})
	if err != nil {
		return err
	}
	if strings.TrimSpace(rendered) == "" {
		return nil
	}

	var mappings []map[string]any
	if err := yaml.Unmarshal([]byte(rendered), &mappings); err != nil {
		return &AttributeFileFormatError{Path: path, Err: err}
	}
	for _, mapping := range mappings {
		for key, value := range mapping {
			n.Attributes[key] = value
		}
	}
	return nil
}
