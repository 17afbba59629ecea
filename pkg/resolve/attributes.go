// Package resolve implements the attribute-resolution pass: inline template
// expressions in string attributes first, then per-tag external attribute
// files. Both visitors mutate attribute values in place; tree shape never
// changes.
package resolve

import (
	"sort"

	"github.com/goliatone/go-coral/pkg/template"
	"github.com/goliatone/go-coral/pkg/tree"
)

// AttributeTemplateVisitor renders every string-valued attribute as an
// inline template against the node itself, replacing the value in place.
// Non-string values pass through untouched. Applied once per node, never
// re-rendered.
type AttributeTemplateVisitor struct {
	engine template.Renderer
}

// NewAttributeTemplateVisitor constructs the visitor around a template
// renderer.
func NewAttributeTemplateVisitor(engine template.Renderer) *AttributeTemplateVisitor {
	return &AttributeTemplateVisitor{engine: engine}
}

var _ tree.Visitor = (*AttributeTemplateVisitor)(nil)

// Visit renders the node's string attributes in sorted key order, for
// determinism. The context is rebuilt per attribute so a template can
// observe values the pass already rendered.
func (v *AttributeTemplateVisitor) Visit(n *tree.Node) error {
	var keys []string
	for key, value := range n.Attributes {
		if _, ok := value.(string); ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		src := n.Attributes[key].(string)
		if err := tree.CheckTemplateRefs(src, n); err != nil {
			return err
		}
		rendered, err := v.engine.RenderString(src, map[string]any{
			"node": n.TemplateContext(),
		})
		if err != nil {
			return err
		}
		n.Attributes[key] = rendered
	}
	return nil
}
