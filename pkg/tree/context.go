package tree

import "regexp"

// KeySelf is the context key carrying the node pointer through the template
// data map. The "$" keeps it out of reach of template identifiers.
const KeySelf = "$node"

// TemplateContext returns the node as template data: the inheritance chain
// flattened with the nearest definition winning, child contexts under
// "children", and the node itself under KeySelf so the render callback can
// recover it.
func (n *Node) TemplateContext() map[string]any {
	var chain []*Node
	for cur := n; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}

	out := make(map[string]any, len(n.Attributes)+2)
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].Attributes {
			out[k] = v
		}
	}

	children := make([]map[string]any, 0, len(n.Children))
	for _, child := range n.Children {
		children = append(children, child.TemplateContext())
	}
	out[KeyChildren] = children
	out[KeySelf] = n
	return out
}

// FromContext recovers the node a TemplateContext was built for.
func FromContext(data map[string]any) (*Node, bool) {
	n, ok := data[KeySelf].(*Node)
	return n, ok
}

var (
	templateBlock = regexp.MustCompile(`\{\{[\s\S]*?\}\}|\{%[\s\S]*?%\}`)
	nodeRef       = regexp.MustCompile(`\bnode\.([A-Za-z_][A-Za-z0-9_]*)`)
)

// CheckTemplateRefs verifies that every node.<key> reference inside the
// template's expression and statement blocks resolves on n's inheritance
// chain, "children" always being available. The first unresolvable
// reference returns an AttributeNotFoundError. Literal text outside {{ }}
// and {% %} blocks is ignored.
//
// The template engine renders unresolved lookups as empty output, so this
// check runs before rendering to keep missing attributes a hard error.
func CheckTemplateRefs(src string, n *Node) error {
	for _, block := range templateBlock.FindAllString(src, -1) {
		for _, match := range nodeRef.FindAllStringSubmatch(block, -1) {
			key := match[1]
			if key == KeyChildren {
				continue
			}
			if _, err := n.Get(key); err != nil {
				return err
			}
		}
	}
	return nil
}
