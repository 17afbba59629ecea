package tree

import (
	"fmt"
	"sort"
	"strings"
)

// Reserved attribute keys. They live in the generic attribute map like any
// other key, so they participate in ancestor inheritance.
const (
	// KeyTag selects the render template and the external attribute file
	// that apply to a node.
	KeyTag = "tag"

	// KeyText carries an XML element's trimmed character data.
	KeyText = "text"

	// KeyChildren is the builders' convention for nested child objects; it
	// never appears in a built node's attribute map.
	KeyChildren = "children"

	// KeyOutput names a file path the node's rendered output is written to.
	KeyOutput = "coral-to"
)

// Node is a tree element carrying a generic attribute map and ordered
// children. Attribute lookup falls back through the parent chain, so a node
// inherits any attribute it does not define from its nearest ancestor — at
// read time, not copied at construction.
type Node struct {
	Attributes map[string]any
	Children   []*Node

	parent *Node
}

// New constructs a Node from named attributes and adopts the given
// children. A child's parent is fixed at adoption: tree shape is immutable
// afterwards, only attribute values change during the resolution pass.
func New(attrs map[string]any, children ...*Node) *Node {
	if attrs == nil {
		attrs = map[string]any{}
	}
	n := &Node{Attributes: attrs}
	for _, child := range children {
		if child == nil {
			continue
		}
		child.parent = n
		n.Children = append(n.Children, child)
	}
	return n
}

// Parent returns the adopting node, nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Lookup returns the node's own attribute, without consulting ancestors.
func (n *Node) Lookup(key string) (any, bool) {
	v, ok := n.Attributes[key]
	return v, ok
}

// Get resolves key on the node, walking up the parent chain when the node
// does not define it. An unresolved lookup at the root is a hard error.
func (n *Node) Get(key string) (any, error) {
	for cur := n; cur != nil; cur = cur.parent {
		if v, ok := cur.Attributes[key]; ok {
			return v, nil
		}
	}
	return nil, &AttributeNotFoundError{Key: key, Node: n.Label()}
}

// Tag returns the node's resolved tag attribute.
func (n *Node) Tag() (string, error) {
	v, err := n.Get(KeyTag)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(v), nil
}

// Label identifies the node in error messages: its own tag when present,
// a generic marker otherwise.
func (n *Node) Label() string {
	if tag, ok := n.Attributes[KeyTag]; ok {
		return fmt.Sprintf("node <%v>", tag)
	}
	return "node"
}

// String renders an indented multi-line dump of the subtree. Debug aid
// only, not part of the functional contract.
func (n *Node) String() string {
	var b strings.Builder
	n.dump(&b, 0)
	return b.String()
}

func (n *Node) dump(b *strings.Builder, level int) {
	keys := make([]string, 0, len(n.Attributes))
	for k := range n.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, n.Attributes[k]))
	}

	b.WriteString(strings.Repeat("    ", level))
	b.WriteString("Node(" + strings.Join(pairs, ", ") + ")")
	for _, child := range n.Children {
		b.WriteString("\n")
		child.dump(b, level+1)
	}
}
