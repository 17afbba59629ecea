package tree

// Visitor is a single-node operation applied during traversal. Visitors
// must be safely re-invocable across distinct trees.
type Visitor interface {
	Visit(n *Node) error
}

// Traverse applies v to n and then to every descendant, pre-order,
// left-to-right. The first error aborts the walk.
func Traverse(v Visitor, n *Node) error {
	if n == nil {
		return nil
	}
	if err := v.Visit(n); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := Traverse(v, child); err != nil {
			return err
		}
	}
	return nil
}

// Composite runs a sequence of visitors over a tree, one visitor's complete
// traversal before the next starts — never interleaved per node. Visitor N
// therefore sees the tree exactly as visitor N-1 left it.
type Composite struct {
	visitors []Visitor
}

// NewComposite builds a composite over the given visitors, in order.
func NewComposite(visitors ...Visitor) *Composite {
	return &Composite{visitors: visitors}
}

// Traverse runs every visitor's full traversal of the tree rooted at n.
func (c *Composite) Traverse(n *Node) error {
	for _, v := range c.visitors {
		if err := Traverse(v, n); err != nil {
			return err
		}
	}
	return nil
}
