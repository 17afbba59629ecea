package tree

import "fmt"

// AttributeNotFoundError reports a key that neither the node nor any of its
// ancestors defines.
type AttributeNotFoundError struct {
	Key  string
	Node string
}

func (e *AttributeNotFoundError) Error() string {
	return fmt.Sprintf("tree: %s has no attribute %q", e.Node, e.Key)
}

// ParseError wraps the decoder failure for a malformed input document.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("tree: parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
