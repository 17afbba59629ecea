package tree

import (
	"encoding/xml"
	"os"
	"strings"
)

type xmlElement struct {
	XMLName  xml.Name
	Attrs    []xml.Attr   `xml:",any,attr"`
	Chardata string       `xml:",chardata"`
	Elements []xmlElement `xml:",any"`
}

// XMLBuilder converts an XML element tree into a Node tree. Element
// attributes become node attributes, with two synthesized keys: "tag" holds
// the element name and "text" the element's trimmed character data ("" when
// there is none). Children follow document order.
type XMLBuilder struct{}

// BuildBytes decodes and builds an XML document.
func (b XMLBuilder) BuildBytes(data []byte) (*Node, error) {
	var root xmlElement
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{Format: "xml", Err: err}
	}
	return b.build(root), nil
}

// BuildFile reads and builds an XML document from disk.
func (b XMLBuilder) BuildFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return b.BuildBytes(data)
}

func (b XMLBuilder) build(el xmlElement) *Node {
	attrs := make(map[string]any, len(el.Attrs)+2)
	for _, a := range el.Attrs {
		attrs[a.Name.Local] = a.Value
	}
	attrs[KeyTag] = el.XMLName.Local
	attrs[KeyText] = strings.TrimSpace(el.Chardata)

	children := make([]*Node, 0, len(el.Elements))
	for _, child := range el.Elements {
		children = append(children, b.build(child))
	}
	return New(attrs, children...)
}
