package tree

// Builder is the capability shared by the input-format builders: decode a
// document and convert its object tree into a Node tree.
type Builder interface {
	BuildBytes(data []byte) (*Node, error)
	BuildFile(path string) (*Node, error)
}

var (
	_ Builder = JSONBuilder{}
	_ Builder = XMLBuilder{}
	_ Builder = YAMLBuilder{}
)
