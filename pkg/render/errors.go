package render

import "fmt"

// TemplateNotFoundError reports a tag with neither an inline registration
// nor a discoverable file template on the search path.
type TemplateNotFoundError struct {
	Tag string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("render: no template for tag %q", e.Tag)
}
