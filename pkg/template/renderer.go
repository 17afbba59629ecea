// Package template defines the rendering seam the resolution visitors and
// the render engine depend on. The pongo subpackage provides the production
// implementation.
package template

// Renderer is the template-engine contract: render an inline template
// string or a file-located template against a variable context, and extend
// the filter set. File templates resolve against an ordered search path,
// first match winning. Context values may include callables the engine
// exposes to template expressions.
type Renderer interface {
	RenderString(src string, data map[string]any) (string, error)
	RenderTemplate(name string, data map[string]any) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
}
