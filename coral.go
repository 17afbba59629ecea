// Package coral renders attributed trees built from XML, JSON, or YAML
// documents through tag-indexed templates.
//
// A document becomes a tree of nodes carrying a generic attribute map;
// attribute lookup falls back through the parent chain, so a node inherits
// any attribute it does not define from its ancestors. A resolution pass
// first renders inline template expressions in string attributes, then
// merges per-tag external attribute files found on the search path. The
// render engine finally dispatches each node to a template selected by its
// tag, with templates recursing into children through a render callable.
// Nodes carrying a coral-to attribute additionally persist their rendered
// output to that path.
package coral

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-coral/pkg/render"
	"github.com/goliatone/go-coral/pkg/resolve"
	"github.com/goliatone/go-coral/pkg/searchpath"
	"github.com/goliatone/go-coral/pkg/template"
	"github.com/goliatone/go-coral/pkg/template/pongo"
	"github.com/goliatone/go-coral/pkg/tree"
)

// Format identifies the input document format.
type Format string

// Supported input formats. FormatAuto sniffs the format from the input's
// first non-space byte: '<' is XML, '{' or '[' is JSON, anything else YAML.
const (
	FormatAuto Format = ""
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Option customises the generator configuration.
type Option func(*Generator)

// WithRoots sets the input root paths the template search path derives
// from. The default is the current directory.
func WithRoots(roots ...string) Option {
	return func(g *Generator) {
		g.roots = append(g.roots, roots...)
	}
}

// WithSettings overrides the search-path settings.
func WithSettings(settings searchpath.Settings) Option {
	return func(g *Generator) {
		g.settings = settings
	}
}

// WithTemplates registers inline templates by tag; they take precedence
// over file templates of the same tag.
func WithTemplates(templates map[string]string) Option {
	return func(g *Generator) {
		for tag, src := range templates {
			g.templates[tag] = src
		}
	}
}

// WithFormat forces the input format instead of sniffing it.
func WithFormat(format Format) Option {
	return func(g *Generator) {
		g.format = format
	}
}

// WithRenderer injects a custom template renderer. The default is the
// pongo2 engine over the derived search path.
func WithRenderer(renderer template.Renderer) Option {
	return func(g *Generator) {
		g.renderer = renderer
	}
}

// WithLogf overrides the logger that reports coral-to file writes.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(g *Generator) {
		g.logf = logf
	}
}

// Generator coordinates the build → resolve → render pipeline for one
// input document.
type Generator struct {
	input     string
	format    Format
	roots     []string
	settings  searchpath.Settings
	templates map[string]string
	renderer  template.Renderer
	logf      func(format string, args ...any)
}

// New constructs a Generator for the given document, applying any provided
// options.
func New(input string, options ...Option) *Generator {
	g := &Generator{
		input:     input,
		settings:  searchpath.DefaultSettings(),
		templates: map[string]string{},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	if len(g.roots) == 0 {
		g.roots = []string{"."}
	}
	return g
}

// Generate builds the tree, runs the attribute-resolution pass, and
// renders the root node, returning the full output text. File writes for
// coral-to nodes happen during the render walk. All errors propagate
// unrecovered.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	if ctx == nil {
		return "", errors.New("coral: context is required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dirs, err := searchpath.Prepare(g.settings, g.roots)
	if err != nil {
		return "", err
	}

	renderer := g.renderer
	if renderer == nil {
		renderer = pongo.New(pongo.WithSearchPath(dirs...))
	}

	root, err := g.build()
	if err != nil {
		return "", err
	}
	if root == nil {
		return "", errors.New("coral: input document has no root object")
	}

	resolution := tree.NewComposite(
		resolve.NewAttributeTemplateVisitor(renderer),
		resolve.NewAttributeFileVisitor(renderer, dirs),
	)
	if err := resolution.Traverse(root); err != nil {
		return "", err
	}

	options := []render.Option{
		render.WithSearchPath(dirs...),
		render.WithTemplates(g.templates),
	}
	if g.logf != nil {
		options = append(options, render.WithLogf(g.logf))
	}
	return render.New(renderer, options...).Generate(root)
}

func (g *Generator) build() (*tree.Node, error) {
	builder, err := g.builder()
	if err != nil {
		return nil, err
	}
	return builder.BuildBytes([]byte(g.input))
}

func (g *Generator) builder() (tree.Builder, error) {
	format := g.format
	if format == FormatAuto {
		format = sniffFormat(g.input)
	}
	switch format {
	case FormatXML:
		return tree.XMLBuilder{}, nil
	case FormatJSON:
		return tree.JSONBuilder{}, nil
	case FormatYAML:
		return tree.YAMLBuilder{}, nil
	default:
		return nil, fmt.Errorf("coral: unsupported format %q", format)
	}
}

func sniffFormat(input string) Format {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return FormatYAML
	}
	switch trimmed[0] {
	case '<':
		return FormatXML
	case '{', '[':
		return FormatJSON
	default:
		return FormatYAML
	}
}
