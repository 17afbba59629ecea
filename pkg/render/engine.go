// Package render dispatches each node of an attribute-resolved tree to a
// tag-indexed template and assembles the final output, threading a
// recursive render callable through every template's context.
package render

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-coral/pkg/template"
	"github.com/goliatone/go-coral/pkg/tree"
)

// VoidTag names the built-in transparent template: render each child in
// turn, concatenated with no extra separators. It serves purely structural
// wrapper nodes that carry no output of their own.
const VoidTag = "void"

const voidTemplate = `{%- for child in node.children -%}
    {{ render(child) }}
{%- endfor %}`

// DefaultTemplateExt is the extension file templates use.
const DefaultTemplateExt = ".j2"

// Option configures the engine.
type Option func(*Engine)

// WithSearchPath appends ordered directories file templates resolve
// against; the first directory containing "{tag}.j2" wins.
func WithSearchPath(dirs ...string) Option {
	return func(e *Engine) {
		e.dirs = append(e.dirs, dirs...)
	}
}

// WithTemplates registers inline templates by tag. Inline registrations
// take precedence over file templates of the same tag.
func WithTemplates(templates map[string]string) Option {
	return func(e *Engine) {
		for tag, src := range templates {
			e.templates[tag] = src
		}
	}
}

// WithExtension overrides the file template extension.
func WithExtension(ext string) Option {
	return func(e *Engine) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		e.ext = trimmed
	}
}

// WithLogf overrides the logger that reports coral-to file writes.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(e *Engine) {
		if logf != nil {
			e.logf = logf
		}
	}
}

// Engine renders attribute-resolved trees. Configuration is read-only
// after construction; err carries a failure out of a nested render
// callback and is reset per Generate call.
type Engine struct {
	renderer  template.Renderer
	templates map[string]string
	dirs      []string
	ext       string
	logf      func(format string, args ...any)

	err error
}

// New constructs an Engine around a template renderer. The void template is
// always registered.
func New(renderer template.Renderer, options ...Option) *Engine {
	e := &Engine{
		renderer:  renderer,
		templates: map[string]string{},
		ext:       DefaultTemplateExt,
		logf:      log.Printf,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	e.templates[VoidTag] = voidTemplate
	return e
}

// Register adds or replaces an inline template for a tag.
func (e *Engine) Register(tag, src string) {
	e.templates[tag] = src
}

// Generate renders the whole tree rooted at root and returns the final
// text. File writes for descendant coral-to nodes happen during this
// single pre-order, child-order pass; a failure anywhere aborts the call,
// leaving writes that already completed on disk.
func (e *Engine) Generate(root *tree.Node) (string, error) {
	e.err = nil
	return e.render(root)
}

// render produces the text for one node by dispatching on its tag. The
// template context carries the node and the render callable bound to this
// engine, so templates can recurse into children.
func (e *Engine) render(n *tree.Node) (string, error) {
	if n == nil {
		return "", errors.New("render: node is required")
	}
	tag, err := n.Tag()
	if err != nil {
		return "", err
	}

	src, err := e.source(tag)
	if err != nil {
		return "", err
	}
	if err := tree.CheckTemplateRefs(src, n); err != nil {
		return "", err
	}

	out, err := e.renderer.RenderString(src, map[string]any{
		"node":   n.TemplateContext(),
		"render": e.renderChild,
	})
	if e.err != nil {
		return "", e.err
	}
	if err != nil {
		return "", err
	}

	if err := e.persist(n, out); err != nil {
		return "", err
	}
	return out, nil
}

// source resolves the template for a tag: inline registrations first, then
// the first {tag}.j2 on the search path.
func (e *Engine) source(tag string) (string, error) {
	if src, ok := e.templates[tag]; ok {
		return src, nil
	}
	for _, dir := range e.dirs {
		data, err := os.ReadFile(filepath.Join(dir, tag+e.ext))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return "", fmt.Errorf("render: read template for tag %q: %w", tag, err)
		}
		return string(data), nil
	}
	return "", &TemplateNotFoundError{Tag: tag}
}

// renderChild is the render callable exposed to templates. Template
// function returns feed straight into output, so failures are parked on
// the engine and rechecked after every template execution; once set,
// further recursion and file writes stop.
func (e *Engine) renderChild(data map[string]any) string {
	if e.err != nil {
		return ""
	}
	child, ok := tree.FromContext(data)
	if !ok {
		e.err = errors.New("render: render() argument is not a node")
		return ""
	}
	out, err := e.render(child)
	if err != nil {
		if e.err == nil {
			e.err = err
		}
		return ""
	}
	return out
}

// persist writes the rendered text when the node carries a coral-to path.
// The path is already template-resolved; parent directories are created and
// an existing file is silently overwritten, last write winning.
func (e *Engine) persist(n *tree.Node, out string) error {
	raw, ok := n.Lookup(tree.KeyOutput)
	if !ok {
		return nil
	}
	path := fmt.Sprint(raw)
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("render: empty %s path on %s", tree.KeyOutput, n.Label())
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("render: create output dir for %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("render: write %s: %w", path, err)
	}
	e.logf("saved %s", path)
	return nil
}
