// Package pongo adapts the pongo2 template engine to the template.Renderer
// seam.
package pongo

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-coral/pkg/template"
)

// DefaultExtension is appended to template names that carry no extension.
const DefaultExtension = ".j2"

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	searchPath []string
	extension  string
}

// WithSearchPath appends ordered template directories; lookup returns the
// first match. Directories that do not exist yet are skipped.
func WithSearchPath(dirs ...string) Option {
	return func(cfg *config) {
		cfg.searchPath = append(cfg.searchPath, dirs...)
	}
}

// WithExtension overrides the default template file extension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// Engine satisfies template.Renderer with a pongo2 template set. File
// templates resolve against the configured search path in order; parsed
// file templates are cached for the engine's lifetime.
type Engine struct {
	mu sync.RWMutex

	set    *pongo2.TemplateSet
	files  map[string]*pongo2.Template
	tplExt string
}

var _ template.Renderer = (*Engine)(nil)

// New constructs an Engine. The search path is fixed for the engine's
// lifetime.
func New(options ...Option) *Engine {
	cfg := &config{extension: DefaultExtension}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	var loaders []pongo2.TemplateLoader
	for _, dir := range cfg.searchPath {
		loader, err := pongo2.NewLocalFileSystemLoader(dir)
		if err != nil {
			// Search paths routinely contain ancestor directories that do
			// not exist; only directories present at construction load.
			continue
		}
		loaders = append(loaders, loader)
	}
	if len(loaders) == 0 {
		loaders = append(loaders, pongo2.MustNewLocalFileSystemLoader(""))
	}

	registerDefaultFilters()

	return &Engine{
		set:    pongo2.NewSet("coral", loaders...),
		files:  make(map[string]*pongo2.Template),
		tplExt: cfg.extension,
	}
}

// RenderString parses and renders an inline template against data.
func (e *Engine) RenderString(src string, data map[string]any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("pongo: engine is nil")
	}

	tpl, err := e.set.FromString(src)
	if err != nil {
		return "", fmt.Errorf("pongo: parse template string: %w", err)
	}
	return e.execute(tpl, data)
}

// RenderTemplate loads name from the search path (extension appended when
// absent) and renders it against data.
func (e *Engine) RenderTemplate(name string, data map[string]any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("pongo: engine is nil")
	}

	path := name
	if !strings.HasSuffix(path, e.tplExt) {
		path += e.tplExt
	}

	tpl, err := e.template(path)
	if err != nil {
		return "", err
	}
	return e.execute(tpl, data)
}

// RegisterFilter bridges a generic filter function into pongo2's filter
// table. Filter names are global to the process, matching pongo2.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("pongo: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("pongo: filter %q already exists", name)
	}

	return pongo2.RegisterFilter(name, func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var paramVal any
		if param != nil {
			paramVal = param.Interface()
		}
		out, err := fn(in.Interface(), paramVal)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(out), nil
	})
}

func (e *Engine) template(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tpl, ok := e.files[path]; ok {
		e.mu.RUnlock()
		return tpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tpl, ok := e.files[path]; ok {
		return tpl, nil
	}
	tpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("pongo: load template %q: %w", path, err)
	}
	e.files[path] = tpl
	return tpl, nil
}

func (e *Engine) execute(tpl *pongo2.Template, data map[string]any) (string, error) {
	ctx := make(pongo2.Context, len(data))
	for k, v := range data {
		ctx[k] = v
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("pongo: execute template: %w", err)
	}
	return buf.String(), nil
}
