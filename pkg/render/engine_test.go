package render_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-coral/pkg/render"
	"github.com/goliatone/go-coral/pkg/template/pongo"
	"github.com/goliatone/go-coral/pkg/testsupport"
	"github.com/goliatone/go-coral/pkg/tree"
)

func TestGenerateInlineTemplate(t *testing.T) {
	engine := render.New(pongo.New(), render.WithTemplates(map[string]string{
		"person": "Hi {{ node.name }}!",
	}))

	got, err := engine.Generate(tree.New(map[string]any{"tag": "person", "name": "Santos"}))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "Hi Santos!" {
		t.Fatalf("generate = %q, want %q", got, "Hi Santos!")
	}
}

func TestGenerateMissingAttributeFails(t *testing.T) {
	engine := render.New(pongo.New(), render.WithTemplates(map[string]string{
		"person": "{{ node.name }} is {{ node.age }}",
	}))

	_, err := engine.Generate(tree.New(map[string]any{"tag": "person", "name": "Santos"}))

	var notFound *tree.AttributeNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want AttributeNotFoundError", err)
	}
	if notFound.Key != "age" {
		t.Fatalf("missing key = %q, want %q", notFound.Key, "age")
	}
}

func TestGenerateFileTemplate(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFiles(t, dir, map[string]string{
		"person.j2": "Hi {{ node.name }}!",
	})

	engine := render.New(pongo.New(), render.WithSearchPath(dir))

	got, err := engine.Generate(tree.New(map[string]any{"tag": "person", "name": "Igor"}))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "Hi Igor!" {
		t.Fatalf("generate = %q, want %q", got, "Hi Igor!")
	}
}

func TestGenerateInlineBeatsFileTemplate(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFiles(t, dir, map[string]string{
		"person.j2": "from file",
	})

	engine := render.New(pongo.New(),
		render.WithSearchPath(dir),
		render.WithTemplates(map[string]string{"person": "inline"}),
	)

	got, err := engine.Generate(tree.New(map[string]any{"tag": "person"}))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "inline" {
		t.Fatalf("generate = %q, want inline registration to win", got)
	}
}

func TestGenerateTemplateNotFound(t *testing.T) {
	engine := render.New(pongo.New(), render.WithSearchPath(t.TempDir()))

	_, err := engine.Generate(tree.New(map[string]any{"tag": "person"}))

	var notFound *render.TemplateNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want TemplateNotFoundError", err)
	}
	if notFound.Tag != "person" {
		t.Fatalf("tag = %q, want %q", notFound.Tag, "person")
	}
}

func TestGenerateRecursesThroughChildren(t *testing.T) {
	engine := render.New(pongo.New(), render.WithTemplates(map[string]string{
		"country": "Country {{ node.name }}:\n{% for team in node.children %}{{ render(team) }}{% endfor %}",
		"team":    "Team {{ node.name }}:\n{% for p in node.children %}- {{ p.text }}\n{% endfor %}",
	}))

	root := tree.New(map[string]any{"tag": "country", "name": "PyLand"},
		tree.New(map[string]any{"tag": "team", "name": "B"},
			tree.New(map[string]any{"tag": "player", "text": "Mauro"}),
			tree.New(map[string]any{"tag": "player", "text": "Igor"}),
		),
	)

	got, err := engine.Generate(root)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := "Country PyLand:\nTeam B:\n- Mauro\n- Igor\n"
	if got != want {
		t.Fatalf("generate = %q, want %q", got, want)
	}
}

func TestGenerateNestedFailurePropagates(t *testing.T) {
	engine := render.New(pongo.New(), render.WithTemplates(map[string]string{
		"country": "{% for team in node.children %}{{ render(team) }}{% endfor %}",
	}))

	root := tree.New(map[string]any{"tag": "country"},
		tree.New(map[string]any{"tag": "team"}),
	)

	_, err := engine.Generate(root)

	var notFound *render.TemplateNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want TemplateNotFoundError from nested render", err)
	}
	if notFound.Tag != "team" {
		t.Fatalf("tag = %q, want %q", notFound.Tag, "team")
	}
}

func TestGenerateVoidConcatenatesChildren(t *testing.T) {
	engine := render.New(pongo.New(), render.WithTemplates(map[string]string{
		"team": "Team {{ node.name }}:\n{% for p in node.children %}- {{ p.text }}\n{% endfor %}",
	}))

	root := tree.New(map[string]any{"tag": "void"},
		tree.New(map[string]any{"tag": "team", "name": "a-players"},
			tree.New(map[string]any{"tag": "player", "text": "Mauro"}),
			tree.New(map[string]any{"tag": "player", "text": "Igor"}),
		),
		tree.New(map[string]any{"tag": "team", "name": "b-players"},
			tree.New(map[string]any{"tag": "player", "text": "Santos"}),
			tree.New(map[string]any{"tag": "player", "text": "Simões"}),
		),
	)

	got, err := engine.Generate(root)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := "Team a-players:\n- Mauro\n- Igor\nTeam b-players:\n- Santos\n- Simões\n"
	if got != want {
		t.Fatalf("generate = %q, want %q", got, want)
	}
}

func TestGenerateVoidCannotBeOverriddenAtConstruction(t *testing.T) {
	engine := render.New(pongo.New(), render.WithTemplates(map[string]string{
		"void": "hijacked",
	}))

	got, err := engine.Generate(tree.New(map[string]any{"tag": "void"}))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got == "hijacked" {
		t.Fatal("void registration replaced the built-in template")
	}
}

func TestGenerateWritesOutputFiles(t *testing.T) {
	outDir := t.TempDir()
	var logged []string

	engine := render.New(pongo.New(),
		render.WithTemplates(map[string]string{
			"team": "Team {{ node.name }}:\n{% for p in node.children %}- {{ p.text }}\n{% endfor %}",
		}),
		render.WithLogf(func(format string, args ...any) {
			logged = append(logged, fmt.Sprintf(format, args...))
		}),
	)

	aPath := filepath.Join(outDir, "a-players.txt")
	bPath := filepath.Join(outDir, "b-players.txt")
	root := tree.New(map[string]any{"tag": "void"},
		tree.New(map[string]any{"tag": "team", "name": "a-players", "coral-to": aPath},
			tree.New(map[string]any{"tag": "player", "text": "Mauro"}),
		),
		tree.New(map[string]any{"tag": "team", "name": "b-players", "coral-to": bPath},
			tree.New(map[string]any{"tag": "player", "text": "Santos"}),
		),
	)

	got, err := engine.Generate(root)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := "Team a-players:\n- Mauro\nTeam b-players:\n- Santos\n"
	if got != want {
		t.Fatalf("generate = %q, want %q", got, want)
	}

	assertFile(t, aPath, "Team a-players:\n- Mauro\n")
	assertFile(t, bPath, "Team b-players:\n- Santos\n")

	if len(logged) != 2 || !strings.Contains(logged[0], aPath) {
		t.Fatalf("log = %v, want one saved line per written file", logged)
	}
}

func TestGenerateOutputCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "out.txt")

	engine := render.New(pongo.New(),
		render.WithTemplates(map[string]string{"person": "Hi {{ node.name }}!"}),
		render.WithLogf(func(string, ...any) {}),
	)

	if _, err := engine.Generate(tree.New(map[string]any{
		"tag": "person", "name": "Santos", "coral-to": path,
	})); err != nil {
		t.Fatalf("generate: %v", err)
	}
	assertFile(t, path, "Hi Santos!")
}

func TestGenerateLastWriteWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	engine := render.New(pongo.New(),
		render.WithTemplates(map[string]string{"person": "Hi {{ node.name }}!"}),
		render.WithLogf(func(string, ...any) {}),
	)

	root := tree.New(map[string]any{"tag": "void"},
		tree.New(map[string]any{"tag": "person", "name": "first", "coral-to": path}),
		tree.New(map[string]any{"tag": "person", "name": "second", "coral-to": path}),
	)

	if _, err := engine.Generate(root); err != nil {
		t.Fatalf("generate: %v", err)
	}
	assertFile(t, path, "Hi second!")
}

func assertFile(t *testing.T, path, want string) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if string(data) != want {
		t.Fatalf("%s = %q, want %q", path, string(data), want)
	}
}
