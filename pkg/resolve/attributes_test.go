package resolve_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-coral/pkg/resolve"
	"github.com/goliatone/go-coral/pkg/template/pongo"
	"github.com/goliatone/go-coral/pkg/tree"
)

func TestAttributeTemplateVisitorRendersStrings(t *testing.T) {
	child := tree.New(map[string]any{"tag": "child", "label": "{{ node.name }}'s child"})
	root := tree.New(map[string]any{"tag": "root", "name": "root"}, child)

	v := resolve.NewAttributeTemplateVisitor(pongo.New())
	if err := tree.Traverse(v, root); err != nil {
		t.Fatalf("traverse: %v", err)
	}

	if got := child.Attributes["label"]; got != "root's child" {
		t.Fatalf("label = %q, want %q", got, "root's child")
	}
}

func TestAttributeTemplateVisitorLeavesNonStrings(t *testing.T) {
	root := tree.New(map[string]any{"tag": "root", "count": 3, "ratio": 1.5})

	v := resolve.NewAttributeTemplateVisitor(pongo.New())
	if err := v.Visit(root); err != nil {
		t.Fatalf("visit: %v", err)
	}

	if root.Attributes["count"] != 3 || root.Attributes["ratio"] != 1.5 {
		t.Fatalf("non-string attributes changed: %v", root.Attributes)
	}
}

func TestAttributeTemplateVisitorMissingReference(t *testing.T) {
	root := tree.New(map[string]any{"tag": "root", "label": "{{ node.age }}"})

	v := resolve.NewAttributeTemplateVisitor(pongo.New())
	err := v.Visit(root)

	var notFound *tree.AttributeNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want AttributeNotFoundError", err)
	}
	if notFound.Key != "age" {
		t.Fatalf("missing key = %q, want %q", notFound.Key, "age")
	}
}

func TestAttributeTemplateVisitorPlainStringsPassThrough(t *testing.T) {
	root := tree.New(map[string]any{"tag": "root", "name": "no templates here"})

	v := resolve.NewAttributeTemplateVisitor(pongo.New())
	if err := v.Visit(root); err != nil {
		t.Fatalf("visit: %v", err)
	}
	if root.Attributes["name"] != "no templates here" {
		t.Fatalf("name = %q, want unchanged", root.Attributes["name"])
	}
}
