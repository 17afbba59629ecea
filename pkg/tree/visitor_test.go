package tree_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-coral/pkg/tree"
)

type recordingVisitor struct {
	label string
	log   *[]string
	fail  string
}

func (v *recordingVisitor) Visit(n *tree.Node) error {
	name, _ := n.Get("name")
	if v.fail != "" && name == v.fail {
		return errors.New("visit failed at " + v.fail)
	}
	*v.log = append(*v.log, v.label+":"+name.(string))
	return nil
}

func buildVisitTree() *tree.Node {
	return tree.New(map[string]any{"name": "root"},
		tree.New(map[string]any{"name": "left"},
			tree.New(map[string]any{"name": "leaf"})),
		tree.New(map[string]any{"name": "right"}),
	)
}

func TestTraversePreOrder(t *testing.T) {
	var log []string
	v := &recordingVisitor{label: "a", log: &log}

	if err := tree.Traverse(v, buildVisitTree()); err != nil {
		t.Fatalf("traverse: %v", err)
	}

	want := []string{"a:root", "a:left", "a:leaf", "a:right"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Fatalf("visit order mismatch (-want +got):\n%s", diff)
	}
}

func TestTraverseErrorAborts(t *testing.T) {
	var log []string
	v := &recordingVisitor{label: "a", log: &log, fail: "left"}

	if err := tree.Traverse(v, buildVisitTree()); err == nil {
		t.Fatal("traverse succeeded, want error from failing visitor")
	}

	want := []string{"a:root"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Fatalf("nodes visited after failure (-want +got):\n%s", diff)
	}
}

func TestCompositeRunsVisitorsSequentially(t *testing.T) {
	var log []string
	composite := tree.NewComposite(
		&recordingVisitor{label: "a", log: &log},
		&recordingVisitor{label: "b", log: &log},
	)

	if err := composite.Traverse(buildVisitTree()); err != nil {
		t.Fatalf("traverse: %v", err)
	}

	want := []string{
		"a:root", "a:left", "a:leaf", "a:right",
		"b:root", "b:left", "b:leaf", "b:right",
	}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Fatalf("composite order mismatch (-want +got):\n%s", diff)
	}
}

func TestCompositeStopsAfterFailedVisitor(t *testing.T) {
	var log []string
	composite := tree.NewComposite(
		&recordingVisitor{label: "a", log: &log, fail: "leaf"},
		&recordingVisitor{label: "b", log: &log},
	)

	if err := composite.Traverse(buildVisitTree()); err == nil {
		t.Fatal("traverse succeeded, want error")
	}
	for _, entry := range log {
		if entry[0] == 'b' {
			t.Fatalf("second visitor ran after first failed: %v", log)
		}
	}
}
