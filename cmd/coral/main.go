package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	coral "github.com/goliatone/go-coral"
	"github.com/goliatone/go-coral/pkg/searchpath"
)

type templateFlags map[string]string

func (t templateFlags) String() string { return "" }

func (t templateFlags) Set(value string) error {
	tag, src, ok := strings.Cut(value, "=")
	if !ok || tag == "" {
		return fmt.Errorf("expected tag=template, got %q", value)
	}
	t[tag] = src
	return nil
}

func main() {
	input := flag.String("input", "-", "input document path, - for stdin")
	roots := flag.String("root", ".", "comma-separated root paths the template search path derives from")
	format := flag.String("format", "", "input format: xml, json, or yaml (default: sniffed)")
	folder := flag.String("folder", searchpath.DefaultFolderName, "per-directory template folder name")
	output := flag.String("output", "", "output file (stdout if empty)")
	templates := templateFlags{}
	flag.Var(templates, "template", "inline template registration, tag=template (repeatable)")
	flag.Parse()

	data, err := readInput(*input)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	gen := coral.New(string(data),
		coral.WithRoots(splitRoots(*roots)...),
		coral.WithFormat(coral.Format(*format)),
		coral.WithSettings(searchpath.Settings{FolderName: *folder}),
		coral.WithTemplates(templates),
	)

	out, err := gen.Generate(context.Background())
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(out), 0o644); err != nil {
			log.Fatalf("write output: %v", err)
		}
		fmt.Printf("output written to %s\n", *output)
		return
	}
	fmt.Print(out)
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func splitRoots(raw string) []string {
	var out []string
	for _, root := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(root); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
