// Command xtract extracts a canonical purchase-order record from a single
// document and prints it as JSON. Useful for trying a builder template
// against a sample document without running the server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/atozflooring/xtracr/internal/extract"
	"github.com/atozflooring/xtracr/internal/template"
)

func main() {
	var (
		filePath      = flag.String("file", "", "path to a pdf or txt purchase order (required)")
		builderID     = flag.String("builder", "", "declared builder template id (optional)")
		templatesPath = flag.String("templates", "", "path to extra template definitions JSON (optional)")
		verbose       = flag.Bool("v", false, "log extraction details to stderr")
	)
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	registry, err := buildRegistry(*templatesPath)
	if err != nil {
		fatalf("load templates: %v", err)
	}
	if *builderID != "" {
		if _, ok := registry.Get(*builderID); !ok {
			fatalf("unknown builder id %q", *builderID)
		}
	}

	decoder := extract.NewFileDecoder()
	res, err := decoder.Decode(context.Background(), *filePath)
	if err != nil {
		fatalf("decode %s: %v", *filePath, err)
	}

	engine := extract.NewEngine(registry, logger)
	record := engine.Extract(extract.RawDocument{Text: res.Text, Filename: *filePath}, *builderID)

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		fatalf("encode record: %v", err)
	}
	fmt.Println(string(out))
}

func buildRegistry(path string) (*template.Registry, error) {
	if path == "" {
		return template.Builtin()
	}
	extra, err := template.LoadDefinitions(path)
	if err != nil {
		return nil, err
	}
	return template.Builtin(extra...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
