package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sketch.yml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, `
name: spiral-demo
version: 0.1.0
authors:
  - Jo Example
canvas:
  width: 800
  height: 500
sketches:
  main:
    entry: scripts/spiral.lg
    output: out/spiral.svg
  flower:
    entry: scripts/flower.lg
dependencies:
  shapes: https://example.com/shapes.git
  local-lib:
    path: ../lib
`)
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if manifest.Name != "spiral_demo" {
		t.Fatalf("name: got %q, want spiral_demo", manifest.Name)
	}
	if manifest.Canvas.Width != 800 || manifest.Canvas.Height != 500 {
		t.Fatalf("canvas: got %dx%d, want 800x500", manifest.Canvas.Width, manifest.Canvas.Height)
	}
	if len(manifest.SketchOrder) != 2 || manifest.SketchOrder[0] != "main" {
		t.Fatalf("sketch order: got %v, want [main flower]", manifest.SketchOrder)
	}

	def, err := manifest.DefaultSketch()
	if err != nil {
		t.Fatalf("DefaultSketch: %v", err)
	}
	if def.Entry != "scripts/spiral.lg" || def.Output != "out/spiral.svg" {
		t.Fatalf("default sketch: got %q -> %q", def.Entry, def.Output)
	}

	flower, ok := manifest.FindSketch("flower")
	if !ok || flower.Entry != "scripts/flower.lg" {
		t.Fatalf("FindSketch(flower): got %v/%v", flower, ok)
	}

	shapes := manifest.Dependencies["shapes"]
	if shapes == nil || shapes.Git != "https://example.com/shapes.git" {
		t.Fatalf("scalar dependency: got %+v, want git shorthand", shapes)
	}
	local := manifest.Dependencies["local-lib"]
	if local == nil || local.Path != "../lib" {
		t.Fatalf("path dependency: got %+v", local)
	}
}

func TestLoadManifestDefaultsCanvas(t *testing.T) {
	path := writeManifest(t, `
name: plain
sketches:
  main:
    entry: main.lg
`)
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if manifest.Canvas.Width != DefaultCanvasWidth || manifest.Canvas.Height != DefaultCanvasHeight {
		t.Fatalf("canvas: got %dx%d, want defaults", manifest.Canvas.Width, manifest.Canvas.Height)
	}
}

func TestLoadManifestAggregatesIssues(t *testing.T) {
	path := writeManifest(t, `
name: ""
sketches:
  broken:
    output: image.png
dependencies:
  confused:
    git: https://example.com/x.git
    path: ../x
  overpinned:
    git: https://example.com/y.git
    tag: v1
    branch: main
`)
	_, err := LoadManifest(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error: got %v, want ValidationError", err)
	}
	wantIssues := []string{
		"name must be provided",
		"requires an entry script",
		"output must end in .svg",
		"git and path sources are mutually exclusive",
		"rev, tag, and branch are mutually exclusive",
	}
	joined := strings.Join(verr.Issues, "\n")
	for _, want := range wantIssues {
		if !strings.Contains(joined, want) {
			t.Fatalf("issues missing %q:\n%s", want, joined)
		}
	}
}

func TestLoadManifestRejectsUnknownFields(t *testing.T) {
	path := writeManifest(t, `
name: strict
palette: rainbow
`)
	if _, err := LoadManifest(path); err == nil {
		t.Fatalf("expected unknown field error, got success")
	}
}

func TestLoadManifestEmptyFile(t *testing.T) {
	path := writeManifest(t, "")
	if _, err := LoadManifest(path); err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("error: got %v, want empty-file message", err)
	}
}
