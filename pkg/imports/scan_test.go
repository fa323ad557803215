package imports

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/brooklinpub/brooklin/pkg/errors"
	"github.com/brooklinpub/brooklin/pkg/observability"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"index.js":  `import a from './a.js'; import b from './b.js'; import React from 'react'`,
		"a.js":      `import {b} from './b.js'; import gone from './missing.js'`,
		"b.js":      `export const b = 1`,
		"style.css": `@import './a.js';`,
		"notes.txt": `import a from './a.js'`,
	})
	if err := os.Mkdir(filepath.Join(dir, "nested.js"), 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := Scan(context.Background(), dir, Options{})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if want := []string{"a.js", "b.js", "index.js"}; !slices.Equal(res.Modules, want) {
		t.Errorf("Modules = %v, want %v", res.Modules, want)
	}
	if got := res.Graph.Children("index.js"); !slices.Equal(got, []string{"a.js", "b.js"}) {
		t.Errorf("Children(index.js) = %v", got)
	}
	if got := res.Graph.Children("a.js"); !slices.Equal(got, []string{"b.js"}) {
		t.Errorf("Children(a.js) = %v", got)
	}
	if res.Graph.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", res.Graph.EdgeCount())
	}
	if res.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", res.Dropped)
	}
	if n, _ := res.Graph.Node("b.js"); n.Meta["bytes"] != len(`export const b = 1`) {
		t.Errorf("b.js bytes = %v", n.Meta["bytes"])
	}
}

func TestScanExtension(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.mjs": `import b from './b.mjs'`,
		"b.mjs": `import a from './a.mjs'`,
		"c.js":  `import a from './a.mjs'`,
	})

	res, err := Scan(context.Background(), dir, Options{Ext: ".mjs"})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if res.Graph.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", res.Graph.NodeCount())
	}
	if !res.Graph.HasEdge("a.mjs", "b.mjs") || !res.Graph.HasEdge("b.mjs", "a.mjs") {
		t.Error("expected a.mjs <-> b.mjs edges")
	}
}

func TestScanEmptyDir(t *testing.T) {
	res, err := Scan(context.Background(), t.TempDir(), Options{})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if res.Graph.NodeCount() != 0 || res.Graph.EdgeCount() != 0 {
		t.Errorf("empty dir graph = %d nodes, %d edges", res.Graph.NodeCount(), res.Graph.EdgeCount())
	}
}

func TestScanMissingDir(t *testing.T) {
	_, err := Scan(context.Background(), filepath.Join(t.TempDir(), "dist", "assets"), Options{})
	if !errors.Is(err, errors.ErrCodeInputMissing) {
		t.Fatalf("Scan() error = %v, want %s", err, errors.ErrCodeInputMissing)
	}
	if errors.ExitCode(err) != errors.ExitInputMissing {
		t.Errorf("ExitCode() = %d, want %d", errors.ExitCode(err), errors.ExitInputMissing)
	}
}

func TestScanFileInsteadOfDir(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"bundle.js": ""})

	_, err := Scan(context.Background(), filepath.Join(dir, "bundle.js"), Options{})
	if !errors.Is(err, errors.ErrCodeInputMissing) {
		t.Errorf("Scan() error = %v, want %s", err, errors.ErrCodeInputMissing)
	}
}

func TestScanCanceled(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.js": ""})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Scan(ctx, dir, Options{}); err != context.Canceled {
		t.Errorf("Scan() error = %v, want context.Canceled", err)
	}
}

func TestBuild(t *testing.T) {
	g, dropped := Build(
		[]string{"a.js", "b.js"},
		map[string][]string{
			"a.js": {"b.js", "a.js", "zzz.js"},
			"b.js": {"a.js"},
		},
	)
	if !g.HasEdge("a.js", "a.js") {
		t.Error("self-import should become a self-loop edge")
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", g.EdgeCount())
	}
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
}

type recordingCheckHooks struct {
	observability.NoopCheckHooks
	started       []string
	files, edges  int
	completeErr   error
	completeCalls int
}

func (h *recordingCheckHooks) OnScanStart(_ context.Context, dir string) {
	h.started = append(h.started, dir)
}

func (h *recordingCheckHooks) OnScanComplete(_ context.Context, _ string, files, edges int, _ time.Duration, err error) {
	h.files, h.edges, h.completeErr = files, edges, err
	h.completeCalls++
}

func TestScanEmitsHooks(t *testing.T) {
	hooks := &recordingCheckHooks{}
	observability.SetCheckHooks(hooks)
	defer observability.Reset()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.js": `import b from './b.js'`,
		"b.js": ``,
	})
	if _, err := Scan(context.Background(), dir, Options{}); err != nil {
		t.Fatal(err)
	}

	if len(hooks.started) != 1 || hooks.started[0] != dir {
		t.Errorf("OnScanStart calls = %v", hooks.started)
	}
	if hooks.completeCalls != 1 || hooks.files != 2 || hooks.edges != 1 || hooks.completeErr != nil {
		t.Errorf("OnScanComplete = files %d edges %d err %v (calls %d)", hooks.files, hooks.edges, hooks.completeErr, hooks.completeCalls)
	}
}
