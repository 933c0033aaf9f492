package axis_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/axis-lang/axis-core/axis"
	"github.com/axis-lang/axis-core/axis/bundle"
	"github.com/axis-lang/axis-core/axis/compile"
	"github.com/axis-lang/axis-core/axis/core"
)

func TestCompileFilesAndWriteBundleRoundTrip(t *testing.T) {
	dir := t.TempDir()

	regPath := filepath.Join(dir, "registry.axreg")
	srcPath := filepath.Join(dir, "main.ax")
	outPath := filepath.Join(dir, "out.coreir")

	if err := os.WriteFile(regPath, []byte("fn add\narity 2\ndeterministic true\nprofile default\nend\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(srcPath, []byte("fn main() -> int { add(1, 2) }"), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := axis.CompileFiles([]string{srcPath}, []string{regPath}, compile.Options{})
	if err != nil {
		t.Fatalf("CompileFiles failed: %v", err)
	}

	if err := axis.WriteBundle(outPath, b); err != nil {
		t.Fatalf("WriteBundle failed: %v", err)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("bundle file was not written: %v", err)
	}
	defer f.Close()

	decoded, err := bundle.Decode(f)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !core.Equal(b.Term, decoded.Term) {
		t.Fatalf("written bundle does not round-trip to the same term")
	}
}

func TestCompileFilesMissingSourceReportsFileNotFound(t *testing.T) {
	_, err := axis.CompileFiles([]string{"/nonexistent/does-not-exist.ax"}, nil, compile.Options{})
	if err == nil {
		t.Fatal("expected an error for a missing source file")
	}
	var fnf *axis.FileNotFoundError
	if !errors.As(err, &fnf) {
		t.Fatalf("expected *axis.FileNotFoundError, got %T (%v)", err, err)
	}
}

func TestWriteBundleWrapsUnderlyingFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("not a directory"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := &bundle.Bundle{Version: bundle.Version, Term: &core.UnitLit{}}

	// blocker is a regular file, so treating it as a parent directory
	// for out.coreir makes MkdirAll fail deterministically.
	err := axis.WriteBundle(filepath.Join(blocker, "out.coreir"), b)
	if err == nil {
		t.Fatal("expected an error writing beneath a non-directory path")
	}
	var wf *axis.WriteFailureError
	if !errors.As(err, &wf) {
		t.Fatalf("expected *axis.WriteFailureError, got %T (%v)", err, err)
	}
}
