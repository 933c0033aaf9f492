package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/axis-lang/axis-core/axis/bundle"
	"github.com/axis-lang/axis-core/axis/core"
)

func TestRunViewCoreIR(t *testing.T) {
	dir := t.TempDir()
	bundlePath := filepath.Join(dir, "in.coreir")

	b := &bundle.Bundle{
		Version:        bundle.Version,
		EntrypointName: "main",
		Term: &core.Lam{Param: "_", Body: &core.App{
			Func: &core.Var{Name: "add"},
			Arg:  &core.Tuple{Elems: []core.Term{&core.IntLit{Value: 1}, &core.IntLit{Value: 2}}},
		}},
	}
	f, err := os.Create(bundlePath)
	if err != nil {
		t.Fatal(err)
	}
	if err := bundle.Encode(f, b); err != nil {
		t.Fatal(err)
	}
	f.Close()

	var stdout, stderr bytes.Buffer
	code := run([]string{"--view-core-ir", bundlePath}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code = %d, want %d; stderr: %s", code, exitOK, stderr.String())
	}
	if want := core.Pretty(b.Term); !strings.Contains(stdout.String(), want) {
		t.Fatalf("stdout = %q, want it to contain %q", stdout.String(), want)
	}
}

func TestRunViewCoreIRMissingFileIsIOError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--view-core-ir", "/nonexistent/bundle.coreir"}, &stdout, &stderr)
	if code != exitIO {
		t.Fatalf("exit code = %d, want %d (exitIO)", code, exitIO)
	}
}

func TestRunMissingSourcesIsUsageError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, &stdout, &stderr)
	if code != exitUsage {
		t.Fatalf("exit code = %d, want %d (exitUsage)", code, exitUsage)
	}
	if stderr.Len() == 0 {
		t.Fatal("expected a usage error message on stderr")
	}
}

func TestRunMissingSourceFileIsIOError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--sources", "/nonexistent/main.ax"}, &stdout, &stderr)
	if code != exitIO {
		t.Fatalf("exit code = %d, want %d (exitIO)", code, exitIO)
	}
}

func TestRunCompileErrorExitCode(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "main.ax")
	if err := os.WriteFile(srcPath, []byte("fn main() -> int { ghost(1) }"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	code := run([]string{"--sources", srcPath}, &stdout, &stderr)
	if code != exitCompileFail {
		t.Fatalf("exit code = %d, want %d (exitCompileFail); stderr: %s", code, exitCompileFail, stderr.String())
	}
	if stderr.Len() == 0 {
		t.Fatal("expected the accumulated compile error(s) on stderr")
	}
}

func TestRunFullPipelineWritesBundle(t *testing.T) {
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

	var stdout, stderr bytes.Buffer
	code := run([]string{"--sources", srcPath, "--registries", regPath, "--out", outPath}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code = %d, want %d (exitOK); stderr: %s", code, exitOK, stderr.String())
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("bundle was not written to --out: %v", err)
	}
	defer f.Close()
	if _, err := bundle.Decode(f); err != nil {
		t.Fatalf("written bundle did not decode: %v", err)
	}
}
