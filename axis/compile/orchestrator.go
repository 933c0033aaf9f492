// Package compile drives the fixed pipeline of spec.md §2 — registry load,
// lex, parse, lower, serialize — the way koi/koi/interface.go's ParseFile
// and koi/cmd/main.go's GenerateIR drive scanning and parsing behind one
// call. A phase only runs once the previous phase produced zero errors
// (spec.md §7); nothing here retries.
package compile

import (
	"hash/fnv"
	"log"
	"os"
	"path/filepath"

	"github.com/axis-lang/axis-core/axis/bundle"
	"github.com/axis-lang/axis-core/axis/lexer"
	"github.com/axis-lang/axis-core/axis/lower"
	"github.com/axis-lang/axis-core/axis/registry"
	"github.com/axis-lang/axis-core/axis/surface/ast"
	"github.com/axis-lang/axis-core/axis/surface/parser"
	"github.com/axis-lang/axis-core/axis/token"
	"github.com/axis-lang/axis-core/util"
)

// Source is one named byte blob to compile or register — a source or
// registry file's contents together with the name used in error spans.
type Source struct {
	Name string
	Src  []byte
}

// Options configures one compilation run. RunID and Logger are diagnostic
// only (SPEC_FULL.md's ambient logging stack): they never influence the
// bytes a bundle serializes to.
type Options struct {
	ActiveProfile registry.ProfileID
	RunID         string
	Logger        *log.Logger
}

func (o Options) logf(format string, args ...any) {
	if o.Logger == nil {
		return
	}
	if o.RunID != "" {
		o.Logger.Printf("[%s] "+format, append([]any{o.RunID}, args...)...)
		return
	}
	o.Logger.Printf(format, args...)
}

// Orchestrator holds one compilation's inputs.
type Orchestrator struct {
	Sources    []Source
	Registries []Source
	Options    Options
}

func New(sources, registries []Source, opts Options) *Orchestrator {
	if opts.ActiveProfile == "" {
		opts.ActiveProfile = registry.DefaultProfile
	}
	return &Orchestrator{Sources: sources, Registries: registries, Options: opts}
}

// Run executes the full pipeline and returns the resulting bundle, or the
// accumulated error list from whichever phase first failed.
func (o *Orchestrator) Run() (*bundle.Bundle, error) {
	reg, err := o.loadRegistry()
	if err != nil {
		return nil, err
	}
	o.Options.logf("loaded %d registry entries, active profile %q", len(reg.Entries), reg.ActiveProfile)

	file, err := o.parseSources()
	if err != nil {
		return nil, err
	}
	o.Options.logf("parsed %d source file(s), %d top-level declaration(s)", len(o.Sources), len(file.Decls))

	result, err := lower.Lower(file, reg)
	if err != nil {
		return nil, err
	}
	o.Options.logf("lowered entrypoint %q", result.EntrypointName)

	return &bundle.Bundle{
		Version:        bundle.Version,
		EntrypointName: result.EntrypointName,
		EntrypointID:   entrypointID(result.EntrypointName),
		Term:           result.Term,
	}, nil
}

func (o *Orchestrator) loadRegistry() (*registry.ActiveRegistry, error) {
	sources := make([]registry.Source, len(o.Registries))
	for i, r := range o.Registries {
		sources[i] = registry.Source{Name: r.Name, Src: r.Src}
	}
	return registry.Load(sources, o.Options.ActiveProfile)
}

// parseSources lexes and parses every source file, in order, aggregating
// every phase's errors into one list (spec.md §7: errors are reported in
// source order — file index, then byte offset), and merges the resulting
// declaration lists into a single file for lowering.
func (o *Orchestrator) parseSources() (*ast.File, error) {
	var errs util.ErrorList
	merged := &ast.File{}

	for i, src := range o.Sources {
		f := token.NewFile(src.Name, i, src.Src)

		lx := lexer.New(f)
		toks := lx.ScanAll()
		if err := lx.Err(); err != nil {
			errs.Add(err)
			continue
		}

		p := parser.New(toks)
		astFile := p.Parse()
		if err := p.Err(); err != nil {
			errs.Add(err)
			continue
		}

		merged.Decls = append(merged.Decls, astFile.Decls...)
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return merged, nil
}

// entrypointID derives a bundle's entrypoint_id as the low 32 bits of an
// FNV-1a hash of its entrypoint name, so it is a pure function of the
// compiled program's entrypoint rather than counter state (SPEC_FULL.md
// Supplemented Features #2).
func entrypointID(name string) uint32 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return uint32(h.Sum64())
}

// WriteBundle serializes b to path atomically: it writes to a temporary
// sibling file and renames it into place, removing the partial file on
// any failure (spec.md §5).
func WriteBundle(path string, b *bundle.Bundle) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(dir, ".axis-bundle-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := bundle.Encode(tmp, b); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
