// Command axis-compiler is the thin OS-facing binary wired to the axis
// package, mirroring the role koi/cmd/main.go plays for the teacher's
// library: flag parsing and process exit codes live here, nothing else.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/axis-lang/axis-core/axis"
	"github.com/axis-lang/axis-core/axis/bundle"
	"github.com/axis-lang/axis-core/axis/compile"
	"github.com/axis-lang/axis-core/axis/core"
	"github.com/axis-lang/axis-core/axis/registry"
)

// exit codes per spec.md §6
const (
	exitOK          = 0
	exitCompileFail = 1
	exitUsage       = 2
	exitIO          = 3
)

type flags struct {
	sources    []string
	registries []string
	out        string
	profile    string
	viewCoreIR string
	verbose    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args and executes the requested pipeline stage, writing
// normal output to stdout and diagnostics/errors to stderr. Both streams
// are parameters rather than the process's own os.Stdout/os.Stderr so the
// CLI can be driven in-process by tests without touching the real
// terminal, the way cue's cmd.SetOutput lets its own root command tests
// redirect output.
func run(args []string, stdout, stderr io.Writer) int {
	f := &flags{}

	root := &cobra.Command{
		Use:           "axis-compiler",
		Short:         "Compile Axis surface sources into a canonical Core IR bundle.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.Flags().StringSliceVar(&f.sources, "sources", nil, "surface .ax input files")
	root.Flags().StringSliceVar(&f.registries, "registries", nil, "registry .axreg input files")
	root.Flags().StringVar(&f.out, "out", "", "output bundle path (default ./coreir/<first-source-basename>.coreir)")
	root.Flags().StringVar(&f.profile, "profile", string(registry.DefaultProfile), "active profile")
	root.Flags().StringVar(&f.viewCoreIR, "view-core-ir", "", "print an existing bundle's canonical text form and exit")
	root.Flags().BoolVar(&f.verbose, "verbose", false, "log pipeline stage diagnostics to stderr")
	root.SetArgs(args)

	code := exitOK
	root.RunE = func(cmd *cobra.Command, _ []string) error {
		var runErr error
		code, runErr = execute(f, stdout, stderr)
		return runErr
	}

	if err := root.Execute(); err != nil {
		if code == exitOK {
			code = exitUsage
		}
		fmt.Fprintln(stderr, err)
	}
	return code
}

// execute returns the process exit code alongside an error to print, if
// any. It is the single place that maps pipeline outcomes to spec.md §6's
// exit codes.
func execute(f *flags, stdout, stderr io.Writer) (int, error) {
	if f.viewCoreIR != "" {
		return viewCoreIR(f.viewCoreIR, stdout)
	}

	if len(f.sources) == 0 {
		return exitUsage, fmt.Errorf("--sources: at least one input file is required")
	}

	var logger *log.Logger
	runID := ""
	if f.verbose {
		logger = log.New(stderr, "", log.LstdFlags)
		runID = uuid.NewString()
	}

	opts := compile.Options{
		ActiveProfile: registry.ProfileID(f.profile),
		RunID:         runID,
		Logger:        logger,
	}

	b, err := axis.CompileFiles(f.sources, f.registries, opts)
	if err != nil {
		switch err.(type) {
		case *axis.FileNotFoundError, *axis.ReadFailureError:
			return exitIO, err
		}
		return exitCompileFail, printErrors(err, stderr)
	}

	outPath := f.out
	if outPath == "" {
		base := strings.TrimSuffix(filepath.Base(f.sources[0]), filepath.Ext(f.sources[0]))
		outPath = filepath.Join("coreir", base+".coreir")
	}

	if err := axis.WriteBundle(outPath, b); err != nil {
		return exitIO, err
	}
	return exitOK, nil
}

func viewCoreIR(path string, stdout io.Writer) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return exitIO, &axis.FileNotFoundError{Path: path}
		}
		return exitIO, &axis.ReadFailureError{Path: path, Err: err}
	}
	defer f.Close()

	b, err := bundle.Decode(f)
	if err != nil {
		return exitCompileFail, err
	}

	fmt.Fprintln(stdout, core.Pretty(b.Term))
	return exitOK, nil
}

// printErrors renders one line per accumulated structural error, in the
// order the phase collected them, per spec.md §7's stderr contract:
// "file:line:col: kind: detail". Errors here already carry their own
// span-prefixed String()/Error() text, so this only strips the
// errors.Join wrapping down to individual lines.
func printErrors(err error, stderr io.Writer) error {
	for _, line := range strings.Split(err.Error(), "\n") {
		if line != "" {
			fmt.Fprintln(stderr, line)
		}
	}
	return nil
}
