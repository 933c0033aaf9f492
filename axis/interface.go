package axis

import (
	"os"

	"github.com/axis-lang/axis-core/axis/bundle"
	"github.com/axis-lang/axis-core/axis/compile"
)

// CompileFiles reads sourcePaths and registryPaths from disk and runs the
// full pipeline described in spec.md §2, returning the resulting bundle.
func CompileFiles(sourcePaths, registryPaths []string, opts compile.Options) (*bundle.Bundle, error) {
	sources, err := readAll(sourcePaths)
	if err != nil {
		return nil, err
	}
	registries, err := readAll(registryPaths)
	if err != nil {
		return nil, err
	}

	return compile.New(sources, registries, opts).Run()
}

// WriteBundle writes b to path atomically, wrapping any failure as a
// WriteFailureError for the CLI's exit-code mapping (spec.md §6).
func WriteBundle(path string, b *bundle.Bundle) error {
	if err := compile.WriteBundle(path, b); err != nil {
		return &WriteFailureError{Path: path, Err: err}
	}
	return nil
}

func readAll(paths []string) ([]compile.Source, error) {
	out := make([]compile.Source, len(paths))
	for i, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, &FileNotFoundError{Path: p}
			}
			return nil, &ReadFailureError{Path: p, Err: err}
		}
		out[i] = compile.Source{Name: p, Src: data}
	}
	return out, nil
}
