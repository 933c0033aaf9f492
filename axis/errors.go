// Package axis is the top-level entry point: it turns file paths into a
// compiled bundle, the way koi.ParseFile turns a filename into an *ast.Ast
// behind one call. The pipeline itself lives in axis/compile; this
// package only adds the filesystem boundary and the I/O error kinds that
// boundary can produce (spec.md §7's I/O taxonomy).
package axis

import "fmt"

type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

type ReadFailureError struct {
	Path string
	Err  error
}

func (e *ReadFailureError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *ReadFailureError) Unwrap() error { return e.Err }

type WriteFailureError struct {
	Path string
	Err  error
}

func (e *WriteFailureError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteFailureError) Unwrap() error { return e.Err }
