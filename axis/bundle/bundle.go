// Package bundle implements the tagged binary framing of spec.md §4.6: a
// canonical, versioned encoding of a CoreTerm plus its entrypoint metadata
// and interned string table. Framing follows the encoding/binary style
// cuelang.org/go/cue/interpreter/wasm/layout.go uses for its own tagged
// struct encoder — fixed-width little-endian fields written directly to a
// byte buffer, one exhaustive tag switch per direction.
package bundle

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/axis-lang/axis-core/axis/core"
)

const (
	// Magic is the fixed 8-byte bundle header prefix.
	Magic = "AXISIR\x00\x00"
	// Version is the bundle format version this package writes.
	Version = "0.1"
)

// Bundle is the decoded form of a .coreir file (spec.md §3 CoreBundle).
type Bundle struct {
	Version        string
	EntrypointName string
	EntrypointID   uint32
	Term           core.Term
}

// Encode writes b to w in the canonical tagged binary format. Two calls
// with identical terms, spans included (spans are encoded, unlike in
// core.Equal), produce byte-identical output: the
// string table is populated in first-use order during the same traversal
// that emits term bytes, and no map iteration ever reaches the wire.
func Encode(w io.Writer, b *Bundle) error {
	e := &encoder{index: make(map[string]int)}
	e.writeTerm(b.Term)

	var out bytes.Buffer
	out.WriteString(Magic)
	writeLenString(&out, Version)
	writeLenString(&out, b.EntrypointName)
	binary.Write(&out, binary.LittleEndian, b.EntrypointID)
	binary.Write(&out, binary.LittleEndian, uint32(len(e.strings)))
	for _, s := range e.strings {
		writeLenString(&out, s)
	}
	out.Write(e.term.Bytes())

	_, err := w.Write(out.Bytes())
	return err
}

func writeLenString(buf *bytes.Buffer, s string) {
	binary.Write(buf, binary.LittleEndian, uint32(len(s)))
	buf.WriteString(s)
}

// encoder accumulates the term bytes and the string table in lockstep: a
// string is appended to the table the first time it is needed, and its
// resulting index is written into the term buffer immediately, so the
// two structures never fall out of sync.
type encoder struct {
	strings []string
	index   map[string]int
	term    bytes.Buffer
}

func (e *encoder) intern(s string) uint32 {
	if i, ok := e.index[s]; ok {
		return uint32(i)
	}
	i := len(e.strings)
	e.strings = append(e.strings, s)
	e.index[s] = i
	return uint32(i)
}

func (e *encoder) u8(v uint8)   { e.term.WriteByte(v) }
func (e *encoder) u32(v uint32) { binary.Write(&e.term, binary.LittleEndian, v) }
func (e *encoder) i64(v int64)  { binary.Write(&e.term, binary.LittleEndian, v) }
