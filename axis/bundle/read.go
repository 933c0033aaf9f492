package bundle

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// Decode reads a bundle previously written by Encode. It rejects any
// major version other than the one this package writes and ignores no
// fields — 0.1 defines none that are optional.
func Decode(r io.Reader) (*Bundle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	br := bytes.NewReader(data)

	magic := make([]byte, len(Magic))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, &MalformedBundleError{Detail: "truncated magic"}
	}
	if string(magic) != Magic {
		return nil, &MalformedBundleError{Detail: fmt.Sprintf("bad magic %q", magic)}
	}

	version, err := readLenString(br)
	if err != nil {
		return nil, err
	}
	if major, _, _ := strings.Cut(version, "."); major != "0" {
		return nil, &VersionUnsupported{Version: version}
	}

	entrypointName, err := readLenString(br)
	if err != nil {
		return nil, err
	}

	var entrypointID uint32
	if err := binary.Read(br, binary.LittleEndian, &entrypointID); err != nil {
		return nil, &MalformedBundleError{Detail: "truncated entrypoint_id"}
	}

	var tableCount uint32
	if err := binary.Read(br, binary.LittleEndian, &tableCount); err != nil {
		return nil, &MalformedBundleError{Detail: "truncated string_table_count"}
	}
	strs := make([]string, tableCount)
	for i := range strs {
		s, err := readLenString(br)
		if err != nil {
			return nil, err
		}
		strs[i] = s
	}

	d := &decoder{r: br, strings: strs}
	term, err := d.readTerm()
	if err != nil {
		return nil, err
	}

	return &Bundle{
		Version:        version,
		EntrypointName: entrypointName,
		EntrypointID:   entrypointID,
		Term:           term,
	}, nil
}

func readLenString(r *bytes.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", &MalformedBundleError{Detail: "truncated string length"}
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", &MalformedBundleError{Detail: "truncated string data"}
	}
	return string(buf), nil
}
