package bundle_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/axis-lang/axis-core/axis/bundle"
	"github.com/axis-lang/axis-core/axis/core"
	"github.com/axis-lang/axis-core/axis/token"
)

func sp(file string) token.Span { return token.Span{File: file, Line: 3, Column: 7} }

func sampleTerm() core.Term {
	return &core.Lam{
		Param: "arg",
		Body: &core.Let{
			Name:  "a",
			Value: &core.Proj{Expr: &core.Var{Name: "arg", Sp: sp("main.ax")}, Index: 0, Sp: sp("main.ax")},
			Body: &core.Match{
				Scrutinee: &core.Ctor{Name: "Option_Some", Fields: []core.Term{&core.IntLit{Value: 3, Sp: sp("main.ax")}}, Sp: sp("main.ax")},
				Arms: []core.Arm{
					{Pattern: core.Pattern{Kind: core.PatCtor, Name: "Option_None", Sp: sp("main.ax")}, Body: &core.IntLit{Value: 0, Sp: sp("main.ax")}},
					{
						Pattern: core.Pattern{Kind: core.PatCtor, Name: "Option_Some", Elems: []core.Pattern{{Kind: core.PatVar, Name: "x", Sp: sp("main.ax")}}, Sp: sp("main.ax")},
						Body:    &core.Var{Name: "x", Sp: sp("main.ax")},
					},
				},
				Sp: sp("main.ax"),
			},
			Sp: sp("main.ax"),
		},
		Sp: sp("main.ax"),
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	b := &bundle.Bundle{
		Version:        bundle.Version,
		EntrypointName: "main",
		EntrypointID:   0xDEADBEEF,
		Term:           sampleTerm(),
	}

	var buf bytes.Buffer
	if err := bundle.Encode(&buf, b); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := bundle.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.EntrypointName != b.EntrypointName {
		t.Errorf("EntrypointName = %q, want %q", got.EntrypointName, b.EntrypointName)
	}
	if got.EntrypointID != b.EntrypointID {
		t.Errorf("EntrypointID = %#x, want %#x", got.EntrypointID, b.EntrypointID)
	}
	if !core.Equal(got.Term, b.Term) {
		t.Errorf("decoded term differs:\ngot:\n%s\nwant:\n%s", core.Pretty(got.Term), core.Pretty(b.Term))
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	b := &bundle.Bundle{Version: bundle.Version, EntrypointName: "main", EntrypointID: 1, Term: sampleTerm()}

	var buf1, buf2 bytes.Buffer
	if err := bundle.Encode(&buf1, b); err != nil {
		t.Fatal(err)
	}
	if err := bundle.Encode(&buf2, b); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf1.Bytes(), buf2.Bytes()) {
		t.Fatal("expected two encodings of the same bundle to be byte-identical")
	}
}

func TestDecodeRejectsUnsupportedVersion(t *testing.T) {
	var buf bytes.Buffer
	b := &bundle.Bundle{Version: bundle.Version, EntrypointName: "main", EntrypointID: 1, Term: &core.UnitLit{}}
	if err := bundle.Encode(&buf, b); err != nil {
		t.Fatal(err)
	}
	// Encode always writes the package Version constant ("0.1"); a foreign
	// major version is made by patching the first byte of the version
	// string, which follows the magic and its u32 length prefix.
	data := buf.Bytes()
	data[len(bundle.Magic)+4] = '9'

	_, err := bundle.Decode(bytes.NewReader(data))
	var unsupported *bundle.VersionUnsupported
	if !errorsAs(err, &unsupported) {
		t.Fatalf("expected *bundle.VersionUnsupported, got %T: %v", err, err)
	}
	if !strings.Contains(unsupported.Error(), "9.1") {
		t.Errorf("VersionUnsupported.Error() = %q, want it to mention the offending version", unsupported.Error())
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	_, err := bundle.Decode(bytes.NewReader([]byte("not a bundle at all")))
	if err == nil {
		t.Fatal("expected a MalformedBundleError")
	}
	var malformed *bundle.MalformedBundleError
	if !errorsAs(err, &malformed) {
		t.Errorf("expected *bundle.MalformedBundleError, got %T: %v", err, err)
	}
}

func TestDecodeRejectsTruncatedInput(t *testing.T) {
	var buf bytes.Buffer
	if err := bundle.Encode(&buf, &bundle.Bundle{Version: bundle.Version, EntrypointName: "main", EntrypointID: 1, Term: sampleTerm()}); err != nil {
		t.Fatal(err)
	}
	truncated := buf.Bytes()[:len(buf.Bytes())/2]
	_, err := bundle.Decode(bytes.NewReader(truncated))
	if err == nil {
		t.Fatal("expected an error decoding truncated bundle bytes")
	}
}

func errorsAs[T any](err error, target *T) bool {
	if v, ok := err.(T); ok {
		*target = v
		return true
	}
	return false
}
