package lexer_test

import (
	"testing"

	"github.com/axis-lang/axis-core/axis/lexer"
	"github.com/axis-lang/axis-core/axis/token"
)

func kinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	f := token.NewFile("t.ax", 0, []byte(src))
	l := lexer.New(f)
	toks := l.ScanAll()
	if err := l.Err(); err != nil {
		t.Fatalf("unexpected lexer error: %v", err)
	}
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestScanKeywordsAndPunctuation(t *testing.T) {
	got := kinds(t, "fn add(a, b) -> int { a }")
	want := []token.Kind{
		token.Fn, token.Ident, token.LParen, token.Ident, token.Comma, token.Ident,
		token.RParen, token.Arrow, token.Ident, token.LBrace, token.Ident, token.RBrace,
		token.Eof,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestScanTwoByteSymbolsBeforeOneByte(t *testing.T) {
	got := kinds(t, "-> => |")
	want := []token.Kind{token.Arrow, token.FatArrow, token.Pipe, token.Eof}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestScanIgnoresLineComments(t *testing.T) {
	got := kinds(t, "let x = 1 // trailing comment\nlet y = 2")
	found := 0
	for _, k := range got {
		if k == token.Let {
			found++
		}
	}
	if found != 2 {
		t.Errorf("expected two 'let' tokens, got %d in %v", found, got)
	}
}

func TestScanRejectsLeadingZeroInteger(t *testing.T) {
	f := token.NewFile("t.ax", 0, []byte("007"))
	l := lexer.New(f)
	l.ScanAll()
	if l.Err() == nil {
		t.Fatal("expected an InvalidLiteralError for a leading-zero integer")
	}
}

func TestScanRejectsIllegalByte(t *testing.T) {
	f := token.NewFile("t.ax", 0, []byte("@"))
	l := lexer.New(f)
	l.ScanAll()
	if l.Err() == nil {
		t.Fatal("expected an InvalidLiteralError for an illegal byte")
	}
}

func TestScanAllAlwaysEndsWithEOF(t *testing.T) {
	got := kinds(t, "")
	if len(got) != 1 || got[0] != token.Eof {
		t.Fatalf("expected a lone EOF token for empty input, got %v", got)
	}
}
