package lower

import (
	"fmt"

	"github.com/axis-lang/axis-core/axis/token"
)

type UnboundName struct {
	Name string
	Sp   token.Span
}

func (e *UnboundName) Error() string {
	return fmt.Sprintf("%s: unbound name %q", e.Sp, e.Name)
}

type ArityMismatch struct {
	Name     string
	Expected int
	Found    int
	Sp       token.Span
}

func (e *ArityMismatch) Error() string {
	return fmt.Sprintf("%s: %q expects %d argument(s), found %d", e.Sp, e.Name, e.Expected, e.Found)
}

type ProfileDenied struct {
	Name string
	Sp   token.Span
}

func (e *ProfileDenied) Error() string {
	return fmt.Sprintf("%s: %q is not admitted by the active profile", e.Sp, e.Name)
}

type MalformedSurface struct {
	Detail string
	Sp     token.Span
}

func (e *MalformedSurface) Error() string {
	return fmt.Sprintf("%s: malformed surface construct: %s", e.Sp, e.Detail)
}

type NonExhaustive struct {
	Sp token.Span
}

func (e *NonExhaustive) Error() string {
	return fmt.Sprintf("%s: match is not exhaustive", e.Sp)
}

type ProjOutOfBounds struct {
	Index int
	Len   int
	Sp    token.Span
}

func (e *ProjOutOfBounds) Error() string {
	return fmt.Sprintf("%s: projection index %d out of bounds for tuple of length %d", e.Sp, e.Index, e.Len)
}

type DuplicateBinding struct {
	Name string
	Sp   token.Span
}

func (e *DuplicateBinding) Error() string {
	return fmt.Sprintf("%s: duplicate pattern variable %q in a single arm", e.Sp, e.Name)
}
