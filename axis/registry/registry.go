// Package registry loads and composes `.axreg` catalogs of callable names
// into a single ActiveRegistry (spec.md §4.1). Of the other Axis packages
// it depends only on axis/token (for spans) and util (for error
// accumulation), and it is pure data once loaded.
package registry

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/axis-lang/axis-core/axis/token"
	"github.com/axis-lang/axis-core/util"
)

// ProfileID names an admission set. Load uses the profile it is given;
// DefaultProfile is the built-in profile the CLI's --profile flag and
// compile.New fall back to when none is given (spec.md §6).
type ProfileID string

const DefaultProfile ProfileID = "default"

// Entry is one declared callable: its flat name, fixed arity, determinism
// flag, and admitted profiles.
type Entry struct {
	Name          string
	Arity         int
	Deterministic bool
	Profiles      map[ProfileID]bool
	Span          token.Span
}

// Admitted reports whether profile is in the entry's admission set.
func (e *Entry) Admitted(profile ProfileID) bool {
	return e.Profiles[profile]
}

// ActiveRegistry is the union of all loaded .axreg files, filtered for
// admission by the active profile at lookup time (not at load time —
// not-admitted entries stay in the registry so ProfileDenied can name
// them specifically, per spec.md §4.1).
type ActiveRegistry struct {
	Entries       map[string]*Entry
	ActiveProfile ProfileID
}

// Lookup returns the entry for name, or (nil, false) if no .axreg file
// declared it.
func (r *ActiveRegistry) Lookup(name string) (*Entry, bool) {
	e, ok := r.Entries[name]
	return e, ok
}

// --- Errors ---

type MalformedRecordError struct {
	Span   token.Span
	Detail string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s: malformed registry record: %s", e.Span, e.Detail)
}

type DuplicateNameError struct {
	Name       string
	FirstSpan  token.Span
	SecondSpan token.Span
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s: duplicate registry name %q (first declared at %s)", e.SecondSpan, e.Name, e.FirstSpan)
}

type UnsupportedCommentSyntaxError struct {
	Span token.Span
}

func (e *UnsupportedCommentSyntaxError) Error() string {
	return fmt.Sprintf("%s: unsupported comment syntax (only line comments starting with // are allowed)", e.Span)
}

// Source is one named byte blob to load — a file's contents together with
// the name used in error spans. Registry files never reference each other,
// so Load takes the full ordered list of inputs up front.
type Source struct {
	Name string
	Src  []byte
}

// Load composes an ActiveRegistry from every source, in order, filtered for
// admission against activeProfile at lookup time. It returns a non-nil
// error (an errors.Join over every accumulated structural failure) if any
// source is malformed or any name collides across sources.
func Load(sources []Source, activeProfile ProfileID) (*ActiveRegistry, error) {
	reg := &ActiveRegistry{Entries: make(map[string]*Entry), ActiveProfile: activeProfile}
	var errs util.ErrorList

	for i, src := range sources {
		file := token.NewFile(src.Name, i, src.Src)
		loadOne(file, reg, &errs)
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return reg, nil
}

// loadOne parses one .axreg file's blocks and merges them into reg,
// recording MalformedRecord/DuplicateName/UnsupportedCommentSyntax errors
// into errs without stopping at the first one.
func loadOne(file *token.File, reg *ActiveRegistry, errs *util.ErrorList) {
	lines := splitLines(file.Src)
	spanAt := func(n int) token.Span { return file.Position(file.LineOffset(n)) }

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(stripComment(lines[i], spanAt(i), errs))
		if line == "" {
			i++
			continue
		}

		if !strings.HasPrefix(line, "fn ") {
			errs.Add(&MalformedRecordError{Span: spanAt(i), Detail: fmt.Sprintf("expected 'fn' block, found %q", line)})
			i++
			continue
		}

		name := strings.TrimSpace(line[len("fn "):])
		if name == "" {
			errs.Add(&MalformedRecordError{Span: spanAt(i), Detail: "missing function name"})
			i++
			continue
		}
		blockSpan := spanAt(i)
		i++

		var arity int
		var arityOK bool
		var deterministic bool
		var detOK bool
		var profiles []ProfileID
		malformed := false

		// Directive order is fixed: arity, then deterministic, then one or
		// more profile lines. phase tracks which directive is next;
		// profile (phase 2) is the only one allowed to repeat.
		const (
			phaseArity = iota
			phaseDeterministic
			phaseProfile
		)
		phase := phaseArity

		for i < len(lines) {
			field := strings.TrimSpace(stripComment(lines[i], spanAt(i), errs))
			if field == "" {
				i++
				continue
			}
			if field == "end" {
				i++
				break
			}

			key, val, ok := splitDirective(field)
			if !ok {
				errs.Add(&MalformedRecordError{Span: spanAt(i), Detail: fmt.Sprintf("unrecognized directive %q", field)})
				malformed = true
				i++
				continue
			}

			wantKey := [3]string{"arity", "deterministic", "profile"}[phase]
			if key != wantKey {
				errs.Add(&MalformedRecordError{
					Span:   spanAt(i),
					Detail: fmt.Sprintf("unexpected directive %q, expected %q (order: arity, deterministic, profile+)", key, wantKey),
				})
				malformed = true
				i++
				continue
			}
			if phase < phaseProfile {
				phase++
			}

			switch key {
			case "arity":
				n, err := strconv.Atoi(val)
				if err != nil || n < 0 {
					errs.Add(&MalformedRecordError{Span: spanAt(i), Detail: fmt.Sprintf("invalid arity %q", val)})
					malformed = true
				} else {
					arity, arityOK = n, true
				}
			case "deterministic":
				if val != "true" && val != "false" {
					errs.Add(&MalformedRecordError{Span: spanAt(i), Detail: fmt.Sprintf("invalid deterministic value %q", val)})
					malformed = true
				} else {
					deterministic, detOK = val == "true", true
				}
			case "profile":
				if val == "" {
					errs.Add(&MalformedRecordError{Span: spanAt(i), Detail: "missing profile name"})
					malformed = true
				} else {
					profiles = append(profiles, ProfileID(val))
				}
			}
			i++
		}

		if !arityOK || !detOK || len(profiles) == 0 {
			errs.Add(&MalformedRecordError{Span: blockSpan, Detail: fmt.Sprintf("fn %s: missing required field(s)", name)})
			malformed = true
		}
		if malformed {
			continue
		}

		profileSet := make(map[ProfileID]bool, len(profiles))
		for _, p := range profiles {
			profileSet[p] = true
		}

		if existing, ok := reg.Entries[name]; ok {
			errs.Add(&DuplicateNameError{Name: name, FirstSpan: existing.Span, SecondSpan: blockSpan})
			continue
		}

		reg.Entries[name] = &Entry{
			Name:          name,
			Arity:         arity,
			Deterministic: deterministic,
			Profiles:      profileSet,
			Span:          blockSpan,
		}
	}
}

// stripComment removes a trailing `//` line comment. Any other comment
// marker (e.g. `/*`) found on a line is a structural error, not silently
// treated as content.
func stripComment(line string, span token.Span, errs *util.ErrorList) string {
	if idx := strings.Index(line, "//"); idx >= 0 {
		line = line[:idx]
	}
	if strings.Contains(line, "/*") || strings.Contains(line, "*/") {
		errs.Add(&UnsupportedCommentSyntaxError{Span: span})
		return ""
	}
	return line
}

func splitDirective(field string) (key, val string, ok bool) {
	parts := strings.SplitN(field, " ", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	key = strings.TrimSpace(parts[0])
	val = strings.TrimSpace(parts[1])
	if key != "arity" && key != "deterministic" && key != "profile" {
		return "", "", false
	}
	return key, val, true
}

func splitLines(src []byte) []string {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(src))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines
}
