package diagnostics

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/ante-lang/infercore/internal/unify"
)

// normalizeName NFC-normalizes a user-facing type-variable or identifier
// name before it reaches a diagnostic (SPEC_FULL.md E3: combining-mark
// spellings of the same source identifier should render identically). The
// lexer that would own this normalization end-to-end is out of scope (spec
// 1), but any name threaded in from source text still flows through here.
func normalizeName(s string) string {
	return norm.NFC.String(s)
}

// FromTypeError renders a *unify.TypeError as the Record spec 4.6 describes:
// "expected T1, found T2" at the constraint's source location, with a note
// for infinite-recursion errors ("T1 occurs inside T2"). InternalRecursion is
// never routed here: it is a fatal condition handled directly by the driver
// that calls unify.Unify, not a user-visible diagnostic (spec 7: "Fatal
// internal error").
func FromTypeError(e *unify.TypeError) Record {
	msg := renderMessage(e)
	if e.Template != "" {
		msg = fmt.Sprintf("%s: %s", e.Template, msg)
	}
	return Record{Loc: e.Loc, Severity: Error, Message: normalizeName(msg)}
}

func renderMessage(e *unify.TypeError) string {
	switch e.Kind {
	case unify.Mismatch, unify.ArityMismatch, unify.TupleWidth:
		return fmt.Sprintf("expected %s, found %s", e.T1, e.T2)
	case unify.InfRecursion1:
		return fmt.Sprintf("expected %s, found %s (%s occurs inside %s)", e.T1, e.T2, e.T1, e.T2)
	case unify.InfRecursion2:
		return fmt.Sprintf("expected %s, found %s (%s occurs inside %s)", e.T1, e.T2, e.T2, e.T1)
	case unify.TraitUnsatisfied:
		return fmt.Sprintf("no implementation satisfies %s", e.Impl)
	case unify.Overlapping:
		return fmt.Sprintf("multiple implementations satisfy %s (%d candidates)", e.Impl, len(e.Candidates))
	default:
		return e.Error()
	}
}
