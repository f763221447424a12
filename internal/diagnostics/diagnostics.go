// Package diagnostics is C6: it renders unification failures as the
// {location, severity, message} records spec 6 describes, using the
// teacher's color.New(...).SprintFunc() idiom (cmd/ailang/main.go,
// internal/repl/repl.go) for the one user-facing surface this core owns.
package diagnostics

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/ante-lang/infercore/internal/ast"
)

// Severity is one of the three levels spec 6 names.
type Severity int

const (
	Note Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "note"
	}
}

// Record is one diagnostic: a location, a severity, and a rendered message.
type Record struct {
	Loc      ast.Pos
	Severity Severity
	Message  string
}

// Sink accepts diagnostic records (spec 6: "a sink accepting {location,
// severity, message} records"). Emitting an Error marks the compilation as
// failed but never short-circuits inference (spec 6), so Sink has no way to
// abort the caller — internal/compilerstate.State.MarkFailed is the
// out-of-band flag that records that fact.
type Sink interface {
	Emit(Record)
}

var (
	errorColor = color.New(color.FgRed, color.Bold).SprintFunc()
	warnColor  = color.New(color.FgYellow, color.Bold).SprintFunc()
	noteColor  = color.New(color.FgCyan).SprintFunc()
	locColor   = color.New(color.Faint).SprintFunc()
)

// WriterSink writes every Record to w, colorizing the severity label when w
// is a TTY (matching the teacher's cmd/ailang/main.go color use; fatih/color
// itself suppresses escapes when the destination isn't a terminal).
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Emit(r Record) {
	label := r.Severity.String()
	switch r.Severity {
	case Error:
		label = errorColor(label)
	case Warning:
		label = warnColor(label)
	case Note:
		label = noteColor(label)
	}
	loc := ""
	if r.Loc.File != "" || r.Loc.Line != 0 {
		loc = locColor(fmt.Sprintf("%s:%d:%d: ", r.Loc.File, r.Loc.Line, r.Loc.Column))
	}
	fmt.Fprintf(s.W, "%s%s: %s\n", loc, label, r.Message)
}

// CollectingSink accumulates records for inspection (tests, for example)
// instead of writing them out immediately.
type CollectingSink struct {
	Records []Record
}

func (s *CollectingSink) Emit(r Record) {
	s.Records = append(s.Records, r)
}

func (s *CollectingSink) HasError() bool {
	for _, r := range s.Records {
		if r.Severity == Error {
			return true
		}
	}
	return false
}
