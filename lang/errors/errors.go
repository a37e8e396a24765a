// Package errors defines the span-carrying, tagged error envelope shared by
// the compiler and the virtual machine. Both compile-time and runtime
// failures are reported as an Error{Kind, Tag, Span, Msg}; compile-time
// failures accumulate into a List the way go/scanner.ErrorList accumulates
// lexer errors, so that a single compile reports every problem it found
// instead of stopping at the first one.
package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mna/yarrow/lang/token"
)

// Kind identifies the category of an Error, matching the error code strings
// an external diagnostic formatter would render.
type Kind string

// The complete error taxonomy.
const (
	KindSyntaxError    Kind = "SyntaxError"
	KindNameError      Kind = "NameError"
	KindTypeError      Kind = "TypeError"
	KindOverflowError  Kind = "OverflowError"
	KindAttributeError Kind = "AttributeError"
	KindIoError        Kind = "IoError"
)

// Tag is a fine-grained error variant within a Kind, used by tests and by
// callers that want to distinguish e.g. TypeError.ArityMismatch from
// TypeError.NotCallable without parsing the message.
type Tag string

//nolint:revive
const (
	// SyntaxError tags.
	TagReturnOutsideFunction Tag = "ReturnOutsideFunction"
	TagReturnInInitializer  Tag = "ReturnInInitializer"
	TagSuperOutsideClass    Tag = "SuperOutsideClass"
	TagSuperWithoutSuperclass Tag = "SuperWithoutSuperclass"
	TagThisOutsideClass     Tag = "ThisOutsideClass"
	TagParse                Tag = "Parse"

	// NameError tags.
	TagAlreadyDefined        Tag = "AlreadyDefined"
	TagAccessInsideInitializer Tag = "AccessInsideInitializer"
	TagClassInheritFromSelf Tag = "ClassInheritFromSelf"
	TagNotDefined           Tag = "NotDefined"

	// OverflowError tags.
	TagTooManyConstants Tag = "TooManyConstants"
	TagTooManyLocals    Tag = "TooManyLocals"
	TagTooManyParams    Tag = "TooManyParams"
	TagTooManyArgs      Tag = "TooManyArgs"
	TagTooManyUpvalues  Tag = "TooManyUpvalues"
	TagJumpTooLarge     Tag = "JumpTooLarge"
	TagStackOverflow    Tag = "StackOverflow"

	// TypeError tags.
	TagNotCallable             Tag = "NotCallable"
	TagArityMismatch            Tag = "ArityMismatch"
	TagSuperclassInvalidType   Tag = "SuperclassInvalidType"
	TagUnsupportedOperandPrefix Tag = "UnsupportedOperandPrefix"
	TagUnsupportedOperandInfix Tag = "UnsupportedOperandInfix"

	// AttributeError tags.
	TagNoSuchAttribute Tag = "NoSuchAttribute"

	// IoError tags.
	TagWriteError Tag = "WriteError"
)

// Error is a single span-annotated, tagged failure.
type Error struct {
	Kind Kind
	Tag  Tag
	Span token.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (at %s)", e.Kind, e.Msg, e.Span)
}

// New builds an Error.
func New(kind Kind, tag Tag, span token.Span, format string, args ...any) *Error {
	return &Error{Kind: kind, Tag: tag, Span: span, Msg: fmt.Sprintf(format, args...)}
}

// List is an ordered collection of compile-time errors. The zero value is
// an empty list ready for Add; Add on a nil *List panics.
type List struct {
	errs []*Error
}

// Add appends err to the list.
func (l *List) Add(err *Error) {
	l.errs = append(l.errs, err)
}

// Addf builds and appends a new Error.
func (l *List) Addf(kind Kind, tag Tag, span token.Span, format string, args ...any) {
	l.Add(New(kind, tag, span, format, args...))
}

// Len reports the number of collected errors.
func (l *List) Len() int { return len(l.errs) }

// Errs returns the collected errors in sorted order (by span, then message).
func (l *List) Errs() []*Error {
	sort.SliceStable(l.errs, func(i, j int) bool {
		a, b := l.errs[i], l.errs[j]
		if a.Span.Start != b.Span.Start {
			return a.Span.Start < b.Span.Start
		}
		return a.Msg < b.Msg
	})
	return l.errs
}

// Err returns nil if the list is empty, otherwise an error aggregating every
// collected Error (implements error, and Unwrap() []error in the style of
// go/scanner.ErrorList).
func (l *List) Err() error {
	if len(l.errs) == 0 {
		return nil
	}
	return &aggregate{l.Errs()}
}

type aggregate struct {
	errs []*Error
}

func (a *aggregate) Error() string {
	var b strings.Builder
	for i, e := range a.errs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

func (a *aggregate) Unwrap() []error {
	out := make([]error, len(a.errs))
	for i, e := range a.errs {
		out[i] = e
	}
	return out
}

// Errors extracts the []*Error from err if it was produced by List.Err,
// otherwise it wraps err as a single-element slice (or nil if err is nil).
func Errors(err error) []*Error {
	if err == nil {
		return nil
	}
	if agg, ok := err.(*aggregate); ok {
		return agg.errs
	}
	if e, ok := err.(*Error); ok {
		return []*Error{e}
	}
	return []*Error{New(KindIoError, TagWriteError, token.Span{}, "%s", err.Error())}
}
