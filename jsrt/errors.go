package jsrt

import "fmt"

// ErrorKind classifies runtime failures.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindResourceExhausted
	KindWrongType
	KindInvalidHandle
	KindOutOfRange
	KindFinalized
	KindNotConvertible
)

// String returns a human-readable kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindResourceExhausted:
		return "resource exhausted"
	case KindWrongType:
		return "wrong type"
	case KindInvalidHandle:
		return "invalid handle"
	case KindOutOfRange:
		return "out of range"
	case KindFinalized:
		return "finalized"
	case KindNotConvertible:
		return "not convertible"
	default:
		return "unknown"
	}
}

// Error is the single error type produced by the runtime. Generated
// conversions return it unchanged so callers can inspect Kind.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return "jsrt: " + e.Kind.String() + ": " + e.Msg
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, &Error{Kind: KindWrongType}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind && (t.Msg == "" || t.Msg == e.Msg)
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// DeriveError is the target of the compile-time errors jsderive embeds in
// generated files for declarations it cannot derive. No value of any other
// type is assignable to it, so every such declaration fails to compile and
// the compiler prints the embedded diagnostic.
type DeriveError struct {
	_ [0]func()
}
