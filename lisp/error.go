package lisp

import (
	"errors"
	"fmt"
)

// ErrorKind classifies evaluation failures.
type ErrorKind int

// Possible ErrorKind values
const (
	SyntaxError ErrorKind = iota
	NameError
	ArityError
	TypeError
)

var errorKindStrings = []string{
	SyntaxError: "SyntaxError",
	NameError:   "NameError",
	ArityError:  "ArityError",
	TypeError:   "TypeError",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(errorKindStrings) {
		return "UnknownError"
	}
	return errorKindStrings[k]
}

// Error is an evaluation failure.  Source is set by EvalProgram to the
// complete input of the failed program.
type Error struct {
	Kind   ErrorKind
	Msg    string
	Source string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Msg
}

// Errorf returns an *Error of the given kind with a formatted message.
func Errorf(kind ErrorKind, format string, v ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, v...)}
}

// IsKind returns true if err is an *Error (or wraps one) of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var lerr *Error
	if !errors.As(err, &lerr) {
		return false
	}
	return lerr.Kind == kind
}

func syntaxErrorf(format string, v ...interface{}) *Error {
	return Errorf(SyntaxError, format, v...)
}

func typeErrorf(format string, v ...interface{}) *Error {
	return Errorf(TypeError, format, v...)
}
