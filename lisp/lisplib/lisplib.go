// Package lisplib provides the primitive functions bound in the global frame
// of a jisp environment.
package lisplib

import (
	"github.com/luthersystems/jisp/lisp"
)

// Pi is the value bound to the symbol pi.
const Pi = 3.141592653

// Primitives returns a new frame containing the primitive library.  Each call
// returns a fresh frame so that callers may modify it.
func Primitives() lisp.Frame {
	frame := make(lisp.Frame, len(builtins)+1)
	for _, b := range builtins {
		frame[b.name] = lisp.Prim(b.name, b.fn)
	}
	frame["pi"] = lisp.Number(Pi)
	return frame
}

// NewEnv returns a root environment with the primitive library loaded into
// its global frame.  The configs are applied after the library is loaded.
func NewEnv(configs ...lisp.Config) (lisp.Env, error) {
	configs = append([]lisp.Config{lisp.WithPrimitives(Primitives())}, configs...)
	return lisp.NewEnv(configs...)
}
