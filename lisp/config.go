package lisp

import "fmt"

// Config is a function that configures a root environment or its runtime.
type Config func(env *Env) error

// WithPrimitives returns a Config that copies the bindings in frame into the
// global frame.  Existing bindings are overwritten.
func WithPrimitives(frame Frame) Config {
	return func(env *Env) error {
		global := env.Global()
		for name, v := range frame {
			if v.Type == LInvalid {
				return fmt.Errorf("invalid value bound to %q", name)
			}
			global[name] = v
		}
		return nil
	}
}

// WithLexicalCapture returns a Config that makes closures capture their
// defining environment when created instead of having it back-patched when
// they are returned from a call.
func WithLexicalCapture() Config {
	return WithCaptureMode(CaptureLexical)
}

// WithCaptureMode returns a Config that sets the runtime's closure capture
// mode.
func WithCaptureMode(mode CaptureMode) Config {
	return func(env *Env) error {
		switch mode {
		case CaptureBackPatch, CaptureLexical:
		default:
			return fmt.Errorf("unknown capture mode: %d", mode)
		}
		env.Runtime.Capture = mode
		return nil
	}
}
