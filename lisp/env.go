package lisp

// Frame is one binding scope in an environment.
type Frame map[string]Value

// CaptureMode determines how closures capture their environment.
type CaptureMode int

// Possible CaptureMode values
const (
	// CaptureBackPatch creates closures with an empty capture.  When a
	// closure application returns a closure, the returned closure's capture
	// is replaced with the call's parameter frame.  Closure bodies see the
	// parameters, then the capture, then the caller's frames.
	CaptureBackPatch CaptureMode = iota
	// CaptureLexical captures the defining environment when the lambda is
	// evaluated.  Closure bodies see the parameters and then the defining
	// environment only.
	CaptureLexical
)

// Runtime holds state shared by every Env derived from the same root.
type Runtime struct {
	Capture CaptureMode
}

// Env is a chain of frames.  Frames[0] is the global frame and the most
// recently pushed frame is last.
type Env struct {
	Frames  []Frame
	Runtime *Runtime
}

// NewEnv initializes and returns a root environment containing a single,
// empty global frame, then applies each config in order.
func NewEnv(configs ...Config) (Env, error) {
	env := Env{
		Frames:  []Frame{make(Frame)},
		Runtime: &Runtime{},
	}
	for _, config := range configs {
		err := config(&env)
		if err != nil {
			return Env{}, err
		}
	}
	return env, nil
}

// Global returns the global frame.
func (env Env) Global() Frame {
	return env.Frames[0]
}

// Depth returns the number of frames in env.
func (env Env) Depth() int {
	return len(env.Frames)
}

// Get returns the value bound to name in the most recently pushed frame that
// binds it.
func (env Env) Get(name string) (Value, bool) {
	for i := len(env.Frames) - 1; i >= 0; i-- {
		v, ok := env.Frames[i][name]
		if ok {
			return v, true
		}
	}
	return Value{}, false
}

// Define binds name to v in the global frame regardless of how many frames
// have been pushed onto env.
func (env Env) Define(name string, v Value) {
	env.Frames[0][name] = v
}

// Extend returns a new Env with frames appended.  The frame slice of the
// returned Env never shares a backing array with env.
func (env Env) Extend(frames ...Frame) Env {
	ext := make([]Frame, 0, len(env.Frames)+len(frames))
	ext = append(ext, env.Frames...)
	ext = append(ext, frames...)
	return Env{Frames: ext, Runtime: env.Runtime}
}
