package lisp

import (
	"strings"

	"github.com/golang/glog"
	"github.com/luthersystems/jisp/parser"
)

// evalLambda evaluates (lambda (param ...) body) to a closure.  The body is
// captured as source text and is not evaluated.
func evalLambda(text string, env Env) (Value, string, error) {
	rest, ok := keyword(text, "lambda")
	if !ok {
		return Value{}, text, errNoMatch
	}
	params, rest, err := lambdaParams(rest)
	if err != nil {
		return Value{}, "", err
	}
	if err := requireOperand(rest); err != nil {
		return Value{}, "", err
	}
	body, rest, ok := parser.SkipForm(rest)
	if !ok {
		return Value{}, "", syntaxErrorf(`expected ")"`)
	}
	rest, err = closeForm(rest)
	if err != nil {
		return Value{}, "", err
	}
	fn := Lambda(params, body)
	if env.capture() == CaptureLexical {
		fn.Closure.Env = env.Extend()
	}
	return fn, rest, nil
}

// lambdaParams reads a parenthesized list of distinct parameter names.
func lambdaParams(text string) ([]string, string, error) {
	switch peek(text) {
	case 0:
		return nil, "", syntaxErrorf(`expected ")"`)
	case '(':
	default:
		return nil, "", syntaxErrorf("lambda parameter list expected")
	}
	text = trimSpace(text)[1:]
	end := strings.IndexAny(text, "()")
	if end < 0 {
		return nil, "", syntaxErrorf(`expected ")"`)
	}
	if text[end] == '(' {
		return nil, "", syntaxErrorf("lambda parameter is not a symbol")
	}
	params := strings.FieldsFunc(text[:end], func(c rune) bool {
		return strings.ContainsRune(whitespace, c)
	})
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if isLiteral(p) {
			return nil, "", syntaxErrorf("lambda parameter is not a symbol: %s", p)
		}
		if seen[p] {
			return nil, "", syntaxErrorf("duplicate lambda parameter: %s", p)
		}
		seen[p] = true
	}
	return params, text[end+1:], nil
}

// evalApplication evaluates (operator arg ...).  The operator is evaluated
// once; closures and primitives are then applied to the arguments, which
// are evaluated left to right in env.
func evalApplication(text string, env Env) (Value, string, error) {
	if peek(text) != '(' {
		return Value{}, text, errNoMatch
	}
	rest := trimSpace(text)[1:]
	switch peek(rest) {
	case 0:
		return Value{}, "", syntaxErrorf(`expected ")"`)
	case ')':
		return Value{}, "", syntaxErrorf("missing operator in form")
	}
	opText := rest
	fn, rest, err := Eval(rest, env)
	if err != nil {
		return Value{}, "", err
	}
	args, rest, err := evalArgs(rest, env)
	if err != nil {
		return Value{}, "", err
	}
	if !fn.IsCallable() {
		op, _, _ := parser.SkipForm(opText)
		return Value{}, "", typeErrorf("%s is not a function", op)
	}
	v, err := Apply(env, fn, args)
	if err != nil {
		return Value{}, "", err
	}
	return v, rest, nil
}

// evalArgs evaluates forms up to and including the closing paren of an
// application.
func evalArgs(text string, env Env) ([]Value, string, error) {
	var args []Value
	for {
		switch peek(text) {
		case 0:
			return nil, "", syntaxErrorf(`expected ")"`)
		case ')':
			return args, trimSpace(trimSpace(text)[1:]), nil
		}
		v, rest, err := Eval(text, env)
		if err != nil {
			return nil, "", err
		}
		args = append(args, v)
		text = rest
	}
}

// Apply calls fn with args.  env is the caller's environment.
func Apply(env Env, fn Value, args []Value) (Value, error) {
	switch fn.Type {
	case LClosure:
		return applyClosure(env, fn.Closure, args)
	case LPrimitive:
		return fn.Primitive.Fn(env, args)
	default:
		return Value{}, typeErrorf("%s is not a function", fn.Type)
	}
}

// applyClosure binds args to the parameters of c in a new frame and evaluates
// the body of c.  The body sees the new frame first, then the frames c
// captured.  Unless the runtime captures lexically the caller's frames are
// visible beneath those, and a closure returned by the body has its capture
// replaced by the new frame.
func applyClosure(env Env, c *Closure, args []Value) (Value, error) {
	if len(args) != len(c.Params) {
		return Value{}, Errorf(ArityError, "expected %d arguments (got %d)", len(c.Params), len(args))
	}
	params := make(Frame, len(c.Params))
	for i, name := range c.Params {
		params[name] = args[i]
	}

	mode := env.capture()
	var callee Env
	if mode == CaptureLexical {
		base := c.Env
		if len(base.Frames) == 0 {
			base = Env{Frames: env.Frames[:1], Runtime: env.Runtime}
		}
		callee = base.Extend(params)
	} else {
		frames := make([]Frame, 0, len(c.Env.Frames)+1)
		frames = append(frames, c.Env.Frames...)
		frames = append(frames, params)
		callee = env.Extend(frames...)
	}
	glog.V(3).Infof("apply (lambda (%s) ...) at depth %d", strings.Join(c.Params, " "), callee.Depth())

	v, rest, err := Eval(c.Body, callee)
	if err != nil {
		return Value{}, err
	}
	if peek(rest) != 0 {
		return Value{}, syntaxErrorf("unexpected text after lambda body: %s", trimSpace(rest))
	}
	if v.Type == LClosure && mode == CaptureBackPatch {
		v.Closure.Env = Env{Frames: []Frame{params}, Runtime: env.Runtime}
	}
	return v, nil
}

func (env Env) capture() CaptureMode {
	if env.Runtime == nil {
		return CaptureBackPatch
	}
	return env.Runtime.Capture
}
