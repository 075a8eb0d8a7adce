package lisp_test

import (
	"strconv"
	"testing"

	"github.com/luthersystems/jisp/lisp"
	"github.com/luthersystems/jisp/lisp/lisplib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnv(t *testing.T, configs ...lisp.Config) lisp.Env {
	t.Helper()
	env, err := lisplib.NewEnv(configs...)
	require.NoError(t, err)
	return env
}

func evalProgram(t *testing.T, env lisp.Env, source string) lisp.Value {
	t.Helper()
	v, err := lisp.EvalProgram(source, env)
	require.NoError(t, err, "source: %s", source)
	return v
}

func assertErrorKind(t *testing.T, kind lisp.ErrorKind, err error) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, lisp.IsKind(err, kind), "expected %v (got %v)", kind, err)
	}
}

func TestEvalNumber(t *testing.T) {
	env := newEnv(t)
	for _, text := range []string{
		"0", "-0", "42", "-7", "3.25", "-0.125", "1e3", "1E3", "2.5e-3",
		"-1.5e+2", "123456789.125", "0.1", "6.02214076e23",
	} {
		expect, err := strconv.ParseFloat(text, 64)
		require.NoError(t, err)
		v, rest, err := lisp.Eval("  "+text+"  ", env)
		if assert.NoError(t, err, "input: %s", text) {
			assert.Equal(t, lisp.LNumber, v.Type, "input: %s", text)
			assert.Equal(t, expect, v.Num, "input: %s", text)
			assert.Equal(t, "", rest, "input: %s", text)
		}
	}
}

func TestEvalRemainingText(t *testing.T) {
	env := newEnv(t)
	v, rest, err := lisp.Eval("(+ 1 2)\n (undefined)", env)
	require.NoError(t, err)
	assert.Equal(t, lisp.Number(3), v)
	assert.Equal(t, "(undefined)", rest)

	v, rest, err = lisp.Eval("12)", env)
	require.NoError(t, err)
	assert.Equal(t, lisp.Number(12), v)
	assert.Equal(t, ")", rest)
}

func TestEvalBool(t *testing.T) {
	env := newEnv(t)
	for text, expect := range map[string]bool{
		"true":   true,
		"#t":     true,
		"false":  false,
		"#f":     false,
		" #t\n":  true,
		"false ": false,
	} {
		v, _, err := lisp.Eval(text, env)
		if assert.NoError(t, err, "input: %q", text) {
			assert.Equal(t, lisp.Bool(expect), v, "input: %q", text)
		}
	}

	// booleans are only recognized as complete tokens
	env.Define("true-ish", lisp.Number(1))
	v, _, err := lisp.Eval("true-ish", env)
	require.NoError(t, err)
	assert.Equal(t, lisp.Number(1), v)
	v, _, err = lisp.Eval("(list #t)", env)
	require.NoError(t, err)
	assert.Equal(t, "(true)", v.String())
	v, _, err = lisp.Eval("(list #f)", env)
	require.NoError(t, err)
	assert.Equal(t, "(false)", v.String())

	// an open paren does not end a boolean
	_, _, err = lisp.Eval("#t(list)", env)
	assertErrorKind(t, lisp.NameError, err)
	assert.EqualError(t, err, "NameError: unknown identifier: #t")
	_, _, err = lisp.Eval("(list false(list))", env)
	assert.EqualError(t, err, "NameError: unknown identifier: false")

	// numbers may be followed directly by an open paren
	v, rest, err := lisp.Eval("1(list)", env)
	require.NoError(t, err)
	assert.Equal(t, lisp.Number(1), v)
	assert.Equal(t, "(list)", rest)
}

func TestEvalSymbol(t *testing.T) {
	env := newEnv(t)
	v, _, err := lisp.Eval("pi", env)
	require.NoError(t, err)
	assert.Equal(t, lisp.Number(lisplib.Pi), v)

	// a token that starts like a number but does not end like one is a symbol
	_, _, err = lisp.Eval("1+", env)
	assertErrorKind(t, lisp.NameError, err)
	assert.Equal(t, "NameError: unknown identifier: 1+", err.Error())

	_, _, err = lisp.Eval("no-such-thing", env)
	assertErrorKind(t, lisp.NameError, err)
	assert.Contains(t, err.Error(), "no-such-thing")
}

func TestEvalIf(t *testing.T) {
	env := newEnv(t)
	for _, test := range []struct {
		expr   string
		result string
	}{
		{"(if #t 1 2)", "1"},
		{"(if #f 1 2)", "2"},
		{"(if 0 1 2)", "1"},
		{"(if (list) 1 2)", "1"},
		{"(if (< 1 2) (+ 1 1) (undefined))", "2"},
		{"(if (> 1 2) (undefined) (* 3 3))", "9"},
		{"(if #t (if #f 1 2) 3)", "2"},
		{"(if #f (unclosed (nested form)) 4)", "4"},
		{"( if #f 1 )", ""},
		{"(if #f (list 1\f2) 3)", "3"},
		{"(if #t (list 1\f2)\f(undefined))", "(1 2)"},
	} {
		v, rest, err := lisp.Eval(test.expr, env)
		if assert.NoError(t, err, "expr: %s", test.expr) {
			assert.Equal(t, test.result, v.String(), "expr: %s", test.expr)
			assert.Equal(t, "", rest, "expr: %s", test.expr)
		}
	}
	v, _, err := lisp.Eval("(if #f 1)", env)
	require.NoError(t, err)
	assert.Equal(t, lisp.LUnit, v.Type)
}

func TestEvalIfShortCircuit(t *testing.T) {
	env := newEnv(t)
	evalProgram(t, env, "(if #f (define a 1) (define b 2))")
	_, ok := env.Get("a")
	assert.False(t, ok)
	_, ok = env.Get("b")
	assert.True(t, ok)

	evalProgram(t, env, "(if #t (define c 3) (define d 4))")
	_, ok = env.Get("c")
	assert.True(t, ok)
	_, ok = env.Get("d")
	assert.False(t, ok)
}

func TestEvalDefine(t *testing.T) {
	env := newEnv(t)
	v, rest, err := lisp.Eval("(define x (+ 1 2)) x", env)
	require.NoError(t, err)
	assert.Equal(t, lisp.LUnit, v.Type)
	assert.Equal(t, "x", rest)
	x, ok := env.Global()["x"]
	if assert.True(t, ok) {
		assert.Equal(t, lisp.Number(3), x)
	}

	// define shadows primitives globally
	assert.Equal(t, "2", evalProgram(t, env, "(define + -) (+ 5 3)").String())

	// define inside a call writes the global frame
	assert.Equal(t, "7", evalProgram(t, env, `
		(define setter (lambda (v) (define g v)))
		(setter 7)
		g`).String())
}

func TestEvalQuote(t *testing.T) {
	env := newEnv(t)
	for expr, datum := range map[string]string{
		"(quote a)":                 "a",
		"(quote (a b  (c)))":        "(a b  (c))",
		"(quote ())":                "()",
		"( quote\n(undefined 1) )":  "(undefined 1)",
		"(quote (define q 1))":      "(define q 1)",
		"(quote (if #t (nested)) )": "(if #t (nested))",
		"(quote (a\fb))":            "(a\fb)",
		"(quote\fc\f)":              "c",
	} {
		v, rest, err := lisp.Eval(expr, env)
		if assert.NoError(t, err, "expr: %s", expr) {
			assert.Equal(t, lisp.Datum(datum), v, "expr: %s", expr)
			assert.Equal(t, "", rest)
		}
	}
	_, ok := env.Get("q")
	assert.False(t, ok)
}

func TestEvalLambda(t *testing.T) {
	env := newEnv(t)
	v, _, err := lisp.Eval("(lambda (x y) (+ x y))", env)
	require.NoError(t, err)
	require.Equal(t, lisp.LClosure, v.Type)
	assert.Equal(t, []string{"x", "y"}, v.Closure.Params)
	assert.Equal(t, "(+ x y)", v.Closure.Body)
	assert.Equal(t, "(lambda (x y) (+ x y))", v.String())

	assert.Equal(t, "3", evalProgram(t, env, "((lambda (x y) (+ x y)) 1 2)").String())
	assert.Equal(t, "2", evalProgram(t, env, "((lambda () (+ 1 1)))").String())
	// parameters shadow captured bindings of the same name
	assert.Equal(t, "2", evalProgram(t, env, "(define k (lambda (x) (lambda (x) x))) ((k 1) 2)").String())
}

func TestEvalErrors(t *testing.T) {
	env := newEnv(t)
	for _, test := range []struct {
		expr string
		kind lisp.ErrorKind
		msg  string
	}{
		{"", lisp.SyntaxError, "unexpected end of input"},
		{")", lisp.SyntaxError, `unexpected ")"`},
		{"(+ 1 2", lisp.SyntaxError, `expected ")"`},
		{"()", lisp.SyntaxError, "missing operator in form"},
		{"(if)", lisp.SyntaxError, "too few operands in form"},
		{"(if #t)", lisp.SyntaxError, "too few operands in form"},
		{"(if #t 1 2 3)", lisp.SyntaxError, "too many operands in form"},
		{"(if #f 1 2 3)", lisp.SyntaxError, "too many operands in form"},
		{"(if #t 1", lisp.SyntaxError, `expected ")"`},
		{"(if #f (1 2", lisp.SyntaxError, `expected ")"`},
		{"(if undefined 1 2)", lisp.NameError, "unknown identifier: undefined"},
		{"(quote)", lisp.SyntaxError, "too few operands in form"},
		{"(quote a b)", lisp.SyntaxError, "too many operands in form"},
		{"(define)", lisp.SyntaxError, "too few operands in form"},
		{"(define x)", lisp.SyntaxError, "too few operands in form"},
		{"(define x 1 2)", lisp.SyntaxError, "too many operands in form"},
		{"(define (f x) x)", lisp.TypeError, "define target is not a symbol: (f x)"},
		{"(define 5 1)", lisp.TypeError, "define target is not a symbol: 5"},
		{"(lambda x x)", lisp.SyntaxError, "lambda parameter list expected"},
		{"(lambda (x x) x)", lisp.SyntaxError, "duplicate lambda parameter: x"},
		{"(lambda ((x)) x)", lisp.SyntaxError, "lambda parameter is not a symbol"},
		{"(lambda (x))", lisp.SyntaxError, "too few operands in form"},
		{"(lambda (x) x x)", lisp.SyntaxError, "too many operands in form"},
		{"(5 1)", lisp.TypeError, "5 is not a function"},
		{"((quote +) 1)", lisp.TypeError, "(quote +) is not a function"},
		{"(undefined 1)", lisp.NameError, "unknown identifier: undefined"},
		{"(+ 1 undefined)", lisp.NameError, "unknown identifier: undefined"},
		{"((lambda (a b) (+ a b)) 1)", lisp.ArityError, "expected 2 arguments (got 1)"},
		{"(+ 1 #t)", lisp.TypeError, "+: argument is not a number: boolean"},
	} {
		_, _, err := lisp.Eval(test.expr, env)
		if assert.Error(t, err, "expr: %s", test.expr) {
			assert.True(t, lisp.IsKind(err, test.kind), "expr: %s: %v", test.expr, err)
			assert.Equal(t, test.kind.String()+": "+test.msg, err.Error(), "expr: %s", test.expr)
		}
	}
}

func TestArityErrorDoesNotMutate(t *testing.T) {
	env := newEnv(t)
	before := len(env.Global())
	_, err := lisp.EvalProgram("((lambda (a b) (define c (+ a b))) 1)", env)
	assertErrorKind(t, lisp.ArityError, err)
	assert.Equal(t, before, len(env.Global()))
	_, ok := env.Get("c")
	assert.False(t, ok)
}

func TestEvalProgram(t *testing.T) {
	env := newEnv(t)
	v := evalProgram(t, env, "(+ 1 2)")
	assert.Equal(t, lisp.Number(3), v)

	v = evalProgram(t, env, "(define x 1)")
	assert.Equal(t, lisp.LUnit, v.Type)

	v = evalProgram(t, env, "5 (define y 2)")
	assert.Equal(t, lisp.Number(5), v)

	v = evalProgram(t, env, " \n\t ")
	assert.Equal(t, lisp.LUnit, v.Type)

	v = evalProgram(t, env, "1 2 (list x y)")
	assert.Equal(t, "(1 2)", v.String())
}

func TestEvalProgramFailure(t *testing.T) {
	env := newEnv(t)
	source := "(define z 1)\n(+ z unbound)\n(define w 2)"
	v, err := lisp.EvalProgram(source, env)
	assertErrorKind(t, lisp.NameError, err)
	assert.Equal(t, lisp.LInvalid, v.Type)
	lerr, ok := err.(*lisp.Error)
	if assert.True(t, ok) {
		assert.Equal(t, source, lerr.Source)
		assert.Equal(t, "unknown identifier: unbound", lerr.Msg)
	}
	_, ok = env.Get("w")
	assert.False(t, ok)

	_, err = lisp.EvalProgram("(+ 1 2) )", env)
	assertErrorKind(t, lisp.SyntaxError, err)
}

func TestBackPatchCapture(t *testing.T) {
	env := newEnv(t)
	evalProgram(t, env, `
		(define k (lambda (x) (lambda (y) x)))
		(define k1 (k 1))
		(define wrap (lambda (x) k1))`)
	assert.Equal(t, "1", evalProgram(t, env, "(k1 0)").String())
	// returning k1 from wrap re-binds its capture to wrap's call frame
	assert.Equal(t, "5", evalProgram(t, env, "(wrap 5) (k1 0)").String())

	// the caller's frames are visible beneath the closure's own
	v := evalProgram(t, env, `
		(define show (lambda () z))
		(define f (lambda (z) (show)))
		(f 3)`)
	assert.Equal(t, "3", v.String())
}

func TestLexicalCapture(t *testing.T) {
	env := newEnv(t, lisp.WithLexicalCapture())
	evalProgram(t, env, `
		(define k (lambda (x) (lambda (y) x)))
		(define k1 (k 1))
		(define wrap (lambda (x) k1))`)
	assert.Equal(t, "1", evalProgram(t, env, "(k1 0)").String())
	assert.Equal(t, "1", evalProgram(t, env, "(wrap 5) (k1 0)").String())

	_, err := lisp.EvalProgram(`
		(define show (lambda () z))
		(define f (lambda (z) (show)))
		(f 3)`, env)
	assertErrorKind(t, lisp.NameError, err)

	assert.Equal(t, "160", evalProgram(t, env, `
		(define twice (lambda (x) (* 2 x)))
		(define repeat (lambda (f) (lambda (x) (f (f x)))))
		((repeat (repeat twice)) 10)`).String())
}

func TestApply(t *testing.T) {
	env := newEnv(t)
	fn := evalProgram(t, env, "(lambda (a b) (- a b))")
	v, err := lisp.Apply(env, fn, []lisp.Value{lisp.Number(5), lisp.Number(3)})
	require.NoError(t, err)
	assert.Equal(t, lisp.Number(2), v)

	plus, ok := env.Get("+")
	require.True(t, ok)
	v, err = lisp.Apply(env, plus, []lisp.Value{lisp.Number(5), lisp.Number(3)})
	require.NoError(t, err)
	assert.Equal(t, lisp.Number(8), v)

	_, err = lisp.Apply(env, lisp.Number(1), nil)
	assertErrorKind(t, lisp.TypeError, err)
	_, err = lisp.Apply(env, fn, nil)
	assertErrorKind(t, lisp.ArityError, err)
}
