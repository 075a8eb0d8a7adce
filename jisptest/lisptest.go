// Package jisptest runs sequences of jisp programs against fresh
// environments and compares their printed results.
package jisptest

import (
	"testing"

	"github.com/luthersystems/jisp/lisp"
	"github.com/luthersystems/jisp/lisp/lisplib"
)

// TestSequence is a sequence of programs which are evaluated sequentially by
// a single lisp.Env.
type TestSequence []struct {
	Expr   string // a jisp program
	Result string // the printed result, or the error message
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// Runner is a test runner.
type Runner struct {
	// Configs are applied to each new test environment after the primitive
	// library is loaded.
	Configs []lisp.Config
}

// NewEnv returns an environment for a single TestSequence.
func (r *Runner) NewEnv() (lisp.Env, error) {
	return lisplib.NewEnv(r.Configs...)
}

// RunTestSuite runs each TestSequence in tests on isolated environments.
func (r *Runner) RunTestSuite(t *testing.T, tests TestSuite) {
	t.Helper()
	for i, test := range tests {
		env, err := r.NewEnv()
		if err != nil {
			t.Fatalf("test %d %q: %v", i, test.Name, err)
		}
		for j, expr := range test.TestSequence {
			var result string
			v, err := lisp.EvalProgram(expr.Expr, env)
			if err != nil {
				result = err.Error()
			} else {
				result = v.String()
			}
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
		}
	}
}

// RunTestSuite runs tests with the default Runner.
func RunTestSuite(t *testing.T, tests TestSuite) {
	t.Helper()
	r := &Runner{}
	r.RunTestSuite(t, tests)
}
