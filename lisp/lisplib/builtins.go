package lisplib

import (
	"github.com/luthersystems/jisp/lisp"
)

type builtin struct {
	name string
	fn   lisp.PrimitiveFunc
}

var builtins = []builtin{
	{"+", builtinAdd},
	{"-", builtinSub},
	{"*", builtinMul},
	{"/", builtinDiv},
	{"=", compare("=", func(a, b float64) bool { return a == b })},
	{"<", compare("<", func(a, b float64) bool { return a < b })},
	{"<=", compare("<=", func(a, b float64) bool { return a <= b })},
	{">", compare(">", func(a, b float64) bool { return a > b })},
	{">=", compare(">=", func(a, b float64) bool { return a >= b })},
	{"car", builtinFirst("car")},
	{"first", builtinFirst("first")},
	{"cdr", builtinRest("cdr")},
	{"rest", builtinRest("rest")},
	{"cons", builtinCons},
	{"list", builtinList},
	{"length", builtinLength},
	{"null?", builtinNullP},
	{"not", builtinNot},
	{"equal?", builtinEqual},
	{"map", builtinMap},
	{"range", builtinRange},
}

func builtinAdd(env lisp.Env, args []lisp.Value) (lisp.Value, error) {
	xs, err := numbers("+", args)
	if err != nil {
		return lisp.Value{}, err
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return lisp.Number(sum), nil
}

func builtinMul(env lisp.Env, args []lisp.Value) (lisp.Value, error) {
	xs, err := numbers("*", args)
	if err != nil {
		return lisp.Value{}, err
	}
	prod := 1.0
	for _, x := range xs {
		prod *= x
	}
	return lisp.Number(prod), nil
}

func builtinSub(env lisp.Env, args []lisp.Value) (lisp.Value, error) {
	xs, err := numbers("-", args)
	if err != nil {
		return lisp.Value{}, err
	}
	switch len(xs) {
	case 0:
		return lisp.Number(0), nil
	case 1:
		return lisp.Number(-xs[0]), nil
	}
	diff := xs[0]
	for _, x := range xs[1:] {
		diff -= x
	}
	return lisp.Number(diff), nil
}

// builtinDiv returns 0 when called without arguments.  With one argument it
// returns the argument itself.
func builtinDiv(env lisp.Env, args []lisp.Value) (lisp.Value, error) {
	xs, err := numbers("/", args)
	if err != nil {
		return lisp.Value{}, err
	}
	if len(xs) == 0 {
		return lisp.Number(0), nil
	}
	quo := xs[0]
	for _, x := range xs[1:] {
		quo /= x
	}
	return lisp.Number(quo), nil
}

func compare(name string, fn func(a, b float64) bool) lisp.PrimitiveFunc {
	return func(env lisp.Env, args []lisp.Value) (lisp.Value, error) {
		if err := checkArity(name, args, 2); err != nil {
			return lisp.Value{}, err
		}
		xs, err := numbers(name, args)
		if err != nil {
			return lisp.Value{}, err
		}
		return lisp.Bool(fn(xs[0], xs[1])), nil
	}
}

func builtinFirst(name string) lisp.PrimitiveFunc {
	return func(env lisp.Env, args []lisp.Value) (lisp.Value, error) {
		cells, err := sequenceArg(name, args)
		if err != nil {
			return lisp.Value{}, err
		}
		if len(cells) == 0 {
			return lisp.Value{}, lisp.Errorf(lisp.TypeError, "%s: sequence is empty", name)
		}
		return cells[0], nil
	}
}

func builtinRest(name string) lisp.PrimitiveFunc {
	return func(env lisp.Env, args []lisp.Value) (lisp.Value, error) {
		cells, err := sequenceArg(name, args)
		if err != nil {
			return lisp.Value{}, err
		}
		if len(cells) == 0 {
			return lisp.Sequence(), nil
		}
		return lisp.Sequence(cells[1:]...), nil
	}
}

func builtinCons(env lisp.Env, args []lisp.Value) (lisp.Value, error) {
	if err := checkArity("cons", args, 2); err != nil {
		return lisp.Value{}, err
	}
	tail := args[1]
	if tail.Type != lisp.LSequence {
		return lisp.Value{}, lisp.Errorf(lisp.TypeError, "cons: second argument is not a sequence: %v", tail.Type)
	}
	cells := make([]lisp.Value, 0, len(tail.Cells)+1)
	cells = append(cells, args[0])
	cells = append(cells, tail.Cells...)
	return lisp.Sequence(cells...), nil
}

func builtinList(env lisp.Env, args []lisp.Value) (lisp.Value, error) {
	cells := make([]lisp.Value, len(args))
	copy(cells, args)
	return lisp.Sequence(cells...), nil
}

func builtinLength(env lisp.Env, args []lisp.Value) (lisp.Value, error) {
	cells, err := sequenceArg("length", args)
	if err != nil {
		return lisp.Value{}, err
	}
	return lisp.Number(float64(len(cells))), nil
}

func builtinNullP(env lisp.Env, args []lisp.Value) (lisp.Value, error) {
	if err := checkArity("null?", args, 1); err != nil {
		return lisp.Value{}, err
	}
	return lisp.Bool(args[0].Type == lisp.LSequence && len(args[0].Cells) == 0), nil
}

func builtinNot(env lisp.Env, args []lisp.Value) (lisp.Value, error) {
	if err := checkArity("not", args, 1); err != nil {
		return lisp.Value{}, err
	}
	return lisp.Bool(args[0].IsFalse()), nil
}

func builtinEqual(env lisp.Env, args []lisp.Value) (lisp.Value, error) {
	if err := checkArity("equal?", args, 2); err != nil {
		return lisp.Value{}, err
	}
	return lisp.Bool(args[0].Equal(args[1])), nil
}

// builtinMap applies a function of one argument to each element of a
// sequence.  Closures are applied with the same rules as a call in source
// text.
func builtinMap(env lisp.Env, args []lisp.Value) (lisp.Value, error) {
	if err := checkArity("map", args, 2); err != nil {
		return lisp.Value{}, err
	}
	fn, lis := args[0], args[1]
	if !fn.IsCallable() {
		return lisp.Value{}, lisp.Errorf(lisp.TypeError, "map: first argument is not a function: %v", fn.Type)
	}
	if fn.Type == lisp.LClosure && len(fn.Closure.Params) != 1 {
		return lisp.Value{}, lisp.Errorf(lisp.ArityError, "map: function expects %d arguments (got 1)", len(fn.Closure.Params))
	}
	if lis.Type != lisp.LSequence {
		return lisp.Value{}, lisp.Errorf(lisp.TypeError, "map: second argument is not a sequence: %v", lis.Type)
	}
	cells := make([]lisp.Value, len(lis.Cells))
	for i, x := range lis.Cells {
		v, err := lisp.Apply(env, fn, []lisp.Value{x})
		if err != nil {
			return lisp.Value{}, err
		}
		cells[i] = v
	}
	return lisp.Sequence(cells...), nil
}

// builtinRange returns the numbers from start up to, but not including, stop.
func builtinRange(env lisp.Env, args []lisp.Value) (lisp.Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return lisp.Value{}, lisp.Errorf(lisp.ArityError, "range: expects 2 or 3 arguments (got %d)", len(args))
	}
	xs, err := numbers("range", args)
	if err != nil {
		return lisp.Value{}, err
	}
	start, stop, step := xs[0], xs[1], 1.0
	if len(xs) == 3 {
		step = xs[2]
	}
	if step == 0 {
		return lisp.Value{}, lisp.Errorf(lisp.TypeError, "range: step is zero")
	}
	cells := []lisp.Value{}
	for x := start; (step > 0 && x < stop) || (step < 0 && x > stop); x += step {
		cells = append(cells, lisp.Number(x))
	}
	return lisp.Sequence(cells...), nil
}

func checkArity(name string, args []lisp.Value, n int) error {
	if len(args) != n {
		return lisp.Errorf(lisp.ArityError, "%s: expects %d arguments (got %d)", name, n, len(args))
	}
	return nil
}

func numbers(name string, args []lisp.Value) ([]float64, error) {
	xs := make([]float64, len(args))
	for i, v := range args {
		if v.Type != lisp.LNumber {
			return nil, lisp.Errorf(lisp.TypeError, "%s: argument is not a number: %v", name, v.Type)
		}
		xs[i] = v.Num
	}
	return xs, nil
}

func sequenceArg(name string, args []lisp.Value) ([]lisp.Value, error) {
	if err := checkArity(name, args, 1); err != nil {
		return nil, err
	}
	if args[0].Type != lisp.LSequence {
		return nil, lisp.Errorf(lisp.TypeError, "%s: argument is not a sequence: %v", name, args[0].Type)
	}
	return args[0].Cells, nil
}
