package lisp

import "github.com/luthersystems/jisp/parser"

// evalIf evaluates (if test consequent [alternate]).  The branch that is not
// taken is skipped without being evaluated.
func evalIf(text string, env Env) (Value, string, error) {
	rest, ok := keyword(text, "if")
	if !ok {
		return Value{}, text, errNoMatch
	}
	if err := requireOperand(rest); err != nil {
		return Value{}, "", err
	}
	test, rest, err := Eval(rest, env)
	if err != nil {
		return Value{}, "", err
	}
	if err := requireOperand(rest); err != nil {
		return Value{}, "", err
	}

	if test.IsFalse() {
		_, rest, ok = parser.SkipForm(rest)
		if !ok {
			return Value{}, "", syntaxErrorf(`expected ")"`)
		}
		v := Unit()
		if peek(rest) != ')' && peek(rest) != 0 {
			v, rest, err = Eval(rest, env)
			if err != nil {
				return Value{}, "", err
			}
		}
		rest, err = closeForm(rest)
		if err != nil {
			return Value{}, "", err
		}
		return v, rest, nil
	}

	v, rest, err := Eval(rest, env)
	if err != nil {
		return Value{}, "", err
	}
	if peek(rest) != ')' && peek(rest) != 0 {
		_, rest, ok = parser.SkipForm(rest)
		if !ok {
			return Value{}, "", syntaxErrorf(`expected ")"`)
		}
	}
	rest, err = closeForm(rest)
	if err != nil {
		return Value{}, "", err
	}
	return v, rest, nil
}

// evalDefine evaluates (define sym expr), binding sym in the global frame.
// The binding is made only once the form is known to be well formed.
func evalDefine(text string, env Env) (Value, string, error) {
	rest, ok := keyword(text, "define")
	if !ok {
		return Value{}, text, errNoMatch
	}
	if err := requireOperand(rest); err != nil {
		return Value{}, "", err
	}
	target, rest, ok := parser.SkipForm(rest)
	if !ok {
		return Value{}, "", syntaxErrorf(`expected ")"`)
	}
	if target[0] == '(' || isLiteral(target) {
		return Value{}, "", typeErrorf("define target is not a symbol: %s", target)
	}
	if err := requireOperand(rest); err != nil {
		return Value{}, "", err
	}
	v, rest, err := Eval(rest, env)
	if err != nil {
		return Value{}, "", err
	}
	rest, err = closeForm(rest)
	if err != nil {
		return Value{}, "", err
	}
	env.Define(target, v)
	return Unit(), rest, nil
}

// evalQuote evaluates (quote datum) to the source text of datum.
func evalQuote(text string, env Env) (Value, string, error) {
	rest, ok := keyword(text, "quote")
	if !ok {
		return Value{}, text, errNoMatch
	}
	if err := requireOperand(rest); err != nil {
		return Value{}, "", err
	}
	datum, rest, ok := parser.SkipForm(rest)
	if !ok {
		return Value{}, "", syntaxErrorf(`expected ")"`)
	}
	rest, err := closeForm(rest)
	if err != nil {
		return Value{}, "", err
	}
	return Datum(datum), rest, nil
}
