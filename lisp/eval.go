package lisp

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/golang/glog"
)

// whitespace is the set of characters matched by \s in the patterns below.
const whitespace = " \t\n\f\r"

const numberPattern = `-?(?:0|[1-9][0-9]*)(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?`

var (
	numberPrefix  = regexp.MustCompile(`^[` + whitespace + `]*(` + numberPattern + `)`)
	numberLiteral = regexp.MustCompile(`^` + numberPattern + `$`)
	boolPrefix    = regexp.MustCompile(`^[` + whitespace + `]*(true|false|#t|#f)`)
	symbolPrefix  = regexp.MustCompile(`^[` + whitespace + `]*([^` + whitespace + `()]+)`)
)

// errNoMatch is returned by a rule when the text does not begin with the
// form the rule recognizes.  It never escapes Eval.
var errNoMatch = errors.New("no match")

// rule evaluates a form at the head of text and returns its value along with
// the text that follows the form.
type rule func(text string, env Env) (Value, string, error)

// rules are attempted in order.  The number rule must precede the symbol
// rule, and the special forms must precede application.
var rules []rule

func init() {
	rules = []rule{
		evalNumber,
		evalBool,
		evalIf,
		evalDefine,
		evalQuote,
		evalSymbol,
		evalLambda,
		evalApplication,
	}
}

// Eval evaluates the form at the head of text in env.  Eval returns the value
// of the form and the text following it, with leading whitespace removed.
func Eval(text string, env Env) (Value, string, error) {
	for _, r := range rules {
		v, rest, err := r(text, env)
		if err == errNoMatch {
			continue
		}
		if err != nil {
			return Value{}, "", err
		}
		return v, rest, nil
	}
	if peek(text) == 0 {
		return Value{}, "", syntaxErrorf("unexpected end of input")
	}
	return Value{}, "", syntaxErrorf("unexpected %q", trimSpace(text)[:1])
}

// EvalProgram evaluates every form in text in sequence.  The result is the
// value of the last form that did not evaluate to Unit, or Unit if there was
// no such form.  If evaluation fails the returned *Error carries text as its
// Source.
func EvalProgram(text string, env Env) (Value, error) {
	result := Unit()
	rest := text
	for n := 0; peek(rest) != 0; n++ {
		v, next, err := Eval(rest, env)
		if err != nil {
			glog.V(2).Infof("form %d: %v", n, err)
			return Value{}, withSource(err, text)
		}
		glog.V(2).Infof("form %d: %s", n, v)
		if v.Type != LUnit {
			result = v
		}
		rest = next
	}
	return result, nil
}

func withSource(err error, source string) error {
	var lerr *Error
	if !errors.As(err, &lerr) {
		return err
	}
	cp := *lerr
	cp.Source = source
	return &cp
}

func evalNumber(text string, env Env) (Value, string, error) {
	m := numberPrefix.FindStringSubmatch(text)
	if m == nil || !delimited(text[len(m[0]):], whitespace+"()") {
		return Value{}, text, errNoMatch
	}
	x, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Value{}, "", syntaxErrorf("bad number: %s", m[1])
	}
	return Number(x), trimSpace(text[len(m[0]):]), nil
}

func evalBool(text string, env Env) (Value, string, error) {
	m := boolPrefix.FindStringSubmatch(text)
	if m == nil || !delimited(text[len(m[0]):], whitespace+")") {
		return Value{}, text, errNoMatch
	}
	b := m[1] == "true" || m[1] == "#t"
	return Bool(b), trimSpace(text[len(m[0]):]), nil
}

func evalSymbol(text string, env Env) (Value, string, error) {
	m := symbolPrefix.FindStringSubmatch(text)
	if m == nil {
		return Value{}, text, errNoMatch
	}
	v, ok := env.Get(m[1])
	if !ok {
		return Value{}, "", Errorf(NameError, "unknown identifier: %s", m[1])
	}
	return v, trimSpace(text[len(m[0]):]), nil
}

// isLiteral returns true if tok would be read as a number or boolean rather
// than a symbol.
func isLiteral(tok string) bool {
	switch tok {
	case "true", "false", "#t", "#f":
		return true
	}
	return numberLiteral.MatchString(tok)
}

// delimited returns true if rest is empty or begins with one of delims.
func delimited(rest string, delims string) bool {
	if rest == "" {
		return true
	}
	return strings.IndexByte(delims, rest[0]) >= 0
}

func trimSpace(text string) string {
	return strings.TrimLeft(text, whitespace)
}

// peek returns the first non-whitespace byte of text, or 0 if there is none.
func peek(text string) byte {
	text = trimSpace(text)
	if text == "" {
		return 0
	}
	return text[0]
}

// keyword matches the opening of the special form name, an open paren
// followed by name and a delimiter, and returns the text after name.
func keyword(text string, name string) (string, bool) {
	text = trimSpace(text)
	if !strings.HasPrefix(text, "(") {
		return text, false
	}
	text = trimSpace(text[1:])
	if !strings.HasPrefix(text, name) {
		return text, false
	}
	rest := text[len(name):]
	if rest != "" && strings.IndexByte(whitespace+")", rest[0]) < 0 {
		return text, false
	}
	return rest, true
}

// closeForm consumes the closing paren of a form whose operands have all been
// read.
func closeForm(text string) (string, error) {
	switch peek(text) {
	case 0:
		return "", syntaxErrorf(`expected ")"`)
	case ')':
		return trimSpace(trimSpace(text)[1:]), nil
	default:
		return "", syntaxErrorf("too many operands in form")
	}
}

// requireOperand returns an error if text does not begin with another operand
// of the enclosing form.
func requireOperand(text string) error {
	switch peek(text) {
	case 0:
		return syntaxErrorf(`expected ")"`)
	case ')':
		return syntaxErrorf("too few operands in form")
	default:
		return nil
	}
}
