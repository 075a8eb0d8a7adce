/*
Package parser locates forms in source text without evaluating them.

	form  := <token> | '(' <form>* ')'
	token := /[^[:space:]()]+/

The evaluator never builds a syntax tree.  It uses SkipForm to step over the
branches of a conditional that are not taken and to capture the source of
quoted data and lambda bodies.
*/
package parser

import (
	"strings"

	parsec "github.com/prataprc/goparsec"
)

// wsPattern matches the same whitespace as \s in the token pattern.
const wsPattern = `^[ \t\n\f\r]+`

var formParser = newParsecParser()

func newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	token := parsec.Token(`^[^\s()]+`, "TOKEN")
	var form parsec.Parser // forward declaration allows for recursive parsing
	group := parsec.And(nil, openP, parsec.Kleene(nil, &form), closeP)
	form = parsec.OrdChoice(nil, token, group)
	return form
}

// SkipForm scans the form at the head of text.  It returns the source of the
// form, with surrounding whitespace removed, and the text following the form.
// SkipForm returns false if text does not begin with a complete form.
func SkipForm(text string) (form string, rest string, ok bool) {
	s := parsec.NewScanner([]byte(text)).SetWSPattern(wsPattern)
	node, s := formParser(s)
	if node == nil {
		return "", text, false
	}
	n := s.GetCursor()
	return strings.TrimSpace(text[:n]), text[n:], true
}

// Incomplete returns true if text contains an open parenthesis that is not
// closed.  Text with unmatched closing parentheses is complete, evaluating it
// reports the error.
func Incomplete(text string) bool {
	depth := 0
	for _, c := range text {
		switch c {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		}
	}
	return depth > 0
}
