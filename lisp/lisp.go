package lisp

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueType is the type of a Value
type ValueType uint

// Possible ValueType values
const (
	LInvalid ValueType = iota
	LNumber
	LBool
	LSequence
	LClosure
	LPrimitive
	LUnit
	LDatum
)

var valueTypeStrings = []string{
	LInvalid:   "INVALID",
	LNumber:    "number",
	LBool:      "boolean",
	LSequence:  "sequence",
	LClosure:   "closure",
	LPrimitive: "primitive",
	LUnit:      "unit",
	LDatum:     "datum",
}

func (t ValueType) String() string {
	if int(t) >= len(valueTypeStrings) {
		return valueTypeStrings[LInvalid]
	}
	return valueTypeStrings[t]
}

// PrimitiveFunc is a native function bound in the global frame.  The
// environment is the caller's environment at the point of application.
type PrimitiveFunc func(env Env, args []Value) (Value, error)

// Primitive is a named native callable.
type Primitive struct {
	Name string
	Fn   PrimitiveFunc
}

// Closure is a callable value created by a lambda literal.  Body holds the
// unevaluated source text of the lambda body.  Env is the captured
// environment and may be reassigned after the closure is created.
type Closure struct {
	Params []string
	Body   string
	Env    Env
}

// Value is a runtime value.  The Type field determines which of the
// remaining fields are meaningful.
type Value struct {
	Type  ValueType
	Num   float64
	Bool  bool
	Text  string
	Cells []Value

	Closure   *Closure
	Primitive *Primitive
}

// Number returns a Value representing the number x.
func Number(x float64) Value {
	return Value{Type: LNumber, Num: x}
}

// Bool returns a Value representing the boolean b.
func Bool(b bool) Value {
	return Value{Type: LBool, Bool: b}
}

// Sequence returns a Value holding the given cells.  A nil or empty argument
// list produces the empty sequence.
func Sequence(cells ...Value) Value {
	if cells == nil {
		cells = []Value{}
	}
	return Value{Type: LSequence, Cells: cells}
}

// Unit returns the Value produced by forms that have no meaningful result,
// such as define.
func Unit() Value {
	return Value{Type: LUnit}
}

// Datum returns a Value holding quoted source text.
func Datum(text string) Value {
	return Value{Type: LDatum, Text: text}
}

// Prim returns a Value wrapping a native function under the given name.
func Prim(name string, fn PrimitiveFunc) Value {
	return Value{Type: LPrimitive, Primitive: &Primitive{Name: name, Fn: fn}}
}

// Lambda returns a closure value with the given formal parameters and body
// source.  The captured environment is initially empty.
func Lambda(params []string, body string) Value {
	return Value{Type: LClosure, Closure: &Closure{Params: params, Body: body}}
}

// IsFalse returns true if v is Boolean(false), the only value if treats as
// false.
func (v Value) IsFalse() bool {
	return v.Type == LBool && !v.Bool
}

// IsCallable returns true if v may appear in operator position.
func (v Value) IsCallable() bool {
	return v.Type == LClosure || v.Type == LPrimitive
}

// Equal reports whether v and other are the same value.  Closures and
// primitives compare by identity, everything else structurally.
func (v Value) Equal(other Value) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case LNumber:
		return v.Num == other.Num
	case LBool:
		return v.Bool == other.Bool
	case LDatum:
		return v.Text == other.Text
	case LUnit:
		return true
	case LSequence:
		if len(v.Cells) != len(other.Cells) {
			return false
		}
		for i := range v.Cells {
			if !v.Cells[i].Equal(other.Cells[i]) {
				return false
			}
		}
		return true
	case LClosure:
		return v.Closure == other.Closure
	case LPrimitive:
		return v.Primitive == other.Primitive
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.Type {
	case LNumber:
		return formatNumber(v.Num)
	case LBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case LSequence:
		return exprString(v.Cells, "(", ")")
	case LDatum:
		return v.Text
	case LUnit:
		return ""
	case LClosure:
		return fmt.Sprintf("(lambda (%s) %s)", strings.Join(v.Closure.Params, " "), v.Closure.Body)
	case LPrimitive:
		return fmt.Sprintf("<builtin-function ``%s''>", v.Primitive.Name)
	default:
		return fmt.Sprintf("%#v", v)
	}
}

// formatNumber renders integral values without a fractional part and switches
// to exponent notation only for very large or very small magnitudes.
func formatNumber(x float64) string {
	abs := math.Abs(x)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func exprString(cells []Value, left string, right string) string {
	if len(cells) == 0 {
		return left + right
	}
	var buf bytes.Buffer
	buf.WriteString(left)
	for i, c := range cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(c.String())
	}
	buf.WriteString(right)
	return buf.String()
}
