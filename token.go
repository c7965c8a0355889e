package infix

import (
	"math"
	"strconv"
)

// Kind is the kind of a token.
type Kind int8

const (
	KindNone Kind = iota
	// KindOperand is a literal value.
	KindOperand
	// KindVariable is a name resolved during evaluation.
	KindVariable
	// KindOperator is a prefix, postfix, or infix operator.
	KindOperator
	// KindFunction is a named function call.
	KindFunction
	// KindSeparator is a bracket or comma. Separators never reach a tree.
	KindSeparator
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindOperand:
		return "Operand"
	case KindVariable:
		return "Variable"
	case KindOperator:
		return "Operator"
	case KindFunction:
		return "Function"
	case KindSeparator:
		return "Separator"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Fixity is the position of an operator relative to its operands.
type Fixity int8

const (
	// AnyFixity matches every class in dictionary lookups and removals.
	AnyFixity Fixity = iota
	// Prefix operators precede their single operand, e.g. -x or sin x.
	Prefix
	// Postfix operators follow their single operand, e.g. x!.
	Postfix
	// Infix operators sit between two operands and group left to right.
	Infix
	// InfixRTL operators sit between two operands and group right to left.
	InfixRTL
)

func (f Fixity) String() string {
	switch f {
	case AnyFixity:
		return "any"
	case Prefix:
		return "prefix"
	case Postfix:
		return "postfix"
	case Infix:
		return "infix"
	case InfixRTL:
		return "infix-rtl"
	default:
		return "Fixity(" + strconv.Itoa(int(f)) + ")"
	}
}

// binary returns whether the fixity takes two operands.
func (f Fixity) binary() bool {
	return f == Infix || f == InfixRTL
}

// Separator is a structural token.
type Separator int8

const (
	NoSeparator Separator = iota
	OpenBracket
	CloseBracket
	Comma
)

func (s Separator) String() string {
	switch s {
	case OpenBracket:
		return "("
	case CloseBracket:
		return ")"
	case Comma:
		return ","
	default:
		return ""
	}
}

// Variadic is the arity of a function that accepts any number of arguments.
const Variadic = -1

// Operator is an operator definition. Operators are immutable once created.
type Operator[T any] struct {
	// Label is the text of the operator in expressions.
	Label string
	// Fixity is the operator's position class.
	Fixity Fixity
	// Prec is the precedence. Higher binds tighter. Always at least 1.
	Prec int
	// Op computes the operator's value.
	Op Operation[T]
}

// NewOperator creates an operator. Panics if prec is less than 1 or fixity is
// not a concrete position class.
func NewOperator[T any](label string, fixity Fixity, prec int, op Operation[T]) *Operator[T] {
	if prec < 1 {
		panic("infix: invalid precedence " + strconv.Itoa(prec) + " for operator " + strconv.Quote(label))
	}
	if fixity < Prefix || fixity > InfixRTL {
		panic("infix: invalid fixity " + fixity.String() + " for operator " + strconv.Quote(label))
	}
	return &Operator[T]{Label: label, Fixity: fixity, Prec: prec, Op: op}
}

// slots is the number of operands the operator takes.
func (o *Operator[T]) slots() int {
	if o.Fixity.binary() {
		return 2
	}
	return 1
}

// before reports whether o, already on the operator stack, must be emitted
// before next is pushed.
func (o *Operator[T]) before(next *Operator[T]) bool {
	if o.Prec != next.Prec {
		return o.Prec > next.Prec
	}
	return next.Fixity == Infix || next.Fixity == Postfix
}

func (o *Operator[T]) String() string {
	return o.Fixity.String() + " " + strconv.Quote(o.Label) + " prec " + precstr(o.Prec)
}

func precstr(p int) string {
	if p == math.MaxInt {
		return "max"
	}
	return strconv.Itoa(p)
}

// Function is a function definition. Functions are immutable once created.
type Function[T any] struct {
	// Label is the name of the function in expressions.
	Label string
	// Arity is the number of arguments, or Variadic.
	Arity int
	// Op computes the function's value.
	Op Operation[T]
}

// NewFunction creates a function. Panics if arity is less than Variadic.
func NewFunction[T any](label string, arity int, op Operation[T]) *Function[T] {
	if arity < Variadic {
		panic("infix: invalid arity " + strconv.Itoa(arity) + " for function " + strconv.Quote(label))
	}
	return &Function[T]{Label: label, Arity: arity, Op: op}
}

// bind returns a copy of a variadic function fixed to n arguments.
func (f *Function[T]) bind(n int) *Function[T] {
	return &Function[T]{Label: f.Label, Arity: n, Op: f.Op}
}

func (f *Function[T]) String() string {
	if f.Arity == Variadic {
		return strconv.Quote(f.Label) + "/..."
	}
	return strconv.Quote(f.Label) + "/" + strconv.Itoa(f.Arity)
}

// Token is a lexical unit of an expression. Exactly the fields matching Kind
// are meaningful.
type Token[T any] struct {
	Kind Kind
	// Label is the display text of the token.
	Label string
	// Pos is the 1-based rune column where the token starts. An implicit
	// multiplication has the position of the token following it.
	Pos int

	// Value is the operand's value.
	Value T
	// Op is the operator definition.
	Op *Operator[T]
	// Fn is the function definition. After parsing, a variadic function's
	// Fn has its resolved arity.
	Fn *Function[T]
	// Sep is the separator.
	Sep Separator
}

func (t Token[T]) String() string {
	return t.Kind.String() + ":" + t.Label + "@" + strconv.Itoa(t.Pos)
}

// endsOperand returns whether t can be the last token of an operand, so that
// a postfix or infix operator may follow it.
func (t *Token[T]) endsOperand() bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case KindOperand, KindVariable:
		return true
	case KindSeparator:
		return t.Sep == CloseBracket
	case KindOperator:
		return t.Op.Fixity == Postfix
	default:
		return false
	}
}

// is reports whether t is the separator s.
func (t *Token[T]) is(s Separator) bool {
	return t != nil && t.Kind == KindSeparator && t.Sep == s
}

func operandToken[T any](v T, label string, pos int) Token[T] {
	return Token[T]{Kind: KindOperand, Label: label, Pos: pos, Value: v}
}

func variableToken[T any](name string, pos int) Token[T] {
	return Token[T]{Kind: KindVariable, Label: name, Pos: pos}
}

func operatorToken[T any](op *Operator[T], pos int) Token[T] {
	return Token[T]{Kind: KindOperator, Label: op.Label, Pos: pos, Op: op}
}

func functionToken[T any](fn *Function[T], pos int) Token[T] {
	return Token[T]{Kind: KindFunction, Label: fn.Label, Pos: pos, Fn: fn}
}

func separatorToken[T any](s Separator, pos int) Token[T] {
	return Token[T]{Kind: KindSeparator, Label: s.String(), Pos: pos, Sep: s}
}
