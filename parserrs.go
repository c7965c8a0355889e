package infix

import (
	"errors"
	"strconv"
)

// Error categories. Every error returned by Build or Eval unwraps to exactly
// one of these, so callers can use errors.Is to classify failures.
var (
	// ErrLex is the category of errors scanning the input text.
	ErrLex = errors.New("lexical error")
	// ErrSyntax is the category of malformed token sequences.
	ErrSyntax = errors.New("syntax error")
	// ErrArity is the category of function calls with the wrong number of
	// arguments.
	ErrArity = errors.New("arity error")
	// ErrTree is the category of internal tree consistency failures. Seeing
	// one indicates a bug in this package rather than bad input.
	ErrTree = errors.New("tree consistency error")
	// ErrUnbound is the category of references to variables without values.
	ErrUnbound = errors.New("unbound variable")
	// ErrDomain is the category of arguments outside an operation's domain.
	ErrDomain = errors.New("domain error")
)

// LexError indicates text that cannot be tokenized. It implements InputError.
type LexError struct {
	// Col is the position of the offending text.
	Col int
	// Text is the offending text, or empty for blank input.
	Text string
	// Kind describes what went wrong: "blank", "symbol", or "" for an
	// unrecognized character span.
	Kind string
}

func (err *LexError) Error() string {
	switch err.Kind {
	case "blank":
		return "expression is blank"
	case "symbol":
		return errpos(err.Col, "undefined symbol "+strconv.Quote(err.Text))
	default:
		return errpos(err.Col, "invalid token "+strconv.Quote(err.Text))
	}
}

func (err *LexError) Pos() int {
	return err.Col
}

func (err *LexError) Unwrap() error {
	return ErrLex
}

// OperatorError indicates an operator in a position where it cannot appear.
// It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the operator's label.
	Operator string
	// Fixity is the operator's position class.
	Fixity Fixity
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, err.Fixity.String()+" operator "+strconv.Quote(err.Operator)+" does not follow an operand")
}

func (err *OperatorError) Pos() int {
	return err.Col
}

func (err *OperatorError) Unwrap() error {
	return ErrSyntax
}

// BracketError is an error indicating unbalanced brackets in the input, or a
// function name without its argument list. It implements InputError.
type BracketError struct {
	// Col is the position of the unmatched bracket or function.
	Col int
	// Close is whether the unmatched bracket is a closing one.
	Close bool
	// Func is the function missing its open bracket, if any.
	Func string
}

func (err *BracketError) Error() string {
	switch {
	case err.Func != "":
		return errpos(err.Col, "function "+strconv.Quote(err.Func)+" without open bracket")
	case err.Close:
		return errpos(err.Col, "close bracket with no open bracket")
	default:
		return errpos(err.Col, "open bracket with no close bracket")
	}
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Unwrap() error {
	return ErrSyntax
}

// SeparatorError is an error indicating an illegal use of a comma. It
// implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
	// Empty is whether the separator ends an empty function argument, as
	// opposed to appearing outside any argument list.
	Empty bool
}

func (err *SeparatorError) Error() string {
	if err.Empty {
		return errpos(err.Col, "empty argument before "+strconv.Quote(err.Sep))
	}
	return errpos(err.Col, "invalid occurrence of separator "+strconv.Quote(err.Sep))
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

func (err *SeparatorError) Unwrap() error {
	return ErrSyntax
}

// EmptyExpressionError is an error indicating an empty subexpression, such as
// "()" or the right side of "1+". It implements InputError.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression, or empty at the end of
	// the input.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func (err *EmptyExpressionError) Unwrap() error {
	return ErrSyntax
}

// CallError is an error indicating a function call with the wrong number of
// arguments. It implements InputError.
type CallError struct {
	// Col is the position of the closing bracket of the call.
	Col int
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments supplied.
	Len int
	// Want is the number of arguments the function takes.
	Want int
}

func (err *CallError) Error() string {
	return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments (want "+strconv.Itoa(err.Want)+")")
}

func (err *CallError) Pos() int {
	return err.Col
}

func (err *CallError) Unwrap() error {
	return ErrArity
}

// TreeError indicates that a token could not be placed in the expression
// tree, or that a tree node has the wrong number of children.
type TreeError struct {
	// Label is the label of the token that could not be placed.
	Label string
	// Msg describes the inconsistency.
	Msg string
}

func (err *TreeError) Error() string {
	return "inconsistent tree at " + strconv.Quote(err.Label) + ": " + err.Msg
}

func (err *TreeError) Unwrap() error {
	return ErrTree
}

// NameError is an error from a lookup for a variable that is missing from
// both the supplied bindings and the constants.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

func (err *NameError) Unwrap() error {
	return ErrUnbound
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input text implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*CallError)(nil)
)
