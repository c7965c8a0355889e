package infix

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
)

// Operation computes the value of an operator or function from its
// arguments. Arguments are evaluated lazily: an operation that never asks for
// an argument never evaluates it.
type Operation[T any] interface {
	// Evaluate computes the result. args has exactly as many elements as the
	// operator has operands or the function call has arguments.
	Evaluate(args Params[T]) (T, error)
}

// OperationFunc adapts a function to an Operation. It is the natural form for
// variadic or context-sensitive operations.
type OperationFunc[T any] func(args Params[T]) (T, error)

// Evaluate calls f(args).
func (f OperationFunc[T]) Evaluate(args Params[T]) (T, error) {
	return f(args)
}

type monadic[T any] struct {
	f func(T) T
}

func (m monadic[T]) Evaluate(args Params[T]) (r T, err error) {
	x, err := args.Result(0)
	if err != nil {
		return r, err
	}
	defer recoverDomain(&err)
	return m.f(x), nil
}

// Monadic wraps a function of one value into an Operation. If f is called on
// an argument outside its domain, it should panic with a *DomainError or an
// error that unwraps to big.ErrNaN; the panic becomes the evaluation error.
func Monadic[T any](f func(x T) T) Operation[T] {
	return monadic[T]{f}
}

type dyadic[T any] struct {
	f func(T, T) T
}

func (d dyadic[T]) Evaluate(args Params[T]) (r T, err error) {
	x, err := args.Result(0)
	if err != nil {
		return r, err
	}
	y, err := args.Result(1)
	if err != nil {
		return r, err
	}
	defer recoverDomain(&err)
	return d.f(x, y), nil
}

// Dyadic wraps a function of two values into an Operation. Domain errors are
// handled as for Monadic.
func Dyadic[T any](f func(x, y T) T) Operation[T] {
	return dyadic[T]{f}
}

type polyadic[T any] struct {
	f func([]T) T
}

func (p polyadic[T]) Evaluate(args Params[T]) (r T, err error) {
	xs, err := args.Results()
	if err != nil {
		return r, err
	}
	defer recoverDomain(&err)
	return p.f(xs), nil
}

// Polyadic wraps a function of any number of values into an Operation. Every
// argument is evaluated before f is called. Domain errors are handled as for
// Monadic.
func Polyadic[T any](f func(xs []T) T) Operation[T] {
	return polyadic[T]{f}
}

type niladic[T any] struct {
	f func() T
}

func (n niladic[T]) Evaluate(args Params[T]) (r T, err error) {
	defer recoverDomain(&err)
	return n.f(), nil
}

// Niladic wraps a function of no values, generally one which computes a
// constant or a random number, into an Operation.
func Niladic[T any](f func() T) Operation[T] {
	return niladic[T]{f}
}

// recoverDomain converts a domain error panic into an error. Any other panic
// continues.
func recoverDomain(err *error) {
	r := recover()
	if r == nil {
		return
	}
	e, ok := r.(error)
	if !ok {
		panic(r)
	}
	var de *DomainError
	if errors.As(e, &de) {
		*err = de
		return
	}
	var nan big.ErrNaN
	if errors.As(e, &nan) {
		*err = &DomainError{Msg: nan.Error()}
		return
	}
	panic(r)
}

// DomainError is an error returned when an operation is called on arguments
// outside its domain. Numeric domains raise it; the engine only passes it
// through.
type DomainError struct {
	// X is the out-of-domain argument, if known.
	X any
	// Arg is the 1-based index of the argument, if known.
	Arg int
	// Func is a name identifying the operation.
	Func string
	// Msg is an optional description replacing the default message.
	Msg string
}

func (err *DomainError) Error() string {
	var r string
	switch {
	case err.Msg != "":
		r = err.Msg
	case err.X != nil:
		r = fmt.Sprint(err.X) + " outside domain"
	default:
		r = "argument outside domain"
	}
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

func (err *DomainError) Unwrap() error {
	return ErrDomain
}
