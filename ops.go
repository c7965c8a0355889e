package infix

import "math"

// Standard precedences. Prefix signs bind tighter than anything else, so -2^2
// is (-2)^2.
const (
	PrecAdditive       = 1
	PrecMultiplicative = 2
	PrecPower          = 3
	PrecPrefixFunc     = 4
	PrecFactorial      = 5
	PrecSign           = math.MaxInt
)

// The functions below create the standard operators and functions with their
// conventional labels, fixities, and precedences. A numeric domain supplies
// the operations.

func Positive[T any](op Operation[T]) *Operator[T] {
	return NewOperator("+", Prefix, PrecSign, op)
}

func Negative[T any](op Operation[T]) *Operator[T] {
	return NewOperator("-", Prefix, PrecSign, op)
}

func Add[T any](op Operation[T]) *Operator[T] {
	return NewOperator("+", Infix, PrecAdditive, op)
}

func Subtract[T any](op Operation[T]) *Operator[T] {
	return NewOperator("-", Infix, PrecAdditive, op)
}

func Multiply[T any](op Operation[T]) *Operator[T] {
	return NewOperator("*", Infix, PrecMultiplicative, op)
}

func Divide[T any](op Operation[T]) *Operator[T] {
	return NewOperator("/", Infix, PrecMultiplicative, op)
}

// Percent is the remainder operator %.
func Percent[T any](op Operation[T]) *Operator[T] {
	return NewOperator("%", Infix, PrecMultiplicative, op)
}

// Power is the right-associative exponentiation operator ^.
func Power[T any](op Operation[T]) *Operator[T] {
	return NewOperator("^", InfixRTL, PrecPower, op)
}

// Factorial is the postfix operator !.
func Factorial[T any](op Operation[T]) *Operator[T] {
	return NewOperator("!", Postfix, PrecFactorial, op)
}

// prefixFunc creates a named prefix operator such as sin, which may be
// written either as "sin x" or "sin(x)".
func prefixFunc[T any](label string, op Operation[T]) *Operator[T] {
	return NewOperator(label, Prefix, PrecPrefixFunc, op)
}

func Absolute[T any](op Operation[T]) *Operator[T]     { return prefixFunc("abs", op) }
func Sine[T any](op Operation[T]) *Operator[T]         { return prefixFunc("sin", op) }
func Cosine[T any](op Operation[T]) *Operator[T]       { return prefixFunc("cos", op) }
func Tangent[T any](op Operation[T]) *Operator[T]      { return prefixFunc("tan", op) }
func Arcsine[T any](op Operation[T]) *Operator[T]      { return prefixFunc("asin", op) }
func Arccosine[T any](op Operation[T]) *Operator[T]    { return prefixFunc("acos", op) }
func Arctangent[T any](op Operation[T]) *Operator[T]   { return prefixFunc("atan", op) }
func HypSine[T any](op Operation[T]) *Operator[T]      { return prefixFunc("sinh", op) }
func HypCosine[T any](op Operation[T]) *Operator[T]    { return prefixFunc("cosh", op) }
func HypTangent[T any](op Operation[T]) *Operator[T]   { return prefixFunc("tanh", op) }
func ArHypSine[T any](op Operation[T]) *Operator[T]    { return prefixFunc("asinh", op) }
func ArHypCosine[T any](op Operation[T]) *Operator[T]  { return prefixFunc("acosh", op) }
func ArHypTangent[T any](op Operation[T]) *Operator[T] { return prefixFunc("atanh", op) }
func Round[T any](op Operation[T]) *Operator[T]        { return prefixFunc("round", op) }
func Floor[T any](op Operation[T]) *Operator[T]        { return prefixFunc("floor", op) }
func Ceiling[T any](op Operation[T]) *Operator[T]      { return prefixFunc("ceil", op) }
func NaturalLog[T any](op Operation[T]) *Operator[T]   { return prefixFunc("ln", op) }
func Log10[T any](op Operation[T]) *Operator[T]        { return prefixFunc("log10", op) }
func SquareRoot[T any](op Operation[T]) *Operator[T]   { return prefixFunc("sqrt", op) }
func CubeRoot[T any](op Operation[T]) *Operator[T]     { return prefixFunc("cbrt", op) }

// Degrees converts radians to degrees.
func Degrees[T any](op Operation[T]) *Function[T] {
	return NewFunction("deg", 1, op)
}

// Radians converts degrees to radians.
func Radians[T any](op Operation[T]) *Function[T] {
	return NewFunction("rad", 1, op)
}

// Logarithm is log(base, x).
func Logarithm[T any](op Operation[T]) *Function[T] {
	return NewFunction("log", 2, op)
}

func Exponential[T any](op Operation[T]) *Function[T] {
	return NewFunction("exp", 1, op)
}

func Maximum[T any](op Operation[T]) *Function[T] {
	return NewFunction("max", Variadic, op)
}

func Minimum[T any](op Operation[T]) *Function[T] {
	return NewFunction("min", Variadic, op)
}

func Average[T any](op Operation[T]) *Function[T] {
	return NewFunction("average", Variadic, op)
}

func Mean[T any](op Operation[T]) *Function[T] {
	return NewFunction("mean", Variadic, op)
}

func Random[T any](op Operation[T]) *Function[T] {
	return NewFunction("rand", 0, op)
}

// Fold creates a variadic operation combining its arguments from left to
// right with f. With no arguments, the result is zero.
func Fold[T any](zero T, f func(acc, x T) T) Operation[T] {
	return OperationFunc[T](func(args Params[T]) (r T, err error) {
		if args.Len() == 0 {
			return zero, nil
		}
		defer recoverDomain(&err)
		r, err = args.Result(0)
		if err != nil {
			return r, err
		}
		for i := 1; i < args.Len(); i++ {
			x, err := args.Result(i)
			if err != nil {
				return r, err
			}
			r = f(r, x)
		}
		return r, nil
	})
}
