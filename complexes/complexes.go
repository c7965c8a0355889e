// Package complexes provides a complex128 domain for infix expressions. The
// imaginary unit is the constant i, so 2+3i is written as such.
package complexes

import (
	"errors"
	"math"
	"math/cmplx"
	"math/rand"
	"strconv"

	"github.com/zephyrtronium/infix"
)

// Codec converts between literal text and complex128.
type Codec struct{}

// Operand parses text as a complex128. Malformed text produces 0. Literals
// too large to represent produce an infinity.
func (Codec) Operand(text string) complex128 {
	v, err := strconv.ParseComplex(text, 128)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return v
}

// Format formats real values as plain numbers, integral ones without a
// fraction, and others as (a+bi).
func (Codec) Format(v complex128) string {
	if imag(v) != 0 {
		return strconv.FormatComplex(v, 'g', -1, 128)
	}
	r := real(v)
	if r == math.Trunc(r) && math.Abs(r) < 1e15 {
		return strconv.FormatFloat(r, 'f', -1, 64)
	}
	return strconv.FormatFloat(r, 'g', -1, 64)
}

// Patterns returns infix.DefaultPatterns.
func (Codec) Patterns() []string {
	return infix.DefaultPatterns
}

// New creates a builder with every supported operator, function, and constant
// registered.
func New() *infix.Builder[complex128] {
	return infix.NewBuilder[complex128](Codec{}, Register)
}

// Register adds the supported operators and functions, along with the
// constants pi, e, and i, to d. There is no remainder, factorial, or rounding
// for complex values. max and min compare by modulus.
func Register(d *infix.Dictionary[complex128]) {
	d.AddOperator(infix.Positive(infix.Monadic(func(x complex128) complex128 { return x }))).
		AddOperator(infix.Negative(infix.Monadic(func(x complex128) complex128 { return -x }))).
		AddOperator(infix.Add(infix.Dyadic(func(x, y complex128) complex128 { return x + y }))).
		AddOperator(infix.Subtract(infix.Dyadic(func(x, y complex128) complex128 { return x - y }))).
		AddOperator(infix.Multiply(infix.Dyadic(func(x, y complex128) complex128 { return x * y }))).
		AddOperator(infix.Divide(infix.Dyadic(func(x, y complex128) complex128 { return x / y }))).
		AddOperator(infix.Power(infix.Dyadic(cmplx.Pow))).
		AddOperator(infix.Absolute(infix.Monadic(func(x complex128) complex128 { return complex(cmplx.Abs(x), 0) }))).
		AddOperator(infix.Sine(infix.Monadic(cmplx.Sin))).
		AddOperator(infix.Cosine(infix.Monadic(cmplx.Cos))).
		AddOperator(infix.Tangent(infix.Monadic(cmplx.Tan))).
		AddOperator(infix.Arcsine(infix.Monadic(cmplx.Asin))).
		AddOperator(infix.Arccosine(infix.Monadic(cmplx.Acos))).
		AddOperator(infix.Arctangent(infix.Monadic(cmplx.Atan))).
		AddOperator(infix.HypSine(infix.Monadic(cmplx.Sinh))).
		AddOperator(infix.HypCosine(infix.Monadic(cmplx.Cosh))).
		AddOperator(infix.HypTangent(infix.Monadic(cmplx.Tanh))).
		AddOperator(infix.ArHypSine(infix.Monadic(cmplx.Asinh))).
		AddOperator(infix.ArHypCosine(infix.Monadic(cmplx.Acosh))).
		AddOperator(infix.ArHypTangent(infix.Monadic(cmplx.Atanh))).
		AddOperator(infix.NaturalLog(infix.Monadic(cmplx.Log))).
		AddOperator(infix.Log10(infix.Monadic(cmplx.Log10))).
		AddOperator(infix.SquareRoot(infix.Monadic(cmplx.Sqrt))).
		AddOperator(infix.CubeRoot(infix.Monadic(func(x complex128) complex128 { return cmplx.Pow(x, 1.0/3) }))).
		AddFunction(infix.Degrees(infix.Monadic(func(x complex128) complex128 { return x * (180 / math.Pi) }))).
		AddFunction(infix.Radians(infix.Monadic(func(x complex128) complex128 { return x * (math.Pi / 180) }))).
		AddFunction(infix.Logarithm(infix.Dyadic(func(b, x complex128) complex128 { return cmplx.Log(x) / cmplx.Log(b) }))).
		AddFunction(infix.Exponential(infix.Monadic(cmplx.Exp))).
		AddFunction(infix.Maximum(infix.Fold[complex128](0, Max))).
		AddFunction(infix.Minimum(infix.Fold[complex128](0, Min))).
		AddFunction(infix.Mean(infix.Polyadic(mean))).
		AddFunction(infix.Average(infix.Polyadic(mean))).
		AddFunction(infix.Random(infix.Niladic(func() complex128 { return complex(rand.Float64(), rand.Float64()) }))).
		AddConstant("pi", complex(math.Pi, 0)).
		AddConstant("e", complex(math.E, 0)).
		AddConstant("i", 1i)
}

// Max returns whichever of acc and x has the greater modulus, preferring acc
// when they are equal.
func Max(acc, x complex128) complex128 {
	if cmplx.Abs(x) > cmplx.Abs(acc) {
		return x
	}
	return acc
}

// Min returns whichever of acc and x has the lesser modulus, preferring acc
// when they are equal.
func Min(acc, x complex128) complex128 {
	if cmplx.Abs(x) < cmplx.Abs(acc) {
		return x
	}
	return acc
}

func mean(xs []complex128) complex128 {
	if len(xs) == 0 {
		return 0
	}
	var s complex128
	for _, x := range xs {
		s += x
	}
	return s / complex(float64(len(xs)), 0)
}
