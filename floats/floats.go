// Package floats provides a float64 domain for infix expressions.
package floats

import (
	"errors"
	"math"
	"math/rand"
	"strconv"

	"github.com/zephyrtronium/infix"
)

// Codec converts between literal text and float64.
type Codec struct{}

// Operand parses text as a float64. Malformed text produces 0. Literals too
// large to represent produce an infinity.
func (Codec) Operand(text string) float64 {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return v
}

// Format formats integral values without a fraction and others in the
// shortest representation that parses back to the same value.
func (Codec) Format(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Patterns returns infix.DefaultPatterns.
func (Codec) Patterns() []string {
	return infix.DefaultPatterns
}

// New creates a builder with every standard operator, function, and constant
// registered.
func New() *infix.Builder[float64] {
	return infix.NewBuilder[float64](Codec{}, Register)
}

// Register adds the standard operators, functions, and the constants pi and e
// to d.
func Register(d *infix.Dictionary[float64]) {
	d.AddOperator(infix.Positive(infix.Monadic(func(x float64) float64 { return x }))).
		AddOperator(infix.Negative(infix.Monadic(func(x float64) float64 { return -x }))).
		AddOperator(infix.Add(infix.Dyadic(func(x, y float64) float64 { return x + y }))).
		AddOperator(infix.Subtract(infix.Dyadic(func(x, y float64) float64 { return x - y }))).
		AddOperator(infix.Multiply(infix.Dyadic(func(x, y float64) float64 { return x * y }))).
		AddOperator(infix.Divide(infix.Dyadic(func(x, y float64) float64 { return x / y }))).
		AddOperator(infix.Percent(infix.Dyadic(math.Mod))).
		AddOperator(infix.Power(infix.Dyadic(math.Pow))).
		AddOperator(infix.Factorial(infix.Monadic(Factorial))).
		AddOperator(infix.Absolute(infix.Monadic(math.Abs))).
		AddOperator(infix.Sine(infix.Monadic(math.Sin))).
		AddOperator(infix.Cosine(infix.Monadic(math.Cos))).
		AddOperator(infix.Tangent(infix.Monadic(math.Tan))).
		AddOperator(infix.Arcsine(infix.Monadic(math.Asin))).
		AddOperator(infix.Arccosine(infix.Monadic(math.Acos))).
		AddOperator(infix.Arctangent(infix.Monadic(math.Atan))).
		AddOperator(infix.HypSine(infix.Monadic(math.Sinh))).
		AddOperator(infix.HypCosine(infix.Monadic(math.Cosh))).
		AddOperator(infix.HypTangent(infix.Monadic(math.Tanh))).
		AddOperator(infix.ArHypSine(infix.Monadic(math.Asinh))).
		AddOperator(infix.ArHypCosine(infix.Monadic(math.Acosh))).
		AddOperator(infix.ArHypTangent(infix.Monadic(math.Atanh))).
		AddOperator(infix.Round(infix.Monadic(Round))).
		AddOperator(infix.Floor(infix.Monadic(math.Floor))).
		AddOperator(infix.Ceiling(infix.Monadic(math.Ceil))).
		AddOperator(infix.NaturalLog(infix.Monadic(math.Log))).
		AddOperator(infix.Log10(infix.Monadic(math.Log10))).
		AddOperator(infix.SquareRoot(infix.Monadic(math.Sqrt))).
		AddOperator(infix.CubeRoot(infix.Monadic(math.Cbrt))).
		AddFunction(infix.Degrees(infix.Monadic(func(x float64) float64 { return x * 180 / math.Pi }))).
		AddFunction(infix.Radians(infix.Monadic(func(x float64) float64 { return x * math.Pi / 180 }))).
		AddFunction(infix.Logarithm(infix.Dyadic(func(b, x float64) float64 { return math.Log(x) / math.Log(b) }))).
		AddFunction(infix.Exponential(infix.Monadic(math.Exp))).
		AddFunction(infix.Maximum(infix.Fold[float64](0, math.Max))).
		AddFunction(infix.Minimum(infix.Fold[float64](0, math.Min))).
		AddFunction(infix.Mean(infix.Polyadic(mean))).
		AddFunction(infix.Average(infix.Polyadic(mean))).
		AddFunction(infix.Random(infix.Niladic(rand.Float64))).
		AddConstant("pi", math.Pi).
		AddConstant("e", math.E)
}

// Round rounds half up, so that Round(-2.5) is -2.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// Factorial computes x! for a non-negative integer x. It panics with an
// *infix.DomainError for any other argument.
func Factorial(x float64) float64 {
	if x < 0 || x != math.Trunc(x) || math.IsInf(x, 0) {
		panic(&infix.DomainError{X: x, Func: "!"})
	}
	r := 1.0
	for i := 2.0; i <= x && !math.IsInf(r, 0); i++ {
		r *= i
	}
	return r
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var s float64
	for _, x := range xs {
		s += x
	}
	return s / float64(len(xs))
}
