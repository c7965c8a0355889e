// Package bigfloats provides an arbitrary-precision domain for infix
// expressions using *big.Float.
//
// Trigonometric functions are not provided, as there is not yet an
// arbitrary-precision implementation of them in the dependencies.
package bigfloats

import (
	"math/big"
	"math/rand"

	"github.com/zephyrtronium/bigfloat"

	"github.com/zephyrtronium/infix"
)

// DefaultPrec is the precision used by New when none is given.
const DefaultPrec = 64

// Domain is the codec for *big.Float values at a given precision. Its
// Register method adds operations which compute at the same precision.
type Domain struct {
	prec uint
}

// Prec returns the precision of values the domain creates.
func (d *Domain) Prec() uint {
	return d.prec
}

// Operand parses decimal text. Malformed text produces 0.
func (d *Domain) Operand(text string) *big.Float {
	v, _, err := big.ParseFloat(text, 10, d.prec, big.ToNearestEven)
	if err != nil {
		return new(big.Float).SetPrec(d.prec)
	}
	return v
}

// Format formats v in the shortest decimal form that parses to the same value
// at v's precision.
func (d *Domain) Format(v *big.Float) string {
	if v == nil {
		return "<nil>"
	}
	return v.Text('g', -1)
}

// Copy returns a new value equal to v at the same precision. Evaluation uses
// it so that results may be modified without affecting constants, literals,
// or bindings.
func (d *Domain) Copy(v *big.Float) *big.Float {
	if v == nil {
		return nil
	}
	return new(big.Float).Set(v)
}

// Patterns returns infix.DefaultPatterns.
func (d *Domain) Patterns() []string {
	return infix.DefaultPatterns
}

// New creates a builder at the given precision in bits with every supported
// operator, function, and constant registered. A precision of 0 means
// DefaultPrec.
func New(prec uint) *infix.Builder[*big.Float] {
	if prec == 0 {
		prec = DefaultPrec
	}
	d := &Domain{prec: prec}
	return infix.NewBuilder[*big.Float](d, d.Register)
}

// SetPrec changes the precision of a builder created by New. The builder's
// dictionary is replaced with a freshly initialized one, so constants and
// operations use the new precision. Expressions already built are unaffected.
// Panics if b was not created by New.
func SetPrec(b *infix.Builder[*big.Float], prec uint) {
	d, ok := b.Codec().(*Domain)
	if !ok {
		panic("bigfloats: SetPrec on builder with foreign codec")
	}
	if prec == 0 {
		prec = DefaultPrec
	}
	d.prec = prec
	b.Reset().Initialize()
}

// Register adds the supported operators, functions, and the constants pi and
// e to dict. The operations compute at the domain's current precision.
// Operations always allocate their results; they never modify arguments.
func (d *Domain) Register(dict *infix.Dictionary[*big.Float]) {
	a := arith{prec: d.prec}
	dict.AddOperator(infix.Positive(infix.Monadic(a.pos))).
		AddOperator(infix.Negative(infix.Monadic(a.neg))).
		AddOperator(infix.Add(infix.Dyadic(a.add))).
		AddOperator(infix.Subtract(infix.Dyadic(a.sub))).
		AddOperator(infix.Multiply(infix.Dyadic(a.mul))).
		AddOperator(infix.Divide(infix.Dyadic(a.quo))).
		AddOperator(infix.Percent(infix.Dyadic(a.rem))).
		AddOperator(infix.Power(infix.Dyadic(a.pow))).
		AddOperator(infix.Factorial(infix.Monadic(a.fact))).
		AddOperator(infix.Absolute(infix.Monadic(a.abs))).
		AddOperator(infix.Round(infix.Monadic(a.round))).
		AddOperator(infix.Floor(infix.Monadic(a.floor))).
		AddOperator(infix.Ceiling(infix.Monadic(a.ceil))).
		AddOperator(infix.NaturalLog(infix.Monadic(a.ln))).
		AddOperator(infix.Log10(infix.Monadic(a.log10))).
		AddOperator(infix.SquareRoot(infix.Monadic(a.sqrt))).
		AddOperator(infix.CubeRoot(infix.Monadic(a.cbrt))).
		AddFunction(infix.Degrees(infix.Monadic(a.deg))).
		AddFunction(infix.Radians(infix.Monadic(a.rad))).
		AddFunction(infix.Logarithm(infix.Dyadic(a.log))).
		AddFunction(infix.Exponential(infix.Monadic(a.exp))).
		AddFunction(infix.Maximum(infix.Polyadic(a.max))).
		AddFunction(infix.Minimum(infix.Polyadic(a.min))).
		AddFunction(infix.Mean(infix.Polyadic(a.mean))).
		AddFunction(infix.Average(infix.Polyadic(a.mean))).
		AddFunction(infix.Random(infix.Niladic(a.rand))).
		AddConstant("pi", bigfloat.Pi(a.new())).
		AddConstant("e", bigfloat.Exp(a.new(), big.NewFloat(1)))
}

// arith implements operations at a fixed precision.
type arith struct {
	prec uint
}

func (a arith) new() *big.Float {
	return new(big.Float).SetPrec(a.prec)
}

func (a arith) pos(x *big.Float) *big.Float    { return a.new().Set(x) }
func (a arith) neg(x *big.Float) *big.Float    { return a.new().Neg(x) }
func (a arith) abs(x *big.Float) *big.Float    { return a.new().Abs(x) }
func (a arith) add(x, y *big.Float) *big.Float { return a.new().Add(x, y) }
func (a arith) sub(x, y *big.Float) *big.Float { return a.new().Sub(x, y) }
func (a arith) mul(x, y *big.Float) *big.Float { return a.new().Mul(x, y) }
func (a arith) quo(x, y *big.Float) *big.Float { return a.new().Quo(x, y) }

// rem computes the remainder of x/y truncated toward zero, with the sign of
// x.
func (a arith) rem(x, y *big.Float) *big.Float {
	if y.Sign() == 0 || x.IsInf() {
		panic(&infix.DomainError{X: y, Arg: 2, Func: "%"})
	}
	if y.IsInf() {
		return a.new().Set(x)
	}
	q, _ := a.new().Quo(x, y).Int(nil)
	// The quotient can need more bits than the working precision.
	p := new(big.Float).SetPrec(uint(q.BitLen()) + a.prec).SetInt(q)
	p.Mul(p, y)
	return a.new().Sub(x, p)
}

// trunc returns x rounded toward zero as an integer, or nil if x is infinite.
func trunc(x *big.Float) *big.Int {
	i, _ := x.Int(nil)
	return i
}

func (a arith) floor(x *big.Float) *big.Float {
	if x.IsInf() || x.IsInt() {
		return a.new().Set(x)
	}
	i := trunc(x)
	if x.Sign() < 0 {
		i.Sub(i, big.NewInt(1))
	}
	return a.new().SetInt(i)
}

func (a arith) ceil(x *big.Float) *big.Float {
	if x.IsInf() || x.IsInt() {
		return a.new().Set(x)
	}
	i := trunc(x)
	if x.Sign() > 0 {
		i.Add(i, big.NewInt(1))
	}
	return a.new().SetInt(i)
}

// round rounds half up, so that round -2.5 is -2.
func (a arith) round(x *big.Float) *big.Float {
	f := a.floor(x)
	if x.IsInf() {
		return f
	}
	d := new(big.Float).SetPrec(max(x.Prec(), a.prec)).Sub(x, f)
	if d.Cmp(big.NewFloat(0.5)) >= 0 {
		f.Add(f, big.NewFloat(1))
	}
	return f
}

// pow computes x^y. A negative base is allowed only with an integer exponent.
func (a arith) pow(x, y *big.Float) *big.Float {
	if y.IsInt() && !y.IsInf() {
		if n, acc := y.Int64(); acc == big.Exact && n >= -1<<20 && n <= 1<<20 {
			return a.ipow(x, n)
		}
	}
	switch x.Sign() {
	case -1:
		panic(&infix.DomainError{X: x, Arg: 1, Func: "^", Msg: "negative base with non-integer exponent"})
	case 0:
		if y.Sign() < 0 {
			return a.new().SetInf(false)
		}
		return a.new()
	}
	return bigfloat.Pow(a.new(), x, y)
}

// ipow computes x^n by squaring.
func (a arith) ipow(x *big.Float, n int64) *big.Float {
	inv := n < 0
	if inv {
		n = -n
	}
	// Carry extra bits through the multiplications.
	w := a.prec + 64
	r := new(big.Float).SetPrec(w).SetInt64(1)
	b := new(big.Float).SetPrec(w).Set(x)
	for n > 0 {
		if n&1 != 0 {
			r.Mul(r, b)
		}
		b.Mul(b, b)
		n >>= 1
	}
	if inv {
		if r.Sign() == 0 {
			return a.new().SetInf(r.Signbit())
		}
		r.Quo(new(big.Float).SetPrec(w).SetInt64(1), r)
	}
	return a.new().Set(r)
}

// fact computes x! for a non-negative integer x.
func (a arith) fact(x *big.Float) *big.Float {
	if x.Sign() < 0 || !x.IsInt() || x.IsInf() {
		panic(&infix.DomainError{X: x, Func: "!"})
	}
	n, acc := x.Int64()
	if acc != big.Exact || n > 1<<16 {
		panic(&infix.DomainError{X: x, Func: "!", Msg: "factorial argument too large"})
	}
	return a.new().SetInt(new(big.Int).MulRange(1, n))
}

func (a arith) ln(x *big.Float) *big.Float {
	switch {
	case x.Sign() < 0:
		panic(&infix.DomainError{X: x, Func: "ln"})
	case x.Sign() == 0:
		return a.new().SetInf(true)
	case x.IsInf():
		return a.new().SetInf(false)
	}
	return bigfloat.Log(a.new(), x)
}

func (a arith) log10(x *big.Float) *big.Float {
	return a.log(big.NewFloat(10), x)
}

// log computes the logarithm of x in base b.
func (a arith) log(b, x *big.Float) *big.Float {
	if b.Sign() <= 0 || b.IsInf() {
		panic(&infix.DomainError{X: b, Arg: 1, Func: "log"})
	}
	d := a.ln(b)
	if d.Sign() == 0 {
		panic(&infix.DomainError{X: b, Arg: 1, Func: "log"})
	}
	return d.Quo(a.ln(x), d)
}

func (a arith) exp(x *big.Float) *big.Float {
	if x.IsInf() {
		if x.Signbit() {
			return a.new()
		}
		return a.new().SetInf(false)
	}
	return bigfloat.Exp(a.new(), x)
}

func (a arith) sqrt(x *big.Float) *big.Float {
	if x.Sign() < 0 {
		panic(&infix.DomainError{X: x, Func: "sqrt"})
	}
	return a.new().Sqrt(x)
}

// cbrt computes the real cube root of x.
func (a arith) cbrt(x *big.Float) *big.Float {
	if x.Sign() == 0 || x.IsInf() {
		return a.new().Set(x)
	}
	m := a.new().Abs(x)
	r := bigfloat.Exp(a.new(), a.new().Quo(bigfloat.Log(a.new(), m), big.NewFloat(3)))
	// One Newton step recovers the bits lost through exp and log:
	// r -= (r^3 - m) / 3r^2.
	r2 := a.new().Mul(r, r)
	num := a.new().Sub(a.new().Mul(r2, r), m)
	r.Sub(r, num.Quo(num, r2.Mul(r2, big.NewFloat(3))))
	if x.Sign() < 0 {
		r.Neg(r)
	}
	return r
}

func (a arith) deg(x *big.Float) *big.Float {
	r := a.new().Mul(x, big.NewFloat(180))
	return r.Quo(r, bigfloat.Pi(a.new()))
}

func (a arith) rad(x *big.Float) *big.Float {
	r := a.new().Mul(x, bigfloat.Pi(a.new()))
	return r.Quo(r, big.NewFloat(180))
}

// max returns the largest of xs, or 0 if there are none.
func (a arith) max(xs []*big.Float) *big.Float {
	return a.extreme(xs, 1)
}

// min returns the smallest of xs, or 0 if there are none.
func (a arith) min(xs []*big.Float) *big.Float {
	return a.extreme(xs, -1)
}

func (a arith) extreme(xs []*big.Float, sign int) *big.Float {
	if len(xs) == 0 {
		return a.new()
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x.Cmp(m) == sign {
			m = x
		}
	}
	return a.new().Set(m)
}

func (a arith) mean(xs []*big.Float) *big.Float {
	s := a.new()
	if len(xs) == 0 {
		return s
	}
	for _, x := range xs {
		s.Add(s, x)
	}
	return s.Quo(s, new(big.Float).SetInt64(int64(len(xs))))
}

func (a arith) rand() *big.Float {
	return a.new().SetFloat64(rand.Float64())
}
