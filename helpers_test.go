package infix

import (
	"strconv"
	"strings"
)

// intCodec is a minimal codec for tests inside the package, which cannot
// import the numeric domains.
type intCodec struct{}

func (intCodec) Operand(text string) int {
	v, _ := strconv.Atoi(text)
	return v
}

func (intCodec) Format(v int) string {
	return strconv.Itoa(v)
}

func (intCodec) Patterns() []string {
	return []string{`\d+`}
}

func ipow(x, y int) int {
	r := 1
	for ; y > 0; y-- {
		r *= x
	}
	return r
}

func ifact(x int) int {
	if x < 0 {
		panic(&DomainError{X: x, Func: "!"})
	}
	r := 1
	for i := 2; i <= x; i++ {
		r *= i
	}
	return r
}

// testDict creates a dictionary with the usual arithmetic operators, a
// prefix sq, fixed-arity functions f/2, sqr/1, and four/0, a variadic sum g,
// and a constant k.
func testDict() *Dictionary[int] {
	d := NewDictionary[int]()
	d.AddOperator(Negative(Monadic(func(x int) int { return -x }))).
		AddOperator(Positive(Monadic(func(x int) int { return x }))).
		AddOperator(Add(Dyadic(func(x, y int) int { return x + y }))).
		AddOperator(Subtract(Dyadic(func(x, y int) int { return x - y }))).
		AddOperator(Multiply(Dyadic(func(x, y int) int { return x * y }))).
		AddOperator(Divide(Dyadic(func(x, y int) int {
			if y == 0 {
				panic(&DomainError{X: y, Arg: 2, Func: "/"})
			}
			return x / y
		}))).
		AddOperator(Power(Dyadic(ipow))).
		AddOperator(Factorial(Monadic(ifact))).
		AddOperator(NewOperator("sq", Prefix, PrecPrefixFunc, Monadic(func(x int) int { return x * x }))).
		AddFunction(NewFunction("f", 2, Dyadic(func(x, y int) int { return 10*x + y }))).
		AddFunction(NewFunction("sqr", 1, Monadic(func(x int) int { return x * x }))).
		AddFunction(NewFunction("four", 0, Niladic(func() int { return 4 }))).
		AddFunction(NewFunction("g", Variadic, Polyadic(func(xs []int) int {
			s := 0
			for _, x := range xs {
				s += x
			}
			return s
		}))).
		AddConstant("k", 7)
	return d
}

func testPatterns(d *Dictionary[int]) *patterns {
	lits, err := compileLits(intCodec{}.Patterns())
	if err != nil {
		panic(err)
	}
	return &patterns{exec: compileExec(d.Executables()), lits: lits}
}

func lexString(src string) ([]Token[int], error) {
	d := testDict()
	return lex(src, d, intCodec{}, testPatterns(d))
}

func toksString(toks []Token[int]) string {
	s := make([]string, len(toks))
	for i, tok := range toks {
		s[i] = tok.String()
	}
	return strings.Join(s, " ")
}

// postfixString formats postfix tokens by label. Functions include their
// resolved arity.
func postfixString(toks []Token[int]) string {
	s := make([]string, len(toks))
	for i, tok := range toks {
		s[i] = tok.Label
		if tok.Kind == KindFunction {
			s[i] += "/" + strconv.Itoa(tok.Fn.Arity)
		}
	}
	return strings.Join(s, " ")
}
