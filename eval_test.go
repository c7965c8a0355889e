package infix_test

import (
	"errors"
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/zephyrtronium/infix"
	"github.com/zephyrtronium/infix/floats"
)

// cond is a three-argument conditional which evaluates only the branch it
// selects.
func cond(args infix.Params[float64]) (float64, error) {
	c, err := args.Result(0)
	if err != nil {
		return 0, err
	}
	if c != 0 {
		return args.Result(1)
	}
	return args.Result(2)
}

func TestEvalLazy(t *testing.T) {
	b := floats.New()
	b.Dictionary().AddFunction(infix.NewFunction("if", 3, infix.OperationFunc[float64](cond)))
	cases := []struct {
		src  string
		want float64
		err  error
	}{
		{"if(1, 2, q)", 2, nil},
		{"if(0, q, 3)", 3, nil},
		{"if(1, q, 3)", 0, infix.ErrUnbound},
		{"if(0, (-1)!, 4)", 4, nil},
		{"if(1, (-1)!, 4)", 0, infix.ErrDomain},
	}
	for _, c := range cases {
		got, err := b.EvalString(c.src, nil)
		if !errors.Is(err, c.err) {
			t.Errorf("evaluating %q: want error %v, got %v", c.src, c.err, err)
			continue
		}
		if err == nil && got != c.want {
			t.Errorf("evaluating %q: want %g, got %g", c.src, c.want, got)
		}
	}
}

func TestEvalOnce(t *testing.T) {
	var n int
	b := floats.New()
	b.Dictionary().
		AddFunction(infix.NewFunction("count", 0, infix.Niladic(func() float64 {
			n++
			return float64(n)
		}))).
		AddFunction(infix.NewFunction("twice", 1, infix.OperationFunc[float64](func(args infix.Params[float64]) (float64, error) {
			x, err := args.Result(0)
			if err != nil {
				return 0, err
			}
			y, err := args.Result(0)
			return x + y, err
		})))
	got, err := b.EvalString("twice(count())", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 || n != 1 {
		t.Errorf("argument evaluated %d times with result %g", n, got)
	}
}

func TestEvalVars(t *testing.T) {
	b := floats.New()
	e, err := b.Build("a*x^2 + b*x + c + pi - pi")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := e.Vars(), []string{"a", "b", "c", "pi", "x"}; !reflect.DeepEqual(got, want) {
		t.Errorf("want vars %q, got %q", want, got)
	}
	e.Vars()[0] = "z"
	if e.Vars()[0] != "a" {
		t.Error("Vars returned the expression's own slice")
	}

	r, err := e.Eval(map[string]float64{"a": 1, "b": -3, "c": 2, "x": 4})
	if err != nil {
		t.Fatal(err)
	}
	if r != 6 {
		t.Errorf("want 6, got %g", r)
	}
	_, err = e.Eval(map[string]float64{"a": 1, "b": -3, "x": 4})
	var ne *infix.NameError
	if !errors.As(err, &ne) || ne.Name != "c" {
		t.Errorf("want undefined c, got %v", err)
	}
}

func TestEvalConstants(t *testing.T) {
	b := floats.New()
	e, err := b.Build("2pi")
	if err != nil {
		t.Fatal(err)
	}
	b.Dictionary().AddConstant("pi", 3)
	if r, _ := e.Evaluate(); r != 2*math.Pi {
		t.Errorf("expression saw later constant: %g", r)
	}
	if r, _ := b.EvalString("2pi", nil); r != 6 {
		t.Errorf("new expression missed new constant: %g", r)
	}
	if r, _ := e.Eval(map[string]float64{"pi": 4}); r != 8 {
		t.Errorf("binding did not override constant: %g", r)
	}
	if c := e.Constants(); c["pi"] != math.Pi || c["e"] != math.E {
		t.Errorf("wrong captured constants %v", c)
	}
}

func TestEvalConcurrent(t *testing.T) {
	b := floats.New()
	e, err := b.Build("x^2 + max(x, y) + rand()*0")
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			x := float64(i)
			r, err := e.Eval(map[string]float64{"x": x, "y": -1})
			if err == nil && r != x*x+x {
				err = errors.New("wrong result")
			}
			errs[i] = err
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Errorf("goroutine %d: %v", i, err)
		}
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		src  string
		want error
		pos  int
	}{
		{"", infix.ErrLex, 1},
		{"1 $", infix.ErrLex, 3},
		{"(1", infix.ErrSyntax, 1},
		{"1 + (2 * 3))", infix.ErrSyntax, 12},
		{"max", infix.ErrSyntax, 1},
		{"2 * * 3", infix.ErrSyntax, 5},
		{"max(1,,2)", infix.ErrSyntax, 7},
		{"log(1)", infix.ErrArity, 6},
		{"rand(1)", infix.ErrArity, 7},
		{"q+1", infix.ErrUnbound, 0},
		{"(-1)!", infix.ErrDomain, 0},
		{"2.5!", infix.ErrDomain, 0},
	}
	b := floats.New()
	for _, c := range cases {
		_, err := b.EvalString(c.src, nil)
		if !errors.Is(err, c.want) {
			t.Errorf("evaluating %q: want %v, got %v", c.src, c.want, err)
			continue
		}
		var ie infix.InputError
		switch {
		case c.pos == 0 && errors.As(err, &ie):
			t.Errorf("evaluating %q: evaluation error %v has position %d", c.src, err, ie.Pos())
		case c.pos != 0 && !errors.As(err, &ie):
			t.Errorf("evaluating %q: error %v has no position", c.src, err)
		case c.pos != 0 && ie.Pos() != c.pos:
			t.Errorf("evaluating %q: want position %d, got %d", c.src, c.pos, ie.Pos())
		}
	}
}

func TestErrorCategories(t *testing.T) {
	// Each error unwraps to exactly one category.
	cats := []error{infix.ErrLex, infix.ErrSyntax, infix.ErrArity, infix.ErrTree, infix.ErrUnbound, infix.ErrDomain}
	errs := []error{
		&infix.LexError{Col: 1, Text: "$"},
		&infix.OperatorError{Col: 1, Operator: "*", Fixity: infix.Infix},
		&infix.BracketError{Col: 1},
		&infix.SeparatorError{Col: 1, Sep: ","},
		&infix.EmptyExpressionError{Col: 1},
		&infix.CallError{Col: 1, Func: "f", Len: 1, Want: 2},
		&infix.TreeError{Label: "+", Msg: "bad"},
		&infix.NameError{Name: "x"},
		&infix.DomainError{X: -1.0, Func: "!"},
	}
	for _, err := range errs {
		n := 0
		for _, cat := range cats {
			if errors.Is(err, cat) {
				n++
			}
		}
		if n != 1 {
			t.Errorf("%T %v is in %d categories", err, err, n)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&infix.LexError{Col: 1, Kind: "blank"}, "expression is blank"},
		{&infix.LexError{Col: 3, Text: "$"}, `3: invalid token "$"`},
		{&infix.LexError{Col: 2, Text: "*", Kind: "symbol"}, `2: undefined symbol "*"`},
		{&infix.OperatorError{Col: 1, Operator: "!", Fixity: infix.Postfix}, `1: postfix operator "!" does not follow an operand`},
		{&infix.BracketError{Col: 1, Func: "max"}, `1: function "max" without open bracket`},
		{&infix.BracketError{Col: 4, Close: true}, "4: close bracket with no open bracket"},
		{&infix.BracketError{Col: 1}, "1: open bracket with no close bracket"},
		{&infix.SeparatorError{Col: 2, Sep: ","}, `2: invalid occurrence of separator ","`},
		{&infix.SeparatorError{Col: 5, Sep: ",", Empty: true}, `5: empty argument before ","`},
		{&infix.EmptyExpressionError{Col: 2}, "2: no expression at end"},
		{&infix.EmptyExpressionError{Col: 2, End: ")"}, `2: no expression up to ")"`},
		{&infix.CallError{Col: 6, Func: "log", Len: 1, Want: 2}, "6: cannot call log with 1 arguments (want 2)"},
		{&infix.NameError{Name: "q"}, `undefined variable: "q"`},
		{&infix.DomainError{X: -1.0, Func: "!"}, "-1 outside domain of !"},
		{&infix.DomainError{Func: "/", Arg: 2}, "argument outside domain of / (argument 2)"},
		{&infix.DomainError{Msg: "division of zero by zero or infinity by infinity"}, "division of zero by zero or infinity by infinity"},
	}
	for _, c := range cases {
		if got := c.err.Error(); got != c.want {
			t.Errorf("%T: want %q, got %q", c.err, c.want, got)
		}
	}
}
