package infix

import (
	"sort"
	"strconv"
)

// Expr is a built expression. An Expr is immutable and safe to evaluate
// concurrently.
type Expr[T any] struct {
	root   *Node[T]
	consts map[string]T
	codec  Codec[T]
	names  []string
}

func newExpr[T any](root *Node[T], consts map[string]T, codec Codec[T]) *Expr[T] {
	e := Expr[T]{root: root, consts: consts, codec: codec}
	seen := make(map[string]bool)
	stack := []*Node[T]{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = append(stack[:len(stack)-1], n.kids...)
		if n.tok.Kind == KindVariable && !seen[n.tok.Label] {
			seen[n.tok.Label] = true
			e.names = append(e.names, n.tok.Label)
		}
	}
	sort.Strings(e.names)
	return &e
}

// Root returns the root node of the expression tree.
func (e *Expr[T]) Root() *Node[T] {
	return e.root
}

// Vars returns the names of variables referenced in the expression, sorted
// lexically, including names which the expression's constants define.
func (e *Expr[T]) Vars() []string {
	return append([]string(nil), e.names...)
}

// Constants returns a copy of the constants captured when the expression was
// built.
func (e *Expr[T]) Constants() map[string]T {
	m := make(map[string]T, len(e.consts))
	for k, v := range e.consts {
		m[k] = v
	}
	return m
}

// Codec returns the codec the expression was built with.
func (e *Expr[T]) Codec() Codec[T] {
	return e.codec
}

// String formats the expression in canonical infix form. Building the result
// produces an expression with the same tree.
func (e *Expr[T]) String() string {
	return e.root.String()
}

// Eval evaluates the expression. Variables are looked up first in vars, then
// in the constants captured when the expression was built.
func (e *Expr[T]) Eval(vars map[string]T) (T, error) {
	env := e.consts
	if len(vars) != 0 {
		env = make(map[string]T, len(e.consts)+len(vars))
		for k, v := range e.consts {
			env[k] = v
		}
		for k, v := range vars {
			env[k] = v
		}
	}
	return eval(e.root, newScope(env, e.codec))
}

// Evaluate evaluates the expression with no variables other than constants.
func (e *Expr[T]) Evaluate() (T, error) {
	return e.Eval(nil)
}

// Copier is implemented by codecs whose values are references, such as
// *big.Float. Evaluation copies the values of operands and variables with it,
// so results never share memory with a tree, its constants, or bindings.
type Copier[T any] interface {
	Copy(v T) T
}

// scope is the environment of one evaluation.
type scope[T any] struct {
	vars map[string]T
	cp   func(T) T
}

func newScope[T any](vars map[string]T, c Codec[T]) *scope[T] {
	s := scope[T]{vars: vars}
	if cp, ok := c.(Copier[T]); ok {
		s.cp = cp.Copy
	}
	return &s
}

func (s *scope[T]) value(v T) T {
	if s.cp == nil {
		return v
	}
	return s.cp(v)
}

// eval computes the value of a node.
func eval[T any](n *Node[T], env *scope[T]) (r T, err error) {
	switch n.tok.Kind {
	case KindOperand:
		return env.value(n.tok.Value), nil
	case KindVariable:
		v, ok := env.vars[n.tok.Label]
		if !ok {
			return r, &NameError{Name: n.tok.Label}
		}
		return env.value(v), nil
	case KindOperator, KindFunction:
		if len(n.kids) != n.slots() {
			return r, &TreeError{Label: n.tok.Label, Msg: "has " + strconv.Itoa(len(n.kids)) + " children but needs " + strconv.Itoa(n.slots())}
		}
		args := make(Params[T], len(n.kids))
		for i, k := range n.kids {
			args[i] = &Param[T]{n: k, env: env}
		}
		if n.tok.Kind == KindOperator {
			return n.tok.Op.Op.Evaluate(args)
		}
		return n.tok.Fn.Op.Evaluate(args)
	default:
		return r, &TreeError{Label: n.tok.Label, Msg: n.tok.Kind.String() + " token has no value"}
	}
}

// Param is a lazily evaluated argument to an operation. The argument's
// subtree is evaluated the first time its result is requested; later requests
// return the same result.
type Param[T any] struct {
	n   *Node[T]
	env *scope[T]

	done bool
	v    T
	err  error
}

// Result evaluates the argument if it has not been already and returns its
// value.
func (p *Param[T]) Result() (T, error) {
	if !p.done {
		p.v, p.err = eval(p.n, p.env)
		p.done = true
	}
	return p.v, p.err
}

// Node returns the argument's subtree.
func (p *Param[T]) Node() *Node[T] {
	return p.n
}

// Params is the argument list of an operation.
type Params[T any] []*Param[T]

// Len returns the number of arguments.
func (a Params[T]) Len() int {
	return len(a)
}

// Result returns the value of the i'th argument.
func (a Params[T]) Result(i int) (T, error) {
	return a[i].Result()
}

// Results evaluates every argument in order. It returns the first error
// encountered.
func (a Params[T]) Results() ([]T, error) {
	r := make([]T, len(a))
	for i, p := range a {
		v, err := p.Result()
		if err != nil {
			return nil, err
		}
		r[i] = v
	}
	return r, nil
}
