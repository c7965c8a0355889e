package infix

import (
	"github.com/edwingeng/deque"
)

// parser converts a token sequence to postfix order. Both stacks hold
// interface values: ops holds Token[T] values for operators, functions, and
// open brackets; calls holds one *call for each function whose argument list
// is open.
type parser[T any] struct {
	out   []Token[T]
	ops   deque.Deque
	calls deque.Deque
	// last is the previous token, or nil at the start. After a function
	// token, last is the function rather than its open bracket.
	last *Token[T]
}

// call counts the arguments of an open function call.
type call struct {
	// args is the number of arguments ended by commas.
	args int
	// seen is whether the current argument has any tokens.
	seen bool
}

// parse converts tokens in infix order to postfix order, checking that the
// sequence is well formed. Variadic functions in the output are bound to the
// number of arguments they were called with.
func parse[T any](toks []Token[T]) ([]Token[T], error) {
	p := parser[T]{
		out:   make([]Token[T], 0, len(toks)),
		ops:   deque.NewDeque(),
		calls: deque.NewDeque(),
	}
	for i := 0; i < len(toks); i++ {
		tok := &toks[i]
		if tok.Kind != KindSeparator || tok.Sep == OpenBracket {
			p.mark()
		}
		var err error
		switch tok.Kind {
		case KindOperand, KindVariable:
			p.out = append(p.out, *tok)
		case KindFunction:
			// The function's own open bracket marks the start of its
			// arguments, so consume it here.
			if i+1 >= len(toks) || !toks[i+1].is(OpenBracket) {
				return nil, &BracketError{Col: tok.Pos, Func: tok.Label}
			}
			i++
			p.ops.PushBack(*tok)
			p.calls.PushBack(&call{})
		case KindOperator:
			err = p.operator(tok)
		case KindSeparator:
			switch tok.Sep {
			case OpenBracket:
				p.ops.PushBack(*tok)
			case CloseBracket:
				err = p.close(tok)
			case Comma:
				err = p.comma(tok)
			default:
				panic("infix: invalid separator " + tok.String())
			}
		default:
			panic("infix: unknown token " + tok.String())
		}
		if err != nil {
			return nil, err
		}
		p.last = tok
	}
	return p.finish()
}

// mark records that the innermost open call has a token in its current
// argument.
func (p *parser[T]) mark() {
	if p.calls.Empty() {
		return
	}
	p.calls.Back().(*call).seen = true
}

// dangling returns whether the previous token is an operator still waiting
// for its right operand.
func (p *parser[T]) dangling() bool {
	return p.last != nil && p.last.Kind == KindOperator && p.last.Op.Fixity != Postfix
}

func (p *parser[T]) operator(tok *Token[T]) error {
	op := tok.Op
	switch op.Fixity {
	case Prefix:
		// A prefix operator stands where an operand is expected, so every
		// operator on the stack is still waiting for it.
		p.ops.PushBack(*tok)
	case Postfix:
		if !p.last.endsOperand() {
			return &OperatorError{Col: tok.Pos, Operator: op.Label, Fixity: op.Fixity}
		}
		p.out = append(p.out, *tok)
	case Infix, InfixRTL:
		if !p.last.endsOperand() {
			return &OperatorError{Col: tok.Pos, Operator: op.Label, Fixity: op.Fixity}
		}
		for !p.ops.Empty() {
			top := p.ops.Back().(Token[T])
			if top.Kind != KindOperator || !top.Op.before(op) {
				break
			}
			p.ops.PopBack()
			p.out = append(p.out, top)
		}
		p.ops.PushBack(*tok)
	default:
		panic("infix: invalid fixity in " + tok.String())
	}
	return nil
}

func (p *parser[T]) close(tok *Token[T]) error {
	switch {
	case p.last.is(OpenBracket), p.dangling():
		return &EmptyExpressionError{Col: tok.Pos, End: tok.Label}
	case p.last.is(Comma):
		return &SeparatorError{Col: p.last.Pos, Sep: p.last.Label, Empty: true}
	}
	for !p.ops.Empty() {
		top := p.ops.PopBack().(Token[T])
		switch top.Kind {
		case KindOperator:
			p.out = append(p.out, top)
		case KindFunction:
			c := p.calls.PopBack().(*call)
			n := c.args
			if c.seen {
				n++
			}
			switch fn := top.Fn; {
			case fn.Arity == Variadic:
				top.Fn = fn.bind(n)
			case fn.Arity != n:
				return &CallError{Col: tok.Pos, Func: fn.Label, Len: n, Want: fn.Arity}
			}
			p.out = append(p.out, top)
			return nil
		case KindSeparator:
			// A grouping bracket. A prefix operator applied to the group
			// takes it as its whole operand.
			if !p.ops.Empty() {
				under := p.ops.Back().(Token[T])
				if under.Kind == KindOperator && under.Op.Fixity == Prefix {
					p.ops.PopBack()
					p.out = append(p.out, under)
				}
			}
			return nil
		default:
			panic("infix: unexpected token on operator stack: " + top.String())
		}
	}
	return &BracketError{Col: tok.Pos, Close: true}
}

func (p *parser[T]) comma(tok *Token[T]) error {
	switch {
	case p.last == nil:
		return &SeparatorError{Col: tok.Pos, Sep: tok.Label}
	case p.last.Kind == KindFunction, p.last.is(Comma):
		return &SeparatorError{Col: tok.Pos, Sep: tok.Label, Empty: true}
	case p.dangling():
		return &EmptyExpressionError{Col: tok.Pos, End: tok.Label}
	}
	for !p.ops.Empty() {
		top := p.ops.Back().(Token[T])
		if top.Kind == KindFunction {
			c := p.calls.Back().(*call)
			c.args++
			c.seen = false
			return nil
		}
		if top.Kind != KindOperator {
			break
		}
		p.ops.PopBack()
		p.out = append(p.out, top)
	}
	return &SeparatorError{Col: tok.Pos, Sep: tok.Label}
}

func (p *parser[T]) finish() ([]Token[T], error) {
	if p.dangling() {
		return nil, &EmptyExpressionError{Col: p.last.Pos}
	}
	for !p.ops.Empty() {
		top := p.ops.PopBack().(Token[T])
		if top.Kind != KindOperator {
			// An open bracket or a function whose arguments never closed.
			return nil, &BracketError{Col: top.Pos}
		}
		p.out = append(p.out, top)
	}
	return p.out, nil
}
