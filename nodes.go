package infix

import (
	"strconv"
	"strings"
)

// Node is a node in the tree of an expression. Operand and variable nodes are
// leaves; operator and function nodes have exactly as many children as they
// take arguments.
type Node[T any] struct {
	tok  Token[T]
	kids []*Node[T]
}

// Token returns the token the node wraps.
func (n *Node[T]) Token() Token[T] {
	return n.tok
}

// Children returns the node's children in argument order, or nil for leaves.
// The returned slice must not be modified.
func (n *Node[T]) Children() []*Node[T] {
	return n.kids
}

// slots is the number of children the node's token requires, or -1 if the
// token cannot appear in a tree.
func (n *Node[T]) slots() int {
	switch n.tok.Kind {
	case KindOperand, KindVariable:
		return 0
	case KindOperator:
		return n.tok.Op.slots()
	case KindFunction:
		return n.tok.Fn.Arity
	default:
		return -1
	}
}

// tree assembles postfix tokens into a tree and returns its root.
func tree[T any](postfix []Token[T]) (*Node[T], error) {
	stack := make([]*Node[T], 0, len(postfix))
	for _, tok := range postfix {
		n := &Node[T]{tok: tok}
		k := n.slots()
		switch {
		case k < 0:
			return nil, &TreeError{Label: tok.Label, Msg: tok.Kind.String() + " token has no place in a tree"}
		case k > len(stack):
			return nil, &TreeError{Label: tok.Label, Msg: "needs " + strconv.Itoa(k) + " operands but has " + strconv.Itoa(len(stack))}
		}
		if tok.Kind == KindOperator || tok.Kind == KindFunction {
			n.kids = make([]*Node[T], k)
			copy(n.kids, stack[len(stack)-k:])
			stack = stack[:len(stack)-k]
		}
		stack = append(stack, n)
	}
	switch len(stack) {
	case 0:
		return nil, &TreeError{Msg: "empty expression"}
	case 1:
		return stack[0], nil
	default:
		return nil, &TreeError{Label: stack[1].tok.Label, Msg: strconv.Itoa(len(stack)) + " disconnected subtrees"}
	}
}

func (n *Node[T]) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes the node in infix form. Parentheses are written only where
// parsing the output again would otherwise produce a different tree.
func (n *Node[T]) fmt(b *strings.Builder) {
	switch n.tok.Kind {
	case KindOperand, KindVariable:
		b.WriteString(n.tok.Label)
	case KindFunction:
		b.WriteString(n.tok.Label)
		b.WriteByte('(')
		for i, k := range n.kids {
			if i > 0 {
				b.WriteString(", ")
			}
			k.fmt(b)
		}
		b.WriteByte(')')
	case KindOperator:
		op := n.tok.Op
		switch op.Fixity {
		case Prefix:
			n.fmtprefix(b)
		case Postfix:
			k := n.kids[0]
			if k.tok.Kind == KindOperator && k.tok.Op.Fixity != Postfix {
				k.paren(b)
			} else {
				k.fmt(b)
			}
			b.WriteString(op.Label)
		case Infix, InfixRTL:
			l, r := n.kids[0], n.kids[1]
			// The left operand is grouped unless the parser would reduce
			// it on reaching this operator; the right operand is grouped
			// if this operator would be reduced on reaching it.
			if l.tok.Kind == KindOperator && l.tok.Op.Fixity != Postfix && !l.tok.Op.before(op) {
				l.paren(b)
			} else {
				l.fmt(b)
			}
			b.WriteByte(' ')
			b.WriteString(op.Label)
			b.WriteByte(' ')
			if r.tok.Kind == KindOperator && r.tok.Op.Fixity.binary() && op.before(r.tok.Op) {
				r.paren(b)
			} else {
				r.fmt(b)
			}
		default:
			panic("infix: invalid fixity in " + n.tok.String())
		}
	default:
		// Invalid nodes use invalid characters.
		b.WriteString("$" + n.tok.Label + "$")
	}
}

func (n *Node[T]) fmtprefix(b *strings.Builder) {
	label := n.tok.Label
	k := n.kids[0]
	sign := label == "+" || label == "-"
	b.WriteString(label)
	switch {
	case sign && k.tok.Kind == KindOperator && k.tok.Op.Fixity != Prefix:
		k.paren(b)
	case sign:
		k.fmt(b)
	case k.tok.Kind == KindOperator, k.tok.Kind == KindFunction:
		// Named prefix operators group any compound operand.
		k.paren(b)
	default:
		b.WriteByte(' ')
		k.fmt(b)
	}
}

func (n *Node[T]) paren(b *strings.Builder) {
	b.WriteByte('(')
	n.fmt(b)
	b.WriteByte(')')
}
