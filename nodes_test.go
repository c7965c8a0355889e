package infix

import (
	"errors"
	"reflect"
	"testing"
)

func buildTree(t *testing.T, src string) *Node[int] {
	t.Helper()
	toks, err := lexString(src)
	if err != nil {
		t.Fatalf("scanning %q: %v", src, err)
	}
	postfix, err := parse(toks)
	if err != nil {
		t.Fatalf("parsing %q: %v", src, err)
	}
	root, err := tree(postfix)
	if err != nil {
		t.Fatalf("building %q: %v", src, err)
	}
	return root
}

func TestTree(t *testing.T) {
	root := buildTree(t, "f(1+2, -x)")
	if tok := root.Token(); tok.Kind != KindFunction || tok.Label != "f" {
		t.Fatalf("wrong root %v", tok)
	}
	kids := root.Children()
	if len(kids) != 2 {
		t.Fatalf("want 2 children, got %d", len(kids))
	}
	if got := kids[0].Token(); got.Label != "+" || got.Op.Fixity != Infix {
		t.Errorf("wrong first argument %v", got)
	}
	if got := kids[0].Children(); len(got) != 2 || got[0].Token().Value != 1 || got[1].Token().Value != 2 {
		t.Errorf("wrong operands of +: %v", got)
	}
	neg := kids[1]
	if got := neg.Token(); got.Label != "-" || got.Op.Fixity != Prefix {
		t.Errorf("wrong second argument %v", got)
	}
	if got := neg.Children(); len(got) != 1 || got[0].Token().Kind != KindVariable {
		t.Errorf("wrong operand of -: %v", got)
	}
	if got := neg.Children()[0].Children(); got != nil {
		t.Errorf("leaf has children %v", got)
	}
}

func TestTreeErrors(t *testing.T) {
	d := testDict()
	add, _ := d.Operator("+", Infix)
	cases := []struct {
		name    string
		postfix []Token[int]
		want    *TreeError
	}{
		{
			name: "empty",
			want: &TreeError{Msg: "empty expression"},
		},
		{
			name:    "missing-operand",
			postfix: []Token[int]{operandToken(1, "1", 1), operatorToken(add, 2)},
			want:    &TreeError{Label: "+", Msg: "needs 2 operands but has 1"},
		},
		{
			name:    "disconnected",
			postfix: []Token[int]{operandToken(1, "1", 1), operandToken(2, "2", 3)},
			want:    &TreeError{Label: "2", Msg: "2 disconnected subtrees"},
		},
		{
			name:    "separator",
			postfix: []Token[int]{separatorToken[int](OpenBracket, 1)},
			want:    &TreeError{Label: "(", Msg: "Separator token has no place in a tree"},
		},
	}
	for _, c := range cases {
		root, err := tree(c.postfix)
		if err == nil {
			t.Errorf("%s: expected error but got %v", c.name, root)
			continue
		}
		if !errors.Is(err, ErrTree) {
			t.Errorf("%s: %v is not a tree error", c.name, err)
		}
		if !reflect.DeepEqual(err, c.want) {
			t.Errorf("%s: want %v, got %v", c.name, c.want, err)
		}
	}
}

func TestEvalMalformed(t *testing.T) {
	d := testDict()
	add, _ := d.Operator("+", Infix)
	n := &Node[int]{
		tok:  operatorToken(add, 1),
		kids: []*Node[int]{{tok: operandToken(1, "1", 1)}},
	}
	_, err := eval(n, &scope[int]{})
	if !errors.Is(err, ErrTree) {
		t.Errorf("want tree error, got %v", err)
	}
	_, err = eval(&Node[int]{tok: separatorToken[int](Comma, 1)}, &scope[int]{})
	if !errors.Is(err, ErrTree) {
		t.Errorf("want tree error, got %v", err)
	}
}

func TestNodeString(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1", "1"},
		{"x", "x"},
		{"1+2*3", "1 + 2 * 3"},
		{"(1+2)*3", "(1 + 2) * 3"},
		{"1-(2-3)", "1 - (2 - 3)"},
		{"(1-2)-3", "1 - 2 - 3"},
		{"1-(2+3)", "1 - (2 + 3)"},
		{"2^3^2", "2 ^ 3 ^ 2"},
		{"(2^3)^2", "(2 ^ 3) ^ 2"},
		{"-2^2", "-2 ^ 2"},
		{"-(2^2)", "-(2 ^ 2)"},
		{"2*-3", "2 * -3"},
		{"1--1", "1 - -1"},
		{"(-3)!", "(-3)!"},
		{"-3!", "-(3!)"},
		{"3!!", "3!!"},
		{"(1+2)!", "(1 + 2)!"},
		{"sq 2", "sq 2"},
		{"sq(1+2)", "sq(1 + 2)"},
		{"sq sq 2", "sq(sq 2)"},
		{"sq -2", "sq(-2)"},
		{"sq g(1)", "sq(g(1))"},
		{"sq 3!", "sq(3!)"},
		{"-g(1)", "-g(1)"},
		{"-sq 2", "-sq 2"},
		{"g(1, 2+3)", "g(1, 2 + 3)"},
		{"g()", "g()"},
		{"2x", "2 * x"},
		{"(1)(2)", "1 * 2"},
	}
	for _, c := range cases {
		root := buildTree(t, c.src)
		got := root.String()
		if got != c.want {
			t.Errorf("formatting %q: want %q, got %q", c.src, c.want, got)
			continue
		}
		again := buildTree(t, got)
		if !sameTree(root, again) {
			t.Errorf("formatting %q: %q builds a different tree", c.src, got)
		}
	}
}

func TestNodeStringInvalid(t *testing.T) {
	n := &Node[int]{tok: separatorToken[int](Comma, 1)}
	if got, want := n.String(), "$,$"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

// sameTree compares the shape and labels of two trees.
func sameTree(a, b *Node[int]) bool {
	if a.tok.Kind != b.tok.Kind || a.tok.Label != b.tok.Label || len(a.kids) != len(b.kids) {
		return false
	}
	if a.tok.Kind == KindOperator && a.tok.Op.Fixity != b.tok.Op.Fixity {
		return false
	}
	for i := range a.kids {
		if !sameTree(a.kids[i], b.kids[i]) {
			return false
		}
	}
	return true
}
