package infix

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Codec translates between literal text and values.
type Codec[T any] interface {
	// Operand converts literal text matched by one of the codec's patterns
	// to a value. Malformed text produces a default value rather than an
	// error; the patterns are responsible for matching only valid literals.
	Operand(text string) T
	// Format converts a value to text.
	Format(v T) string
	// Patterns returns regular expressions matching literals, in priority
	// order. The tokenizer anchors each pattern at the current position.
	Patterns() []string
}

// DefaultPatterns are literal patterns suitable for decimal numbers with
// optional exponents. Scientific notation is tried first. Signs are never
// part of a literal; they are prefix operators.
var DefaultPatterns = []string{
	`\d*\.?\d+e[-+]?\d+`,
	`\d*\.?\d+`,
}

var (
	varpat   = regexp.MustCompile(`^[a-zA-Z]+[0-9]*[a-zA-Z]*`)
	spacepat = regexp.MustCompile(`^\s+`)
)

// patterns holds the compiled matchers derived from a dictionary and codec.
type patterns struct {
	// exec matches operator and function labels, longest first. It is nil
	// when there are none.
	exec *regexp.Regexp
	// lits matches literals in codec priority order.
	lits []*regexp.Regexp
}

func compileExec(labels []string) *regexp.Regexp {
	if len(labels) == 0 {
		return nil
	}
	q := make([]string, len(labels))
	for i, s := range labels {
		q[i] = regexp.QuoteMeta(s)
	}
	return regexp.MustCompile(`^(?:` + strings.Join(q, "|") + `)`)
}

func compileLits(pats []string) ([]*regexp.Regexp, error) {
	r := make([]*regexp.Regexp, 0, len(pats))
	for _, p := range pats {
		re, err := regexp.Compile(`^(?:` + p + `)`)
		if err != nil {
			return nil, err
		}
		r = append(r, re)
	}
	return r, nil
}

type lexer[T any] struct {
	src   string
	dict  *Dictionary[T]
	codec Codec[T]
	pats  *patterns

	toks []Token[T]
	// col is the 1-based rune column of the current position.
	col int
	// unary is whether a sign at the current position is a prefix operator.
	unary bool
}

// lex tokenizes src. Implicit multiplications are inserted as infix * tokens.
func lex[T any](src string, d *Dictionary[T], c Codec[T], p *patterns) ([]Token[T], error) {
	if strings.TrimSpace(src) == "" {
		return nil, &LexError{Col: 1, Kind: "blank"}
	}
	l := lexer[T]{
		src:   src,
		dict:  d,
		codec: c,
		pats:  p,
		col:   1,
		unary: true,
	}
	for i := 0; i < len(src); {
		n, err := l.next(src[i:])
		if err != nil {
			return nil, err
		}
		l.col += utf8.RuneCountInString(src[i : i+n])
		i += n
	}
	return l.toks, nil
}

// prev returns the last emitted token, or nil if there is none.
func (l *lexer[T]) prev() *Token[T] {
	if len(l.toks) == 0 {
		return nil
	}
	return &l.toks[len(l.toks)-1]
}

func (l *lexer[T]) emit(tok Token[T]) {
	l.toks = append(l.toks, tok)
}

// implicit inserts a multiplication if the previous token ends an operand.
func (l *lexer[T]) implicit() error {
	if !l.prev().endsOperand() {
		return nil
	}
	op, ok := l.dict.Operator("*", Infix)
	if !ok {
		return &LexError{Col: l.col, Text: "*", Kind: "symbol"}
	}
	l.emit(operatorToken(op, l.col))
	return nil
}

// next scans one token or run of whitespace from the start of rest and
// returns the number of bytes consumed.
func (l *lexer[T]) next(rest string) (int, error) {
	switch rest[0] {
	case '(':
		if err := l.implicit(); err != nil {
			return 0, err
		}
		l.emit(separatorToken[T](OpenBracket, l.col))
		l.unary = true
		return 1, nil
	case ')':
		l.emit(separatorToken[T](CloseBracket, l.col))
		l.unary = false
		return 1, nil
	case ',':
		l.emit(separatorToken[T](Comma, l.col))
		l.unary = true
		return 1, nil
	case '+', '-':
		if !l.unary {
			break
		}
		if op, ok := l.dict.Operator(rest[:1], Prefix); ok {
			l.emit(operatorToken(op, l.col))
			return 1, nil
		}
	}

	if l.pats.exec != nil {
		if m := l.pats.exec.FindString(rest); m != "" {
			return len(m), l.executable(m)
		}
	}

	for _, re := range l.pats.lits {
		m := re.FindString(rest)
		if m == "" {
			continue
		}
		if err := l.implicit(); err != nil {
			return 0, err
		}
		v := l.codec.Operand(m)
		l.emit(operandToken(v, l.codec.Format(v), l.col))
		l.unary = false
		return len(m), nil
	}

	if m := varpat.FindString(rest); m != "" {
		if err := l.implicit(); err != nil {
			return 0, err
		}
		l.emit(variableToken[T](m, l.col))
		l.unary = false
		return len(m), nil
	}

	if m := spacepat.FindString(rest); m != "" {
		return len(m), nil
	}

	_, sz := utf8.DecodeRuneInString(rest)
	return 0, &LexError{Col: l.col, Text: rest[:sz]}
}

// executable emits the function or operator with the given label.
func (l *lexer[T]) executable(label string) error {
	if fn, ok := l.dict.Function(label); ok {
		if err := l.implicit(); err != nil {
			return err
		}
		l.emit(functionToken(fn, l.col))
		l.unary = false
		return nil
	}
	op := l.operator(label)
	if op == nil {
		return &LexError{Col: l.col, Text: label, Kind: "symbol"}
	}
	if op.Fixity == Prefix {
		if err := l.implicit(); err != nil {
			return err
		}
	}
	l.emit(operatorToken(op, l.col))
	l.unary = op.Fixity != Postfix
	return nil
}

// operator resolves an operator label according to the previous token.
// Postfix and infix readings are preferred after an operand, prefix
// otherwise. If the preferred classes have no such operator, any class is
// accepted so that the parser can report the misplaced operator.
func (l *lexer[T]) operator(label string) *Operator[T] {
	d := l.dict
	if l.prev().endsOperand() {
		if op, ok := d.Operator(label, Postfix); ok {
			return op
		}
		if op, ok := d.Operator(label, Infix); ok {
			return op
		}
	}
	if op, ok := d.Operator(label, Prefix); ok {
		return op
	}
	if op, ok := d.Operator(label, Postfix); ok {
		return op
	}
	if op, ok := d.Operator(label, Infix); ok {
		return op
	}
	return nil
}
