package infix

import "regexp"

// Builder builds expressions from text using a dictionary and a codec. A
// Builder is not safe for concurrent use, but the expressions it builds are.
type Builder[T any] struct {
	dict  *Dictionary[T]
	codec Codec[T]
	init  []func(*Dictionary[T])

	// lits are the codec's compiled literal patterns.
	lits    []*regexp.Regexp
	litsErr error
	// pats caches compiled patterns for the dictionary generation in gen.
	pats *patterns
	pd   *Dictionary[T]
	gen  uint64
}

// NewBuilder creates a builder with an empty dictionary, then calls each
// initializer on the dictionary in order. Initializers are kept so that
// Initialize can apply them again.
func NewBuilder[T any](codec Codec[T], init ...func(*Dictionary[T])) *Builder[T] {
	b := Builder[T]{
		dict:  NewDictionary[T](),
		codec: codec,
		init:  init,
	}
	b.lits, b.litsErr = compileLits(codec.Patterns())
	b.Initialize()
	return &b
}

// Dictionary returns the builder's dictionary. Changes to it affect
// expressions built afterward.
func (b *Builder[T]) Dictionary() *Dictionary[T] {
	return b.dict
}

// Codec returns the builder's codec.
func (b *Builder[T]) Codec() Codec[T] {
	return b.codec
}

// Reset replaces the builder's dictionary with an empty one.
func (b *Builder[T]) Reset() *Builder[T] {
	b.dict = NewDictionary[T]()
	return b
}

// Initialize applies the builder's initializers to its current dictionary.
func (b *Builder[T]) Initialize() *Builder[T] {
	for _, f := range b.init {
		f(b.dict)
	}
	return b
}

// Build tokenizes, parses, and assembles an expression from src. Errors
// resulting from invalid input implement InputError.
func (b *Builder[T]) Build(src string) (*Expr[T], error) {
	if b.litsErr != nil {
		return nil, b.litsErr
	}
	toks, err := lex(src, b.dict, b.codec, b.patterns())
	if err != nil {
		return nil, err
	}
	postfix, err := parse(toks)
	if err != nil {
		return nil, err
	}
	root, err := tree(postfix)
	if err != nil {
		return nil, err
	}
	return newExpr(root, b.dict.Constants(), b.codec), nil
}

// EvalString is a shortcut to build and evaluate an expression.
func (b *Builder[T]) EvalString(src string, vars map[string]T) (T, error) {
	e, err := b.Build(src)
	if err != nil {
		var zero T
		return zero, err
	}
	return e.Eval(vars)
}

// patterns returns patterns matching the current dictionary's labels.
func (b *Builder[T]) patterns() *patterns {
	if b.pats == nil || b.pd != b.dict || b.gen != b.dict.gen {
		b.pats = &patterns{exec: compileExec(b.dict.Executables()), lits: b.lits}
		b.pd = b.dict
		b.gen = b.dict.gen
	}
	return b.pats
}
