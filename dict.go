package infix

import (
	"reflect"
	"sort"
	"strconv"
)

// Dictionary is the registry of operators, functions, and constants
// available to expressions. Lookups are exact on labels. A Dictionary is not
// safe for concurrent use while it is being modified.
type Dictionary[T any] struct {
	prefix  map[string]*Operator[T]
	postfix map[string]*Operator[T]
	infix   map[string]*Operator[T]
	funcs   map[string]*Function[T]
	consts  map[string]T

	// gen counts modifications so that tokenizer patterns built from the
	// labels can be cached.
	gen uint64
}

// NewDictionary creates an empty dictionary.
func NewDictionary[T any]() *Dictionary[T] {
	return &Dictionary[T]{
		prefix:  make(map[string]*Operator[T]),
		postfix: make(map[string]*Operator[T]),
		infix:   make(map[string]*Operator[T]),
		funcs:   make(map[string]*Function[T]),
		consts:  make(map[string]T),
	}
}

// class returns the operator map for a fixity. Both infix fixities share a
// map, so an operator label is either left or right associative.
func (d *Dictionary[T]) class(f Fixity) map[string]*Operator[T] {
	switch f {
	case Prefix:
		return d.prefix
	case Postfix:
		return d.postfix
	case Infix, InfixRTL:
		return d.infix
	default:
		panic("infix: no operator class for fixity " + f.String())
	}
}

// AddOperator registers an operator, replacing any operator of the same
// label and class. Returns d for chaining.
func (d *Dictionary[T]) AddOperator(op *Operator[T]) *Dictionary[T] {
	if op == nil {
		panic("infix: nil operator")
	}
	d.class(op.Fixity)[op.Label] = op
	d.gen++
	return d
}

// RemoveOperator removes the operator with the given label and class. If
// fixity is AnyFixity, operators with the label are removed from every
// class.
func (d *Dictionary[T]) RemoveOperator(label string, fixity Fixity) *Dictionary[T] {
	if fixity == AnyFixity {
		delete(d.prefix, label)
		delete(d.postfix, label)
		delete(d.infix, label)
	} else {
		delete(d.class(fixity), label)
	}
	d.gen++
	return d
}

// Operator looks up an operator by label and class. With AnyFixity, the
// infix, prefix, and postfix classes are searched in that order.
func (d *Dictionary[T]) Operator(label string, fixity Fixity) (*Operator[T], bool) {
	if fixity == AnyFixity {
		for _, f := range [...]Fixity{Infix, Prefix, Postfix} {
			if op, ok := d.class(f)[label]; ok {
				return op, true
			}
		}
		return nil, false
	}
	op, ok := d.class(fixity)[label]
	return op, ok
}

// HasOperator returns whether an operator with the given label and class
// exists. With AnyFixity, every class is searched.
func (d *Dictionary[T]) HasOperator(label string, fixity Fixity) bool {
	_, ok := d.Operator(label, fixity)
	return ok
}

// AddFunction registers a function, replacing any function with the same
// label. Returns d for chaining.
func (d *Dictionary[T]) AddFunction(fn *Function[T]) *Dictionary[T] {
	if fn == nil {
		panic("infix: nil function")
	}
	d.funcs[fn.Label] = fn
	d.gen++
	return d
}

// RemoveFunction removes a function by label.
func (d *Dictionary[T]) RemoveFunction(label string) *Dictionary[T] {
	delete(d.funcs, label)
	d.gen++
	return d
}

// Function looks up a function by label.
func (d *Dictionary[T]) Function(label string) (*Function[T], bool) {
	fn, ok := d.funcs[label]
	return fn, ok
}

// HasFunction returns whether a function with the given label exists.
func (d *Dictionary[T]) HasFunction(label string) bool {
	_, ok := d.funcs[label]
	return ok
}

// AddConstant registers a named constant. Constants are visible to every
// expression built afterward as variables which bindings may override.
// Panics if val is a nil pointer, map, slice, function, or interface.
func (d *Dictionary[T]) AddConstant(label string, val T) *Dictionary[T] {
	if isnil(val) {
		panic("infix: nil constant " + strconv.Quote(label))
	}
	d.consts[label] = val
	return d
}

// RemoveConstant removes a constant by label.
func (d *Dictionary[T]) RemoveConstant(label string) *Dictionary[T] {
	delete(d.consts, label)
	return d
}

// Constant looks up a constant by label.
func (d *Dictionary[T]) Constant(label string) (T, bool) {
	v, ok := d.consts[label]
	return v, ok
}

// HasConstant returns whether a constant with the given label exists.
func (d *Dictionary[T]) HasConstant(label string) bool {
	_, ok := d.consts[label]
	return ok
}

// Constants returns a copy of the constants.
func (d *Dictionary[T]) Constants() map[string]T {
	m := make(map[string]T, len(d.consts))
	for k, v := range d.consts {
		m[k] = v
	}
	return m
}

// Executables returns the labels of all operators and functions without
// duplicates, longest first. Labels of equal length are sorted.
func (d *Dictionary[T]) Executables() []string {
	seen := make(map[string]bool, len(d.prefix)+len(d.postfix)+len(d.infix)+len(d.funcs))
	var r []string
	add := func(label string) {
		if label == "" || seen[label] {
			return
		}
		seen[label] = true
		r = append(r, label)
	}
	for k := range d.prefix {
		add(k)
	}
	for k := range d.postfix {
		add(k)
	}
	for k := range d.infix {
		add(k)
	}
	for k := range d.funcs {
		add(k)
	}
	sort.Slice(r, func(i, j int) bool {
		if len(r[i]) != len(r[j]) {
			return len(r[i]) > len(r[j])
		}
		return r[i] < r[j]
	})
	return r
}

// Clone returns an independent copy of d. Operators and functions are shared,
// since they are immutable.
func (d *Dictionary[T]) Clone() *Dictionary[T] {
	n := NewDictionary[T]()
	for k, v := range d.prefix {
		n.prefix[k] = v
	}
	for k, v := range d.postfix {
		n.postfix[k] = v
	}
	for k, v := range d.infix {
		n.infix[k] = v
	}
	for k, v := range d.funcs {
		n.funcs[k] = v
	}
	for k, v := range d.consts {
		n.consts[k] = v
	}
	return n
}

func isnil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
