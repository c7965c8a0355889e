// Package infix parses and evaluates infix mathematical expressions over any
// numeric type.
//
// The package knows nothing about numbers itself. A Codec translates literal
// text to and from values, and a Dictionary holds the operators, functions,
// and constants that give the syntax its meaning. "2x^2 + sin x" works as
// soon as the dictionary has +, ^, * and a prefix sin; implicit
// multiplication uses whatever the dictionary registers as infix *.
//
// Expressions are built once by a Builder and can then be evaluated any number
// of times, concurrently if desired, with different variable bindings.
// Subpackages floats, bigfloats, and complexes provide ready-made domains.
package infix
