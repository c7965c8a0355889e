package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/infix"
)

func parseBinding(s string) (binding, error) {
	d := strings.SplitN(s, "=", 2)
	if len(d) != 2 {
		return binding{}, fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
	}
	return binding{name: strings.TrimSpace(d[0]), src: strings.TrimSpace(d[1])}, nil
}

// loadBindings reads a YAML mapping of variable names to expressions. The
// definitions are returned in document order.
func loadBindings(data []byte) ([]binding, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	m := doc.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: bindings must map names to expressions", m.Line)
	}
	r := make([]binding, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: definition of %s is not an expression", v.Line, k.Value)
		}
		r = append(r, binding{name: k.Value, src: v.Value})
	}
	return r, nil
}

// run evaluates each expression in srcs and writes results to w. Errors in
// individual expressions are written to w; only failures to define variables
// are returned.
func run[T any](b *infix.Builder[T], cfg *config, srcs []string, w io.Writer) error {
	vars := make(map[string]T, len(cfg.given))
	for _, g := range cfg.given {
		v, err := b.EvalString(g.src, vars)
		if err != nil {
			return fmt.Errorf("setting %s: %w", g.name, err)
		}
		vars[g.name] = v
	}
	echo := color.New(color.FgCyan)
	bad := color.New(color.FgRed)
	codec := b.Codec()
	for _, src := range srcs {
		e, err := b.Build(src)
		if err != nil {
			report(w, bad, src, err)
			continue
		}
		if cfg.echo {
			echo.Fprintf(w, "%v : ", e)
		}
		r, err := e.Eval(vars)
		if err != nil {
			report(w, bad, src, err)
			continue
		}
		fmt.Fprintln(w, codec.Format(r))
	}
	return nil
}

// report writes an error. Errors with positions in single-line sources get a
// caret under the offending column.
func report(w io.Writer, c *color.Color, src string, err error) {
	var ie infix.InputError
	if errors.As(err, &ie) && ie.Pos() > 0 && !strings.Contains(src, "\n") {
		fmt.Fprintln(w, src)
		fmt.Fprintln(w, strings.Repeat(" ", ie.Pos()-1)+"^")
	}
	c.Fprintln(w, err)
}
