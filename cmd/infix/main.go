// Command infix evaluates infix expressions.
//
// Usage:
//
//	infix [-d float|big|complex] [-p prec] [-g name=value]... [-f bindings.yaml] [-i file] [-n] [-e] [expr...]
//
// Expressions are taken from the arguments, the file named by -i, or standard
// input if neither is given. With -n, each line of input is a separate
// expression. Variables are defined with -g or in a YAML file mapping names to
// expressions; each definition may refer to those before it.
package main

import (
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"

	"github.com/zephyrtronium/infix/bigfloats"
	"github.com/zephyrtronium/infix/complexes"
	"github.com/zephyrtronium/infix/floats"
)

type config struct {
	domain string
	prec   uint
	// given is the list of definitions, in order, from -f then -g.
	given    []binding
	bindings string
	inname   string
	nl       bool
	echo     bool
}

type binding struct {
	name, src string
}

func main() {
	log.SetFlags(0)
	cfg := config{domain: "float", prec: bigfloats.DefaultPrec}
	var with []binding
	opts, optind, err := getopt.Getopts(os.Args, "d:p:g:f:i:ne")
	if err != nil {
		log.Fatalln(err)
	}
	for _, opt := range opts {
		switch opt.Option {
		case 'd':
			cfg.domain = opt.Value
		case 'p':
			p, err := strconv.ParseUint(opt.Value, 10, 32)
			if err != nil || p == 0 {
				log.Fatalf("precision (%s) must be a positive integer", opt.Value)
			}
			cfg.prec = uint(p)
		case 'g':
			b, err := parseBinding(opt.Value)
			if err != nil {
				log.Fatalln(err)
			}
			with = append(with, b)
		case 'f':
			cfg.bindings = opt.Value
		case 'i':
			cfg.inname = opt.Value
		case 'n':
			cfg.nl = true
		case 'e':
			cfg.echo = true
		}
	}
	args := os.Args[optind:]

	if cfg.bindings != "" {
		data, err := os.ReadFile(cfg.bindings)
		if err != nil {
			log.Fatalln(err)
		}
		cfg.given, err = loadBindings(data)
		if err != nil {
			log.Fatalf("reading %s: %v", cfg.bindings, err)
		}
	}
	cfg.given = append(cfg.given, with...)

	var srcs []string
	if cfg.inname != "" || len(args) == 0 {
		text, err := readInput(cfg.inname)
		if err != nil {
			log.Fatalln(err)
		}
		srcs = append(srcs, split(text, cfg.nl)...)
	}
	srcs = append(srcs, args...)

	switch cfg.domain {
	case "float":
		err = run(floats.New(), &cfg, srcs, os.Stdout)
	case "big":
		err = run(bigfloats.New(cfg.prec), &cfg, srcs, os.Stdout)
	case "complex":
		err = run(complexes.New(), &cfg, srcs, os.Stdout)
	default:
		log.Fatalf("unknown domain %q (want float, big, or complex)", cfg.domain)
	}
	if err != nil {
		log.Fatalln(err)
	}
}

func readInput(inname string) (string, error) {
	var f io.Reader = os.Stdin
	if inname != "" && inname != "-" {
		in, err := os.Open(inname)
		if err != nil {
			return "", err
		}
		defer in.Close()
		f = in
	}
	b, err := io.ReadAll(f)
	return string(b), err
}

// split divides input text into expressions. Blank expressions are dropped.
func split(text string, nl bool) []string {
	var r []string
	if !nl {
		if strings.TrimSpace(text) != "" {
			r = append(r, text)
		}
		return r
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			r = append(r, line)
		}
	}
	return r
}
