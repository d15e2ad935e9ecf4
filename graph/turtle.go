package graph

import (
	"fmt"
	"io"
	"strings"

	"github.com/c360studio/semvocab/vocabulary"
)

// ReadTurtle parses a Turtle document into g and records its @prefix
// bindings in ns. It supports the subset metadata overlay files use:
// prefix directives, IRIs, prefixed names, blank node labels, literals
// with language tags or datatypes, predicate lists (;), object lists (,),
// and comments. Collections and anonymous blank node property lists are
// not accepted.
func ReadTurtle(r io.Reader, g *Graph, ns *Namespaces) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read turtle: %w", err)
	}
	p := &turtleParser{input: string(data), g: g, ns: ns}
	return p.run()
}

type turtleParser struct {
	input string
	pos   int
	line  int
	g     *Graph
	ns    *Namespaces
}

func (p *turtleParser) run() error {
	p.line = 1
	for {
		p.skipWS()
		if p.eof() {
			return nil
		}
		if err := p.statement(); err != nil {
			return fmt.Errorf("turtle line %d: %w", p.line, err)
		}
	}
}

func (p *turtleParser) statement() error {
	if p.hasKeyword("@prefix") || p.hasKeyword("PREFIX") {
		return p.prefixDirective()
	}
	subject, err := p.term()
	if err != nil {
		return err
	}
	if _, ok := subject.(Literal); ok {
		return fmt.Errorf("literal %s cannot be a subject", subject)
	}
	for {
		p.skipWS()
		pred, err := p.predicate()
		if err != nil {
			return err
		}
		for {
			p.skipWS()
			object, err := p.term()
			if err != nil {
				return err
			}
			p.g.Assert(subject, pred, object)
			p.skipWS()
			if !p.consume(',') {
				break
			}
		}
		if p.consume(';') {
			p.skipWS()
			// Trailing semicolon before the final dot is legal Turtle.
			if p.peek() == '.' {
				break
			}
			continue
		}
		break
	}
	p.skipWS()
	if !p.consume('.') {
		return fmt.Errorf("expected '.' near offset %d", p.pos)
	}
	return nil
}

func (p *turtleParser) prefixDirective() error {
	sparqlForm := p.hasKeyword("PREFIX")
	if sparqlForm {
		p.pos += len("PREFIX")
	} else {
		p.pos += len("@prefix")
	}
	p.skipWS()
	start := p.pos
	for !p.eof() && p.peek() != ':' {
		p.pos++
	}
	if p.eof() {
		return fmt.Errorf("unterminated prefix directive")
	}
	prefix := strings.TrimSpace(p.input[start:p.pos])
	p.pos++ // ':'
	p.skipWS()
	if p.peek() != '<' {
		return fmt.Errorf("prefix directive for %q missing IRI", prefix)
	}
	iri, err := p.iriRef()
	if err != nil {
		return err
	}
	p.ns.Bind(prefix, string(iri))
	p.skipWS()
	// The Turtle form ends with a dot, the SPARQL form does not.
	if !sparqlForm && !p.consume('.') {
		return fmt.Errorf("@prefix directive for %q missing terminating '.'", prefix)
	}
	return nil
}

func (p *turtleParser) predicate() (IRI, error) {
	if p.peek() == 'a' && p.isTermEnd(p.pos+1) {
		p.pos++
		return IRI(vocabulary.RdfType), nil
	}
	t, err := p.term()
	if err != nil {
		return "", err
	}
	iri, ok := t.(IRI)
	if !ok {
		return "", fmt.Errorf("predicate %s is not an IRI", t)
	}
	return iri, nil
}

func (p *turtleParser) term() (Term, error) {
	switch {
	case p.eof():
		return nil, fmt.Errorf("unexpected end of input")
	case p.peek() == '<':
		return p.iriRef()
	case p.peek() == '"':
		return p.literal()
	case p.peek() == '[' || p.peek() == '(':
		return nil, fmt.Errorf("collections and blank node property lists are not supported in overlay files")
	case strings.HasPrefix(p.input[p.pos:], "_:"):
		p.pos += 2
		start := p.pos
		for !p.eof() && !p.isTermEnd(p.pos) {
			p.pos++
		}
		return BlankNode(p.input[start:p.pos]), nil
	default:
		start := p.pos
		for !p.eof() && !p.isTermEnd(p.pos) {
			p.pos++
		}
		name := p.input[start:p.pos]
		if name == "" {
			return nil, fmt.Errorf("unexpected character %q", p.peek())
		}
		return p.ns.Expand(name)
	}
}

func (p *turtleParser) iriRef() (IRI, error) {
	start := p.pos
	p.pos++ // '<'
	for !p.eof() && p.peek() != '>' {
		if p.peek() == '\n' {
			return "", fmt.Errorf("unterminated IRI %q", p.input[start:p.pos])
		}
		p.pos++
	}
	if p.eof() {
		return "", fmt.Errorf("unterminated IRI %q", p.input[start:p.pos])
	}
	iri := p.input[start+1 : p.pos]
	p.pos++ // '>'
	return IRI(iri), nil
}

func (p *turtleParser) literal() (Term, error) {
	start := p.pos
	escaped := false
	p.pos++ // opening quote
	for !p.eof() {
		c := p.peek()
		if escaped {
			escaped = false
		} else if c == '\\' {
			escaped = true
		} else if c == '"' {
			p.pos++
			break
		} else if c == '\n' {
			p.line++
		}
		p.pos++
	}
	// Optional @lang or ^^datatype suffix.
	if strings.HasPrefix(p.input[p.pos:], "^^<") {
		p.pos += 3
		for !p.eof() && p.peek() != '>' {
			p.pos++
		}
		if p.eof() {
			return nil, fmt.Errorf("unterminated datatype IRI in literal")
		}
		p.pos++
	} else {
		for !p.eof() && !p.isTermEnd(p.pos) {
			p.pos++
		}
	}
	t, err := p.ns.ResolveTerm(p.input[start:p.pos])
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (p *turtleParser) skipWS() {
	for !p.eof() {
		c := p.peek()
		switch {
		case c == '\n':
			p.line++
			p.pos++
		case c == ' ' || c == '\t' || c == '\r':
			p.pos++
		case c == '#':
			for !p.eof() && p.peek() != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

func (p *turtleParser) isTermEnd(i int) bool {
	if i >= len(p.input) {
		return true
	}
	switch p.input[i] {
	case ' ', '\t', '\r', '\n', ';', ',', '.', '#':
		return true
	}
	return false
}

func (p *turtleParser) hasKeyword(kw string) bool {
	return strings.HasPrefix(p.input[p.pos:], kw)
}

func (p *turtleParser) peek() byte {
	return p.input[p.pos]
}

func (p *turtleParser) consume(c byte) bool {
	if !p.eof() && p.peek() == c {
		p.pos++
		return true
	}
	return false
}

func (p *turtleParser) eof() bool {
	return p.pos >= len(p.input)
}
