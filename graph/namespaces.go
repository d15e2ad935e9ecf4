package graph

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUndefinedPrefix is returned when a prefixed name uses a prefix the
// namespace table does not know.
var ErrUndefinedPrefix = errors.New("undefined prefix")

// Namespaces maps short prefixes to IRI bases. It is consumed before row
// processing begins and treated as read-only afterwards.
type Namespaces struct {
	byPrefix map[string]string
}

// NewNamespaces returns an empty namespace table.
func NewNamespaces() *Namespaces {
	return &Namespaces{byPrefix: make(map[string]string)}
}

// Bind registers or replaces a prefix binding.
func (n *Namespaces) Bind(prefix, base string) {
	n.byPrefix[prefix] = base
}

// Base returns the base IRI bound to prefix, if any.
func (n *Namespaces) Base(prefix string) (string, bool) {
	base, ok := n.byPrefix[prefix]
	return base, ok
}

// Prefixes returns the bound prefixes in sorted order, for deterministic
// serialization.
func (n *Namespaces) Prefixes() []string {
	out := make([]string, 0, len(n.byPrefix))
	for p := range n.byPrefix {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Expand resolves a prefixed name such as "skos:exactMatch" to an absolute
// IRI. Text already carrying an http or https scheme passes through
// verbatim. An unknown prefix is a structural error.
func (n *Namespaces) Expand(text string) (IRI, error) {
	if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") {
		return IRI(text), nil
	}
	prefix, local, found := strings.Cut(text, ":")
	if !found {
		return "", fmt.Errorf("%w: %q is not an absolute IRI and has no prefix", ErrUndefinedPrefix, text)
	}
	base, ok := n.byPrefix[prefix]
	if !ok {
		return "", fmt.Errorf("%w %q in %q", ErrUndefinedPrefix, prefix, text)
	}
	return IRI(base + local), nil
}

// Compact renders an IRI in prefixed form when a binding covers it, for
// advisory diagnostics. Unmatched IRIs come back in angle brackets.
func (n *Namespaces) Compact(iri IRI) string {
	s := string(iri)
	bestPrefix, bestBase := "", ""
	for prefix, base := range n.byPrefix {
		if strings.HasPrefix(s, base) && len(base) > len(bestBase) {
			bestPrefix, bestBase = prefix, base
		}
	}
	if bestBase == "" {
		return "<" + s + ">"
	}
	return bestPrefix + ":" + s[len(bestBase):]
}

// ResolveTerm resolves compact or N3 textual references into terms:
//
//   - "http(s)://…"      absolute IRI, used verbatim
//   - "<iri>"            absolute IRI
//   - "prefix:local"     expanded against the table
//   - `"text"`           plain literal
//   - `"text"@lang`      language-tagged literal
//   - `"text"^^dt`       datatyped literal; dt may itself be prefixed
//
// Literal values keep N3 escape sequences resolved.
func (n *Namespaces) ResolveTerm(text string) (Term, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("cannot resolve empty term")
	}
	if strings.HasPrefix(text, "<") && strings.HasSuffix(text, ">") {
		return IRI(text[1 : len(text)-1]), nil
	}
	if strings.HasPrefix(text, `"`) {
		return n.resolveLiteral(text)
	}
	if strings.HasPrefix(text, "_:") {
		return BlankNode(text[2:]), nil
	}
	return n.Expand(text)
}

func (n *Namespaces) resolveLiteral(text string) (Term, error) {
	value, rest, err := unquote(text)
	if err != nil {
		return nil, err
	}
	switch {
	case rest == "":
		return NewLiteral(value), nil
	case strings.HasPrefix(rest, "@"):
		lang := rest[1:]
		if lang == "" {
			return nil, fmt.Errorf("empty language tag in %q", text)
		}
		return NewLangLiteral(value, lang), nil
	case strings.HasPrefix(rest, "^^"):
		dtText := strings.TrimSpace(rest[2:])
		if strings.HasPrefix(dtText, "<") && strings.HasSuffix(dtText, ">") {
			return NewTypedLiteral(value, IRI(dtText[1:len(dtText)-1])), nil
		}
		dt, err := n.Expand(dtText)
		if err != nil {
			return nil, err
		}
		return NewTypedLiteral(value, dt), nil
	default:
		return nil, fmt.Errorf("malformed literal suffix %q in %q", rest, text)
	}
}

// unquote consumes a double-quoted N3 string at the start of text and
// returns the unescaped value plus the remaining suffix.
func unquote(text string) (value, rest string, err error) {
	if !strings.HasPrefix(text, `"`) {
		return "", "", fmt.Errorf("literal %q does not start with a quote", text)
	}
	var sb strings.Builder
	escaped := false
	for i := 1; i < len(text); i++ {
		c := text[i]
		if escaped {
			switch c {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case '"', '\\':
				sb.WriteByte(c)
			default:
				return "", "", fmt.Errorf("unsupported escape \\%c in %q", c, text)
			}
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = true
		case '"':
			return sb.String(), text[i+1:], nil
		default:
			sb.WriteByte(c)
		}
	}
	return "", "", fmt.Errorf("unterminated literal %q", text)
}
