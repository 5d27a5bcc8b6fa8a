package rdf

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/aleksaelezovic/quadline/pkg/iri"
)

// PrefixMap maps prefixes to IRI namespaces for prefixed names such as
// xsd:int.
type PrefixMap map[string]string

// Resolve expands a prefixed name into a full IRI string.
func (m PrefixMap) Resolve(prefixed string) (string, error) {
	prefix, local, ok := strings.Cut(prefixed, ":")
	if !ok {
		return "", &PrefixError{Prefix: prefixed}
	}
	ns, ok := m[prefix]
	if !ok {
		return "", &PrefixError{Prefix: prefix}
	}
	return ns + local, nil
}

var (
	langPattern    = regexp.MustCompile(`^[a-zA-Z]+(-[a-zA-Z0-9]+)*$`)
	numericDouble  = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)[eE][+-]?[0-9]+$`)
	numericDecimal = regexp.MustCompile(`^[+-]?[0-9]*\.[0-9]+$`)
)

// ValueParser decodes node and literal tokens. A zero ValueParser is usable;
// missing collaborators are created on first use.
type ValueParser struct {
	Registry *DatatypeRegistry
	Prefixes PrefixMap
	Blanks   *BlankNodeFactory
	// ValidateLexical rejects typed literals whose lexical form is not
	// valid for their built-in datatype.
	ValidateLexical bool
}

// NewValueParser returns a parser with a fresh registry and blank node
// factory.
func NewValueParser(prefixes PrefixMap) *ValueParser {
	return &ValueParser{
		Registry: NewDatatypeRegistry(),
		Prefixes: prefixes,
		Blanks:   NewBlankNodeFactory(),
	}
}

func (p *ValueParser) registry() *DatatypeRegistry {
	if p.Registry == nil {
		p.Registry = NewDatatypeRegistry()
	}
	return p.Registry
}

func (p *ValueParser) blanks() *BlankNodeFactory {
	if p.Blanks == nil {
		p.Blanks = NewBlankNodeFactory()
	}
	return p.Blanks
}

// ParseLiteral decodes a literal token: the bare words true and false,
// a bare number, or a quoted body with an optional @lang or ^^datatype
// suffix.
func (p *ValueParser) ParseLiteral(token string) (*Literal, error) {
	switch token {
	case "true", "false":
		return NewTypedLiteral(token, XSDBoolean), nil
	case "":
		return nil, &LiteralError{Token: token, Reason: "empty token"}
	}

	delim := QuoteDelimiter(token)
	if delim == "" {
		return parseNumber(token)
	}

	end := lastIndexUnescaped(token, delim, len(delim))
	if end < 0 {
		return nil, &LiteralError{Token: token, Reason: "missing closing " + delim}
	}
	value, err := Unescape(token[len(delim):end])
	if err != nil {
		return nil, &LiteralError{Token: token, Reason: "bad escape", Err: err}
	}

	suffix := token[end+len(delim):]
	switch {
	case suffix == "":
		return NewStringLiteral(value), nil

	case suffix[0] == '@':
		lang := suffix[1:]
		if strings.Contains(lang, "^^") {
			return nil, &LiteralError{Token: token, Reason: "language tag and datatype are mutually exclusive"}
		}
		if !langPattern.MatchString(lang) {
			return nil, &LiteralError{Token: token, Reason: "malformed language tag " + lang}
		}
		return NewLangLiteral(value, lang), nil

	case strings.HasPrefix(suffix, "^^"):
		dt, err := p.parseDatatype(token, suffix[2:])
		if err != nil {
			return nil, err
		}
		if p.ValidateLexical && dt.IsBuiltin() && !dt.Validate(value) {
			return nil, &LiteralError{Token: token, Reason: "lexical form not valid for " + dt.String()}
		}
		return NewTypedLiteral(value, dt), nil
	}
	return nil, &LiteralError{Token: token, Reason: "unexpected " + suffix + " after closing quote"}
}

func (p *ValueParser) parseDatatype(token, ref string) (*Datatype, error) {
	if strings.HasPrefix(ref, "<") {
		if len(ref) < 2 || !strings.HasSuffix(ref, ">") {
			return nil, &LiteralError{Token: token, Reason: "datatype IRI must end with '>'"}
		}
		dt, err := p.registry().Lookup(ref[1 : len(ref)-1])
		if err != nil {
			return nil, &LiteralError{Token: token, Reason: "bad datatype IRI", Err: err}
		}
		return dt, nil
	}

	full, err := p.Prefixes.Resolve(ref)
	if err != nil {
		return nil, &LiteralError{Token: token, Reason: "bad datatype", Err: err}
	}
	dt, err := p.registry().Lookup(full)
	if err != nil {
		return nil, &LiteralError{Token: token, Reason: "bad datatype IRI", Err: err}
	}
	return dt, nil
}

func parseNumber(token string) (*Literal, error) {
	switch {
	case strings.ContainsAny(token, "eE"):
		if numericDouble.MatchString(token) {
			return NewTypedLiteral(token, XSDDouble), nil
		}
	case strings.Contains(token, "."):
		if numericDecimal.MatchString(token) {
			return NewTypedLiteral(token, XSDDecimal), nil
		}
	default:
		if integerPattern.MatchString(token) {
			return NewTypedLiteral(token, XSDInteger), nil
		}
	}
	return nil, &LiteralError{Token: token, Reason: "not a boolean, number or quoted string"}
}

// ParseNode decodes any node token: <iri>, _:label, a prefixed name, or a
// literal.
func (p *ValueParser) ParseNode(token string) (Node, error) {
	switch {
	case token == "":
		return nil, &NodeError{Token: token, Reason: "empty token"}

	case token[0] == '<':
		return parseIRIToken(token)

	case strings.HasPrefix(token, "_:"):
		label := token[2:]
		if !validBlankLabel(label) {
			return nil, &NodeError{Token: token, Reason: "malformed blank node label"}
		}
		return p.blanks().FromLabel(label), nil

	case isPrefixedName(token):
		full, err := p.Prefixes.Resolve(token)
		if err != nil {
			return nil, &NodeError{Token: token, Reason: "cannot expand prefixed name", Err: err}
		}
		u, err := iri.Parse(full)
		if err != nil {
			return nil, &NodeError{Token: token, Reason: "expanded name is not an IRI", Err: err}
		}
		return NewIRIResource(u), nil
	}
	return p.ParseLiteral(token)
}

func parseIRIToken(token string) (*IRIResource, error) {
	if len(token) < 2 || !strings.HasSuffix(token, ">") {
		return nil, &NodeError{Token: token, Reason: "IRI must end with '>'"}
	}
	inner := token[1 : len(token)-1]
	if strings.ContainsAny(inner, "<>") {
		return nil, &NodeError{Token: token, Reason: "IRI must not contain '<' or '>'"}
	}
	u, err := iri.Parse(inner)
	if err != nil {
		return nil, &NodeError{Token: token, Reason: "bad IRI", Err: err}
	}
	return NewIRIResource(u), nil
}

func isPrefixedName(token string) bool {
	return QuoteDelimiter(token) == "" && strings.Contains(token, ":")
}

func validBlankLabel(label string) bool {
	if label == "" || strings.HasSuffix(label, ".") {
		return false
	}
	for i, r := range label {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
		case i > 0 && (r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}
