package lexer

import (
	"errors"
	"strings"

	"github.com/aleksaelezovic/quadline/pkg/rdf"
)

// Mode selects where IRIs, blank nodes and bare tokens end.
type Mode int

const (
	// ModeBoundary is used for N-Triples and N-Quads input. An IRI ends at
	// its '>'; blank nodes and bare tokens also stop before '<', '"' and
	// '\'', and never keep a trailing '.'.
	ModeBoundary Mode = iota
	// ModeWhitespace ends IRIs, blank nodes and bare tokens only at
	// whitespace.
	ModeWhitespace
)

func (m Mode) String() string {
	if m == ModeWhitespace {
		return "whitespace"
	}
	return "boundary"
}

var (
	errUnterminatedIRI     = errors.New("IRI is missing its closing '>'")
	errUnterminatedLiteral = errors.New("literal is missing its closing quote")
	errNoValueParser       = errors.New("tokenizer has no value parser")
)

// Tokenizer classifies the next token of a line.
type Tokenizer struct {
	Mode   Mode
	Values *rdf.ValueParser
}

// NewTokenizer returns a tokenizer resolving nodes through values. A nil
// values gets a parser with no prefixes.
func NewTokenizer(mode Mode, values *rdf.ValueParser) *Tokenizer {
	t := &Tokenizer{Mode: mode, Values: values}
	t.init()
	return t
}

// init gives a zero Tokenizer its value parser. Peek never calls it.
func (t *Tokenizer) init() {
	if t.Values == nil {
		t.Values = rdf.NewValueParser(nil)
	}
}

// IsSpace reports whether c separates tokens.
func IsSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', '\v':
		return true
	}
	return false
}

// Peek returns the first token of rest. Offsets in the token are relative
// to rest. When nothing but whitespace remains the token has KindError and
// carries ErrEndOfLine.
func (t *Tokenizer) Peek(rest string) Token {
	pos := 0
	for pos < len(rest) && IsSpace(rest[pos]) {
		pos++
	}
	if pos == len(rest) {
		return Token{Kind: KindError, Pos: pos, End: pos, Err: ErrEndOfLine}
	}

	switch c := rest[pos]; {
	case c == '#':
		return Token{Kind: KindComment, Pos: pos, End: len(rest), Text: rest[pos:]}
	case c == '.':
		return Token{Kind: KindDot, Pos: pos, End: pos + 1, Text: "."}
	case c == '<':
		end, err := t.scanIRI(rest, pos)
		if err != nil {
			return errorToken(rest, pos, len(rest), err)
		}
		return t.resolve(rest, pos, end)
	case strings.HasPrefix(rest[pos:], "_:"):
		return t.resolve(rest, pos, t.scanBare(rest, pos+2))
	case rdf.QuoteDelimiter(rest[pos:]) != "":
		end, err := t.scanLiteral(rest, pos)
		if err != nil {
			return errorToken(rest, pos, len(rest), err)
		}
		return t.resolve(rest, pos, end)
	}
	return t.resolve(rest, pos, t.scanBare(rest, pos))
}

func (t *Tokenizer) resolve(rest string, pos, end int) Token {
	text := rest[pos:end]
	if t.Values == nil {
		return errorToken(rest, pos, end, errNoValueParser)
	}
	node, err := t.Values.ParseNode(text)
	if err != nil {
		return errorToken(rest, pos, end, err)
	}

	tok := Token{Pos: pos, End: end, Text: text, Node: node}
	switch node.Type() {
	case rdf.TermTypeIRI:
		tok.Kind = KindIRI
	case rdf.TermTypeBlankNode:
		tok.Kind = KindBlankNode
	case rdf.TermTypeLiteral:
		tok.Kind = KindLiteral
	default:
		return errorToken(rest, pos, end, errors.New("unexpected "+node.Type().String()))
	}
	return tok
}

func errorToken(rest string, pos, end int, err error) Token {
	return Token{
		Kind: KindError,
		Pos:  pos,
		End:  end,
		Text: rest[pos:end],
		Err:  &TokenizerError{Pos: pos, Text: rest[pos:end], Err: err},
	}
}

func (t *Tokenizer) scanIRI(rest string, pos int) (int, error) {
	if t.Mode == ModeWhitespace {
		return scanUntil(rest, pos, IsSpace), nil
	}
	i := strings.IndexByte(rest[pos:], '>')
	if i < 0 {
		return 0, errUnterminatedIRI
	}
	return pos + i + 1, nil
}

// scanBare scans a blank node label, prefixed name or bare literal.
func (t *Tokenizer) scanBare(rest string, from int) int {
	if t.Mode == ModeWhitespace {
		return scanUntil(rest, from, IsSpace)
	}
	return trimDots(rest, from, scanUntil(rest, from, isBoundary))
}

func (t *Tokenizer) scanLiteral(rest string, pos int) (int, error) {
	delim := rdf.QuoteDelimiter(rest[pos:])
	closing := rdf.IndexUnescaped(rest, delim, pos+len(delim))
	if closing < 0 {
		return 0, errUnterminatedLiteral
	}
	end := closing + len(delim)

	if t.Mode == ModeWhitespace {
		return scanUntil(rest, end, IsSpace), nil
	}

	switch {
	case strings.HasPrefix(rest[end:], "@"):
		return scanUntil(rest, end+1, func(c byte) bool { return !isLangChar(c) }), nil
	case strings.HasPrefix(rest[end:], "^^<"):
		i := strings.IndexByte(rest[end:], '>')
		if i < 0 {
			return 0, errUnterminatedIRI
		}
		return end + i + 1, nil
	case strings.HasPrefix(rest[end:], "^^"):
		return trimDots(rest, end+2, scanUntil(rest, end+2, isBoundary)), nil
	}
	return end, nil
}

func scanUntil(s string, from int, stop func(byte) bool) int {
	i := from
	for i < len(s) && !stop(s[i]) {
		i++
	}
	return i
}

func trimDots(s string, from, end int) int {
	for end > from && s[end-1] == '.' {
		end--
	}
	return end
}

func isBoundary(c byte) bool {
	return IsSpace(c) || c == '<' || c == '"' || c == '\''
}

func isLangChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-'
}
