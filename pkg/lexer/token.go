// Package lexer splits a single line of N-Triples or N-Quads text into
// tokens. The tokenizer itself is pure: Peek never keeps state between
// calls, and position tracking lives in Cursor.
package lexer

import (
	"errors"
	"fmt"

	"github.com/aleksaelezovic/quadline/pkg/rdf"
)

// Kind classifies a token.
type Kind int

const (
	KindError Kind = iota
	KindIRI
	KindBlankNode
	KindLiteral
	KindDot
	KindComment
)

func (k Kind) String() string {
	switch k {
	case KindError:
		return "error"
	case KindIRI:
		return "IRI"
	case KindBlankNode:
		return "blank node"
	case KindLiteral:
		return "literal"
	case KindDot:
		return "dot"
	case KindComment:
		return "comment"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ErrEndOfLine is carried by an error token when only whitespace remains.
var ErrEndOfLine = errors.New("end of line")

// TokenizerError reports text the tokenizer could not classify.
type TokenizerError struct {
	Pos  int
	Text string
	Err  error
}

func (e *TokenizerError) Error() string {
	return fmt.Sprintf("cannot tokenize %q at offset %d: %v", e.Text, e.Pos, e.Err)
}

func (e *TokenizerError) Unwrap() error { return e.Err }

// Token is one lexical item. Pos and End delimit its span as byte offsets
// into the text handed to the tokenizer; End is exclusive.
type Token struct {
	Kind Kind
	Pos  int
	End  int
	Text string
	Node rdf.Node
	Err  error
}

// IsEndOfLine reports whether t marks the end of meaningful input.
func (t Token) IsEndOfLine() bool {
	return t.Kind == KindError && errors.Is(t.Err, ErrEndOfLine)
}

func (t Token) shift(offset int) Token {
	t.Pos += offset
	t.End += offset
	if te, ok := t.Err.(*TokenizerError); ok {
		shifted := *te
		shifted.Pos += offset
		t.Err = &shifted
	}
	return t
}
