package rdfio

import (
	"errors"
	"fmt"
)

// Reasons a line is rejected. Every *ParserError wraps exactly one of them.
var (
	ErrLiteralSubject     = errors.New("literal not allowed as subject")
	ErrDotAtStart         = errors.New("line starts with dot")
	ErrMissingSeparator   = errors.New("items must be separated by whitespace")
	ErrPredicateNotIRI    = errors.New("only IRI allowed as predicate")
	ErrObjectExpected     = errors.New("expected IRI, blank node or literal as object")
	ErrGraphNotIRI        = errors.New("only IRI allowed as graph name")
	ErrMissingDot         = errors.New("line doesn't end on dot")
	ErrTrailingContent    = errors.New("unexpected content after dot")
	ErrCommentInStatement = errors.New("comment inside statement")
	ErrUnexpectedEnd      = errors.New("unexpected end of line")
	ErrTokenizer          = errors.New("cannot tokenize line")
)

var reasonLabels = []struct {
	err   error
	label string
}{
	{ErrLiteralSubject, "literal_subject"},
	{ErrDotAtStart, "dot_at_start"},
	{ErrMissingSeparator, "missing_separator"},
	{ErrPredicateNotIRI, "predicate_not_iri"},
	{ErrObjectExpected, "object_expected"},
	{ErrGraphNotIRI, "graph_not_iri"},
	{ErrMissingDot, "missing_dot"},
	{ErrTrailingContent, "trailing_content"},
	{ErrCommentInStatement, "comment_in_statement"},
	{ErrUnexpectedEnd, "unexpected_end"},
	{ErrTokenizer, "tokenizer"},
}

// ParserError is a rejected line. Line is 1-based; Pos is the byte offset
// within the line where the problem was detected.
type ParserError struct {
	Format Format
	Line   int
	Pos    int
	State  State
	Err    error
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("%s line %d, offset %d (%s): %v", e.Format, e.Line, e.Pos, e.State, e.Err)
}

func (e *ParserError) Unwrap() error { return e.Err }

// Reason returns a short label for the rejection reason.
func (e *ParserError) Reason() string {
	for _, r := range reasonLabels {
		if errors.Is(e.Err, r.err) {
			return r.label
		}
	}
	return "other"
}
