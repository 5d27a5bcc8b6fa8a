package rdfio

import (
	"fmt"

	"github.com/aleksaelezovic/quadline/pkg/lexer"
	"github.com/aleksaelezovic/quadline/pkg/rdf"
)

// State is a step of the per-line statement state machine.
type State int

const (
	ExpectSubject State = iota
	ExpectPredicate
	ExpectObject
	ExpectGraphOrEnd
	ExpectEnd
	Committed
	Rejected
)

func (s State) String() string {
	switch s {
	case ExpectSubject:
		return "subject position"
	case ExpectPredicate:
		return "predicate position"
	case ExpectObject:
		return "object position"
	case ExpectGraphOrEnd:
		return "graph position"
	case ExpectEnd:
		return "end of statement"
	case Committed:
		return "committed"
	case Rejected:
		return "rejected"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Quad is a parsed statement and the graph it belongs to. Graph is nil for
// the default graph.
type Quad struct {
	Graph     *rdf.IRIResource
	Statement *rdf.Statement
}

// LineParser parses single lines of one format.
type LineParser struct {
	format Format
	tok    *lexer.Tokenizer
}

// NewLineParser returns a parser for format. Nodes are resolved through
// values, which also holds the session's blank node labels.
func NewLineParser(format Format, values *rdf.ValueParser) (*LineParser, error) {
	switch format {
	case FormatNTriples, FormatNQuads:
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if values == nil {
		values = rdf.NewValueParser(nil)
	}
	return &LineParser{format: format, tok: lexer.NewTokenizer(lexer.ModeBoundary, values)}, nil
}

func (p *LineParser) Format() Format { return p.format }

// lineState carries one ParseLine invocation through the state machine.
type lineState struct {
	p      *LineParser
	cur    *lexer.Cursor
	lineNo int
	state  State

	subject   rdf.Resource
	predicate *rdf.IRIResource
	object    rdf.Node
	graph     *rdf.IRIResource
}

// ParseLine parses one line. Blank and comment-only lines return ok=false
// and no error.
func (p *LineParser) ParseLine(line string, lineNo int) (q Quad, ok bool, err error) {
	ls := &lineState{p: p, cur: lexer.NewCursor(p.tok, line), lineNo: lineNo}

	first := ls.cur.Peek()
	if first.IsEndOfLine() || first.Kind == lexer.KindComment {
		return Quad{}, false, nil
	}

	for {
		switch ls.state {
		case ExpectSubject:
			err = ls.subjectStep()
		case ExpectPredicate:
			err = ls.predicateStep()
		case ExpectObject:
			err = ls.objectStep()
		case ExpectGraphOrEnd:
			err = ls.graphStep()
		case ExpectEnd:
			err = ls.endStep()
		case Committed:
			stmt, serr := rdf.NewStatement(ls.subject, ls.predicate, ls.object)
			if serr != nil {
				return Quad{}, false, ls.reject(0, serr)
			}
			return Quad{Graph: ls.graph, Statement: stmt}, true, nil
		}
		if err != nil {
			return Quad{}, false, err
		}
	}
}

func (ls *lineState) reject(pos int, reason error) error {
	err := &ParserError{Format: ls.p.format, Line: ls.lineNo, Pos: pos, State: ls.state, Err: reason}
	ls.state = Rejected
	return err
}

// unexpected rejects tokens that no state accepts.
func (ls *lineState) unexpected(t lexer.Token, atEnd error) error {
	switch {
	case t.IsEndOfLine():
		return ls.reject(t.Pos, atEnd)
	case t.Kind == lexer.KindError:
		return ls.reject(t.Pos, fmt.Errorf("%w: %w", ErrTokenizer, t.Err))
	case t.Kind == lexer.KindComment:
		return ls.reject(t.Pos, ErrCommentInStatement)
	}
	return ls.reject(t.Pos, fmt.Errorf("%w: unexpected %s", atEnd, t.Kind))
}

func (ls *lineState) requireSeparator() error {
	if !ls.cur.SeparatedByWhitespace() {
		return ls.reject(ls.cur.Pos(), ErrMissingSeparator)
	}
	return nil
}

func (ls *lineState) subjectStep() error {
	t := ls.cur.Next()
	switch t.Kind {
	case lexer.KindIRI, lexer.KindBlankNode:
		ls.subject = t.Node.(rdf.Resource)
		ls.state = ExpectPredicate
		return nil
	case lexer.KindLiteral:
		return ls.reject(t.Pos, ErrLiteralSubject)
	case lexer.KindDot:
		return ls.reject(t.Pos, ErrDotAtStart)
	}
	return ls.unexpected(t, ErrUnexpectedEnd)
}

func (ls *lineState) predicateStep() error {
	if err := ls.requireSeparator(); err != nil {
		return err
	}
	t := ls.cur.Next()
	switch t.Kind {
	case lexer.KindIRI:
		ls.predicate = t.Node.(*rdf.IRIResource)
		ls.state = ExpectObject
		return nil
	case lexer.KindBlankNode, lexer.KindLiteral, lexer.KindDot:
		return ls.reject(t.Pos, ErrPredicateNotIRI)
	}
	return ls.unexpected(t, ErrUnexpectedEnd)
}

func (ls *lineState) objectStep() error {
	if err := ls.requireSeparator(); err != nil {
		return err
	}
	t := ls.cur.Next()
	switch t.Kind {
	case lexer.KindIRI, lexer.KindBlankNode, lexer.KindLiteral:
		ls.object = t.Node
		if ls.p.format == FormatNQuads {
			ls.state = ExpectGraphOrEnd
		} else {
			ls.state = ExpectEnd
		}
		return nil
	case lexer.KindDot:
		return ls.reject(t.Pos, ErrObjectExpected)
	}
	return ls.unexpected(t, ErrUnexpectedEnd)
}

func (ls *lineState) graphStep() error {
	t := ls.cur.Peek()
	if t.Kind == lexer.KindDot {
		ls.state = ExpectEnd
		return nil
	}
	if err := ls.requireSeparator(); err != nil {
		return err
	}
	t = ls.cur.Next()
	switch t.Kind {
	case lexer.KindIRI:
		ls.graph = t.Node.(*rdf.IRIResource)
		ls.state = ExpectEnd
		return nil
	case lexer.KindBlankNode, lexer.KindLiteral:
		return ls.reject(t.Pos, ErrGraphNotIRI)
	}
	return ls.unexpected(t, ErrMissingDot)
}

func (ls *lineState) endStep() error {
	t := ls.cur.Next()
	if t.Kind != lexer.KindDot {
		return ls.unexpected(t, ErrMissingDot)
	}

	// Only whitespace or a comment may follow the terminating dot.
	rest := ls.cur.Peek()
	if !rest.IsEndOfLine() && rest.Kind != lexer.KindComment {
		return ls.reject(rest.Pos, ErrTrailingContent)
	}
	ls.state = Committed
	return nil
}
