package rdfio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleksaelezovic/quadline/pkg/rdf"
)

func newParser(t *testing.T, format Format) *LineParser {
	t.Helper()
	p, err := NewLineParser(format, nil)
	require.NoError(t, err)
	return p
}

func TestParseLine_Accepted(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		line   string
		want   string
		graph  string
	}{
		{"string object", FormatNTriples, `<http://a> <http://b> "c" .`, `<http://a> <http://b> "c" .`, ""},
		{"dot without space", FormatNTriples, `<http://a> <http://b> <http://c>.`, `<http://a> <http://b> <http://c> .`, ""},
		{"literal then dot", FormatNTriples, `<http://a> <http://b> "c".`, `<http://a> <http://b> "c" .`, ""},
		{"lang literal", FormatNTriples, `<http://a> <http://b> "chat"@fr .`, `<http://a> <http://b> "chat"@fr .`, ""},
		{"typed literal", FormatNTriples,
			`<http://a> <http://b> "5"^^<http://www.w3.org/2001/XMLSchema#int> .`,
			`<http://a> <http://b> "5"^^<http://www.w3.org/2001/XMLSchema#int> .`, ""},
		{"bare integer", FormatNTriples, `<http://a> <http://b> 42 .`,
			`<http://a> <http://b> "42"^^<http://www.w3.org/2001/XMLSchema#integer> .`, ""},
		{"bare boolean", FormatNTriples, `<http://a> <http://b> true .`,
			`<http://a> <http://b> "true"^^<http://www.w3.org/2001/XMLSchema#boolean> .`, ""},
		{"surrounding whitespace", FormatNTriples, "  \t<http://a>\t<http://b>  <http://c>   .  ", `<http://a> <http://b> <http://c> .`, ""},
		{"trailing comment", FormatNTriples, `<http://a> <http://b> <http://c> . # note`, `<http://a> <http://b> <http://c> .`, ""},
		{"quad with graph", FormatNQuads, `<http://a> <http://b> <http://c> <http://g> .`, `<http://a> <http://b> <http://c> .`, "http://g"},
		{"quad without graph", FormatNQuads, `<http://a> <http://b> "c" .`, `<http://a> <http://b> "c" .`, ""},
		{"quad literal then graph", FormatNQuads, `<http://a> <http://b> "c"@en <http://g>.`, `<http://a> <http://b> "c"@en .`, "http://g"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, ok, err := newParser(t, tt.format).ParseLine(tt.line, 1)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.want, q.Statement.String())
			if tt.graph == "" {
				assert.Nil(t, q.Graph)
			} else {
				require.NotNil(t, q.Graph)
				assert.Equal(t, tt.graph, q.Graph.Value())
			}
		})
	}
}

func TestParseLine_BlankAndComment(t *testing.T) {
	p := newParser(t, FormatNQuads)
	for _, line := range []string{"", "   ", "\t", "# comment", "   # indented <http://a> ."} {
		_, ok, err := p.ParseLine(line, 3)
		require.NoError(t, err, "line %q", line)
		assert.False(t, ok, "line %q", line)
	}
}

func TestParseLine_BlankNodesShareSession(t *testing.T) {
	p := newParser(t, FormatNTriples)
	q1, ok, err := p.ParseLine(`_:x <http://b> _:y .`, 1)
	require.NoError(t, err)
	require.True(t, ok)
	q2, ok, err := p.ParseLine(`_:y <http://b> _:x .`, 2)
	require.NoError(t, err)
	require.True(t, ok)

	assert.True(t, q1.Statement.Subject().Equals(q2.Statement.Object()))
	assert.True(t, q1.Statement.Object().Equals(q2.Statement.Subject()))
	assert.False(t, q1.Statement.Subject().Equals(q1.Statement.Object()))
}

func TestParseLine_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		line   string
		err    error
		state  State
		pos    int
	}{
		{"literal subject", FormatNTriples, `"x" <http://b> <http://c> .`, ErrLiteralSubject, ExpectSubject, 0},
		{"dot at start", FormatNTriples, `. <http://a>`, ErrDotAtStart, ExpectSubject, 0},
		{"literal predicate", FormatNTriples, `_:x "lit" <http://b> .`, ErrPredicateNotIRI, ExpectPredicate, 4},
		{"blank predicate", FormatNTriples, `<http://a> _:p <http://c> .`, ErrPredicateNotIRI, ExpectPredicate, 11},
		{"missing separator", FormatNTriples, `<http://a><http://b> "c" .`, ErrMissingSeparator, ExpectPredicate, 10},
		{"missing object separator", FormatNTriples, `<http://a> <http://b>"c" .`, ErrMissingSeparator, ExpectObject, 21},
		{"object missing", FormatNTriples, `<http://a> <http://b> .`, ErrObjectExpected, ExpectObject, 22},
		{"ends after predicate", FormatNTriples, `<http://a> <http://b>`, ErrUnexpectedEnd, ExpectObject, 21},
		{"missing dot", FormatNTriples, `<http://a> <http://b> "c"`, ErrMissingDot, ExpectEnd, 25},
		{"graph term in triples", FormatNTriples, `<http://a> <http://b> <http://c> <http://g> .`, ErrMissingDot, ExpectEnd, 33},
		{"trailing content", FormatNTriples, `<http://a> <http://b> "c" . <http://d>`, ErrTrailingContent, ExpectEnd, 28},
		{"comment inside", FormatNTriples, `<http://a> <http://b> # c .`, ErrCommentInStatement, ExpectObject, 22},
		{"unterminated IRI", FormatNTriples, `<http://a> <http://b "c" .`, ErrTokenizer, ExpectPredicate, 11},
		{"unterminated literal", FormatNTriples, `<http://a> <http://b> "c .`, ErrTokenizer, ExpectObject, 22},
		{"unknown prefix", FormatNTriples, `<http://a> ex:b "c" .`, ErrTokenizer, ExpectPredicate, 11},
		{"literal graph", FormatNQuads, `<http://a> <http://b> <http://c> "g" .`, ErrGraphNotIRI, ExpectGraphOrEnd, 33},
		{"blank graph", FormatNQuads, `<http://a> <http://b> <http://c> _:g .`, ErrGraphNotIRI, ExpectGraphOrEnd, 33},
		{"quad missing dot", FormatNQuads, `<http://a> <http://b> <http://c> <http://g>`, ErrMissingDot, ExpectEnd, 43},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok, err := newParser(t, tt.format).ParseLine(tt.line, 7)
			require.Error(t, err)
			assert.False(t, ok)
			assert.ErrorIs(t, err, tt.err)

			var perr *ParserError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, 7, perr.Line)
			assert.Equal(t, tt.state, perr.State)
			assert.Equal(t, tt.pos, perr.Pos)
			assert.Equal(t, tt.format, perr.Format)
			assert.NotEqual(t, "other", perr.Reason())
		})
	}
}

func TestParserError_Message(t *testing.T) {
	_, _, err := newParser(t, FormatNTriples).ParseLine(`_:x "lit" <http://b> .`, 12)
	require.Error(t, err)
	assert.Equal(t, "N-Triples line 12, offset 4 (predicate position): only IRI allowed as predicate", err.Error())

	var perr *ParserError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "predicate_not_iri", perr.Reason())
}

func TestParseLine_Prefixes(t *testing.T) {
	values := rdf.NewValueParser(rdf.PrefixMap{"ex": "http://example.org/"})
	p, err := NewLineParser(FormatNTriples, values)
	require.NoError(t, err)

	q, ok, err := p.ParseLine(`ex:a ex:b ex:c.`, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "<http://example.org/a> <http://example.org/b> <http://example.org/c> .", q.Statement.String())
}

func TestNewLineParser_UnknownFormat(t *testing.T) {
	_, err := NewLineParser(Format(0), nil)
	assert.Error(t, err)
}
