package rdf

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== IRIResource Tests =====

func TestIRIResource_StringAndKey(t *testing.T) {
	node := MustIRI("http://example.org/resource")
	assert.Equal(t, TermTypeIRI, node.Type())
	assert.Equal(t, "<http://example.org/resource>", node.String())
	assert.Equal(t, "http://example.org/resource", node.Value())

	a := MustIRI("http://example.org/s?b=2&a=1")
	b := MustIRI("http://example.org/s?a=1&b=2")
	assert.True(t, a.Equals(b))
	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, "<http://example.org/s?b=2&a=1>", a.String())
}

func TestIRIResource_Equals(t *testing.T) {
	node1 := MustIRI("http://example.org/resource")
	node2 := MustIRI("http://example.org/resource")
	node3 := MustIRI("http://example.org/different")

	assert.True(t, node1.Equals(node2))
	assert.False(t, node1.Equals(node3))
	assert.False(t, node1.Equals(NewStringLiteral("http://example.org/resource")))
}

func TestParseIRIResource_Invalid(t *testing.T) {
	_, err := ParseIRIResource("not an iri")
	assert.Error(t, err)
}

// ===== BlankNode Tests =====

func TestBlankNode(t *testing.T) {
	node := NewBlankNode("b1")
	assert.Equal(t, TermTypeBlankNode, node.Type())
	assert.Equal(t, "_:b1", node.String())
	assert.Equal(t, "b1", node.ID())
	assert.True(t, node.Equals(NewBlankNode("b1")))
	assert.False(t, node.Equals(NewBlankNode("b2")))
	assert.False(t, node.Equals(NewVariable("b1")))
}

// ===== Literal Tests =====

func TestNewLiteral_LanguageWithNonStringDatatype(t *testing.T) {
	_, err := NewLiteral("5", XSDInt, "en")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidLiteral))

	lit, err := NewLiteral("chat", nil, "fr")
	require.NoError(t, err)
	assert.Equal(t, `"chat"@fr`, lit.String())
	assert.True(t, lit.IsString())
}

func TestLiteral_Format(t *testing.T) {
	tests := []struct {
		name     string
		literal  *Literal
		quoted   string
		unquoted string
	}{
		{"plain", NewStringLiteral("hello"), `"hello"`, "hello"},
		{"escaped", NewStringLiteral("say \"hi\"\n"), `"say \"hi\"\n"`, "say \"hi\"\n"},
		{"language", NewLangLiteral("hello", "en"), `"hello"@en`, `"hello"@en`},
		{"typed", NewTypedLiteral("5", XSDInt),
			`"5"^^<http://www.w3.org/2001/XMLSchema#int>`,
			`"5"^^<http://www.w3.org/2001/XMLSchema#int>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.quoted, tt.literal.Format(true))
			assert.Equal(t, tt.unquoted, tt.literal.Format(false))
			assert.Equal(t, tt.quoted, tt.literal.String())
		})
	}
}

func TestLiteral_Equals(t *testing.T) {
	assert.True(t, NewStringLiteral("a").Equals(NewTypedLiteral("a", XSDString)))
	assert.False(t, NewStringLiteral("a").Equals(NewLangLiteral("a", "en")))
	assert.True(t, NewLangLiteral("a", "en").Equals(NewLangLiteral("a", "EN")))
	assert.False(t, NewTypedLiteral("1", XSDInt).Equals(NewTypedLiteral("1", XSDInteger)))
}

func TestLiteral_Constructors(t *testing.T) {
	assert.Equal(t, `"true"^^<http://www.w3.org/2001/XMLSchema#boolean>`, NewBooleanLiteral(true).String())
	assert.Equal(t, "42", NewIntegerLiteral(42).Value())
	n, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.True(t, ok)
	assert.Equal(t, "123456789012345678901234567890", NewBigIntegerLiteral(n).Value())
	assert.Equal(t, "2.0", NewDecimalLiteral(2).Value())
	assert.Equal(t, "2.5", NewDecimalLiteral(2.5).Value())
	assert.Equal(t, "1.5E3", NewDoubleLiteral(1500).Value())
	assert.Equal(t, XSDDouble, NewDoubleLiteral(1).Datatype())

	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-05-01T12:00:00Z", NewDateTimeLiteral(ts).Value())
}

// ===== Statement Tests =====

func TestStatement(t *testing.T) {
	s := MustStatement(MustIRI("http://a"), MustIRI("http://b"), NewStringLiteral("c"))
	assert.Equal(t, `<http://a> <http://b> "c" .`, s.String())

	same := MustStatement(MustIRI("http://a"), MustIRI("http://b"), NewTypedLiteral("c", XSDString))
	assert.True(t, s.Equals(same))
	assert.Equal(t, s.Key(), same.Key())

	_, err := NewStatement(MustIRI("http://a"), nil, NewStringLiteral("c"))
	assert.Error(t, err)
	_, err = NewStatement(MustIRI("http://a"), MustIRI("http://b"), NewVariable("o"))
	assert.Error(t, err)
}
