package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aleksaelezovic/quadline/pkg/rdf"
)

func TestEncode_InlineAndHashed(t *testing.T) {
	short := rdf.NewBlankNode("b1")
	enc := Encode(short)
	assert.True(t, enc.IsInline())
	assert.Equal(t, rdf.TermTypeBlankNode, enc.Type())
	key, ok := enc.InlineKey()
	assert.True(t, ok)
	assert.Equal(t, "_:b1", key)

	long := rdf.MustIRI("http://example.org/a/rather/long/path")
	enc = Encode(long)
	assert.False(t, enc.IsInline())
	assert.Equal(t, rdf.TermTypeIRI, enc.Type())
}

func TestEncode_EqualNodesShareEncoding(t *testing.T) {
	a := rdf.MustIRI("http://example.org/search?b=2&a=1")
	b := rdf.MustIRI("http://example.org/search?a=1&b=2")
	assert.Equal(t, Encode(a), Encode(b))

	assert.NotEqual(t, Encode(rdf.NewStringLiteral("x")), Encode(rdf.NewLangLiteral("x", "en")))
	assert.NotEqual(t,
		Encode(rdf.MustIRI("http://example.org/one/long/enough/to/hash")),
		Encode(rdf.MustIRI("http://example.org/two/long/enough/to/hash")))
}

func TestEncodeKey_InlineLength(t *testing.T) {
	short := EncodeKey(rdf.TermTypeLiteral, `"ab"`)
	padded := EncodeKey(rdf.TermTypeLiteral, "\"ab\"\x00")
	assert.NotEqual(t, short, padded, "trailing NUL bytes are part of the key")

	key, ok := padded.InlineKey()
	assert.True(t, ok)
	assert.Equal(t, "\"ab\"\x00", key)

	atLimit := EncodeKey(rdf.TermTypeIRI, "<http://a/bcde>")
	assert.Len(t, "<http://a/bcde>", MaxInlineSize)
	assert.True(t, atLimit.IsInline())
	assert.False(t, EncodeKey(rdf.TermTypeIRI, "<http://a/bcdef>").IsInline())

	_, ok = EncodeKey(rdf.TermTypeIRI, "<http://a/bcdef>").InlineKey()
	assert.False(t, ok)
}

func TestKeyAndPosition(t *testing.T) {
	s := Encode(rdf.NewBlankNode("s"))
	p := Encode(rdf.MustIRI("http://p/"))
	k := Key(s, p)
	assert.Len(t, k, 2*EncodedTermSize)
	assert.Equal(t, s[:], k[:EncodedTermSize])

	for _, pos := range []int{0, 1, 255, 1 << 40} {
		assert.Equal(t, pos, DecodePosition(EncodePosition(pos)))
	}
}
