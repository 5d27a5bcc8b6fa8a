// Package encoding turns nodes into fixed-size keys for the key-value
// graph strategy.
package encoding

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"

	"github.com/aleksaelezovic/quadline/pkg/rdf"
)

const (
	// Maximum size for inline keys. The last byte of an inline term holds
	// the key length.
	MaxInlineSize = 15

	// Encoded term size (type byte + 16 bytes for 128-bit hash or inline data)
	EncodedTermSize = 17

	lengthByte = EncodedTermSize - 1

	// inlineFlag marks a type byte whose payload is the key itself
	inlineFlag = 0x80
)

// EncodedTerm represents a node encoded as a type byte followed by 16 bytes
// of data
type EncodedTerm [EncodedTermSize]byte

// Hash128 computes a 128-bit xxhash3 hash of the input string
func Hash128(s string) [16]byte {
	hash := xxh3.HashString128(s)
	var result [16]byte
	binary.BigEndian.PutUint64(result[0:8], hash.Hi)
	binary.BigEndian.PutUint64(result[8:16], hash.Lo)
	return result
}

// Encode encodes a node from its canonical key.
func Encode(node rdf.Node) EncodedTerm {
	return EncodeKey(node.Type(), node.Key())
}

// EncodeKey encodes a canonical key of the given type. Keys of up to
// MaxInlineSize bytes are stored inline with their length; longer ones are
// hashed.
func EncodeKey(typ rdf.TermType, key string) EncodedTerm {
	var encoded EncodedTerm
	if len(key) <= MaxInlineSize {
		encoded[0] = byte(typ) | inlineFlag
		copy(encoded[1:], key)
		encoded[lengthByte] = byte(len(key))
		return encoded
	}

	encoded[0] = byte(typ)
	hash := Hash128(key)
	copy(encoded[1:], hash[:])
	return encoded
}

// IsInline reports whether the term carries its key verbatim.
func (e EncodedTerm) IsInline() bool { return e[0]&inlineFlag != 0 }

// InlineKey returns the key of an inline term.
func (e EncodedTerm) InlineKey() (string, bool) {
	if !e.IsInline() {
		return "", false
	}
	return string(e[1 : 1+int(e[lengthByte])]), true
}

// Type returns the node type of the encoded term.
func (e EncodedTerm) Type() rdf.TermType { return rdf.TermType(e[0] &^ inlineFlag) }

// Key concatenates encoded terms into a table key.
func Key(terms ...EncodedTerm) []byte {
	out := make([]byte, 0, len(terms)*EncodedTermSize)
	for _, t := range terms {
		out = append(out, t[:]...)
	}
	return out
}

// EncodePosition encodes an arena position as an 8-byte big-endian value.
func EncodePosition(pos int) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(pos))
	return buf
}

// DecodePosition is the inverse of EncodePosition.
func DecodePosition(buf []byte) int {
	return int(binary.BigEndian.Uint64(buf))
}
