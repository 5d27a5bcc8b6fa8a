package rdf

import (
	"strings"

	"github.com/google/uuid"
)

// BlankNodeFactory maps source labels to blank nodes for one parse session.
// The same label always yields the same node; ids are name-based UUIDs in a
// namespace drawn fresh for each factory, so labels from different sessions
// do not collide.
type BlankNodeFactory struct {
	// PreserveLabels keeps source labels as ids instead of remapping them.
	PreserveLabels bool

	namespace uuid.UUID
	labels    map[string]*BlankNode
}

func NewBlankNodeFactory() *BlankNodeFactory {
	return &BlankNodeFactory{
		namespace: uuid.New(),
		labels:    make(map[string]*BlankNode),
	}
}

// FromLabel returns the blank node for a source label.
func (f *BlankNodeFactory) FromLabel(label string) *BlankNode {
	if b, ok := f.labels[label]; ok {
		return b
	}
	id := label
	if !f.PreserveLabels {
		id = compactUUID(uuid.NewSHA1(f.namespace, []byte(label)))
	}
	b := NewBlankNode(id)
	f.labels[label] = b
	return b
}

// Generate returns a fresh blank node that has no source label.
func (f *BlankNodeFactory) Generate() *BlankNode {
	return NewBlankNode(compactUUID(uuid.New()))
}

// Len returns the number of distinct labels seen.
func (f *BlankNodeFactory) Len() int { return len(f.labels) }

func compactUUID(u uuid.UUID) string {
	return "b" + strings.ReplaceAll(u.String(), "-", "")
}
