package rdf

import (
	"errors"
	"fmt"
)

// Statement is an immutable subject-predicate-object triple.
type Statement struct {
	subject   Resource
	predicate *IRIResource
	object    Node
	key       string
}

// NewStatement builds a statement. All positions are required and the
// object may not be a variable.
func NewStatement(subject Resource, predicate *IRIResource, object Node) (*Statement, error) {
	if subject == nil || predicate == nil || object == nil {
		return nil, errors.New("statement requires subject, predicate and object")
	}
	if object.Type() == TermTypeVariable {
		return nil, fmt.Errorf("variable %s not allowed as object", object)
	}
	return &Statement{
		subject:   subject,
		predicate: predicate,
		object:    object,
		key:       subject.Key() + " " + predicate.Key() + " " + object.Key(),
	}, nil
}

// MustStatement is like NewStatement but panics on error.
func MustStatement(subject Resource, predicate *IRIResource, object Node) *Statement {
	s, err := NewStatement(subject, predicate, object)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Statement) Subject() Resource { return s.subject }

func (s *Statement) Predicate() *IRIResource { return s.predicate }

func (s *Statement) Object() Node { return s.object }

// Key is the canonical form used for deduplication.
func (s *Statement) Key() string { return s.key }

func (s *Statement) String() string {
	return fmt.Sprintf("%s %s %s .", s.subject, s.predicate, s.object)
}

func (s *Statement) Equals(other *Statement) bool {
	return other != nil && s.key == other.key
}
