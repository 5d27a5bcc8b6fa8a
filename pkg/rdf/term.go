package rdf

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/aleksaelezovic/quadline/pkg/iri"
)

// TermType represents the kind of an RDF node
type TermType byte

const (
	TermTypeIRI TermType = iota + 1
	TermTypeBlankNode
	TermTypeLiteral
	TermTypeVariable
)

func (t TermType) String() string {
	switch t {
	case TermTypeIRI:
		return "IRI"
	case TermTypeBlankNode:
		return "blank node"
	case TermTypeLiteral:
		return "literal"
	case TermTypeVariable:
		return "variable"
	}
	return fmt.Sprintf("TermType(%d)", byte(t))
}

// Node is an RDF value: an IRI, a blank node, a literal or a variable.
//
// String returns the N-Triples form. Key returns the canonical form used
// for indexing and equality; two nodes are equal exactly when their keys
// are equal.
type Node interface {
	Type() TermType
	String() string
	Key() string
	Equals(other Node) bool
}

// Resource is a node allowed in subject or graph-name position: an IRI or
// a blank node.
type Resource interface {
	Node
	resource()
}

// IRIResource represents an IRI node
type IRIResource struct {
	iri iri.IRI
}

func NewIRIResource(u iri.IRI) *IRIResource {
	return &IRIResource{iri: u}
}

// ParseIRIResource parses s (without angle brackets) into an IRI node.
func ParseIRIResource(s string) (*IRIResource, error) {
	u, err := iri.Parse(s)
	if err != nil {
		return nil, err
	}
	return NewIRIResource(u), nil
}

// MustIRI is like ParseIRIResource but panics on error.
func MustIRI(s string) *IRIResource {
	return NewIRIResource(iri.MustParse(s))
}

func (n *IRIResource) IRI() iri.IRI { return n.iri }

// Value returns the IRI without angle brackets.
func (n *IRIResource) Value() string { return n.iri.String() }

func (n *IRIResource) Type() TermType { return TermTypeIRI }

func (n *IRIResource) String() string { return "<" + n.iri.String() + ">" }

func (n *IRIResource) Key() string { return "<" + n.iri.Key() + ">" }

func (n *IRIResource) Equals(other Node) bool {
	if on, ok := other.(*IRIResource); ok {
		return n.iri.Equal(on.iri)
	}
	return false
}

func (n *IRIResource) resource() {}

// BlankNode represents a blank node
type BlankNode struct {
	id string
}

func NewBlankNode(id string) *BlankNode {
	return &BlankNode{id: id}
}

func (b *BlankNode) ID() string { return b.id }

func (b *BlankNode) Type() TermType { return TermTypeBlankNode }

func (b *BlankNode) String() string { return "_:" + b.id }

func (b *BlankNode) Key() string { return "_:" + b.id }

func (b *BlankNode) Equals(other Node) bool {
	if ob, ok := other.(*BlankNode); ok {
		return b.id == ob.id
	}
	return false
}

func (b *BlankNode) resource() {}

// Variable is a named placeholder used in query patterns.
type Variable struct {
	name string
}

func NewVariable(name string) *Variable {
	return &Variable{name: name}
}

func (v *Variable) Name() string { return v.name }

func (v *Variable) Type() TermType { return TermTypeVariable }

func (v *Variable) String() string { return "?" + v.name }

func (v *Variable) Key() string { return "?" + v.name }

func (v *Variable) Equals(other Node) bool {
	if ov, ok := other.(*Variable); ok {
		return v.name == ov.name
	}
	return false
}

// Literal represents an RDF literal. The datatype is never nil; a language
// tag is only present on xsd:string literals.
type Literal struct {
	value    string
	datatype *Datatype
	lang     string
}

// NewLiteral builds a literal. A nil datatype means xsd:string. A language
// tag combined with any other datatype is rejected.
func NewLiteral(value string, datatype *Datatype, lang string) (*Literal, error) {
	if datatype == nil {
		datatype = XSDString
	}
	if lang != "" && !datatype.IsString() {
		return nil, &LiteralError{
			Token:  value,
			Reason: fmt.Sprintf("language tag %q cannot be combined with datatype %s", lang, datatype),
		}
	}
	return &Literal{value: value, datatype: datatype, lang: lang}, nil
}

func NewStringLiteral(value string) *Literal {
	return &Literal{value: value, datatype: XSDString}
}

func NewLangLiteral(value, lang string) *Literal {
	return &Literal{value: value, datatype: XSDString, lang: lang}
}

// NewTypedLiteral builds a literal without a language tag.
func NewTypedLiteral(value string, datatype *Datatype) *Literal {
	if datatype == nil {
		datatype = XSDString
	}
	return &Literal{value: value, datatype: datatype}
}

func NewBooleanLiteral(value bool) *Literal {
	return NewTypedLiteral(strconv.FormatBool(value), XSDBoolean)
}

func NewIntegerLiteral(value int64) *Literal {
	return NewTypedLiteral(strconv.FormatInt(value, 10), XSDInteger)
}

func NewBigIntegerLiteral(value *big.Int) *Literal {
	return NewTypedLiteral(value.String(), XSDInteger)
}

func NewDecimalLiteral(value float64) *Literal {
	return NewTypedLiteral(formatDecimal(value), XSDDecimal)
}

func NewDoubleLiteral(value float64) *Literal {
	return NewTypedLiteral(formatDouble(value), XSDDouble)
}

func NewDateTimeLiteral(value time.Time) *Literal {
	return NewTypedLiteral(value.Format(time.RFC3339Nano), XSDDateTime)
}

// Value returns the unescaped lexical form.
func (l *Literal) Value() string { return l.value }

func (l *Literal) Datatype() *Datatype { return l.datatype }

// Language returns the language tag, or "" when there is none.
func (l *Literal) Language() string { return l.lang }

// IsString reports whether l is a plain or language-tagged string.
func (l *Literal) IsString() bool { return l.datatype.IsString() }

func (l *Literal) Type() TermType { return TermTypeLiteral }

// Format renders the literal. Plain string literals are written without
// quotes when quoted is false; language-tagged and typed literals always
// carry their quotes and suffix.
func (l *Literal) Format(quoted bool) string {
	switch {
	case l.lang != "":
		return `"` + Escape(l.value) + `"@` + l.lang
	case l.datatype.IsString():
		if !quoted {
			return l.value
		}
		return `"` + Escape(l.value) + `"`
	default:
		return `"` + Escape(l.value) + `"^^<` + l.datatype.String() + `>`
	}
}

func (l *Literal) String() string { return l.Format(true) }

func (l *Literal) Key() string {
	switch {
	case l.lang != "":
		return `"` + Escape(l.value) + `"@` + strings.ToLower(l.lang)
	case l.datatype.IsString():
		return `"` + Escape(l.value) + `"`
	default:
		return `"` + Escape(l.value) + `"^^<` + l.datatype.IRI().Key() + `>`
	}
}

func (l *Literal) Equals(other Node) bool {
	if ol, ok := other.(*Literal); ok {
		return l.Key() == ol.Key()
	}
	return false
}
