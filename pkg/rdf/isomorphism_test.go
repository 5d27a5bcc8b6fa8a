package rdf

import (
	"testing"
)

var (
	isoProp  = MustIRI("http://example.org/property")
	isoKnows = MustIRI("http://example.org/knows")
)

func TestIsomorphic_EmptyGraphs(t *testing.T) {
	if !Isomorphic(nil, []*Statement{}) {
		t.Error("Empty graphs should be isomorphic")
	}
}

func TestIsomorphic_NoBlankNodes(t *testing.T) {
	expected := []*Statement{MustStatement(MustIRI("http://example.org/subject"), isoProp, NewStringLiteral("object"))}
	actual := []*Statement{MustStatement(MustIRI("http://example.org/subject"), isoProp, NewTypedLiteral("object", XSDString))}

	if !Isomorphic(expected, actual) {
		t.Error("Identical graphs without blank nodes should be isomorphic")
	}

	actual = []*Statement{MustStatement(MustIRI("http://example.org/subject2"), isoProp, NewStringLiteral("object"))}
	if Isomorphic(expected, actual) {
		t.Error("Different graphs should not be isomorphic")
	}
}

func TestIsomorphic_SingleBlankNode(t *testing.T) {
	// _:j0 <property> "value" .  vs  _:b1 <property> "value" .
	expected := []*Statement{MustStatement(NewBlankNode("j0"), isoProp, NewStringLiteral("value"))}
	actual := []*Statement{MustStatement(NewBlankNode("b1"), isoProp, NewStringLiteral("value"))}

	if !Isomorphic(expected, actual) {
		t.Error("Graphs with single blank node should be isomorphic despite different labels")
	}
}

func TestIsomorphic_Chain(t *testing.T) {
	// a -> b -> c relabeled and reordered
	expected := []*Statement{
		MustStatement(NewBlankNode("a"), isoKnows, NewBlankNode("b")),
		MustStatement(NewBlankNode("b"), isoKnows, NewBlankNode("c")),
		MustStatement(NewBlankNode("c"), isoProp, NewStringLiteral("end")),
	}
	actual := []*Statement{
		MustStatement(NewBlankNode("z"), isoProp, NewStringLiteral("end")),
		MustStatement(NewBlankNode("y"), isoKnows, NewBlankNode("z")),
		MustStatement(NewBlankNode("x"), isoKnows, NewBlankNode("y")),
	}
	if !Isomorphic(expected, actual) {
		t.Error("Relabeled chains should be isomorphic")
	}

	// The literal now hangs off the middle node.
	actual[0] = MustStatement(NewBlankNode("y"), isoProp, NewStringLiteral("end"))
	if Isomorphic(expected, actual) {
		t.Error("Chains with different structure should not be isomorphic")
	}
}

func TestIsomorphic_BlankCountDiffers(t *testing.T) {
	expected := []*Statement{
		MustStatement(NewBlankNode("a"), isoKnows, NewBlankNode("a")),
	}
	actual := []*Statement{
		MustStatement(NewBlankNode("a"), isoKnows, NewBlankNode("b")),
	}
	if Isomorphic(expected, actual) {
		t.Error("A self loop is not isomorphic to an edge between two nodes")
	}
}

func TestIsomorphic_BlankVersusIRI(t *testing.T) {
	expected := []*Statement{MustStatement(NewBlankNode("a"), isoProp, NewStringLiteral("v"))}
	actual := []*Statement{MustStatement(MustIRI("http://example.org/a"), isoProp, NewStringLiteral("v"))}
	if Isomorphic(expected, actual) {
		t.Error("A blank node does not match an IRI")
	}
}

func TestIsomorphicDatasets_SharedMapping(t *testing.T) {
	g := MustIRI("http://example.org/g").Key()

	expected := []GraphStatement{
		{Statement: MustStatement(NewBlankNode("a"), isoProp, NewStringLiteral("default"))},
		{Graph: g, Statement: MustStatement(NewBlankNode("a"), isoProp, NewStringLiteral("named"))},
		{Graph: g, Statement: MustStatement(NewBlankNode("b"), isoProp, NewStringLiteral("other"))},
	}
	actual := []GraphStatement{
		{Statement: MustStatement(NewBlankNode("x"), isoProp, NewStringLiteral("default"))},
		{Graph: g, Statement: MustStatement(NewBlankNode("x"), isoProp, NewStringLiteral("named"))},
		{Graph: g, Statement: MustStatement(NewBlankNode("y"), isoProp, NewStringLiteral("other"))},
	}
	if !IsomorphicDatasets(expected, actual) {
		t.Error("Datasets should be isomorphic")
	}

	// Same statements but the named-graph node is no longer shared.
	actual[1] = GraphStatement{Graph: g, Statement: MustStatement(NewBlankNode("y"), isoProp, NewStringLiteral("named"))}
	actual[2] = GraphStatement{Graph: g, Statement: MustStatement(NewBlankNode("x"), isoProp, NewStringLiteral("other"))}
	if IsomorphicDatasets(expected, actual) {
		t.Error("Blank node mapping must hold across graphs")
	}

	// Same statement moved to another graph.
	actual = []GraphStatement{
		{Graph: g, Statement: MustStatement(NewBlankNode("x"), isoProp, NewStringLiteral("default"))},
		{Graph: g, Statement: MustStatement(NewBlankNode("x"), isoProp, NewStringLiteral("named"))},
		{Graph: g, Statement: MustStatement(NewBlankNode("y"), isoProp, NewStringLiteral("other"))},
	}
	if IsomorphicDatasets(expected, actual) {
		t.Error("Graph membership must match")
	}
}
