package store

import (
	"github.com/aleksaelezovic/quadline/pkg/rdf"
)

// Pattern is a triple pattern. A nil position or an *rdf.Variable matches
// anything; a variable used in two positions only matches statements where
// both positions hold equal nodes.
type Pattern struct {
	Subject   rdf.Node
	Predicate rdf.Node
	Object    rdf.Node
}

func isBound(n rdf.Node) bool {
	return n != nil && n.Type() != rdf.TermTypeVariable
}

// Bound reports which positions are fixed to a concrete node.
func (p Pattern) Bound() (s, pr, o bool) {
	return isBound(p.Subject), isBound(p.Predicate), isBound(p.Object)
}

// Matches reports whether stmt satisfies the pattern.
func (p Pattern) Matches(stmt *rdf.Statement) bool {
	var bindings map[string]rdf.Node
	check := func(want rdf.Node, got rdf.Node) bool {
		switch {
		case want == nil:
			return true
		case want.Type() == rdf.TermTypeVariable:
			name := want.(*rdf.Variable).Name()
			if prev, ok := bindings[name]; ok {
				return prev.Equals(got)
			}
			if bindings == nil {
				bindings = make(map[string]rdf.Node, 3)
			}
			bindings[name] = got
			return true
		default:
			return want.Equals(got)
		}
	}
	return check(p.Subject, stmt.Subject()) &&
		check(p.Predicate, stmt.Predicate()) &&
		check(p.Object, stmt.Object())
}

// Bindings returns the variable bindings stmt produces for the pattern, or
// nil when it does not match.
func (p Pattern) Bindings(stmt *rdf.Statement) map[string]rdf.Node {
	if !p.Matches(stmt) {
		return nil
	}
	out := make(map[string]rdf.Node)
	for _, pair := range []struct {
		pattern rdf.Node
		value   rdf.Node
	}{
		{p.Subject, stmt.Subject()},
		{p.Predicate, stmt.Predicate()},
		{p.Object, stmt.Object()},
	} {
		if v, ok := pair.pattern.(*rdf.Variable); ok {
			out[v.Name()] = pair.value
		}
	}
	return out
}

func filter(stmts []*rdf.Statement, p Pattern) []*rdf.Statement {
	out := stmts[:0:0]
	for _, s := range stmts {
		if p.Matches(s) {
			out = append(out, s)
		}
	}
	return out
}
