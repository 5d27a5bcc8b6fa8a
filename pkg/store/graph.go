// Package store holds committed statements in graphs with selectable
// indexing strategies, and groups graphs into a Database.
package store

import (
	"errors"

	"github.com/aleksaelezovic/quadline/pkg/rdf"
)

// ErrClosed is returned by operations on a closed graph.
var ErrClosed = errors.New("graph is closed")

// Graph is a deduplicated collection of statements. All strategies return
// the same results for the same sequence of operations; results come back
// in insertion order. Graphs are not safe for concurrent mutation.
type Graph interface {
	Strategy() Strategy
	Count() int

	// AddStatement adds stmt and reports false when it was already present.
	AddStatement(stmt *rdf.Statement) (bool, error)
	// RemoveStatement removes stmt and reports false when it was absent.
	RemoveStatement(stmt *rdf.Statement) (bool, error)
	Contains(stmt *rdf.Statement) (bool, error)

	Statements() ([]*rdf.Statement, error)
	StatementsForSubject(subject rdf.Resource) ([]*rdf.Statement, error)
	StatementsForPredicate(predicate *rdf.IRIResource) ([]*rdf.Statement, error)
	StatementsForObject(object rdf.Node) ([]*rdf.Statement, error)
	Match(p Pattern) ([]*rdf.Statement, error)

	Close() error
}

// backend is what a strategy implements. candidates returns a superset of
// the statements matching p, in insertion order, drawn from the cheapest
// index available.
type backend interface {
	add(stmt *rdf.Statement) (bool, error)
	remove(stmt *rdf.Statement) (bool, error)
	contains(stmt *rdf.Statement) (bool, error)
	candidates(p Pattern) ([]*rdf.Statement, error)
	count() int
	close() error
}

type graph struct {
	strategy Strategy
	b        backend
	closed   bool
}

func (g *graph) Strategy() Strategy { return g.strategy }

func (g *graph) Count() int { return g.b.count() }

func (g *graph) AddStatement(stmt *rdf.Statement) (bool, error) {
	if g.closed {
		return false, ErrClosed
	}
	return g.b.add(stmt)
}

func (g *graph) RemoveStatement(stmt *rdf.Statement) (bool, error) {
	if g.closed {
		return false, ErrClosed
	}
	return g.b.remove(stmt)
}

func (g *graph) Contains(stmt *rdf.Statement) (bool, error) {
	if g.closed {
		return false, ErrClosed
	}
	return g.b.contains(stmt)
}

func (g *graph) Statements() ([]*rdf.Statement, error) {
	return g.Match(Pattern{})
}

func (g *graph) StatementsForSubject(subject rdf.Resource) ([]*rdf.Statement, error) {
	return g.Match(Pattern{Subject: subject})
}

func (g *graph) StatementsForPredicate(predicate *rdf.IRIResource) ([]*rdf.Statement, error) {
	if predicate == nil {
		return g.Match(Pattern{})
	}
	return g.Match(Pattern{Predicate: predicate})
}

func (g *graph) StatementsForObject(object rdf.Node) ([]*rdf.Statement, error) {
	return g.Match(Pattern{Object: object})
}

func (g *graph) Match(p Pattern) ([]*rdf.Statement, error) {
	if g.closed {
		return nil, ErrClosed
	}
	cands, err := g.b.candidates(p)
	if err != nil {
		return nil, err
	}
	return filter(cands, p), nil
}

func (g *graph) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	return g.b.close()
}

// arena is the append-only statement vector shared by the in-memory
// strategies. Removal leaves a nil tombstone so positions stay stable.
type arena struct {
	stmts []*rdf.Statement
	byKey map[string]int
	live  int
}

func newArena() *arena {
	return &arena{byKey: make(map[string]int)}
}

func (a *arena) add(stmt *rdf.Statement) (int, bool) {
	if pos, ok := a.byKey[stmt.Key()]; ok {
		return pos, false
	}
	pos := len(a.stmts)
	a.stmts = append(a.stmts, stmt)
	a.byKey[stmt.Key()] = pos
	a.live++
	return pos, true
}

func (a *arena) remove(stmt *rdf.Statement) (int, bool) {
	pos, ok := a.byKey[stmt.Key()]
	if !ok {
		return 0, false
	}
	delete(a.byKey, stmt.Key())
	a.stmts[pos] = nil
	a.live--
	return pos, true
}

func (a *arena) contains(stmt *rdf.Statement) bool {
	_, ok := a.byKey[stmt.Key()]
	return ok
}

func (a *arena) all() []*rdf.Statement {
	out := make([]*rdf.Statement, 0, a.live)
	for _, s := range a.stmts {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (a *arena) at(positions []int) []*rdf.Statement {
	out := make([]*rdf.Statement, 0, len(positions))
	for _, pos := range positions {
		if s := a.stmts[pos]; s != nil {
			out = append(out, s)
		}
	}
	return out
}
