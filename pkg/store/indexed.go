package store

import (
	"slices"

	"github.com/aleksaelezovic/quadline/pkg/rdf"
)

// postings maps a node key to the ascending arena positions of the
// statements holding that node in one column.
type postings map[string][]int

func (p postings) add(key string, pos int) {
	p[key] = append(p[key], pos)
}

func (p postings) remove(key string, pos int) {
	list := p[key]
	i, found := slices.BinarySearch(list, pos)
	if !found {
		return
	}
	list = slices.Delete(list, i, i+1)
	if len(list) == 0 {
		delete(p, key)
		return
	}
	p[key] = list
}

// indexed keeps SPO and OPS indexes, plus PSO when full is set. Every index
// covers every live statement.
type indexed struct {
	stmts *arena
	spo   postings
	ops   postings
	pso   postings // nil unless fully indexed
}

func newIndexed(full bool) *indexed {
	x := &indexed{
		stmts: newArena(),
		spo:   make(postings),
		ops:   make(postings),
	}
	if full {
		x.pso = make(postings)
	}
	return x
}

func (x *indexed) add(stmt *rdf.Statement) (bool, error) {
	pos, added := x.stmts.add(stmt)
	if !added {
		return false, nil
	}
	x.spo.add(stmt.Subject().Key(), pos)
	x.ops.add(stmt.Object().Key(), pos)
	if x.pso != nil {
		x.pso.add(stmt.Predicate().Key(), pos)
	}
	return true, nil
}

func (x *indexed) remove(stmt *rdf.Statement) (bool, error) {
	pos, ok := x.stmts.remove(stmt)
	if !ok {
		return false, nil
	}
	x.spo.remove(stmt.Subject().Key(), pos)
	x.ops.remove(stmt.Object().Key(), pos)
	if x.pso != nil {
		x.pso.remove(stmt.Predicate().Key(), pos)
	}
	return true, nil
}

func (x *indexed) contains(stmt *rdf.Statement) (bool, error) {
	return x.stmts.contains(stmt), nil
}

// candidates picks the shortest posting list among the bound positions
// that have an index, falling back to a full scan.
func (x *indexed) candidates(p Pattern) ([]*rdf.Statement, error) {
	var best []int
	found := false
	consider := func(idx postings, n rdf.Node) {
		if idx == nil || !isBound(n) {
			return
		}
		list := idx[n.Key()]
		if !found || len(list) < len(best) {
			best, found = list, true
		}
	}
	consider(x.spo, p.Subject)
	consider(x.pso, p.Predicate)
	consider(x.ops, p.Object)

	if !found {
		return x.stmts.all(), nil
	}
	return x.stmts.at(best), nil
}

func (x *indexed) count() int { return x.stmts.live }

func (x *indexed) close() error { return nil }
