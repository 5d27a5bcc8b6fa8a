package store

import (
	"github.com/aleksaelezovic/quadline/pkg/rdf"
)

// unindexed answers every query with a full scan of the statement set.
type unindexed struct {
	set *arena
}

func newUnindexed() *unindexed {
	return &unindexed{set: newArena()}
}

func (u *unindexed) add(stmt *rdf.Statement) (bool, error) {
	_, added := u.set.add(stmt)
	return added, nil
}

func (u *unindexed) remove(stmt *rdf.Statement) (bool, error) {
	_, ok := u.set.remove(stmt)
	return ok, nil
}

func (u *unindexed) contains(stmt *rdf.Statement) (bool, error) {
	return u.set.contains(stmt), nil
}

func (u *unindexed) candidates(Pattern) ([]*rdf.Statement, error) {
	return u.set.all(), nil
}

func (u *unindexed) count() int { return u.set.live }

func (u *unindexed) close() error { return nil }
