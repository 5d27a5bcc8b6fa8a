package store

import (
	"errors"
	"fmt"
	"slices"

	"github.com/aleksaelezovic/quadline/internal/encoding"
	"github.com/aleksaelezovic/quadline/internal/storage"
	"github.com/aleksaelezovic/quadline/pkg/rdf"
)

// kv indexes statements in an in-memory key-value store. Each statement is
// written to the SPO, POS and OSP tables under the concatenation of its
// encoded terms; the value is the statement's arena position.
type kv struct {
	db    *storage.BadgerStorage
	stmts []*rdf.Statement
	live  int
}

func newKV() (*kv, error) {
	db, err := storage.NewMemoryStorage()
	if err != nil {
		return nil, err
	}
	return &kv{db: db}, nil
}

type encodedStatement struct {
	s, p, o encoding.EncodedTerm
}

func encodeStatement(stmt *rdf.Statement) encodedStatement {
	return encodedStatement{
		s: encoding.Encode(stmt.Subject()),
		p: encoding.Encode(stmt.Predicate()),
		o: encoding.Encode(stmt.Object()),
	}
}

func (e encodedStatement) keys() map[storage.Table][]byte {
	return map[storage.Table][]byte{
		storage.TableSPO: encoding.Key(e.s, e.p, e.o),
		storage.TablePOS: encoding.Key(e.p, e.o, e.s),
		storage.TableOSP: encoding.Key(e.o, e.s, e.p),
	}
}

// lookup returns the arena position stored for stmt, or -1.
func (k *kv) lookup(txn storage.Transaction, enc encodedStatement, stmt *rdf.Statement) (int, error) {
	v, err := txn.Get(storage.TableSPO, encoding.Key(enc.s, enc.p, enc.o))
	if errors.Is(err, storage.ErrNotFound) {
		return -1, nil
	}
	if err != nil {
		return -1, err
	}
	pos := encoding.DecodePosition(v)
	if existing := k.stmts[pos]; existing == nil || !existing.Equals(stmt) {
		return -1, fmt.Errorf("key collision between %s and %v", stmt, existing)
	}
	return pos, nil
}

func (k *kv) add(stmt *rdf.Statement) (bool, error) {
	enc := encodeStatement(stmt)
	added := false
	err := k.db.Update(func(txn storage.Transaction) error {
		pos, err := k.lookup(txn, enc, stmt)
		if err != nil || pos >= 0 {
			return err
		}

		value := encoding.EncodePosition(len(k.stmts))
		for table, key := range enc.keys() {
			if err := txn.Set(table, key, value); err != nil {
				return fmt.Errorf("failed to write %s index: %w", table, err)
			}
		}
		added = true
		return nil
	})
	if err != nil || !added {
		return false, err
	}
	k.stmts = append(k.stmts, stmt)
	k.live++
	return true, nil
}

func (k *kv) remove(stmt *rdf.Statement) (bool, error) {
	enc := encodeStatement(stmt)
	pos := -1
	err := k.db.Update(func(txn storage.Transaction) error {
		var err error
		pos, err = k.lookup(txn, enc, stmt)
		if err != nil || pos < 0 {
			return err
		}
		for table, key := range enc.keys() {
			if err := txn.Delete(table, key); err != nil {
				return fmt.Errorf("failed to delete from %s index: %w", table, err)
			}
		}
		return nil
	})
	if err != nil || pos < 0 {
		return false, err
	}
	k.stmts[pos] = nil
	k.live--
	return true, nil
}

func (k *kv) contains(stmt *rdf.Statement) (bool, error) {
	enc := encodeStatement(stmt)
	found := false
	err := k.db.View(func(txn storage.Transaction) error {
		pos, err := k.lookup(txn, enc, stmt)
		found = pos >= 0
		return err
	})
	return found, err
}

// selectTable chooses the table whose key order puts the most bound
// positions first, and the prefix to scan it with.
func selectTable(p Pattern) (storage.Table, []byte) {
	sBound, pBound, oBound := p.Bound()
	enc := func(n rdf.Node) encoding.EncodedTerm { return encoding.Encode(n) }

	switch {
	case sBound && pBound && oBound:
		return storage.TableSPO, encoding.Key(enc(p.Subject), enc(p.Predicate), enc(p.Object))
	case sBound && pBound:
		return storage.TableSPO, encoding.Key(enc(p.Subject), enc(p.Predicate))
	case pBound && oBound:
		return storage.TablePOS, encoding.Key(enc(p.Predicate), enc(p.Object))
	case oBound && sBound:
		return storage.TableOSP, encoding.Key(enc(p.Object), enc(p.Subject))
	case sBound:
		return storage.TableSPO, encoding.Key(enc(p.Subject))
	case pBound:
		return storage.TablePOS, encoding.Key(enc(p.Predicate))
	case oBound:
		return storage.TableOSP, encoding.Key(enc(p.Object))
	}
	return storage.TableSPO, nil
}

func (k *kv) candidates(p Pattern) ([]*rdf.Statement, error) {
	table, prefix := selectTable(p)

	var positions []int
	err := k.db.View(func(txn storage.Transaction) error {
		it, err := txn.Scan(table, prefix)
		if err != nil {
			return err
		}
		defer it.Close()

		for it.Next() {
			v, err := it.Value()
			if err != nil {
				return err
			}
			positions = append(positions, encoding.DecodePosition(v))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(positions)
	out := make([]*rdf.Statement, 0, len(positions))
	for _, pos := range positions {
		if s := k.stmts[pos]; s != nil {
			out = append(out, s)
		}
	}
	return out, nil
}

func (k *kv) count() int { return k.live }

func (k *kv) close() error { return k.db.Close() }
