package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *BadgerStorage {
	t.Helper()
	s, err := NewMemoryStorage()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGetSetDelete(t *testing.T) {
	s := newTestStorage(t)

	err := s.Update(func(txn Transaction) error {
		return txn.Set(TableSPO, []byte("k1"), []byte("v1"))
	})
	require.NoError(t, err)

	err = s.View(func(txn Transaction) error {
		v, err := txn.Get(TableSPO, []byte("k1"))
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), v)

		_, err = txn.Get(TablePOS, []byte("k1"))
		assert.ErrorIs(t, err, ErrNotFound, "tables are separate namespaces")
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, s.Update(func(txn Transaction) error {
		return txn.Delete(TableSPO, []byte("k1"))
	}))
	require.NoError(t, s.View(func(txn Transaction) error {
		_, err := txn.Get(TableSPO, []byte("k1"))
		assert.ErrorIs(t, err, ErrNotFound)
		return nil
	}))
}

func TestReadOnlyTransaction(t *testing.T) {
	s := newTestStorage(t)

	txn, err := s.Begin(false)
	require.NoError(t, err)
	defer txn.Rollback()

	assert.ErrorIs(t, txn.Set(TableSPO, []byte("k"), []byte("v")), ErrTransactionRO)
	assert.ErrorIs(t, txn.Delete(TableSPO, []byte("k")), ErrTransactionRO)
}

func TestScanPrefix(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.Update(func(txn Transaction) error {
		for _, k := range []string{"a1", "a2", "b1", "a3"} {
			if err := txn.Set(TableOSP, []byte(k), []byte("v"+k)); err != nil {
				return err
			}
		}
		return txn.Set(TableSPO, []byte("a9"), []byte("other table"))
	}))

	require.NoError(t, s.View(func(txn Transaction) error {
		it, err := txn.Scan(TableOSP, []byte("a"))
		require.NoError(t, err)
		defer it.Close()

		var keys, values []string
		for it.Next() {
			keys = append(keys, string(it.Key()))
			v, err := it.Value()
			require.NoError(t, err)
			values = append(values, string(v))
		}
		assert.Equal(t, []string{"a1", "a2", "a3"}, keys)
		assert.Equal(t, []string{"va1", "va2", "va3"}, values)
		return nil
	}))

	require.NoError(t, s.View(func(txn Transaction) error {
		it, err := txn.Scan(TableOSP, nil)
		require.NoError(t, err)
		defer it.Close()

		n := 0
		for it.Next() {
			n++
		}
		assert.Equal(t, 4, n)
		return nil
	}))
}

func TestUpdateRollsBackOnError(t *testing.T) {
	s := newTestStorage(t)

	err := s.Update(func(txn Transaction) error {
		require.NoError(t, txn.Set(TableSPO, []byte("k"), []byte("v")))
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	require.NoError(t, s.View(func(txn Transaction) error {
		_, err := txn.Get(TableSPO, []byte("k"))
		assert.ErrorIs(t, err, ErrNotFound)
		return nil
	}))
}
