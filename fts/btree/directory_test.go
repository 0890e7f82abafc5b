package btree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-fulltext-index/ftserrors"
)

func newTestDirectory(t *testing.T) *Directory {
	t.Helper()
	path := filepath.Join(t.TempDir(), "terms.db")
	d, err := Create(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestInsertAndSearch(t *testing.T) {
	d := newTestDirectory(t)

	require.NoError(t, d.Insert("ant", 1))
	require.NoError(t, d.Insert("bee", 2))
	require.NoError(t, d.Insert("cat", 3))
	require.NoError(t, d.FlushAllPages())

	v, ok, err := d.Search("bee")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint32(2), v)

	_, ok, err = d.Search("dog")
	require.NoError(t, err)
	require.False(t, ok)
}

// TestCrashSafeInsert is spec scenario 4: insert ["ant","bee","cat","dog"]
// into an empty tree, call RecoverAllPages after the third insert; a
// re-read yields only ["ant","bee"] with entryCount=2 because ant and
// bee were each flushed and cat was not.
func TestCrashSafeInsert(t *testing.T) {
	d := newTestDirectory(t)

	require.NoError(t, d.Insert("ant", 1))
	require.NoError(t, d.FlushAllPages())
	require.NoError(t, d.Insert("bee", 2))
	require.NoError(t, d.FlushAllPages())
	require.NoError(t, d.Insert("cat", 3))
	require.NoError(t, d.RecoverAllPages())

	_, ok, err := d.Search("cat")
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = d.Search("ant")
	require.NoError(t, err)
	require.True(t, ok)
	_, ok, err = d.Search("bee")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, d.Verify())
}

func TestInsertCausesSplitAndGrowsDepth(t *testing.T) {
	d := newTestDirectory(t)

	keys := []string{"ant", "bee", "cat", "dog", "eel", "fox", "gnu", "hog"}
	for i, k := range keys {
		require.NoError(t, d.Insert(k, uint32(i+1)))
	}
	require.NoError(t, d.FlushAllPages())

	for i, k := range keys {
		v, ok, err := d.Search(k)
		require.NoError(t, err)
		require.True(t, ok, "expected %q present", k)
		require.Equal(t, uint32(i+1), v)
	}
	require.NoError(t, d.Verify())
}

func TestExpungeRemovesKey(t *testing.T) {
	d := newTestDirectory(t)
	require.NoError(t, d.Insert("ant", 1))
	require.NoError(t, d.Insert("bee", 2))
	require.NoError(t, d.Expunge("ant"))
	require.NoError(t, d.FlushAllPages())

	_, ok, err := d.Search("ant")
	require.NoError(t, err)
	require.False(t, ok)

	v, ok, err := d.Search("bee")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint32(2), v)
}

func TestUpdateRenamesKey(t *testing.T) {
	d := newTestDirectory(t)
	require.NoError(t, d.Insert("ant", 1))
	require.NoError(t, d.Update("ant", 1, "ants", 11))
	require.NoError(t, d.FlushAllPages())

	_, ok, err := d.Search("ant")
	require.NoError(t, err)
	require.False(t, ok)

	v, ok, err := d.Search("ants")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint32(11), v)
}

func TestUpdateAbsentKeyIsEntryNotFound(t *testing.T) {
	d := newTestDirectory(t)
	err := d.Update("missing", 0, "replacement", 1)
	require.Error(t, err)
	require.True(t, ftserrors.ErrEntryNotFound.Is(err))
}

func TestUpdateOntoExistingKeyKeepsCountConsistent(t *testing.T) {
	d := newTestDirectory(t)
	require.NoError(t, d.Insert("ant", 1))
	require.NoError(t, d.Insert("bee", 2))
	require.NoError(t, d.Update("ant", 1, "bee", 22))
	require.NoError(t, d.FlushAllPages())

	_, ok, err := d.Search("ant")
	require.NoError(t, err)
	require.False(t, ok)

	v, ok, err := d.Search("bee")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint32(22), v)

	require.NoError(t, d.Verify())
}

func TestExpungeEmptiedLeafIsUnlinked(t *testing.T) {
	d := newTestDirectory(t)
	keys := []string{"ant", "bee", "cat", "dog", "eel", "fox", "gnu", "hog"}
	for i, k := range keys {
		require.NoError(t, d.Insert(k, uint32(i+1)))
	}
	// Drain one side of the tree so at least one leaf empties out.
	for _, k := range []string{"eel", "fox", "gnu", "hog"} {
		require.NoError(t, d.Expunge(k))
	}
	require.NoError(t, d.FlushAllPages())

	for i, k := range []string{"ant", "bee", "cat", "dog"} {
		v, ok, err := d.Search(k)
		require.NoError(t, err)
		require.True(t, ok, "expected %q present", k)
		require.Equal(t, uint32(i+1), v)
	}
	require.NoError(t, d.Verify())
}

func TestVerifyPassesAfterManyInserts(t *testing.T) {
	d := newTestDirectory(t)
	words := []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta", "iota", "kappa"}
	for i, w := range words {
		require.NoError(t, d.Insert(w, uint32(i)))
	}
	require.NoError(t, d.FlushAllPages())
	require.NoError(t, d.Verify())
}

func TestMove(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.db")
	newPath := filepath.Join(dir, "new.db")

	d, err := Create(oldPath, nil)
	require.NoError(t, err)
	require.NoError(t, d.Insert("ant", 1))
	require.NoError(t, d.FlushAllPages())
	require.NoError(t, d.Move(newPath))
	defer d.Close()

	_, err = os.Stat(newPath)
	require.NoError(t, err)

	v, ok, err := d.Search("ant")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint32(1), v)
}

func TestClear(t *testing.T) {
	d := newTestDirectory(t)
	require.NoError(t, d.Insert("ant", 1))
	require.NoError(t, d.FlushAllPages())
	require.NoError(t, d.Clear())

	_, ok, err := d.Search("ant")
	require.NoError(t, err)
	require.False(t, ok)
}
