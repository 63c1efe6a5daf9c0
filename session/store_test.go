package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "sessions.db"))
	require.NoError(t, err)
	defer store.Close()

	s := New("Wallet Smoke", "run-1")
	s.Case("wal-1").Verdict = VerdictFail
	s.Case("wal-1").Notes = "spinner hangs"
	s.Meta.Collector = "dana"
	s.Meta.Environment.Channels = []string{"Nightly"}

	require.NoError(t, store.Save(s.Key(), s))

	got, ok, err := store.Load(s.Key())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Wallet Smoke", got.Title)
	assert.Equal(t, VerdictFail, got.Case("wal-1").Verdict)
	assert.Equal(t, "spinner hangs", got.Case("wal-1").Notes)
	assert.Equal(t, "dana", got.Meta.Collector)
	assert.Equal(t, []string{"Nightly"}, got.Meta.Environment.Channels)
}

func TestSQLiteStoreMissingKey(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	defer store.Close()

	_, ok, err := store.Load("checkrun:unknown:run")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStoreOverwrite(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	defer store.Close()

	s := New("T", "run-1")
	require.NoError(t, store.Save(s.Key(), s))

	s.Case("c1").Verdict = VerdictPass
	require.NoError(t, store.Save(s.Key(), s))

	got, ok, err := store.Load(s.Key())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, VerdictPass, got.Case("c1").Verdict)
}

func TestSQLiteStoreLatestRun(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	defer store.Close()

	_, ok, err := store.LatestRun("Wallet Smoke")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(Key("Wallet Smoke", "run-1"), New("Wallet Smoke", "run-1")))
	require.NoError(t, store.Save(Key("Wallet Smoke", "run-2"), New("Wallet Smoke", "run-2")))

	id, ok, err := store.LatestRun("Wallet Smoke")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, []string{"run-1", "run-2"}, id)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	_, ok, err := store.Load("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	s := New("T", "run-1")
	s.Case("c1").Checked = true
	require.NoError(t, store.Save(s.Key(), s))

	got, ok, err := store.Load(s.Key())
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Case("c1").Checked)
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "checkrun:wallet-smoke:run-1", Key("Wallet Smoke", "run-1"))
	assert.Equal(t, Key("Wallet Smoke", "run-1"), New("Wallet Smoke", "run-1").Key())
}
