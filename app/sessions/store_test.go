package sessions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore("")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSessionRoundtrip(t *testing.T) {
	store := newTestStore(t)

	token, err := store.Create(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := store.Get(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, userID)
}

func TestSessionUnknownToken(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get("nope")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSessionDelete(t *testing.T) {
	store := newTestStore(t)

	token, err := store.Create(7)
	require.NoError(t, err)
	require.NoError(t, store.Delete(token))

	_, err = store.Get(token)
	assert.ErrorIs(t, err, ErrNoSession)

	// revoking again is fine
	assert.NoError(t, store.Delete(token))
}

func TestSessionExpiry(t *testing.T) {
	store := newTestStore(t)
	store.SetTTL(time.Millisecond)

	token, err := store.Create(7)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	_, err = store.Get(token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSessionTokensDistinct(t *testing.T) {
	store := newTestStore(t)

	t1, err := store.Create(1)
	require.NoError(t, err)
	t2, err := store.Create(1)
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)
}
