package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func providers(t *testing.T) map[string]Provider {
	t.Helper()

	fp, err := NewFileProvider(t.TempDir())
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rp := NewRedisProvider(redis.NewClient(&redis.Options{Addr: mr.Addr()}), 0)
	t.Cleanup(func() { rp.Close() })

	return map[string]Provider{
		"memory": NewMemProvider(),
		"file":   fp,
		"redis":  rp,
	}
}

func TestProviders_GetSetRemove(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			st := p.Namespace("visitor-a")

			_, err := st.Get(KeyCart)
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, st.Set(KeyCart, `[{"id":"1"}]`))
			require.NoError(t, st.Set(KeyToken, "tok"))

			v, err := st.Get(KeyCart)
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"1"}]`, v)

			require.NoError(t, st.Remove(KeyCart, KeyToken, "missing"))
			_, err = st.Get(KeyCart)
			assert.ErrorIs(t, err, ErrNotFound)
			_, err = st.Get(KeyToken)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestProviders_NamespacesAreIsolated(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			a := p.Namespace("a")
			b := p.Namespace("b")

			require.NoError(t, a.Set(KeyUser, `{"id":"1"}`))

			_, err := b.Get(KeyUser)
			assert.ErrorIs(t, err, ErrNotFound)

			again, err := p.Namespace("a").Get(KeyUser)
			require.NoError(t, err)
			assert.Equal(t, `{"id":"1"}`, again)
		})
	}
}

func TestFileProvider_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	fp, err := NewFileProvider(dir)
	require.NoError(t, err)
	require.NoError(t, fp.Namespace("v1").Set(KeyCart, "[]"))

	reopened, err := NewFileProvider(dir)
	require.NoError(t, err)
	v, err := reopened.Namespace("v1").Get(KeyCart)
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestFileProvider_CorruptDocumentIsTreatedAsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "v1.json"), []byte("{not json"), 0o644))

	fp, err := NewFileProvider(dir)
	require.NoError(t, err)
	st := fp.Namespace("v1")

	_, err = st.Get(KeyCart)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.Set(KeyCart, "[]"))
	v, err := st.Get(KeyCart)
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestRedisProvider_KeysCarryTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	rp := NewRedisProvider(redis.NewClient(&redis.Options{Addr: mr.Addr()}), 0)
	defer rp.Close()

	require.NoError(t, rp.Namespace("v1").Set(KeyCart, "[]"))

	assert.True(t, mr.Exists("visitor:v1:cart"))
	assert.Equal(t, VisitorTTL, mr.TTL("visitor:v1:cart"))
}

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := ConnectRedis(mr.Addr(), "")
	require.NoError(t, err)
	client.Close()

	mr.Close()
	_, err = ConnectRedis(mr.Addr(), "")
	assert.Error(t, err)
}

func TestMemProvider_ReadsDoNotAllocateVisitors(t *testing.T) {
	p := NewMemProvider()

	for _, id := range []string{"bot-1", "bot-2", "bot-3"} {
		_, err := p.Namespace(id).Get(KeyWishlist)
		assert.ErrorIs(t, err, ErrNotFound)
		require.NoError(t, p.Namespace(id).Remove(KeyUser, KeyToken))
	}
	assert.Equal(t, 0, p.Len())

	st := p.Namespace("shopper")
	require.NoError(t, st.Set(KeyCart, "[]"))
	assert.Equal(t, 1, p.Len())

	require.NoError(t, st.Remove(KeyCart))
	assert.Equal(t, 0, p.Len(), "a visitor without keys is dropped")
}

func TestMemProvider_IdleVisitorsExpire(t *testing.T) {
	p := newMemProvider(50 * time.Millisecond)
	require.NoError(t, p.Namespace("idle").Set(KeyCart, "[]"))

	assert.Eventually(t, func() bool {
		_, err := p.Namespace("idle").Get(KeyCart)
		return errors.Is(err, ErrNotFound) && p.Len() == 0
	}, time.Second, 10*time.Millisecond)
}
