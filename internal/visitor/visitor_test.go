package visitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"markethub_front_end/internal/models"
	"markethub_front_end/internal/notify"
	"markethub_front_end/internal/storage"
)

func TestRegistry_GetIsStablePerVisitor(t *testing.T) {
	r := NewRegistry(storage.NewMemProvider(), nil, nil, nil)

	a1 := r.Get("a")
	a2 := r.Get("a")
	b := r.Get("b")

	assert.Same(t, a1, a2)
	assert.NotSame(t, a1, b)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_ForgetReloadsPersistedState(t *testing.T) {
	r := NewRegistry(storage.NewMemProvider(), nil, nil, nil)

	r.Get("a").Cart.AddItem(models.CartItem{ID: "1", Name: "Chair", Price: 10}, 2)
	r.Forget("a")

	reloaded := r.Get("a")
	require.Len(t, reloaded.Cart.Items(), 1)
	assert.Equal(t, 20.0, reloaded.Cart.Total())
}

func TestRegistry_EventsReachVisitorHubAndLog(t *testing.T) {
	var rec notify.Recorder
	hub := notify.NewHub()
	r := NewRegistry(storage.NewMemProvider(), nil, hub, &rec)

	sub := hub.Subscribe("a", 8)
	defer sub.Close()

	v := r.Get("a")
	v.Cart.AddProduct(models.Product{ID: "1", Name: "Chair", Price: 10}, 1)

	var types []string
	for len(sub.C()) > 0 {
		types = append(types, (<-sub.C()).Type)
	}
	assert.Equal(t, []string{notify.EventCartUpdated, notify.EventNotification}, types)

	_, ok := rec.Last()
	assert.True(t, ok)
}

func TestRegistry_EvictsIdleVisitors(t *testing.T) {
	r := NewRegistry(storage.NewMemProvider(), nil, nil, nil, WithIdleTimeout(50*time.Millisecond))

	r.Get("idle").Cart.AddItem(models.CartItem{ID: "1", Name: "Chair", Price: 10}, 3)
	require.Equal(t, 1, r.Len())

	assert.Eventually(t, func() bool { return r.Len() == 0 }, time.Second, 10*time.Millisecond)
	_, ok := r.Peek("idle")
	assert.False(t, ok)

	back := r.Get("idle")
	require.Len(t, back.Cart.Items(), 1, "persisted state survives eviction")
	assert.Equal(t, 3, back.Cart.Items()[0].Quantity)
}

func TestRegistry_MaxVisitors(t *testing.T) {
	r := NewRegistry(storage.NewMemProvider(), nil, nil, nil, WithMaxVisitors(2))

	r.Get("a")
	r.Get("b")
	r.Get("a")
	r.Get("c")

	assert.Equal(t, 2, r.Len())
	_, ok := r.Peek("b")
	assert.False(t, ok, "the least recently used visitor leaves first")
	_, ok = r.Peek("a")
	assert.True(t, ok)
}

func TestRegistry_WishlistDoesNotRegister(t *testing.T) {
	provider := storage.NewMemProvider()
	require.NoError(t, provider.Namespace("fan").Set(storage.KeyWishlist, `[{"id":"1","name":"Chair","price":10}]`))
	r := NewRegistry(provider, nil, nil, nil)

	assert.True(t, r.Wishlist("fan").Contains("1"))
	assert.False(t, r.Wishlist("stranger").Contains("1"))
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 1, provider.Len())

	live := r.Get("fan")
	assert.Same(t, live.Wishlist, r.Wishlist("fan"))
}
