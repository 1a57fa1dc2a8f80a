package visitor

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"markethub_front_end/internal/cart"
	"markethub_front_end/internal/notify"
	"markethub_front_end/internal/session"
	"markethub_front_end/internal/storage"
	"markethub_front_end/internal/wishlist"
)

const (
	DefaultIdleTimeout = 30 * time.Minute
	DefaultMaxVisitors = 10000
)

// Visitor regroupe les stores d'un navigateur identifié par son cookie
type Visitor struct {
	ID       string
	Session  *session.Store
	Cart     *cart.Cart
	Wishlist *wishlist.Wishlist
	Notifier notify.Notifier
}

type Option func(*Registry)

// WithIdleTimeout oublie les visiteurs sans requête depuis d
func WithIdleTimeout(d time.Duration) Option {
	return func(r *Registry) { r.idle = d }
}

// WithMaxVisitors borne le nombre de visiteurs en mémoire ; au-delà, le moins récent sort
func WithMaxVisitors(n int) Option {
	return func(r *Registry) { r.max = n }
}

// Registry construit les visiteurs à la demande et garde en mémoire ceux
// qui sont actifs. Un visiteur oublié est reconstruit depuis son état persisté.
type Registry struct {
	mu       sync.Mutex
	provider storage.Provider
	api      session.AuthAPI
	hub      *notify.Hub
	notifier notify.Notifier
	idle     time.Duration
	max      int
	visitors *expirable.LRU[string, *Visitor]
}

// NewRegistry : notifier reçoit en plus toutes les notifications (journal)
func NewRegistry(provider storage.Provider, api session.AuthAPI, hub *notify.Hub, notifier notify.Notifier, opts ...Option) *Registry {
	if hub == nil {
		hub = notify.NewHub()
	}
	r := &Registry{
		provider: provider,
		api:      api,
		hub:      hub,
		notifier: notifier,
		idle:     DefaultIdleTimeout,
		max:      DefaultMaxVisitors,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.visitors = expirable.NewLRU[string, *Visitor](r.max, nil, r.idle)
	return r
}

func (r *Registry) Hub() *notify.Hub {
	return r.hub
}

// Get retourne le visiteur, en restaurant son état persisté au premier accès.
// Chaque appel repousse son expiration.
func (r *Registry) Get(id string) *Visitor {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.visitors.Get(id)
	if !ok {
		v = r.build(id)
	}
	r.visitors.Add(id, v)
	return v
}

// Peek retourne le visiteur s'il est en mémoire, sans le créer ni le rafraîchir
func (r *Registry) Peek(id string) (*Visitor, bool) {
	return r.visitors.Peek(id)
}

// Wishlist lit la wishlist du visiteur sans l'enregistrer dans le registre
// (pages catalogue consultées sans panier ni session)
func (r *Registry) Wishlist(id string) *wishlist.Wishlist {
	if v, ok := r.Peek(id); ok {
		return v.Wishlist
	}
	return wishlist.Load(r.provider.Namespace(id), nil)
}

// Forget retire le visiteur de la mémoire ; son état persisté reste intact
func (r *Registry) Forget(id string) {
	r.visitors.Remove(id)
}

func (r *Registry) Len() int {
	return r.visitors.Len()
}

func (r *Registry) build(id string) *Visitor {
	st := r.provider.Namespace(id)
	n := notify.Multi{r.hub.For(id), r.notifier}
	return &Visitor{
		ID:       id,
		Session:  session.New(r.api, st, n),
		Cart:     cart.Load(st, cart.WithNotifier(n), cart.WithObserver(r.hub.CartObserver(id))),
		Wishlist: wishlist.Load(st, n),
		Notifier: n,
	}
}
