package wishlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"markethub_front_end/internal/logger"
	"markethub_front_end/internal/models"
	"markethub_front_end/internal/notify"
	"markethub_front_end/internal/storage"
)

// Wishlist garde les produits favoris d'un visiteur sous la clé "wishlist"
type Wishlist struct {
	mu       sync.Mutex
	storage  storage.Storage
	notifier notify.Notifier
	items    []models.WishlistItem
}

func Load(st storage.Storage, notifier notify.Notifier) *Wishlist {
	if notifier == nil {
		notifier = notify.Discard
	}
	w := &Wishlist{storage: st, notifier: notifier}

	raw, err := st.Get(storage.KeyWishlist)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Get().Warn().Err(err).Msg("⚠️ lecture de la wishlist impossible")
		}
		return w
	}

	var decoded []models.WishlistItem
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		logger.Get().Debug().Err(err).Msg("wishlist persistée illisible, wishlist vide")
		return w
	}
	for _, item := range decoded {
		if models.Validate(item) == nil && w.indexOf(item.ID) < 0 {
			w.items = append(w.items, item)
		}
	}
	return w
}

// Toggle ajoute le produit s'il est absent, le retire sinon.
// Retourne true quand le produit est désormais dans la wishlist.
func (w *Wishlist) Toggle(p models.Product) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	var n models.Notification
	added := false
	if i := w.indexOf(p.ID); i >= 0 {
		w.items = append(w.items[:i], w.items[i+1:]...)
		n = models.Notification{
			Title:       "Removed from wishlist",
			Description: fmt.Sprintf("%s has been removed from your wishlist", p.Name),
		}
	} else {
		w.items = append(w.items, p.WishlistItem())
		added = true
		n = models.Notification{
			Title:       "Added to wishlist",
			Description: fmt.Sprintf("%s has been added to your wishlist", p.Name),
		}
	}
	n.Variant = models.VariantDefault

	w.persist()
	w.notifier.Notify(n)
	return added
}

func (w *Wishlist) Contains(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.indexOf(id) >= 0
}

func (w *Wishlist) Items() []models.WishlistItem {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]models.WishlistItem, len(w.items))
	copy(out, w.items)
	return out
}

func (w *Wishlist) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}

func (w *Wishlist) indexOf(id string) int {
	for i := range w.items {
		if w.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (w *Wishlist) persist() {
	items := w.items
	if items == nil {
		items = []models.WishlistItem{}
	}
	data, err := json.Marshal(items)
	if err == nil {
		err = w.storage.Set(storage.KeyWishlist, string(data))
	}
	if err != nil {
		logger.Get().Error().Err(err).Msg("❌ sauvegarde de la wishlist impossible")
	}
}
