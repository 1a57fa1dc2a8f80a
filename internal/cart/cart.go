package cart

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

// Cart agrège les lignes du panier d'un visiteur : une ligne par produit,
// dans l'ordre d'ajout. Chaque mutation réécrit le panier complet sous "cart".
type Cart struct {
	mu       sync.Mutex
	storage  storage.Storage
	notifier notify.Notifier
	observer func(models.CartSummary)
	items    []models.CartItem
}

type Option func(*Cart)

// WithNotifier branche les toasts "Added to cart"
func WithNotifier(n notify.Notifier) Option {
	return func(c *Cart) { c.notifier = n }
}

// WithObserver reçoit le nouvel état après chaque mutation
func WithObserver(fn func(models.CartSummary)) Option {
	return func(c *Cart) { c.observer = fn }
}

// Load lit le panier persisté. Absent ou illisible, il démarre vide.
func Load(st storage.Storage, opts ...Option) *Cart {
	c := &Cart{storage: st, notifier: notify.Discard}
	for _, opt := range opts {
		opt(c)
	}

	raw, err := st.Get(storage.KeyCart)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		logger.Get().Warn().Err(err).Msg("⚠️ lecture du panier impossible, panier vide")
	default:
		items, err := Decode(raw)
		if err != nil {
			logger.Get().Debug().Err(err).Msg("panier persisté illisible, panier vide")
		}
		c.items = items
	}
	return c
}

// Decode désérialise un panier persisté. Les lignes sans id, en double ou
// avec une quantité inférieure à 1 sont écartées ; un document d'une autre
// forme donne un panier vide et une erreur.
func Decode(raw string) ([]models.CartItem, error) {
	var decoded []models.CartItem
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("décodage panier: %w", err)
	}

	items := make([]models.CartItem, 0, len(decoded))
	seen := make(map[string]bool, len(decoded))
	for _, item := range decoded {
		if models.Validate(item) != nil || seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		items = append(items, item)
	}
	return items, nil
}

// AddItem ajoute quantity exemplaires du produit. Un produit déjà présent voit
// sa quantité augmenter ; sinon une ligne est ajoutée en fin de panier.
// Une quantité inférieure à 1 vaut 1, la ligne ne dépasse jamais models.MaxQuantity.
func (c *Cart) AddItem(product models.CartItem, quantity int) {
	quantity = clampQuantity(quantity)

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(product.ID); i >= 0 {
		// les deux termes sont déjà bornés : la somme ne peut pas déborder
		c.items[i].Quantity = clampQuantity(c.items[i].Quantity + quantity)
	} else {
		product.Quantity = quantity
		c.items = append(c.items, product)
	}
	c.commit()
}

// AddProduct ajoute un produit du catalogue et confirme par un toast
func (c *Cart) AddProduct(p models.Product, quantity int) {
	quantity = clampQuantity(quantity)
	c.AddItem(p.CartItem(quantity), quantity)

	unit := "item"
	if quantity > 1 {
		unit = "items"
	}
	c.notifier.Notify(models.Notification{
		Title:       "Added to cart",
		Description: fmt.Sprintf("%d %s of %s added to your cart", quantity, unit, p.Name),
		Variant:     models.VariantDefault,
	})
}

// RemoveItem retire la ligne ; sans effet si elle n'existe pas
func (c *Cart) RemoveItem(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(id)
}

// UpdateQuantity fixe la quantité exacte d'une ligne. Sous 1, la ligne est retirée ;
// au-delà de models.MaxQuantity, elle est plafonnée.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity < 1 {
		c.remove(id)
		return
	}
	i := c.indexOf(id)
	if i < 0 {
		return
	}
	c.items[i].Quantity = clampQuantity(quantity)
	c.commit()
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.commit()
}

func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Total est la somme des prix unitaires (remisés si présents) multipliés par les quantités
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return total(c.items)
}

// TotalItems est le nombre d'articles affiché sur le badge du panier
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return totalItems(c.items)
}

func (c *Cart) Summary() models.CartSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summary()
}

func (c *Cart) remove(id string) {
	i := c.indexOf(id)
	if i < 0 {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.commit()
}

func (c *Cart) indexOf(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

// commit persiste le panier puis prévient l'observateur. Un échec d'écriture
// est journalisé : l'état en mémoire reste la référence.
func (c *Cart) commit() {
	items := c.snapshot()
	data, err := json.Marshal(items)
	if err == nil {
		err = c.storage.Set(storage.KeyCart, string(data))
	}
	if err != nil {
		logger.Get().Error().Err(err).Msg("❌ sauvegarde du panier impossible")
	}
	if c.observer != nil {
		c.observer(c.summary())
	}
}

func (c *Cart) snapshot() []models.CartItem {
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) summary() models.CartSummary {
	return models.CartSummary{
		Items:      c.snapshot(),
		Total:      total(c.items),
		Count:      len(c.items),
		TotalItems: totalItems(c.items),
	}
}

func clampQuantity(n int) int {
	switch {
	case n < 1:
		return 1
	case n > models.MaxQuantity:
		return models.MaxQuantity
	default:
		return n
	}
}

func total(items []models.CartItem) float64 {
	sum := 0.0
	for _, item := range items {
		sum += item.Subtotal()
	}
	return sum
}

func totalItems(items []models.CartItem) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}
