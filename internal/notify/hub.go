package notify

import (
	"sync"

	"markethub_front_end/internal/models"
)

const (
	EventConnected    = "connected"
	EventNotification = "notification"
	EventCartUpdated  = "cart_updated"
)

// Event est le message poussé sur le websocket d'un visiteur
type Event struct {
	Type         string               `json:"type"`
	Message      string               `json:"message,omitempty"`
	Notification *models.Notification `json:"notification,omitempty"`
	Cart         *models.CartSummary  `json:"cart,omitempty"`
}

// Hub distribue les événements aux abonnés websocket de chaque visiteur.
// Un abonné trop lent perd les événements au lieu de bloquer l'émetteur.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*Subscription]struct{})}
}

type Subscription struct {
	hub       *Hub
	visitorID string
	ch        chan Event
	once      sync.Once
}

func (s *Subscription) C() <-chan Event {
	return s.ch
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		defer s.hub.mu.Unlock()
		if set, ok := s.hub.subs[s.visitorID]; ok {
			delete(set, s)
			if len(set) == 0 {
				delete(s.hub.subs, s.visitorID)
			}
		}
		close(s.ch)
	})
}

func (h *Hub) Subscribe(visitorID string, buffer int) *Subscription {
	if buffer < 1 {
		buffer = 1
	}
	sub := &Subscription{hub: h, visitorID: visitorID, ch: make(chan Event, buffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[visitorID]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.subs[visitorID] = set
	}
	set[sub] = struct{}{}
	return sub
}

func (h *Hub) Publish(visitorID string, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[visitorID] {
		select {
		case sub.ch <- ev:
		default:
		}
	}
}

// For retourne un Notifier qui publie les toasts vers le visiteur donné
func (h *Hub) For(visitorID string) Notifier {
	return NotifierFunc(func(n models.Notification) {
		h.Publish(visitorID, Event{Type: EventNotification, Notification: &n})
	})
}

// CartObserver publie chaque nouvel état du panier vers le visiteur
func (h *Hub) CartObserver(visitorID string) func(models.CartSummary) {
	return func(s models.CartSummary) {
		h.Publish(visitorID, Event{Type: EventCartUpdated, Cart: &s})
	}
}
