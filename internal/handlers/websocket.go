package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"markethub_front_end/internal/logger"
	"markethub_front_end/internal/notify"
)

const (
	wsPingInterval = 30 * time.Second
	wsWriteWait    = 10 * time.Second
	wsBuffer       = 16
)

// NewUpgrader limite les origines websocket à celles autorisées par CORS.
// Une liste vide accepte toutes les origines.
func NewUpgrader(origins []string) *websocket.Upgrader {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return len(allowed) == 0 || origin == "" || allowed[origin]
		},
	}
}

// Events pousse au navigateur les toasts et les mises à jour du panier du visiteur
func (h *Handler) Events(upgrader *websocket.Upgrader) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Get()
		v := h.visitor(c)

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn().Err(err).Msg("⚠️ upgrade websocket refusé")
			return
		}
		defer conn.Close()

		sub := h.reg.Hub().Subscribe(v.ID, wsBuffer)
		defer sub.Close()

		// Lecture en tâche de fond uniquement pour détecter la fermeture côté client
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		write := func(payload any) error {
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			return conn.WriteJSON(payload)
		}

		summary := v.Cart.Summary()
		if err := write(notify.Event{Type: notify.EventConnected, Message: "Cart sync enabled"}); err != nil {
			return
		}
		if err := write(notify.Event{Type: notify.EventCartUpdated, Cart: &summary}); err != nil {
			return
		}

		ticker := time.NewTicker(wsPingInterval)
		defer ticker.Stop()

		for {
			select {
			case ev, ok := <-sub.C():
				if !ok {
					return
				}
				if err := write(ev); err != nil {
					log.Debug().Err(err).Str("visitor_id", v.ID).Msg("envoi websocket interrompu")
					return
				}
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-closed:
				return
			case <-c.Request.Context().Done():
				return
			}
		}
	}
}
