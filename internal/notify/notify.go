package notify

import (
	"sync"

	"github.com/rs/zerolog"

	"markethub_front_end/internal/models"
)

// Notifier reçoit les toasts destinés au visiteur. L'envoi est sans retour.
type Notifier interface {
	Notify(models.Notification)
}

type NotifierFunc func(models.Notification)

func (f NotifierFunc) Notify(n models.Notification) { f(n) }

// Discard ignore toutes les notifications
var Discard Notifier = NotifierFunc(func(models.Notification) {})

type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (l *LogNotifier) Notify(n models.Notification) {
	ev := l.log.Info()
	if n.Variant == models.VariantDestructive {
		ev = l.log.Warn()
	}
	ev.Str("title", n.Title).Str("description", n.Description).Msg("🔔 notification")
}

// Multi diffuse chaque notification à tous ses membres
type Multi []Notifier

func (m Multi) Notify(n models.Notification) {
	for _, target := range m {
		if target != nil {
			target.Notify(n)
		}
	}
}

// Recorder garde les notifications en mémoire
type Recorder struct {
	mu    sync.Mutex
	items []models.Notification
}

func (r *Recorder) Notify(n models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func (r *Recorder) Notifications() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Notification(nil), r.items...)
}

// Last retourne la dernière notification reçue
func (r *Recorder) Last() (models.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return models.Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}
