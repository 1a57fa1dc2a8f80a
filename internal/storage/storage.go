package storage

import "errors"

// Clés de l'état local d'un visiteur
const (
	KeyUser     = "user"
	KeyToken    = "token"
	KeyCart     = "cart"
	KeyWishlist = "wishlist"
)

var ErrNotFound = errors.New("storage: key not found")

// Storage est l'équivalent serveur du localStorage d'un navigateur :
// des chaînes (JSON sérialisé) rangées sous des clés fixes.
type Storage interface {
	// Get retourne ErrNotFound quand la clé est absente
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(keys ...string) error
}

// Provider attribue un Storage isolé à chaque visiteur
type Provider interface {
	Namespace(visitorID string) Storage
	Close() error
}
