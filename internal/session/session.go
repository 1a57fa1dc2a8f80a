package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"markethub_front_end/internal/authapi"
	"markethub_front_end/internal/logger"
	"markethub_front_end/internal/models"
	"markethub_front_end/internal/notify"
	"markethub_front_end/internal/remote"
	"markethub_front_end/internal/storage"
)

const (
	msgLoginFailed        = "Login failed"
	msgRegistrationFailed = "Registration failed"
)

// AuthAPI est la partie de l'API distante dont la session a besoin
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*authapi.LoginResult, error)
	Register(ctx context.Context, name, email, password string) error
}

// AuthError est l'échec d'un login ou d'une inscription. Message est
// destiné à l'affichage : celui de l'API quand elle en fournit un.
type AuthError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func newAuthError(op, fallback string, err error) *AuthError {
	ae := &AuthError{Op: op, Message: fallback, Err: err}
	var apiErr *remote.Error
	if errors.As(err, &apiErr) {
		ae.Status = apiErr.Status
		if apiErr.Message != "" {
			ae.Message = apiErr.Message
		}
	}
	return ae
}

// Store détient l'utilisateur authentifié d'un visiteur.
// Deux états : non authentifié, ou authentifié avec un User.
type Store struct {
	mu       sync.Mutex
	api      AuthAPI
	storage  storage.Storage
	notifier notify.Notifier
	user     *models.User
	token    string
}

// New restaure la session persistée. Un état illisible est effacé
// silencieusement et le visiteur repart non authentifié.
func New(api AuthAPI, st storage.Storage, notifier notify.Notifier) *Store {
	if notifier == nil {
		notifier = notify.Discard
	}
	s := &Store{api: api, storage: st, notifier: notifier}
	s.bootstrap()
	return s
}

func (s *Store) bootstrap() {
	log := logger.Get()

	raw, err := s.storage.Get(storage.KeyUser)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		log.Warn().Err(err).Msg("⚠️ lecture de la session impossible")
		return
	}

	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || models.Validate(u) != nil {
		log.Debug().Str("raw", raw).Msg("session persistée illisible, ignorée")
		if err := s.storage.Remove(storage.KeyUser); err != nil {
			log.Warn().Err(err).Msg("⚠️ suppression de la session illisible impossible")
		}
		return
	}

	token, err := s.storage.Get(storage.KeyToken)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Warn().Err(err).Msg("⚠️ lecture du token impossible")
	}
	s.user = &u
	s.token = token
}

// Login authentifie le visiteur auprès de l'API et persiste {user, token}.
// En cas d'échec l'état reste inchangé.
func (s *Store) Login(ctx context.Context, email, password string) (models.User, error) {
	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		return models.User{}, newAuthError("login", msgLoginFailed, err)
	}
	user := res.DomainUser()

	data, err := json.Marshal(user)
	if err != nil {
		return models.User{}, newAuthError("login", msgLoginFailed, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, prevErr := s.storage.Get(storage.KeyUser)
	if err := s.storage.Set(storage.KeyUser, string(data)); err != nil {
		return models.User{}, newAuthError("login", msgLoginFailed, err)
	}
	if err := s.storage.Set(storage.KeyToken, res.Token); err != nil {
		s.restoreUser(previous, prevErr)
		return models.User{}, newAuthError("login", msgLoginFailed, err)
	}
	s.user = &user
	s.token = res.Token

	logger.Get().Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("✅ connexion réussie")
	return user, nil
}

// restoreUser remet la clé "user" telle qu'elle était avant un login avorté
func (s *Store) restoreUser(previous string, prevErr error) {
	var err error
	switch {
	case prevErr == nil:
		err = s.storage.Set(storage.KeyUser, previous)
	case errors.Is(prevErr, storage.ErrNotFound):
		err = s.storage.Remove(storage.KeyUser)
	default:
		// ancienne valeur illisible : la clé est retirée
		err = errors.Join(prevErr, s.storage.Remove(storage.KeyUser))
	}
	if err != nil {
		logger.Get().Error().Err(err).Msg("❌ restauration de la session après un login avorté impossible")
	}
}

// Register crée le compte sans connecter le visiteur
func (s *Store) Register(ctx context.Context, name, email, password string) error {
	if err := s.api.Register(ctx, name, email, password); err != nil {
		return newAuthError("register", msgRegistrationFailed, err)
	}
	s.notifier.Notify(models.Notification{
		Title:       "Registration successful",
		Description: "Your account has been created. You can now log in.",
		Variant:     models.VariantDefault,
	})
	return nil
}

// Logout efface la session locale. Aucun appel serveur : le token
// n'est pas invalidé côté API.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
	if err := s.storage.Remove(storage.KeyUser, storage.KeyToken); err != nil {
		logger.Get().Warn().Err(err).Msg("⚠️ suppression de la session persistée impossible")
	}
}

func (s *Store) User() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}
