package authapi

import (
	"context"
	"fmt"
	"net/http"

	"markethub_front_end/internal/models"
	"markethub_front_end/internal/remote"
)

// Client appelle les endpoints d'authentification de l'API distante
type Client struct {
	api *remote.Client
}

func New(api *remote.Client) *Client {
	return &Client{api: api}
}

type RemoteRole struct {
	Name string `json:"name"`
}

type RemoteUser struct {
	ID    remote.ID    `json:"id" validate:"required"`
	Name  string       `json:"name"`
	Email string       `json:"email"`
	Roles []RemoteRole `json:"roles"`
}

// LoginResult est la variante de succès de POST /login
type LoginResult struct {
	User  *RemoteUser `json:"user" validate:"required"`
	Token string      `json:"token"`
}

// DomainUser extrait l'identité : premier rôle attribué, "user" par défaut
func (r *LoginResult) DomainUser() models.User {
	role := models.RoleUser
	if len(r.User.Roles) > 0 && r.User.Roles[0].Name != "" {
		role = models.Role(r.User.Roles[0].Name)
	}
	return models.User{
		ID:    string(r.User.ID),
		Name:  r.User.Name,
		Email: r.User.Email,
		Role:  role,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var res LoginResult
	if err := c.api.Post(ctx, "/login", loginRequest{Email: email, Password: password}, &res); err != nil {
		return nil, err
	}
	if err := models.Validate(res); err != nil {
		return nil, &remote.Error{Status: http.StatusOK, Err: fmt.Errorf("réponse login invalide: %w", err)}
	}
	return &res, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) error {
	return c.api.Post(ctx, "/register", registerRequest{Name: name, Email: email, Password: password}, nil)
}
