package authapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"markethub_front_end/internal/models"
	"markethub_front_end/internal/remote"
)

func newClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(remote.New(srv.URL, nil))
}

func TestLogin_Success(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login", r.URL.Path)
		var in loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "a@x.com", in.Email)
		assert.Equal(t, "pw", in.Password)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user":{"id":"1","name":"A","email":"a@x.com","roles":[{"name":"admin"},{"name":"user"}]},"token":"t"}`))
	})

	res, err := c.Login(context.Background(), "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "t", res.Token)
	assert.Equal(t, models.User{ID: "1", Name: "A", Email: "a@x.com", Role: models.RoleAdmin}, res.DomainUser())
}

func TestLogin_NumericIDAndNoRoles(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"id":7,"name":"B","email":"b@x.com","roles":[]},"token":"t7"}`))
	})

	res, err := c.Login(context.Background(), "b@x.com", "pw")
	require.NoError(t, err)
	u := res.DomainUser()
	assert.Equal(t, "7", u.ID)
	assert.Equal(t, models.RoleUser, u.Role)
}

func TestLogin_MissingUserIsInvalid(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"t"}`))
	})

	_, err := c.Login(context.Background(), "a@x.com", "pw")
	var apiErr *remote.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Empty(t, apiErr.Message)
}

func TestLogin_Rejected(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	})

	_, err := c.Login(context.Background(), "a@x.com", "bad")
	var apiErr *remote.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestRegister(t *testing.T) {
	var got registerRequest
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/register", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})

	require.NoError(t, c.Register(context.Background(), "A", "a@x.com", "pw"))
	assert.Equal(t, registerRequest{Name: "A", Email: "a@x.com", Password: "pw"}, got)
}
