package kitchen

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dfarias/merenda-gateway-go/pkg/models"
)

// Login exchanges a NIF and password for a bearer token. A 401 here
// means bad credentials, not an expired session; the caller decides.
func (c *Client) Login(ctx context.Context, nif, password string) (string, error) {
	body := map[string]string{"nif": nif, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", nil, body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Logout invalidates the bound token on the backend
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil, nil)
}

// CurrentUser returns the profile of the bound token's owner
func (c *Client) CurrentUser(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodGet, "/user", nil, nil, &user)
	return user, err
}

// Users lists application users, one page at a time
func (c *Client) Users(ctx context.Context, page int) ([]models.User, error) {
	q := url.Values{"page": {strconv.Itoa(page)}}
	var out listEnvelope[models.User]
	if err := c.do(ctx, http.MethodGet, "/users", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Contacts lists every user, for the chat participants sidebar
func (c *Client) Contacts(ctx context.Context) ([]models.User, error) {
	q := url.Values{"limit": {"100"}}
	var out listEnvelope[models.User]
	if err := c.do(ctx, http.MethodGet, "/users", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateUser registers a new application user
func (c *Client) CreateUser(ctx context.Context, data map[string]any) error {
	return c.do(ctx, http.MethodPost, "/users", nil, data, nil)
}

// UpdateUser updates an application user
func (c *Client) UpdateUser(ctx context.Context, id int, data map[string]any) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), nil, data, nil)
}

// DeleteUser removes an application user
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil, nil)
}

// ChangePassword resets the bound user's password
func (c *Client) ChangePassword(ctx context.Context, data map[string]any) error {
	return c.do(ctx, http.MethodPost, "/reset-password", nil, data, nil)
}
