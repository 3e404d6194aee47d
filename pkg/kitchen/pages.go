package kitchen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dfarias/merenda-gateway-go/pkg/models"
)

// Menus lists the published menu PDFs, newest first. Depending on the
// backend version the paginator nests the list one level deeper, so
// both shapes are probed.
func (c *Client) Menus(ctx context.Context, page int) ([]models.Menu, error) {
	q := url.Values{"page": {strconv.Itoa(page)}}
	var raw struct {
		Data json.RawMessage `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/cardapios", q, nil, &raw); err != nil {
		return nil, err
	}

	var menus []models.Menu
	if err := json.Unmarshal(raw.Data, &menus); err == nil {
		return menus, nil
	}
	var nested struct {
		Data []models.Menu `json:"data"`
	}
	if err := json.Unmarshal(raw.Data, &nested); err != nil {
		return nil, err
	}
	return nested.Data, nil
}

// LatestMenu returns the most recent menu, or nil when none exists
func (c *Client) LatestMenu(ctx context.Context) (*models.Menu, error) {
	menus, err := c.Menus(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(menus) == 0 {
		return nil, nil
	}
	return &menus[0], nil
}

// UploadMenu publishes a new menu PDF
func (c *Client) UploadMenu(ctx context.Context, filename string, file io.Reader) error {
	return c.upload(ctx, "/cardapios", filename, file, nil)
}

// DeleteMenu removes a published menu
func (c *Client) DeleteMenu(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/cardapios/%d", id), nil, nil, nil)
}

// AuthorizedEntries lists the direction-authorized meal requests
func (c *Client) AuthorizedEntries(ctx context.Context) ([]models.AuthorizedEntry, error) {
	var out listEnvelope[models.AuthorizedEntry]
	if err := c.do(ctx, http.MethodGet, "/autorizados", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateAuthorizedEntry files a request; it always starts "pendente"
// regardless of the submitted status
func (c *Client) CreateAuthorizedEntry(ctx context.Context, data map[string]any) error {
	body := make(map[string]any, len(data)+1)
	for k, v := range data {
		body[k] = v
	}
	body["status"] = "pendente"
	return c.do(ctx, http.MethodPost, "/autorizados", nil, body, nil)
}

// UpdateAuthorizedEntry updates a request (typically its status)
func (c *Client) UpdateAuthorizedEntry(ctx context.Context, id int, data map[string]any) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/autorizados/%d", id), nil, data, nil)
}

// DeleteAuthorizedEntry removes a request
func (c *Client) DeleteAuthorizedEntry(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/autorizados/%d", id), nil, nil, nil)
}

// ProductionRecords lists the production/waste control entries
func (c *Client) ProductionRecords(ctx context.Context) ([]models.ProductionRecord, error) {
	var out listEnvelope[models.ProductionRecord]
	if err := c.do(ctx, http.MethodGet, "/controle_de_producao", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateProductionRecord adds a production/waste entry
func (c *Client) CreateProductionRecord(ctx context.Context, data map[string]any) error {
	return c.do(ctx, http.MethodPost, "/controle_de_producao", nil, data, nil)
}

// UpdateProductionRecord updates a production/waste entry
func (c *Client) UpdateProductionRecord(ctx context.Context, id int, data map[string]any) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/controle_de_producao/%d", id), nil, data, nil)
}

// DeleteProductionRecord removes a production/waste entry
func (c *Client) DeleteProductionRecord(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/controle_de_producao/%d", id), nil, nil, nil)
}

// ChatMessages returns every message of the general group chat
func (c *Client) ChatMessages(ctx context.Context) ([]models.ChatMessage, error) {
	var raw struct {
		Data json.RawMessage `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/chats", nil, nil, &raw); err != nil {
		return nil, err
	}

	var msgs []models.ChatMessage
	if err := json.Unmarshal(raw.Data, &msgs); err == nil {
		return msgs, nil
	}
	var nested struct {
		Data []models.ChatMessage `json:"data"`
	}
	if err := json.Unmarshal(raw.Data, &nested); err != nil {
		return nil, err
	}
	return nested.Data, nil
}

// SendChatMessage posts a message to the group chat
func (c *Client) SendChatMessage(ctx context.Context, msg models.ChatMessage) error {
	return c.do(ctx, http.MethodPost, "/chats", nil, msg, nil)
}
