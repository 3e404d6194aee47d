package kitchen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dfarias/merenda-gateway-go/pkg/models"
)

// CountsForDate lists the meal counts recorded on one date (YYYY-MM-DD)
func (c *Client) CountsForDate(ctx context.Context, date string) ([]models.MealCount, error) {
	q := url.Values{"data": {date}}
	var out listEnvelope[models.MealCount]
	if err := c.do(ctx, http.MethodGet, "/contagens", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CountsToday lists today's meal counts
func (c *Client) CountsToday(ctx context.Context) ([]models.MealCount, error) {
	return c.CountsForDate(ctx, time.Now().Format("2006-01-02"))
}

// CountsRange lists meal counts between two dates, for reports
func (c *Client) CountsRange(ctx context.Context, from, to string) ([]models.MealCount, error) {
	q := url.Values{"data_inicio": {from}, "data_fim": {to}}
	var out listEnvelope[models.MealCount]
	if err := c.do(ctx, http.MethodGet, "/contagens", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// AddCount records a class's meal count for today
func (c *Client) AddCount(ctx context.Context, classID, quantity int) error {
	body := map[string]int{"qtd_contagem": quantity, "turmas_id": classID}
	return c.do(ctx, http.MethodPost, "/contagens", nil, body, nil)
}

// UpdateCount corrects a previously recorded count
func (c *Client) UpdateCount(ctx context.Context, id, quantity int) error {
	body := map[string]int{"qtd_contagem": quantity}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/contagens/%d", id), nil, body, nil)
}

// CountsDashboard returns the backend's aggregated dashboard figures,
// optionally for a specific date. The shape varies by backend version,
// so it is passed through untouched.
func (c *Client) CountsDashboard(ctx context.Context, date string) (json.RawMessage, error) {
	var q url.Values
	if date != "" {
		q = url.Values{"data": {date}}
	}
	var out json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/contagens/dashboard", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NESEntries lists the special-needs check-ins, optionally for one date
func (c *Client) NESEntries(ctx context.Context, date string) ([]models.NESEntry, error) {
	var q url.Values
	if date != "" {
		q = url.Values{"data": {date}}
	}
	var out listEnvelope[models.NESEntry]
	if err := c.do(ctx, http.MethodGet, "/contagem-nes", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// AddNESEntry checks a scheduled special-needs relation into a count
func (c *Client) AddNESEntry(ctx context.Context, countID, relationID int) error {
	body := map[string]int{
		"contagem_id":                countID,
		"alunos_has_necessidades_id": relationID,
	}
	return c.do(ctx, http.MethodPost, "/contagem-nes", nil, body, nil)
}

// RemoveNESEntry undoes a special-needs check-in. The empty body is
// deliberate: the backend only accepts the DELETE with a JSON payload.
func (c *Client) RemoveNESEntry(ctx context.Context, entryID int) error {
	return c.do(ctx, http.MethodDelete, "/contagem-nes/"+strconv.Itoa(entryID), nil, map[string]any{}, nil)
}

// Classes lists the school classes
func (c *Client) Classes(ctx context.Context) ([]models.Class, error) {
	q := url.Values{"page": {"1"}, "limit": {"100"}}
	var out listEnvelope[models.Class]
	if err := c.do(ctx, http.MethodGet, "/turmas", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateClass registers a class
func (c *Client) CreateClass(ctx context.Context, data map[string]any) error {
	return c.do(ctx, http.MethodPost, "/turmas", nil, data, nil)
}

// UpdateClass updates a class
func (c *Client) UpdateClass(ctx context.Context, id int, data map[string]any) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/turmas/%d", id), nil, data, nil)
}

// DeleteClass removes a class
func (c *Client) DeleteClass(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/turmas/%d", id), nil, nil, nil)
}

// Categories lists the meal categories
func (c *Client) Categories(ctx context.Context, page int) ([]models.Category, error) {
	q := url.Values{"page": {strconv.Itoa(page)}}
	var out listEnvelope[models.Category]
	if err := c.do(ctx, http.MethodGet, "/categorias", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateCategory registers a category
func (c *Client) CreateCategory(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPost, "/categorias", nil, map[string]string{"nome_categoria": name}, nil)
}

// UpdateCategory renames a category
func (c *Client) UpdateCategory(ctx context.Context, id int, name string) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/categorias/%d", id), nil, map[string]string{"nome_categoria": name}, nil)
}

// DeleteCategory removes a category
func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/categorias/%d", id), nil, nil, nil)
}
