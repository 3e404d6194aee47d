package kitchen

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dfarias/merenda-gateway-go/pkg/models"
)

// Needs lists the special-need categories
func (c *Client) Needs(ctx context.Context) ([]models.Need, error) {
	q := url.Values{"page": {"1"}, "limit": {"100"}}
	var out listEnvelope[models.Need]
	if err := c.do(ctx, http.MethodGet, "/necessidades", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// NeedWithStudents returns one need with its associated students; each
// student's Pivot carries the relation id the scheduling endpoints use
func (c *Client) NeedWithStudents(ctx context.Context, id int) (models.NeedWithStudents, error) {
	var out models.NeedWithStudents
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/necessidades/%d", id), nil, nil, &out)
	return out, err
}

// CreateNeed registers a new need category
func (c *Client) CreateNeed(ctx context.Context, label string) error {
	return c.do(ctx, http.MethodPost, "/necessidades", nil, map[string]string{"necessidade": label}, nil)
}

// UpdateNeed renames a need category
func (c *Client) UpdateNeed(ctx context.Context, id int, label string) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/necessidades/%d", id), nil, map[string]string{"necessidade": label}, nil)
}

// DeleteNeed removes a need category
func (c *Client) DeleteNeed(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/necessidades/%d", id), nil, nil, nil)
}

// WeeklySchedule returns every weekday with the students scheduled on it,
// in the backend's day order
func (c *Client) WeeklySchedule(ctx context.Context) ([]models.ScheduleDay, error) {
	var out listEnvelope[models.ScheduleDay]
	if err := c.do(ctx, http.MethodGet, "/cronogramas", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// AssignDays schedules a relation onto the given weekdays. The backend
// rejects a day the relation is already scheduled on; see
// IsDuplicateAssignment.
func (c *Client) AssignDays(ctx context.Context, relationID int, dayIDs []int) error {
	body := map[string][]int{"dias": dayIDs}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/alunos/%d/dias", relationID), nil, body, nil)
}

// UnassignDays removes a relation from the given weekdays
func (c *Client) UnassignDays(ctx context.Context, relationID int, dayIDs []int) error {
	body := map[string][]int{"dias": dayIDs}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/alunos/%d/dias", relationID), nil, body, nil)
}

// RelationDays lists the weekdays a relation is currently scheduled on
func (c *Client) RelationDays(ctx context.Context, relationID int) ([]models.ScheduleDay, error) {
	var out listEnvelope[models.ScheduleDay]
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/alunos/%d/dias", relationID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Students lists student records
func (c *Client) Students(ctx context.Context, page, limit int) ([]models.Student, error) {
	q := url.Values{"page": {strconv.Itoa(page)}, "limit": {strconv.Itoa(limit)}}
	var out listEnvelope[models.Student]
	if err := c.do(ctx, http.MethodGet, "/alunos", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateStudent registers a student
func (c *Client) CreateStudent(ctx context.Context, data map[string]any) error {
	return c.do(ctx, http.MethodPost, "/alunos", nil, data, nil)
}

// UpdateStudent updates a student record
func (c *Client) UpdateStudent(ctx context.Context, id int, data map[string]any) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/alunos/%d", id), nil, data, nil)
}

// DeleteStudent removes a student record
func (c *Client) DeleteStudent(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/alunos/%d", id), nil, nil, nil)
}

// AssociateNeeds creates student-need relations. The new relation ids
// only become visible through NeedWithStudents on the next reload.
func (c *Client) AssociateNeeds(ctx context.Context, studentID int, needIDs []int) error {
	body := map[string][]int{"necessidades": needIDs}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/alunos/%d/necessidades", studentID), nil, body, nil)
}

// DissociateStudent removes a student's relation to a need. Note the
// backend's singular path segment here.
func (c *Client) DissociateStudent(ctx context.Context, needID, studentID int) error {
	body := map[string][]int{"alunos": {studentID}}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/necessidade/%d/alunos", needID), nil, body, nil)
}
