package kitchen

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// record captures one request as the test server saw it
type record struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   string
}

func testServer(t *testing.T, status int, reply string, seen *record) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*seen = record{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
			Body:   string(body),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(reply))
	}))
}

func TestNeeds(t *testing.T) {
	var seen record
	srv := testServer(t, 200, `{"data":[{"id":1,"necessidade":"TDAH"},{"id":2,"necessidade":"Diabetes"}]}`, &seen)
	defer srv.Close()

	c := NewClient(srv.URL, nil).WithToken("tok-123")
	needs, err := c.Needs(context.Background())
	if err != nil {
		t.Fatalf("Needs failed: %v", err)
	}

	if seen.Path != "/necessidades" {
		t.Errorf("Expected path /necessidades, got %s", seen.Path)
	}
	if seen.Query != "limit=100&page=1" {
		t.Errorf("Expected pagination query, got %s", seen.Query)
	}
	if seen.Auth != "Bearer tok-123" {
		t.Errorf("Expected bearer header, got %q", seen.Auth)
	}
	if len(needs) != 2 || needs[0].Label != "TDAH" {
		t.Errorf("Expected 2 needs out of the envelope, got %v", needs)
	}
}

func TestAssignDays(t *testing.T) {
	var seen record
	srv := testServer(t, 200, `{}`, &seen)
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	if err := c.AssignDays(context.Background(), 77, []int{2}); err != nil {
		t.Fatalf("AssignDays failed: %v", err)
	}

	if seen.Method != http.MethodPost || seen.Path != "/alunos/77/dias" {
		t.Errorf("Expected POST /alunos/77/dias, got %s %s", seen.Method, seen.Path)
	}
	var body map[string][]int
	if err := json.Unmarshal([]byte(seen.Body), &body); err != nil {
		t.Fatalf("body is not JSON: %q", seen.Body)
	}
	if len(body["dias"]) != 1 || body["dias"][0] != 2 {
		t.Errorf("Expected body {dias:[2]}, got %q", seen.Body)
	}
}

func TestUnassignDays(t *testing.T) {
	var seen record
	srv := testServer(t, 200, `{}`, &seen)
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	if err := c.UnassignDays(context.Background(), 77, []int{1}); err != nil {
		t.Fatalf("UnassignDays failed: %v", err)
	}

	if seen.Method != http.MethodDelete || seen.Path != "/alunos/77/dias" {
		t.Errorf("Expected DELETE /alunos/77/dias, got %s %s", seen.Method, seen.Path)
	}
	if seen.Body != `{"dias":[1]}` {
		t.Errorf("Expected body {\"dias\":[1]}, got %q", seen.Body)
	}
}

func TestLogin(t *testing.T) {
	var seen record
	srv := testServer(t, 200, `{"token":"abc"}`, &seen)
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	token, err := c.Login(context.Background(), "12345", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token != "abc" {
		t.Errorf("Expected token abc, got %s", token)
	}
	if seen.Method != http.MethodPost || seen.Path != "/login" {
		t.Errorf("Expected POST /login, got %s %s", seen.Method, seen.Path)
	}
}

func TestErrorMessageDecoding(t *testing.T) {
	var seen record
	srv := testServer(t, 500, `{"message":"SQLSTATE[23000]: Duplicate entry '77-1' for key 'PRIMARY'"}`, &seen)
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	err := c.AssignDays(context.Background(), 77, []int{1})
	if err == nil {
		t.Fatal("Expected an error")
	}
	if !IsDuplicateAssignment(err) {
		t.Errorf("Expected a duplicate-assignment classification, got %v", err)
	}
	if IsSessionExpired(err) || IsUnsupportedOperation(err) {
		t.Error("misclassified as expired session or unsupported operation")
	}
}

func TestSessionExpired(t *testing.T) {
	var seen record
	srv := testServer(t, 401, `{"message":"Unauthenticated."}`, &seen)
	defer srv.Close()

	c := NewClient(srv.URL, nil).WithToken("stale")
	_, err := c.CurrentUser(context.Background())
	if !IsSessionExpired(err) {
		t.Errorf("Expected session-expired classification, got %v", err)
	}
}

func TestUnsupportedOperation(t *testing.T) {
	var seen record
	srv := testServer(t, 405, `{"message":"The DELETE method is not supported for this route."}`, &seen)
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	err := c.DeleteMenu(context.Background(), 3)
	if !IsUnsupportedOperation(err) {
		t.Errorf("Expected unsupported-operation classification, got %v", err)
	}
}

func TestErrorFallbackMessage(t *testing.T) {
	var seen record
	srv := testServer(t, 503, `<html>gateway timeout</html>`, &seen)
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	err := c.Logout(context.Background())
	if err == nil {
		t.Fatal("Expected an error")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("Expected *APIError, got %T", err)
	}
	if apiErr.Status != 503 {
		t.Errorf("Expected status 503, got %d", apiErr.Status)
	}
	if apiErr.Message != "Erro 503 - Service Unavailable" {
		t.Errorf("Expected the synthesized message, got %q", apiErr.Message)
	}
}

func TestWithTokenDoesNotMutateBase(t *testing.T) {
	var seen record
	srv := testServer(t, 200, `{"data":[]}`, &seen)
	defer srv.Close()

	base := NewClient(srv.URL, nil)
	_ = base.WithToken("session-token")

	if _, err := base.Needs(context.Background()); err != nil {
		t.Fatalf("Needs failed: %v", err)
	}
	if seen.Auth != "" {
		t.Errorf("base client must stay anonymous, sent %q", seen.Auth)
	}
}

func TestDissociateStudent(t *testing.T) {
	var seen record
	srv := testServer(t, 200, `{}`, &seen)
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	if err := c.DissociateStudent(context.Background(), 5, 10); err != nil {
		t.Fatalf("DissociateStudent failed: %v", err)
	}
	// the backend uses a singular segment on this one route
	if seen.Path != "/necessidade/5/alunos" {
		t.Errorf("Expected path /necessidade/5/alunos, got %s", seen.Path)
	}
	if seen.Body != `{"alunos":[10]}` {
		t.Errorf("Expected body {\"alunos\":[10]}, got %q", seen.Body)
	}
}
