package kitchen

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx reply from the kitchen API, carrying the
// backend's {message} payload when one was present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("erro %d", e.Status)
}

// IsSessionExpired reports whether err is a 401 reply. The application
// shell treats it by clearing the session and forcing a new login.
func IsSessionExpired(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsDuplicateAssignment matches the backend's rejection of scheduling a
// relation twice on the same day. The signature is the MySQL unique-key
// message the backend passes through verbatim.
func IsDuplicateAssignment(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && strings.Contains(apiErr.Message, "Duplicate entry")
}

// IsUnsupportedOperation reports a deployment mismatch rather than a
// user-fixable failure: the backend does not expose the route at all.
func IsUnsupportedOperation(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusMethodNotAllowed ||
		strings.Contains(apiErr.Message, "DELETE method is not supported")
}
