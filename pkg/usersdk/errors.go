package usersdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/valentincuzin/usergate/pkg/httpx"
)

// Error codes shared between server responses and SDK errors.
const (
	ErrorCodeMissingParameter = "missing_parameter"
	ErrorCodeUnauthorized     = "unauthorized"
	ErrorCodeUserNotFound     = "user_not_found"
	ErrorCodeNotConnected     = "not_connected"
	ErrorCodeLoginTaken       = "login_taken"
	ErrorCodeServerError      = "server_error"
)

// APIError is the wire error shape of the service. It is used both by
// handlers to write responses and by the SDK to surface failures.
type APIError struct {
	// StatusCode is the HTTP status for this error.
	StatusCode int `json:"-"`

	// Code is the machine-readable error code.
	Code string `json:"error"`

	// Description is a human-readable description. It never reveals
	// which verification step rejected a token.
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this error to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(e)
}

var (
	// ErrMissingParameter is returned when login, password or origin is
	// absent from the request.
	ErrMissingParameter = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeMissingParameter,
		Description: "a required parameter is missing",
	}

	// ErrUnauthorized covers every credential, token or state failure.
	ErrUnauthorized = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthorized,
		Description: "credentials or token rejected",
	}

	// ErrUserNotFound is returned by login when the login is unknown.
	ErrUserNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeUserNotFound,
		Description: "no such user",
	}

	// ErrNotConnected is returned by logout when the user is not
	// currently connected; logging out twice is a caller bug.
	ErrNotConnected = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeNotConnected,
		Description: "the user is not connected",
	}

	// ErrLoginTaken is returned by provisioning for duplicate logins.
	ErrLoginTaken = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeLoginTaken,
		Description: "the login is already taken",
	}

	// ErrServerError is the fallback for unexpected failures.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)
