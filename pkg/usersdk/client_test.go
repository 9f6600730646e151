package usersdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// stubServer mimics the gateway wire contract closely enough to
// exercise the client end to end.
func stubServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Origin") == "" {
			ErrMissingParameter.WriteError(w)
			return
		}
		var creds struct {
			Login    string `json:"login"`
			Password string `json:"password"`
		}
		if err := decodeJSON(r, &creds); err != nil || creds.Login == "" || creds.Password == "" {
			ErrMissingParameter.WriteError(w)
			return
		}
		switch {
		case creds.Login != "alice":
			ErrUserNotFound.WriteError(w)
		case creds.Password != "pw":
			ErrUnauthorized.WriteError(w)
		default:
			w.Header().Set(AuthenticationHeader, "Bearer session-token")
			w.WriteHeader(http.StatusNoContent)
		}
	})

	mux.HandleFunc("POST /logout", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(AuthenticationHeader) != "Bearer session-token" {
			ErrUnauthorized.WriteError(w)
			return
		}
		w.Header().Set(AuthenticationHeader, "Bearer logout-token")
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /authenticate", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("jwt") == "session-token" && q.Get("origin") == "app1" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		ErrUnauthorized.WriteError(w)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func TestClientLogin(t *testing.T) {
	srv := stubServer(t)
	client := NewClient(srv.URL, "app1")
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		token, err := client.Login(ctx, "alice", "pw")
		require.NoError(t, err)
		require.Equal(t, "session-token", token)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := client.Login(ctx, "nobody", "pw")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		require.Equal(t, ErrorCodeUserNotFound, apiErr.Code)
	})

	t.Run("bad password", func(t *testing.T) {
		_, err := client.Login(ctx, "alice", "nope")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})
}

func TestClientLogout(t *testing.T) {
	srv := stubServer(t)
	client := NewClient(srv.URL, "app1")
	ctx := context.Background()

	t.Run("success returns replacement token", func(t *testing.T) {
		token, err := client.Logout(ctx, "session-token")
		require.NoError(t, err)
		require.Equal(t, "logout-token", token)
	})

	t.Run("stale token", func(t *testing.T) {
		_, err := client.Logout(ctx, "logout-token")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})
}

func TestClientAuthenticate(t *testing.T) {
	srv := stubServer(t)
	ctx := context.Background()

	t.Run("valid token and origin", func(t *testing.T) {
		client := NewClient(srv.URL, "app1")
		require.NoError(t, client.Authenticate(ctx, "session-token"))
	})

	t.Run("wrong origin", func(t *testing.T) {
		client := NewClient(srv.URL, "app2")
		err := client.Authenticate(ctx, "session-token")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})

	t.Run("unreachable server", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", "app1")
		err := client.Authenticate(ctx, "session-token")
		require.Error(t, err)
		var apiErr *APIError
		require.False(t, errors.As(err, &apiErr))
	})
}
