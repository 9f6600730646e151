package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/valentincuzin/usergate/internal/users/service"
	"github.com/valentincuzin/usergate/pkg/httpx"
	"github.com/valentincuzin/usergate/pkg/slogx"
	"github.com/valentincuzin/usergate/pkg/usersdk"
)

// LoginHandler serves POST /login. It accepts the credential pair as
// JSON or as form-urlencoded, whichever the client application sends,
// and returns the session token in the Authentication header with an
// empty 204 body.
type LoginHandler struct {
	Sessions *service.SessionService
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	origin := r.Header.Get("Origin")
	if origin == "" {
		usersdk.ErrMissingParameter.WriteError(w)
		return
	}

	login, password, ok := readCredentials(r)
	if !ok || login == "" || password == "" {
		usersdk.ErrMissingParameter.WriteError(w)
		return
	}

	token, err := h.Sessions.Login(ctx, login, password, origin)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrUserNotFound):
		usersdk.ErrUserNotFound.WriteError(w)
		return
	case errors.Is(err, service.ErrBadCredential):
		usersdk.ErrUnauthorized.WriteError(w)
		return
	default:
		log.Error("login failed", "err", err)
		usersdk.ErrServerError.WriteError(w)
		return
	}

	writeToken(w, token)
}

// readCredentials pulls login/password from a JSON body or a form body
// depending on Content-Type.
func readCredentials(r *http.Request) (login, password string, ok bool) {
	ct := r.Header.Get("Content-Type")

	if strings.HasPrefix(ct, "application/json") {
		var body struct {
			Login    string `json:"login"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&body); err != nil {
			return "", "", false
		}
		return body.Login, body.Password, true
	}

	if err := r.ParseForm(); err != nil {
		return "", "", false
	}
	return r.Form.Get("login"), r.Form.Get("password"), true
}

// writeToken responds 204 with the bearer token in the Authentication
// response header.
func writeToken(w http.ResponseWriter, token string) {
	httpx.NoCache(w)
	w.Header().Set(usersdk.AuthenticationHeader, "Bearer "+token)
	w.WriteHeader(http.StatusNoContent)
}
