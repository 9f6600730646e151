package http

import (
	"errors"
	"net/http"

	"github.com/valentincuzin/usergate/internal/users/service"
	"github.com/valentincuzin/usergate/pkg/httpx"
	"github.com/valentincuzin/usergate/pkg/slogx"
	"github.com/valentincuzin/usergate/pkg/tokenx"
	"github.com/valentincuzin/usergate/pkg/usersdk"
)

// LogoutHandler serves POST /logout. The session token arrives in the
// Authentication request header; on success the replacement logout
// token goes back the same way.
type LogoutHandler struct {
	Sessions *service.SessionService
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	origin := r.Header.Get("Origin")
	token := httpx.BearerToken(r.Header.Get(usersdk.AuthenticationHeader))
	if origin == "" || token == "" {
		usersdk.ErrMissingParameter.WriteError(w)
		return
	}

	logoutToken, err := h.Sessions.Logout(ctx, token, origin)
	switch {
	case err == nil:
	case errors.Is(err, tokenx.ErrInvalidToken):
		usersdk.ErrUnauthorized.WriteError(w)
		return
	case errors.Is(err, service.ErrNotConnected):
		usersdk.ErrNotConnected.WriteError(w)
		return
	default:
		log.Error("logout failed", "err", err)
		usersdk.ErrServerError.WriteError(w)
		return
	}

	writeToken(w, logoutToken)
}
