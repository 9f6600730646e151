package http

import (
	"errors"
	"net/http"

	"github.com/valentincuzin/usergate/internal/users/service"
	"github.com/valentincuzin/usergate/pkg/httpx"
	"github.com/valentincuzin/usergate/pkg/slogx"
	"github.com/valentincuzin/usergate/pkg/usersdk"
)

// AuthenticateHandler serves GET /authenticate, the read-only check a
// downstream service uses to decide whether a bearer currently
// represents a connected user of the stated origin. It discloses
// nothing about why a token was rejected.
type AuthenticateHandler struct {
	Sessions *service.SessionService
}

func (h *AuthenticateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token := httpx.BearerToken(r.URL.Query().Get("jwt"))
	origin := r.URL.Query().Get("origin")
	if token == "" || origin == "" {
		usersdk.ErrMissingParameter.WriteError(w)
		return
	}

	_, err := h.Sessions.Authenticate(ctx, token, origin)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrNotAuthenticated):
		usersdk.ErrUnauthorized.WriteError(w)
		return
	default:
		log.Error("authenticate failed", "err", err)
		usersdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
