package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/valentincuzin/usergate/internal/users/service"
	"github.com/valentincuzin/usergate/pkg/httpx"
	"github.com/valentincuzin/usergate/pkg/slogx"
	"github.com/valentincuzin/usergate/pkg/usersdk"
)

// UsersHandler covers provisioning. Account creation happens out of
// band of the session state machine; these endpoints exist so an
// operator or upstream system can manage the records the machine
// operates on.
type UsersHandler struct {
	Users *service.UserService
}

// HandleCreate serves PUT /users/{login}.
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	login := r.PathValue("login")

	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&body); err != nil {
		usersdk.ErrMissingParameter.WriteError(w)
		return
	}
	if login == "" || body.Password == "" {
		usersdk.ErrMissingParameter.WriteError(w)
		return
	}

	u, err := h.Users.Create(ctx, login, body.Password)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrLoginTaken):
		usersdk.ErrLoginTaken.WriteError(w)
		return
	default:
		log.Error("user create failed", "err", err)
		usersdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]string{
		"id":    u.ID,
		"login": u.Login,
	})
}

// HandleDelete serves DELETE /users/{login}.
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	login := r.PathValue("login")
	if login == "" {
		usersdk.ErrMissingParameter.WriteError(w)
		return
	}

	err := h.Users.Delete(ctx, login)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrUserNotFound):
		usersdk.ErrUserNotFound.WriteError(w)
		return
	default:
		log.Error("user delete failed", "err", err)
		usersdk.ErrServerError.WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
