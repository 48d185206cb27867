package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/stagebook/internal/domain/account"
	"github.com/okian/stagebook/internal/domain/model"
	"github.com/okian/stagebook/internal/domain/notify"
)

// AccountDependencies defines the interface for session and profile calls.
type AccountDependencies interface {
	notify.Notifier

	Login(ctx context.Context, u model.User) (model.User, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (model.User, bool)
	Profile(ctx context.Context) model.ArtistProfile
	SaveProfile(ctx context.Context, p model.ArtistProfile) (model.ArtistProfile, error)
}

// AccountHandler handles session and profile requests.
type AccountHandler struct {
	deps AccountDependencies
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(deps AccountDependencies) *AccountHandler {
	return &AccountHandler{deps: deps}
}

type sessionResponse struct {
	LoggedIn bool        `json:"loggedIn"`
	User     *model.User `json:"user,omitempty"`
}

// HandleGetSession handles GET /session.
func (h *AccountHandler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	u, ok := h.deps.Current(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, sessionResponse{})
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{LoggedIn: true, User: &u})
}

// HandlePutSession handles PUT /session (login).
func (h *AccountHandler) HandlePutSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.login"
	var u model.User
	if err := decodeJSON(r, w, &u); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	saved, err := h.deps.Login(r.Context(), u)
	if err != nil {
		writeKindError(w, accountKind(op, err))
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{LoggedIn: true, User: &saved})
}

// HandleDeleteSession handles DELETE /session (logout).
func (h *AccountHandler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.logout"
	if err := h.deps.Logout(r.Context()); err != nil {
		writeKindError(w, accountKind(op, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetProfile handles GET /profile.
func (h *AccountHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Profile(r.Context()))
}

// HandlePutProfile handles PUT /profile. Only artists may save a profile.
func (h *AccountHandler) HandlePutProfile(w http.ResponseWriter, r *http.Request) {
	const op = "api.save_profile"
	var p model.ArtistProfile
	if err := decodeJSON(r, w, &p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	saved, err := h.deps.SaveProfile(r.Context(), p)
	if err != nil {
		writeKindError(w, accountKind(op, err))
		return
	}
	toast := notify.ProfileSaved()
	h.deps.Notify(r.Context(), toast)
	writeJSON(w, http.StatusOK, toastResponse{Data: saved, Toast: toast})
}

func accountKind(op string, err error) error {
	switch {
	case errors.Is(err, account.ErrNotArtist):
		return WrapKind(op, ErrForbidden, err)
	case errors.Is(err, account.ErrInvalidUser), errors.Is(err, account.ErrInvalidProfile):
		return WrapKind(op, ErrBadRequest, err)
	}
	return Wrap(op, err)
}
