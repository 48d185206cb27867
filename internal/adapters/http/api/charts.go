package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/okian/stagebook/internal/domain/share"
	"github.com/okian/stagebook/internal/domain/types"
)

// ChartsDependencies defines the interface for Top Charts reads.
type ChartsDependencies interface {
	Chart(ctx context.Context, locale string) []types.ChartEntry
	SharePayload(ctx context.Context, id string) (share.Payload, bool)
}

// ChartsHandler handles Top Charts requests.
type ChartsHandler struct {
	deps   ChartsDependencies
	locale string
}

// NewChartsHandler creates a new charts handler. locale is used when a
// request does not name one.
func NewChartsHandler(deps ChartsDependencies, locale string) *ChartsHandler {
	return &ChartsHandler{deps: deps, locale: locale}
}

// HandleGetCharts handles GET /charts?locale=xx requests.
func (h *ChartsHandler) HandleGetCharts(w http.ResponseWriter, r *http.Request) {
	locale := strings.TrimSpace(r.URL.Query().Get("locale"))
	if locale == "" {
		locale = h.locale
	}
	writeJSON(w, http.StatusOK, h.deps.Chart(r.Context(), locale))
}

// HandleGetShare handles GET /charts/{id}/share requests.
func (h *ChartsHandler) HandleGetShare(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_share"
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	payload, ok := h.deps.SharePayload(r.Context(), id)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, payload)
}
