package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/okian/stagebook/internal/domain/board"
	"github.com/okian/stagebook/internal/domain/dedupe"
	"github.com/okian/stagebook/internal/domain/model"
	"github.com/okian/stagebook/internal/domain/notify"
)

// IdempotencyKeyHeader lets clients retry a post without creating a
// duplicate requirement.
const (
	IdempotencyKeyHeader = "Idempotency-Key"
	IdempotentReplay     = "Idempotent-Replay"
)

// RequirementsDependencies defines the interface for board operations.
type RequirementsDependencies interface {
	dedupe.Deduper
	notify.Notifier

	PostRequirement(ctx context.Context, in board.Input) (model.Requirement, error)
	Requirements(ctx context.Context, q board.Query) []model.Requirement
	AllRequirements(ctx context.Context) []model.Requirement
	RequirementLocations(ctx context.Context) []string
}

// RequirementsHandler handles requirement board requests.
type RequirementsHandler struct {
	deps RequirementsDependencies
}

// NewRequirementsHandler creates a new requirements handler.
func NewRequirementsHandler(deps RequirementsDependencies) *RequirementsHandler {
	return &RequirementsHandler{deps: deps}
}

// requirementRequest mirrors the OpenAPI schema for POST /requirements.
type requirementRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Date        string     `json:"date"`
	Location    string     `json:"location"`
	Budget      budgetText `json:"budget"`
	Contact     string     `json:"contact"`
}

func (r requirementRequest) input() board.Input {
	return board.Input{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Date:        r.Date,
		Location:    r.Location,
		Budget:      string(r.Budget),
		Contact:     r.Contact,
	}
}

// budgetText accepts the budget as typed text or as a JSON number.
type budgetText string

func (b *budgetText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*b = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = budgetText(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(data), 64); err != nil {
		return errors.New("budget must be a string or a number")
	}
	*b = budgetText(data)
	return nil
}

type requirementView struct {
	model.Requirement
	Posted string `json:"posted"`
}

func views(items []model.Requirement) []requirementView {
	t := now()
	out := make([]requirementView, 0, len(items))
	for _, r := range items {
		out = append(out, requirementView{Requirement: r, Posted: board.TimeAgo(r.CreatedAt, t)})
	}
	return out
}

type requirementListResponse struct {
	Count int               `json:"count"`
	Items []requirementView `json:"items"`
}

// HandleList handles GET /requirements. role=organizer returns the whole
// board newest first; otherwise the artist filters apply.
func (h *RequirementsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_requirements"
	values := r.URL.Query()
	role := strings.TrimSpace(values.Get("role"))
	values.Del("role")

	var items []model.Requirement
	switch model.Role(role) {
	case model.RoleOrganizer:
		items = h.deps.AllRequirements(r.Context())
	case "", model.RoleArtist, model.RoleAudience:
		q, err := board.ParseQuery(values)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		items = h.deps.Requirements(r.Context(), q)
	default:
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	writeJSON(w, http.StatusOK, requirementListResponse{Count: len(items), Items: views(items)})
}

// HandleCreate handles POST /requirements requests.
func (h *RequirementsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_requirement"
	ctx := r.Context()

	var req requirementRequest
	if err := decodeJSON(r, w, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	key := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))
	if key != "" && h.deps.SeenAndRecord(ctx, key) {
		h.replay(ctx, w, op, key)
		return
	}

	rec, err := h.deps.PostRequirement(ctx, req.input())
	if err != nil {
		if key != "" {
			h.deps.Unrecord(ctx, key)
		}
		h.writeCreateError(ctx, w, op, err)
		return
	}

	toast := notify.RequirementPosted()
	h.deps.Notify(ctx, toast)
	resp := toastResponse{Data: requirementView{Requirement: rec, Posted: board.TimeAgo(rec.CreatedAt, now())}, Toast: toast}
	if key != "" {
		if body, err := json.Marshal(resp); err == nil {
			h.deps.Remember(ctx, key, string(body))
		}
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *RequirementsHandler) replay(ctx context.Context, w http.ResponseWriter, op, key string) {
	body, ok := h.deps.Lookup(ctx, key)
	if !ok {
		writeError(w, http.StatusConflict, "in_flight", NewKind(op, ErrConflict))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set(IdempotentReplay, "true")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte(body))
}

func (h *RequirementsHandler) writeCreateError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	var missing *board.MissingFieldsError
	var budget *board.InvalidBudgetError
	switch {
	case errors.As(err, &missing):
		toast := notify.MissingDetails()
		h.deps.Notify(ctx, toast)
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    "missing_fields",
			Message: WrapKind(op, ErrBadRequest, err).Error(),
			Fields:  missing.Fields,
			Toast:   &toast,
		})
	case errors.As(err, &budget):
		toast := notify.InvalidBudget()
		h.deps.Notify(ctx, toast)
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    "invalid_budget",
			Message: WrapKind(op, ErrBadRequest, err).Error(),
			Fields:  []string{"budget"},
			Toast:   &toast,
		})
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// HandleLocations handles GET /requirements/locations.
func (h *RequirementsHandler) HandleLocations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.RequirementLocations(r.Context()))
}

type requirementOptionsResponse struct {
	Query      board.Query `json:"query"`
	Categories []string    `json:"categories"`
	Locations  []string    `json:"locations"`
	MinBudgets []string    `json:"minBudgets"`
	Sorts      []string    `json:"sorts"`
}

// HandleOptions handles GET /requirements/options: the cleared artist
// filters and every value they can take.
func (h *RequirementsHandler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, requirementOptionsResponse{
		Query:      board.DefaultQuery(),
		Categories: board.Categories(),
		Locations:  h.deps.RequirementLocations(r.Context()),
		MinBudgets: board.MinBudgetOptions(),
		Sorts: []string{
			string(board.SortRecent),
			string(board.SortDateSoon),
			string(board.SortBudgetHigh),
			string(board.SortBudgetLow),
		},
	})
}
