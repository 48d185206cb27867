package api

import (
	"context"
	"net/http"

	"github.com/okian/stagebook/internal/domain/discovery"
	"github.com/okian/stagebook/internal/domain/model"
)

// DiscoverDependencies defines the interface for Discover reads.
type DiscoverDependencies interface {
	Discover(ctx context.Context, c discovery.Criteria) []model.PerformerListing
	DiscoverFacets(ctx context.Context) (genres, locations []string)
}

// DiscoverHandler handles Discover requests.
type DiscoverHandler struct {
	deps DiscoverDependencies
}

// NewDiscoverHandler creates a new discover handler.
func NewDiscoverHandler(deps DiscoverDependencies) *DiscoverHandler {
	return &DiscoverHandler{deps: deps}
}

type discoverResponse struct {
	Criteria discovery.Criteria       `json:"criteria"`
	Count    int                      `json:"count"`
	Items    []model.PerformerListing `json:"items"`
}

type discoverDefaultsResponse struct {
	Criteria    discovery.Criteria `json:"criteria"`
	Genres      []string           `json:"genres"`
	Locations   []string           `json:"locations"`
	PriceRanges []string           `json:"priceRanges"`
	Sorts       []string           `json:"sorts"`
}

// HandleDiscover handles GET /discover?q=&genre=&location=&price=&sort=.
func (h *DiscoverHandler) HandleDiscover(w http.ResponseWriter, r *http.Request) {
	const op = "api.discover"
	c, err := discovery.ParseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	items := h.deps.Discover(r.Context(), c)
	writeJSON(w, http.StatusOK, discoverResponse{Criteria: c, Count: len(items), Items: items})
}

// HandleDefaults handles GET /discover/defaults: the cleared criteria and
// every value the filters can take.
func (h *DiscoverHandler) HandleDefaults(w http.ResponseWriter, r *http.Request) {
	genres, locations := h.deps.DiscoverFacets(r.Context())
	writeJSON(w, http.StatusOK, discoverDefaultsResponse{
		Criteria:    discovery.DefaultCriteria(),
		Genres:      append([]string{discovery.AllGenres}, genres...),
		Locations:   append([]string{discovery.AnyLocation}, locations...),
		PriceRanges: append([]string{discovery.AnyPrice}, discovery.PriceRanges()...),
		Sorts: []string{
			string(discovery.SortPopular),
			string(discovery.SortPriceLow),
			string(discovery.SortPriceHigh),
		},
	})
}
