// Package server exposes the style, legend and summary API consumed by
// the map-rendering client. The engine stays UI-agnostic: every endpoint
// returns plain data structures the client applies itself.
package server

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/cartolab/venicemap/internal/aggregate"
	"github.com/cartolab/venicemap/internal/choropleth"
	"github.com/cartolab/venicemap/internal/classify"
	"github.com/cartolab/venicemap/internal/dataset"
	"github.com/cartolab/venicemap/internal/palette"
)

// Options tunes the HTTP surface.
type Options struct {
	AllowedOrigins []string
	RateLimit      rate.Limit
	RateBurst      int
}

// Server serves styles, legends and summaries for the loaded datasets.
// A nil collection marks a dataset whose load failed; its endpoints
// return 503 while the other dataset keeps working.
type Server struct {
	buildings     *dataset.Collection
	neighborhoods *dataset.Collection
	store         *classify.Store
	resolver      *choropleth.Resolver
	limiter       *rate.Limiter
	router        chi.Router
}

// New assembles the router over the loaded datasets.
func New(buildings, neighborhoods *dataset.Collection, store *classify.Store, opts Options) *Server {
	s := &Server{
		buildings:     buildings,
		neighborhoods: neighborhoods,
		store:         store,
		resolver:      choropleth.NewResolver(store),
	}
	if opts.RateLimit > 0 {
		s.limiter = rate.NewLimiter(opts.RateLimit, opts.RateBurst)
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(s.throttle)

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/styles/{dataset}", s.handleStyles)
		r.Get("/legend/{dataset}", s.handleLegend)
		r.Get("/summary/{dataset}", s.handleSummary)
	})

	s.router = r
	return s
}

// Handler returns the assembled HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":                  "ok",
		"buildings_available":     s.buildings != nil,
		"neighborhoods_available": s.neighborhoods != nil,
	})
}

// handleStyles returns one style descriptor per feature, in feature
// order, for the view state given in the query.
func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	kind, col, ok := s.collection(w, r)
	if !ok {
		return
	}
	view, err := viewFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	styles := make([]choropleth.Style, len(col.Features))
	for i := range col.Features {
		if kind == dataset.Buildings {
			styles[i] = s.resolver.BuildingStyle(&col.Features[i], view)
		} else {
			styles[i] = s.resolver.NeighborhoodStyle(&col.Features[i], view)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"dataset": kind,
		"count":   len(styles),
		"styles":  styles,
	})
}

// handleLegend returns ordered legend rows, highest class first.
func (s *Server) handleLegend(w http.ResponseWriter, r *http.Request) {
	kind, col, ok := s.collection(w, r)
	if !ok {
		return
	}
	view, err := viewFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, pal, err := s.aggregate(kind, col, view)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"dataset": kind,
		"attr":    res.Attr,
		"rows":    aggregate.Legend(res, pal),
	})
}

// handleSummary returns the mode's aggregate total and display text.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	kind, col, ok := s.collection(w, r)
	if !ok {
		return
	}
	view, err := viewFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, _, err := s.aggregate(kind, col, view)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"dataset":  kind,
		"attr":     res.Attr,
		"total":    res.Total,
		"text":     res.Summary(),
		"no_data":  res.NoData,
		"features": res.FeatureCount(),
	})
}

// aggregate runs the one-pass aggregation matching the dataset kind.
func (s *Server) aggregate(kind dataset.Kind, col *dataset.Collection, view choropleth.ViewState) (aggregate.Result, []palette.Color, error) {
	if kind == dataset.Buildings {
		res := aggregate.Buildings(col, view.BuildingMode, s.store)
		return res, palette.MustGenerate(view.BuildingMode.Recipe(), palette.Size), nil
	}

	if view.NeighborhoodKey == "" {
		return aggregate.Result{}, nil, eris.New("server: query parameter key is required for neighborhoods")
	}
	recipe, ok := choropleth.NeighborhoodRecipes[view.NeighborhoodKey]
	if !ok {
		return aggregate.Result{}, nil, eris.Errorf("server: unknown neighborhood key %q", view.NeighborhoodKey)
	}
	res := aggregate.Neighborhoods(col, view.NeighborhoodKey, s.store)
	return res, palette.MustGenerate(recipe, palette.Size), nil
}

// collection resolves the {dataset} URL parameter, writing the error
// response itself when the dataset is unknown or unavailable.
func (s *Server) collection(w http.ResponseWriter, r *http.Request) (dataset.Kind, *dataset.Collection, bool) {
	kind := dataset.Kind(chi.URLParam(r, "dataset"))
	var col *dataset.Collection
	switch kind {
	case dataset.Buildings:
		col = s.buildings
	case dataset.Neighborhoods:
		col = s.neighborhoods
	default:
		writeError(w, http.StatusNotFound, eris.Errorf("server: unknown dataset %q", kind))
		return kind, nil, false
	}
	if col == nil {
		writeError(w, http.StatusServiceUnavailable, eris.Errorf("server: %s dataset unavailable", kind))
		return kind, nil, false
	}
	return kind, col, true
}

// viewFromQuery builds the immutable view state for one request.
func viewFromQuery(q url.Values) (choropleth.ViewState, error) {
	view := choropleth.DefaultView

	if raw := q.Get("mode"); raw != "" {
		mode := choropleth.Mode(raw)
		if !mode.Valid() {
			return view, eris.Errorf("server: unknown mode %q", raw)
		}
		view.BuildingMode = mode
	}
	view.NeighborhoodKey = q.Get("key")
	view.NeighborhoodsVisible = q.Get("neighborhoods") == "true"

	return view, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
