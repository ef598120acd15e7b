package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fwojciec/docidx"
)

// DefaultLimit is the number of results returned when a request sets none.
const DefaultLimit = 10

// MaxLimit caps the number of results a request may ask for.
const MaxLimit = 200

// Handler serves search requests as JSON.
//
//	GET /search?q=QUERY&lib=LIBRARY&n=LIMIT
type Handler struct {
	// Limit is the result count used when a request sets none.
	Limit int

	searcher docidx.Searcher
	logger   *slog.Logger
	mux      *http.ServeMux
}

// NewHandler returns a Handler that answers queries with searcher.
func NewHandler(searcher docidx.Searcher, logger *slog.Logger) *Handler {
	h := &Handler{
		Limit:    DefaultLimit,
		searcher: searcher,
		logger:   logger,
		mux:      http.NewServeMux(),
	}
	h.mux.HandleFunc("GET /search", h.handleSearch)
	return h
}

// Handle registers an additional handler, such as a metrics endpoint.
func (h *Handler) Handle(pattern string, handler http.Handler) {
	h.mux.Handle(pattern, handler)
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type searchResponse struct {
	Query   string                    `json:"query"`
	Results []docidx.DisplayableMatch `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := docidx.Query{
		Library: params.Get("lib"),
		Text:    params.Get("q"),
		Limit:   min(max(h.Limit, 1), MaxLimit),
	}
	if n := params.Get("n"); n != "" {
		limit, err := strconv.Atoi(n)
		if err != nil || limit < 1 || limit > MaxLimit {
			h.writeError(w, docidx.Errorf(docidx.EINVALID, "n must be between 1 and %d", MaxLimit))
			return
		}
		q.Limit = limit
	}

	results, err := h.searcher.Search(r.Context(), q)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if results == nil {
		results = []docidx.DisplayableMatch{}
	}
	h.writeJSON(w, http.StatusOK, searchResponse{Query: q.Text, Results: results})
}

// writeError maps application error codes to HTTP statuses.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	code, message := docidx.ErrorCode(err), docidx.ErrorMessage(err)
	if code == docidx.EINTERNAL {
		h.logger.Error("search failed", "err", err)
	}
	status, ok := statusCodes[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	h.writeJSON(w, status, errorResponse{Error: message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to write response", "err", err)
	}
}

var statusCodes = map[string]int{
	docidx.ECONFLICT:   http.StatusConflict,
	docidx.EINVALID:    http.StatusBadRequest,
	docidx.ENOTFOUND:   http.StatusNotFound,
	docidx.ENOTREADY:   http.StatusNotFound,
	docidx.EMALFORMED:  http.StatusUnprocessableEntity,
	docidx.EOUTOFRANGE: http.StatusUnprocessableEntity,
	docidx.EINTERNAL:   http.StatusInternalServerError,
}
