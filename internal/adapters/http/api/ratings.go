// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
	"strings"
)

const defaultLimit = 25

// RatingsHandler handles rating table requests.
type RatingsHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewRatingsHandler creates a new ratings handler.
func NewRatingsHandler(deps Dependencies, maxLimit int) *RatingsHandler {
	return &RatingsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleListAlgorithms handles GET /ratings requests.
func (h *RatingsHandler) HandleListAlgorithms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{
		"algorithms": h.deps.Algorithms(r.Context()),
	})
}

// HandleRatings dispatches GET /ratings/{algorithm}?limit=N and
// GET /ratings/{algorithm}/teams/{team} requests.
func (h *RatingsHandler) HandleRatings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/ratings/")
	parts := strings.SplitN(rest, "/", 3)
	switch {
	case len(parts) == 1 && parts[0] != "":
		h.handleTable(w, r, parts[0])
	case len(parts) == 3 && parts[1] == "teams" && parts[2] != "":
		h.handleTeam(w, r, parts[0], parts[2])
	default:
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
	}
}

func (h *RatingsHandler) handleTable(w http.ResponseWriter, r *http.Request, algorithm string) {
	n := defaultLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		n, err = strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", ErrBadRequest)
		return
	}
	entries, err := h.deps.TopN(r.Context(), algorithm, n)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *RatingsHandler) handleTeam(w http.ResponseWriter, r *http.Request, algorithm, team string) {
	entry, err := h.deps.Rank(r.Context(), algorithm, team)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
