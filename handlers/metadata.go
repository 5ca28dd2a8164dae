package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"reeltrack/services/tmdb"
)

// MetadataHandler proxies catalog lookups to the TMDB client.
type MetadataHandler struct {
	client *tmdb.Client
}

// NewMetadataHandler creates a new metadata handler.
func NewMetadataHandler(client *tmdb.Client) *MetadataHandler {
	return &MetadataHandler{client: client}
}

// Search looks up titles by free-text query, optionally filtered to one
// media type. A blank query yields an empty list without an upstream call.
func (h *MetadataHandler) Search(w http.ResponseWriter, r *http.Request) {
	results, err := h.client.Search(r.Context(), r.URL.Query().Get("query"), r.URL.Query().Get("mediaType"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}

// Details fetches the normalized detail record for one title.
func (h *MetadataHandler) Details(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	details, err := h.client.Details(r.Context(), vars["mediaType"], id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}
