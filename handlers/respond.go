package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"reeltrack/internal/database"
	"reeltrack/services/blog"
	"reeltrack/services/images"
	"reeltrack/services/library"
	"reeltrack/services/tmdb"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondServiceError maps service and store errors onto the API's status
// taxonomy. Anything unrecognized is logged and hidden behind a 500.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondError(w, http.StatusNotFound, "item not found")
	case errors.Is(err, database.ErrSlugExists):
		respondError(w, http.StatusConflict, "slug already exists")
	case errors.Is(err, library.ErrImageRequired),
		errors.Is(err, library.ErrTitleRequired),
		errors.Is(err, library.ErrInvalidScore),
		errors.Is(err, library.ErrInvalidExcitement),
		errors.Is(err, library.ErrInvalidSeason),
		errors.Is(err, blog.ErrInvalidSlug),
		errors.Is(err, blog.ErrWatchedNotFound),
		errors.Is(err, images.ErrUnsupportedImage),
		errors.Is(err, tmdb.ErrUnsupportedMediaType):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, tmdb.ErrNotConfigured):
		respondError(w, http.StatusInternalServerError, err.Error())
	case errors.Is(err, tmdb.ErrUpstream):
		respondError(w, http.StatusBadGateway, err.Error())
	default:
		log.Printf("[api] internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
