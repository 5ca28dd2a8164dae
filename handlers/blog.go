package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"reeltrack/models"
	"reeltrack/services/blog"
)

// BlogHandler exposes the blog post endpoints.
type BlogHandler struct {
	service *blog.Service
}

// NewBlogHandler creates a new blog handler.
func NewBlogHandler(service *blog.Service) *BlogHandler {
	return &BlogHandler{service: service}
}

// List returns all posts, newest first, with joined watched-item fields.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

// GetBySlug returns a single post with full watched-item metadata.
func (h *BlogHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.GetBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// Create stores a new post for an existing watched item.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var post models.BlogPost
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), &post)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update replaces a post; the id always comes from the path and the
// creation timestamp is kept as stored.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var post models.BlogPost
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.service.Update(r.Context(), id, &post)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete removes a post by id.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, messageResponse{Message: "post deleted"})
}
