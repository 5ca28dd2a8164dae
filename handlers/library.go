package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"reeltrack/models"
	"reeltrack/services/library"
)

// maxUploadBytes bounds multipart create requests; posters are small.
const maxUploadBytes = 32 << 20

// LibraryHandler exposes the watched, top and want-to-watch endpoints.
type LibraryHandler struct {
	service *library.Service
}

// NewLibraryHandler creates a new library handler.
func NewLibraryHandler(service *library.Service) *LibraryHandler {
	return &LibraryHandler{service: service}
}

// ListWatched returns the unranked watched feed.
func (h *LibraryHandler) ListWatched(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListWatched(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// ListTop returns the curated top list.
func (h *LibraryHandler) ListTop(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListTop(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// CreateWatched accepts a multipart form so the image can arrive either as
// a file upload or as a URL field.
func (h *LibraryHandler) CreateWatched(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	f := &formReader{r: r}
	item := &models.WatchedItem{
		Title:       f.value("title"),
		Comment:     f.value("comment"),
		Score:       f.intField("score"),
		WatchDate:   f.value("watchDate"),
		ContentType: f.value("contentType"),
		Season:      f.intPtr("season"),
		Synopsis:    f.stringPtr("synopsis"),
		ReleaseYear: f.intPtr("releaseYear"),
		ReleaseDate: f.stringPtr("releaseDate"),
		Runtime:     f.intPtr("runtime"),
		Genres:      f.stringPtr("genres"),
		TMDBID:      f.int64Ptr("tmdbId"),
		TMDBRating:  f.floatPtr("tmdbRating"),
		PosterURL:   f.stringPtr("posterUrl"),
		TopRank:     f.intPtr("topRank"),
	}
	if f.err != nil {
		respondError(w, http.StatusBadRequest, f.err.Error())
		return
	}

	img := library.ImageInput{URL: f.value("imageUrl")}
	if file, header, err := r.FormFile("imageFile"); err == nil {
		defer file.Close()
		img.File = file
		img.Filename = header.Filename
	}

	created, err := h.service.AddWatched(r.Context(), item, img)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// UpdateWatched replaces the full record; the id always comes from the path.
func (h *LibraryHandler) UpdateWatched(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var item models.WatchedItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.service.UpdateWatched(r.Context(), id, &item)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteWatched removes a watched item and, by cascade, its blog posts.
func (h *LibraryHandler) DeleteWatched(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteWatched(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, messageResponse{Message: "item deleted"})
}

// ListWanted returns the want-to-watch list.
func (h *LibraryHandler) ListWanted(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListWanted(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// CreateWanted mirrors CreateWatched for the want-to-watch list.
func (h *LibraryHandler) CreateWanted(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	f := &formReader{r: r}
	item := &models.WantToWatchItem{
		Title:       f.value("title"),
		LaunchDate:  f.value("launchDate"),
		Excitement:  f.intField("excitement"),
		ContentType: f.value("contentType"),
		Season:      f.intPtr("season"),
		Synopsis:    f.stringPtr("synopsis"),
		ReleaseYear: f.intPtr("releaseYear"),
		Runtime:     f.intPtr("runtime"),
		Genres:      f.stringPtr("genres"),
		TMDBID:      f.int64Ptr("tmdbId"),
		TMDBRating:  f.floatPtr("tmdbRating"),
		PosterURL:   f.stringPtr("posterUrl"),
	}
	if f.err != nil {
		respondError(w, http.StatusBadRequest, f.err.Error())
		return
	}

	img := library.ImageInput{URL: f.value("imageUrl")}
	if file, header, err := r.FormFile("imageFile"); err == nil {
		defer file.Close()
		img.File = file
		img.Filename = header.Filename
	}

	created, err := h.service.AddWanted(r.Context(), item, img)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// UpdateWanted replaces the full record; the id always comes from the path.
func (h *LibraryHandler) UpdateWanted(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var item models.WantToWatchItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.service.UpdateWanted(r.Context(), id, &item)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteWanted removes a want-to-watch item.
func (h *LibraryHandler) DeleteWanted(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteWanted(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, messageResponse{Message: "item deleted"})
}

// Stats returns counts and averages for both feeds.
func (h *LibraryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// pathID parses the {id} route variable, answering a 400 itself on garbage.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
