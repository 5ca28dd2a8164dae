package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"reeltrack/services/blog"
	"reeltrack/services/library"
	"reeltrack/services/tmdb"
)

// RegisterRoutes mounts the JSON API under /api and the ingested image files
// under their public prefix. Every mutating route goes through the gate.
func RegisterRoutes(r *mux.Router, gate *Gate, librarySvc *library.Service, blogSvc *blog.Service, metadata *tmdb.Client, imagesDir string) {
	api := r.PathPrefix("/api").Subrouter()

	lib := NewLibraryHandler(librarySvc)
	api.HandleFunc("/watched", lib.ListWatched).Methods(http.MethodGet)
	api.HandleFunc("/watched", gate.Require(lib.CreateWatched)).Methods(http.MethodPost)
	api.HandleFunc("/watched/{id:[0-9]+}", gate.Require(lib.UpdateWatched)).Methods(http.MethodPut)
	api.HandleFunc("/watched/{id:[0-9]+}", gate.Require(lib.DeleteWatched)).Methods(http.MethodDelete)
	api.HandleFunc("/top", lib.ListTop).Methods(http.MethodGet)
	api.HandleFunc("/want-to-watch", lib.ListWanted).Methods(http.MethodGet)
	api.HandleFunc("/want-to-watch", gate.Require(lib.CreateWanted)).Methods(http.MethodPost)
	api.HandleFunc("/want-to-watch/{id:[0-9]+}", gate.Require(lib.UpdateWanted)).Methods(http.MethodPut)
	api.HandleFunc("/want-to-watch/{id:[0-9]+}", gate.Require(lib.DeleteWanted)).Methods(http.MethodDelete)
	api.HandleFunc("/stats", lib.Stats).Methods(http.MethodGet)

	posts := NewBlogHandler(blogSvc)
	api.HandleFunc("/blog", posts.List).Methods(http.MethodGet)
	api.HandleFunc("/blog", gate.Require(posts.Create)).Methods(http.MethodPost)
	api.HandleFunc("/blog/{id:[0-9]+}", gate.Require(posts.Update)).Methods(http.MethodPut)
	api.HandleFunc("/blog/{id:[0-9]+}", gate.Require(posts.Delete)).Methods(http.MethodDelete)
	api.HandleFunc("/blog/{slug}", posts.GetBySlug).Methods(http.MethodGet)

	meta := NewMetadataHandler(metadata)
	api.HandleFunc("/tmdb/search", meta.Search).Methods(http.MethodGet)
	api.HandleFunc("/tmdb/details/{mediaType}/{id:[0-9]+}", meta.Details).Methods(http.MethodGet)

	r.PathPrefix("/static/images/").Handler(
		http.StripPrefix("/static/images/", http.FileServer(http.Dir(imagesDir))))
}
