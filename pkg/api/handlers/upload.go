package handlers

import (
	"encoding/json"
	"net/http"

	"gallerydb/pkg/gallery"
	"gallerydb/pkg/models"
	"gallerydb/pkg/utils"

	"github.com/gorilla/mux"
)

// RegisterGallery registers the public gallery routes.
func RegisterGallery(r *mux.Router) {
	r.HandleFunc("/upload", uploadThread).Methods(http.MethodPut)
	r.HandleFunc("/gallery", listGallery).Methods(http.MethodGet)
	r.HandleFunc("/gallery/search", searchGallery).Methods(http.MethodGet)
	r.HandleFunc("/thread/{id}", getThread).Methods(http.MethodGet)
	r.HandleFunc("/image/{key}", getImage).Methods(http.MethodGet)
}

// uploadThread handles PUT /upload: ingest a full thread document. Malformed
// bodies surface as a generic 500 like every other pipeline failure; the
// client contract only distinguishes success from error here.
func uploadThread(w http.ResponseWriter, r *http.Request) {
	var t models.Thread
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "invalid json")
		return
	}
	id, err := gallery.Upload(&t)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	_ = utils.JSONWrite(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
	}{Success: true, ID: id})
}
