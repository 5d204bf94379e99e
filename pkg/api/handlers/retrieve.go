package handlers

import (
	"net/http"

	"gallerydb/pkg/images"
	"gallerydb/pkg/store"

	"github.com/gorilla/mux"
)

// getThread handles GET /thread/{id}: the canonical document straight from
// the blob store, byte for byte.
func getThread(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	doc, err := store.GetThreadDoc(id)
	if err != nil {
		if store.IsNotFound(err) {
			http.Error(w, "thread not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(doc)
}

// getImage handles GET /image/{key}. Content addressing makes blobs
// write-once, so the same key can never denote different bytes and the
// response is cacheable forever.
func getImage(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	data, err := store.GetImage(key)
	if err != nil {
		if store.IsNotFound(err) {
			http.Error(w, "image not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", images.ContentTypeForKey(key))
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	_, _ = w.Write(data)
}
