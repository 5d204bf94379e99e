// Package api assembles the HTTP surface of the gallery service.
package api

import (
	"net/http"

	"gallerydb/pkg/api/handlers"

	"github.com/gorilla/mux"
)

// Router returns the gorilla/mux router with every service route mounted.
// CORS, rate limiting and request logging wrap the router in main.
func Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	handlers.RegisterGallery(r)
	handlers.RegisterAdmin(r)
	return r
}
