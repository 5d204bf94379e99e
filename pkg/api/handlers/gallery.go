package handlers

import (
	"net/http"
	"strconv"

	"gallerydb/pkg/gallery"
	"gallerydb/pkg/models"
	"gallerydb/pkg/utils"
)

// listGallery handles GET /gallery?offset&limit: one page of the metadata
// index, newest first.
func listGallery(w http.ResponseWriter, r *http.Request) {
	offset := intQuery(r, "offset", 0)
	limit := intQuery(r, "limit", 0)

	page, err := gallery.List(offset, limit)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	_ = utils.JSONWrite(w, http.StatusOK, page)
}

// searchGallery handles GET /gallery/search?q&style&limit.
func searchGallery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	style := r.URL.Query().Get("style")
	limit := intQuery(r, "limit", 0)

	matches, err := gallery.Search(q, style, limit)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	_ = utils.JSONWrite(w, http.StatusOK, struct {
		Threads     []models.ThreadMeta `json:"threads"`
		Query       string              `json:"query"`
		StyleFilter string              `json:"styleFilter"`
		Count       int                 `json:"count"`
	}{Threads: matches, Query: q, StyleFilter: style, Count: len(matches)})
}

func intQuery(r *http.Request, name string, def int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
