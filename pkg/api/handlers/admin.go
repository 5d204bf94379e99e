package handlers

import (
	"net/http"

	"gallerydb/pkg/config"
	"gallerydb/pkg/logger"
	"gallerydb/pkg/migrate"
	"gallerydb/pkg/security"
	"gallerydb/pkg/store"
	"gallerydb/pkg/utils"

	"github.com/gorilla/mux"
)

// RegisterAdmin registers token-guarded operator routes.
func RegisterAdmin(r *mux.Router) {
	r.HandleFunc("/admin/migrate", adminMigrate).Methods(http.MethodPost)
	r.HandleFunc("/admin/stats", adminStats).Methods(http.MethodGet)
	logger.Info("admin_routes_registered")
}

// adminMigrate handles POST /admin/migrate: the idempotent metadata
// backfill. The token check runs before any store access.
func adminMigrate(w http.ResponseWriter, r *http.Request) {
	if !security.AdminTokenValid(r, config.AdminToken()) {
		utils.JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	res, err := migrate.Run()
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if res.AlreadyDone {
		_ = utils.JSONWrite(w, http.StatusOK, struct {
			Message    string `json:"message"`
			MigratedAt string `json:"migratedAt"`
		}{Message: "migration already completed", MigratedAt: res.MigratedAt})
		return
	}
	_ = utils.JSONWrite(w, http.StatusOK, struct {
		Success       bool `json:"success"`
		MigratedCount int  `json:"migratedCount"`
		ErrorCount    int  `json:"errorCount"`
	}{Success: true, MigratedCount: res.Migrated, ErrorCount: res.Errors})
}

// adminStats handles GET /admin/stats: record counts per namespace.
func adminStats(w http.ResponseWriter, r *http.Request) {
	if !security.AdminTokenValid(r, config.AdminToken()) {
		utils.JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ids, err := store.ListMetaIDs()
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	keys, err := store.ListImageKeys()
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	_ = utils.JSONWrite(w, http.StatusOK, struct {
		Threads int `json:"threads"`
		Images  int `json:"images"`
	}{Threads: len(ids), Images: len(keys)})
}
