// Package migrate implements the one-time administrator-triggered backfill
// of derived searchText/styles fields onto legacy metadata records.
package migrate

import (
	"encoding/json"
	"time"

	"gallerydb/pkg/gallery"
	"gallerydb/pkg/logger"
	"gallerydb/pkg/models"
	"gallerydb/pkg/store"
	"gallerydb/pkg/telemetry"
)

// MarkerName is the index-store key guarding the backfill against re-runs.
const MarkerName = "searchtext_backfill"

// Marker records when the backfill completed.
type Marker struct {
	MigratedAt string `json:"migratedAt"`
}

// Result reports what a migration invocation did.
type Result struct {
	AlreadyDone bool
	MigratedAt  string
	Migrated    int
	Errors      int
}

// Run performs the idempotent backfill. If the completion marker is present
// the prior completion is reported without scanning anything. Otherwise
// every metadata record missing the derived fields is recomputed from its
// full thread document and rewritten in place. Per-record failures are
// counted and skipped; the batch never aborts. The blob store is read-only
// throughout.
func Run() (Result, error) {
	if raw, err := store.GetMarker(MarkerName); err == nil {
		var m Marker
		_ = json.Unmarshal(raw, &m)
		logger.Info("migration_already_completed", "migrated_at", m.MigratedAt)
		return Result{AlreadyDone: true, MigratedAt: m.MigratedAt}, nil
	} else if !store.IsNotFound(err) {
		return Result{}, err
	}

	ids, err := store.ListMetaIDs()
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, id := range ids {
		migrated, err := backfillRecord(id)
		if err != nil {
			res.Errors++
			logger.Warn("migration_record_failed", "thread", id, "error", err)
			continue
		}
		if migrated {
			res.Migrated++
			telemetry.MigratedRecords.Inc()
		}
	}

	marker := Marker{MigratedAt: time.Now().UTC().Format(time.RFC3339)}
	mb, _ := json.Marshal(marker)
	if err := store.SetMarker(MarkerName, mb); err != nil {
		return res, err
	}
	res.MigratedAt = marker.MigratedAt
	logger.Info("migration_completed", "migrated", res.Migrated, "errors", res.Errors)
	return res, nil
}

// backfillRecord rewrites one metadata record when its derived fields are
// missing. This read-modify-write is not transactional; a concurrent upload
// rewriting the same record wins or loses by last write, which is accepted.
func backfillRecord(id string) (bool, error) {
	raw, err := store.GetMeta(id)
	if err != nil {
		return false, err
	}
	var meta models.ThreadMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return false, err
	}
	if meta.SearchText != "" && len(meta.Styles) > 0 {
		return false, nil
	}

	doc, err := store.GetThreadDoc(id)
	if err != nil {
		return false, err
	}
	var t models.Thread
	if err := json.Unmarshal(doc, &t); err != nil {
		return false, err
	}

	meta.SearchText = gallery.DeriveSearchText(&t)
	meta.Styles = gallery.DeriveStyles(&t)
	if meta.TurnCount == 0 {
		meta.TurnCount = len(t.Conversation)
	}
	if meta.Title == "" {
		meta.Title = gallery.DeriveTitle(&t)
	}

	nb, err := json.Marshal(meta)
	if err != nil {
		return false, err
	}
	if err := store.SaveMeta(id, nb); err != nil {
		return false, err
	}
	return true, nil
}
