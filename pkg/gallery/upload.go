// Package gallery implements the core of the publishing backend: the upload
// pipeline that rewrites inline images into deduplicated blob references,
// and the listing/search services over the metadata index.
package gallery

import (
	"encoding/json"
	"fmt"
	"time"

	"gallerydb/pkg/images"
	"gallerydb/pkg/logger"
	"gallerydb/pkg/models"
	"gallerydb/pkg/store"
	"gallerydb/pkg/telemetry"
	"gallerydb/pkg/utils"
)

// Upload ingests a thread document: it rewrites every inline image into a
// content-addressed blob reference, derives the gallery metadata, and
// persists document and metadata. The document write is attempted first; a
// metadata record pointing at a missing document is a worse failure mode
// than an unindexed-but-retrievable document. Re-uploading with the same id
// overwrites both records, so retries with a stable id are idempotent.
func Upload(t *models.Thread) (string, error) {
	if err := t.Validate(); err != nil {
		return "", fmt.Errorf("invalid thread: %w", err)
	}
	if t.ID == "" {
		t.ID = utils.GenThreadID()
	}
	if t.CreatedAt == 0 {
		t.CreatedAt = time.Now().UTC().UnixMilli()
	}

	rewriteImages(t)

	meta := BuildMeta(t)

	doc, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("failed to marshal thread: %w", err)
	}
	if err := store.SaveThreadDoc(t.ID, doc); err != nil {
		return "", fmt.Errorf("document store write failed: %w", err)
	}

	mb, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := store.SaveMeta(t.ID, mb); err != nil {
		return "", fmt.Errorf("index store write failed: %w", err)
	}

	telemetry.Uploads.Inc()
	logger.Info("thread_uploaded", "thread", t.ID, "turns", len(t.Conversation))
	return t.ID, nil
}

// rewriteImages replaces each turn's inline data-URI content with a
// dereferenceable /image/<key> URL. A turn whose image fails to parse, hash
// or store keeps its original inline content; one bad image degrades that
// turn, never the whole upload.
func rewriteImages(t *models.Thread) {
	for i := range t.Conversation {
		turn := &t.Conversation[i]
		if !images.IsDataURI(turn.Image) {
			continue
		}
		mediaType, data, err := images.ParseDataURI(turn.Image)
		if err != nil {
			telemetry.ImageFailures.Inc()
			logger.Warn("image_parse_failed", "thread", t.ID, "turn", i, "error", err)
			continue
		}
		key := images.BlobKey(data, mediaType)
		wrote, err := store.PutImageIfAbsent(key, data)
		if err != nil {
			telemetry.ImageFailures.Inc()
			logger.Warn("image_store_failed", "thread", t.ID, "turn", i, "key", key, "error", err)
			continue
		}
		if wrote {
			telemetry.ImageWrites.Inc()
		} else {
			telemetry.DedupHits.Inc()
			logger.Debug("image_deduplicated", "thread", t.ID, "key", key)
		}
		turn.Image = images.URLForKey(key)
	}
}
