// Package telemetry exposes the service's prometheus collectors. They are
// registered on the default registry and served by promhttp in main.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Uploads counts successfully ingested threads.
	Uploads = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gallerydb",
		Name:      "uploads_total",
		Help:      "Threads accepted by the upload pipeline.",
	})

	// ImageWrites counts blob-store writes of new image content.
	ImageWrites = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gallerydb",
		Name:      "image_writes_total",
		Help:      "Image blobs written to the blob store.",
	})

	// DedupHits counts inline images whose content already existed in the
	// blob store (existence probe hit, no write).
	DedupHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gallerydb",
		Name:      "image_dedup_hits_total",
		Help:      "Inline images deduplicated against existing blobs.",
	})

	// ImageFailures counts inline images that failed to parse, hash or
	// store and were left untouched in their turn.
	ImageFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gallerydb",
		Name:      "image_failures_total",
		Help:      "Inline images that could not be processed during upload.",
	})

	// MigratedRecords counts metadata records rewritten by the backfill job.
	MigratedRecords = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gallerydb",
		Name:      "migrated_records_total",
		Help:      "Metadata records rewritten by the migration job.",
	})
)
