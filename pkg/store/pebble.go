package store

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gallerydb/pkg/logger"

	"github.com/cockroachdb/pebble"
)

// Two durable stores back the gallery: a heavy content-addressed blob store
// (image bytes and full thread documents) and a lightweight metadata index.
// Both are Pebble databases under the configured data dir. Neither offers
// ordering beyond per-key atomicity; callers must not rely on enumeration
// order.
var (
	blobs *pebble.DB
	index *pebble.DB
)

const (
	imagePrefix  = "image:"
	threadPrefix = "thread:"
	metaPrefix   = "meta:"
	markerPrefix = "marker:"
)

// Open opens (or creates) the blob and index databases under dataDir. A
// previously opened pair is closed first so tests can reopen cleanly.
func Open(dataDir string) error {
	if err := Close(); err != nil {
		return err
	}
	logger.Info("opening_stores", "data_dir", dataDir)
	b, err := pebble.Open(filepath.Join(dataDir, "blobs"), &pebble.Options{})
	if err != nil {
		logger.Error("blob_store_open_failed", "data_dir", dataDir, "error", err)
		return err
	}
	ix, err := pebble.Open(filepath.Join(dataDir, "index"), &pebble.Options{})
	if err != nil {
		_ = b.Close()
		logger.Error("index_store_open_failed", "data_dir", dataDir, "error", err)
		return err
	}
	blobs, index = b, ix
	logger.Info("stores_opened", "data_dir", dataDir)
	return nil
}

// Close closes both databases if open.
func Close() error {
	if blobs != nil {
		if err := blobs.Close(); err != nil {
			return err
		}
		blobs = nil
	}
	if index != nil {
		if err := index.Close(); err != nil {
			return err
		}
		index = nil
	}
	return nil
}

// Ready reports whether both stores are opened.
func Ready() bool {
	return blobs != nil && index != nil
}

// IsNotFound reports whether err denotes a missing key.
func IsNotFound(err error) bool {
	return errors.Is(err, pebble.ErrNotFound)
}

func notOpen() error {
	return fmt.Errorf("stores not opened; call store.Open first")
}

// HasImage is the cheap existence probe used for deduplication: it reports
// whether the content-addressed key already holds bytes.
func HasImage(key string) (bool, error) {
	if blobs == nil {
		return false, notOpen()
	}
	_, closer, err := blobs.Get([]byte(imagePrefix + key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if closer != nil {
		_ = closer.Close()
	}
	return true, nil
}

// PutImageIfAbsent writes image bytes under their content-addressed key only
// when the key is missing, and reports whether a write happened. The
// check-then-put is an optimization, not a concurrency guard: two concurrent
// uploads of the same new content may both write, which is safe because the
// key fully determines the bytes.
func PutImageIfAbsent(key string, data []byte) (bool, error) {
	if blobs == nil {
		return false, notOpen()
	}
	ok, err := HasImage(key)
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}
	if err := blobs.Set([]byte(imagePrefix+key), data, pebble.Sync); err != nil {
		logger.Error("image_write_failed", "key", key, "error", err)
		return false, err
	}
	logger.Debug("image_written", "key", key, "len", len(data))
	return true, nil
}

// GetImage returns the stored bytes for a content-addressed image key.
func GetImage(key string) ([]byte, error) {
	if blobs == nil {
		return nil, notOpen()
	}
	v, closer, err := blobs.Get([]byte(imagePrefix + key))
	if err != nil {
		return nil, err
	}
	out := append([]byte(nil), v...)
	if closer != nil {
		_ = closer.Close()
	}
	return out, nil
}

// ListImageKeys returns every content-addressed image key in the blob store.
func ListImageKeys() ([]string, error) {
	if blobs == nil {
		return nil, notOpen()
	}
	keys, err := listKeys(blobs, imagePrefix)
	if err != nil {
		return nil, err
	}
	for i, k := range keys {
		keys[i] = strings.TrimPrefix(k, imagePrefix)
	}
	return keys, nil
}

// SaveThreadDoc stores the full (image-reference-only) thread document.
// Re-uploading with the same id overwrites, which keeps retries idempotent.
func SaveThreadDoc(id string, data []byte) error {
	if blobs == nil {
		return notOpen()
	}
	if err := blobs.Set([]byte(threadPrefix+id), data, pebble.Sync); err != nil {
		logger.Error("thread_doc_write_failed", "thread", id, "error", err)
		return err
	}
	logger.Info("thread_doc_saved", "thread", id, "len", len(data))
	return nil
}

// GetThreadDoc returns the canonical thread document for an id.
func GetThreadDoc(id string) ([]byte, error) {
	if blobs == nil {
		return nil, notOpen()
	}
	v, closer, err := blobs.Get([]byte(threadPrefix + id))
	if err != nil {
		return nil, err
	}
	out := append([]byte(nil), v...)
	if closer != nil {
		_ = closer.Close()
	}
	return out, nil
}

// SaveMeta stores the derived metadata record for a thread id.
func SaveMeta(id string, data []byte) error {
	if index == nil {
		return notOpen()
	}
	if err := index.Set([]byte(metaPrefix+id), data, pebble.Sync); err != nil {
		logger.Error("meta_write_failed", "thread", id, "error", err)
		return err
	}
	logger.Debug("meta_saved", "thread", id)
	return nil
}

// GetMeta returns the metadata record for a thread id.
func GetMeta(id string) ([]byte, error) {
	if index == nil {
		return nil, notOpen()
	}
	v, closer, err := index.Get([]byte(metaPrefix + id))
	if err != nil {
		return nil, err
	}
	out := append([]byte(nil), v...)
	if closer != nil {
		_ = closer.Close()
	}
	return out, nil
}

// ListMetaIDs returns the thread id of every metadata record. Enumeration
// order is an implementation detail of the index store; listing and search
// impose their own ordering.
func ListMetaIDs() ([]string, error) {
	if index == nil {
		return nil, notOpen()
	}
	keys, err := listKeys(index, metaPrefix)
	if err != nil {
		return nil, err
	}
	for i, k := range keys {
		keys[i] = strings.TrimPrefix(k, metaPrefix)
	}
	return keys, nil
}

// GetMarker returns the stored job marker value for name.
func GetMarker(name string) ([]byte, error) {
	if index == nil {
		return nil, notOpen()
	}
	v, closer, err := index.Get([]byte(markerPrefix + name))
	if err != nil {
		return nil, err
	}
	out := append([]byte(nil), v...)
	if closer != nil {
		_ = closer.Close()
	}
	return out, nil
}

// SetMarker stores a job completion marker.
func SetMarker(name string, data []byte) error {
	if index == nil {
		return notOpen()
	}
	if err := index.Set([]byte(markerPrefix+name), data, pebble.Sync); err != nil {
		logger.Error("marker_write_failed", "marker", name, "error", err)
		return err
	}
	logger.Info("marker_saved", "marker", name)
	return nil
}

func listKeys(db *pebble.DB, prefix string) ([]string, error) {
	pfx := []byte(prefix)
	iter, err := db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, err
	}
	defer iter.Close()
	var out []string
	for iter.SeekGE(pfx); iter.Valid(); iter.Next() {
		if !bytes.HasPrefix(iter.Key(), pfx) {
			break
		}
		k := append([]byte(nil), iter.Key()...)
		out = append(out, string(k))
	}
	return out, iter.Error()
}
