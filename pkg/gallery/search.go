package gallery

import (
	"encoding/json"
	"strings"

	"gallerydb/pkg/logger"
	"gallerydb/pkg/models"
	"gallerydb/pkg/store"
)

const (
	// DefaultSearchLimit is the match cap when the client does not ask for
	// one.
	DefaultSearchLimit = 20
	// MaxSearchLimit clamps client-supplied search limits.
	MaxSearchLimit = 50
	// searchScanPage is the enumeration page size; the early-exit check
	// runs at page boundaries.
	searchScanPage = 100
)

// Search returns up to limit metadata records matching the optional
// case-insensitive query substring and optional style filter.
//
// Enumeration stops at the first page boundary where limit matches have been
// collected. That early exit keeps read cost low, but when matches are
// sparse and spread across many enumeration pages the result is not
// guaranteed to hold the globally most-recent matches. Callers needing
// exhaustive results are not supported.
func Search(query, style string, limit int) ([]models.ThreadMeta, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}
	q := strings.ToLower(strings.TrimSpace(query))

	ids, err := store.ListMetaIDs()
	if err != nil {
		return nil, err
	}

	matches := []models.ThreadMeta{}
	for start := 0; start < len(ids); start += searchScanPage {
		end := start + searchScanPage
		if end > len(ids) {
			end = len(ids)
		}
		for _, id := range ids[start:end] {
			raw, err := store.GetMeta(id)
			if err != nil {
				logger.Warn("meta_fetch_failed", "thread", id, "error", err)
				continue
			}
			var m models.ThreadMeta
			if err := json.Unmarshal(raw, &m); err != nil {
				logger.Warn("meta_decode_failed", "thread", id, "error", err)
				continue
			}
			if matchesFilters(m, q, style) {
				matches = append(matches, m)
			}
		}
		if len(matches) >= limit {
			break
		}
	}

	sortByTimestampDesc(matches)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// matchesFilters applies the style filter first, then the substring query
// over title and the precomputed lowercase searchText.
func matchesFilters(m models.ThreadMeta, q, style string) bool {
	if style != "" && !m.HasStyle(style) {
		return false
	}
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(m.Title), q) {
		return true
	}
	return strings.Contains(m.SearchText, q)
}
