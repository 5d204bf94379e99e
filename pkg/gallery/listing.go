package gallery

import (
	"encoding/json"
	"sort"

	"gallerydb/pkg/logger"
	"gallerydb/pkg/models"
	"gallerydb/pkg/store"
)

const (
	// DefaultPageLimit is the listing window when the client does not ask
	// for one.
	DefaultPageLimit = 20
	// MaxPageLimit clamps client-supplied listing limits.
	MaxPageLimit = 100
)

// Page is one window of the gallery listing.
type Page struct {
	Threads []models.ThreadMeta `json:"threads"`
	Offset  int                 `json:"offset"`
	Limit   int                 `json:"limit"`
	Total   int                 `json:"total"`
	HasMore bool                `json:"hasMore"`
}

// List returns a page of thread metadata sorted by timestamp descending.
// The index store offers no ordering guarantee and only prefix enumeration,
// so the whole index is enumerated, fetched and sorted on every call. That
// is O(N) per request and intentional: the catalog is expected to stay
// modest, and a secondary time-ordered index is out of scope.
func List(offset, limit int) (Page, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	all, err := loadAllMeta()
	if err != nil {
		return Page{}, err
	}
	sortByTimestampDesc(all)

	total := len(all)
	page := Page{
		Threads: []models.ThreadMeta{},
		Offset:  offset,
		Limit:   limit,
		Total:   total,
		HasMore: offset+limit < total,
	}
	if offset >= total {
		return page, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	page.Threads = all[offset:end]
	return page, nil
}

// loadAllMeta fetches every metadata record. Records that fail to decode are
// logged and skipped; a corrupt index entry must not take the gallery down.
func loadAllMeta() ([]models.ThreadMeta, error) {
	ids, err := store.ListMetaIDs()
	if err != nil {
		return nil, err
	}
	out := make([]models.ThreadMeta, 0, len(ids))
	for _, id := range ids {
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
		out = append(out, m)
	}
	return out, nil
}

// sortByTimestampDesc orders newest first, with the id as a tiebreaker so
// consecutive pages partition the sequence deterministically.
func sortByTimestampDesc(ms []models.ThreadMeta) {
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].Timestamp != ms[j].Timestamp {
			return ms[i].Timestamp > ms[j].Timestamp
		}
		return ms[i].ID < ms[j].ID
	})
}
