package gallery

import (
	"strings"

	"gallerydb/pkg/models"
)

const (
	// titleMax bounds the truncated lead text used as a gallery title.
	titleMax = 80
	// fragmentMax bounds each individual text fragment folded into
	// searchText.
	fragmentMax = 200
	// searchTextMax bounds the concatenated searchText as a whole.
	searchTextMax = 2000
)

// BuildMeta derives the denormalized gallery record from a full thread
// document. Everything here is reconstructible from the document; the
// migration job reuses the same derivations to backfill legacy records.
func BuildMeta(t *models.Thread) models.ThreadMeta {
	return models.ThreadMeta{
		ID:         t.ID,
		Title:      DeriveTitle(t),
		Timestamp:  t.CreatedAt,
		TurnCount:  len(t.Conversation),
		Style:      t.Style,
		Model:      t.Model,
		ForkInfo:   t.ForkInfo,
		Thumbnail:  deriveThumbnail(t),
		SearchText: DeriveSearchText(t),
		Styles:     DeriveStyles(t),
	}
}

// DeriveTitle returns the thread's truncated lead text: the first turn that
// carries any text.
func DeriveTitle(t *models.Thread) string {
	for _, turn := range t.Conversation {
		if s := strings.TrimSpace(turn.Text); s != "" {
			return truncate(s, titleMax)
		}
	}
	return ""
}

// DeriveSearchText concatenates the thread's lead text and every turn's
// text, lowercased, with each fragment individually truncated and the whole
// bounded at searchTextMax.
func DeriveSearchText(t *models.Thread) string {
	var b strings.Builder
	appendFragment := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(truncate(s, fragmentMax))
	}
	appendFragment(DeriveTitle(t))
	for _, turn := range t.Conversation {
		appendFragment(turn.Text)
	}
	return truncate(strings.ToLower(b.String()), searchTextMax)
}

// DeriveStyles returns the distinct set of styles used across the thread:
// the thread-level default plus every turn-level style, in first-seen order.
func DeriveStyles(t *models.Thread) []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	add(t.Style)
	for _, turn := range t.Conversation {
		add(turn.Style)
	}
	return out
}

// deriveThumbnail picks the first stored image reference as the gallery
// thumbnail. Inline content that failed processing is never referenced.
func deriveThumbnail(t *models.Thread) string {
	for _, turn := range t.Conversation {
		if turn.Image != "" && !strings.HasPrefix(turn.Image, "data:") {
			return turn.Image
		}
	}
	return ""
}

// truncate bounds s at n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
