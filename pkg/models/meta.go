package models

// ThreadMeta is the denormalized gallery summary of a Thread. It is a cache,
// never a source of truth: every field is reconstructible from the full
// document. Created at upload time; rewritten in place (never deleted) only
// by the migration job.
type ThreadMeta struct {
	ID         string    `json:"id"`
	Title      string    `json:"title,omitempty"`
	Timestamp  int64     `json:"timestamp"`
	TurnCount  int       `json:"turnCount"`
	Style      string    `json:"style,omitempty"`
	Model      string    `json:"model,omitempty"`
	ForkInfo   *ForkInfo `json:"forkInfo,omitempty"`
	Thumbnail  string    `json:"thumbnail,omitempty"`
	SearchText string    `json:"searchText,omitempty"`
	Styles     []string  `json:"styles,omitempty"`
}

// HasStyle reports whether the distinct style set of the thread contains s.
func (m ThreadMeta) HasStyle(s string) bool {
	for _, v := range m.Styles {
		if v == s {
			return true
		}
	}
	return false
}
