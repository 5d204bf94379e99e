package gallery

import (
	"encoding/json"
	"testing"

	"gallerydb/pkg/models"
	"gallerydb/pkg/store"
)

func seedMeta(t *testing.T, m models.ThreadMeta) {
	t.Helper()
	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal meta: %v", err)
	}
	if err := store.SaveMeta(m.ID, raw); err != nil {
		t.Fatalf("SaveMeta %s: %v", m.ID, err)
	}
}

func TestListEmptyIndex(t *testing.T) {
	openTestStore(t)

	page, err := List(0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Threads == nil || len(page.Threads) != 0 {
		t.Fatalf("threads = %#v, want empty non-nil slice", page.Threads)
	}
	if page.Total != 0 || page.HasMore {
		t.Fatalf("page = %+v", page)
	}
}

func TestListSortsNewestFirst(t *testing.T) {
	openTestStore(t)

	seedMeta(t, models.ThreadMeta{ID: "old", Timestamp: 100})
	seedMeta(t, models.ThreadMeta{ID: "new", Timestamp: 300})
	seedMeta(t, models.ThreadMeta{ID: "mid", Timestamp: 200})

	page, err := List(0, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	got := []string{page.Threads[0].ID, page.Threads[1].ID, page.Threads[2].ID}
	want := []string{"new", "mid", "old"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestListPagesPartitionWithoutGapsOrDuplicates(t *testing.T) {
	openTestStore(t)

	for i := 0; i < 7; i++ {
		seedMeta(t, models.ThreadMeta{
			ID:        string(rune('a' + i)),
			Timestamp: int64(1000 + i),
		})
	}

	seen := map[string]bool{}
	var order []string
	for offset := 0; ; offset += 3 {
		page, err := List(offset, 3)
		if err != nil {
			t.Fatalf("List offset=%d: %v", offset, err)
		}
		if page.Total != 7 {
			t.Fatalf("total = %d, want 7", page.Total)
		}
		for _, m := range page.Threads {
			if seen[m.ID] {
				t.Fatalf("duplicate id %q across pages", m.ID)
			}
			seen[m.ID] = true
			order = append(order, m.ID)
		}
		wantMore := offset+3 < 7
		if page.HasMore != wantMore {
			t.Fatalf("hasMore at offset %d = %v, want %v", offset, page.HasMore, wantMore)
		}
		if !page.HasMore {
			break
		}
	}
	if len(order) != 7 {
		t.Fatalf("collected %d ids across pages, want 7", len(order))
	}
}

func TestListForkOrdering(t *testing.T) {
	openTestStore(t)

	a := &models.Thread{ID: "thread-a", CreatedAt: 1000,
		Conversation: []models.Turn{{Text: "origin"}}}
	if _, err := Upload(a); err != nil {
		t.Fatalf("Upload a: %v", err)
	}
	b := &models.Thread{ID: "thread-b", CreatedAt: 2000,
		ForkInfo:     &models.ForkInfo{ParentID: "thread-a"},
		Conversation: []models.Turn{{Text: "fork"}}}
	if _, err := Upload(b); err != nil {
		t.Fatalf("Upload b: %v", err)
	}

	page, err := List(0, 1)
	if err != nil {
		t.Fatalf("List page 1: %v", err)
	}
	if len(page.Threads) != 1 || page.Threads[0].ID != "thread-b" {
		t.Fatalf("page 1 = %+v, want the more recent fork", page.Threads)
	}
	if page.Threads[0].ForkInfo == nil || page.Threads[0].ForkInfo.ParentID != "thread-a" {
		t.Fatalf("fork lineage missing from metadata: %+v", page.Threads[0].ForkInfo)
	}
	if !page.HasMore {
		t.Fatalf("expected hasMore on page 1")
	}

	page, err = List(1, 1)
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if len(page.Threads) != 1 || page.Threads[0].ID != "thread-a" {
		t.Fatalf("page 2 = %+v, want the origin thread", page.Threads)
	}
	if page.HasMore {
		t.Fatalf("expected final page")
	}
}

func TestListClampsAndOffsetPastEnd(t *testing.T) {
	openTestStore(t)

	seedMeta(t, models.ThreadMeta{ID: "only", Timestamp: 1})

	page, err := List(-5, 1000)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Offset != 0 || page.Limit != MaxPageLimit {
		t.Fatalf("offset/limit = %d/%d, want 0/%d", page.Offset, page.Limit, MaxPageLimit)
	}

	page, err = List(50, 10)
	if err != nil {
		t.Fatalf("List past end: %v", err)
	}
	if len(page.Threads) != 0 || page.HasMore {
		t.Fatalf("past-end page = %+v, want empty without more", page)
	}
}
