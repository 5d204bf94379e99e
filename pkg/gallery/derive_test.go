package gallery

import (
	"strings"
	"testing"

	"gallerydb/pkg/models"
)

func TestDeriveTitleUsesLeadText(t *testing.T) {
	th := &models.Thread{Conversation: []models.Turn{
		{Author: "model", Image: "/image/a.png"},
		{Author: "human", Text: "  a castle in the clouds  "},
	}}
	if got := DeriveTitle(th); got != "a castle in the clouds" {
		t.Fatalf("DeriveTitle = %q", got)
	}
}

func TestDeriveTitleTruncates(t *testing.T) {
	long := strings.Repeat("x", 500)
	th := &models.Thread{Conversation: []models.Turn{{Text: long}}}
	got := DeriveTitle(th)
	if len([]rune(got)) != titleMax {
		t.Fatalf("title length = %d, want %d", len([]rune(got)), titleMax)
	}
}

func TestDeriveSearchTextLowercasesAndBounds(t *testing.T) {
	th := &models.Thread{Conversation: []models.Turn{
		{Text: "Hello WORLD"},
		{Text: strings.Repeat("Y", 1000)},
	}}
	got := DeriveSearchText(th)
	if !strings.Contains(got, "hello world") {
		t.Fatalf("searchText missing lowercased lead text: %q", got)
	}
	if strings.Contains(got, strings.Repeat("y", fragmentMax+1)) {
		t.Fatalf("individual fragment not truncated")
	}
	if len([]rune(got)) > searchTextMax {
		t.Fatalf("searchText length %d exceeds bound %d", len([]rune(got)), searchTextMax)
	}
}

func TestDeriveStylesDistinct(t *testing.T) {
	th := &models.Thread{
		Style: "noir",
		Conversation: []models.Turn{
			{Style: "noir"},
			{Style: "pastel"},
			{Style: ""},
			{Style: "noir"},
		},
	}
	got := DeriveStyles(th)
	if len(got) != 2 || got[0] != "noir" || got[1] != "pastel" {
		t.Fatalf("DeriveStyles = %v, want [noir pastel]", got)
	}
}

func TestBuildMetaSkipsInlineThumbnail(t *testing.T) {
	th := &models.Thread{
		ID:        "t1",
		CreatedAt: 42,
		Conversation: []models.Turn{
			{Image: "data:image/png;base64,AAAA"},
			{Image: "/image/abc.png"},
		},
	}
	m := BuildMeta(th)
	if m.Thumbnail != "/image/abc.png" {
		t.Fatalf("thumbnail = %q, want stored reference", m.Thumbnail)
	}
	if m.TurnCount != 2 || m.Timestamp != 42 || m.ID != "t1" {
		t.Fatalf("meta = %+v", m)
	}
}
