package images

import (
	"encoding/base64"
	"strings"
	"testing"
)

func dataURI(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func TestParseDataURI(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	mt, data, err := ParseDataURI(dataURI("image/png", payload))
	if err != nil {
		t.Fatalf("ParseDataURI: %v", err)
	}
	if mt != "image/png" {
		t.Fatalf("media type = %q, want image/png", mt)
	}
	if string(data) != string(payload) {
		t.Fatalf("payload mismatch")
	}
}

func TestParseDataURIRejectsMalformed(t *testing.T) {
	cases := []string{
		"https://example.com/cat.png",
		"data:image/png;base64",
		"data:;base64,AAAA",
		"data:image/png,plain",
		"data:image/png;base64,!!!not-base64!!!",
	}
	for _, c := range cases {
		if _, _, err := ParseDataURI(c); err == nil {
			t.Fatalf("expected error for %q", c)
		}
	}
}

func TestBlobKeyDeterministic(t *testing.T) {
	data := []byte("same bytes")
	k1 := BlobKey(data, "image/png")
	k2 := BlobKey(append([]byte(nil), data...), "image/png")
	if k1 != k2 {
		t.Fatalf("identical content produced different keys: %q vs %q", k1, k2)
	}
	if !strings.HasSuffix(k1, ".png") {
		t.Fatalf("key %q missing png extension", k1)
	}
	if k3 := BlobKey([]byte("other bytes"), "image/png"); k3 == k1 {
		t.Fatalf("different content produced the same key")
	}
}

func TestExtAndContentTypeMapping(t *testing.T) {
	if got := ExtForMediaType("image/jpeg"); got != "jpg" {
		t.Fatalf("ExtForMediaType(image/jpeg) = %q", got)
	}
	if got := ExtForMediaType("application/x-unknown"); got != "bin" {
		t.Fatalf("ExtForMediaType(unknown) = %q", got)
	}
	if got := ContentTypeForKey("abc.webp"); got != "image/webp" {
		t.Fatalf("ContentTypeForKey(abc.webp) = %q", got)
	}
	if got := ContentTypeForKey("abc.bin"); got != "application/octet-stream" {
		t.Fatalf("ContentTypeForKey(abc.bin) = %q", got)
	}
	if got := ContentTypeForKey("nodot"); got != "application/octet-stream" {
		t.Fatalf("ContentTypeForKey(nodot) = %q", got)
	}
}

func TestURLForKey(t *testing.T) {
	if got := URLForKey("abc.png"); got != "/image/abc.png" {
		t.Fatalf("URLForKey = %q", got)
	}
}
