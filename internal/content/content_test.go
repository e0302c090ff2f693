package content

import (
	"os"
	"path/filepath"
	"testing"
)

func writeStore(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "all.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing store fixture: %v", err)
	}
	return path
}

const twoRecordStore = `{
  "analyses": {
    "blog": [
      {
        "url": "https://example.com/blog/first-post/",
        "basic_info": {
          "title": "First Post",
          "publication_date": "2024-01-15T08:00:00+00:00",
          "modified_date": "2024-02-01T10:30:00+00:00",
          "url": "https://example.com/blog/first-post/"
        },
        "seo_analysis": {
          "meta_description": {"present": true, "content": "A post."},
          "headings": {"h1_present": true, "h2_count": 4, "h3_count": 2}
        },
        "multimedia_assessment": {
          "header_image": {"src": "/img/hero.png", "alt": "hero", "width": "1600", "height": 900},
          "content_images": [
            {"src": "/img/a.png", "width": 640, "height": 480},
            {"src": "/img/b.png", "width": "320", "height": "240"}
          ],
          "total_image_count": 3,
          "outdated_widget_count": 1
        },
        "content": "Hello world."
      },
      {
        "url": "https://example.com/blog/second-post/",
        "basic_info": {"title": "Second Post", "url": ""},
        "multimedia_assessment": {"header_image": null},
        "content": "More words here."
      }
    ]
  }
}`

func TestLoadStore(t *testing.T) {
	store, err := Load(writeStore(t, twoRecordStore))
	if err != nil {
		t.Fatalf("loading store: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", store.Len())
	}

	first := store.Slice(0, 1)[0]
	if first.BasicInfo.Title != "First Post" {
		t.Errorf("unexpected title %q", first.BasicInfo.Title)
	}
	if first.Slug() != "first-post" {
		t.Errorf("expected slug 'first-post', got %q", first.Slug())
	}
	if int(first.Multimedia.HeaderImage.Width) != 1600 {
		t.Errorf("expected string width 1600 parsed, got %d", first.Multimedia.HeaderImage.Width)
	}
	if first.MinContentImageWidth() != 320 {
		t.Errorf("expected min content width 320, got %d", first.MinContentImageWidth())
	}

	second := store.Slice(1, 1)[0]
	if second.CanonicalURL() != "https://example.com/blog/second-post/" {
		t.Errorf("expected record-level URL fallback, got %q", second.CanonicalURL())
	}
	if second.Multimedia.HeaderImage != nil {
		t.Error("expected nil header image")
	}
}

func TestLoadRejectsDuplicateURLs(t *testing.T) {
	dup := `{"analyses": {"blog": [
		{"url": "https://example.com/a/", "content": "x"},
		{"url": "https://example.com/a/", "content": "y"}
	]}}`
	if _, err := Load(writeStore(t, dup)); err == nil {
		t.Error("expected error for duplicate URL")
	}
}

func TestLoadRejectsMissingURL(t *testing.T) {
	missing := `{"analyses": {"blog": [{"content": "x"}]}}`
	if _, err := Load(writeStore(t, missing)); err == nil {
		t.Error("expected error for record without URL")
	}
}

func TestSliceClamping(t *testing.T) {
	store, err := Load(writeStore(t, twoRecordStore))
	if err != nil {
		t.Fatalf("loading store: %v", err)
	}

	if got := len(store.Slice(0, 50)); got != 2 {
		t.Errorf("expected clamp to 2, got %d", got)
	}
	if got := len(store.Slice(1, 50)); got != 1 {
		t.Errorf("expected clamp to 1, got %d", got)
	}
	// start == Len() is a valid empty slice, not an error
	if got := len(store.Slice(2, 50)); got != 0 {
		t.Errorf("expected empty slice at end boundary, got %d", got)
	}
	if got := len(store.Slice(-1, 50)); got != 0 {
		t.Errorf("expected empty slice for negative start, got %d", got)
	}
	if got := len(store.Slice(0, 0)); got != 0 {
		t.Errorf("expected empty slice for zero size, got %d", got)
	}
}

func TestSlugFromURL(t *testing.T) {
	cases := map[string]string{
		"https://example.com/blog/my-post/": "my-post",
		"https://example.com/blog/my-post":  "my-post",
		"https://example.com/":              "",
		"https://example.com/a/b/c/?utm=x":  "c",
		"":                                  "",
	}
	for in, want := range cases {
		if got := SlugFromURL(in); got != want {
			t.Errorf("SlugFromURL(%q) = %q, want %q", in, got, want)
		}
	}
}
