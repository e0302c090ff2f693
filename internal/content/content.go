// Package content reads the content store: the ordered JSON corpus of
// scraped blog articles produced by the external scraper. Records are
// immutable; this package never writes the store.
package content

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Record is one scraped article. The JSON layout is fixed by the scraper.
type Record struct {
	URL        string     `json:"url"`
	Timestamp  string     `json:"analysis_timestamp"`
	BasicInfo  BasicInfo  `json:"basic_info"`
	SEO        SEO        `json:"seo_analysis"`
	Multimedia Multimedia `json:"multimedia_assessment"`
	Content    string     `json:"content"`
}

type BasicInfo struct {
	Title           string `json:"title"`
	PublicationDate string `json:"publication_date"`
	ModifiedDate    string `json:"modified_date"`
	URL             string `json:"url"`
	Description     string `json:"description"`
	Category        string `json:"category"`
}

type SEO struct {
	MetaDescription MetaDescription `json:"meta_description"`
	Headings        Headings        `json:"headings"`
}

type MetaDescription struct {
	Present bool   `json:"present"`
	Content string `json:"content"`
}

type Headings struct {
	H1Present bool `json:"h1_present"`
	H2Count   int  `json:"h2_count"`
	H3Count   int  `json:"h3_count"`
}

type Multimedia struct {
	HeaderImage     *Image  `json:"header_image"`
	ContentImages   []Image `json:"content_images"`
	TotalImageCount int     `json:"total_image_count"`
	OutdatedWidgets int     `json:"outdated_widget_count"`
}

type Image struct {
	Src    string    `json:"src"`
	Alt    string    `json:"alt"`
	Width  Dimension `json:"width"`
	Height Dimension `json:"height"`
}

// Dimension tolerates the scraper emitting image sizes as numbers, numeric
// strings, or null; anything unparseable decodes as zero.
type Dimension int

func (d *Dimension) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*d = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*d = 0
		return nil
	}
	*d = Dimension(int(f))
	return nil
}

// CanonicalURL prefers the JSON-LD URL from basic_info, falling back to the
// record-level URL.
func (r *Record) CanonicalURL() string {
	if u := strings.TrimSpace(r.BasicInfo.URL); u != "" {
		return u
	}
	return strings.TrimSpace(r.URL)
}

// Slug is the last URL path segment, used to join performance metrics.
func (r *Record) Slug() string {
	return SlugFromURL(r.CanonicalURL())
}

// MinContentImageWidth returns the narrowest in-body image, 0 when none.
func (r *Record) MinContentImageWidth() int {
	min := 0
	for i, img := range r.Multimedia.ContentImages {
		w := int(img.Width)
		if i == 0 || w < min {
			min = w
		}
	}
	return min
}

// SlugFromURL extracts the final path segment of a URL.
func SlugFromURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}

// Store is the loaded, ordered content corpus.
type Store struct {
	records []Record
	path    string
}

// storeFile mirrors the scraper's top-level JSON envelope.
type storeFile struct {
	Analyses struct {
		Blog []Record `json:"blog"`
	} `json:"analyses"`
}

// Load reads the content store from disk. URLs must be unique across the
// corpus; a duplicate means the scrape output is corrupt.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content store: %w", err)
	}

	var file storeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing content store %s: %w", path, err)
	}

	seen := make(map[string]struct{}, len(file.Analyses.Blog))
	for i := range file.Analyses.Blog {
		u := file.Analyses.Blog[i].CanonicalURL()
		if u == "" {
			return nil, fmt.Errorf("content store %s: record %d has no URL", path, i)
		}
		if _, dup := seen[u]; dup {
			return nil, fmt.Errorf("content store %s: duplicate URL %s", path, u)
		}
		seen[u] = struct{}{}
	}

	return &Store{records: file.Analyses.Blog, path: path}, nil
}

// Len returns the number of records in store order.
func (s *Store) Len() int {
	return len(s.records)
}

// Slice returns records [start, start+size), clamped at the end of the
// store. start == Len() yields an empty slice.
func (s *Store) Slice(start, size int) []Record {
	if start < 0 || start > len(s.records) || size <= 0 {
		return nil
	}
	end := start + size
	if end > len(s.records) {
		end = len(s.records)
	}
	return s.records[start:end]
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}
