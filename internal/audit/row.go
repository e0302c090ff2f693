package audit

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"blogaudit/internal/content"
	"blogaudit/internal/refsheet"
	"blogaudit/internal/scoring"
	"blogaudit/internal/taxonomy"
	"blogaudit/internal/textmetrics"
)

// Row is the complete audit outcome for one article: scraped metadata,
// computed text metrics, all four scoring facets, the reference sheet
// joins, and the API spend. It is what the report renders.
type Row struct {
	Title           string  `json:"title"`
	URL             string  `json:"url"`
	Slug            string  `json:"slug"`
	PublicationDate string  `json:"publication_date"`
	ModifiedDate    string  `json:"modified_date"`
	WordCount       int     `json:"word_count"`
	ReadingLevel    float64 `json:"reading_level"`

	OverallQualityScore int                     `json:"overall_quality_score"`
	TopicRelevance      taxonomy.TopicRelevance `json:"topic_relevance"`
	BrandAlignment      taxonomy.BrandAlignment `json:"brand_alignment"`
	QualityNotes        string                  `json:"quality_notes"`
	BrandAlignmentNotes string                  `json:"brand_alignment_notes"`

	ChallengerPct  int      `json:"challenger_pct"`
	SupportivePct  int      `json:"supportive_pct"`
	NaturalScore   int      `json:"natural_score"`
	AuthenticScore int      `json:"authentic_score"`
	InclusiveScore int      `json:"inclusive_score"`
	ToneNotes      string   `json:"tone_notes"`
	PronounCount   int      `json:"pronoun_count"`
	PronounsFound  []string `json:"pronouns_found,omitempty"`

	TargetKeyword       string   `json:"target_keyword"`
	KeywordDensity      float64  `json:"keyword_density"`
	KeywordIntegration  int      `json:"keyword_integration"`
	MetaDescPresent     bool     `json:"meta_desc_present"`
	MetaDescQuality     int      `json:"meta_desc_quality"`
	H1Present           bool     `json:"h1_present"`
	H2Count             int      `json:"h2_count"`
	H3Count             int      `json:"h3_count"`
	RecommendedKeywords []string `json:"recommended_keywords,omitempty"`
	SEONotes            string   `json:"seo_notes"`

	ImageCount        int    `json:"image_count"`
	HeaderImageWidth  int    `json:"header_image_width"`
	HeaderImageHeight int    `json:"header_image_height"`
	HeaderImageSrc    string `json:"header_image_src"`
	HeaderImageAlt    string `json:"header_image_alt"`
	MinContentWidth   int    `json:"min_content_width"`
	OutdatedWidgets   int    `json:"outdated_widgets"`

	PrimaryCategory taxonomy.PrimaryCategory `json:"primary_category"`
	SolutionTopic   taxonomy.SolutionTopic   `json:"solution_topic"`
	UseCase         taxonomy.UseCase         `json:"use_case"`
	JourneyStage    taxonomy.JourneyStage    `json:"journey_stage"`
	CMOPriority     taxonomy.CMOPriority     `json:"cmo_priority"`
	ActivityType    taxonomy.ActivityType    `json:"activity_type"`
	Audience        taxonomy.Audience        `json:"audience"`

	HasPerformance  bool    `json:"has_performance"`
	Views           int     `json:"views"`
	Users           int     `json:"users"`
	Sessions        int     `json:"sessions"`
	EngagementRate  float64 `json:"engagement_rate"`
	AvgSessionSecs  float64 `json:"avg_session_secs"`
	BounceRate      float64 `json:"bounce_rate"`

	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
	APICost      string `json:"api_cost"`
}

// buildRow merges everything known about one article into a report row.
func buildRow(rec *content.Record, result *scoring.Result, keyword string, perf refsheet.Metrics, hasPerf bool, costs []scoring.CostRecord) Row {
	clean := content.Clean(rec.Content)
	pronouns := content.ScanPronouns(clean)

	row := Row{
		Title:           rec.BasicInfo.Title,
		URL:             rec.CanonicalURL(),
		Slug:            rec.Slug(),
		PublicationDate: formatDate(rec.BasicInfo.PublicationDate),
		ModifiedDate:    formatDate(rec.BasicInfo.ModifiedDate),
		WordCount:       content.WordCount(clean),
		ReadingLevel:    textmetrics.GunningFog(clean),

		OverallQualityScore: result.Quality.OverallScore,
		TopicRelevance:      result.Quality.TopicRelevance,
		BrandAlignment:      result.Quality.BrandAlignment,
		QualityNotes:        result.Quality.QualityNotes,
		BrandAlignmentNotes: result.Quality.BrandAlignmentNotes,

		ChallengerPct:  result.Tone.ChallengerPct,
		SupportivePct:  result.Tone.SupportivePct,
		NaturalScore:   result.Tone.NaturalScore,
		AuthenticScore: result.Tone.AuthenticScore,
		InclusiveScore: result.Tone.InclusiveScore,
		ToneNotes:      result.Tone.Notes,
		PronounCount:   pronouns.Count,
		PronounsFound:  pronouns.Found,

		TargetKeyword:       keyword,
		KeywordDensity:      result.SEO.KeywordDensity,
		KeywordIntegration:  result.SEO.KeywordIntegration,
		MetaDescPresent:     rec.SEO.MetaDescription.Present,
		MetaDescQuality:     result.SEO.MetaQuality,
		H1Present:           rec.SEO.Headings.H1Present,
		H2Count:             rec.SEO.Headings.H2Count,
		H3Count:             rec.SEO.Headings.H3Count,
		RecommendedKeywords: result.SEO.RecommendedKeywords,
		SEONotes:            result.SEO.Notes,

		ImageCount:      rec.Multimedia.TotalImageCount,
		MinContentWidth: rec.MinContentImageWidth(),
		OutdatedWidgets: rec.Multimedia.OutdatedWidgets,

		PrimaryCategory: result.Categorization.PrimaryCategory,
		SolutionTopic:   result.Categorization.SolutionTopic,
		UseCase:         result.Categorization.UseCase,
		JourneyStage:    result.Categorization.JourneyStage,
		CMOPriority:     result.Categorization.CMOPriority,
		ActivityType:    result.Categorization.ActivityType,
		Audience:        result.Categorization.Audience,
	}

	if hdr := rec.Multimedia.HeaderImage; hdr != nil {
		row.HeaderImageWidth = int(hdr.Width)
		row.HeaderImageHeight = int(hdr.Height)
		row.HeaderImageSrc = hdr.Src
		row.HeaderImageAlt = hdr.Alt
	}

	if hasPerf {
		row.HasPerformance = true
		row.Views = perf.Views
		row.Users = perf.Users
		row.Sessions = perf.Sessions
		row.EngagementRate = perf.EngagementRate
		row.AvgSessionSecs = perf.AvgSessionDuration
		row.BounceRate = perf.BounceRate
	}

	total := decimal.Zero
	for _, c := range costs {
		row.InputTokens += c.InputTokens
		row.OutputTokens += c.OutputTokens
		total = total.Add(c.Cost)
	}
	row.APICost = total.String()

	return row
}

// Cost returns the row's API spend as a decimal.
func (r Row) Cost() decimal.Decimal {
	d, err := decimal.NewFromString(r.APICost)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Marshal encodes the row for storage.
func (r Row) Marshal() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encoding audit row: %w", err)
	}
	return string(data), nil
}

// UnmarshalRow decodes a stored row.
func UnmarshalRow(data string) (Row, error) {
	var r Row
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return Row{}, fmt.Errorf("decoding audit row: %w", err)
	}
	return r, nil
}

// formatDate normalizes scraper timestamps like 2024-03-18T09:30:00+00:00
// to a plain date. Unparseable dates come through as "No Date".
func formatDate(raw string) string {
	if raw == "" {
		return "No Date"
	}
	datePart := raw
	if idx := strings.IndexByte(raw, 'T'); idx != -1 {
		datePart = raw[:idx]
	}
	if _, err := time.Parse("2006-01-02", datePart); err != nil {
		return "No Date"
	}
	return datePart
}
