package scoring

import (
	"fmt"

	"blogaudit/internal/taxonomy"
)

// QualityResult holds the quality and brand fit scores for one article.
type QualityResult struct {
	OverallScore        int
	TopicRelevance      taxonomy.TopicRelevance
	BrandAlignment      taxonomy.BrandAlignment
	QualityNotes        string
	BrandAlignmentNotes string
}

// ToneResult holds the tone and voice scores.
type ToneResult struct {
	ChallengerPct  int
	SupportivePct  int
	NaturalScore   int
	AuthenticScore int
	InclusiveScore int
	Notes          string
}

// SEOResult holds the SEO effectiveness scores.
type SEOResult struct {
	KeywordDensity      float64
	KeywordIntegration  int
	MetaQuality         int
	RecommendedKeywords []string
	Notes               string
}

// CategorizationResult holds the controlled-vocabulary classification.
type CategorizationResult struct {
	PrimaryCategory taxonomy.PrimaryCategory
	SolutionTopic   taxonomy.SolutionTopic
	UseCase         taxonomy.UseCase
	JourneyStage    taxonomy.JourneyStage
	CMOPriority     taxonomy.CMOPriority
	ActivityType    taxonomy.ActivityType
	Audience        taxonomy.Audience
}

// Result is the complete scoring outcome for one article, all four facets.
type Result struct {
	Quality        QualityResult
	Tone           ToneResult
	SEO            SEOResult
	Categorization CategorizationResult
}

// clampScore forces a numeric score into the 0-100 range.
func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// requireScore validates that a score field is present and within range.
// Responses missing a score or reporting one outside 0-100 are treated as
// schema violations rather than silently fixed up.
func requireScore(field string, v *int) (int, error) {
	if v == nil {
		return 0, fmt.Errorf("missing field %q", field)
	}
	if *v < 0 || *v > 100 {
		return 0, fmt.Errorf("field %q out of range: %d", field, *v)
	}
	return clampScore(*v), nil
}

type qualityResponse struct {
	OverallScore        *int   `json:"Overall Quality Score"`
	TopicRelevance      string `json:"Topic Relevance"`
	BrandAlignment      string `json:"Brand Alignment"`
	QualityNotes        string `json:"Quality Notes"`
	BrandAlignmentNotes string `json:"Brand Alignment Notes"`
}

func parseQuality(text string) (QualityResult, error) {
	var resp qualityResponse
	if err := decodeResponse(text, &resp); err != nil {
		return QualityResult{}, err
	}
	score, err := requireScore("Overall Quality Score", resp.OverallScore)
	if err != nil {
		return QualityResult{}, err
	}
	return QualityResult{
		OverallScore:        score,
		TopicRelevance:      taxonomy.ParseTopicRelevance(resp.TopicRelevance),
		BrandAlignment:      taxonomy.ParseBrandAlignment(resp.BrandAlignment),
		QualityNotes:        resp.QualityNotes,
		BrandAlignmentNotes: resp.BrandAlignmentNotes,
	}, nil
}

type toneResponse struct {
	ChallengerPct  *int   `json:"Challenger Percentage"`
	SupportivePct  *int   `json:"Supportive Percentage"`
	NaturalScore   *int   `json:"Natural/Conversational Score"`
	AuthenticScore *int   `json:"Authentic/Approachable Score"`
	InclusiveScore *int   `json:"Gender-Neutral/Inclusive Score"`
	Notes          string `json:"Tone Notes/Recommendations"`
}

func parseTone(text string) (ToneResult, error) {
	var resp toneResponse
	if err := decodeResponse(text, &resp); err != nil {
		return ToneResult{}, err
	}
	var out ToneResult
	var err error
	if out.ChallengerPct, err = requireScore("Challenger Percentage", resp.ChallengerPct); err != nil {
		return ToneResult{}, err
	}
	if out.SupportivePct, err = requireScore("Supportive Percentage", resp.SupportivePct); err != nil {
		return ToneResult{}, err
	}
	if out.NaturalScore, err = requireScore("Natural/Conversational Score", resp.NaturalScore); err != nil {
		return ToneResult{}, err
	}
	if out.AuthenticScore, err = requireScore("Authentic/Approachable Score", resp.AuthenticScore); err != nil {
		return ToneResult{}, err
	}
	if out.InclusiveScore, err = requireScore("Gender-Neutral/Inclusive Score", resp.InclusiveScore); err != nil {
		return ToneResult{}, err
	}
	out.Notes = resp.Notes
	return out, nil
}

type seoResponse struct {
	KeywordDensity      *float64 `json:"Keyword Density"`
	KeywordIntegration  *int     `json:"Keyword Integration Score"`
	MetaQuality         *int     `json:"Meta Description Quality Score"`
	RecommendedKeywords []string `json:"Recommended New Keywords"`
	Notes               string   `json:"SEO Notes/Recommendations"`
}

func parseSEO(text string) (SEOResult, error) {
	var resp seoResponse
	if err := decodeResponse(text, &resp); err != nil {
		return SEOResult{}, err
	}
	if resp.KeywordDensity == nil {
		return SEOResult{}, fmt.Errorf("missing field %q", "Keyword Density")
	}
	var out SEOResult
	var err error
	if out.KeywordIntegration, err = requireScore("Keyword Integration Score", resp.KeywordIntegration); err != nil {
		return SEOResult{}, err
	}
	if out.MetaQuality, err = requireScore("Meta Description Quality Score", resp.MetaQuality); err != nil {
		return SEOResult{}, err
	}
	out.KeywordDensity = *resp.KeywordDensity
	out.RecommendedKeywords = resp.RecommendedKeywords
	out.Notes = resp.Notes
	return out, nil
}

type categorizationResponse struct {
	PrimaryCategory string `json:"Primary Category"`
	SolutionTopic   string `json:"Solution Topic"`
	UseCase         string `json:"Use Case"`
	JourneyStage    string `json:"Customer Journey Stage"`
	CMOPriority     string `json:"CMO Priority"`
	ActivityType    string `json:"Marketing Activity Type"`
	Audience        string `json:"Target Audience"`
}

// parseCategorization maps the response onto the controlled vocabularies.
// Unknown values fall back to the unclassified marker of each vocabulary.
// The journey stage is always re-derived from the use case, and a CMO
// priority that does not belong to that stage is replaced with the
// unclassified marker.
func parseCategorization(text string) (CategorizationResult, error) {
	var resp categorizationResponse
	if err := decodeResponse(text, &resp); err != nil {
		return CategorizationResult{}, err
	}

	useCase := taxonomy.ParseUseCase(resp.UseCase)
	priority := taxonomy.ParseCMOPriority(resp.CMOPriority)
	stage := useCase.Stage()
	if !priority.ValidFor(stage) {
		priority = taxonomy.PriorityUnclassified
	}

	return CategorizationResult{
		PrimaryCategory: taxonomy.ParsePrimaryCategory(resp.PrimaryCategory),
		SolutionTopic:   taxonomy.ParseSolutionTopic(resp.SolutionTopic),
		UseCase:         useCase,
		JourneyStage:    stage,
		CMOPriority:     priority,
		ActivityType:    taxonomy.ParseActivityType(resp.ActivityType),
		Audience:        taxonomy.ParseAudience(resp.Audience),
	}, nil
}
