package report

// Tier is a traffic-light classification used for cell fills.
type Tier string

const (
	TierGreen  Tier = "green"
	TierYellow Tier = "yellow"
	TierRed    Tier = "red"
)

// WordCountTier classifies article length against the 1000-1200 word
// editorial target.
func WordCountTier(count int) Tier {
	switch {
	case count >= 1000 && count <= 1200:
		return TierGreen
	case count >= 800 && count <= 999:
		return TierYellow
	case count >= 1201 && count <= 1400:
		return TierYellow
	default:
		return TierRed
	}
}

// ReadingLevelTier classifies a Gunning Fog grade against the 9-12 target
// band for marketing content.
func ReadingLevelTier(grade float64) Tier {
	switch {
	case grade >= 9 && grade <= 12:
		return TierGreen
	case grade >= 7 && grade < 9:
		return TierYellow
	case grade > 12 && grade < 16:
		return TierYellow
	default:
		return TierRed
	}
}

// HeaderImageTier classifies header image width. 1200px covers retina
// displays at full content width, 800px is passable.
func HeaderImageTier(width int) Tier {
	switch {
	case width >= 1200:
		return TierGreen
	case width >= 800:
		return TierYellow
	default:
		return TierRed
	}
}

// Band is the editorial verdict attached to a 0-100 quality score.
type Band string

const (
	BandExceptional      Band = "Exceptional"
	BandStrong           Band = "Strong"
	BandGood             Band = "Good"
	BandNeedsImprovement Band = "Needs Improvement"
	BandMajorRevision    Band = "Major Revision"
	BandCompleteRewrite  Band = "Complete Rewrite"
)

// ScoreBand maps a 0-100 score to its editorial verdict.
func ScoreBand(score int) Band {
	switch {
	case score >= 90:
		return BandExceptional
	case score >= 80:
		return BandStrong
	case score >= 70:
		return BandGood
	case score >= 60:
		return BandNeedsImprovement
	case score >= 40:
		return BandMajorRevision
	default:
		return BandCompleteRewrite
	}
}

// AllBands lists the verdicts from best to worst.
func AllBands() []Band {
	return []Band{
		BandExceptional, BandStrong, BandGood,
		BandNeedsImprovement, BandMajorRevision, BandCompleteRewrite,
	}
}
