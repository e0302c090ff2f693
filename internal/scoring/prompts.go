package scoring

import (
	"fmt"
	"strings"

	"blogaudit/internal/content"
)

// Facet names one of the four scoring calls made per article.
type Facet string

const (
	FacetQuality        Facet = "quality_brand_fit"
	FacetTone           Facet = "tone_voice"
	FacetSEO            Facet = "seo"
	FacetCategorization Facet = "categorization"
)

func qualityPrompt(cleanText, brandVoice string) string {
	return fmt.Sprintf(`Analyze this content for quality and brand alignment based on these guidelines:

%s

<Content to analyze>
%s
</Content to analyze>

Return ONLY a JSON object with these exact fields:
{
    "Overall Quality Score": <0-100 integer>,
    "Topic Relevance": <"On Topic", "Tangentially Related", "Off Topic", or "No Clear Match">,
    "Brand Alignment": <"On Brand", "Mostly on Brand", "Needs Work", or "Not on Brand">,
    "Quality Notes": <string with key observations and actionable recommendations>,
    "Brand Alignment Notes": <string with brand fit observations>
}`, brandVoice, cleanText)
}

func tonePrompt(cleanText string) string {
	return fmt.Sprintf(`Analyze this content's tone and voice:

<Content to analyze>
%s
</Content to analyze>

Return ONLY a JSON object with these exact fields:
{
    "Challenger Percentage": <0-100 integer>,
    "Supportive Percentage": <0-100 integer>,
    "Natural/Conversational Score": <0-100 integer>,
    "Authentic/Approachable Score": <0-100 integer>,
    "Gender-Neutral/Inclusive Score": <0-100 integer>,
    "Tone Notes/Recommendations": <string with observations and suggestions>
}`, cleanText)
}

func seoPrompt(cleanText string, rec *content.Record, targetKeyword string) string {
	seo := rec.SEO
	var meta strings.Builder
	fmt.Fprintf(&meta, "Current target keyword: %s\n", targetKeyword)
	fmt.Fprintf(&meta, "Meta description present: %t\n", seo.MetaDescription.Present)
	fmt.Fprintf(&meta, "H1 present: %t\n", seo.Headings.H1Present)
	fmt.Fprintf(&meta, "H2 count: %d\n", seo.Headings.H2Count)
	fmt.Fprintf(&meta, "H3 count: %d", seo.Headings.H3Count)

	return fmt.Sprintf(`Analyze this content's SEO effectiveness using the provided metadata:

%s

<Content to analyze>
%s
</Content to analyze>

Return ONLY a JSON object with these exact fields:
{
    "Keyword Density": <float percentage>,
    "Keyword Integration Score": <0-100 integer>,
    "Meta Description Quality Score": <0-100 integer>,
    "Recommended New Keywords": <array of 3-5 keyword strings>,
    "SEO Notes/Recommendations": <string with actionable improvements>
}`, meta.String(), cleanText)
}

func categorizationPrompt(cleanText string) string {
	return fmt.Sprintf(`You are an expert marketing analyst. Your task is to analyze the given content and determine the most appropriate categories based on the content's focus, themes, and target audience. Return ONLY a valid JSON object.

<Content to analyze>
%s
</Content to analyze>

First, identify the most relevant Use Case based on the content's main focus and detailed descriptions:

GET Stage Use Cases:
- "Identify and Target Audience Segments" - Content about capturing email addresses, first-party data collection, progressive profiling, and landing page optimization
- "Reach New Prospects" - Content about behavioral insights, firmographic data, and customer lifecycle segmentation
- "Personalize Outreach" - Content about automated programs, targeted emails based on behavior, dynamic segmentation, and CRM integration
- "Nurture Prospects" - Content about targeted email programs, thought leadership, and sales funnel progression
- "Deliver Best Leads to Sales" - Content about lead scoring, sales-marketing alignment, and lead quality optimization
- "Empower Sales Intelligence" - Content about ABM insights, behavioral data capture, and sales workflow automation
- "Scale Operations" - Content about CRM integrations, prospect targeting, and automated marketing workflows

KEEP Stage Use Cases:
- "Welcome and Onboard" - Content about automated tasks, behavioral engagement data, and omnichannel marketing programs
- "Drive Product Adoption" - Content about automated welcome series, customer onboarding, and direct mail integration
- "Regular Communication" - Content about transactional emails, brand consistency, email performance, and compliance
- "Automate Renewal" - Content about social media automation, customer re-engagement, and milestone-based communications

GROW Stage Use Cases:
- "Grow Advocates" - Content about automated feedback collection, community building, and customer education
- "Automate Communications" - Content about internal workflows, partner communications, and automated messaging
- "Cross-sell and Upsell" - Content about targeted offers, behavioral insights, loyalty programs, and customer value expansion
- "Marketing Performance" - Content about ROI optimization and marketing effectiveness

OPTIMIZE Stage Use Cases:
- "Data-Driven Marketing" - Content about automation tools, unified customer views, and personalized strategies
- "Scale Marketing Output" - Content about multi-channel campaign coordination, lead nurturing, and conversion tracking
- "Single Source of Truth" - Content about centralized databases, CRM synchronization, and lead scoring systems
- "Marketing/Sales Insights" - Content about integrated reporting and performance analytics

**IF NO USE CASE MATCHES, SELECT "NONE"**
- "No Clear Match" - Content that doesn't fit any specific Use Case

Then, the CMO Priority must match the Use Case's stage:
- GET: "New Customer Acquisition" or "Build Pipeline and Accelerate Sales"
- KEEP: "Deliver Value and Keep Customers"
- GROW: "Improve Brand Loyalty" or "Maximize ARPU"
- OPTIMIZE: "Maximizing MROI"
- NONE: "No Clear Match"

Additional required categorization:

Primary Category - Choose based on content type:
- "Product" - Content focusing on platform features/capabilities
- "Industry" - Content about industry trends/challenges
- "Use Case" - Content demonstrating specific applications
- "Thought Leadership" - Educational/strategic content
- "No Clear Match" - Content that doesn't fit any specific category

Solution Topic - Choose based on primary solution discussed:
- "Convert Unknown Visitors to Known Leads" - Website visitor identification
- "Identify and Target Audience Segments" - Audience segmentation
- "Reach New Prospects Through Omni-channel Campaigns" - Multi-channel outreach
- "Personalize Outreach and Communication" - Personalization
- "Scale Demand Generation Operations" - Operational scaling
- "No Clear Topic" - Content that doesn't fit any specific topic

Marketing Activity Type - Choose based on main marketing activity:
- "Email Marketing" - Email campaigns/automation
- "Social Media Marketing" - Social media activities
- "Content Marketing" - Content creation/distribution
- "Lead Generation" - Lead capture/qualification
- "Account-Based Marketing" - ABM strategies
- "Marketing Automation" - Automation processes
- "Analytics and Reporting" - Data analysis
- "Website Optimization" - Website improvements
- "Event Marketing" - Event management
- "Customer Marketing" - Customer-focused campaigns
- "No Clear Activity Type" - Content that doesn't fit any specific activity

Target Audience - Choose based on content's intended reader:
- "Marketing Leaders" - Strategic/executive content
- "Demand Generation Managers" - Demand gen focused
- "Marketing Operations Managers" - Operations focused
- "Digital Marketing Managers" - Digital marketing focused
- "Marketing Automation Specialists" - Technical/platform focused
- "Sales Leaders" - Sales-aligned content
- "Small Business Owners" - SMB focused
- "Enterprise Marketers" - Enterprise focused
- "No Clear Audience" - Content that doesn't fit any specific audience

Return ONLY a JSON object with these exact fields:
{
    "Primary Category": <selected value>,
    "Solution Topic": <selected value>,
    "Use Case": <selected value>,
    "Customer Journey Stage": <selected value based on Use Case>,
    "CMO Priority": <selected value matching Journey Stage>,
    "Marketing Activity Type": <selected value>,
    "Target Audience": <selected value>
}`, cleanText)
}
