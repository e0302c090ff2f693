// Package taxonomy defines the closed controlled vocabularies used to
// categorize audited articles. Every vocabulary carries an explicit
// unclassified member so downstream report logic never branches on
// unexpected free text.
package taxonomy

import "strings"

// PrimaryCategory classifies content by type.
type PrimaryCategory string

const (
	CategoryProduct           PrimaryCategory = "Product"
	CategoryIndustry          PrimaryCategory = "Industry"
	CategoryUseCase           PrimaryCategory = "Use Case"
	CategoryThoughtLeadership PrimaryCategory = "Thought Leadership"
	CategoryUnclassified      PrimaryCategory = "No Clear Match"
)

// AllPrimaryCategories returns the valid categories in canonical order.
func AllPrimaryCategories() []PrimaryCategory {
	return []PrimaryCategory{
		CategoryProduct, CategoryIndustry, CategoryUseCase,
		CategoryThoughtLeadership, CategoryUnclassified,
	}
}

// SolutionTopic classifies content by the primary solution discussed.
type SolutionTopic string

const (
	TopicConvertVisitors    SolutionTopic = "Convert Unknown Visitors to Known Leads"
	TopicTargetSegments     SolutionTopic = "Identify and Target Audience Segments"
	TopicOmnichannel        SolutionTopic = "Reach New Prospects Through Omni-channel Campaigns"
	TopicPersonalize        SolutionTopic = "Personalize Outreach and Communication"
	TopicScaleDemandGen     SolutionTopic = "Scale Demand Generation Operations"
	TopicUnclassified       SolutionTopic = "No Clear Topic"
)

func AllSolutionTopics() []SolutionTopic {
	return []SolutionTopic{
		TopicConvertVisitors, TopicTargetSegments, TopicOmnichannel,
		TopicPersonalize, TopicScaleDemandGen, TopicUnclassified,
	}
}

// JourneyStage is the customer lifecycle stage a use case belongs to.
type JourneyStage string

const (
	StageGet          JourneyStage = "GET"
	StageKeep         JourneyStage = "KEEP"
	StageGrow         JourneyStage = "GROW"
	StageOptimize     JourneyStage = "OPTIMIZE"
	StageUnclassified JourneyStage = "No Clear Match"
)

func AllJourneyStages() []JourneyStage {
	return []JourneyStage{StageGet, StageKeep, StageGrow, StageOptimize, StageUnclassified}
}

// UseCase is the specific marketing use case the content serves.
type UseCase string

const (
	UseCaseTargetSegments     UseCase = "Identify and Target Audience Segments"
	UseCaseReachProspects     UseCase = "Reach New Prospects"
	UseCasePersonalize        UseCase = "Personalize Outreach"
	UseCaseNurture            UseCase = "Nurture Prospects"
	UseCaseDeliverLeads       UseCase = "Deliver Best Leads to Sales"
	UseCaseSalesIntelligence  UseCase = "Empower Sales Intelligence"
	UseCaseScaleOperations    UseCase = "Scale Operations"
	UseCaseWelcomeOnboard     UseCase = "Welcome and Onboard"
	UseCaseProductAdoption    UseCase = "Drive Product Adoption"
	UseCaseRegularComms       UseCase = "Regular Communication"
	UseCaseAutomateRenewal    UseCase = "Automate Renewal"
	UseCaseGrowAdvocates      UseCase = "Grow Advocates"
	UseCaseAutomateComms      UseCase = "Automate Communications"
	UseCaseCrossSell          UseCase = "Cross-sell and Upsell"
	UseCaseMarketingPerf      UseCase = "Marketing Performance"
	UseCaseDataDriven         UseCase = "Data-Driven Marketing"
	UseCaseScaleOutput        UseCase = "Scale Marketing Output"
	UseCaseSingleSource       UseCase = "Single Source of Truth"
	UseCaseInsights           UseCase = "Marketing/Sales Insights"
	UseCaseUnclassified       UseCase = "No Clear Match"
)

func AllUseCases() []UseCase {
	return []UseCase{
		UseCaseTargetSegments, UseCaseReachProspects, UseCasePersonalize,
		UseCaseNurture, UseCaseDeliverLeads, UseCaseSalesIntelligence,
		UseCaseScaleOperations, UseCaseWelcomeOnboard, UseCaseProductAdoption,
		UseCaseRegularComms, UseCaseAutomateRenewal, UseCaseGrowAdvocates,
		UseCaseAutomateComms, UseCaseCrossSell, UseCaseMarketingPerf,
		UseCaseDataDriven, UseCaseScaleOutput, UseCaseSingleSource,
		UseCaseInsights, UseCaseUnclassified,
	}
}

// useCaseStages maps each use case to its lifecycle stage.
var useCaseStages = map[UseCase]JourneyStage{
	UseCaseTargetSegments:    StageGet,
	UseCaseReachProspects:    StageGet,
	UseCasePersonalize:       StageGet,
	UseCaseNurture:           StageGet,
	UseCaseDeliverLeads:      StageGet,
	UseCaseSalesIntelligence: StageGet,
	UseCaseScaleOperations:   StageGet,
	UseCaseWelcomeOnboard:    StageKeep,
	UseCaseProductAdoption:   StageKeep,
	UseCaseRegularComms:      StageKeep,
	UseCaseAutomateRenewal:   StageKeep,
	UseCaseGrowAdvocates:     StageGrow,
	UseCaseAutomateComms:     StageGrow,
	UseCaseCrossSell:         StageGrow,
	UseCaseMarketingPerf:     StageGrow,
	UseCaseDataDriven:        StageOptimize,
	UseCaseScaleOutput:       StageOptimize,
	UseCaseSingleSource:      StageOptimize,
	UseCaseInsights:          StageOptimize,
}

// Stage returns the journey stage a use case belongs to.
func (u UseCase) Stage() JourneyStage {
	if s, ok := useCaseStages[u]; ok {
		return s
	}
	return StageUnclassified
}

// CMOPriority is the executive priority tag tied to a journey stage.
type CMOPriority string

const (
	PriorityAcquisition   CMOPriority = "New Customer Acquisition"
	PriorityPipeline      CMOPriority = "Build Pipeline and Accelerate Sales"
	PriorityDeliverValue  CMOPriority = "Deliver Value and Keep Customers"
	PriorityBrandLoyalty  CMOPriority = "Improve Brand Loyalty"
	PriorityMaximizeARPU  CMOPriority = "Maximize ARPU"
	PriorityMaximizeMROI  CMOPriority = "Maximizing MROI"
	PriorityUnclassified  CMOPriority = "No Clear Match"
)

func AllCMOPriorities() []CMOPriority {
	return []CMOPriority{
		PriorityAcquisition, PriorityPipeline, PriorityDeliverValue,
		PriorityBrandLoyalty, PriorityMaximizeARPU, PriorityMaximizeMROI,
		PriorityUnclassified,
	}
}

// stagePriorities lists the priorities that are valid for each stage.
var stagePriorities = map[JourneyStage][]CMOPriority{
	StageGet:      {PriorityAcquisition, PriorityPipeline},
	StageKeep:     {PriorityDeliverValue},
	StageGrow:     {PriorityBrandLoyalty, PriorityMaximizeARPU},
	StageOptimize: {PriorityMaximizeMROI},
}

// ValidFor reports whether the priority is consistent with the stage.
func (p CMOPriority) ValidFor(stage JourneyStage) bool {
	for _, candidate := range stagePriorities[stage] {
		if candidate == p {
			return true
		}
	}
	return false
}

// ActivityType is the main marketing activity the content supports.
type ActivityType string

const (
	ActivityEmail         ActivityType = "Email Marketing"
	ActivitySocial        ActivityType = "Social Media Marketing"
	ActivityContent       ActivityType = "Content Marketing"
	ActivityLeadGen       ActivityType = "Lead Generation"
	ActivityABM           ActivityType = "Account-Based Marketing"
	ActivityAutomation    ActivityType = "Marketing Automation"
	ActivityAnalytics     ActivityType = "Analytics and Reporting"
	ActivityWebsite       ActivityType = "Website Optimization"
	ActivityEvents        ActivityType = "Event Marketing"
	ActivityCustomer      ActivityType = "Customer Marketing"
	ActivityUnclassified  ActivityType = "No Clear Activity Type"
)

func AllActivityTypes() []ActivityType {
	return []ActivityType{
		ActivityEmail, ActivitySocial, ActivityContent, ActivityLeadGen,
		ActivityABM, ActivityAutomation, ActivityAnalytics, ActivityWebsite,
		ActivityEvents, ActivityCustomer, ActivityUnclassified,
	}
}

// Audience is the content's intended reader.
type Audience string

const (
	AudienceMarketingLeaders  Audience = "Marketing Leaders"
	AudienceDemandGen         Audience = "Demand Generation Managers"
	AudienceMarketingOps      Audience = "Marketing Operations Managers"
	AudienceDigitalMarketing  Audience = "Digital Marketing Managers"
	AudienceAutomation        Audience = "Marketing Automation Specialists"
	AudienceSalesLeaders      Audience = "Sales Leaders"
	AudienceSmallBusiness     Audience = "Small Business Owners"
	AudienceEnterprise        Audience = "Enterprise Marketers"
	AudienceUnclassified      Audience = "No Clear Audience"
)

func AllAudiences() []Audience {
	return []Audience{
		AudienceMarketingLeaders, AudienceDemandGen, AudienceMarketingOps,
		AudienceDigitalMarketing, AudienceAutomation, AudienceSalesLeaders,
		AudienceSmallBusiness, AudienceEnterprise, AudienceUnclassified,
	}
}

// TopicRelevance is the quality facet's relevance verdict.
type TopicRelevance string

const (
	RelevanceOnTopic      TopicRelevance = "On Topic"
	RelevanceTangential   TopicRelevance = "Tangentially Related"
	RelevanceOffTopic     TopicRelevance = "Off Topic"
	RelevanceUnclassified TopicRelevance = "No Clear Match"
)

func AllTopicRelevances() []TopicRelevance {
	return []TopicRelevance{
		RelevanceOnTopic, RelevanceTangential, RelevanceOffTopic, RelevanceUnclassified,
	}
}

// BrandAlignment is the quality facet's brand verdict.
type BrandAlignment string

const (
	BrandOnBrand       BrandAlignment = "On Brand"
	BrandMostlyOnBrand BrandAlignment = "Mostly on Brand"
	BrandNeedsWork     BrandAlignment = "Needs Work"
	BrandNotOnBrand    BrandAlignment = "Not on Brand"
	BrandUnclassified  BrandAlignment = "No Clear Match"
)

func AllBrandAlignments() []BrandAlignment {
	return []BrandAlignment{
		BrandOnBrand, BrandMostlyOnBrand, BrandNeedsWork, BrandNotOnBrand,
		BrandUnclassified,
	}
}

// Unclassified reports whether a vocabulary value is an unclassified marker.
// Works across all vocabularies since the markers share a small fixed set.
func Unclassified(value string) bool {
	switch strings.TrimSpace(value) {
	case string(CategoryUnclassified), string(TopicUnclassified),
		string(ActivityUnclassified), string(AudienceUnclassified), "NONE":
		return true
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// ParsePrimaryCategory maps a string to a PrimaryCategory, falling back to
// the unclassified member for unknown values.
func ParsePrimaryCategory(s string) PrimaryCategory {
	n := normalize(s)
	for _, c := range AllPrimaryCategories() {
		if normalize(string(c)) == n {
			return c
		}
	}
	return CategoryUnclassified
}

func ParseSolutionTopic(s string) SolutionTopic {
	n := normalize(s)
	for _, c := range AllSolutionTopics() {
		if normalize(string(c)) == n {
			return c
		}
	}
	return TopicUnclassified
}

func ParseUseCase(s string) UseCase {
	n := normalize(s)
	if n == "none" {
		return UseCaseUnclassified
	}
	for _, c := range AllUseCases() {
		if normalize(string(c)) == n {
			return c
		}
	}
	return UseCaseUnclassified
}

func ParseJourneyStage(s string) JourneyStage {
	n := normalize(s)
	for _, c := range AllJourneyStages() {
		if normalize(string(c)) == n {
			return c
		}
	}
	return StageUnclassified
}

func ParseCMOPriority(s string) CMOPriority {
	n := normalize(s)
	for _, c := range AllCMOPriorities() {
		if normalize(string(c)) == n {
			return c
		}
	}
	return PriorityUnclassified
}

func ParseActivityType(s string) ActivityType {
	n := normalize(s)
	for _, c := range AllActivityTypes() {
		if normalize(string(c)) == n {
			return c
		}
	}
	return ActivityUnclassified
}

func ParseAudience(s string) Audience {
	n := normalize(s)
	for _, c := range AllAudiences() {
		if normalize(string(c)) == n {
			return c
		}
	}
	return AudienceUnclassified
}

func ParseTopicRelevance(s string) TopicRelevance {
	n := normalize(s)
	for _, c := range AllTopicRelevances() {
		if normalize(string(c)) == n {
			return c
		}
	}
	return RelevanceUnclassified
}

func ParseBrandAlignment(s string) BrandAlignment {
	n := normalize(s)
	for _, c := range AllBrandAlignments() {
		if normalize(string(c)) == n {
			return c
		}
	}
	return BrandUnclassified
}
