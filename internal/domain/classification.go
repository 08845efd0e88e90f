package domain

// ContentType is the coarse category of a shared link.
type ContentType string

const (
	ContentArticle      ContentType = "article"
	ContentAnnouncement ContentType = "announcement"
	ContentDiscussion   ContentType = "discussion"
	ContentReference    ContentType = "reference"
	ContentSocial       ContentType = "social"
	ContentMedia        ContentType = "media"
	ContentInternal     ContentType = "internal"
	ContentOther        ContentType = "other"
)

// TechnicalDepth estimates how technical the linked content is.
type TechnicalDepth string

const (
	DepthNone     TechnicalDepth = "none"
	DepthShallow  TechnicalDepth = "shallow"
	DepthModerate TechnicalDepth = "moderate"
	DepthDeep     TechnicalDepth = "deep"
	DepthExpert   TechnicalDepth = "expert"
	DepthUnknown  TechnicalDepth = "unknown"
)

// Actionability describes what a reader can do with the content.
type Actionability string

const (
	ActionNone       Actionability = "none"
	ActionAwareness  Actionability = "awareness"
	ActionApplicable Actionability = "applicable"
	ActionReference  Actionability = "reference"
)

// ContentClassification is the collect/reject decision for one URL.
type ContentClassification struct {
	ContentType    ContentType
	TechnicalDepth TechnicalDepth
	Actionability  Actionability
	ShouldCollect  bool
	Reasoning      string
}
