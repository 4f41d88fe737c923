package domain

// Event category labels. Canonical values are the Hindi labels the
// downstream review tooling displays; they double as taxonomy keys.
const (
	CategoryMeeting            = "बैठक"
	CategoryOutreach           = "जनसम्पर्क / जनदर्शन"
	CategoryAdminReview        = "प्रशासनिक समीक्षा बैठक"
	CategoryInspection         = "निरीक्षण"
	CategoryRally              = "रैली"
	CategoryCampaign           = "चुनाव प्रचार"
	CategoryInauguration       = "उद्घाटन"
	CategoryScheme             = "योजना घोषणा"
	CategoryCultural           = "धार्मिक / सांस्कृतिक कार्यक्रम"
	CategoryFelicitation       = "सम्मान / Felicitation"
	CategoryPressMedia         = "प्रेस कॉन्फ़्रेंस / मीडिया"
	CategoryGreeting           = "शुभकामना / बधाई"
	CategoryBirthday           = "जन्मदिन शुभकामना"
	CategoryCondolence         = "शोक संदेश"
	CategorySecurity           = "आंतरिक सुरक्षा / पुलिस"
	CategorySports             = "खेल / गौरव"
	CategoryPolitical          = "राजनीतिक वक्तव्य"
	CategoryDisaster           = "आपदा / दुर्घटना"
	CategoryUncategorized      = "अन्य"
)

// Content mode labels assigned by the rescue engine.
const (
	ModeFieldEvent      = "मैदान-स्तर कार्यक्रम"
	ModePolicyStatement = "नीति / वक्तव्य"
	ModeDigitalPost     = "डिजिटल / सोशल-मीडिया पोस्ट"
	ModeSportsReaction  = "खेल / उपलब्धि पर प्रतिक्रिया"
	ModeFestiveGreeting = "सामान्य शुभकामनाएँ / पर्व"
)

// Classification source constants
const (
	ClassificationSourceKeyword = "keyword"
	ClassificationSourceRescue  = "rescue"
)

// UncategorizedConfidence is the fixed confidence assigned when no keyword
// cluster matches at all.
const UncategorizedConfidence = 0.3

// ClassificationResult is the event classifier output for one post.
type ClassificationResult struct {
	Primary    string             `json:"primary"`
	Secondary  []string           `json:"secondary"` // ranked, capped at 3
	Scores     map[string]float64 `json:"scores"`
	Confidence float64            `json:"confidence"` // 0.0-1.0
	Source     string             `json:"source"`     // "keyword" or "rescue"
}

// IsUncategorized reports whether the post fell through every keyword
// cluster and is eligible for rescue.
func (r *ClassificationResult) IsUncategorized() bool {
	return r.Primary == CategoryUncategorized
}

// RescueVerdict is produced by the rescue engine for an uncategorized post.
// A pass-through verdict has Rescued=false and only ContentMode set.
type RescueVerdict struct {
	Rescued     bool    `json:"rescued"`
	Category    string  `json:"category,omitempty"`
	Tag         string  `json:"tag,omitempty"`
	Bonus       float64 `json:"bonus,omitempty"` // 0.0-1.0
	ContentMode string  `json:"content_mode"`
}

// EntityBundle holds everything the entity extractor found, deduplicated,
// first occurrence order.
type EntityBundle struct {
	Schemes       []string `json:"schemes"`
	TargetGroups  []string `json:"target_groups"`
	Communities   []string `json:"communities"`
	Organizations []string `json:"organizations"`
	People        []string `json:"people"`
	WordBuckets   []string `json:"word_buckets"`

	// Confidence per entity class, keyed by the json field names above.
	Confidence map[string]float64 `json:"confidence,omitempty"`
}

// Consensus signal names. Each resolver/classifier stage contributes at
// most one signal; absent signals carry no weight.
const (
	SignalKeyword             = "keyword"
	SignalLocation            = "location"
	SignalRescue              = "rescue"
	SignalDictionaryAgreement = "dictionary_agreement"
	SignalSemanticAgreement   = "semantic_agreement"
)

// ConfidenceSignals maps signal name to score. Built by the orchestrator,
// consumed once by the consensus scorer.
type ConfidenceSignals map[string]float64
