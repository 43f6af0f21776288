package types

import "time"

// Content kinds accepted by the verify endpoint.
const (
	KindText  = "text"
	KindURL   = "url"
	KindImage = "image"
	KindVideo = "video"
)

// ValidKind reports whether k is an accepted content kind.
func ValidKind(k string) bool {
	switch k {
	case KindText, KindURL, KindImage, KindVideo:
		return true
	}
	return false
}

// IsMediaKind reports whether k requires a media payload.
func IsMediaKind(k string) bool {
	return k == KindImage || k == KindVideo
}

// Top-level verdicts.
const (
	VerdictReliable     = "reliable"
	VerdictMisleading   = "misleading"
	VerdictFake         = "fake"
	VerdictInconclusive = "inconclusive"
)

// Media verdicts from the forensic pass.
const (
	MediaReal         = "real"
	MediaEdited       = "edited"
	MediaAIGenerated  = "ai_generated"
	MediaSuspicious   = "suspicious"
	MediaInconclusive = "inconclusive"
)

// VerificationCache caches one computed verdict per content fingerprint.
type VerificationCache struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement"`
	ContentHash   string `gorm:"column:content_hash;size:64;uniqueIndex"`
	ContentType   string `gorm:"column:content_type;size:16;index"`
	OriginalInput string `gorm:"column:original_input;size:1024"`
	APIResponse   string `gorm:"column:api_response;type:mediumtext"`
	HitCount      uint64 `gorm:"column:hit_count;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName implements gorm's tabler interface.
func (VerificationCache) TableName() string {
	return "verification_cache"
}

// VerificationFeedback stores one user correction to a past verdict.
type VerificationFeedback struct {
	ID              uint64 `gorm:"primaryKey;autoIncrement"`
	ContentHash     string `gorm:"column:content_hash;size:64;index"`
	QuickKey        string `gorm:"column:quick_key;size:16;index"`
	OriginalContent string `gorm:"column:original_content;type:text"`
	ContentType     string `gorm:"column:content_type;size:16;index:idx_feedback_type_created"`
	OriginalVerdict string `gorm:"column:original_verdict;size:32"`
	OriginalScore   uint8  `gorm:"column:original_score"`
	IsCorrect       bool   `gorm:"column:is_correct;index"`
	UserCorrection  string `gorm:"column:user_correction;type:text"`
	CorrectVerdict  string `gorm:"column:correct_verdict;size:32"`
	MediaBase64     string `gorm:"column:media_base64;type:mediumtext"`
	CreatedAt       time.Time `gorm:"index:idx_feedback_type_created"`
}

// TableName implements gorm's tabler interface.
func (VerificationFeedback) TableName() string {
	return "verification_feedback"
}

// VerificationRequest is the POST /v1/verify body.
type VerificationRequest struct {
	Content          string `json:"content"`
	Type             string `json:"type"`
	MediaDescription string `json:"mediaDescription,omitempty"`
	MediaBase64      string `json:"mediaBase64,omitempty"`
	// ImageBase64 is the legacy client field name for the same payload.
	ImageBase64 string `json:"imageBase64,omitempty"`
}

// Media returns the media payload regardless of which field the client used.
func (r VerificationRequest) Media() string {
	if r.MediaBase64 != "" {
		return r.MediaBase64
	}
	return r.ImageBase64
}

// FeedbackSubmission is the POST /v1/feedback body.
type FeedbackSubmission struct {
	Content         string  `json:"content"`
	ContentType     string  `json:"contentType"`
	OriginalVerdict string  `json:"originalVerdict"`
	OriginalScore   float64 `json:"originalScore"`
	IsCorrect       bool    `json:"isCorrect"`
	UserCorrection  string  `json:"userCorrection,omitempty"`
	CorrectVerdict  string  `json:"correctVerdict,omitempty"`
	ImageBase64     string  `json:"imageBase64,omitempty"`
}

// TextAnalysis is the linguistic portion of a verdict.
type TextAnalysis struct {
	Verdict             string   `json:"verdict"`
	Reasons             []string `json:"reasons"`
	SensationalLanguage []string `json:"sensationalLanguage"`
	EmotionalPatterns   []string `json:"emotionalPatterns"`
}

// ClaimExtraction captures the main factual claim and its check status.
type ClaimExtraction struct {
	MainClaim       string   `json:"mainClaim"`
	FactCheckResult string   `json:"factCheckResult"`
	Sources         []string `json:"sources"`
}

// InspectionDetail is one categorical finding from the forensic media pass.
type InspectionDetail struct {
	Category   string  `json:"category"`
	Finding    string  `json:"finding"`
	Confidence float64 `json:"confidence"`
	Severity   string  `json:"severity"`
}

// ModelAgreement records how two independent model opinions lined up.
type ModelAgreement struct {
	PrimaryVerdict       string `json:"primaryVerdict"`
	SecondaryVerdict     string `json:"secondaryVerdict"`
	AgreementLevel       string `json:"agreementLevel"`
	ConfidenceAdjustment string `json:"confidenceAdjustment"`
}

// AnalysisDetails groups the categorical forensic findings.
type AnalysisDetails struct {
	PixelAnalysis     []InspectionDetail `json:"pixelAnalysis,omitempty"`
	TextureAnalysis   []InspectionDetail `json:"textureAnalysis,omitempty"`
	SemanticAnalysis  []InspectionDetail `json:"semanticAnalysis,omitempty"`
	BrandAuthenticity []InspectionDetail `json:"brandAuthenticity,omitempty"`
	HumanAnalysis     []InspectionDetail `json:"humanAnalysis,omitempty"`
	TemporalAnalysis  []InspectionDetail `json:"temporalAnalysis,omitempty"`
	FrameConsistency  []InspectionDetail `json:"frameConsistency,omitempty"`
	ModelAgreement    *ModelAgreement    `json:"modelAgreement,omitempty"`
}

// MediaVerification is present on image/video verdicts.
type MediaVerification struct {
	Description       string           `json:"description"`
	MediaVerdict      string           `json:"mediaVerdict"`
	AuthenticityScore int              `json:"authenticityScore"`
	MediaType         string           `json:"mediaType,omitempty"`
	AnalysisDetails   *AnalysisDetails `json:"analysisDetails,omitempty"`
	Flags             []string         `json:"flags"`
}

// VerificationResult is the stable public contract. Its shape never varies by
// provider, content kind quirks, or partial upstream failure.
type VerificationResult struct {
	ID                string             `json:"id"`
	CredibilityScore  int                `json:"credibilityScore"`
	Verdict           string             `json:"verdict"`
	TextAnalysis      TextAnalysis       `json:"textAnalysis"`
	ClaimExtraction   ClaimExtraction    `json:"claimExtraction"`
	MediaVerification *MediaVerification `json:"mediaVerification,omitempty"`
	Explanation       string             `json:"explanation"`
	Timestamp         time.Time          `json:"timestamp"`
}
