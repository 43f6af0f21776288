package engine

import (
	"encoding/json"
	"fmt"

	"github.com/truthlenz/truthlenz/src/verifier/types"
)

// ModelAnalysis is the loose intermediate shape decoded from a model reply.
// Every field is optional: providers and content kinds disagree on what they
// return, and none of it is trusted until the assembler applies defaults.
type ModelAnalysis struct {
	Verdict          string   `json:"verdict"`
	CredibilityScore *float64 `json:"credibilityScore"`
	Explanation      string   `json:"explanation"`

	TextAnalysis    *LooseTextAnalysis    `json:"textAnalysis"`
	ClaimExtraction *LooseClaimExtraction `json:"claimExtraction"`

	MediaVerdict string `json:"mediaVerdict"`
	// ImageVerdict is the legacy name some model revisions still emit.
	ImageVerdict      string                 `json:"imageVerdict"`
	AuthenticityScore *float64               `json:"authenticityScore"`
	Description       string                 `json:"description"`
	AnalysisDetails   *types.AnalysisDetails `json:"analysisDetails"`
	Flags             []string               `json:"flags"`
	FactCheckResult   string                 `json:"factCheckResult"`
}

type LooseTextAnalysis struct {
	Verdict             string   `json:"verdict"`
	Reasons             []string `json:"reasons"`
	SensationalLanguage []string `json:"sensationalLanguage"`
	EmotionalPatterns   []string `json:"emotionalPatterns"`
}

type LooseClaimExtraction struct {
	MainClaim       string   `json:"mainClaim"`
	FactCheckResult string   `json:"factCheckResult"`
	Sources         []string `json:"sources"`
}

// ParseAnalysis decodes an extracted JSON object into the loose shape.
func ParseAnalysis(raw json.RawMessage) (*ModelAnalysis, error) {
	var a ModelAnalysis
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("engine: analysis does not match any known shape: %w", err)
	}
	return &a, nil
}

// EffectiveMediaVerdict folds the legacy field name into the current one.
func (a *ModelAnalysis) EffectiveMediaVerdict() string {
	if a.MediaVerdict != "" {
		return a.MediaVerdict
	}
	return a.ImageVerdict
}
