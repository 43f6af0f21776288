package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/truthlenz/truthlenz/src/verifier/types"
)

const (
	defaultScore       = 50
	defaultExplanation = "Forensic analysis complete"
	defaultFactCheck   = "unverified"
)

// Score thresholds for the verdict clamp: the label is never allowed to claim
// more credibility than the numeric score. Labels are downgraded, never
// upgraded.
const (
	fakeCeiling       = 20
	misleadingCeiling = 40
)

// AssembleText maps a loose text analysis onto the fixed public contract.
func AssembleText(a *ModelAnalysis, content string) *types.VerificationResult {
	score := credibilityOf(a)
	verdict := clampVerdict(a.Verdict, score)

	ta := types.TextAnalysis{
		Verdict:             verdict,
		Reasons:             nonNil(nil),
		SensationalLanguage: nonNil(nil),
		EmotionalPatterns:   nonNil(nil),
	}
	if a.TextAnalysis != nil {
		if a.TextAnalysis.Verdict != "" {
			ta.Verdict = a.TextAnalysis.Verdict
		}
		ta.Reasons = nonNil(a.TextAnalysis.Reasons)
		ta.SensationalLanguage = nonNil(a.TextAnalysis.SensationalLanguage)
		ta.EmotionalPatterns = nonNil(a.TextAnalysis.EmotionalPatterns)
	}

	ce := types.ClaimExtraction{
		MainClaim:       content,
		FactCheckResult: defaultFactCheck,
		Sources:         nonNil(nil),
	}
	if a.ClaimExtraction != nil {
		if a.ClaimExtraction.MainClaim != "" {
			ce.MainClaim = a.ClaimExtraction.MainClaim
		}
		if a.ClaimExtraction.FactCheckResult != "" {
			ce.FactCheckResult = a.ClaimExtraction.FactCheckResult
		}
		ce.Sources = nonNil(a.ClaimExtraction.Sources)
	}

	return &types.VerificationResult{
		ID:               uuid.NewString(),
		CredibilityScore: score,
		Verdict:          verdict,
		TextAnalysis:     ta,
		ClaimExtraction:  ce,
		Explanation:      explanationOf(a),
		Timestamp:        time.Now().UTC(),
	}
}

// AssembleMedia maps a loose forensic analysis plus the ensemble agreement
// onto the fixed public contract.
func AssembleMedia(a *ModelAnalysis, claimContext, kind string, ag Agreement) *types.VerificationResult {
	score := ag.Apply(credibilityOf(a))

	auth := score
	if a.AuthenticityScore != nil {
		auth = ag.Apply(clampScore(int(*a.AuthenticityScore)))
	}

	mediaVerdict := a.EffectiveMediaVerdict()
	if mediaVerdict == "" {
		mediaVerdict = types.MediaInconclusive
	}

	verdict := clampVerdict(a.Verdict, score)

	details := a.AnalysisDetails
	if details == nil {
		details = &types.AnalysisDetails{}
	}
	details.ModelAgreement = ag.Record()

	flags := nonNil(a.Flags)
	if ag.Flag() != "" {
		flags = append(flags, ag.Flag())
	}

	mainClaim := claimContext
	if mainClaim == "" {
		mainClaim = "Media Analysis"
	}
	description := a.Description
	if description == "" {
		description = "Forensic media analysis"
	}

	return &types.VerificationResult{
		ID:               uuid.NewString(),
		CredibilityScore: score,
		Verdict:          verdict,
		TextAnalysis: types.TextAnalysis{
			Verdict:             verdict,
			Reasons:             nonNil(nil),
			SensationalLanguage: nonNil(nil),
			EmotionalPatterns:   nonNil(nil),
		},
		ClaimExtraction: types.ClaimExtraction{
			MainClaim:       mainClaim,
			FactCheckResult: factCheckOf(a),
			Sources:         nonNil(nil),
		},
		MediaVerification: &types.MediaVerification{
			Description:       description,
			MediaVerdict:      mediaVerdict,
			AuthenticityScore: auth,
			MediaType:         kind,
			AnalysisDetails:   details,
			Flags:             flags,
		},
		Explanation: explanationOf(a),
		Timestamp:   time.Now().UTC(),
	}
}

func credibilityOf(a *ModelAnalysis) int {
	if a.CredibilityScore != nil {
		return clampScore(int(*a.CredibilityScore))
	}
	if a.AuthenticityScore != nil {
		return clampScore(int(*a.AuthenticityScore))
	}
	return defaultScore
}

func explanationOf(a *ModelAnalysis) string {
	if a.Explanation != "" {
		return a.Explanation
	}
	return defaultExplanation
}

func factCheckOf(a *ModelAnalysis) string {
	if a.FactCheckResult != "" {
		return a.FactCheckResult
	}
	return defaultFactCheck
}

// clampVerdict keeps the verdict label consistent with the numeric score.
func clampVerdict(verdict string, score int) string {
	if verdict == "" {
		verdict = types.VerdictInconclusive
	}
	if score < fakeCeiling && verdict != types.VerdictFake {
		return types.VerdictFake
	}
	if score < misleadingCeiling && verdict == types.VerdictReliable {
		return types.VerdictMisleading
	}
	return verdict
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func nonNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
