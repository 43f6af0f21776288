package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/truthlenz/truthlenz/src/verifier/types"
)

func floatPtr(f float64) *float64 { return &f }

func TestAssembleTextDefaults(t *testing.T) {
	// A model that returned nothing useful still yields the full shape.
	result := AssembleText(&ModelAnalysis{}, "the moon landing happened")

	require.NotEmpty(t, result.ID)
	require.Equal(t, defaultScore, result.CredibilityScore)
	require.Equal(t, types.VerdictInconclusive, result.Verdict)
	require.Equal(t, "the moon landing happened", result.ClaimExtraction.MainClaim)
	require.Equal(t, defaultFactCheck, result.ClaimExtraction.FactCheckResult)
	require.NotNil(t, result.ClaimExtraction.Sources)
	require.NotNil(t, result.TextAnalysis.Reasons)
	require.Equal(t, defaultExplanation, result.Explanation)
	require.Nil(t, result.MediaVerification)
	require.False(t, result.Timestamp.IsZero())

	// Empty slices must serialize as [], never null.
	body, err := json.Marshal(result)
	require.NoError(t, err)
	require.Contains(t, string(body), `"reasons":[]`)
	require.Contains(t, string(body), `"sources":[]`)
}

func TestAssembleTextFullAnalysis(t *testing.T) {
	a := &ModelAnalysis{
		Verdict:          types.VerdictReliable,
		CredibilityScore: floatPtr(91),
		Explanation:      "well sourced",
		TextAnalysis: &LooseTextAnalysis{
			Verdict:             types.VerdictReliable,
			Reasons:             []string{"matches known record"},
			SensationalLanguage: []string{},
			EmotionalPatterns:   []string{},
		},
		ClaimExtraction: &LooseClaimExtraction{
			MainClaim:       "the sky is blue",
			FactCheckResult: "confirmed",
			Sources:         []string{"common knowledge"},
		},
	}
	result := AssembleText(a, "The sky is blue.")

	require.Equal(t, 91, result.CredibilityScore)
	require.Equal(t, types.VerdictReliable, result.Verdict)
	require.Equal(t, "the sky is blue", result.ClaimExtraction.MainClaim)
	require.Equal(t, "confirmed", result.ClaimExtraction.FactCheckResult)
	require.Equal(t, []string{"matches known record"}, result.TextAnalysis.Reasons)
}

func TestVerdictClampPolicy(t *testing.T) {
	tests := []struct {
		name    string
		verdict string
		score   float64
		want    string
	}{
		{"low score forces fake", types.VerdictReliable, 10, types.VerdictFake},
		{"mid-low score downgrades reliable", types.VerdictReliable, 35, types.VerdictMisleading},
		{"mid-low score keeps misleading", types.VerdictMisleading, 35, types.VerdictMisleading},
		{"high score keeps label", types.VerdictReliable, 80, types.VerdictReliable},
		{"labels are never upgraded", types.VerdictFake, 95, types.VerdictFake},
		{"missing verdict defaults inconclusive", "", 60, types.VerdictInconclusive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AssembleText(&ModelAnalysis{
				Verdict:          tt.verdict,
				CredibilityScore: floatPtr(tt.score),
			}, "claim")
			require.Equal(t, tt.want, result.Verdict)
		})
	}
}

func TestAssembleMediaDefaults(t *testing.T) {
	ag := Reconcile(types.MediaReal, "", nil)
	result := AssembleMedia(&ModelAnalysis{}, "", types.KindImage, ag)

	require.Equal(t, defaultScore, result.CredibilityScore)
	require.NotNil(t, result.MediaVerification)
	require.Equal(t, types.MediaInconclusive, result.MediaVerification.MediaVerdict)
	require.Equal(t, "Media Analysis", result.ClaimExtraction.MainClaim)
	require.Equal(t, types.KindImage, result.MediaVerification.MediaType)
	require.NotNil(t, result.MediaVerification.AnalysisDetails)
	require.NotNil(t, result.MediaVerification.AnalysisDetails.ModelAgreement)
	require.NotNil(t, result.MediaVerification.Flags)
}

func TestAssembleMediaAppliesAgreementPenalty(t *testing.T) {
	a := &ModelAnalysis{
		Verdict:          types.VerdictReliable,
		CredibilityScore: floatPtr(90),
		MediaVerdict:     types.MediaReal,
		Description:      "clean photograph",
	}

	agreed := AssembleMedia(a, "a photo", types.KindImage, Reconcile(types.MediaReal, types.MediaReal, nil))
	split := AssembleMedia(a, "a photo", types.KindImage, Reconcile(types.MediaReal, types.MediaAIGenerated, nil))

	require.Equal(t, 90, agreed.MediaVerification.AuthenticityScore)
	require.Less(t, split.MediaVerification.AuthenticityScore, agreed.MediaVerification.AuthenticityScore)
	require.Equal(t, AgreementLow, split.MediaVerification.AnalysisDetails.ModelAgreement.AgreementLevel)
	require.Contains(t, split.MediaVerification.Flags, disagreementFlag)
}

func TestAssembleMediaLegacyImageVerdict(t *testing.T) {
	a := &ModelAnalysis{
		CredibilityScore: floatPtr(70),
		ImageVerdict:     types.MediaEdited,
	}
	result := AssembleMedia(a, "ctx", types.KindImage, Reconcile(types.MediaEdited, types.MediaEdited, nil))
	require.Equal(t, types.MediaEdited, result.MediaVerification.MediaVerdict)
}

func TestParseAnalysisLooseShapes(t *testing.T) {
	raw := json.RawMessage(`{"verdict":"misleading","credibilityScore":33,"flags":["clickbait"],"unknownField":true}`)
	a, err := ParseAnalysis(raw)
	require.NoError(t, err)
	require.Equal(t, "misleading", a.Verdict)
	require.Equal(t, 33, int(*a.CredibilityScore))
	require.Equal(t, []string{"clickbait"}, a.Flags)
	require.Nil(t, a.TextAnalysis)
}
