package engine

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/truthlenz/truthlenz/src/ai/core"
	"github.com/truthlenz/truthlenz/src/verifier/types"
)

// fakeGateway routes each call by the chain's first model name.
type fakeGateway struct {
	replies map[string]string
	errs    map[string]error
	calls   []string
}

func (g *fakeGateway) Analyze(ctx context.Context, chain []core.Candidate, system string, parts []core.Part) (json.RawMessage, error) {
	if len(chain) == 0 {
		return nil, errors.New("empty chain")
	}
	model := chain[0].Model
	g.calls = append(g.calls, model)
	if err := g.errs[model]; err != nil {
		return nil, err
	}
	return json.RawMessage(g.replies[model]), nil
}

type fakeCache struct {
	entries map[string][]byte
	stores  int
	hits    map[string]int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}, hits: map[string]int{}}
}

func (c *fakeCache) Lookup(ctx context.Context, hash string) ([]byte, bool) {
	body, ok := c.entries[hash]
	return body, ok
}

func (c *fakeCache) Store(ctx context.Context, hash, kind, canonicalInput string, result []byte) {
	c.entries[hash] = result
	c.stores++
}

func (c *fakeCache) BumpHit(hash string) { c.hits[hash]++ }

type fakeCorrections struct {
	feedback []types.VerificationFeedback
}

func (f *fakeCorrections) Relevant(ctx context.Context, hash, kind string) []types.VerificationFeedback {
	return f.feedback
}

func testChains() Chains {
	return Chains{
		Text:      []core.Candidate{{Provider: "stub", Model: "text-model"}},
		Media:     []core.Candidate{{Provider: "stub", Model: "media-model"}},
		Secondary: []core.Candidate{{Provider: "stub", Model: "secondary-model"}},
		Feedback:  []core.Candidate{{Provider: "stub", Model: "feedback-model"}},
	}
}

func TestVerifyTextEndToEnd(t *testing.T) {
	gateway := &fakeGateway{replies: map[string]string{
		"text-model": `{
			"verdict": "reliable",
			"credibilityScore": 95,
			"explanation": "Common observable fact.",
			"textAnalysis": {"verdict": "reliable", "reasons": ["matches everyday observation"], "sensationalLanguage": [], "emotionalPatterns": []},
			"claimExtraction": {"mainClaim": "the sky is blue", "factCheckResult": "confirmed", "sources": ["common knowledge"]}
		}`,
	}}
	cache := newFakeCache()
	e := New(gateway, cache, &fakeCorrections{}, nil, testChains())

	body, err := e.Verify(context.Background(), types.VerificationRequest{
		Content: "The sky is blue.",
		Type:    types.KindText,
	})
	require.NoError(t, err)

	var result types.VerificationResult
	require.NoError(t, json.Unmarshal(body, &result))
	require.NotEmpty(t, result.ID)
	require.Equal(t, 95, result.CredibilityScore)
	require.Equal(t, types.VerdictReliable, result.Verdict)
	require.Equal(t, "the sky is blue", result.ClaimExtraction.MainClaim)
	require.Nil(t, result.MediaVerification)
	require.Equal(t, 1, cache.stores)
	require.Equal(t, []string{"text-model"}, gateway.calls)
}

func TestVerifyCacheHitReturnsStoredBodyUnchanged(t *testing.T) {
	gateway := &fakeGateway{replies: map[string]string{
		"text-model": `{"verdict": "fake", "credibilityScore": 5}`,
	}}
	cache := newFakeCache()
	e := New(gateway, cache, &fakeCorrections{}, nil, testChains())

	req := types.VerificationRequest{Content: "Some Claim", Type: types.KindText}

	first, err := e.Verify(context.Background(), req)
	require.NoError(t, err)

	// Same content modulo canonicalization must hit the cache: no new model
	// call, byte-identical body, hit counter bumped.
	again := types.VerificationRequest{Content: "  some   CLAIM ", Type: types.KindText}
	second, err := e.Verify(context.Background(), again)
	require.NoError(t, err)

	require.Equal(t, string(first), string(second))
	require.Equal(t, 1, cache.stores)
	require.Equal(t, []string{"text-model"}, gateway.calls)
	require.Len(t, cache.hits, 1)
	for _, n := range cache.hits {
		require.Equal(t, 1, n)
	}
}

func TestVerifyMediaFlowWithSecondOpinion(t *testing.T) {
	gateway := &fakeGateway{replies: map[string]string{
		"media-model": `{
			"verdict": "reliable",
			"credibilityScore": 85,
			"mediaVerdict": "real",
			"authenticityScore": 90,
			"description": "No manipulation artifacts found."
		}`,
		"secondary-model": `{"verdict": "ai_generated", "confidence": 0.8}`,
	}}
	cache := newFakeCache()
	e := New(gateway, cache, &fakeCorrections{}, nil, testChains())

	payload := base64.StdEncoding.EncodeToString([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A})
	body, err := e.Verify(context.Background(), types.VerificationRequest{
		Type:        types.KindImage,
		MediaBase64: payload,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"media-model", "secondary-model"}, gateway.calls)

	var result types.VerificationResult
	require.NoError(t, json.Unmarshal(body, &result))
	require.NotNil(t, result.MediaVerification)
	require.Equal(t, types.MediaReal, result.MediaVerification.MediaVerdict)
	// Opposite-side disagreement: scores carry the large penalty.
	require.Equal(t, 85-oppositePenalty, result.CredibilityScore)
	require.Equal(t, 90-oppositePenalty, result.MediaVerification.AuthenticityScore)
	require.Contains(t, result.MediaVerification.Flags, disagreementFlag)

	ma := result.MediaVerification.AnalysisDetails.ModelAgreement
	require.NotNil(t, ma)
	require.Equal(t, AgreementLow, ma.AgreementLevel)
	require.Equal(t, types.MediaReal, ma.PrimaryVerdict)
	require.Equal(t, types.MediaAIGenerated, ma.SecondaryVerdict)
}

func TestVerifySecondaryFailureDoesNotBlock(t *testing.T) {
	gateway := &fakeGateway{
		replies: map[string]string{
			"media-model": `{"credibilityScore": 70, "mediaVerdict": "real"}`,
		},
		errs: map[string]error{
			"secondary-model": errors.New("status 500"),
		},
	}
	e := New(gateway, newFakeCache(), &fakeCorrections{}, nil, testChains())

	payload := base64.StdEncoding.EncodeToString([]byte("frame data"))
	body, err := e.Verify(context.Background(), types.VerificationRequest{
		Type:        types.KindVideo,
		MediaBase64: payload,
	})
	require.NoError(t, err)

	var result types.VerificationResult
	require.NoError(t, json.Unmarshal(body, &result))
	require.Equal(t, 70, result.CredibilityScore)
	ma := result.MediaVerification.AnalysisDetails.ModelAgreement
	require.Equal(t, AgreementMedium, ma.AgreementLevel)
	require.Contains(t, ma.ConfidenceAdjustment, "secondary unavailable")
}

func TestVerifyBadMediaPayload(t *testing.T) {
	e := New(&fakeGateway{}, newFakeCache(), &fakeCorrections{}, nil, testChains())

	_, err := e.Verify(context.Background(), types.VerificationRequest{
		Type:        types.KindImage,
		MediaBase64: "not base64 at all!!!",
	})
	require.ErrorIs(t, err, ErrBadMedia)
}

func TestVerifyPrimaryFailurePropagates(t *testing.T) {
	gateway := &fakeGateway{errs: map[string]error{
		"text-model": errors.New("status 429: rate_limit_exceeded"),
	}}
	e := New(gateway, newFakeCache(), &fakeCorrections{}, nil, testChains())

	_, err := e.Verify(context.Background(), types.VerificationRequest{
		Content: "claim",
		Type:    types.KindText,
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "429")
}

func TestVerifyLegacyImageField(t *testing.T) {
	gateway := &fakeGateway{replies: map[string]string{
		"media-model":     `{"credibilityScore": 60, "imageVerdict": "edited"}`,
		"secondary-model": `{"verdict": "edited", "confidence": 0.7}`,
	}}
	e := New(gateway, newFakeCache(), &fakeCorrections{}, nil, testChains())

	payload := base64.StdEncoding.EncodeToString([]byte("jpeg-ish bytes"))
	body, err := e.Verify(context.Background(), types.VerificationRequest{
		Type:        types.KindImage,
		ImageBase64: payload,
	})
	require.NoError(t, err)

	var result types.VerificationResult
	require.NoError(t, json.Unmarshal(body, &result))
	require.Equal(t, types.MediaEdited, result.MediaVerification.MediaVerdict)
	require.Equal(t, AgreementHigh, result.MediaVerification.AnalysisDetails.ModelAgreement.AgreementLevel)
}
