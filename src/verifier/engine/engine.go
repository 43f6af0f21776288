package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/truthlenz/truthlenz/src/ai/core"
	"github.com/truthlenz/truthlenz/src/verifier/data"
	"github.com/truthlenz/truthlenz/src/verifier/normalize"
	"github.com/truthlenz/truthlenz/src/verifier/types"
)

// Gateway is the model-call surface the engine depends on.
type Gateway interface {
	Analyze(ctx context.Context, chain []core.Candidate, system string, parts []core.Part) (json.RawMessage, error)
}

// ResultCache is the advisory content-addressable verdict cache.
type ResultCache interface {
	Lookup(ctx context.Context, hash string) ([]byte, bool)
	Store(ctx context.Context, hash, kind, canonicalInput string, result []byte)
	BumpHit(hash string)
}

// CorrectionSource supplies prior human corrections as few-shot context.
type CorrectionSource interface {
	Relevant(ctx context.Context, hash, kind string) []types.VerificationFeedback
}

// Chains holds the ordered model fallback chains per call site.
type Chains struct {
	Text      []core.Candidate
	Media     []core.Candidate
	Secondary []core.Candidate
	Feedback  []core.Candidate
}

// Engine orchestrates one verification request end to end: canonicalize,
// fingerprint, cache, correction retrieval, model calls, reconciliation,
// response assembly, cache store.
type Engine struct {
	gateway     Gateway
	cache       ResultCache
	corrections CorrectionSource
	rdb         *redis.Client
	chains      Chains
}

func New(gateway Gateway, cache ResultCache, corrections CorrectionSource, rdb *redis.Client, chains Chains) *Engine {
	return &Engine{
		gateway:     gateway,
		cache:       cache,
		corrections: corrections,
		rdb:         rdb,
		chains:      chains,
	}
}

// Verify processes one request and returns the JSON-encoded result body.
// Cache hits return the stored body unchanged, byte for byte.
func (e *Engine) Verify(ctx context.Context, req types.VerificationRequest) (json.RawMessage, error) {
	kind := req.Type

	var (
		hash      string
		canonical string
		blob      core.Blob
	)
	if types.IsMediaKind(kind) {
		var err error
		blob, err = DecodeMedia(req.Media())
		if err != nil {
			return nil, err
		}
		hash = normalize.FingerprintBytes(blob.Data)
	} else {
		canonical = normalize.Canonical(req.Content, kind)
		hash = normalize.Fingerprint(canonical)
	}

	log.Printf("engine: processing %s verification, fingerprint %s", kind, hash)

	if cached, ok := e.cache.Lookup(ctx, hash); ok {
		log.Printf("engine: cache hit for %s", hash)
		e.cache.BumpHit(hash)
		return cached, nil
	}

	few := BuildFewShot(e.corrections.Relevant(ctx, hash, kind), kind)

	var result *types.VerificationResult
	if types.IsMediaKind(kind) {
		analysis, err := e.analyzeMedia(ctx, req, kind, blob, few)
		if err != nil {
			return nil, err
		}
		ag := e.secondOpinion(ctx, blob, analysis.EffectiveMediaVerdict())
		result = AssembleMedia(analysis, req.Content, kind, ag)
	} else {
		analysis, err := e.analyzeText(ctx, req.Content, few)
		if err != nil {
			return nil, err
		}
		result = AssembleText(analysis, req.Content)
	}

	body, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	e.cache.Store(ctx, hash, kind, canonical, body)
	e.publish(hash, kind, result)
	return body, nil
}

func (e *Engine) analyzeText(ctx context.Context, content string, few FewShot) (*ModelAnalysis, error) {
	prompt := fmt.Sprintf("Input to verify: %q\n%s", content, few.PromptBlock())
	raw, err := e.gateway.Analyze(ctx, e.chains.Text, textSystemPrompt, []core.Part{core.TextPart(prompt)})
	if err != nil {
		return nil, err
	}
	return ParseAnalysis(raw)
}

func (e *Engine) analyzeMedia(ctx context.Context, req types.VerificationRequest, kind string, blob core.Blob, few FewShot) (*ModelAnalysis, error) {
	system := mediaSystemPrompt(kind, claimContext(req), few.PromptBlock())
	parts := append([]core.Part{{InlineData: &blob}}, few.Media...)
	raw, err := e.gateway.Analyze(ctx, e.chains.Media, system, parts)
	if err != nil {
		return nil, err
	}
	return ParseAnalysis(raw)
}

// secondOpinion runs the lighter second pass and reconciles it against the
// primary verdict. Its own failure never propagates.
func (e *Engine) secondOpinion(ctx context.Context, blob core.Blob, primary string) Agreement {
	raw, err := e.gateway.Analyze(ctx, e.chains.Secondary, secondarySystemPrompt, []core.Part{{InlineData: &blob}})
	if err != nil {
		log.Printf("engine: secondary pass failed: %v", err)
		return Reconcile(primary, "", err)
	}
	var opinion struct {
		Verdict    string  `json:"verdict"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal(raw, &opinion); err != nil {
		log.Printf("engine: secondary pass unparseable: %v", err)
		return Reconcile(primary, "", err)
	}
	return Reconcile(primary, opinion.Verdict, nil)
}

func (e *Engine) publish(hash, kind string, result *types.VerificationResult) {
	if e.rdb == nil {
		return
	}
	go func() {
		err := data.PublishVerdict(context.Background(), e.rdb, map[string]interface{}{
			"id":      result.ID,
			"hash":    hash,
			"kind":    kind,
			"verdict": result.Verdict,
			"score":   result.CredibilityScore,
			"time":    result.Timestamp.Unix(),
		})
		if err != nil {
			log.Printf("engine: verdict publish: %v", err)
		}
	}()
}

func claimContext(req types.VerificationRequest) string {
	if req.Content != "" {
		return req.Content
	}
	if req.MediaDescription != "" {
		return req.MediaDescription
	}
	return "None"
}
