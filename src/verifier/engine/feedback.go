package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/truthlenz/truthlenz/src/ai/core"
	"github.com/truthlenz/truthlenz/src/verifier/types"
)

// CorrectionReview is the model's judgement of a user-submitted correction.
type CorrectionReview struct {
	IsTrue     bool    `json:"isTrue"`
	Reasoning  string  `json:"reasoning"`
	Confidence float64 `json:"confidence"`
}

// ReviewCorrection asks the feedback chain whether a correction is factually
// sound before it is allowed to bias future verdicts.
func (e *Engine) ReviewCorrection(ctx context.Context, fb types.FeedbackSubmission) (CorrectionReview, error) {
	prompt := fmt.Sprintf(`Original Content: %q
Original AI Verdict: %s
AI Credibility Score: %.0f%%
User's Correction: %q
User's Proposed Verdict: %s

Is the user's correction factually true?`,
		fb.Content, fb.OriginalVerdict, fb.OriginalScore, fb.UserCorrection, fb.CorrectVerdict)

	raw, err := e.gateway.Analyze(ctx, e.chains.Feedback, correctionReviewPrompt, []core.Part{core.TextPart(prompt)})
	if err != nil {
		return CorrectionReview{}, err
	}
	var review CorrectionReview
	if err := json.Unmarshal(raw, &review); err != nil {
		return CorrectionReview{}, fmt.Errorf("engine: correction review unparseable: %w", err)
	}
	return review, nil
}
