package engine

import (
	"fmt"

	"github.com/truthlenz/truthlenz/src/verifier/types"
)

// Agreement levels between the primary and secondary media passes.
const (
	AgreementHigh   = "high"
	AgreementMedium = "medium"
	AgreementLow    = "low"
)

// Penalties applied to the authenticity score when the two opinions diverge.
// A same-side disagreement ("edited" vs "suspicious") costs less than a split
// across the real/not-real boundary.
const (
	sameSidePenalty = 15
	sameSideFloor   = 10
	oppositePenalty = 30
	oppositeFloor   = 20
)

const disagreementFlag = "Independent models disagree on authenticity; flagged for closer review"

// Agreement is the reconciliation of two independent media verdicts. A single
// model's self-reported confidence is not trusted; the second opinion's
// directional agreement is the calibration signal.
type Agreement struct {
	Level      string
	Primary    string
	Secondary  string
	Adjustment string
	penalty    int
	floor      int
	flag       string
}

// Reconcile compares the primary and secondary verdicts. A failed or
// inconclusive secondary never blocks the primary result: it degrades the
// agreement to medium with an explicit annotation.
func Reconcile(primary, secondary string, secondaryErr error) Agreement {
	ag := Agreement{Primary: primary, Secondary: secondary}

	if secondaryErr != nil {
		ag.Level = AgreementMedium
		ag.Adjustment = "secondary unavailable; confidence unchanged"
		return ag
	}
	if secondary == "" || secondary == types.MediaInconclusive {
		ag.Level = AgreementMedium
		ag.Adjustment = "secondary inconclusive; confidence unchanged"
		return ag
	}

	switch {
	case primary == secondary:
		ag.Level = AgreementHigh
		ag.Adjustment = "none"
	case authentic(primary) == authentic(secondary):
		ag.Level = AgreementMedium
		ag.penalty = sameSidePenalty
		ag.floor = sameSideFloor
		ag.Adjustment = fmt.Sprintf("authenticity reduced by %d (partial disagreement)", sameSidePenalty)
	default:
		ag.Level = AgreementLow
		ag.penalty = oppositePenalty
		ag.floor = oppositeFloor
		ag.flag = disagreementFlag
		ag.Adjustment = fmt.Sprintf("authenticity reduced by %d (models disagree on authenticity)", oppositePenalty)
	}
	return ag
}

// Apply adjusts an authenticity score by the agreement penalty, clamped to
// the level's floor.
func (a Agreement) Apply(score int) int {
	if a.penalty == 0 {
		return score
	}
	adjusted := score - a.penalty
	if adjusted < a.floor {
		adjusted = a.floor
	}
	if adjusted > score {
		adjusted = score
	}
	return adjusted
}

// Flag returns the review flag for low agreement, or "".
func (a Agreement) Flag() string {
	return a.flag
}

// Record renders the agreement for the public result shape.
func (a Agreement) Record() *types.ModelAgreement {
	return &types.ModelAgreement{
		PrimaryVerdict:       a.Primary,
		SecondaryVerdict:     a.Secondary,
		AgreementLevel:       a.Level,
		ConfidenceAdjustment: a.Adjustment,
	}
}

// authentic reports which side of the real/not-real boundary a verdict is on.
func authentic(verdict string) bool {
	return verdict == types.MediaReal
}
