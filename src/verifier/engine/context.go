package engine

import (
	"fmt"
	"strings"

	"github.com/truthlenz/truthlenz/src/ai/core"
	"github.com/truthlenz/truthlenz/src/verifier/types"
)

// Few-shot bounds. The cap and truncation rules are first-class parameters of
// the context builder, not inline magic.
const (
	maxFewShotExamples = 5
	maxCorrectionChars = 280
	maxMediaExamples   = 2
)

// FewShot is the bounded correction context injected into a model prompt.
type FewShot struct {
	Lines []string
	Media []core.Part
}

// BuildFewShot turns prior corrections into a capped set of structured
// examples. For media kinds, up to maxMediaExamples reference payloads are
// attached as literal inline media.
func BuildFewShot(corrections []types.VerificationFeedback, kind string) FewShot {
	var out FewShot
	for _, c := range corrections {
		if len(out.Lines) >= maxFewShotExamples {
			break
		}
		explanation := strings.TrimSpace(c.UserCorrection)
		if explanation == "" {
			continue
		}
		if len(explanation) > maxCorrectionChars {
			explanation = explanation[:maxCorrectionChars] + "..."
		}
		out.Lines = append(out.Lines, fmt.Sprintf(
			"- Correction: Original '%s' -> Correct '%s'. User: %q",
			c.OriginalVerdict, c.CorrectVerdict, explanation))

		if types.IsMediaKind(kind) && c.MediaBase64 != "" && len(out.Media) < maxMediaExamples {
			if blob, err := DecodeMedia(c.MediaBase64); err == nil {
				out.Media = append(out.Media, core.Part{InlineData: &blob})
			}
		}
	}
	return out
}

// PromptBlock renders the correction lines as prompt text, or "" when empty.
func (f FewShot) PromptBlock() string {
	if len(f.Lines) == 0 {
		return ""
	}
	return "\nLearn from past corrections:\n" + strings.Join(f.Lines, "\n") + "\n"
}
