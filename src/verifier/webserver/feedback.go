package webserver

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/truthlenz/truthlenz/src/verifier/data"
	"github.com/truthlenz/truthlenz/src/verifier/engine"
	"github.com/truthlenz/truthlenz/src/verifier/normalize"
	"github.com/truthlenz/truthlenz/src/verifier/types"
)

type Feedback struct {
	eng       Verifier
	store     *data.FeedbackStore
	sanitizer *bluemonday.Policy
}

func NewFeedback(eng Verifier, store *data.FeedbackStore) Feedback {
	return Feedback{
		eng:       eng,
		store:     store,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Handle accepts a user correction, fact-checks it with a model before it is
// allowed to influence future verdicts, and stores accepted records.
func (h Feedback) Handle(c *gin.Context) {
	var fb types.FeedbackSubmission
	if err := c.ShouldBindJSON(&fb); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !types.ValidKind(fb.ContentType) {
		fb.ContentType = types.KindText
	}
	fb.UserCorrection = strings.TrimSpace(h.sanitizer.Sanitize(fb.UserCorrection))

	// Positive confirmations are accepted directly; only corrections are
	// fact-checked.
	if !fb.IsCorrect && fb.UserCorrection != "" {
		review, err := h.eng.ReviewCorrection(c.Request.Context(), fb)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate correction.", "details": err.Error()})
			return
		}
		if !review.IsTrue {
			log.Printf("feedback: correction rejected: %s", review.Reasoning)
			c.JSON(http.StatusOK, gin.H{
				"success": false,
				"message": "Feedback rejected after fact-checking.",
				"reason":  review.Reasoning,
			})
			return
		}
	}

	rec := types.VerificationFeedback{
		ContentHash:     feedbackFingerprint(fb),
		QuickKey:        normalize.QuickKey(fb.Content),
		OriginalContent: fb.Content,
		ContentType:     fb.ContentType,
		OriginalVerdict: orDefault(fb.OriginalVerdict, types.VerdictInconclusive),
		OriginalScore:   clampByte(fb.OriginalScore),
		IsCorrect:       fb.IsCorrect,
		UserCorrection:  fb.UserCorrection,
		CorrectVerdict:  fb.CorrectVerdict,
		MediaBase64:     fb.ImageBase64,
	}
	if err := h.store.Save(c.Request.Context(), &rec); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save feedback.", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Feedback verified and saved."})
}

// feedbackFingerprint keys a correction the same way the verify path keys its
// cache so exact-match retrieval can work.
func feedbackFingerprint(fb types.FeedbackSubmission) string {
	if types.IsMediaKind(fb.ContentType) && fb.ImageBase64 != "" {
		if blob, err := engine.DecodeMedia(fb.ImageBase64); err == nil {
			return normalize.FingerprintBytes(blob.Data)
		}
	}
	return normalize.Fingerprint(normalize.Canonical(fb.Content, fb.ContentType))
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func clampByte(score float64) uint8 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return uint8(score)
}
