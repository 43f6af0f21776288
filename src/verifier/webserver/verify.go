package webserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/truthlenz/truthlenz/src/logging"
	"github.com/truthlenz/truthlenz/src/verifier/engine"
	"github.com/truthlenz/truthlenz/src/verifier/types"
)

// Verifier is the engine surface the HTTP handlers need.
type Verifier interface {
	Verify(ctx context.Context, req types.VerificationRequest) (json.RawMessage, error)
	ReviewCorrection(ctx context.Context, fb types.FeedbackSubmission) (engine.CorrectionReview, error)
}

type Verify struct {
	eng        Verifier
	maxPayload int64
}

func NewVerify(eng Verifier, maxPayload int64) Verify {
	return Verify{eng: eng, maxPayload: maxPayload}
}

func (h Verify) Handle(c *gin.Context) {
	// Oversized payloads are rejected before any work is done.
	if c.Request.ContentLength > h.maxPayload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("Payload too large. Please keep uploads under %d MB.", h.maxPayload/(1024*1024)),
		})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxPayload)

	var req types.VerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Payload too large."})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := validate(req); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	body, err := h.eng.Verify(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrBadMedia):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case logging.IsRateLimit(err):
			// Surfaced as 429 so the caller can switch providers or models.
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "Upstream model provider reported rate exhaustion.",
				"details": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Verification failed.",
				"details": err.Error(),
			})
		}
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}

// validate enforces the request invariants: media kinds need a payload, text
// kinds need content. A media request without its payload is an error, never
// silently coerced into a text request.
func validate(req types.VerificationRequest) string {
	if !types.ValidKind(req.Type) {
		return fmt.Sprintf("unsupported content type %q", req.Type)
	}
	if types.IsMediaKind(req.Type) {
		if req.Media() == "" {
			return fmt.Sprintf("%s verification requires a media payload", req.Type)
		}
		return ""
	}
	if strings.TrimSpace(req.Content) == "" {
		return "content must not be empty"
	}
	return ""
}
