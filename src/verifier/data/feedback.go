package data

import (
	"context"
	"log"

	"gorm.io/gorm"

	"github.com/truthlenz/truthlenz/src/verifier/types"
)

const (
	maxExactMatches  = 3
	maxRecentMatches = 10
	maxStoredContent = 5000
	// maxStoredMedia bounds reference media kept with a correction (base64 chars).
	maxStoredMedia = 700_000
)

// FeedbackStore reads and writes human corrections. Reads are best-effort:
// any failure yields an empty set rather than failing the request.
type FeedbackStore struct {
	db *gorm.DB
}

func NewFeedbackStore(db *gorm.DB) *FeedbackStore {
	return &FeedbackStore{db: db}
}

// Relevant returns corrections for a fingerprint: exact matches first, then
// the most recent corrections for the same content kind as general guidance.
func (s *FeedbackStore) Relevant(ctx context.Context, hash, kind string) []types.VerificationFeedback {
	if s == nil || s.db == nil {
		return nil
	}

	var exact []types.VerificationFeedback
	err := s.db.WithContext(ctx).
		Where("content_hash = ? AND is_correct = ? AND user_correction <> ''", hash, false).
		Limit(maxExactMatches).
		Find(&exact).Error
	if err != nil {
		log.Printf("feedback: exact lookup failed: %v", err)
		return nil
	}
	if len(exact) > 0 {
		return exact
	}

	var recent []types.VerificationFeedback
	err = s.db.WithContext(ctx).
		Where("content_type = ? AND is_correct = ? AND user_correction <> ''", kind, false).
		Order("created_at DESC").
		Limit(maxRecentMatches).
		Find(&recent).Error
	if err != nil {
		log.Printf("feedback: recent lookup failed: %v", err)
		return nil
	}
	return recent
}

// Save persists one validated correction, bounding stored content and media.
func (s *FeedbackStore) Save(ctx context.Context, rec *types.VerificationFeedback) error {
	if len(rec.OriginalContent) > maxStoredContent {
		rec.OriginalContent = rec.OriginalContent[:maxStoredContent]
	}
	if len(rec.MediaBase64) > maxStoredMedia {
		rec.MediaBase64 = ""
	}
	return s.db.WithContext(ctx).Create(rec).Error
}
