package data

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/truthlenz/truthlenz/src/verifier/types"
)

// maxStoredInput bounds the descriptive input kept inside a cache row.
const maxStoredInput = 1000

// CacheStore is the content-addressable result cache. It is advisory: a
// lookup or store failure degrades to "always recompute" and never fails the
// request it serves.
type CacheStore struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewCacheStore(db *gorm.DB, rdb *redis.Client) *CacheStore {
	return &CacheStore{db: db, rdb: rdb}
}

// Lookup returns the stored result body for a fingerprint, if any.
func (s *CacheStore) Lookup(ctx context.Context, hash string) ([]byte, bool) {
	if s == nil || s.db == nil {
		return nil, false
	}
	var row types.VerificationCache
	err := s.db.WithContext(ctx).First(&row, "content_hash = ?", hash).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Printf("cache: lookup failed: %v", err)
		}
		return nil, false
	}
	return []byte(row.APIResponse), true
}

// Store persists a freshly computed result. The descriptive input is
// truncated for text/URL and replaced by a type tag for media so the payload
// never lands in the row as a clear-text blob.
func (s *CacheStore) Store(ctx context.Context, hash, kind, canonicalInput string, result []byte) {
	if s == nil || s.db == nil {
		return
	}
	row := types.VerificationCache{
		ContentHash:   hash,
		ContentType:   kind,
		OriginalInput: StorageInput(kind, canonicalInput),
		APIResponse:   string(result),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "content_hash"}},
		DoNothing: true,
	}).Create(&row).Error
	if err != nil {
		log.Printf("cache: store failed: %v", err)
	}
}

// BumpHit increments the hit counters as a fire-and-forget side effect.
func (s *CacheStore) BumpHit(hash string) {
	if s == nil {
		return
	}
	go func() {
		ctx := context.Background()
		if s.rdb != nil {
			if err := IncrHit(ctx, s.rdb, hash); err != nil {
				log.Printf("cache: redis hit counter: %v", err)
			}
		}
		if s.db != nil {
			err := s.db.WithContext(ctx).Model(&types.VerificationCache{}).
				Where("content_hash = ?", hash).
				UpdateColumn("hit_count", gorm.Expr("hit_count + 1")).Error
			if err != nil {
				log.Printf("cache: hit count update: %v", err)
			}
		}
	}()
}

// StorageInput derives the bounded descriptive input for a cache row.
func StorageInput(kind, canonicalInput string) string {
	if types.IsMediaKind(kind) {
		return "[Media: " + kind + "]"
	}
	if len(canonicalInput) > maxStoredInput {
		return canonicalInput[:maxStoredInput]
	}
	return canonicalInput
}
