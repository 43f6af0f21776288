package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"

	"github.com/OneOfOne/xxhash"
	"github.com/truthlenz/truthlenz/src/verifier/types"
)

// Canonical folds raw input into the stable form used for fingerprinting.
// Text is lower-cased with internal whitespace collapsed; URLs are reduced to
// lower-case scheme+host+path without a trailing slash. Media kinds pass
// through untouched: their identity is the payload itself.
func Canonical(content, kind string) string {
	if types.IsMediaKind(kind) {
		return content
	}

	normalized := strings.Join(strings.Fields(strings.TrimSpace(content)), " ")

	switch kind {
	case types.KindURL:
		u, err := url.Parse(strings.ToLower(normalized))
		if err != nil || u.Host == "" {
			return strings.TrimSuffix(strings.ToLower(normalized), "/")
		}
		return strings.TrimSuffix(u.Scheme+"://"+u.Host+u.Path, "/")
	default:
		return strings.ToLower(normalized)
	}
}

// Fingerprint returns the content-addressable cache key for a canonical
// string. Cryptographic digest on purpose: cache correctness rides on it.
func Fingerprint(canonical string) string {
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

// FingerprintBytes fingerprints a raw media payload.
func FingerprintBytes(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// QuickKey is a cheap non-cryptographic key used only for best-effort
// feedback deduplication. Never use it as a cache key.
func QuickKey(content string) string {
	h := xxhash.NewS64(0)
	_, _ = h.WriteString(strings.ToLower(strings.TrimSpace(content)))
	return strconv.FormatUint(h.Sum64(), 16)
}
