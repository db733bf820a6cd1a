package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// ArtifactKeyOpts are the render options that change the output bytes.
type ArtifactKeyOpts struct {
	Kind     string // timeline or nodelink
	Format   string // svg, png, pdf, dot
	Width    float64
	Height   float64
	Language string
	From     string
	To       string
	Detailed bool

	Margin      [4]float64 // top, right, bottom, left
	Interactive bool
	Background  string
	PNGScale    float64
}

// ArtifactKey returns the cache key of a rendering of the graph whose bytes
// hash to graphHash.
func ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
//
// Parts are written in Go syntax, which spells out NaN and ±Inf instead of
// failing on them the way JSON does.
func hashKey(prefix string, parts ...any) string {
	h := sha256.New()
	for _, p := range parts {
		fmt.Fprintf(h, "%#v\x00", p)
	}
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(h.Sum(nil)))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// keyType returns the prefix of a key built by hashKey, for metrics labels.
func keyType(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return "other"
}
