// File: internal/platform/crypto/generator.go
package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

// GenerateSecureRandomString creates a cryptographically secure random string.
// n is the number of bytes of randomness; the resulting string is longer due
// to base64 encoding.
func GenerateSecureRandomString(n int) (string, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// IDGenerator produces collision-resistant int64 identifiers. Ids are seeded
// from the current time in milliseconds but strictly increase, so two calls
// within the same millisecond never collide.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
}

// NewIDGenerator creates a generator.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Next returns a new identifier greater than every previously issued one.
func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := time.Now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
