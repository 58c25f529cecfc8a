package schema

import (
	crand "crypto/rand"
	"encoding/hex"
	"io"

	"github.com/google/uuid"
)

// TokenGenerator produces record tokens.
type TokenGenerator interface {
	NewToken() string
}

type uuidTokenGenerator struct {
	rand io.Reader
}

// NewTokenGenerator returns a generator drawing random UUIDs from r and
// rendering them as 32 lowercase hex characters. A nil r uses crypto/rand.
func NewTokenGenerator(r io.Reader) TokenGenerator {
	if r == nil {
		r = crand.Reader
	}
	return &uuidTokenGenerator{rand: r}
}

func (g *uuidTokenGenerator) NewToken() string {
	id, err := uuid.NewRandomFromReader(g.rand)
	if err != nil {
		// exhausted or broken source
		id = uuid.New()
	}
	return hex.EncodeToString(id[:])
}

var defaultTokenGenerator = NewTokenGenerator(nil)

// NewToken returns a fresh token from the default generator.
func NewToken() string {
	return defaultTokenGenerator.NewToken()
}
