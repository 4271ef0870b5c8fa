package scene

import (
	"crypto/rand"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/oklog/ulid/v2"
)

// Prefix hash parameters. The hash is embedded in every generated animation
// event name, so its length and alphabet are wire constants: changing them
// breaks binary compatibility with already-compiled registries.
const (
	PrefixHashLen      = 4
	PrefixHashAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// IDLen is the encoded length of an entity ID. IDs are written to the
// binary registry as fixed-length raw bytes with no length prefix.
const IDLen = ulid.EncodedSize

// NewID generates a new entity ID (scenes and stages).
func NewID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// NewPrefixHash generates a namespace token for a new project.
// It is generated exactly once at project creation and stable thereafter.
func NewPrefixHash() (string, error) {
	return gonanoid.Generate(PrefixHashAlphabet, PrefixHashLen)
}
