package ids

import (
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

// New genera un ULID: identificador único, ordenable lexicográficamente por
// tiempo de creación y sin contador central. Seguro para uso concurrente.
func New() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// IsValid verifica que s sea un ULID bien formado (26 caracteres Crockford base32).
func IsValid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
