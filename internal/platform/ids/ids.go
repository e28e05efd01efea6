// Package ids generates collision-resistant record identifiers.
package ids

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

const (
	PrefixWebhook  = "wh_"
	PrefixIndexing = "idx_"
	PrefixRequest  = "req_"
	PrefixLog      = "log_"
)

type Generator interface {
	NewID(prefix string) string
}

type UUID struct{}

func (UUID) NewID(prefix string) string {
	return prefix + uuid.NewString()
}

// ULID produces lexicographically sortable ids. Entropy is monotonic within
// the same millisecond, so the reader is guarded by a mutex.
type ULID struct {
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

func NewULID() *ULID {
	return &ULID{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

func (g *ULID) NewID(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return prefix + ulid.MustNew(ulid.Timestamp(g.now()), g.entropy).String()
}

// New returns the generator for a configured strategy name.
func New(strategy string) (Generator, error) {
	switch strategy {
	case "", "uuid":
		return UUID{}, nil
	case "ulid":
		return NewULID(), nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}
