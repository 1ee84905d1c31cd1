package draft

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces experience entry identifiers.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random UUIDv4 identifiers.
type UUIDGenerator struct{}

// NewID returns a new random identifier.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequenceGenerator issues "1", "2", "3", ... Useful where ids must be predictable.
type SequenceGenerator struct {
	next atomic.Int64
}

// NewID returns the next number in the sequence.
func (g *SequenceGenerator) NewID() string {
	return strconv.FormatInt(g.next.Add(1), 10)
}
