package sim

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"
)

// An IDGenerator hands out event IDs.
type IDGenerator interface {
	Generate() string
}

// SequentialIDGenerator numbers events from 1 up. Two runs that create the
// same events in the same order get the same IDs. It is safe for concurrent
// use.
type SequentialIDGenerator struct {
	next uint64
}

// Generate returns the next number.
func (g *SequentialIDGenerator) Generate() string {
	n := atomic.AddUint64(&g.next, 1)
	return strconv.FormatUint(n, 10)
}

// UniqueIDGenerator returns IDs that are unique across runs and processes,
// for logs that are merged later. The IDs are not deterministic.
type UniqueIDGenerator struct{}

// Generate returns a new xid.
func (UniqueIDGenerator) Generate() string {
	return xid.New().String()
}

var (
	idGeneratorMutex sync.Mutex
	idGenerator      IDGenerator = &SequentialIDGenerator{}
)

// SetIDGenerator replaces the generator used for new events and returns the
// one it replaces.
func SetIDGenerator(g IDGenerator) IDGenerator {
	idGeneratorMutex.Lock()
	defer idGeneratorMutex.Unlock()

	prev := idGenerator
	idGenerator = g

	return prev
}

// GetIDGenerator returns the generator used for new events.
func GetIDGenerator() IDGenerator {
	idGeneratorMutex.Lock()
	defer idGeneratorMutex.Unlock()

	return idGenerator
}
