package catalog

import (
	"sync"
	"time"
)

// IDGenerator hands out millisecond-timestamp ids that never repeat, even when
// several are requested within the same millisecond.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// Observe records an id issued elsewhere so later ids are allocated past it.
func (g *IDGenerator) Observe(id int64) {
	g.mu.Lock()
	if id > g.last {
		g.last = id
	}
	g.mu.Unlock()
}
