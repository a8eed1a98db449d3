package meta

import (
	"sync"

	"github.com/coregx/linematch/backtrack"
)

// capturePool manages capture buffers for concurrent searches on one Engine.
// Each search takes its own buffer, so the Engine itself stays read-only.
//
// Usage pattern:
//
//	caps := e.captures.get()
//	defer e.captures.put(caps)
type capturePool struct {
	pool sync.Pool

	mode   backtrack.Mode
	groups int
}

func newCapturePool(mode backtrack.Mode, groups int) *capturePool {
	p := &capturePool{
		mode:   mode,
		groups: groups,
	}
	p.pool = sync.Pool{
		New: func() any {
			return backtrack.NewCaptures(p.mode, p.groups)
		},
	}
	return p
}

func (p *capturePool) get() *backtrack.Captures {
	return p.pool.Get().(*backtrack.Captures)
}

// put resets caps and returns it to the pool.
func (p *capturePool) put(caps *backtrack.Captures) {
	if caps == nil {
		return
	}
	caps.Reset()
	p.pool.Put(caps)
}
