package keyhandle

import "sync/atomic"

// Sequential issues 1, 2, 3, ... It is deterministic, which makes it the
// generator of choice in tests.
type Sequential struct {
	last atomic.Uint64
}

func NewSequential() *Sequential {
	return &Sequential{}
}

// NewSequentialFrom returns a generator whose first handle is after+1.
func NewSequentialFrom(after uint64) *Sequential {
	s := &Sequential{}
	s.last.Store(after)
	return s
}

func (s *Sequential) NextHandle() KeyHandle {
	h := s.last.Add(1)
	if h == 0 {
		// wrapped, skip the reserved zero
		h = s.last.Add(1)
	}
	return KeyHandle(h)
}
