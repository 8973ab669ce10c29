package curve

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/forestrie/go-keycurves/keyhandle"
)

type timedKey interface {
	keyTime() float64
}

// keySeq stores keys sorted by time and keeps the embedded handle map in step
// with every insert and removal, so handles survive edits elsewhere on the
// curve.
type keySeq[K timedKey] struct {
	IndexedCurve
	keys []K
}

func (s *keySeq[K]) NumKeys() int { return len(s.keys) }

func (s *keySeq[K]) bind() {
	if s.IndexedCurve.keys == nil {
		s.IndexedCurve.keys = s
	}
}

// insertIndex returns the index of the first key whose time is not before t.
func (s *keySeq[K]) insertIndex(t float64) int {
	return sort.Search(len(s.keys), func(i int) bool {
		return s.keys[i].keyTime() >= t
	})
}

// insertKey adds k in time order. A None handle mints a fresh one.
func (s *keySeq[K]) insertKey(k K, handle keyhandle.KeyHandle) keyhandle.KeyHandle {
	s.bind()
	s.EnsureAllIndicesHaveHandles()
	if handle.IsNone() {
		handle = s.nextHandle()
	} else if _, ok := s.handles.Find(handle); ok {
		panic(fmt.Errorf("%v: %w", handle, ErrDuplicateKeyHandle))
	}
	i := s.insertIndex(k.keyTime())
	s.keys = slices.Insert(s.keys, i, k)
	s.handles.InsertAt(handle, i)
	return handle
}

func (s *keySeq[K]) removeAt(i int) {
	s.bind()
	s.EnsureAllIndicesHaveHandles()
	s.keys = slices.Delete(s.keys, i, i+1)
	s.handles.RemoveAt(i)
}

// findKey returns the handle of the key nearest to t within tolerance.
func (s *keySeq[K]) findKey(t, tolerance float64) keyhandle.KeyHandle {
	i := s.findIndex(t, tolerance)
	if i == IndexNone {
		return keyhandle.None
	}
	return s.GetKeyHandle(i)
}

func (s *keySeq[K]) findIndex(t, tolerance float64) int {
	s.bind()
	i := s.insertIndex(t - tolerance)
	best, bestDist := IndexNone, math.Inf(1)
	for ; i < len(s.keys); i++ {
		d := math.Abs(s.keys[i].keyTime() - t)
		if d > tolerance {
			break
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// replaceKeys swaps in a new key slice and rebuilds every handle.
func (s *keySeq[K]) replaceKeys(keys []K) {
	s.bind()
	s.keys = keys
	s.Invalidate()
	s.EnsureAllIndicesHaveHandles()
}

func (s *keySeq[K]) resetKeys() {
	s.bind()
	s.keys = nil
	s.Invalidate()
}

// sortKeys restores time order after an edit that may have broken it, such
// as a negative scale. Handles follow their keys.
func (s *keySeq[K]) sortKeys() {
	s.EnsureAllIndicesHaveHandles()
	handles := s.OrderedKeyHandles()
	order := make([]int, len(s.keys))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return s.keys[order[a]].keyTime() < s.keys[order[b]].keyTime()
	})
	keys := make([]K, len(s.keys))
	s.handles.Empty()
	for to, from := range order {
		keys[to] = s.keys[from]
		s.handles.Add(handles[from], to)
	}
	s.keys = keys
}

// checkKeys rejects decoded keys with non finite times or out of time order.
func checkKeys[K timedKey](keys []K) error {
	for i, k := range keys {
		t := k.keyTime()
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return fmt.Errorf("key %d time %v: %w", i, t, ErrKeyTimeInvalid)
		}
		if i > 0 && t < keys[i-1].keyTime() {
			return fmt.Errorf("key %d: %w", i, ErrKeysNotSorted)
		}
	}
	return nil
}
