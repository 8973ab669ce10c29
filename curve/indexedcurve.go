package curve

import (
	"fmt"
	"iter"

	"github.com/forestrie/go-keycurves/keyhandle"
)

// IndexNone is returned by lookups that find no key.
const IndexNone = -1

// KeyCounter is implemented by whatever owns the ordered keys.
type KeyCounter interface {
	NumKeys() int
}

// IndexedCurve provides handle based access to the keys of an ordered
// collection it does not own. The handle map is a cache built lazily from
// the key count, so the query methods may update it even though they do not
// change the curve.
//
// Staleness is detected by key count only. An owner that reorders or
// replaces keys without changing the count must call Invalidate, or keep the
// map up to date itself through HandleMap.
//
// IndexedCurve is not safe for concurrent use.
type IndexedCurve struct {
	keys      KeyCounter
	generator keyhandle.Generator
	handles   KeyHandleMap
}

// NewIndexedCurve returns an IndexedCurve over keys. Only the Generator of
// the options is used.
func NewIndexedCurve(keys KeyCounter, opts ...Option) *IndexedCurve {
	c := &IndexedCurve{}
	c.Init(keys, NewOptions(opts...).Generator)
	return c
}

// Init binds an embedded IndexedCurve to its owner. gen may be nil.
func (c *IndexedCurve) Init(keys KeyCounter, gen keyhandle.Generator) {
	c.keys = keys
	c.generator = gen
	c.handles.Empty()
}

func (c *IndexedCurve) numKeys() int {
	if c.keys == nil {
		return 0
	}
	return c.keys.NumKeys()
}

// maxHandleAttempts bounds the search for a handle not already on the curve.
const maxHandleAttempts = 64

// nextHandle mints a handle the map does not already hold. Handles restored
// from a snapshot may come from another generator.
func (c *IndexedCurve) nextHandle() keyhandle.KeyHandle {
	gen := c.generator
	if gen == nil {
		gen = keyhandle.Default()
	}
	for range maxHandleAttempts {
		h := gen.NextHandle()
		if _, ok := c.handles.Find(h); !ok && !h.IsNone() {
			return h
		}
	}
	panic(fmt.Errorf("generator repeated handles %d times: %w", maxHandleAttempts, ErrDuplicateKeyHandle))
}

// HandleMap gives key owners direct access to the map, so that inserts and
// removals can keep existing handles valid.
func (c *IndexedCurve) HandleMap() *KeyHandleMap { return &c.handles }

// Invalidate discards every handle. The next query rebuilds the map.
func (c *IndexedCurve) Invalidate() { c.handles.Empty() }

// GetIndexSafe returns the index of handle, or IndexNone when the handle is
// unknown, the map is out of step with the key count, or the mapped index is
// out of range. It never rebuilds the map.
func (c *IndexedCurve) GetIndexSafe(handle keyhandle.KeyHandle) int {
	n := c.numKeys()
	if c.handles.Num() != n {
		return IndexNone
	}
	i, ok := c.handles.Find(handle)
	if !ok || i < 0 || i >= n {
		return IndexNone
	}
	return i
}

// IsKeyHandleValid synchronizes the map with the keys and reports whether
// handle is in it.
func (c *IndexedCurve) IsKeyHandleValid(handle keyhandle.KeyHandle) bool {
	c.EnsureAllIndicesHaveHandles()
	_, ok := c.handles.Find(handle)
	return ok
}

// KeyHandles synchronizes the map and yields every (handle, index) pair in
// no particular order. Mutating the curve invalidates the sequence.
func (c *IndexedCurve) KeyHandles() iter.Seq2[keyhandle.KeyHandle, int] {
	c.EnsureAllIndicesHaveHandles()
	return c.handles.All()
}

// OrderedKeyHandles returns the handle of every key, in key order.
func (c *IndexedCurve) OrderedKeyHandles() []keyhandle.KeyHandle {
	c.EnsureAllIndicesHaveHandles()
	out := make([]keyhandle.KeyHandle, c.numKeys())
	for h, i := range c.handles.All() {
		if i >= 0 && i < len(out) {
			out[i] = h
		}
	}
	return out
}

// GetIndex is the unchecked lookup. The handle must be known, otherwise it
// panics with an error wrapping ErrUnknownKeyHandle.
func (c *IndexedCurve) GetIndex(handle keyhandle.KeyHandle) int {
	i, ok := c.handles.Find(handle)
	if !ok {
		panic(fmt.Errorf("%v: %w", handle, ErrUnknownKeyHandle))
	}
	return i
}

// GetKeyHandle returns the handle for the key at index, minting one if
// needed. An index outside [0, NumKeys()) panics with an error wrapping
// ErrKeyIndexRange.
func (c *IndexedCurve) GetKeyHandle(index int) keyhandle.KeyHandle {
	if n := c.numKeys(); index < 0 || index >= n {
		panic(fmt.Errorf("index %d, keys %d: %w", index, n, ErrKeyIndexRange))
	}
	c.EnsureAllIndicesHaveHandles()
	c.EnsureIndexHasAHandle(index)
	h, _ := c.handles.FindKey(index)
	return h
}

// EnsureAllIndicesHaveHandles rebuilds the map from scratch when its size
// differs from the key count. Handles issued before a rebuild are lost. When
// the sizes match the map is trusted as is.
func (c *IndexedCurve) EnsureAllIndicesHaveHandles() {
	n := c.numKeys()
	if c.handles.Num() == n {
		return
	}
	c.handles.Empty()
	for i := 0; i < n; i++ {
		c.EnsureIndexHasAHandle(i)
	}
}

// EnsureIndexHasAHandle mints a handle for index unless it already has one.
func (c *IndexedCurve) EnsureIndexHasAHandle(index int) {
	if _, ok := c.handles.FindKey(index); ok {
		return
	}
	c.handles.Add(c.nextHandle(), index)
}

// indexOf synchronizes and returns the index of handle or IndexNone.
func (c *IndexedCurve) indexOf(handle keyhandle.KeyHandle) int {
	if !c.IsKeyHandleValid(handle) {
		return IndexNone
	}
	return c.GetIndex(handle)
}
