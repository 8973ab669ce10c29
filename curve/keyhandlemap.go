package curve

import (
	"fmt"
	"iter"
	"slices"

	"github.com/forestrie/go-keycurves/keyhandle"
)

// KeyHandleMap maps stable key handles to positions in a key array.
//
// Used correctly the map is a bijection. Add does not check that the index
// is unused, keeping it that way is the caller's job. The zero value is an
// empty map ready to use.
//
// The map has no persistent encoding. MarshalTransaction is for undo buffers
// only; handles do not survive a save and load.
type KeyHandleMap struct {
	handleToIndex map[keyhandle.KeyHandle]int

	// indexToHandle only holds entries that agree with handleToIndex. When
	// the two maps have the same length the mapping is a bijection.
	indexToHandle map[int]keyhandle.KeyHandle
}

func (m *KeyHandleMap) init() {
	if m.handleToIndex == nil {
		m.handleToIndex = make(map[keyhandle.KeyHandle]int)
		m.indexToHandle = make(map[int]keyhandle.KeyHandle)
	}
}

// Add inserts or overwrites the mapping for handle.
func (m *KeyHandleMap) Add(handle keyhandle.KeyHandle, index int) {
	m.init()
	if old, ok := m.handleToIndex[handle]; ok && m.indexToHandle[old] == handle {
		delete(m.indexToHandle, old)
	}
	m.handleToIndex[handle] = index
	m.indexToHandle[index] = handle
}

// Remove deletes the mapping for handle, if any.
func (m *KeyHandleMap) Remove(handle keyhandle.KeyHandle) {
	index, ok := m.handleToIndex[handle]
	if !ok {
		return
	}
	delete(m.handleToIndex, handle)
	if m.indexToHandle[index] == handle {
		delete(m.indexToHandle, index)
	}
}

// Find returns the index mapped to handle.
func (m *KeyHandleMap) Find(handle keyhandle.KeyHandle) (int, bool) {
	index, ok := m.handleToIndex[handle]
	return index, ok
}

// FindKey returns a handle mapped to index. If Add was misused and several
// handles share the index, which one is returned is unspecified.
func (m *KeyHandleMap) FindKey(index int) (keyhandle.KeyHandle, bool) {
	if h, ok := m.indexToHandle[index]; ok {
		return h, true
	}
	if len(m.indexToHandle) == len(m.handleToIndex) {
		return keyhandle.None, false
	}
	// only reachable when the bijection was broken by the caller
	for h, i := range m.handleToIndex {
		if i == index {
			return h, true
		}
	}
	return keyhandle.None, false
}

func (m *KeyHandleMap) Num() int { return len(m.handleToIndex) }

// Empty removes every mapping.
func (m *KeyHandleMap) Empty() {
	clear(m.handleToIndex)
	clear(m.indexToHandle)
}

// All yields every (handle, index) pair in no particular order. The sequence
// may be ranged over any number of times, but not across a mutation.
func (m *KeyHandleMap) All() iter.Seq2[keyhandle.KeyHandle, int] {
	return func(yield func(keyhandle.KeyHandle, int) bool) {
		for h, i := range m.handleToIndex {
			if !yield(h, i) {
				return
			}
		}
	}
}

// Equal reports whether both maps hold exactly the same pairs.
func (m *KeyHandleMap) Equal(other *KeyHandleMap) bool {
	if m.Num() != other.Num() {
		return false
	}
	for h, i := range m.handleToIndex {
		j, ok := other.handleToIndex[h]
		if !ok || i != j {
			return false
		}
	}
	return true
}

// InsertAt makes room for a key inserted at index, shifting every mapped
// index >= index up by one, then maps handle to index.
func (m *KeyHandleMap) InsertAt(handle keyhandle.KeyHandle, index int) {
	m.shift(index, 1)
	m.Add(handle, index)
}

// RemoveAt drops the handle mapped to index and shifts every mapped index
// above it down by one.
func (m *KeyHandleMap) RemoveAt(index int) {
	if h, ok := m.FindKey(index); ok {
		m.Remove(h)
	}
	m.shift(index+1, -1)
}

func (m *KeyHandleMap) shift(from, delta int) {
	if len(m.handleToIndex) == 0 {
		return
	}
	for h, i := range m.handleToIndex {
		if i >= from {
			m.handleToIndex[h] = i + delta
		}
	}
	clear(m.indexToHandle)
	for h, i := range m.handleToIndex {
		m.indexToHandle[i] = h
	}
}

// handleRecord is the transactional encoding of one map entry.
type handleRecord struct {
	_      struct{} `cbor:",toarray"`
	Handle uint64
	Index  int
}

// records returns the entries ordered by index, then handle.
func (m *KeyHandleMap) records() []handleRecord {
	recs := make([]handleRecord, 0, len(m.handleToIndex))
	for h, i := range m.handleToIndex {
		recs = append(recs, handleRecord{Handle: uint64(h), Index: i})
	}
	slices.SortFunc(recs, func(a, b handleRecord) int {
		if a.Index != b.Index {
			return a.Index - b.Index
		}
		switch {
		case a.Handle < b.Handle:
			return -1
		case a.Handle > b.Handle:
			return 1
		}
		return 0
	})
	return recs
}

// restore replaces the contents with recs. When numKeys >= 0 the records
// must be a bijection over [0, numKeys).
func (m *KeyHandleMap) restore(recs []handleRecord, numKeys int) error {
	if numKeys >= 0 {
		if len(recs) != numKeys {
			return fmt.Errorf("%d records for %d keys: %w", len(recs), numKeys, ErrHandleRecordInvalid)
		}
		seen := make(map[int]bool, len(recs))
		seenHandle := make(map[uint64]bool, len(recs))
		for _, r := range recs {
			if r.Handle == 0 || r.Index < 0 || r.Index >= numKeys || seen[r.Index] || seenHandle[r.Handle] {
				return fmt.Errorf("record %x:%d: %w", r.Handle, r.Index, ErrHandleRecordInvalid)
			}
			seen[r.Index] = true
			seenHandle[r.Handle] = true
		}
	}
	m.init()
	m.Empty()
	for _, r := range recs {
		m.Add(keyhandle.KeyHandle(r.Handle), r.Index)
	}
	return nil
}

// MarshalTransaction encodes the map for an undo buffer.
func (m *KeyHandleMap) MarshalTransaction() ([]byte, error) {
	return codec.MarshalCBOR(m.records())
}

// UnmarshalTransaction replaces the map with one produced by
// MarshalTransaction.
func (m *KeyHandleMap) UnmarshalTransaction(data []byte) error {
	var recs []handleRecord
	if err := codec.UnmarshalInto(data, &recs); err != nil {
		return err
	}
	return m.restore(recs, -1)
}
