package curve

import (
	"testing"

	"github.com/forestrie/go-keycurves/keyhandle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyHandleMap_ZeroValue(t *testing.T) {
	var m KeyHandleMap
	assert.Equal(t, 0, m.Num())

	_, ok := m.Find(1)
	assert.False(t, ok)
	_, ok = m.FindKey(0)
	assert.False(t, ok)

	m.Remove(1)
	m.Empty()

	m.Add(1, 0)
	assert.Equal(t, 1, m.Num())
}

func TestKeyHandleMap_AddOverwrites(t *testing.T) {
	var m KeyHandleMap
	m.Add(10, 0)
	m.Add(10, 3)

	i, ok := m.Find(10)
	require.True(t, ok)
	assert.Equal(t, 3, i)

	_, ok = m.FindKey(0)
	assert.False(t, ok, "stale reverse entry must go")
	h, ok := m.FindKey(3)
	require.True(t, ok)
	assert.Equal(t, keyhandle.KeyHandle(10), h)
	assert.Equal(t, 1, m.Num())
}

func TestKeyHandleMap_Remove(t *testing.T) {
	var m KeyHandleMap
	m.Add(1, 0)
	m.Add(2, 1)

	m.Remove(1)
	m.Remove(99)

	assert.Equal(t, 1, m.Num())
	_, ok := m.Find(1)
	assert.False(t, ok)
	_, ok = m.FindKey(0)
	assert.False(t, ok)
}

func TestKeyHandleMap_FindKeyWithDuplicateIndex(t *testing.T) {
	var m KeyHandleMap
	m.Add(1, 0)
	m.Add(2, 0) // caller misuse, two handles on one index

	m.Remove(2)

	h, ok := m.FindKey(0)
	require.True(t, ok)
	assert.Equal(t, keyhandle.KeyHandle(1), h)
}

func TestKeyHandleMap_AllIsRestartable(t *testing.T) {
	var m KeyHandleMap
	for i := 0; i < 5; i++ {
		m.Add(keyhandle.KeyHandle(100+i), i)
	}

	collect := func() map[keyhandle.KeyHandle]int {
		got := map[keyhandle.KeyHandle]int{}
		for h, i := range m.All() {
			got[h] = i
		}
		return got
	}
	first := collect()
	second := collect()
	assert.Len(t, first, 5)
	assert.Equal(t, first, second)

	n := 0
	for range m.All() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestKeyHandleMap_Equal(t *testing.T) {
	pairs := []struct {
		h keyhandle.KeyHandle
		i int
	}{{7, 0}, {3, 1}, {9, 2}}

	var a, b, partial, different KeyHandleMap
	for _, p := range pairs {
		a.Add(p.h, p.i)
	}
	for j := len(pairs) - 1; j >= 0; j-- {
		b.Add(pairs[j].h, pairs[j].i)
	}
	for _, p := range pairs[:2] {
		partial.Add(p.h, p.i)
	}
	different.Add(7, 0)
	different.Add(3, 2)
	different.Add(9, 1)

	assert.True(t, a.Equal(&b))
	assert.True(t, b.Equal(&a))
	assert.False(t, a.Equal(&partial))
	assert.False(t, partial.Equal(&a))
	assert.False(t, a.Equal(&different))
}

func TestKeyHandleMap_InsertAtRemoveAt(t *testing.T) {
	var m KeyHandleMap
	m.Add(1, 0)
	m.Add(2, 1)
	m.Add(3, 2)

	m.InsertAt(4, 1)
	for h, want := range map[keyhandle.KeyHandle]int{1: 0, 4: 1, 2: 2, 3: 3} {
		got, ok := m.Find(h)
		require.True(t, ok)
		assert.Equal(t, want, got, "handle %v", h)
		back, ok := m.FindKey(want)
		require.True(t, ok)
		assert.Equal(t, h, back)
	}

	m.RemoveAt(0)
	for h, want := range map[keyhandle.KeyHandle]int{4: 0, 2: 1, 3: 2} {
		got, ok := m.Find(h)
		require.True(t, ok)
		assert.Equal(t, want, got, "handle %v", h)
	}
	_, ok := m.Find(1)
	assert.False(t, ok)
	assert.Equal(t, 3, m.Num())
}

func TestKeyHandleMap_Transaction(t *testing.T) {
	var m KeyHandleMap
	m.Add(11, 2)
	m.Add(12, 0)
	m.Add(13, 1)

	data, err := m.MarshalTransaction()
	require.NoError(t, err)

	again, err := m.MarshalTransaction()
	require.NoError(t, err)
	assert.Equal(t, data, again, "encoding is deterministic")

	var got KeyHandleMap
	require.NoError(t, got.UnmarshalTransaction(data))
	assert.True(t, got.Equal(&m))

	assert.Error(t, got.UnmarshalTransaction([]byte{0xff}))
}
