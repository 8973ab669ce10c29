package keyhandle

import (
	"sync"
	"testing"

	"github.com/forestrie/go-keycurves/keyhandle/snowflakeid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequential(t *testing.T) {
	g := NewSequential()
	assert.Equal(t, KeyHandle(1), g.NextHandle())
	assert.Equal(t, KeyHandle(2), g.NextHandle())

	g = NewSequentialFrom(100)
	assert.Equal(t, KeyHandle(101), g.NextHandle())
}

func TestSequential_SkipsZeroOnWrap(t *testing.T) {
	g := NewSequentialFrom(^uint64(0) - 1)
	assert.Equal(t, KeyHandle(^uint64(0)), g.NextHandle())
	assert.Equal(t, KeyHandle(1), g.NextHandle())
}

func TestSequential_Concurrent(t *testing.T) {
	g := NewSequential()

	const n = 64
	var mu sync.Mutex
	seen := map[KeyHandle]bool{}
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				h := g.NextHandle()
				mu.Lock()
				seen[h] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, n*100)
}

func TestGenerators_NeverNone(t *testing.T) {
	sf, err := NewSnowflake(snowflakeid.Config{CommitmentEpoch: 1, AllowSpins: snowflakeid.MaxSpins})
	require.NoError(t, err)

	tests := []struct {
		name string
		gen  Generator
	}{
		{"sequential", NewSequential()},
		{"random", NewRandom()},
		{"snowflake", sf},
		{"func", counterFunc()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 1000; i++ {
				require.False(t, tt.gen.NextHandle().IsNone())
			}
		})
	}
}

func counterFunc() GeneratorFunc {
	var n KeyHandle
	return func() KeyHandle {
		n += 2
		return n
	}
}

func TestRandom_Distinct(t *testing.T) {
	g := NewRandom()
	seen := map[KeyHandle]bool{}
	for i := 0; i < 10000; i++ {
		h := g.NextHandle()
		require.False(t, seen[h])
		seen[h] = true
	}
}

func TestSnowflake_Ordered(t *testing.T) {
	g, err := NewSnowflake(snowflakeid.Config{CommitmentEpoch: 1, WorkerID: 9, AllowSpins: snowflakeid.MaxSpins})
	require.NoError(t, err)

	a := g.NextHandle()
	b := g.NextHandle()
	assert.Greater(t, uint64(b), uint64(a))
	assert.False(t, g.IssuedAt(b).Before(g.IssuedAt(a)))
}

func TestNewSnowflake_BadConfig(t *testing.T) {
	_, err := NewSnowflake(snowflakeid.Config{WorkerCIDR: "0.0.0.0/8", HostIP: "10.0.0.1"})
	assert.ErrorIs(t, err, snowflakeid.ErrMaskRange)
}

func TestSetDefault(t *testing.T) {
	prev := SetDefault(GeneratorFunc(func() KeyHandle { return 7 }))
	defer SetDefault(prev)

	assert.Equal(t, KeyHandle(7), Default().NextHandle())

	SetDefault(nil)
	assert.Equal(t, KeyHandle(1), Default().NextHandle())
}

func TestKeyHandle_String(t *testing.T) {
	assert.Equal(t, "kh:ff", KeyHandle(255).String())
	assert.True(t, None.IsNone())
}
