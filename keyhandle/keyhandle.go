package keyhandle

import (
	"strconv"
	"sync/atomic"
)

// KeyHandle is an opaque, stable identifier for a keyframe.
type KeyHandle uint64

// None is the zero handle. Generators never return it.
const None KeyHandle = 0

func (h KeyHandle) IsNone() bool { return h == None }

func (h KeyHandle) String() string {
	return "kh:" + strconv.FormatUint(uint64(h), 16)
}

// Generator mints new handles. Implementations must be safe for concurrent
// use, must never return None and must not repeat a handle. Curves skip a
// handle they already hold, but a generator that keeps repeating makes them
// panic.
type Generator interface {
	NextHandle() KeyHandle
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func() KeyHandle

func (f GeneratorFunc) NextHandle() KeyHandle { return f() }

var defaultGenerator atomic.Pointer[Generator]

func init() {
	var g Generator = NewSequential()
	defaultGenerator.Store(&g)
}

// Default returns the process wide generator.
func Default() Generator {
	return *defaultGenerator.Load()
}

// SetDefault replaces the process wide generator and returns the previous
// one. A nil g restores a fresh Sequential generator.
func SetDefault(g Generator) Generator {
	if g == nil {
		g = NewSequential()
	}
	return *defaultGenerator.Swap(&g)
}
