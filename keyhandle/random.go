package keyhandle

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// Random derives handles from random (v4) uuids. The 64 bit result is not
// guaranteed unique, but a collision needs ~2^32 live handles.
type Random struct{}

func NewRandom() Random { return Random{} }

func (Random) NextHandle() KeyHandle {
	for {
		id := uuid.New()
		// fold the halves so the fixed version and variant bits mix with random ones
		h := binary.BigEndian.Uint64(id[0:8]) ^ binary.BigEndian.Uint64(id[8:16])
		if h != 0 {
			return KeyHandle(h)
		}
	}
}
