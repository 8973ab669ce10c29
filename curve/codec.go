package curve

import (
	commoncbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/fxamacker/cbor/v2"
)

// NewCodec returns the codec used by both the persistent and the
// transactional curve encodings. Encoding is core deterministic, so the same
// curve always encodes to the same bytes, and floats are shortened when that
// loses nothing.
func NewCodec() (commoncbor.CBORCodec, error) {
	encOpts := commoncbor.NewDeterministicEncOpts()
	encOpts.ShortestFloat = cbor.ShortestFloat16
	codec, err := commoncbor.NewCBORCodec(encOpts, commoncbor.NewDeterministicDecOpts())
	if err != nil {
		return commoncbor.CBORCodec{}, err
	}
	return codec, nil
}

var codec = mustCodec()

func mustCodec() commoncbor.CBORCodec {
	c, err := NewCodec()
	if err != nil {
		panic(err)
	}
	return c
}
