package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCodec(t *testing.T) {
	c, err := NewCodec()
	require.NoError(t, err)

	// lossless floats use the shortest width
	data, err := c.MarshalCBOR(1.5)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xf9, 0x3e, 0x00}, data)

	// {1: 1, 1: 1}
	var r richCurveRecord
	assert.Error(t, c.UnmarshalInto([]byte{0xa2, 0x01, 0x01, 0x01, 0x01}, &r))
}
