package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloat32RoundTrip(t *testing.T) {
	for _, v := range []float64{0, 1, -1, 90.5, -179.25, 0.125, 4096} {
		b := PutFloat32(nil, v)
		assert.Len(t, b, 4)
		assert.Equal(t, v, Float32(b))
	}
}

func TestUint32RoundTrip(t *testing.T) {
	b := PutUint32(nil, 0xDEADBEEF)
	assert.Equal(t, []byte{0xEF, 0xBE, 0xAD, 0xDE}, b)
	assert.Equal(t, uint32(0xDEADBEEF), Uint32(b))
}
