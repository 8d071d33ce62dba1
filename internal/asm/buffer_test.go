package asm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferEmitLoadStore(t *testing.T) {
	b := NewBuffer(0)
	require.Equal(t, 0, b.Size())

	p0 := b.EmitInt32(0x11223344)
	require.Equal(t, 0, p0)
	require.Equal(t, 4, b.Size())

	p1 := b.EmitInt32(-1)
	require.Equal(t, 4, p1)
	require.Equal(t, 8, b.Size())

	require.Equal(t, int32(0x11223344), b.LoadInt32(p0))
	require.Equal(t, int32(-1), b.LoadInt32(p1))

	b.StoreInt32(p0, 0x55667788)
	require.Equal(t, int32(0x55667788), b.LoadInt32(p0))
	// Store must not disturb neighboring words.
	require.Equal(t, int32(-1), b.LoadInt32(p1))

	require.Equal(t, []byte{0x88, 0x77, 0x66, 0x55, 0xff, 0xff, 0xff, 0xff}, b.Bytes())
}

func TestBufferGrowsPastInitialCapacity(t *testing.T) {
	b := NewBuffer(4)
	for i := 0; i < 64; i++ {
		b.EmitInt32(int32(i))
	}
	require.Equal(t, 64*4, b.Size())
	for i := 0; i < 64; i++ {
		require.Equal(t, int32(i), b.LoadInt32(i*4))
	}
}
