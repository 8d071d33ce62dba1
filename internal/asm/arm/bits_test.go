package arm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsAligned(t *testing.T) {
	require.True(t, isAligned(0, 2))
	require.True(t, isAligned(4, 2))
	require.True(t, isAligned(8, 2))
	require.False(t, isAligned(1, 2))
	require.False(t, isAligned(6, 2))
}

func TestIsAbsoluteUint(t *testing.T) {
	require.True(t, isAbsoluteUint(8, 255))
	require.True(t, isAbsoluteUint(8, -255))
	require.False(t, isAbsoluteUint(8, 256))
	require.False(t, isAbsoluteUint(8, -256))
}

func TestIsInt(t *testing.T) {
	require.True(t, isInt(8, 127))
	require.True(t, isInt(8, -128))
	require.False(t, isInt(8, 128))
	require.False(t, isInt(8, -129))
}

func TestCountOneBits(t *testing.T) {
	require.Equal(t, uint(0), countOneBits(0))
	require.Equal(t, uint(1), countOneBits(1))
	require.Equal(t, uint(8), countOneBits(0xff))
	require.Equal(t, uint(32), countOneBits(0xffffffff))
}

func TestLowHigh16Bits(t *testing.T) {
	require.Equal(t, uint16(0x5678), low16Bits(0x12345678))
	require.Equal(t, uint16(0x1234), high16Bits(0x12345678))
}

func TestRotateRight32(t *testing.T) {
	require.Equal(t, uint32(0x00000001), rotateRight32(0x00000001, 0))
	require.Equal(t, uint32(0x80000000), rotateRight32(0x00000001, 1))
	require.Equal(t, uint32(0x000000ff), rotateRight32(0xff000000, 24))
}
