package arm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolAddObjectDedups(t *testing.T) {
	p := newPool()
	type handle struct{ n int }
	a := &handle{1}
	b := &handle{2}

	idx := p.AddObject(a)
	require.Equal(t, int32(1), idx)
	require.Equal(t, 1, p.Len())

	// Re-adding the same handle finds it and returns its 0-based index,
	// not the post-append length.
	again := p.AddObject(a)
	require.Equal(t, int32(0), again)
	require.Equal(t, 1, p.Len())

	idx2 := p.AddObject(b)
	require.Equal(t, int32(2), idx2)
	require.Equal(t, 2, p.Len())

	again2 := p.AddObject(b)
	require.Equal(t, int32(1), again2)
}

func TestPoolAddExternalLabelNeverDedups(t *testing.T) {
	p := newPool()
	i1 := p.AddExternalLabel(0x1000)
	i2 := p.AddExternalLabel(0x1000)
	require.Equal(t, int32(1), i1)
	require.Equal(t, int32(2), i2)
	require.Equal(t, 2, p.Len())
}

func TestPoolAddExternalLabelAlignmentPanics(t *testing.T) {
	p := newPool()
	require.Panics(t, func() { p.AddExternalLabel(0x1001) })
	require.NotPanics(t, func() { p.AddExternalLabel(0x1002) })
}

func TestPoolOffset(t *testing.T) {
	require.Equal(t, poolHeaderOffset-heapObjectTag, PoolOffset(0))
	require.Equal(t, poolHeaderOffset+wordSize-heapObjectTag, PoolOffset(1))
}

func TestPoolEntries(t *testing.T) {
	p := newPool()
	p.AddObject("obj")
	p.AddExternalLabel(0x2000)
	entries := p.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, "obj", entries[0].Object)
	require.False(t, entries[0].External)
	require.True(t, entries[1].External)
	require.Equal(t, int32(0x2000>>smiTagShift), entries[1].BoxedAddress)
}
