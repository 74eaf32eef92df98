package bitstream_test

import (
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/xorz/bitstream"
)

func TestWriteRead_RoundTrip(t *testing.T) {
	w := bitstream.NewWriter()
	w.WriteBits(math.Float64bits(1.0), 64)
	w.WriteBits(0b1011, 4)

	words, _ := w.Close()
	r := bitstream.NewReader(words)

	v, err := r.ReadBits(64)
	require.NoError(t, err)
	require.Equal(t, math.Float64bits(1.0), v)

	v, err = r.ReadBits(4)
	require.NoError(t, err)
	require.Equal(t, uint64(0b1011), v)

	// The remaining 60 bits in the second word are zero padding, and
	// reading them must succeed (not EOF) since they're still inside the
	// buffered words.
	v, err = r.ReadBits(60)
	require.NoError(t, err)
	require.Equal(t, uint64(0), v)

	// Now we've exhausted both words; any further read is EOF.
	_, err = r.ReadBits(1)
	require.ErrorIs(t, err, io.EOF)
}

func TestReader_ReadBit(t *testing.T) {
	w := bitstream.NewWriter()
	for i := 0; i < 8; i++ {
		w.WriteBit(uint64(i % 2))
	}
	words, _ := w.Close()

	r := bitstream.NewReader(words)
	for i := 0; i < 8; i++ {
		bit, err := r.ReadBit()
		require.NoError(t, err)
		require.Equal(t, uint64(i%2), bit)
	}
}

func TestReader_EOFOnEmptyInput(t *testing.T) {
	r := bitstream.NewReader(nil)

	_, err := r.ReadBit()
	require.ErrorIs(t, err, io.EOF)

	_, err = r.ReadBits(1)
	require.ErrorIs(t, err, io.EOF)
}

func TestReader_ReadBitsZeroIsNoOp(t *testing.T) {
	r := bitstream.NewReader(nil)
	v, err := r.ReadBits(0)
	require.NoError(t, err)
	require.Equal(t, uint64(0), v)
}

func TestReader_MultiWordSplit(t *testing.T) {
	w := bitstream.NewWriter()
	// A single 64-bit field straddles a word boundary once 1 bit already
	// precedes it, exercising the reader's multi-word accumulation path.
	w.WriteBits(0x1, 1)
	w.WriteBits(math.MaxUint64, 64)
	w.WriteBits(0x5, 5)

	words, bits := w.Close()
	require.Equal(t, 70, bits)

	r := bitstream.NewReader(words)
	first, err := r.ReadBits(1)
	require.NoError(t, err)
	require.Equal(t, uint64(1), first)

	mid, err := r.ReadBits(64)
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxUint64), mid)

	last, err := r.ReadBits(5)
	require.NoError(t, err)
	require.Equal(t, uint64(0x5), last)
}
