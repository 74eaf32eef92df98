package bitstream_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/xorz/bitstream"
)

func TestWriter_WriteBit(t *testing.T) {
	w := bitstream.NewWriter()

	// 0101_0101 followed by a single 1 bit, left-aligned and padded with
	// zeros in the low bits to a full word.
	for i := 0; i < 8; i++ {
		w.WriteBit(uint64(i % 2))
	}
	w.WriteBit(1)

	words, bits := w.Close()
	require.Len(t, words, 1)
	require.Equal(t, 9, bits)
	require.Equal(t, uint64(0b0101_0101_1)<<(64-9), words[0])
}

func TestWriter_WriteBits_PacksFieldsInOrder(t *testing.T) {
	w := bitstream.NewWriter()

	w.WriteBits(1, 4)  // 0001
	w.WriteBits(0, 16) // 16 zero bits
	w.WriteBits(25, 5) // 11001
	w.WriteBits(69, 7) // 1000101

	// 4 + 16 + 5 + 7 = 32 bits written so far, still within the first word.
	words, bits := w.Close()
	require.Equal(t, 32, bits)
	require.Len(t, words, 1)

	expected := uint64(0b0001) << 28
	expected |= uint64(0) << 12
	expected |= uint64(0b11001) << 7
	expected |= uint64(0b1000101)
	require.Equal(t, expected<<32, words[0])
}

func TestWriter_WriteBits_ZeroLengthIsNoOp(t *testing.T) {
	w := bitstream.NewWriter()
	w.WriteBits(1, 4)
	w.WriteBits(0xDEADBEEF, 0)

	words, bits := w.Close()
	require.Equal(t, 4, bits)
	require.Equal(t, uint64(1)<<60, words[0])
}

func TestWriter_CloseFlushesPartialWord(t *testing.T) {
	w := bitstream.NewWriter()
	w.WriteBits(math.Float64bits(1.0), 64)
	w.WriteBits(0b1011, 4)

	words, bits := w.Close()
	require.Equal(t, 68, bits)
	require.Len(t, words, 2)
	require.Equal(t, math.Float64bits(1.0), words[0])
	require.Equal(t, uint64(0b1011)<<60, words[1])
}

func TestWriter_NoPartialWord_DoesNotAppendExtraWord(t *testing.T) {
	w := bitstream.NewWriter()
	w.WriteBits(math.MaxUint64, 64)

	words, bits := w.Close()
	require.Equal(t, 64, bits)
	require.Len(t, words, 1)
}

func TestNewWriterCapacity_PreReservesWords(t *testing.T) {
	w := bitstream.NewWriterCapacity(4)
	w.WriteBits(1, 1)
	words, bits := w.Close()
	require.Equal(t, 1, bits)
	require.Len(t, words, 1)
}
