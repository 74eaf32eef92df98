// Package bitstream provides the word-level bit packing the xorz codecs
// build on: a Writer that appends variable-width bit fields (1-64 bits)
// to a growable []uint64 buffer, and a Reader that consumes them back out
// in the same order.
//
// Bits are packed most-significant-first within each 64-bit word. Once a
// word is full it is pushed onto the backing slice and is immutable from
// then on; only the in-progress accumulator is ever mutated. Closing a
// Writer flushes any partial word (left-aligned, zero-padded) and hands
// ownership of the word slice to the caller.
//
//	w := bitstream.NewWriter()
//	w.WriteBits(0b101, 3)
//	w.WriteBit(1)
//	words, bits := w.Close()
//
//	r := bitstream.NewReader(words)
//	v, err := r.ReadBits(4) // == 0b1011
package bitstream
