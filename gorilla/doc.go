// Package gorilla implements Facebook's Gorilla XOR-delta compression for
// streams of float64 values (Pelkonen et al., "Gorilla: A Fast, Scalable,
// In-Memory Time Series Database", VLDB 2015).
//
// The first value is stored raw (64 bits). Every subsequent value is
// XORed against its predecessor:
//
//   - XOR == 0 (value unchanged): one control bit, 0.
//   - XOR != 0 and its significant window (the span between its leading
//     and trailing zero runs) fits inside the previous window: control
//     bits 1, 0, then the meaningful bits of the XOR shifted into that
//     cached window.
//   - Otherwise: control bits 1, 1, then a fresh 6-bit leading-zero
//     count, a 6-bit (window size - 1), and the meaningful bits.
//
// Close appends the package's end-of-stream sentinel (xorz.NaN) through
// the same encoding path before flushing the bit stream.
package gorilla
