// Package chimp128 implements Chimp's 128-slot ring-buffer variant
// (Liakos, Papakonstantinou, Tziritas, "Chimp: Efficient Lossless
// Floating Point Compression for Time Series Databases", VLDB 2022).
//
// Instead of always XORing against the immediately preceding value,
// Chimp-128 keeps the last 128 values in a ring buffer plus a
// 16384-entry table mapping a value's low 14 bits to the absolute
// position it was last seen at. Each sample looks up that table for a
// more distant but bit-similar candidate; if the candidate's trailing
// zero run beats a fixed threshold, the candidate is used as the XOR
// reference instead of the previous value, and the reference's ring
// slot is recorded alongside the payload so the decoder can find it
// again.
package chimp128
