// Package patas implements Patas, a byte-aligned XOR-delta codec for
// float64 streams designed for vectorized decode.
//
// Like Chimp-128, Patas keeps a 128-slot ring buffer and a 16384-entry
// low-14-bits index to pick an XOR reference, but it always trusts
// whichever reference it finds (no trailing-zero threshold) and never
// quantizes the leading-zero count: every sample writes a fixed 16-bit
// descriptor (reference ring slot, byte count, trailing zero count)
// followed by the significant bytes of the XOR, so both encode and
// decode stay byte-aligned instead of dealing in raw bit counts.
package patas
