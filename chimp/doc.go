// Package chimp implements the Chimp XOR-delta codec (Liakos, Papakonstantinou,
// Tziritas, "Chimp: Efficient Lossless Floating Point Compression for Time
// Series Databases", VLDB 2022).
//
// Chimp refines Gorilla by quantizing the leading-zero count into 8
// classes (so it fits in 3 bits instead of 6) and by special-casing long
// trailing-zero runs with a cheaper literal-class encoding instead of
// Gorilla's window-reuse bit. Each non-initial sample writes a 2-bit
// flag:
//
//	00  XOR == 0, value unchanged
//	01  trailing zeros > 6, XOR != 0: fresh class + center-bit count + payload
//	10  trailing zeros <= 6, leading class unchanged since the last sample
//	11  trailing zeros <= 6, leading class changed: fresh 3-bit class + payload
package chimp
