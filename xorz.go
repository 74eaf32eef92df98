// Package xorz defines the shared contracts and constants used by the
// XOR-delta float64 codecs (Gorilla, Chimp, Chimp-128, Patas) that live in
// the gorilla, chimp, chimp128 and patas subpackages.
//
// Every codec stores an ordered sequence of float64 values as a compact
// bit stream (see the bitstream package) built from consecutive XOR
// deltas. Each value is pushed through Encoder.Encode, and an
// end-of-stream marker is appended automatically on Close: the NaN
// sentinel in NaN for Gorilla, Chimp and Chimp-128, or a reserved
// descriptor value for Patas. A Decoder pulls values back out with Next
// until it observes that marker, at which point it returns io.EOF.
//
// None of the codecs in this module add a file header, checksum, or
// version byte: the bit layout documented per codec is the entire wire
// format, and persisting the choice of codec is the caller's
// responsibility.
package xorz

// NaN is the canonical 64-bit pattern used as an end-of-stream marker: a
// quiet NaN with a zero payload (0x7FF8000000000000). Encoders append it
// as the final value before Close; decoders stop as soon as they observe
// it. Supplying this exact bit pattern as ordinary data is unsupported.
const NaN uint64 = 0x7FF8000000000000

// LeadingRound quantizes a measured leading-zero count (0-64) into one of
// the eight representative classes the Chimp family of codecs encode in
// 3 bits: {0, 8, 12, 16, 18, 20, 22, 24}. Counts of 24 or more collapse to
// 24, since beyond that point the 3-bit class field can't distinguish
// further and the remaining bits are better spent on the payload.
var LeadingRound [65]int

// LeadingReprDec is the inverse of LeadingReprEnc: class index (0-7) to
// quantized leading-zero value.
var LeadingReprDec = [8]int{0, 8, 12, 16, 18, 20, 22, 24}

// LeadingReprEnc maps a quantized leading-zero value (0-64, indexed
// directly, see LeadingRound) to its 3-bit class index (0-7).
var LeadingReprEnc [65]int

func init() {
	for i := range LeadingRound {
		switch {
		case i <= 7:
			LeadingRound[i] = 0
		case i <= 11:
			LeadingRound[i] = 8
		case i <= 15:
			LeadingRound[i] = 12
		case i <= 17:
			LeadingRound[i] = 16
		case i <= 19:
			LeadingRound[i] = 18
		case i <= 21:
			LeadingRound[i] = 20
		case i <= 23:
			LeadingRound[i] = 22
		default:
			LeadingRound[i] = 24
		}
	}

	classByQuantized := map[int]int{0: 0, 8: 1, 12: 2, 16: 3, 18: 4, 20: 5, 22: 6, 24: 7}
	for i, quantized := range LeadingRound {
		LeadingReprEnc[i] = classByQuantized[quantized]
	}
}

// InvalidLeading is the sentinel used for "no cached leading-zero class
// yet" (or "invalidated by a trail-threshold write"). It is deliberately
// outside LeadingRound's range so comparisons against a real class always
// take the "new class" branch.
const InvalidLeading = 65

// Encoder is the capability set every codec's encoder implements: push
// values in, get an owned bit stream back out. It replaces a base-class
// hierarchy with a plain interface, per the module's design notes.
type Encoder interface {
	// Encode compresses a single float64 value.
	Encode(value float64)
	// EncodeSlice compresses a slice of float64 values in order.
	EncodeSlice(values []float64)
	// Close appends the codec's end-of-stream marker (the NaN sentinel
	// for Gorilla, Chimp and Chimp-128; a reserved descriptor value for
	// Patas), flushes any partially-written word, and returns the owned
	// word slice along with the total number of bits written.
	Close() ([]uint64, int)
}

// Decoder is the capability set every codec's decoder implements: pull
// values out of a previously closed bit stream until end-of-stream.
type Decoder interface {
	// Next decodes the next float64 value, or returns io.EOF once the
	// codec's end-of-stream marker (or a truncated stream) has been
	// observed. Once a
	// Decoder has returned io.EOF it continues to do so on every
	// subsequent call.
	Next() (float64, error)
}
