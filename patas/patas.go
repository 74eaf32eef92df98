package patas

import (
	"io"
	"math"
	mathbits "math/bits"

	"github.com/arloliu/xorz"
	"github.com/arloliu/xorz/bitstream"
)

const (
	ringSize  = 128
	indexSize = 1 << 14
	indexMask = indexSize - 1
	noRef     = -1

	// endOfStream is the reserved 16-bit descriptor value. It can never
	// occur as a real (refIndex, sigBytes, trail) packing: the all-ones
	// bit pattern requires trail == 63 and sigBytes == 8, but a trailing
	// run of 63 zeros leaves at most 1 significant bit, forcing
	// sigBytes == 1.
	endOfStream = 0xFFFF
)

type ring struct {
	values  [ringSize]uint64
	indices [indexSize]int
	curIdx  int
	index   int
}

func newRing() ring {
	r := ring{}
	for i := range r.indices {
		r.indices[i] = noRef
	}
	return r
}

func (r *ring) insertFirst(xb uint64) {
	r.values[0] = xb
	r.indices[xb&indexMask] = 0
}

// reference returns the ring slot to XOR xb against: the low-14-bit
// lookup result if one exists within the last ringSize samples,
// otherwise the immediately preceding value.
func (r *ring) reference(xb uint64) int {
	ref := r.indices[xb&indexMask]
	if ref == noRef || r.index-ref >= ringSize {
		ref = r.index
	}
	return ref % ringSize
}

func (r *ring) advance(xb uint64) {
	r.curIdx = (r.curIdx + 1) % ringSize
	r.values[r.curIdx] = xb
	r.index++
	r.indices[xb&indexMask] = r.index
}

// Encoder implements xorz.Encoder for the Patas XOR-delta scheme.
type Encoder struct {
	w     *bitstream.Writer
	ring  ring
	first bool
}

var _ xorz.Encoder = (*Encoder)(nil)

// New returns an Encoder with a default-sized backing buffer.
func New() *Encoder {
	return &Encoder{w: bitstream.NewWriter(), ring: newRing(), first: true}
}

// NewCapacity returns an Encoder whose backing buffer is pre-sized for
// approximately n samples.
func NewCapacity(n int) *Encoder {
	words := n/4 + 1
	return &Encoder{w: bitstream.NewWriterCapacity(words), ring: newRing(), first: true}
}

// Encode appends one value to the stream.
func (e *Encoder) Encode(value float64) {
	bits := math.Float64bits(value)

	if e.first {
		e.first = false
		e.w.WriteBits(bits, 64)
		e.ring.insertFirst(bits)
		return
	}

	e.writeValue(bits)
}

// EncodeSlice appends every value in values, in order.
func (e *Encoder) EncodeSlice(values []float64) {
	for _, v := range values {
		e.Encode(v)
	}
}

func (e *Encoder) writeValue(xb uint64) {
	refIndex := e.ring.reference(xb)
	xor := e.ring.values[refIndex] ^ xb

	trail := mathbits.TrailingZeros64(xor)
	sigBits := 1
	if xor != 0 {
		lead := mathbits.LeadingZeros64(xor)
		sigBits = 64 - lead - trail
	}
	sigBytes := (sigBits + 7) / 8
	// The decoder reads sigBytes 1 with trail 0 as "equal to the reference"
	// and reads no payload; that is the packing an XOR of 0 gets (its 64
	// trailing zeros mask to 0). A non-zero XOR that would pack the same way
	// is written with 2 payload bytes instead.
	if xor != 0 && sigBytes == 1 && trail == 0 {
		sigBytes = 2
	}

	packed := (uint64(refIndex) << 9) | (uint64((sigBytes-1)&7) << 6) | (uint64(trail) & 0x3F)
	e.w.WriteBits(packed, 16)
	if xor != 0 {
		e.w.WriteBits(xor>>uint(trail), sigBytes*8)
	}

	e.ring.advance(xb)
}

// Close writes the reserved end-of-stream descriptor and returns the
// packed words along with the total number of meaningful bits.
func (e *Encoder) Close() ([]uint64, int) {
	e.w.WriteBits(endOfStream, 16)
	e.w.WriteBit(0)
	return e.w.Close()
}

// Decoder implements xorz.Decoder for the Patas XOR-delta scheme.
type Decoder struct {
	r      *bitstream.Reader
	values [ringSize]uint64
	curIdx int
	curr   uint64
	first  bool
	done   bool
}

var _ xorz.Decoder = (*Decoder)(nil)

// NewDecoder wraps a word slice produced by Encoder.Close for sequential
// decoding.
func NewDecoder(words []uint64) *Decoder {
	return &Decoder{r: bitstream.NewReader(words), first: true}
}

// Next returns the next decoded value, or io.EOF once the end-of-stream
// descriptor has been consumed.
func (d *Decoder) Next() (float64, error) {
	if d.done {
		return 0, io.EOF
	}

	if d.first {
		d.first = false

		// The wire format has no framing ahead of the raw first value: an
		// empty stream begins with the endOfStream descriptor, a non-empty
		// one with the raw 64-bit first value. Read the first 16 bits and
		// check them against endOfStream before reading the other 48.
		head, err := d.r.ReadBits(16)
		if err != nil {
			d.done = true
			return 0, err
		}
		if head == endOfStream {
			d.done = true
			return 0, io.EOF
		}

		rest, err := d.r.ReadBits(48)
		if err != nil {
			d.done = true
			return 0, err
		}

		v := (head << 48) | rest
		d.curr = v
		d.values[0] = v
		return math.Float64frombits(d.curr), nil
	}

	descriptor, err := d.r.ReadBits(16)
	if err != nil {
		d.done = true
		return 0, err
	}

	if descriptor == endOfStream {
		d.done = true
		return 0, io.EOF
	}

	refIndex := int(descriptor>>9) & 0x7F
	sigBytes := int((descriptor>>6)&0x7) + 1
	trail := int(descriptor & 0x3F)

	if sigBytes == 1 && trail == 0 {
		d.curr = d.values[refIndex]
	} else {
		xorVal, err := d.r.ReadBits(sigBytes * 8)
		if err != nil {
			d.done = true
			return 0, err
		}
		d.curr = d.values[refIndex] ^ (xorVal << uint(trail))
	}

	d.curIdx = (d.curIdx + 1) % ringSize
	d.values[d.curIdx] = d.curr

	return math.Float64frombits(d.curr), nil
}
