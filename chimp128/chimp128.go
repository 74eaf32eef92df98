package chimp128

import (
	"io"
	"math"
	mathbits "math/bits"

	"github.com/arloliu/xorz"
	"github.com/arloliu/xorz/bitstream"
)

const (
	ringSize  = 128
	indexSize = 1 << 14 // low 14 bits of a value's bit pattern
	indexMask = indexSize - 1
	threshold = 13 // trailing zeros required to trust the ring-indexed reference
	noRef     = -1 // sentinel: this low-14-bit bucket has never been written

	flagZero      = 0b00
	flagReference = 0b01
	flagSameClass = 0b10
	flagNewClass  = 0b11
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

// lookup returns the absolute index of the most recent value sharing
// xb's low 14 bits, if one exists within the last ringSize samples.
func (r *ring) lookup(xb uint64) (int, bool) {
	ref := r.indices[xb&indexMask]
	if ref == noRef {
		return 0, false
	}
	if r.index-ref >= ringSize {
		return 0, false
	}
	return ref, true
}

// advance records xb as the most recently inserted value.
func (r *ring) advance(xb uint64) {
	r.curIdx = (r.curIdx + 1) % ringSize
	r.values[r.curIdx] = xb
	r.index++
	r.indices[xb&indexMask] = r.index
}

func (r *ring) insertFirst(xb uint64) {
	r.values[0] = xb
	r.indices[xb&indexMask] = 0
}

// Encoder implements xorz.Encoder for the Chimp-128 XOR-delta scheme.
type Encoder struct {
	w     *bitstream.Writer
	ring  ring
	lPrev int
	first bool
}

var _ xorz.Encoder = (*Encoder)(nil)

// New returns an Encoder with a default-sized backing buffer.
func New() *Encoder {
	return &Encoder{w: bitstream.NewWriter(), ring: newRing(), lPrev: xorz.InvalidLeading, first: true}
}

// NewCapacity returns an Encoder whose backing buffer is pre-sized for
// approximately n samples.
func NewCapacity(n int) *Encoder {
	words := n/6 + 1
	return &Encoder{w: bitstream.NewWriterCapacity(words), ring: newRing(), lPrev: xorz.InvalidLeading, first: true}
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
	prevIndex := e.ring.curIdx
	xor := e.ring.values[e.ring.curIdx] ^ xb
	trail := 0
	usedReference := false

	if lsbRef, ok := e.ring.lookup(xb); ok {
		candidate := e.ring.values[lsbRef%ringSize]
		xorC := xb ^ candidate
		trailC := mathbits.TrailingZeros64(xorC)
		if trailC > threshold {
			prevIndex = lsbRef % ringSize
			xor = xorC
			trail = trailC
			usedReference = true
		}
	}

	switch {
	case xor == 0:
		e.w.WriteBits(uint64(prevIndex), 9)

	case usedReference:
		lead := xorz.LeadingRound[mathbits.LeadingZeros64(xor)]
		center := 64 - lead - trail
		class := xorz.LeadingReprEnc[lead]
		tmp := (uint64(0x80|prevIndex) << 9) | (uint64(class) << 6) | uint64(center)
		e.w.WriteBits(tmp, 18)
		e.w.WriteBits(xor>>uint(trail), center)
		e.lPrev = xorz.InvalidLeading

	default:
		lead := xorz.LeadingRound[mathbits.LeadingZeros64(xor)]
		if lead != e.lPrev {
			e.w.WriteBits(flagNewClass, 2)
			e.w.WriteBits(uint64(xorz.LeadingReprEnc[lead]), 3)
			e.lPrev = lead
		} else {
			e.w.WriteBits(flagSameClass, 2)
		}
		e.w.WriteBits(xor, 64-lead)
	}

	e.ring.advance(xb)
}

// Close appends the end-of-stream sentinel and returns the packed words
// along with the total number of meaningful bits.
func (e *Encoder) Close() ([]uint64, int) {
	e.Encode(math.Float64frombits(xorz.NaN))
	e.w.WriteBit(0)
	return e.w.Close()
}

// Decoder implements xorz.Decoder for the Chimp-128 XOR-delta scheme.
type Decoder struct {
	r      *bitstream.Reader
	values [ringSize]uint64
	curIdx int
	curr   uint64
	lPrev  int
	first  bool
	done   bool
}

var _ xorz.Decoder = (*Decoder)(nil)

// NewDecoder wraps a word slice produced by Encoder.Close for sequential
// decoding.
func NewDecoder(words []uint64) *Decoder {
	return &Decoder{r: bitstream.NewReader(words), lPrev: xorz.InvalidLeading, first: true}
}

// Next returns the next decoded value, or io.EOF once the end-of-stream
// sentinel has been consumed.
func (d *Decoder) Next() (float64, error) {
	if d.done {
		return 0, io.EOF
	}

	if d.first {
		d.first = false
		v, err := d.r.ReadBits(64)
		if err != nil {
			d.done = true
			return 0, err
		}
		d.curr = v
		d.values[0] = v
	} else if err := d.readValue(); err != nil {
		d.done = true
		return 0, err
	}

	if d.curr == xorz.NaN {
		d.done = true
		return 0, io.EOF
	}

	return math.Float64frombits(d.curr), nil
}

func (d *Decoder) readValue() error {
	flag, err := d.r.ReadBits(2)
	if err != nil {
		return err
	}

	switch flag {
	case flagZero:
		idx, err := d.r.ReadBits(7)
		if err != nil {
			return err
		}
		d.curr = d.values[idx]

	case flagReference:
		rest, err := d.r.ReadBits(16)
		if err != nil {
			return err
		}
		idx := int(rest>>9) & 0x7F
		class := int(rest>>6) & 0x7
		center := int(rest & 0x3F)
		if center == 0 {
			center = 64
		}

		lead := xorz.LeadingReprDec[class]
		trail := 64 - center - lead

		xorVal, err := d.r.ReadBits(center)
		if err != nil {
			return err
		}
		d.curr = d.values[idx] ^ (xorVal << uint(trail))
		d.lPrev = xorz.InvalidLeading

	case flagSameClass:
		center := 64 - d.lPrev
		xorVal, err := d.r.ReadBits(center)
		if err != nil {
			return err
		}
		d.curr ^= xorVal

	case flagNewClass:
		classBits, err := d.r.ReadBits(3)
		if err != nil {
			return err
		}
		lead := xorz.LeadingReprDec[classBits]
		d.lPrev = lead
		center := 64 - lead
		xorVal, err := d.r.ReadBits(center)
		if err != nil {
			return err
		}
		d.curr ^= xorVal
	}

	d.curIdx = (d.curIdx + 1) % ringSize
	d.values[d.curIdx] = d.curr

	return nil
}
