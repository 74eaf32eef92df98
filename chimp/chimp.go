package chimp

import (
	"io"
	"math"
	mathbits "math/bits"

	"github.com/arloliu/xorz"
	"github.com/arloliu/xorz/bitstream"
)

const (
	flagZero      = 0b00 // XOR == 0
	flagNewLead   = 0b01 // trailing zeros > leadingZeroThreshold, XOR != 0
	flagSameClass = 0b10
	flagNewClass  = 0b11

	// leadingZeroThreshold is the trailing-zero cutoff, above which a
	// class+center-bits literal header beats caching the previous
	// leading-zero class.
	leadingZeroThreshold = 6
)

// Encoder implements xorz.Encoder for the Chimp XOR-delta scheme.
type Encoder struct {
	w *bitstream.Writer

	prev  uint64
	lPrev int
	first bool
}

var _ xorz.Encoder = (*Encoder)(nil)

// New returns an Encoder with a default-sized backing buffer.
func New() *Encoder {
	return &Encoder{w: bitstream.NewWriter(), lPrev: xorz.InvalidLeading, first: true}
}

// NewCapacity returns an Encoder whose backing buffer is pre-sized for
// approximately n samples.
func NewCapacity(n int) *Encoder {
	words := n/6 + 1
	return &Encoder{w: bitstream.NewWriterCapacity(words), lPrev: xorz.InvalidLeading, first: true}
}

// Encode appends one value to the stream.
func (e *Encoder) Encode(value float64) {
	bits := math.Float64bits(value)

	if e.first {
		e.first = false
		e.prev = bits
		e.w.WriteBits(bits, 64)
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

func (e *Encoder) writeValue(bits uint64) {
	xor := e.prev ^ bits
	e.prev = bits

	trail := mathbits.TrailingZeros64(xor)

	if trail > leadingZeroThreshold {
		if xor == 0 {
			e.w.WriteBits(flagZero, 2)
			return
		}

		e.w.WriteBits(flagNewLead, 2)
		lead := xorz.LeadingRound[mathbits.LeadingZeros64(xor)]
		e.w.WriteBits(uint64(xorz.LeadingReprEnc[lead]), 3)
		center := 64 - lead - trail
		e.w.WriteBits(uint64(center), 6)
		e.w.WriteBits(xor>>uint(trail), center)

		// The cached class is reset here so
		// the next sample on the leading/trailing-cache path always
		// rewrites it rather than comparing against a stale value.
		e.lPrev = xorz.InvalidLeading
		return
	}

	lead := xorz.LeadingRound[mathbits.LeadingZeros64(xor)]
	if lead == e.lPrev {
		e.w.WriteBits(flagSameClass, 2)
	} else {
		e.w.WriteBits(flagNewClass, 2)
		e.w.WriteBits(uint64(xorz.LeadingReprEnc[lead]), 3)
		e.lPrev = lead
	}
	e.w.WriteBits(xor, 64-lead)
}

// Close appends the end-of-stream sentinel and returns the packed words
// along with the total number of meaningful bits.
func (e *Encoder) Close() ([]uint64, int) {
	e.Encode(math.Float64frombits(xorz.NaN))
	e.w.WriteBit(0)
	return e.w.Close()
}

// Decoder implements xorz.Decoder for the Chimp XOR-delta scheme.
type Decoder struct {
	r *bitstream.Reader

	curr  uint64
	lPrev int
	first bool
	done  bool
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
		// curr unchanged

	case flagNewLead:
		classBits, err := d.r.ReadBits(3)
		if err != nil {
			return err
		}
		centerBits, err := d.r.ReadBits(6)
		if err != nil {
			return err
		}

		lead := xorz.LeadingReprDec[classBits]
		center := int(centerBits)
		if center == 0 {
			center = 64
		}
		trail := 64 - center - lead

		xorVal, err := d.r.ReadBits(center)
		if err != nil {
			return err
		}
		d.curr ^= xorVal << uint(trail)
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

	return nil
}
