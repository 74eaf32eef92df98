package gorilla

import (
	"io"
	"math"
	mathbits "math/bits"

	"github.com/arloliu/xorz"
	"github.com/arloliu/xorz/bitstream"
)

// leadingInvalid marks "no cached window yet" so the first non-zero XOR
// after the initial raw value always takes the full-header branch.
const leadingInvalid = xorz.InvalidLeading

// Encoder implements xorz.Encoder for the Gorilla XOR-delta scheme.
type Encoder struct {
	w *bitstream.Writer

	prev     uint64
	leading  int
	trailing int
	first    bool
}

var _ xorz.Encoder = (*Encoder)(nil)

// New returns an Encoder with a default-sized backing buffer.
func New() *Encoder {
	return &Encoder{w: bitstream.NewWriter(), leading: leadingInvalid, first: true}
}

// NewCapacity returns an Encoder whose backing buffer is pre-sized for
// approximately n samples.
func NewCapacity(n int) *Encoder {
	words := n/8 + 1 // Gorilla runs well below 1 word/value on typical data.
	return &Encoder{w: bitstream.NewWriterCapacity(words), leading: leadingInvalid, first: true}
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

	if xor == 0 {
		e.w.WriteBit(0)
		return
	}

	e.w.WriteBit(1)

	leading := mathbits.LeadingZeros64(xor)
	trailing := mathbits.TrailingZeros64(xor)

	if e.leading <= leading && e.trailing <= trailing {
		e.w.WriteBit(0)
		center := 64 - e.leading - e.trailing
		e.w.WriteBits(xor>>uint(e.trailing), center)
		return
	}

	e.w.WriteBit(1)
	e.w.WriteBits(uint64(leading), 6)
	center := 64 - leading - trailing
	e.w.WriteBits(uint64(center-1), 6)
	e.w.WriteBits(xor>>uint(trailing), center)
	e.leading = leading
	e.trailing = trailing
}

// Close appends the end-of-stream sentinel and returns the packed words
// along with the total number of meaningful bits.
func (e *Encoder) Close() ([]uint64, int) {
	e.Encode(math.Float64frombits(xorz.NaN))
	e.w.WriteBit(0)
	return e.w.Close()
}

// Decoder implements xorz.Decoder for the Gorilla XOR-delta scheme.
type Decoder struct {
	r *bitstream.Reader

	curr     uint64
	leading  int
	trailing int
	first    bool
	done     bool
}

var _ xorz.Decoder = (*Decoder)(nil)

// NewDecoder wraps a word slice produced by Encoder.Close for sequential
// decoding.
func NewDecoder(words []uint64) *Decoder {
	return &Decoder{r: bitstream.NewReader(words), leading: leadingInvalid, first: true}
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
	bit, err := d.r.ReadBit()
	if err != nil {
		return err
	}
	if bit == 0 {
		return nil
	}

	newWindow, err := d.r.ReadBit()
	if err != nil {
		return err
	}

	if newWindow == 1 {
		leadBits, err := d.r.ReadBits(6)
		if err != nil {
			return err
		}
		centerBits, err := d.r.ReadBits(6)
		if err != nil {
			return err
		}
		d.leading = int(leadBits)
		d.trailing = 64 - d.leading - (int(centerBits) + 1)
	}

	center := 64 - d.leading - d.trailing
	xorVal, err := d.r.ReadBits(center)
	if err != nil {
		return err
	}

	d.curr ^= xorVal << uint(d.trailing)
	return nil
}
