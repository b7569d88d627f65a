package oxm

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

// MaxPayload is the largest value plus mask the 8 bit TLV length can carry.
const MaxPayload = 0xff

var ErrFieldTooLong = errors.New("oxm: field payload exceeds 255 bytes")

// Order tells Put how the integer payloads of a field list are stored.
type Order int

const (
	// HostOrder fields hold integers in native byte order.
	HostOrder Order = iota
	// WireOrder fields are already in network byte order and copied verbatim.
	WireOrder
)

func (self Order) String() string {
	switch self {
	case HostOrder:
		return "host"
	case WireOrder:
		return "wire"
	}
	return "?"
}

// Field is a single match field. Only class and field of Header are
// significant; hasmask and length are derived from Value and Mask when
// the field is put on the wire.
type Field struct {
	Header Header
	Value  []byte
	Mask   []byte
}

// Len is the wire length including the 4 byte TLV header.
func (self Field) Len() int {
	return 4 + len(self.Value) + len(self.Mask)
}

func (self Field) wireHeader() Header {
	hdr := self.Header.Type()
	hdr.SetMask(len(self.Mask) > 0)
	hdr.SetLength(len(self.Value) + len(self.Mask))
	return hdr
}

// Check reports the first field whose payload does not fit the TLV length.
func Check(fields []Field) error {
	for _, f := range fields {
		if n := len(f.Value) + len(f.Mask); n > MaxPayload {
			return errors.Wrapf(ErrFieldTooLong, "field 0x%08x carries %d bytes", uint32(f.Header.Type()), n)
		}
	}
	return nil
}

// Len returns the total TLV length of fields.
func Len(fields []Field) int {
	length := 0
	for _, f := range fields {
		length += f.Len()
	}
	return length
}

// Put writes fields into data and returns the bytes written.
// data must hold at least Len(fields) bytes, and fields should pass Check
// or their header length is cut to 8 bits.
func Put(data []byte, fields []Field, order Order) int {
	cur := 0
	for _, f := range fields {
		cur += f.put(data[cur:], order)
	}
	return cur
}

// Encode is Put into a freshly allocated buffer.
func Encode(fields []Field, order Order) Oxm {
	buf := make([]byte, Len(fields))
	Put(buf, fields, order)
	return buf
}

func (self Field) put(data []byte, order Order) int {
	hdr := self.wireHeader()
	binary.BigEndian.PutUint32(data[0:4], uint32(hdr))

	end := 4 + len(self.Value)
	order.copy(data[4:end], self.Header, self.Value)
	if len(self.Mask) > 0 {
		order.copy(data[end:end+len(self.Mask)], self.Header, self.Mask)
		end += len(self.Mask)
	}
	return end
}

func (self Order) copy(dst []byte, hdr Header, src []byte) {
	if self == HostOrder && hdr.integer() {
		switch len(src) {
		case 2:
			binary.BigEndian.PutUint16(dst, binary.NativeEndian.Uint16(src))
			return
		case 4:
			binary.BigEndian.PutUint32(dst, binary.NativeEndian.Uint32(src))
			return
		case 8:
			binary.BigEndian.PutUint64(dst, binary.NativeEndian.Uint64(src))
			return
		}
	}
	copy(dst, src)
}

// hostOrder returns the byte order constructors use for hdr.
func hostOrder(hdr Header) binary.ByteOrder {
	if hdr.integer() {
		return binary.NativeEndian
	}
	return binary.BigEndian
}

func Uint8(hdr Header, v uint8) Field {
	return Field{Header: hdr, Value: []byte{v}}
}

func Uint16(hdr Header, v uint16) Field {
	buf := make([]byte, 2)
	hostOrder(hdr).PutUint16(buf, v)
	return Field{Header: hdr, Value: buf}
}

func Uint16Masked(hdr Header, v, m uint16) Field {
	f := Uint16(hdr, v)
	f.Mask = make([]byte, 2)
	hostOrder(hdr).PutUint16(f.Mask, m)
	return f
}

func Uint32(hdr Header, v uint32) Field {
	buf := make([]byte, 4)
	hostOrder(hdr).PutUint32(buf, v)
	return Field{Header: hdr, Value: buf}
}

func Uint32Masked(hdr Header, v, m uint32) Field {
	f := Uint32(hdr, v)
	f.Mask = make([]byte, 4)
	hostOrder(hdr).PutUint32(f.Mask, m)
	return f
}

func Uint64(hdr Header, v uint64) Field {
	buf := make([]byte, 8)
	hostOrder(hdr).PutUint64(buf, v)
	return Field{Header: hdr, Value: buf}
}

func Uint64Masked(hdr Header, v, m uint64) Field {
	f := Uint64(hdr, v)
	f.Mask = make([]byte, 8)
	hostOrder(hdr).PutUint64(f.Mask, m)
	return f
}

// Bytes builds an address-like field, whose payload is never reordered.
// mask may be nil.
func Bytes(hdr Header, value, mask []byte) Field {
	f := Field{Header: hdr, Value: append([]byte(nil), value...)}
	if len(mask) > 0 {
		f.Mask = append([]byte(nil), mask...)
	}
	return f
}
