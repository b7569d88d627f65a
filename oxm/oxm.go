package oxm

import (
	"encoding/binary"
)

// Oxm is a packed TLV sequence, as it appears on the wire.
type Oxm []byte

func (self Oxm) Header() Header {
	return Header(binary.BigEndian.Uint32(self))
}

func (self Oxm) Value() []byte {
	hdr := self.Header()
	length := hdr.Length()
	if hdr.HasMask() {
		return self[4 : 4+length/2]
	} else {
		return self[4 : 4+length]
	}
}

func (self Oxm) Mask() []byte {
	hdr := self.Header()
	if hdr.HasMask() {
		length := hdr.Length()
		return self[4+length/2 : 4+length]
	} else {
		return nil
	}
}

// Iter splits the sequence into single TLVs. A truncated tail is dropped.
func (self Oxm) Iter() []Oxm {
	var seq []Oxm
	for cur := 0; cur+4 <= len(self); {
		h := Oxm(self[cur:])
		length := h.Header().Length() + 4
		if length > len(h) {
			break
		}
		seq = append(seq, h[:length])
		cur += length
	}
	return seq
}

// Fields lifts a packed sequence back into Field records in wire order.
func (self Oxm) Fields() []Field {
	var fields []Field
	for _, o := range self.Iter() {
		fields = append(fields, Bytes(o.Header(), o.Value(), o.Mask()))
	}
	return fields
}
