/*
Package action implements the OpenFlow 1.3 action list codec.

Each action reports its wire length and writes itself into a buffer of
that length. Codec exposes the pair through the ActionLen and PackAction
methods used by the structure encoder.
*/
package action

import (
	"encoding/binary"

	"github.com/hkwi/oflib/ofp4"
	"github.com/hkwi/oflib/oxm"
)

type Action interface {
	Type() uint16
	// Len is the wire length, a multiple of 8.
	Len() int
	// put writes exactly Len bytes into data.
	put(data []byte)
}

func putHeader(data []byte, atype uint16, length int) {
	binary.BigEndian.PutUint16(data[0:2], atype)
	binary.BigEndian.PutUint16(data[2:4], uint16(length))
}

type Output struct {
	Port   uint32
	MaxLen uint16
}

func (self Output) Type() uint16 { return ofp4.OFPAT_OUTPUT }
func (self Output) Len() int     { return 16 }

func (self Output) put(data []byte) {
	putHeader(data, ofp4.OFPAT_OUTPUT, 16)
	binary.BigEndian.PutUint32(data[4:8], self.Port)
	binary.BigEndian.PutUint16(data[8:10], self.MaxLen)
	ofp4.Zero(data[10:16])
}

// Generic is an action without arguments: copy_ttl_out, copy_ttl_in,
// dec_mpls_ttl, pop_vlan, dec_nw_ttl and pop_pbb.
type Generic struct {
	ActionType uint16
}

func (self Generic) Type() uint16 { return self.ActionType }
func (self Generic) Len() int     { return 8 }

func (self Generic) put(data []byte) {
	putHeader(data, self.ActionType, 8)
	ofp4.Zero(data[4:8])
}

// Ttl is set_mpls_ttl or set_nw_ttl.
type Ttl struct {
	ActionType uint16
	Ttl        uint8
}

func (self Ttl) Type() uint16 { return self.ActionType }
func (self Ttl) Len() int     { return 8 }

func (self Ttl) put(data []byte) {
	putHeader(data, self.ActionType, 8)
	data[4] = self.Ttl
	ofp4.Zero(data[5:8])
}

// Ethertype is push_vlan, push_mpls, push_pbb or pop_mpls.
type Ethertype struct {
	ActionType uint16
	Ethertype  uint16
}

func (self Ethertype) Type() uint16 { return self.ActionType }
func (self Ethertype) Len() int     { return 8 }

func (self Ethertype) put(data []byte) {
	putHeader(data, self.ActionType, 8)
	binary.BigEndian.PutUint16(data[4:6], self.Ethertype)
	ofp4.Zero(data[6:8])
}

type Group struct {
	GroupId uint32
}

func (self Group) Type() uint16 { return ofp4.OFPAT_GROUP }
func (self Group) Len() int     { return 8 }

func (self Group) put(data []byte) {
	putHeader(data, ofp4.OFPAT_GROUP, 8)
	binary.BigEndian.PutUint32(data[4:8], self.GroupId)
}

type SetQueue struct {
	QueueId uint32
}

func (self SetQueue) Type() uint16 { return ofp4.OFPAT_SET_QUEUE }
func (self SetQueue) Len() int     { return 8 }

func (self SetQueue) put(data []byte) {
	putHeader(data, ofp4.OFPAT_SET_QUEUE, 8)
	binary.BigEndian.PutUint32(data[4:8], self.QueueId)
}

// SetField carries a host order match field.
type SetField struct {
	Field oxm.Field
}

func (self SetField) Type() uint16 { return ofp4.OFPAT_SET_FIELD }
func (self SetField) Len() int     { return ofp4.Align8(4 + self.Field.Len()) }

func (self SetField) put(data []byte) {
	length := self.Len()
	putHeader(data, ofp4.OFPAT_SET_FIELD, length)
	n := oxm.Put(data[4:], []oxm.Field{self.Field}, oxm.HostOrder)
	ofp4.Zero(data[4+n : length])
}

// Experimenter is an opaque vendor action; Data follows the 8 byte header.
type Experimenter struct {
	Experimenter uint32
	Data         []byte
}

func (self Experimenter) Type() uint16 { return ofp4.OFPAT_EXPERIMENTER }
func (self Experimenter) Len() int     { return ofp4.Align8(8 + len(self.Data)) }

func (self Experimenter) put(data []byte) {
	length := self.Len()
	putHeader(data, ofp4.OFPAT_EXPERIMENTER, length)
	binary.BigEndian.PutUint32(data[4:8], self.Experimenter)
	n := copy(data[8:length], self.Data)
	ofp4.Zero(data[8+n : length])
}
