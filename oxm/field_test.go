package oxm

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader(t *testing.T) {
	hdr := OXM_OF_VLAN_VID
	assert.Equal(t, uint16(OFPXMC_OPENFLOW_BASIC), hdr.Class())
	assert.Equal(t, uint8(OFPXMT_OFB_VLAN_VID), hdr.Field())
	assert.Equal(t, 2, hdr.Length())
	assert.False(t, hdr.HasMask())

	hdr.SetMask(true)
	hdr.SetLength(4)
	assert.True(t, hdr.HasMask())
	assert.Equal(t, 4, hdr.Length())
	assert.Equal(t, OXM_OF_VLAN_VID.Type(), hdr.Type())
}

func TestPutHostOrder(t *testing.T) {
	fields := []Field{
		Uint32(OXM_OF_IN_PORT, 10),
		Uint16Masked(OXM_OF_VLAN_VID, 0x1005, 0x1fff),
		Uint64(OXM_OF_METADATA, 0x0102030405060708),
		Bytes(OXM_OF_IPV4_DST, []byte{10, 0, 0, 1}, nil),
	}
	require.Equal(t, 8+8+12+8, Len(fields))

	buf := make([]byte, Len(fields))
	n := Put(buf, fields, HostOrder)
	require.Equal(t, len(buf), n)

	assert.Equal(t, []byte{0x80, 0x00, 0x00, 0x04, 0, 0, 0, 10}, buf[0:8])
	assert.Equal(t, []byte{0x80, 0x00, 0x0d, 0x04, 0x10, 0x05, 0x1f, 0xff}, buf[8:16])
	assert.Equal(t, uint64(0x0102030405060708), binary.BigEndian.Uint64(buf[20:28]))
	assert.Equal(t, []byte{10, 0, 0, 1}, buf[32:36])
}

func TestPutWireOrder(t *testing.T) {
	fields := []Field{
		Bytes(OXM_OF_IN_PORT, []byte{0, 0, 0, 10}, nil),
		Bytes(OXM_OF_ETH_TYPE, []byte{0x08, 0x00}, nil),
	}
	o := Encode(fields, WireOrder)
	assert.Equal(t, "in_port=10,eth_type=0x0800", o.String())
}

func TestHeaderLengthDerived(t *testing.T) {
	// declared header length is ignored in favour of the payload
	f := Field{Header: OXM_OF_IPV6_SRC, Value: make([]byte, 16), Mask: make([]byte, 16)}
	o := Encode([]Field{f}, WireOrder)
	assert.Equal(t, 36, len(o))
	assert.Equal(t, 32, o.Header().Length())
	assert.True(t, o.Header().HasMask())
}

func TestIterAndFields(t *testing.T) {
	o := Encode([]Field{
		Uint32(OXM_OF_IN_PORT, 3),
		Uint16(OXM_OF_TCP_SRC, 22),
	}, HostOrder)
	seq := o.Iter()
	require.Len(t, seq, 2)
	assert.Equal(t, "tcp_src=22", seq[1].String())

	// truncated tails are dropped
	assert.Len(t, Oxm(o[:len(o)-1]).Iter(), 1)

	back := o.Fields()
	assert.Equal(t, []byte(o), []byte(Encode(back, WireOrder)))
}

func TestCheckFieldTooLong(t *testing.T) {
	ok := Bytes(OXM_OF_IPV6_SRC, make([]byte, 16), make([]byte, 16))
	assert.NoError(t, Check([]Field{ok}))

	long := Field{Header: Header(0xffff0000), Value: make([]byte, 130), Mask: make([]byte, 130)}
	err := Check([]Field{ok, long})
	assert.ErrorIs(t, err, ErrFieldTooLong)

	// Put stays within the field's own bytes even when the header length wraps
	buf := make([]byte, Len([]Field{long}))
	assert.NotPanics(t, func() {
		assert.Equal(t, len(buf), Put(buf, []Field{long}, WireOrder))
	})
}
