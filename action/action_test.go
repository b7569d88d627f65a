package action

import (
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkwi/oflib/ofp4"
	"github.com/hkwi/oflib/oxm"
)

func TestParseAction(t *testing.T) {
	strs := []string{
		"output=10",
		"output=5:0xffe4",
		"output=controller:0x80",
		"copy_ttl_out",
		"pop_vlan",
		"set_mpls_ttl=3",
		"set_nw_ttl=2",
		"push_vlan=0x8100",
		"push_mpls=0x8847",
		"pop_mpls=0x0800",
		"push_pbb=0x88e7",
		"group=7",
		"set_queue=9",
		"set_eth_src=01:02:03:04:05:06",
		"set_ipv4_dst=192.168.1.1",
		"set_tcp_dst=8080",
	}
	for _, s := range strs {
		a, eatLen, err := Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, len(s), eatLen, s)
		assert.Equal(t, s, fmt.Sprintf("%v", a))
	}
}

func TestParseActionError(t *testing.T) {
	for _, s := range []string{"output=nowhere", "group=x", "set_no_field=1", "frobnicate"} {
		_, _, err := Parse(s)
		assert.Error(t, err, s)
	}
}

func TestPackOutput(t *testing.T) {
	var c Codec
	a := Output{Port: 3, MaxLen: ofp4.OFPCML_NO_BUFFER}
	l, err := c.ActionLen(a)
	require.NoError(t, err)
	require.Equal(t, 16, l)

	buf := make([]byte, l)
	for i := range buf {
		buf[i] = 0xee
	}
	n, err := c.PackAction(a, buf)
	require.NoError(t, err)
	assert.Equal(t, l, n)
	assert.Equal(t, []byte{
		0x00, 0x00, 0x00, 0x10,
		0x00, 0x00, 0x00, 0x03,
		0xff, 0xff, 0, 0, 0, 0, 0, 0,
	}, buf)
}

func TestPackSetFieldPadding(t *testing.T) {
	var c Codec
	a := SetField{Field: oxm.Uint16(oxm.OXM_OF_TCP_DST, 80)}
	// 4 + (4 + 2) rounded up
	require.Equal(t, 16, a.Len())

	buf := make([]byte, 16)
	for i := range buf {
		buf[i] = 0xee
	}
	n, err := c.PackAction(a, buf)
	require.NoError(t, err)
	assert.Equal(t, 16, n)
	assert.Equal(t, uint16(ofp4.OFPAT_SET_FIELD), binary.BigEndian.Uint16(buf[0:2]))
	assert.Equal(t, uint16(16), binary.BigEndian.Uint16(buf[2:4]))
	assert.Equal(t, uint16(80), binary.BigEndian.Uint16(buf[8:10]))
	assert.Equal(t, make([]byte, 6), buf[10:16])
}

func TestPackExperimenter(t *testing.T) {
	a := Experimenter{Experimenter: 0x2320, Data: []byte{1, 2, 3}}
	require.Equal(t, 16, a.Len())
	buf := Marshal([]Action{a})
	assert.Equal(t, []byte{
		0xff, 0xff, 0x00, 0x10,
		0x00, 0x00, 0x23, 0x20,
		1, 2, 3, 0, 0, 0, 0, 0,
	}, buf)
}

func TestPackShortBuffer(t *testing.T) {
	var c Codec
	_, err := c.PackAction(Group{GroupId: 1}, make([]byte, 4))
	assert.True(t, errors.Is(err, ErrShortBuffer))

	_, err = c.ActionLen(nil)
	assert.True(t, errors.Is(err, ErrUnsupportedAction))
}

func TestLenAndMarshal(t *testing.T) {
	actions := []Action{
		Output{Port: 1, MaxLen: 0},
		Group{GroupId: 7},
		Generic{ActionType: ofp4.OFPAT_POP_VLAN},
	}
	assert.Equal(t, 32, Len(actions))
	buf := Marshal(actions)
	assert.Len(t, buf, 32)
	assert.Equal(t, uint16(ofp4.OFPAT_GROUP), binary.BigEndian.Uint16(buf[16:18]))
	assert.Equal(t, uint32(7), binary.BigEndian.Uint32(buf[20:24]))
	assert.Equal(t, "output=1:0x0,group=7,pop_vlan", Format(actions))
}

func TestParseList(t *testing.T) {
	actions, err := ParseList(" output=1, group=7 pop_vlan")
	require.NoError(t, err)
	assert.Equal(t, []Action{
		Output{Port: 1, MaxLen: ofp4.OFPCML_NO_BUFFER},
		Group{GroupId: 7},
		Generic{ActionType: ofp4.OFPAT_POP_VLAN},
	}, actions)
	assert.Equal(t, "output=1,group=7,pop_vlan", Format(actions))

	empty, err := ParseList("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = ParseList("output=1,launch")
	assert.Error(t, err)
}
