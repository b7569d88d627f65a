package oflib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkwi/oflib/action"
	"github.com/hkwi/oflib/ofp4"
)

func TestParseFlowStats(t *testing.T) {
	strs := []string{
		"table=2,priority=8,cookie=0x5",
		"table=2,priority=8,cookie=0x5,@apply,output=1,@meter=1",
		"table=2,priority=8,cookie=0x5,in_port=1,eth_dst=ff:ff:ff:ff:ff:ff,@apply,output=1,@meter=1",
		"table=3,priority=10,idle_timeout=30,cookie=0x0,tcp_dst=80,@write,group=2,set_queue=1,@goto=4",
		"table=0,priority=1,cookie=0x0,@clear,@metadata=0x1/0xff",
	}
	for _, s := range strs {
		fs, err := ParseFlowStats(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, fs.String())
	}
}

func TestParseFlowStatsRecord(t *testing.T) {
	fs, err := ParseFlowStats("table=3, priority=8, in_port=1, @apply, output=2, pop_vlan, @goto=4")
	require.NoError(t, err)
	assert.Equal(t, uint8(3), fs.TableId)
	assert.Equal(t, uint16(8), fs.Priority)

	m, ok := fs.Match.(MatchOXM)
	require.True(t, ok)
	require.Len(t, m.Fields, 1)

	require.Len(t, fs.Instructions, 2)
	apply, ok := fs.Instructions[0].(InstructionActions)
	require.True(t, ok)
	assert.Equal(t, uint16(ofp4.OFPIT_APPLY_ACTIONS), apply.Type)
	assert.Equal(t, []action.Action{
		action.Output{Port: 2, MaxLen: ofp4.OFPCML_NO_BUFFER},
		action.Generic{ActionType: ofp4.OFPAT_POP_VLAN},
	}, apply.Actions)
	assert.Equal(t, InstructionGotoTable{TableId: 4}, fs.Instructions[1])

	buf, err := NewEncoder().Marshal(fs)
	require.NoError(t, err)
	// 56 + 8 of match rounded, apply 8+16+8, goto 8
	assert.Len(t, buf, 64+32+8)
}

func TestParseFlowStatsErrors(t *testing.T) {
	for _, s := range []string{
		"table=300",
		"priority=8,no_such=1",
		"@apply,output=nowhere",
		"@goto=1,in_port=1",
		"@meter=x",
	} {
		_, err := ParseFlowStats(s)
		assert.Error(t, err, s)
	}
}
