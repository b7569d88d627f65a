package main

import (
	"net"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkwi/oflib"
	"github.com/hkwi/oflib/action"
	"github.com/hkwi/oflib/ofp4"
)

const sampleYAML = `
records:
  - flow: "table=3,priority=7,@goto=2"
  - group_desc:
      type: select
      group_id: 1
      buckets:
        - weight: 10
          watch_port: controller
          actions: "output=1,group=7"
        - weight: 5
          actions: "output=2"
  - group_stats:
      group_id: 1
      ref_count: 2
      counters:
        - {packet_count: 3, byte_count: 180}
  - packet_queue:
      queue_id: 1
      port: 2
      properties:
        - min_rate: 100
        - max_rate: 900
        - {experimenter: 0x2320, data: "0x0102"}
  - port:
      port_no: local
      hw_addr: "00:01:02:03:04:05"
      name: br0
  - table_stats: {table_id: 1, active_count: 4}
  - port_stats: {port_no: 1, rx_packets: 10}
  - queue_stats: {port_no: any, queue_id: 1, tx_bytes: 64}
`

func TestReadRecords(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(sampleYAML))
	require.NoError(t, err)
	require.Len(t, records, 8)

	fs, ok := records[0].(oflib.FlowStats)
	require.True(t, ok)
	assert.Equal(t, uint8(3), fs.TableId)
	assert.Equal(t, uint16(7), fs.Priority)
	assert.Equal(t, []oflib.Instruction{oflib.InstructionGotoTable{TableId: 2}}, fs.Instructions)

	gd, ok := records[1].(oflib.GroupDescStats)
	require.True(t, ok)
	assert.Equal(t, uint8(ofp4.OFPGT_SELECT), gd.Type)
	require.Len(t, gd.Buckets, 2)
	assert.Equal(t, uint32(ofp4.OFPP_CONTROLLER), gd.Buckets[0].WatchPort)
	assert.Equal(t, uint32(ofp4.OFPG_ANY), gd.Buckets[0].WatchGroup)
	assert.Equal(t, uint32(ofp4.OFPP_ANY), gd.Buckets[1].WatchPort)
	assert.Equal(t, []action.Action{
		action.Output{Port: 1, MaxLen: ofp4.OFPCML_NO_BUFFER},
		action.Group{GroupId: 7},
	}, gd.Buckets[0].Actions)

	gs, ok := records[2].(oflib.GroupStats)
	require.True(t, ok)
	assert.Equal(t, []oflib.BucketCounter{{PacketCount: 3, ByteCount: 180}}, gs.Counters)

	pq, ok := records[3].(oflib.PacketQueue)
	require.True(t, ok)
	assert.Equal(t, []oflib.QueueProp{
		oflib.QueuePropMinRate{Rate: 100},
		oflib.QueuePropMaxRate{Rate: 900},
		oflib.QueuePropExperimenter{Experimenter: 0x2320, Data: []byte{1, 2}},
	}, pq.Properties)

	port, ok := records[4].(oflib.Port)
	require.True(t, ok)
	assert.Equal(t, uint32(ofp4.OFPP_LOCAL), port.PortNo)
	assert.Equal(t, net.HardwareAddr{0, 1, 2, 3, 4, 5}, port.HwAddr)

	assert.Equal(t, oflib.TableStats{TableId: 1, ActiveCount: 4}, records[5])
	assert.Equal(t, oflib.PortStats{PortNo: 1, RxPackets: 10}, records[6])
	assert.Equal(t, oflib.QueueStats{PortNo: ofp4.OFPP_ANY, QueueId: 1, TxBytes: 64}, records[7])

	data, err := oflib.NewEncoder().MarshalAll(records...)
	require.NoError(t, err)
	assert.Zero(t, len(data)%8)
}

func TestReadRecordsErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"two kinds", "records:\n  - flow: \"table=1\"\n    table_stats: {table_id: 1}\n"},
		{"empty", "records:\n  - {}\n"},
		{"group type", "records:\n  - group_desc: {type: fancy, group_id: 1}\n"},
		{"queue prop", "records:\n  - packet_queue: {queue_id: 1, port: 1, properties: [{}]}\n"},
		{"hw addr", "records:\n  - port: {port_no: 1, hw_addr: nope}\n"},
		{"unknown key", "records:\n  - table_stats: {table: 1}\n"},
		{"bad port", "records:\n  - port_stats: {port_no: nowhere}\n"},
		{"bad flow", "records:\n  - flow: \"table=1,@apply,launch=1\"\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ReadRecords(strings.NewReader(c.doc))
			assert.Error(t, err)
		})
	}

	_, err := ReadRecords(strings.NewReader("records:\n  - {}\n"))
	assert.True(t, errors.Is(err, errBadRecord))
}
