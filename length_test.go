package oflib

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkwi/oflib/action"
	"github.com/hkwi/oflib/ofp4"
	"github.com/hkwi/oflib/oxm"
)

func outputs(n int) []action.Action {
	actions := make([]action.Action, n)
	for i := range actions {
		actions[i] = action.Output{Port: uint32(i)}
	}
	return actions
}

// manyFields builds n experimenter class fields of 250 bytes each.
func manyFields(n int) []oxm.Field {
	fields := make([]oxm.Field, n)
	for i := range fields {
		fields[i] = oxm.Bytes(oxm.Header(0xffff0000), make([]byte, 250), nil)
	}
	return fields
}

func TestRecordTooLong(t *testing.T) {
	enc := NewEncoder()
	apply := InstructionActions{Type: ofp4.OFPIT_APPLY_ACTIONS, Actions: outputs(5000)}

	cases := []struct {
		name string
		rec  Record
	}{
		{"instruction", apply},
		{"flow stats", FlowStats{Match: MatchOXM{}, Instructions: []Instruction{apply}}},
		{"bucket", Bucket{Actions: outputs(5000)}},
		{"group desc", GroupDescStats{Buckets: []Bucket{{Actions: outputs(3000)}, {Actions: outputs(3000)}}}},
		{"group stats", GroupStats{Counters: make([]BucketCounter, 5000)}},
		{"queue prop", QueuePropExperimenter{Data: make([]byte, 0x10000)}},
		{"packet queue", PacketQueue{Properties: []QueueProp{
			QueuePropExperimenter{Data: make([]byte, 0x8000)},
			QueuePropExperimenter{Data: make([]byte, 0x8000)},
		}}},
		{"oxm field", MatchOXM{Fields: []oxm.Field{
			oxm.Bytes(oxm.Header(0xffff0000), make([]byte, 300), nil),
		}}},
		{"oxm match", MatchOXM{Fields: manyFields(300)}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n, err := enc.Len(c.rec)
			assert.True(t, errors.Is(err, ErrRecordTooLong), "%v", err)
			assert.Zero(t, n)

			buf := filled(0x20000)
			n, err = enc.Pack(c.rec, buf)
			assert.True(t, errors.Is(err, ErrRecordTooLong), "%v", err)
			assert.Zero(t, n)

			_, err = enc.Marshal(c.rec)
			assert.True(t, errors.Is(err, ErrRecordTooLong))
		})
	}
}

func TestRecordAtLengthLimit(t *testing.T) {
	enc := NewEncoder()
	// 8 + 4095*16 = 65528
	inst := InstructionActions{Type: ofp4.OFPIT_WRITE_ACTIONS, Actions: outputs(4095)}
	buf, err := enc.Marshal(inst)
	require.NoError(t, err)
	assert.Len(t, buf, 65528)
	assert.Equal(t, []byte{0xff, 0xf8}, buf[2:4])
}

func TestOversizedOXMFieldRejected(t *testing.T) {
	enc := NewEncoder()
	field := oxm.Field{Header: oxm.Header(0xffff0000), Value: make([]byte, 130), Mask: make([]byte, 130)}
	fs := FlowStats{Match: MatchOXM{Fields: []oxm.Field{field}}}

	require.NotPanics(t, func() {
		_, err := enc.Marshal(fs)
		assert.True(t, errors.Is(err, ErrRecordTooLong))
		assert.True(t, errors.Is(err, oxm.ErrFieldTooLong))
	})

	buf := filled(512)
	n, err := enc.PackFlowStats(fs, buf)
	assert.True(t, errors.Is(err, ErrRecordTooLong))
	assert.Zero(t, n)
	assert.Equal(t, filled(512), buf)

	_, err = enc.MatchLen(fs.Match)
	assert.True(t, errors.Is(err, ErrRecordTooLong))
}
