//go:build !ofldebug

package oflib

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkwi/oflib/action"
	"github.com/hkwi/oflib/ofp4"
)

func TestLyingActionCodec(t *testing.T) {
	enc := NewEncoder(WithActionCodec(blobCodec{skew: -1}))
	b := Bucket{Weight: 10, Actions: []action.Action{action.Group{GroupId: 1}}}

	buf := filled(24)
	n, err := enc.PackBucket(b, buf)
	require.Error(t, err)
	assert.Zero(t, n)
	assert.True(t, errors.Is(err, ErrInvariantViolation))
	assert.True(t, errors.IsAssertionFailure(err))
	assert.Equal(t, make([]byte, 24), buf)
}

func TestLyingInstructionHandler(t *testing.T) {
	enc := NewEncoder(WithExperimenters(NewExperimenters().AddInstructionHandler(1, tlvHandler{skew: 8})))
	fs := FlowStats{
		Match: MatchOXM{},
		Instructions: []Instruction{
			InstructionGotoTable{TableId: 1},
			InstructionExperimenter{Experimenter: 1, Data: make([]byte, 8)},
		},
	}
	n, err := enc.FlowStatsLen(fs)
	require.NoError(t, err)
	require.Equal(t, 56+8+16, n)

	buf := filled(n)
	_, err = enc.PackFlowStats(fs, buf)
	assert.True(t, errors.Is(err, ErrInvariantViolation))
	assert.Equal(t, make([]byte, n), buf)
}

func TestLyingMatchHandler(t *testing.T) {
	enc := NewEncoder(WithExperimenters(NewExperimenters().AddMatchHandler(0xff, tlvHandler{skew: 1})))
	m := MatchExperimenter{Type: 0xff, Data: []byte{1, 2, 3, 4}}

	buf := filled(8)
	_, err := enc.PackMatch(m, buf, 0)
	assert.True(t, errors.Is(err, ErrInvariantViolation))
	assert.Equal(t, make([]byte, 8), buf)

	_, err = enc.Marshal(FlowStats{Match: m})
	assert.True(t, errors.Is(err, ErrInvariantViolation))
}

func TestViolationNotSkipped(t *testing.T) {
	enc := NewEncoder(WithActionCodec(blobCodec{skew: 8}))
	inst := InstructionActions{
		Type:    ofp4.OFPIT_WRITE_ACTIONS,
		Actions: []action.Action{action.Output{Port: 1}},
	}
	_, err := enc.Marshal(FlowStats{Match: MatchOXM{}, Instructions: []Instruction{inst}})
	assert.True(t, errors.Is(err, ErrInvariantViolation))
	assert.False(t, errors.Is(err, ErrUnsupportedRecordType))
}
