package oflib

import (
	"encoding/binary"

	"github.com/hkwi/oflib/action"
)

// blobCodec handles action.Experimenter as an unpadded 4 byte header plus
// Data, so that buckets get real tail padding. skew is added to what
// PackAction reports.
type blobCodec struct {
	skew int
}

func (c blobCodec) ActionLen(a action.Action) (int, error) {
	if x, ok := a.(action.Experimenter); ok {
		return 4 + len(x.Data), nil
	}
	return action.Codec{}.ActionLen(a)
}

func (c blobCodec) PackAction(a action.Action, data []byte) (int, error) {
	if x, ok := a.(action.Experimenter); ok {
		binary.BigEndian.PutUint16(data[0:2], 0xffff)
		binary.BigEndian.PutUint16(data[2:4], uint16(4+len(x.Data)))
		copy(data[4:], x.Data)
		return 4 + len(x.Data) + c.skew, nil
	}
	n, err := action.Codec{}.PackAction(a, data)
	return n + c.skew, err
}

// tlvHandler packs experimenter instructions and matches as a 8 byte
// header followed by Data. skew is added to what the pack call reports.
type tlvHandler struct {
	skew int
}

func (h tlvHandler) InstructionLen(inst InstructionExperimenter) (int, error) {
	return 8 + len(inst.Data), nil
}

func (h tlvHandler) PackInstruction(inst InstructionExperimenter, data []byte) (int, error) {
	binary.BigEndian.PutUint16(data[0:2], 0xffff)
	binary.BigEndian.PutUint16(data[2:4], uint16(8+len(inst.Data)))
	binary.BigEndian.PutUint32(data[4:8], inst.Experimenter)
	copy(data[8:], inst.Data)
	return 8 + len(inst.Data) + h.skew, nil
}

func (h tlvHandler) MatchLen(m MatchExperimenter) (int, error) {
	return 4 + len(m.Data), nil
}

func (h tlvHandler) PackMatch(m MatchExperimenter, data []byte) (int, error) {
	binary.BigEndian.PutUint16(data[0:2], m.Type)
	binary.BigEndian.PutUint16(data[2:4], uint16(4+len(m.Data)))
	copy(data[4:], m.Data)
	return 4 + len(m.Data) + h.skew, nil
}

func filled(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = 0xee
	}
	return buf
}
