package oflib

import (
	"encoding/binary"

	"github.com/hkwi/oflib/ofp4"
)

// InstructionLen returns the wire length of inst.
func (e *Encoder) InstructionLen(inst Instruction) (int, error) {
	switch i := inst.(type) {
	case InstructionGotoTable, InstructionClearActions, InstructionMeter:
		return ofp4.OFP_INSTRUCTION_SIZE, nil
	case InstructionWriteMetadata:
		return ofp4.OFP_INSTRUCTION_WRITE_META_SIZE, nil
	case InstructionActions:
		if i.Type != ofp4.OFPIT_WRITE_ACTIONS && i.Type != ofp4.OFPIT_APPLY_ACTIONS {
			return 0, e.unsupported(kindInstruction, i.Type)
		}
		n, err := e.actionsLen(i.Actions)
		if err != nil {
			return 0, err
		}
		total := ofp4.OFP_INSTRUCTION_SIZE + n
		if err := e.checkLen(kindInstruction, total); err != nil {
			return 0, err
		}
		return total, nil
	case InstructionExperimenter:
		h, ok := e.exp.instruction(i.Experimenter)
		if !ok {
			return 0, e.missingHandler(kindInstruction, i.Experimenter)
		}
		n, err := h.InstructionLen(i)
		if err != nil {
			return 0, err
		}
		if err := e.checkLen(kindInstruction, n); err != nil {
			return 0, err
		}
		return n, nil
	case InstructionUnknown:
		return 0, e.unsupported(kindInstruction, i.Type)
	}
	return 0, e.unsupported(kindInstruction, "nil")
}

// InstructionsLen sums the wire lengths of insts. Unsupported instructions
// count as zero.
func (e *Encoder) InstructionsLen(insts []Instruction) (int, error) {
	total := 0
	for _, inst := range insts {
		n, err := e.InstructionLen(inst)
		if err != nil {
			if skippable(err) {
				continue
			}
			return 0, err
		}
		total += n
	}
	return total, nil
}

func putInstructionHeader(data []byte, itype uint16, length int) {
	binary.BigEndian.PutUint16(data[0:2], itype)
	binary.BigEndian.PutUint16(data[2:4], uint16(length))
}

// PackInstruction writes inst into data and returns the bytes written.
func (e *Encoder) PackInstruction(inst Instruction, data []byte) (int, error) {
	switch i := inst.(type) {
	case InstructionGotoTable:
		if err := e.need(kindInstruction, data, 8); err != nil {
			return 0, err
		}
		putInstructionHeader(data, ofp4.OFPIT_GOTO_TABLE, 8)
		data[4] = i.TableId
		ofp4.Zero(data[5:8])
		return 8, nil
	case InstructionWriteMetadata:
		if err := e.need(kindInstruction, data, 24); err != nil {
			return 0, err
		}
		putInstructionHeader(data, ofp4.OFPIT_WRITE_METADATA, 24)
		ofp4.Zero(data[4:8])
		binary.BigEndian.PutUint64(data[8:16], i.Metadata)
		binary.BigEndian.PutUint64(data[16:24], i.MetadataMask)
		return 24, nil
	case InstructionActions:
		total, err := e.InstructionLen(i)
		if err != nil {
			return 0, err
		}
		if err := e.need(kindInstruction, data, total); err != nil {
			return 0, err
		}
		putInstructionHeader(data, i.Type, total)
		ofp4.Zero(data[4:8])
		cur := 8
		for _, a := range i.Actions {
			n, err := e.packAction(kindInstruction, a, data[cur:total])
			if err != nil {
				return 0, fail(data[:total], err)
			}
			cur += n
		}
		if cur != total {
			return 0, e.violation(kindInstruction, data[:total], cur, total)
		}
		return total, nil
	case InstructionClearActions:
		if err := e.need(kindInstruction, data, 8); err != nil {
			return 0, err
		}
		putInstructionHeader(data, ofp4.OFPIT_CLEAR_ACTIONS, 8)
		ofp4.Zero(data[4:8])
		return 8, nil
	case InstructionMeter:
		if err := e.need(kindInstruction, data, 8); err != nil {
			return 0, err
		}
		putInstructionHeader(data, ofp4.OFPIT_METER, 8)
		binary.BigEndian.PutUint32(data[4:8], i.MeterId)
		return 8, nil
	case InstructionExperimenter:
		if len(data) >= 8 {
			binary.BigEndian.PutUint16(data[0:2], ofp4.OFPIT_EXPERIMENTER)
			ofp4.Zero(data[4:8])
		}
		h, ok := e.exp.instruction(i.Experimenter)
		if !ok {
			return 0, e.missingHandler(kindInstruction, i.Experimenter)
		}
		want, err := e.InstructionLen(i)
		if err != nil {
			return 0, err
		}
		if err := e.need(kindInstruction, data, want); err != nil {
			return 0, err
		}
		n, err := h.PackInstruction(i, data[:want])
		if err != nil {
			return 0, err
		}
		if n != want {
			return 0, e.violation(kindInstruction, data[:want], n, want)
		}
		return n, nil
	case InstructionUnknown:
		return 0, e.unsupported(kindInstruction, i.Type)
	}
	return 0, e.unsupported(kindInstruction, "nil")
}
