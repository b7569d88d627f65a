package oflib

import (
	"encoding/binary"

	"github.com/hkwi/oflib/ofp4"
	"github.com/hkwi/oflib/oxm"
)

// MatchLen returns the number of bytes PackMatch writes and reports for m.
// An OXM match without fields reports zero.
func (e *Encoder) MatchLen(m Match) (int, error) {
	switch v := m.(type) {
	case MatchStandard:
		return ofp4.OFP_MATCH_STANDARD_SIZE, nil
	case MatchOXM:
		if err := e.checkFields(v.Fields); err != nil {
			return 0, err
		}
		l := oxm.Len(v.Fields)
		if l == 0 {
			return 0, nil
		}
		if err := e.checkLen(kindMatch, 4+l); err != nil {
			return 0, err
		}
		return 4 + l, nil
	case MatchExperimenter:
		h, ok := e.exp.match(v.Type)
		if !ok {
			return 0, e.missingHandler(kindMatch, uint32(v.Type))
		}
		n, err := h.MatchLen(v)
		if err != nil {
			return 0, err
		}
		if err := e.checkLen(kindMatch, n); err != nil {
			return 0, err
		}
		return n, nil
	}
	return 0, e.unsupported(kindMatch, "nil")
}

// declaredMatchLen is the match length as counted by the flow stats
// layout: the TLV bytes for OXM, the whole record otherwise.
func (e *Encoder) declaredMatchLen(m Match) (int, error) {
	n, err := e.MatchLen(m)
	if err != nil {
		return 0, err
	}
	if v, ok := m.(MatchOXM); ok {
		return oxm.Len(v.Fields), nil
	}
	return n, nil
}

// PackMatch writes m into data. order selects how OXM field values are
// stored in m. An OXM match without fields writes nothing and reports
// zero; PackFlowStats fills in its header.
func (e *Encoder) PackMatch(m Match, data []byte, order oxm.Order) (int, error) {
	switch v := m.(type) {
	case MatchStandard:
		if err := e.need(kindMatch, data, ofp4.OFP_MATCH_STANDARD_SIZE); err != nil {
			return 0, err
		}
		putMatchStandard(v, data[:ofp4.OFP_MATCH_STANDARD_SIZE])
		return ofp4.OFP_MATCH_STANDARD_SIZE, nil
	case MatchOXM:
		total, err := e.MatchLen(v)
		if err != nil || total == 0 {
			return 0, err
		}
		l := total - 4
		if err := e.need(kindMatch, data, total); err != nil {
			return 0, err
		}
		binary.BigEndian.PutUint16(data[0:2], ofp4.OFPMT_OXM)
		n := oxm.Put(data[4:4+l], v.Fields, order)
		if n != l {
			return 0, e.violation(kindMatch, data[:4+l], 4+n, 4+l)
		}
		binary.BigEndian.PutUint16(data[2:4], uint16(4+n))
		return 4 + n, nil
	case MatchExperimenter:
		h, ok := e.exp.match(v.Type)
		if !ok {
			return 0, e.missingHandler(kindMatch, uint32(v.Type))
		}
		want, err := e.MatchLen(v)
		if err != nil {
			return 0, err
		}
		if err := e.need(kindMatch, data, want); err != nil {
			return 0, err
		}
		n, err := h.PackMatch(v, data[:want])
		if err != nil {
			return 0, err
		}
		if n != want {
			return 0, e.violation(kindMatch, data[:want], n, want)
		}
		return n, nil
	}
	return 0, e.unsupported(kindMatch, "nil")
}

func putMatchStandard(m MatchStandard, data []byte) {
	ofp4.Zero(data)
	binary.BigEndian.PutUint16(data[0:2], ofp4.OFPMT_STANDARD)
	binary.BigEndian.PutUint16(data[2:4], ofp4.OFP_MATCH_STANDARD_SIZE)
	binary.BigEndian.PutUint32(data[4:8], m.InPort)
	binary.BigEndian.PutUint32(data[8:12], m.Wildcards)
	copy(data[12:18], m.DlSrc)
	copy(data[18:24], m.DlSrcMask)
	copy(data[24:30], m.DlDst)
	copy(data[30:36], m.DlDstMask)
	binary.BigEndian.PutUint16(data[36:38], m.DlVlan)
	data[38] = m.DlVlanPcp
	// 1 padding
	binary.BigEndian.PutUint16(data[40:42], uint16(m.DlType))
	data[42] = m.NwTos
	data[43] = uint8(m.NwProto)
	copy(data[44:48], m.NwSrc.To4())
	copy(data[48:52], m.NwSrcMask.To4())
	copy(data[52:56], m.NwDst.To4())
	copy(data[56:60], m.NwDstMask.To4())
	binary.BigEndian.PutUint16(data[60:62], m.TpSrc)
	binary.BigEndian.PutUint16(data[62:64], m.TpDst)
	binary.BigEndian.PutUint32(data[64:68], m.MplsLabel)
	data[68] = m.MplsTc
	// 3 padding
	binary.BigEndian.PutUint64(data[72:80], m.Metadata)
	binary.BigEndian.PutUint64(data[80:88], m.MetadataMask)
}
