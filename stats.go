package oflib

import (
	"encoding/binary"

	"github.com/hkwi/oflib/ofp4"
)

// The match record inside ofp_flow_stats starts at byte 48 and its first
// 4 bytes (type and length) are part of the 56 byte fixed header.
const (
	flowStatsMatchOffset = 48
	flowStatsOverlap     = 4
)

func (e *Encoder) flowStatsTrailer(fs FlowStats) (int, error) {
	if fs.Match == nil {
		return 0, e.unsupported(kindFlowStats, "nil match")
	}
	m, err := e.declaredMatchLen(fs.Match)
	if err != nil {
		return 0, err
	}
	return ofp4.Align8(ofp4.OFP_FLOW_STATS_SIZE - flowStatsOverlap + m), nil
}

// FlowStatsLen returns the wire length of fs.
func (e *Encoder) FlowStatsLen(fs FlowStats) (int, error) {
	trailer, err := e.flowStatsTrailer(fs)
	if err != nil {
		return 0, err
	}
	insts, err := e.InstructionsLen(fs.Instructions)
	if err != nil {
		return 0, err
	}
	if err := e.checkLen(kindFlowStats, trailer+insts); err != nil {
		return 0, err
	}
	return trailer + insts, nil
}

func (e *Encoder) FlowStatsListLen(stats []FlowStats) (int, error) {
	total := 0
	for _, fs := range stats {
		n, err := e.FlowStatsLen(fs)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// PackFlowStats writes fs. The match is packed in the order set by
// WithMatchOrder and the instructions start at the 8 byte boundary
// following it.
func (e *Encoder) PackFlowStats(fs FlowStats, data []byte) (int, error) {
	total, err := e.FlowStatsLen(fs)
	if err != nil {
		return 0, err
	}
	if err := e.need(kindFlowStats, data, total); err != nil {
		return 0, err
	}
	binary.BigEndian.PutUint16(data[0:2], uint16(total))
	data[2] = fs.TableId
	data[3] = 0
	binary.BigEndian.PutUint32(data[4:8], fs.DurationSec)
	binary.BigEndian.PutUint32(data[8:12], fs.DurationNsec)
	binary.BigEndian.PutUint16(data[12:14], fs.Priority)
	binary.BigEndian.PutUint16(data[14:16], fs.IdleTimeout)
	binary.BigEndian.PutUint16(data[16:18], fs.HardTimeout)
	binary.BigEndian.PutUint16(data[18:20], fs.Flags)
	ofp4.Zero(data[20:24])
	binary.BigEndian.PutUint64(data[24:32], fs.Cookie)
	binary.BigEndian.PutUint64(data[32:40], fs.PacketCount)
	binary.BigEndian.PutUint64(data[40:48], fs.ByteCount)

	trailer, err := e.flowStatsTrailer(fs)
	if err != nil {
		return 0, err
	}
	m, err := e.PackMatch(fs.Match, data[flowStatsMatchOffset:trailer], e.matchOrder)
	if err != nil {
		return 0, fail(data[:total], err)
	}
	ofp4.Zero(data[flowStatsMatchOffset+m : trailer])
	if m == 0 {
		// an empty match keeps the type and length overlapping the header
		hdr := data[flowStatsMatchOffset : flowStatsMatchOffset+flowStatsOverlap]
		binary.BigEndian.PutUint16(hdr[0:2], fs.Match.matchType())
		binary.BigEndian.PutUint16(hdr[2:4], flowStatsOverlap)
	}

	cur := trailer
	for _, inst := range fs.Instructions {
		n, err := e.PackInstruction(inst, data[cur:total])
		if err != nil {
			if skippable(err) {
				continue
			}
			return 0, fail(data[:total], err)
		}
		cur += n
	}
	if cur != total {
		return 0, e.violation(kindFlowStats, data[:total], cur, total)
	}
	return total, nil
}

// PackGroupStats writes g with its bucket counters back to back.
func (e *Encoder) PackGroupStats(g GroupStats, data []byte) (int, error) {
	total := GroupStatsLen(g)
	if err := e.checkLen(kindGroupStats, total); err != nil {
		return 0, err
	}
	if err := e.need(kindGroupStats, data, total); err != nil {
		return 0, err
	}
	binary.BigEndian.PutUint16(data[0:2], uint16(total))
	ofp4.Zero(data[2:4])
	binary.BigEndian.PutUint32(data[4:8], g.GroupId)
	binary.BigEndian.PutUint32(data[8:12], g.RefCount)
	ofp4.Zero(data[12:16])
	binary.BigEndian.PutUint64(data[16:24], g.PacketCount)
	binary.BigEndian.PutUint64(data[24:32], g.ByteCount)
	binary.BigEndian.PutUint32(data[32:36], g.DurationSec)
	binary.BigEndian.PutUint32(data[36:40], g.DurationNsec)

	cur := ofp4.OFP_GROUP_STATS_SIZE
	for _, c := range g.Counters {
		putBucketCounter(c, data[cur:cur+ofp4.OFP_BUCKET_COUNTER_SIZE])
		cur += ofp4.OFP_BUCKET_COUNTER_SIZE
	}
	return cur, nil
}

// GroupDescStatsLen returns the wire length of g.
func (e *Encoder) GroupDescStatsLen(g GroupDescStats) (int, error) {
	n, err := e.BucketsLen(g.Buckets)
	if err != nil {
		return 0, err
	}
	total := ofp4.OFP_GROUP_DESC_SIZE + n
	if err := e.checkLen(kindGroupDescStats, total); err != nil {
		return 0, err
	}
	return total, nil
}

func (e *Encoder) GroupDescStatsListLen(stats []GroupDescStats) (int, error) {
	total := 0
	for _, g := range stats {
		n, err := e.GroupDescStatsLen(g)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func (e *Encoder) PackGroupDescStats(g GroupDescStats, data []byte) (int, error) {
	total, err := e.GroupDescStatsLen(g)
	if err != nil {
		return 0, err
	}
	if err := e.need(kindGroupDescStats, data, total); err != nil {
		return 0, err
	}
	binary.BigEndian.PutUint16(data[0:2], uint16(total))
	data[2] = g.Type
	data[3] = 0
	binary.BigEndian.PutUint32(data[4:8], g.GroupId)

	cur := ofp4.OFP_GROUP_DESC_SIZE
	for _, b := range g.Buckets {
		n, err := e.PackBucket(b, data[cur:total])
		if err != nil {
			return 0, fail(data[:total], err)
		}
		cur += n
	}
	if cur != total {
		return 0, e.violation(kindGroupDescStats, data[:total], cur, total)
	}
	return total, nil
}
