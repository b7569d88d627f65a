package oflib

import (
	"encoding/binary"

	"github.com/hkwi/oflib/ofp4"
)

func (e *Encoder) PackBucketCounter(c BucketCounter, data []byte) (int, error) {
	if err := e.need(kindBucketCounter, data, ofp4.OFP_BUCKET_COUNTER_SIZE); err != nil {
		return 0, err
	}
	putBucketCounter(c, data)
	return ofp4.OFP_BUCKET_COUNTER_SIZE, nil
}

func putBucketCounter(c BucketCounter, data []byte) {
	binary.BigEndian.PutUint64(data[0:8], c.PacketCount)
	binary.BigEndian.PutUint64(data[8:16], c.ByteCount)
}

// PackPort writes the 64 byte ofp_port. Name is cut to keep a NUL terminator.
func (e *Encoder) PackPort(p Port, data []byte) (int, error) {
	if err := e.need(kindPort, data, ofp4.OFP_PORT_SIZE); err != nil {
		return 0, err
	}
	binary.BigEndian.PutUint32(data[0:4], p.PortNo)
	ofp4.Zero(data[4:8])
	ofp4.Zero(data[8:14])
	copy(data[8:14], p.HwAddr)
	ofp4.Zero(data[14:16])

	name := data[16 : 16+ofp4.OFP_MAX_PORT_NAME_LEN]
	ofp4.Zero(name)
	copy(name[:ofp4.OFP_MAX_PORT_NAME_LEN-1], p.Name)

	binary.BigEndian.PutUint32(data[32:36], p.Config)
	binary.BigEndian.PutUint32(data[36:40], p.State)
	binary.BigEndian.PutUint32(data[40:44], p.Curr)
	binary.BigEndian.PutUint32(data[44:48], p.Advertised)
	binary.BigEndian.PutUint32(data[48:52], p.Supported)
	binary.BigEndian.PutUint32(data[52:56], p.Peer)
	binary.BigEndian.PutUint32(data[56:60], p.CurrSpeed)
	binary.BigEndian.PutUint32(data[60:64], p.MaxSpeed)
	return ofp4.OFP_PORT_SIZE, nil
}

func (e *Encoder) PackTableStats(s TableStats, data []byte) (int, error) {
	if err := e.need(kindTableStats, data, ofp4.OFP_TABLE_STATS_SIZE); err != nil {
		return 0, err
	}
	data[0] = s.TableId
	ofp4.Zero(data[1:4])
	binary.BigEndian.PutUint32(data[4:8], s.ActiveCount)
	binary.BigEndian.PutUint64(data[8:16], s.LookupCount)
	binary.BigEndian.PutUint64(data[16:24], s.MatchedCount)
	return ofp4.OFP_TABLE_STATS_SIZE, nil
}

func (e *Encoder) PackPortStats(s PortStats, data []byte) (int, error) {
	if err := e.need(kindPortStats, data, ofp4.OFP_PORT_STATS_SIZE); err != nil {
		return 0, err
	}
	binary.BigEndian.PutUint32(data[0:4], s.PortNo)
	ofp4.Zero(data[4:8])
	for i, v := range []uint64{
		s.RxPackets, s.TxPackets,
		s.RxBytes, s.TxBytes,
		s.RxDropped, s.TxDropped,
		s.RxErrors, s.TxErrors,
		s.RxFrameErr, s.RxOverErr, s.RxCrcErr,
		s.Collisions,
	} {
		binary.BigEndian.PutUint64(data[8+8*i:16+8*i], v)
	}
	binary.BigEndian.PutUint32(data[104:108], s.DurationSec)
	binary.BigEndian.PutUint32(data[108:112], s.DurationNsec)
	return ofp4.OFP_PORT_STATS_SIZE, nil
}

func (e *Encoder) PackQueueStats(s QueueStats, data []byte) (int, error) {
	if err := e.need(kindQueueStats, data, ofp4.OFP_QUEUE_STATS_SIZE); err != nil {
		return 0, err
	}
	binary.BigEndian.PutUint32(data[0:4], s.PortNo)
	binary.BigEndian.PutUint32(data[4:8], s.QueueId)
	binary.BigEndian.PutUint64(data[8:16], s.TxBytes)
	binary.BigEndian.PutUint64(data[16:24], s.TxPackets)
	binary.BigEndian.PutUint64(data[24:32], s.TxErrors)
	binary.BigEndian.PutUint32(data[32:36], s.DurationSec)
	binary.BigEndian.PutUint32(data[36:40], s.DurationNsec)
	return ofp4.OFP_QUEUE_STATS_SIZE, nil
}
