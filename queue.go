package oflib

import (
	"encoding/binary"

	"github.com/hkwi/oflib/ofp4"
)

// QueuePropLen returns the wire length of p. Experimenter properties are
// padded to 8 bytes.
func (e *Encoder) QueuePropLen(p QueueProp) (int, error) {
	switch v := p.(type) {
	case QueuePropMinRate, QueuePropMaxRate:
		return ofp4.OFP_QUEUE_PROP_RATE_SIZE, nil
	case QueuePropExperimenter:
		total := ofp4.Align8(ofp4.OFP_QUEUE_PROP_EXPERIMENTER + len(v.Data))
		if err := e.checkLen(kindQueueProp, total); err != nil {
			return 0, err
		}
		return total, nil
	case QueuePropUnknown:
		return 0, e.unsupported(kindQueueProp, v.Property)
	}
	return 0, e.unsupported(kindQueueProp, "nil")
}

// QueuePropsLen sums the wire lengths of props. Unsupported properties
// count as zero.
func (e *Encoder) QueuePropsLen(props []QueueProp) (int, error) {
	total := 0
	for _, p := range props {
		n, err := e.QueuePropLen(p)
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

func putQueuePropHeader(data []byte, property uint16, length int) {
	binary.BigEndian.PutUint16(data[0:2], property)
	binary.BigEndian.PutUint16(data[2:4], uint16(length))
	ofp4.Zero(data[4:8])
}

func (e *Encoder) PackQueueProp(p QueueProp, data []byte) (int, error) {
	switch v := p.(type) {
	case QueuePropMinRate:
		return e.packQueueRate(ofp4.OFPQT_MIN_RATE, v.Rate, data)
	case QueuePropMaxRate:
		return e.packQueueRate(ofp4.OFPQT_MAX_RATE, v.Rate, data)
	case QueuePropExperimenter:
		total, err := e.QueuePropLen(v)
		if err != nil {
			return 0, err
		}
		if err := e.need(kindQueueProp, data, total); err != nil {
			return 0, err
		}
		putQueuePropHeader(data, ofp4.OFPQT_EXPERIMENTER, total)
		binary.BigEndian.PutUint32(data[8:12], v.Experimenter)
		ofp4.Zero(data[12:16])
		end := ofp4.OFP_QUEUE_PROP_EXPERIMENTER + copy(data[16:total], v.Data)
		ofp4.Zero(data[end:total])
		return total, nil
	case QueuePropUnknown:
		return 0, e.unsupported(kindQueueProp, v.Property)
	}
	return 0, e.unsupported(kindQueueProp, "nil")
}

func (e *Encoder) packQueueRate(property uint16, rate uint16, data []byte) (int, error) {
	if err := e.need(kindQueueProp, data, ofp4.OFP_QUEUE_PROP_RATE_SIZE); err != nil {
		return 0, err
	}
	putQueuePropHeader(data, property, ofp4.OFP_QUEUE_PROP_RATE_SIZE)
	binary.BigEndian.PutUint16(data[8:10], rate)
	ofp4.Zero(data[10:16])
	return ofp4.OFP_QUEUE_PROP_RATE_SIZE, nil
}

func (e *Encoder) PacketQueueLen(q PacketQueue) (int, error) {
	n, err := e.QueuePropsLen(q.Properties)
	if err != nil {
		return 0, err
	}
	total := ofp4.OFP_PACKET_QUEUE_SIZE + n
	if err := e.checkLen(kindPacketQueue, total); err != nil {
		return 0, err
	}
	return total, nil
}

func (e *Encoder) PacketQueuesLen(queues []PacketQueue) (int, error) {
	total := 0
	for _, q := range queues {
		n, err := e.PacketQueueLen(q)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// PackPacketQueue writes q followed by its properties.
func (e *Encoder) PackPacketQueue(q PacketQueue, data []byte) (int, error) {
	total, err := e.PacketQueueLen(q)
	if err != nil {
		return 0, err
	}
	if err := e.need(kindPacketQueue, data, total); err != nil {
		return 0, err
	}
	binary.BigEndian.PutUint32(data[0:4], q.QueueId)
	binary.BigEndian.PutUint32(data[4:8], q.Port)
	binary.BigEndian.PutUint16(data[8:10], uint16(total))
	ofp4.Zero(data[10:16])

	cur := ofp4.OFP_PACKET_QUEUE_SIZE
	for _, p := range q.Properties {
		n, err := e.PackQueueProp(p, data[cur:total])
		if err != nil {
			if skippable(err) {
				continue
			}
			return 0, fail(data[:total], err)
		}
		cur += n
	}
	if cur != total {
		return 0, e.violation(kindPacketQueue, data[:total], cur, total)
	}
	return total, nil
}
