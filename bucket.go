package oflib

import (
	"encoding/binary"

	"github.com/samber/lo"

	"github.com/hkwi/oflib/ofp4"
)

// BucketLen returns the wire length of b, padded to 8 bytes.
func (e *Encoder) BucketLen(b Bucket) (int, error) {
	n, err := e.actionsLen(b.Actions)
	if err != nil {
		return 0, err
	}
	total := ofp4.Align8(ofp4.OFP_BUCKET_SIZE + n)
	if err := e.checkLen(kindBucket, total); err != nil {
		return 0, err
	}
	return total, nil
}

func (e *Encoder) BucketsLen(buckets []Bucket) (int, error) {
	total := 0
	for _, b := range buckets {
		n, err := e.BucketLen(b)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// PackBucket writes b and zero fills up to the 8 byte boundary.
func (e *Encoder) PackBucket(b Bucket, data []byte) (int, error) {
	total, err := e.BucketLen(b)
	if err != nil {
		return 0, err
	}
	if err := e.need(kindBucket, data, total); err != nil {
		return 0, err
	}
	binary.BigEndian.PutUint16(data[0:2], uint16(total))
	binary.BigEndian.PutUint16(data[2:4], b.Weight)
	binary.BigEndian.PutUint32(data[4:8], b.WatchPort)
	binary.BigEndian.PutUint32(data[8:12], b.WatchGroup)
	ofp4.Zero(data[12:16])

	cur := ofp4.OFP_BUCKET_SIZE
	for _, a := range b.Actions {
		n, err := e.packAction(kindBucket, a, data[cur:total])
		if err != nil {
			return 0, fail(data[:total], err)
		}
		cur += n
	}
	if ofp4.Align8(cur) != total {
		return 0, e.violation(kindBucket, data[:total], cur, total)
	}
	ofp4.Zero(data[cur:total])
	return total, nil
}

// BucketCountersLen is the wire length of n bucket counters.
func BucketCountersLen(counters []BucketCounter) int {
	return len(counters) * ofp4.OFP_BUCKET_COUNTER_SIZE
}

// GroupStatsLen does not depend on any collaborator.
func GroupStatsLen(g GroupStats) int {
	return ofp4.OFP_GROUP_STATS_SIZE + BucketCountersLen(g.Counters)
}

func GroupStatsListLen(stats []GroupStats) int {
	return lo.SumBy(stats, GroupStatsLen)
}
