package main

import (
	"encoding/hex"
	"io"
	"net"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/hkwi/oflib"
	"github.com/hkwi/oflib/action"
	"github.com/hkwi/oflib/ofp4"
	"github.com/hkwi/oflib/oxm"
)

// recordFile is the YAML document read by the encode command:
//
//	records:
//	  - flow: "table=3,priority=10,in_port=1,@apply,output=2"
//	  - group_desc:
//	      type: select
//	      group_id: 1
//	      buckets:
//	        - {weight: 10, watch_port: any, actions: "output=1"}
//	  - packet_queue:
//	      queue_id: 1
//	      port: 2
//	      properties: [{min_rate: 100}, {max_rate: 900}]
type recordFile struct {
	Records []recordEntry `yaml:"records"`
}

// recordEntry holds exactly one record.
type recordEntry struct {
	Flow        string           `yaml:"flow,omitempty"`
	GroupDesc   *groupDescEntry  `yaml:"group_desc,omitempty"`
	GroupStats  *groupStatsEntry `yaml:"group_stats,omitempty"`
	PacketQueue *queueEntry      `yaml:"packet_queue,omitempty"`
	Port        *portEntry       `yaml:"port,omitempty"`
	TableStats  *tableStatsEntry `yaml:"table_stats,omitempty"`
	PortStats   *portStatsEntry  `yaml:"port_stats,omitempty"`
	QueueStats  *queueStatsEntry `yaml:"queue_stats,omitempty"`
}

// portNo accepts a number or a reserved port name such as "controller".
type portNo uint32

func (p *portNo) UnmarshalYAML(node *yaml.Node) error {
	v, err := oxm.ParsePort(node.Value)
	if err != nil {
		return errors.Wrapf(err, "line %d", node.Line)
	}
	*p = portNo(v)
	return nil
}

// groupNo accepts a number, "any" or "all".
type groupNo uint32

func (g *groupNo) UnmarshalYAML(node *yaml.Node) error {
	switch node.Value {
	case "any":
		*g = ofp4.OFPG_ANY
	case "all":
		*g = ofp4.OFPG_ALL
	default:
		var v uint32
		if err := oxm.ParseInt(node.Value, &v); err != nil {
			return errors.Wrapf(err, "line %d", node.Line)
		}
		*g = groupNo(v)
	}
	return nil
}

// hexBytes is written as a hex string, "0x" prefix optional.
type hexBytes []byte

func (h *hexBytes) UnmarshalYAML(node *yaml.Node) error {
	v, err := hex.DecodeString(strings.TrimPrefix(node.Value, "0x"))
	if err != nil {
		return errors.Wrapf(err, "line %d", node.Line)
	}
	*h = v
	return nil
}

var groupTypes = map[string]uint8{
	"all":      ofp4.OFPGT_ALL,
	"select":   ofp4.OFPGT_SELECT,
	"indirect": ofp4.OFPGT_INDIRECT,
	"ff":       ofp4.OFPGT_FF,
}

type bucketEntry struct {
	Weight     uint16   `yaml:"weight"`
	WatchPort  *portNo  `yaml:"watch_port"`
	WatchGroup *groupNo `yaml:"watch_group"`
	Actions    string   `yaml:"actions"`
}

type groupDescEntry struct {
	Type    string        `yaml:"type"`
	GroupId groupNo       `yaml:"group_id"`
	Buckets []bucketEntry `yaml:"buckets"`
}

type counterEntry struct {
	PacketCount uint64 `yaml:"packet_count"`
	ByteCount   uint64 `yaml:"byte_count"`
}

type groupStatsEntry struct {
	GroupId      groupNo        `yaml:"group_id"`
	RefCount     uint32         `yaml:"ref_count"`
	PacketCount  uint64         `yaml:"packet_count"`
	ByteCount    uint64         `yaml:"byte_count"`
	DurationSec  uint32         `yaml:"duration_sec"`
	DurationNsec uint32         `yaml:"duration_nsec"`
	Counters     []counterEntry `yaml:"counters"`
}

type queuePropEntry struct {
	MinRate      *uint16  `yaml:"min_rate,omitempty"`
	MaxRate      *uint16  `yaml:"max_rate,omitempty"`
	Experimenter *uint32  `yaml:"experimenter,omitempty"`
	Data         hexBytes `yaml:"data,omitempty"`
}

type queueEntry struct {
	QueueId    uint32           `yaml:"queue_id"`
	Port       portNo           `yaml:"port"`
	Properties []queuePropEntry `yaml:"properties"`
}

type portEntry struct {
	PortNo     portNo `yaml:"port_no"`
	HwAddr     string `yaml:"hw_addr"`
	Name       string `yaml:"name"`
	Config     uint32 `yaml:"config"`
	State      uint32 `yaml:"state"`
	Curr       uint32 `yaml:"curr"`
	Advertised uint32 `yaml:"advertised"`
	Supported  uint32 `yaml:"supported"`
	Peer       uint32 `yaml:"peer"`
	CurrSpeed  uint32 `yaml:"curr_speed"`
	MaxSpeed   uint32 `yaml:"max_speed"`
}

type tableStatsEntry struct {
	TableId      uint8  `yaml:"table_id"`
	ActiveCount  uint32 `yaml:"active_count"`
	LookupCount  uint64 `yaml:"lookup_count"`
	MatchedCount uint64 `yaml:"matched_count"`
}

type portStatsEntry struct {
	PortNo       portNo `yaml:"port_no"`
	RxPackets    uint64 `yaml:"rx_packets"`
	TxPackets    uint64 `yaml:"tx_packets"`
	RxBytes      uint64 `yaml:"rx_bytes"`
	TxBytes      uint64 `yaml:"tx_bytes"`
	RxDropped    uint64 `yaml:"rx_dropped"`
	TxDropped    uint64 `yaml:"tx_dropped"`
	RxErrors     uint64 `yaml:"rx_errors"`
	TxErrors     uint64 `yaml:"tx_errors"`
	RxFrameErr   uint64 `yaml:"rx_frame_err"`
	RxOverErr    uint64 `yaml:"rx_over_err"`
	RxCrcErr     uint64 `yaml:"rx_crc_err"`
	Collisions   uint64 `yaml:"collisions"`
	DurationSec  uint32 `yaml:"duration_sec"`
	DurationNsec uint32 `yaml:"duration_nsec"`
}

type queueStatsEntry struct {
	PortNo       portNo `yaml:"port_no"`
	QueueId      uint32 `yaml:"queue_id"`
	TxBytes      uint64 `yaml:"tx_bytes"`
	TxPackets    uint64 `yaml:"tx_packets"`
	TxErrors     uint64 `yaml:"tx_errors"`
	DurationSec  uint32 `yaml:"duration_sec"`
	DurationNsec uint32 `yaml:"duration_nsec"`
}

var errBadRecord = errors.New("bad record")

// ReadRecords decodes a YAML record file.
func ReadRecords(r io.Reader) ([]oflib.Record, error) {
	var f recordFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(err, "decode records")
	}
	ret := make([]oflib.Record, 0, len(f.Records))
	for i, entry := range f.Records {
		rec, err := entry.record()
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", i)
		}
		ret = append(ret, rec)
	}
	return ret, nil
}

func (s recordEntry) record() (oflib.Record, error) {
	var ret []oflib.Record
	if s.Flow != "" {
		fs, err := oflib.ParseFlowStats(s.Flow)
		if err != nil {
			return nil, err
		}
		ret = append(ret, fs)
	}
	if s.GroupDesc != nil {
		gd, err := s.GroupDesc.record()
		if err != nil {
			return nil, err
		}
		ret = append(ret, gd)
	}
	if s.GroupStats != nil {
		ret = append(ret, s.GroupStats.record())
	}
	if s.PacketQueue != nil {
		pq, err := s.PacketQueue.record()
		if err != nil {
			return nil, err
		}
		ret = append(ret, pq)
	}
	if s.Port != nil {
		p, err := s.Port.record()
		if err != nil {
			return nil, err
		}
		ret = append(ret, p)
	}
	if t := s.TableStats; t != nil {
		ret = append(ret, oflib.TableStats(*t))
	}
	if p := s.PortStats; p != nil {
		ret = append(ret, oflib.PortStats{
			PortNo:       uint32(p.PortNo),
			RxPackets:    p.RxPackets,
			TxPackets:    p.TxPackets,
			RxBytes:      p.RxBytes,
			TxBytes:      p.TxBytes,
			RxDropped:    p.RxDropped,
			TxDropped:    p.TxDropped,
			RxErrors:     p.RxErrors,
			TxErrors:     p.TxErrors,
			RxFrameErr:   p.RxFrameErr,
			RxOverErr:    p.RxOverErr,
			RxCrcErr:     p.RxCrcErr,
			Collisions:   p.Collisions,
			DurationSec:  p.DurationSec,
			DurationNsec: p.DurationNsec,
		})
	}
	if q := s.QueueStats; q != nil {
		ret = append(ret, oflib.QueueStats{
			PortNo:       uint32(q.PortNo),
			QueueId:      q.QueueId,
			TxBytes:      q.TxBytes,
			TxPackets:    q.TxPackets,
			TxErrors:     q.TxErrors,
			DurationSec:  q.DurationSec,
			DurationNsec: q.DurationNsec,
		})
	}
	if len(ret) != 1 {
		return nil, errors.Wrapf(errBadRecord, "want exactly one record kind, got %d", len(ret))
	}
	return ret[0], nil
}

func (s groupDescEntry) record() (oflib.GroupDescStats, error) {
	gtype, ok := groupTypes[s.Type]
	if !ok {
		return oflib.GroupDescStats{}, errors.Wrapf(errBadRecord, "group type %q", s.Type)
	}
	ret := oflib.GroupDescStats{
		Type:    gtype,
		GroupId: uint32(s.GroupId),
	}
	for _, b := range s.Buckets {
		actions, err := action.ParseList(b.Actions)
		if err != nil {
			return ret, err
		}
		bucket := oflib.Bucket{
			Weight:     b.Weight,
			WatchPort:  ofp4.OFPP_ANY,
			WatchGroup: ofp4.OFPG_ANY,
			Actions:    actions,
		}
		if b.WatchPort != nil {
			bucket.WatchPort = uint32(*b.WatchPort)
		}
		if b.WatchGroup != nil {
			bucket.WatchGroup = uint32(*b.WatchGroup)
		}
		ret.Buckets = append(ret.Buckets, bucket)
	}
	return ret, nil
}

func (s groupStatsEntry) record() oflib.GroupStats {
	ret := oflib.GroupStats{
		GroupId:      uint32(s.GroupId),
		RefCount:     s.RefCount,
		PacketCount:  s.PacketCount,
		ByteCount:    s.ByteCount,
		DurationSec:  s.DurationSec,
		DurationNsec: s.DurationNsec,
	}
	for _, c := range s.Counters {
		ret.Counters = append(ret.Counters, oflib.BucketCounter(c))
	}
	return ret
}

func (s queuePropEntry) prop() (oflib.QueueProp, error) {
	switch {
	case s.MinRate != nil:
		return oflib.QueuePropMinRate{Rate: *s.MinRate}, nil
	case s.MaxRate != nil:
		return oflib.QueuePropMaxRate{Rate: *s.MaxRate}, nil
	case s.Experimenter != nil:
		return oflib.QueuePropExperimenter{Experimenter: *s.Experimenter, Data: s.Data}, nil
	}
	return nil, errors.Wrap(errBadRecord, "empty queue property")
}

func (s queueEntry) record() (oflib.PacketQueue, error) {
	ret := oflib.PacketQueue{
		QueueId: s.QueueId,
		Port:    uint32(s.Port),
	}
	for _, p := range s.Properties {
		prop, err := p.prop()
		if err != nil {
			return ret, err
		}
		ret.Properties = append(ret.Properties, prop)
	}
	return ret, nil
}

func (s portEntry) record() (oflib.Port, error) {
	ret := oflib.Port{
		PortNo:     uint32(s.PortNo),
		Name:       s.Name,
		Config:     s.Config,
		State:      s.State,
		Curr:       s.Curr,
		Advertised: s.Advertised,
		Supported:  s.Supported,
		Peer:       s.Peer,
		CurrSpeed:  s.CurrSpeed,
		MaxSpeed:   s.MaxSpeed,
	}
	if s.HwAddr != "" {
		mac, err := net.ParseMAC(s.HwAddr)
		if err != nil {
			return ret, errors.Wrapf(errBadRecord, "hw_addr: %v", err)
		}
		ret.HwAddr = mac
	}
	return ret, nil
}
