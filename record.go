package oflib

import (
	"net"

	"github.com/google/gopacket/layers"

	"github.com/hkwi/oflib/action"
	"github.com/hkwi/oflib/ofp4"
	"github.com/hkwi/oflib/oxm"
)

// Record is any logical record the Encoder can size and pack.
type Record interface {
	recordKind() string
}

// Instruction is one of the Instruction* types.
type Instruction interface {
	Record
	instruction()
}

type InstructionGotoTable struct {
	TableId uint8
}

type InstructionWriteMetadata struct {
	Metadata     uint64
	MetadataMask uint64
}

// InstructionActions is write_actions or apply_actions, selected by Type.
type InstructionActions struct {
	Type    uint16
	Actions []action.Action
}

type InstructionClearActions struct{}

type InstructionMeter struct {
	MeterId uint32
}

// InstructionExperimenter is sized and packed by the InstructionHandler
// registered for Experimenter.
type InstructionExperimenter struct {
	Experimenter uint32
	Data         []byte
}

// InstructionUnknown stands for an instruction type this package cannot encode.
type InstructionUnknown struct {
	Type uint16
}

func (InstructionGotoTable) instruction()     {}
func (InstructionWriteMetadata) instruction() {}
func (InstructionActions) instruction()       {}
func (InstructionClearActions) instruction()  {}
func (InstructionMeter) instruction()         {}
func (InstructionExperimenter) instruction()  {}
func (InstructionUnknown) instruction()       {}

func (InstructionGotoTable) recordKind() string     { return kindInstruction }
func (InstructionWriteMetadata) recordKind() string { return kindInstruction }
func (InstructionActions) recordKind() string       { return kindInstruction }
func (InstructionClearActions) recordKind() string  { return kindInstruction }
func (InstructionMeter) recordKind() string         { return kindInstruction }
func (InstructionExperimenter) recordKind() string  { return kindInstruction }
func (InstructionUnknown) recordKind() string       { return kindInstruction }

// Match is one of MatchStandard, MatchOXM or MatchExperimenter.
type Match interface {
	Record
	matchType() uint16
}

// MatchStandard is the fixed layout OFPMT_STANDARD match.
type MatchStandard struct {
	InPort       uint32
	Wildcards    uint32
	DlSrc        net.HardwareAddr
	DlSrcMask    net.HardwareAddr
	DlDst        net.HardwareAddr
	DlDstMask    net.HardwareAddr
	DlVlan       uint16
	DlVlanPcp    uint8
	DlType       layers.EthernetType
	NwTos        uint8
	NwProto      layers.IPProtocol
	NwSrc        net.IP
	NwSrcMask    net.IP
	NwDst        net.IP
	NwDstMask    net.IP
	TpSrc        uint16
	TpDst        uint16
	MplsLabel    uint32
	MplsTc       uint8
	Metadata     uint64
	MetadataMask uint64
}

// MatchOXM holds the TLV fields of an OFPMT_OXM match.
type MatchOXM struct {
	Fields []oxm.Field
}

// MatchExperimenter is sized and packed by the MatchHandler registered for Type.
type MatchExperimenter struct {
	Type uint16
	Data []byte
}

func (MatchStandard) matchType() uint16       { return ofp4.OFPMT_STANDARD }
func (MatchOXM) matchType() uint16            { return ofp4.OFPMT_OXM }
func (m MatchExperimenter) matchType() uint16 { return m.Type }

func (MatchStandard) recordKind() string     { return kindMatch }
func (MatchOXM) recordKind() string          { return kindMatch }
func (MatchExperimenter) recordKind() string { return kindMatch }

type Bucket struct {
	Weight     uint16
	WatchPort  uint32
	WatchGroup uint32
	Actions    []action.Action
}

type FlowStats struct {
	TableId      uint8
	DurationSec  uint32
	DurationNsec uint32
	Priority     uint16
	IdleTimeout  uint16
	HardTimeout  uint16
	Flags        uint16
	Cookie       uint64
	PacketCount  uint64
	ByteCount    uint64
	Match        Match
	Instructions []Instruction
}

type BucketCounter struct {
	PacketCount uint64
	ByteCount   uint64
}

type GroupStats struct {
	GroupId      uint32
	RefCount     uint32
	PacketCount  uint64
	ByteCount    uint64
	DurationSec  uint32
	DurationNsec uint32
	Counters     []BucketCounter
}

type GroupDescStats struct {
	Type    uint8
	GroupId uint32
	Buckets []Bucket
}

// QueueProp is one of the QueueProp* types.
type QueueProp interface {
	Record
	queueProp()
}

type QueuePropMinRate struct {
	Rate uint16
}

type QueuePropMaxRate struct {
	Rate uint16
}

// QueuePropExperimenter carries its opaque body in Data. The property is
// 16+len(Data) bytes rounded up to 8, the tail zero filled, and no
// experimenter handler is consulted.
type QueuePropExperimenter struct {
	Experimenter uint32
	Data         []byte
}

// QueuePropUnknown stands for a property type this package cannot encode.
type QueuePropUnknown struct {
	Property uint16
}

func (QueuePropMinRate) queueProp()      {}
func (QueuePropMaxRate) queueProp()      {}
func (QueuePropExperimenter) queueProp() {}
func (QueuePropUnknown) queueProp()      {}

func (QueuePropMinRate) recordKind() string      { return kindQueueProp }
func (QueuePropMaxRate) recordKind() string      { return kindQueueProp }
func (QueuePropExperimenter) recordKind() string { return kindQueueProp }
func (QueuePropUnknown) recordKind() string      { return kindQueueProp }

type PacketQueue struct {
	QueueId    uint32
	Port       uint32
	Properties []QueueProp
}

type Port struct {
	PortNo     uint32
	HwAddr     net.HardwareAddr
	Name       string
	Config     uint32
	State      uint32
	Curr       uint32
	Advertised uint32
	Supported  uint32
	Peer       uint32
	CurrSpeed  uint32
	MaxSpeed   uint32
}

type TableStats struct {
	TableId      uint8
	ActiveCount  uint32
	LookupCount  uint64
	MatchedCount uint64
}

type PortStats struct {
	PortNo       uint32
	RxPackets    uint64
	TxPackets    uint64
	RxBytes      uint64
	TxBytes      uint64
	RxDropped    uint64
	TxDropped    uint64
	RxErrors     uint64
	TxErrors     uint64
	RxFrameErr   uint64
	RxOverErr    uint64
	RxCrcErr     uint64
	Collisions   uint64
	DurationSec  uint32
	DurationNsec uint32
}

type QueueStats struct {
	PortNo       uint32
	QueueId      uint32
	TxBytes      uint64
	TxPackets    uint64
	TxErrors     uint64
	DurationSec  uint32
	DurationNsec uint32
}

const (
	kindInstruction    = "instruction"
	kindMatch          = "match"
	kindBucket         = "bucket"
	kindFlowStats      = "flow_stats"
	kindBucketCounter  = "bucket_counter"
	kindGroupStats     = "group_stats"
	kindGroupDescStats = "group_desc_stats"
	kindQueueProp      = "queue_prop"
	kindPacketQueue    = "packet_queue"
	kindPort           = "port"
	kindTableStats     = "table_stats"
	kindPortStats      = "port_stats"
	kindQueueStats     = "queue_stats"
)

func (Bucket) recordKind() string         { return kindBucket }
func (FlowStats) recordKind() string      { return kindFlowStats }
func (BucketCounter) recordKind() string  { return kindBucketCounter }
func (GroupStats) recordKind() string     { return kindGroupStats }
func (GroupDescStats) recordKind() string { return kindGroupDescStats }
func (PacketQueue) recordKind() string    { return kindPacketQueue }
func (Port) recordKind() string           { return kindPort }
func (TableStats) recordKind() string     { return kindTableStats }
func (PortStats) recordKind() string      { return kindPortStats }
func (QueueStats) recordKind() string     { return kindQueueStats }
