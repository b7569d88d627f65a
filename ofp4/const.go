package ofp4

const OFP_VERSION = 0x04

const OFP_MAX_PORT_NAME_LEN = 16

// fixed part of each wire record, in bytes
const (
	OFP_MATCH_SIZE                  = 8
	OFP_MATCH_STANDARD_SIZE         = 88
	OFP_INSTRUCTION_SIZE            = 8
	OFP_INSTRUCTION_WRITE_META_SIZE = 24
	OFP_BUCKET_SIZE                 = 16
	OFP_FLOW_STATS_SIZE             = 56
	OFP_GROUP_STATS_SIZE            = 40
	OFP_BUCKET_COUNTER_SIZE         = 16
	OFP_GROUP_DESC_SIZE             = 8
	OFP_PACKET_QUEUE_SIZE           = 16
	OFP_QUEUE_PROP_HEADER_SIZE      = 8
	OFP_QUEUE_PROP_RATE_SIZE        = 16
	OFP_QUEUE_PROP_EXPERIMENTER     = 16
	OFP_PORT_SIZE                   = 64
	OFP_TABLE_STATS_SIZE            = 24
	OFP_PORT_STATS_SIZE             = 112
	OFP_QUEUE_STATS_SIZE            = 40
	OFP_ACTION_HEADER_SIZE          = 8
)

const (
	OFPP_MAX        = 0xffffff00
	OFPP_IN_PORT    = 0xfffffff8
	OFPP_TABLE      = 0xfffffff9
	OFPP_NORMAL     = 0xfffffffa
	OFPP_FLOOD      = 0xfffffffb
	OFPP_ALL        = 0xfffffffc
	OFPP_CONTROLLER = 0xfffffffd
	OFPP_LOCAL      = 0xfffffffe
	OFPP_ANY        = 0xffffffff
)

const (
	OFPG_MAX = 0xffffff00
	OFPG_ALL = 0xfffffffc
	OFPG_ANY = 0xffffffff
)

const (
	OFPQ_ALL = 0xffffffff
)

const (
	OFPTT_MAX = 0xfe
	OFPTT_ALL = 0xff
)

const (
	OFPIT_GOTO_TABLE     = 1
	OFPIT_WRITE_METADATA = 2
	OFPIT_WRITE_ACTIONS  = 3
	OFPIT_APPLY_ACTIONS  = 4
	OFPIT_CLEAR_ACTIONS  = 5
	OFPIT_METER          = 6
	OFPIT_EXPERIMENTER   = 0xffff
)

const (
	OFPAT_OUTPUT       = 0
	OFPAT_COPY_TTL_OUT = 11
	OFPAT_COPY_TTL_IN  = 12
	OFPAT_SET_MPLS_TTL = 15
	OFPAT_DEC_MPLS_TTL = 16
	OFPAT_PUSH_VLAN    = 17
	OFPAT_POP_VLAN     = 18
	OFPAT_PUSH_MPLS    = 19
	OFPAT_POP_MPLS     = 20
	OFPAT_SET_QUEUE    = 21
	OFPAT_GROUP        = 22
	OFPAT_SET_NW_TTL   = 23
	OFPAT_DEC_NW_TTL   = 24
	OFPAT_SET_FIELD    = 25
	OFPAT_PUSH_PBB     = 26
	OFPAT_POP_PBB      = 27
	OFPAT_EXPERIMENTER = 0xffff
)

const (
	OFPCML_MAX       = 0xffe5
	OFPCML_NO_BUFFER = 0xffff
)

const (
	OFPQT_MIN_RATE     = 1
	OFPQT_MAX_RATE     = 2
	OFPQT_EXPERIMENTER = 0xffff
)

const (
	OFPQ_MIN_RATE_UNCFG = 0xffff
	OFPQ_MAX_RATE_UNCFG = 0xffff
)

const (
	OFPMT_STANDARD = 0
	OFPMT_OXM      = 1
)

// wildcards of the fixed-layout OFPMT_STANDARD match
const (
	OFPFW_IN_PORT = 1 << iota
	OFPFW_DL_VLAN
	OFPFW_DL_VLAN_PCP
	OFPFW_DL_TYPE
	OFPFW_NW_TOS
	OFPFW_NW_PROTO
	OFPFW_TP_SRC
	OFPFW_TP_DST
	OFPFW_MPLS_LABEL
	OFPFW_MPLS_TC
	OFPFW_ALL = 1<<iota - 1
)

const (
	OFPGT_ALL      = 0
	OFPGT_SELECT   = 1
	OFPGT_INDIRECT = 2
	OFPGT_FF       = 3
)

const (
	OFPFF_SEND_FLOW_REM = 1 << iota
	OFPFF_CHECK_OVERLAP
	OFPFF_RESET_COUNTS
	OFPFF_NO_PKT_COUNTS
	OFPFF_NO_BYT_COUNTS
)

const (
	OFPPC_PORT_DOWN    = 1 << 0
	OFPPC_NO_RECV      = 1 << 2
	OFPPC_NO_FWD       = 1 << 5
	OFPPC_NO_PACKET_IN = 1 << 6
)

const (
	OFPPS_LINK_DOWN = 1 << iota
	OFPPS_BLOCKED
	OFPPS_LIVE
)

const (
	OFPPF_10MB_HD = 1 << iota
	OFPPF_10MB_FD
	OFPPF_100MB_HD
	OFPPF_100MB_FD
	OFPPF_1GB_HD
	OFPPF_1GB_FD
	OFPPF_10GB_FD
	OFPPF_40GB_FD
	OFPPF_100GB_FD
	OFPPF_1TB_FD
	OFPPF_OTHER
	OFPPF_COPPER
	OFPPF_FIBER
	OFPPF_AUTONEG
	OFPPF_PAUSE
	OFPPF_PAUSE_ASYM
)
