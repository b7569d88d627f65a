/*
Package oxm implements the OpenFlow Extensible Match TLV codec.

An OXM TLV is a 32-bit header followed by the payload:

	+----------------+---------+---+--------+
	| class (16)     |field (7)|hm |len (8) |
	+----------------+---------+---+--------+
	| value ... | mask ... (when hm is set) |

Field values are held in Field records. Integer fields built by this
package's constructors and parsers are in host byte order and must be
encoded with HostOrder. Fields lifted from packet bytes (FromPacket) are
already in network byte order and are encoded with WireOrder.
*/
package oxm

type Header uint32

const hasMaskBit = 1 << 8

func (self Header) Class() uint16 {
	return uint16(self >> 16)
}

func (self Header) Field() uint8 {
	return uint8(self>>9) & 0x7f
}

func (self Header) HasMask() bool {
	return self&hasMaskBit != 0
}

// Length is the payload length, excluding the 4 byte header.
func (self Header) Length() int {
	return int(self & 0xff)
}

// Type strips hasmask and length, leaving class and field.
func (self Header) Type() Header {
	return self &^ 0x1ff
}

func (self *Header) SetMask(mask bool) {
	if mask {
		*self |= hasMaskBit
	} else {
		*self &^= hasMaskBit
	}
}

func (self *Header) SetLength(length int) {
	*self = *self&^0xff | Header(length&0xff)
}

func basic(field uint32, length uint32) Header {
	return Header(OFPXMC_OPENFLOW_BASIC<<16 | field<<9 | length)
}

var (
	OXM_OF_IN_PORT        = basic(OFPXMT_OFB_IN_PORT, 4)
	OXM_OF_IN_PHY_PORT    = basic(OFPXMT_OFB_IN_PHY_PORT, 4)
	OXM_OF_METADATA       = basic(OFPXMT_OFB_METADATA, 8)
	OXM_OF_ETH_DST        = basic(OFPXMT_OFB_ETH_DST, 6)
	OXM_OF_ETH_SRC        = basic(OFPXMT_OFB_ETH_SRC, 6)
	OXM_OF_ETH_TYPE       = basic(OFPXMT_OFB_ETH_TYPE, 2)
	OXM_OF_VLAN_VID       = basic(OFPXMT_OFB_VLAN_VID, 2)
	OXM_OF_VLAN_PCP       = basic(OFPXMT_OFB_VLAN_PCP, 1)
	OXM_OF_IP_DSCP        = basic(OFPXMT_OFB_IP_DSCP, 1)
	OXM_OF_IP_ECN         = basic(OFPXMT_OFB_IP_ECN, 1)
	OXM_OF_IP_PROTO       = basic(OFPXMT_OFB_IP_PROTO, 1)
	OXM_OF_IPV4_SRC       = basic(OFPXMT_OFB_IPV4_SRC, 4)
	OXM_OF_IPV4_DST       = basic(OFPXMT_OFB_IPV4_DST, 4)
	OXM_OF_TCP_SRC        = basic(OFPXMT_OFB_TCP_SRC, 2)
	OXM_OF_TCP_DST        = basic(OFPXMT_OFB_TCP_DST, 2)
	OXM_OF_UDP_SRC        = basic(OFPXMT_OFB_UDP_SRC, 2)
	OXM_OF_UDP_DST        = basic(OFPXMT_OFB_UDP_DST, 2)
	OXM_OF_SCTP_SRC       = basic(OFPXMT_OFB_SCTP_SRC, 2)
	OXM_OF_SCTP_DST       = basic(OFPXMT_OFB_SCTP_DST, 2)
	OXM_OF_ICMPV4_TYPE    = basic(OFPXMT_OFB_ICMPV4_TYPE, 1)
	OXM_OF_ICMPV4_CODE    = basic(OFPXMT_OFB_ICMPV4_CODE, 1)
	OXM_OF_ARP_OP         = basic(OFPXMT_OFB_ARP_OP, 2)
	OXM_OF_ARP_SPA        = basic(OFPXMT_OFB_ARP_SPA, 4)
	OXM_OF_ARP_TPA        = basic(OFPXMT_OFB_ARP_TPA, 4)
	OXM_OF_ARP_SHA        = basic(OFPXMT_OFB_ARP_SHA, 6)
	OXM_OF_ARP_THA        = basic(OFPXMT_OFB_ARP_THA, 6)
	OXM_OF_IPV6_SRC       = basic(OFPXMT_OFB_IPV6_SRC, 16)
	OXM_OF_IPV6_DST       = basic(OFPXMT_OFB_IPV6_DST, 16)
	OXM_OF_IPV6_FLABEL    = basic(OFPXMT_OFB_IPV6_FLABEL, 4)
	OXM_OF_ICMPV6_TYPE    = basic(OFPXMT_OFB_ICMPV6_TYPE, 1)
	OXM_OF_ICMPV6_CODE    = basic(OFPXMT_OFB_ICMPV6_CODE, 1)
	OXM_OF_IPV6_ND_TARGET = basic(OFPXMT_OFB_IPV6_ND_TARGET, 16)
	OXM_OF_IPV6_ND_SLL    = basic(OFPXMT_OFB_IPV6_ND_SLL, 6)
	OXM_OF_IPV6_ND_TLL    = basic(OFPXMT_OFB_IPV6_ND_TLL, 6)
	OXM_OF_MPLS_LABEL     = basic(OFPXMT_OFB_MPLS_LABEL, 4)
	OXM_OF_MPLS_TC        = basic(OFPXMT_OFB_MPLS_TC, 1)
	OXM_OF_MPLS_BOS       = basic(OFPXMT_OFB_MPLS_BOS, 1)
	OXM_OF_PBB_ISID       = basic(OFPXMT_OFB_PBB_ISID, 3)
	OXM_OF_TUNNEL_ID      = basic(OFPXMT_OFB_TUNNEL_ID, 8)
	OXM_OF_IPV6_EXTHDR    = basic(OFPXMT_OFB_IPV6_EXTHDR, 2)
)

// integer reports whether the basic field carries a 2, 4 or 8 byte
// integer, the only payloads affected by byte order.
func (self Header) integer() bool {
	if self.Class() != OFPXMC_OPENFLOW_BASIC {
		return false
	}
	switch self.Field() {
	case OFPXMT_OFB_IN_PORT,
		OFPXMT_OFB_IN_PHY_PORT,
		OFPXMT_OFB_METADATA,
		OFPXMT_OFB_ETH_TYPE,
		OFPXMT_OFB_VLAN_VID,
		OFPXMT_OFB_TCP_SRC,
		OFPXMT_OFB_TCP_DST,
		OFPXMT_OFB_UDP_SRC,
		OFPXMT_OFB_UDP_DST,
		OFPXMT_OFB_SCTP_SRC,
		OFPXMT_OFB_SCTP_DST,
		OFPXMT_OFB_ARP_OP,
		OFPXMT_OFB_IPV6_FLABEL,
		OFPXMT_OFB_MPLS_LABEL,
		OFPXMT_OFB_TUNNEL_ID,
		OFPXMT_OFB_IPV6_EXTHDR:
		return true
	}
	return false
}
