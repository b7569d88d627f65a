package oxm

import (
	"encoding/binary"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

func wire16(hdr Header, v uint16) Field {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, v)
	return Field{Header: hdr, Value: buf}
}

func wire32(hdr Header, v uint32) Field {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, v)
	return Field{Header: hdr, Value: buf}
}

// FromPacket lifts the match fields of a decoded frame received on inPort.
// The result is in network byte order and must be encoded with WireOrder.
// Only the outermost occurrence of each protocol is used.
func FromPacket(pkt gopacket.Packet, inPort uint32) []Field {
	fields := []Field{wire32(OXM_OF_IN_PORT, inPort)}
	seen := map[gopacket.LayerType]bool{}
	vlan := false
	ethType := layers.EthernetType(0)
	mpls := false

	for _, layer := range pkt.Layers() {
		if seen[layer.LayerType()] {
			continue
		}
		seen[layer.LayerType()] = true

		switch t := layer.(type) {
		case *layers.Ethernet:
			fields = append(fields,
				Bytes(OXM_OF_ETH_DST, t.DstMAC, nil),
				Bytes(OXM_OF_ETH_SRC, t.SrcMAC, nil))
			ethType = t.EthernetType
		case *layers.Dot1Q:
			vlan = true
			fields = append(fields,
				wire16(OXM_OF_VLAN_VID, t.VLANIdentifier|OFPVID_PRESENT),
				Uint8(OXM_OF_VLAN_PCP, t.Priority))
			ethType = t.Type
		case *layers.MPLS:
			if !mpls {
				mpls = true
				bos := uint8(0)
				if t.StackBottom {
					bos = 1
				}
				fields = append(fields,
					wire32(OXM_OF_MPLS_LABEL, t.Label),
					Uint8(OXM_OF_MPLS_TC, t.TrafficClass),
					Uint8(OXM_OF_MPLS_BOS, bos))
			}
		case *layers.ARP:
			fields = append(fields,
				wire16(OXM_OF_ARP_OP, t.Operation),
				Bytes(OXM_OF_ARP_SPA, t.SourceProtAddress, nil),
				Bytes(OXM_OF_ARP_TPA, t.DstProtAddress, nil),
				Bytes(OXM_OF_ARP_SHA, t.SourceHwAddress, nil),
				Bytes(OXM_OF_ARP_THA, t.DstHwAddress, nil))
		case *layers.IPv4:
			fields = append(fields,
				Uint8(OXM_OF_IP_DSCP, t.TOS>>2),
				Uint8(OXM_OF_IP_ECN, t.TOS&0x03),
				Uint8(OXM_OF_IP_PROTO, uint8(t.Protocol)),
				Bytes(OXM_OF_IPV4_SRC, t.SrcIP.To4(), nil),
				Bytes(OXM_OF_IPV4_DST, t.DstIP.To4(), nil))
		case *layers.IPv6:
			fields = append(fields,
				Uint8(OXM_OF_IP_DSCP, t.TrafficClass>>2),
				Uint8(OXM_OF_IP_ECN, t.TrafficClass&0x03),
				Uint8(OXM_OF_IP_PROTO, uint8(t.NextHeader)),
				Bytes(OXM_OF_IPV6_SRC, t.SrcIP.To16(), nil),
				Bytes(OXM_OF_IPV6_DST, t.DstIP.To16(), nil),
				wire32(OXM_OF_IPV6_FLABEL, t.FlowLabel))
		case *layers.TCP:
			fields = append(fields,
				wire16(OXM_OF_TCP_SRC, uint16(t.SrcPort)),
				wire16(OXM_OF_TCP_DST, uint16(t.DstPort)))
		case *layers.UDP:
			fields = append(fields,
				wire16(OXM_OF_UDP_SRC, uint16(t.SrcPort)),
				wire16(OXM_OF_UDP_DST, uint16(t.DstPort)))
		case *layers.SCTP:
			fields = append(fields,
				wire16(OXM_OF_SCTP_SRC, uint16(t.SrcPort)),
				wire16(OXM_OF_SCTP_DST, uint16(t.DstPort)))
		case *layers.ICMPv4:
			fields = append(fields,
				Uint8(OXM_OF_ICMPV4_TYPE, t.TypeCode.Type()),
				Uint8(OXM_OF_ICMPV4_CODE, t.TypeCode.Code()))
		case *layers.ICMPv6:
			fields = append(fields,
				Uint8(OXM_OF_ICMPV6_TYPE, t.TypeCode.Type()),
				Uint8(OXM_OF_ICMPV6_CODE, t.TypeCode.Code()))
		}
	}
	if !vlan {
		fields = append(fields, wire16(OXM_OF_VLAN_VID, OFPVID_NONE))
	}
	if ethType != 0 {
		fields = append(fields, wire16(OXM_OF_ETH_TYPE, uint16(ethType)))
	}
	return fields
}
