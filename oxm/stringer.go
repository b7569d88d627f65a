package oxm

import (
	"encoding/binary"
	"fmt"
	"net"
	"strconv"
	"strings"
	"unicode"

	"github.com/hkwi/oflib/ofp4"
)

type fieldKind int

const (
	kindPort fieldKind = iota
	kindDec8
	kindHex8
	kindDec16
	kindHex16
	kindHex32
	kindHex64
	kindISID
	kindMAC
	kindIPv4
	kindIPv6
)

type fieldInfo struct {
	name     string
	hdr      Header
	kind     fieldKind
	maskable bool
}

var basicFields = []fieldInfo{
	{"in_port", OXM_OF_IN_PORT, kindPort, false},
	{"in_phy_port", OXM_OF_IN_PHY_PORT, kindPort, false},
	{"metadata", OXM_OF_METADATA, kindHex64, true},
	{"eth_dst", OXM_OF_ETH_DST, kindMAC, true},
	{"eth_src", OXM_OF_ETH_SRC, kindMAC, true},
	{"eth_type", OXM_OF_ETH_TYPE, kindHex16, false},
	{"vlan_vid", OXM_OF_VLAN_VID, kindHex16, true},
	{"vlan_pcp", OXM_OF_VLAN_PCP, kindDec8, false},
	{"ip_dscp", OXM_OF_IP_DSCP, kindHex8, false},
	{"ip_ecn", OXM_OF_IP_ECN, kindHex8, false},
	{"ip_proto", OXM_OF_IP_PROTO, kindDec8, false},
	{"ipv4_src", OXM_OF_IPV4_SRC, kindIPv4, true},
	{"ipv4_dst", OXM_OF_IPV4_DST, kindIPv4, true},
	{"tcp_src", OXM_OF_TCP_SRC, kindDec16, false},
	{"tcp_dst", OXM_OF_TCP_DST, kindDec16, false},
	{"udp_src", OXM_OF_UDP_SRC, kindDec16, false},
	{"udp_dst", OXM_OF_UDP_DST, kindDec16, false},
	{"sctp_src", OXM_OF_SCTP_SRC, kindDec16, false},
	{"sctp_dst", OXM_OF_SCTP_DST, kindDec16, false},
	{"icmpv4_type", OXM_OF_ICMPV4_TYPE, kindDec8, false},
	{"icmpv4_code", OXM_OF_ICMPV4_CODE, kindDec8, false},
	{"arp_op", OXM_OF_ARP_OP, kindDec16, false},
	{"arp_spa", OXM_OF_ARP_SPA, kindIPv4, true},
	{"arp_tpa", OXM_OF_ARP_TPA, kindIPv4, true},
	{"arp_sha", OXM_OF_ARP_SHA, kindMAC, true},
	{"arp_tha", OXM_OF_ARP_THA, kindMAC, true},
	{"ipv6_src", OXM_OF_IPV6_SRC, kindIPv6, true},
	{"ipv6_dst", OXM_OF_IPV6_DST, kindIPv6, true},
	{"ipv6_flabel", OXM_OF_IPV6_FLABEL, kindHex32, true},
	{"icmpv6_type", OXM_OF_ICMPV6_TYPE, kindDec8, false},
	{"icmpv6_code", OXM_OF_ICMPV6_CODE, kindDec8, false},
	{"ipv6_nd_target", OXM_OF_IPV6_ND_TARGET, kindIPv6, false},
	{"ipv6_nd_sll", OXM_OF_IPV6_ND_SLL, kindMAC, false},
	{"ipv6_nd_tll", OXM_OF_IPV6_ND_TLL, kindMAC, false},
	{"mpls_label", OXM_OF_MPLS_LABEL, kindHex32, false},
	{"mpls_tc", OXM_OF_MPLS_TC, kindDec8, false},
	{"mpls_bos", OXM_OF_MPLS_BOS, kindDec8, false},
	{"pbb_isid", OXM_OF_PBB_ISID, kindISID, true},
	{"tunnel_id", OXM_OF_TUNNEL_ID, kindHex64, true},
	{"ipv6_exthdr", OXM_OF_IPV6_EXTHDR, kindHex16, true},
}

var (
	fieldsByName  = map[string]fieldInfo{}
	fieldsByField = map[uint8]fieldInfo{}
)

func init() {
	for _, info := range basicFields {
		fieldsByName[info.name] = info
		fieldsByField[info.hdr.Field()] = info
	}
}

var portNames = map[uint32]string{
	ofp4.OFPP_MAX:        "max",
	ofp4.OFPP_IN_PORT:    "in_port",
	ofp4.OFPP_TABLE:      "table",
	ofp4.OFPP_NORMAL:     "normal",
	ofp4.OFPP_FLOOD:      "flood",
	ofp4.OFPP_ALL:        "all",
	ofp4.OFPP_CONTROLLER: "controller",
	ofp4.OFPP_LOCAL:      "local",
	ofp4.OFPP_ANY:        "any",
}

// PortString formats a port number, using the reserved port names.
func PortString(port uint32) string {
	if name, ok := portNames[port]; ok {
		return name
	}
	return strconv.FormatUint(uint64(port), 10)
}

// ParsePort accepts a reserved port name or an integer.
func ParsePort(txt string) (uint32, error) {
	for port, name := range portNames {
		if name == txt {
			return port, nil
		}
	}
	var port uint32
	if err := ParseInt(txt, &port); err != nil {
		return 0, err
	}
	return port, nil
}

// IsSeparator reports token separators of the text forms.
func IsSeparator(c rune) bool {
	return c == ',' || unicode.IsSpace(c)
}

func (self Oxm) String() string {
	var ret []string
	for _, s := range self.Iter() {
		ret = append(ret, s.single())
	}
	return strings.Join(ret, ",")
}

func (self Oxm) single() string {
	hdr := self.Header()
	if hdr.Class() != OFPXMC_OPENFLOW_BASIC {
		return "?"
	}
	info, ok := fieldsByField[hdr.Field()]
	if !ok {
		return "?"
	}
	value, mask := self.Value(), self.Mask()
	if hdr.HasMask() {
		return fmt.Sprintf("%s=%s/%s", info.name, info.format(value), info.format(mask))
	}
	return fmt.Sprintf("%s=%s", info.name, info.format(value))
}

func (self fieldInfo) format(p []byte) string {
	switch self.kind {
	case kindPort:
		return PortString(binary.BigEndian.Uint32(p))
	case kindDec8:
		return fmt.Sprintf("%d", p[0])
	case kindHex8:
		return fmt.Sprintf("0x%x", p[0])
	case kindDec16:
		return fmt.Sprintf("%d", binary.BigEndian.Uint16(p))
	case kindHex16:
		if self.hdr == OXM_OF_ETH_TYPE {
			return fmt.Sprintf("0x%04x", binary.BigEndian.Uint16(p))
		}
		return fmt.Sprintf("0x%x", binary.BigEndian.Uint16(p))
	case kindHex32:
		return fmt.Sprintf("0x%x", binary.BigEndian.Uint32(p))
	case kindHex64:
		return fmt.Sprintf("0x%x", binary.BigEndian.Uint64(p))
	case kindISID:
		return fmt.Sprintf("0x%x", binary.BigEndian.Uint32(append([]byte{0}, p...)))
	case kindMAC:
		return net.HardwareAddr(p).String()
	case kindIPv4, kindIPv6:
		return net.IP(p).String()
	}
	return "?"
}

// ParseInt accepts decimal or 0x prefixed integers into *uint8 .. *uint64.
func ParseInt(txt string, value interface{}) error {
	bitSize := 0
	switch value.(type) {
	case *uint8:
		bitSize = 8
	case *uint16:
		bitSize = 16
	case *uint32:
		bitSize = 32
	case *uint64:
		bitSize = 64
	default:
		return fmt.Errorf("unsupported type %T", value)
	}
	n, err := strconv.ParseUint(txt, 0, bitSize)
	if err != nil {
		return err
	}
	switch p := value.(type) {
	case *uint8:
		*p = uint8(n)
	case *uint16:
		*p = uint16(n)
	case *uint32:
		*p = uint32(n)
	case *uint64:
		*p = n
	}
	return nil
}

func parsePair(txt string) (string, string, int) {
	if sep := strings.IndexFunc(txt, IsSeparator); sep >= 0 {
		txt = txt[:sep]
	}
	if split := strings.IndexRune(txt, '/'); split > 0 {
		return txt[:split], txt[split+1:], len(txt)
	} else {
		return txt, "", len(txt)
	}
}

// ParseOne parses a single "label=value[/mask]" token at the head of txt.
// It returns the host order field and the number of bytes consumed.
func ParseOne(txt string) (Field, int, error) {
	labelIdx := strings.IndexRune(txt, '=')
	if labelIdx <= 0 {
		return Field{}, 0, fmt.Errorf("oxm parse failed %q", txt)
	}
	label := txt[:labelIdx]
	info, ok := fieldsByName[label]
	if !ok {
		return Field{}, 0, fmt.Errorf("unknown oxm field %q", label)
	}
	args := txt[labelIdx+1:]
	value, mask, baseN := parsePair(args)
	if len(mask) > 0 && !info.maskable {
		return Field{}, 0, fmt.Errorf("%s not maskable", label)
	}

	f, err := info.parse(args[:baseN], value, mask)
	if err != nil {
		return Field{}, 0, err
	}
	return f, labelIdx + 1 + baseN, nil
}

func (self fieldInfo) parse(raw, value, mask string) (Field, error) {
	hdr := self.hdr
	switch self.kind {
	case kindPort:
		port, err := ParsePort(value)
		if err != nil {
			return Field{}, err
		}
		return Uint32(hdr, port), nil
	case kindDec8, kindHex8:
		var v uint8
		if err := ParseInt(value, &v); err != nil {
			return Field{}, err
		}
		return Uint8(hdr, v), nil
	case kindDec16, kindHex16:
		var v, m uint16
		if err := ParseInt(value, &v); err != nil {
			return Field{}, err
		} else if len(mask) == 0 {
			return Uint16(hdr, v), nil
		} else if err := ParseInt(mask, &m); err != nil {
			return Field{}, err
		}
		return Uint16Masked(hdr, v, m), nil
	case kindHex32:
		var v, m uint32
		if err := ParseInt(value, &v); err != nil {
			return Field{}, err
		} else if len(mask) == 0 {
			return Uint32(hdr, v), nil
		} else if err := ParseInt(mask, &m); err != nil {
			return Field{}, err
		}
		return Uint32Masked(hdr, v, m), nil
	case kindHex64:
		var v, m uint64
		if err := ParseInt(value, &v); err != nil {
			return Field{}, err
		} else if len(mask) == 0 {
			return Uint64(hdr, v), nil
		} else if err := ParseInt(mask, &m); err != nil {
			return Field{}, err
		}
		return Uint64Masked(hdr, v, m), nil
	case kindISID:
		var v, m uint32
		var vb, mb [4]byte
		if err := ParseInt(value, &v); err != nil {
			return Field{}, err
		}
		binary.BigEndian.PutUint32(vb[:], v)
		if len(mask) == 0 {
			return Bytes(hdr, vb[1:], nil), nil
		} else if err := ParseInt(mask, &m); err != nil {
			return Field{}, err
		}
		binary.BigEndian.PutUint32(mb[:], m)
		return Bytes(hdr, vb[1:], mb[1:]), nil
	case kindMAC:
		hw, err := net.ParseMAC(value)
		if err != nil {
			return Field{}, err
		} else if len(mask) == 0 {
			return Bytes(hdr, hw, nil), nil
		}
		ma, err := net.ParseMAC(mask)
		if err != nil {
			return Field{}, err
		}
		return Bytes(hdr, hw, ma), nil
	case kindIPv4, kindIPv6:
		width := net.IPv4len
		conv := net.IP.To4
		if self.kind == kindIPv6 {
			width = net.IPv6len
			conv = net.IP.To16
		}
		if ip, nw, err := net.ParseCIDR(raw); err == nil && self.maskable {
			ones, bits := nw.Mask.Size()
			return Bytes(hdr, conv(ip), net.CIDRMask(ones, bits)), nil
		}
		ip := net.ParseIP(value)
		if ip == nil || len(conv(ip)) != width {
			return Field{}, fmt.Errorf("IP parse error %s", raw)
		} else if len(mask) == 0 {
			return Bytes(hdr, conv(ip), nil), nil
		}
		nw := net.ParseIP(mask)
		if nw == nil || len(conv(nw)) != width {
			return Field{}, fmt.Errorf("mask parse error %s", mask)
		}
		return Bytes(hdr, conv(ip), conv(nw)), nil
	}
	return Field{}, fmt.Errorf("unsupported field %s", self.name)
}

// Parse consumes comma separated fields until a token fails to parse.
// It returns the fields and the number of bytes consumed.
func Parse(txt string) ([]Field, int, error) {
	var fields []Field
	cur := 0
	for cur < len(txt) {
		f, n, err := ParseOne(txt[cur:])
		if err != nil {
			if len(fields) == 0 {
				return nil, 0, err
			}
			break
		}
		fields = append(fields, f)
		cur += n
		for cur < len(txt) && IsSeparator(rune(txt[cur])) {
			cur++
		}
	}
	return fields, cur, nil
}
