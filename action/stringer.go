package action

import (
	"fmt"
	"strings"

	"github.com/hkwi/oflib/ofp4"
	"github.com/hkwi/oflib/oxm"
)

var genericNames = map[uint16]string{
	ofp4.OFPAT_COPY_TTL_OUT: "copy_ttl_out",
	ofp4.OFPAT_COPY_TTL_IN:  "copy_ttl_in",
	ofp4.OFPAT_DEC_MPLS_TTL: "dec_mpls_ttl",
	ofp4.OFPAT_POP_VLAN:     "pop_vlan",
	ofp4.OFPAT_DEC_NW_TTL:   "dec_nw_ttl",
	ofp4.OFPAT_POP_PBB:      "pop_pbb",
}

var ttlNames = map[uint16]string{
	ofp4.OFPAT_SET_MPLS_TTL: "set_mpls_ttl",
	ofp4.OFPAT_SET_NW_TTL:   "set_nw_ttl",
}

var ethertypeNames = map[uint16]string{
	ofp4.OFPAT_PUSH_VLAN: "push_vlan",
	ofp4.OFPAT_PUSH_MPLS: "push_mpls",
	ofp4.OFPAT_POP_MPLS:  "pop_mpls",
	ofp4.OFPAT_PUSH_PBB:  "push_pbb",
}

func lookup(names map[uint16]string, label string) (uint16, bool) {
	for atype, name := range names {
		if name == label {
			return atype, true
		}
	}
	return 0, false
}

func parseLabeledValue(txt string) (label, value string, eatLen int) {
	feed := txt
	if idx := strings.IndexFunc(txt, oxm.IsSeparator); idx > 0 {
		feed = txt[:idx]
	}
	kv := strings.SplitN(feed, "=", 2)
	if len(kv) > 1 {
		return kv[0], kv[1], len(feed)
	}
	return kv[0], "", len(feed)
}

// Parse reads one action token at the head of txt, such as "output=1",
// "output=controller:0x80", "pop_vlan", "group=7" or "set_eth_dst=…".
// It returns the action and the number of bytes consumed.
func Parse(txt string) (Action, int, error) {
	label, value, eatLen := parseLabeledValue(txt)

	if atype, ok := lookup(genericNames, label); ok {
		return Generic{ActionType: atype}, eatLen, nil
	}
	if atype, ok := lookup(ttlNames, label); ok {
		var v uint8
		if err := oxm.ParseInt(value, &v); err != nil {
			return nil, 0, err
		}
		return Ttl{ActionType: atype, Ttl: v}, eatLen, nil
	}
	if atype, ok := lookup(ethertypeNames, label); ok {
		var v uint16
		if err := oxm.ParseInt(value, &v); err != nil {
			return nil, 0, err
		}
		return Ethertype{ActionType: atype, Ethertype: v}, eatLen, nil
	}

	switch label {
	case "output":
		vs := strings.SplitN(value, ":", 2)
		port, err := oxm.ParsePort(vs[0])
		if err != nil {
			return nil, 0, err
		}
		maxLen := uint16(ofp4.OFPCML_NO_BUFFER)
		if len(vs) > 1 {
			if err := oxm.ParseInt(vs[1], &maxLen); err != nil {
				return nil, 0, err
			}
		}
		return Output{Port: port, MaxLen: maxLen}, eatLen, nil
	case "group", "set_queue":
		var v uint32
		if err := oxm.ParseInt(value, &v); err != nil {
			return nil, 0, err
		}
		if label == "group" {
			return Group{GroupId: v}, eatLen, nil
		}
		return SetQueue{QueueId: v}, eatLen, nil
	}

	if strings.HasPrefix(label, "set_") {
		setLen := len("set_")
		f, n, err := oxm.ParseOne(txt[setLen:])
		if err != nil {
			return nil, 0, err
		}
		return SetField{Field: f}, setLen + n, nil
	}
	return nil, 0, fmt.Errorf("unparsed action %q", label)
}

func (self Output) String() string {
	if self.MaxLen == ofp4.OFPCML_NO_BUFFER {
		return fmt.Sprintf("output=%s", oxm.PortString(self.Port))
	}
	return fmt.Sprintf("output=%s:0x%x", oxm.PortString(self.Port), self.MaxLen)
}

func (self Generic) String() string {
	if name, ok := genericNames[self.ActionType]; ok {
		return name
	}
	return "?"
}

func (self Ttl) String() string {
	return fmt.Sprintf("%s=%d", ttlNames[self.ActionType], self.Ttl)
}

func (self Ethertype) String() string {
	return fmt.Sprintf("%s=0x%04x", ethertypeNames[self.ActionType], self.Ethertype)
}

func (self Group) String() string {
	return fmt.Sprintf("group=%d", self.GroupId)
}

func (self SetQueue) String() string {
	return fmt.Sprintf("set_queue=%d", self.QueueId)
}

func (self SetField) String() string {
	return "set_" + oxm.Encode([]oxm.Field{self.Field}, oxm.HostOrder).String()
}

func (self Experimenter) String() string {
	return fmt.Sprintf("experimenter=0x%x:%x", self.Experimenter, self.Data)
}

// ParseList reads a separator delimited action list, the inverse of Format.
func ParseList(txt string) ([]Action, error) {
	var ret []Action
	txt = strings.TrimLeftFunc(txt, oxm.IsSeparator)
	for len(txt) > 0 {
		a, n, err := Parse(txt)
		if err != nil {
			return nil, err
		}
		ret = append(ret, a)
		txt = strings.TrimLeftFunc(txt[n:], oxm.IsSeparator)
	}
	return ret, nil
}

// Format joins the text form of an action list.
func Format(actions []Action) string {
	var ret []string
	for _, a := range actions {
		ret = append(ret, fmt.Sprintf("%v", a))
	}
	return strings.Join(ret, ",")
}
