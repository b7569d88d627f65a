package oflib

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/hkwi/oflib/action"
	"github.com/hkwi/oflib/ofp4"
	"github.com/hkwi/oflib/oxm"
)

const (
	phaseMatch = iota
	phaseMeter
	phaseApply
	phaseClear
	phaseWrite
	phaseMeta
	phaseGoto
)

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

// ParseFlowStats reads a flow entry in the ofctl text form, for example
//
//	table=3,priority=8,cookie=0x5,in_port=1,@apply,output=2,@goto=4
//
// Match fields become a host order OXM match; "@" labels start
// instructions, and the tokens following @apply or @write are actions.
func ParseFlowStats(txt string) (FlowStats, error) {
	var fs FlowStats
	var fields []oxm.Field
	var actions []action.Action
	var delayed func()
	phase := phaseMatch

	flush := func(itype uint16) func() {
		return func() {
			fs.Instructions = append(fs.Instructions, InstructionActions{
				Type:    itype,
				Actions: actions,
			})
			actions = nil
		}
	}

	txt = strings.TrimLeftFunc(txt, oxm.IsSeparator)
	for len(txt) > 0 {
		label, value, step := parseLabeledValue(txt)
		if strings.HasPrefix(label, "@") && delayed != nil {
			delayed()
			delayed = nil
		}
		switch label {
		case "@meter":
			phase = phaseMeter
			var meterId uint32
			if err := oxm.ParseInt(value, &meterId); err != nil {
				return fs, err
			}
			fs.Instructions = append(fs.Instructions, InstructionMeter{MeterId: meterId})
		case "@apply", "@apply_actions":
			phase = phaseApply
			delayed = flush(ofp4.OFPIT_APPLY_ACTIONS)
		case "@write", "@write_actions":
			phase = phaseWrite
			delayed = flush(ofp4.OFPIT_WRITE_ACTIONS)
		case "@clear", "@clear_actions":
			phase = phaseClear
			fs.Instructions = append(fs.Instructions, InstructionClearActions{})
		case "@metadata", "@write_metadata":
			phase = phaseMeta
			var v uint64
			m := uint64(0xFFFFFFFFFFFFFFFF)
			vm := strings.SplitN(value, "/", 2)
			if err := oxm.ParseInt(vm[0], &v); err != nil {
				return fs, err
			}
			if len(vm) == 2 {
				if err := oxm.ParseInt(vm[1], &m); err != nil {
					return fs, err
				}
			}
			fs.Instructions = append(fs.Instructions, InstructionWriteMetadata{Metadata: v, MetadataMask: m})
		case "@goto", "@goto_table":
			phase = phaseGoto
			var tableId uint8
			if err := oxm.ParseInt(value, &tableId); err != nil {
				return fs, err
			}
			fs.Instructions = append(fs.Instructions, InstructionGotoTable{TableId: tableId})
		default:
			switch phase {
			case phaseMatch:
				if err := fs.parseField(label, value); errors.Is(err, errNotFlowField) {
					f, n, err := oxm.ParseOne(txt)
					if err != nil {
						return fs, err
					}
					fields = append(fields, f)
					step = n
				} else if err != nil {
					return fs, err
				}
			case phaseApply, phaseWrite:
				a, n, err := action.Parse(txt)
				if err != nil {
					return fs, err
				}
				actions = append(actions, a)
				step = n
			default:
				return fs, fmt.Errorf("unexpected %q after instruction", label)
			}
		}
		txt = strings.TrimLeftFunc(txt[step:], oxm.IsSeparator)
	}
	if delayed != nil {
		delayed()
	}
	fs.Match = MatchOXM{Fields: fields}
	return fs, nil
}

var errNotFlowField = errors.New("not a flow field")

func (fs *FlowStats) parseField(label, value string) error {
	switch label {
	case "table":
		return oxm.ParseInt(value, &fs.TableId)
	case "priority":
		return oxm.ParseInt(value, &fs.Priority)
	case "idle_timeout":
		return oxm.ParseInt(value, &fs.IdleTimeout)
	case "hard_timeout":
		return oxm.ParseInt(value, &fs.HardTimeout)
	case "flags":
		return oxm.ParseInt(value, &fs.Flags)
	case "cookie":
		return oxm.ParseInt(value, &fs.Cookie)
	case "duration_sec":
		return oxm.ParseInt(value, &fs.DurationSec)
	case "duration_nsec":
		return oxm.ParseInt(value, &fs.DurationNsec)
	case "n_packets":
		return oxm.ParseInt(value, &fs.PacketCount)
	case "n_bytes":
		return oxm.ParseInt(value, &fs.ByteCount)
	}
	return errNotFlowField
}

func (fs FlowStats) String() string {
	comps := []string{
		fmt.Sprintf("table=%d,priority=%d", fs.TableId, fs.Priority),
	}
	if n := fs.IdleTimeout; n != 0 {
		comps = append(comps, fmt.Sprintf("idle_timeout=%d", n))
	}
	if n := fs.HardTimeout; n != 0 {
		comps = append(comps, fmt.Sprintf("hard_timeout=%d", n))
	}
	comps = append(comps, fmt.Sprintf("cookie=0x%x", fs.Cookie))
	if m, ok := fs.Match.(MatchOXM); ok && len(m.Fields) > 0 {
		comps = append(comps, oxm.Encode(m.Fields, oxm.HostOrder).String())
	}
	for _, inst := range fs.Instructions {
		comps = append(comps, instructionString(inst))
	}
	return strings.Join(comps, ",")
}

func instructionString(inst Instruction) string {
	switch i := inst.(type) {
	case InstructionGotoTable:
		return fmt.Sprintf("@goto=%d", i.TableId)
	case InstructionWriteMetadata:
		if i.MetadataMask == 0xFFFFFFFFFFFFFFFF {
			return fmt.Sprintf("@metadata=0x%x", i.Metadata)
		}
		return fmt.Sprintf("@metadata=0x%x/0x%x", i.Metadata, i.MetadataMask)
	case InstructionActions:
		label := "@apply"
		if i.Type == ofp4.OFPIT_WRITE_ACTIONS {
			label = "@write"
		}
		if len(i.Actions) == 0 {
			return label
		}
		return label + "," + action.Format(i.Actions)
	case InstructionClearActions:
		return "@clear"
	case InstructionMeter:
		return fmt.Sprintf("@meter=%d", i.MeterId)
	}
	return "?"
}
