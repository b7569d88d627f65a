package oflib

// InstructionHandler sizes and packs the experimenter instructions of one
// experimenter id. PackInstruction receives a buffer of exactly the length
// InstructionLen reported and must fill all of it, header included.
type InstructionHandler interface {
	InstructionLen(inst InstructionExperimenter) (int, error)
	PackInstruction(inst InstructionExperimenter, data []byte) (int, error)
}

// MatchHandler sizes and packs the experimenter matches of one match type.
type MatchHandler interface {
	MatchLen(m MatchExperimenter) (int, error)
	PackMatch(m MatchExperimenter, data []byte) (int, error)
}

// Experimenters is the experimenter callback table. Populate it before
// handing it to an Encoder; it is read only afterwards. A nil
// *Experimenters has no handlers.
type Experimenters struct {
	instructions map[uint32]InstructionHandler
	matches      map[uint16]MatchHandler
}

func NewExperimenters() *Experimenters {
	return &Experimenters{
		instructions: make(map[uint32]InstructionHandler),
		matches:      make(map[uint16]MatchHandler),
	}
}

// AddInstructionHandler registers h for experimenter id experimenter.
func (self *Experimenters) AddInstructionHandler(experimenter uint32, h InstructionHandler) *Experimenters {
	self.instructions[experimenter] = h
	return self
}

// AddMatchHandler registers h for the match type matchType.
func (self *Experimenters) AddMatchHandler(matchType uint16, h MatchHandler) *Experimenters {
	self.matches[matchType] = h
	return self
}

func (self *Experimenters) instruction(experimenter uint32) (InstructionHandler, bool) {
	if self == nil {
		return nil, false
	}
	h, ok := self.instructions[experimenter]
	return h, ok
}

func (self *Experimenters) match(matchType uint16) (MatchHandler, bool) {
	if self == nil {
		return nil, false
	}
	h, ok := self.matches[matchType]
	return h, ok
}
