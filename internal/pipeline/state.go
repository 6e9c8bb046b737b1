package pipeline

// State of the frame pipeline. Any state may move to Fatal.
//
//	AwaitStreamHeader -> NegotiateDevice -> AwaitFrameHeader <-> ProcessFrame
//	                                              |
//	                                              v
//	                                            Done
type State int

const (
	AwaitStreamHeader State = iota
	NegotiateDevice
	AwaitFrameHeader
	ProcessFrame
	Done
	Fatal
)

var stateNames = [...]string{
	AwaitStreamHeader: "AwaitStreamHeader",
	NegotiateDevice:   "NegotiateDevice",
	AwaitFrameHeader:  "AwaitFrameHeader",
	ProcessFrame:      "ProcessFrame",
	Done:              "Done",
	Fatal:             "Fatal",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "State(?)"
	}
	return stateNames[s]
}
