package machine

// Status is the machine's coarse execution state.
type Status uint8

const (
	// Extensive is the normal running state: steps execute and state advances.
	Extensive Status = iota
	// Blocked is a cooperative pause: SEND (insufficient balance), INBOX (no
	// new messages) and BREAKPOINT all park the machine here. The next Run
	// promotes Blocked back to Extensive and retries the same instruction.
	Blocked
	// Halted is terminal: the HALT opcode was executed. Hash() short-circuits
	// to 0.
	Halted
	// Error is terminal unless errpc is set, in which case the next Run jumps
	// to the handler and resumes Extensive. Hash() short-circuits to 1.
	Error
)

func (s Status) String() string {
	switch s {
	case Extensive:
		return "extensive"
	case Blocked:
		return "blocked"
	case Halted:
		return "halted"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}
