package bowlinggame

import "strconv"

const (
	// Pins is the number of pins standing at the start of a frame.
	Pins = 10

	rollsPerFrame = 2
)

// Roll is the number of pins knocked down by one ball.
type Roll struct {
	Pins int
}

// Frame is one of the two frame kinds a game is built from.
//
// Score receives the frames that follow this one, in order, so strike and
// spare bonuses can be looked up by position without frames referencing
// each other.
type Frame interface {
	AddRoll(pins int) error
	Score(following []Frame) int
	IsStrike() bool
	IsSpare() bool
	IsComplete() bool
	TotalPins() int
	Rolls() []Roll
	String() string

	frame()
}

// rolls holds the behaviour shared by both frame kinds.
type rolls []Roll

func (r rolls) isStrike() bool {
	return len(r) > 0 && r[0].Pins == Pins
}

func (r rolls) isSpare() bool {
	return len(r) == rollsPerFrame && r[0].Pins+r[1].Pins == Pins
}

func (r rolls) total() int {
	total := 0
	for _, roll := range r {
		total += roll.Pins
	}
	return total
}

func (r rolls) copy() []Roll {
	out := make([]Roll, len(r))
	copy(out, r)
	return out
}

// NormalFrame is any of the first nine frames.
type NormalFrame struct {
	rolls rolls
}

// NewNormalFrame returns an empty normal frame.
func NewNormalFrame() *NormalFrame {
	return &NormalFrame{}
}

func (*NormalFrame) frame() {}

// AddRoll records a roll. A third roll on a full frame is ignored; the game
// never routes one there.
func (f *NormalFrame) AddRoll(pins int) error {
	if pins+f.rolls.total() > Pins {
		return ErrFramePinsExceeded
	}
	if len(f.rolls) < rollsPerFrame {
		f.rolls = append(f.rolls, Roll{Pins: pins})
	}
	return nil
}

// Score returns the frame total plus whatever bonus the following frames
// have already earned it. Bonuses that are still pending count as zero.
func (f *NormalFrame) Score(following []Frame) int {
	points := f.rolls.total()
	if len(following) == 0 {
		return points
	}

	next := following[0].Rolls()
	switch {
	case f.IsStrike():
		switch len(next) {
		case 0:
		case 1:
			points += next[0].Pins
			if len(following) > 1 {
				if after := following[1].Rolls(); len(after) > 0 {
					points += after[0].Pins
				}
			}
		default:
			points += next[0].Pins + next[1].Pins
		}
	case f.IsSpare():
		if len(next) > 0 {
			points += next[0].Pins
		}
	}
	return points
}

func (f *NormalFrame) IsStrike() bool { return f.rolls.isStrike() }

func (f *NormalFrame) IsSpare() bool { return f.rolls.isSpare() }

// IsComplete reports whether the game should move on to the next frame.
func (f *NormalFrame) IsComplete() bool {
	return f.IsStrike() || len(f.rolls) == rollsPerFrame
}

func (f *NormalFrame) TotalPins() int { return f.rolls.total() }

func (f *NormalFrame) Rolls() []Roll { return f.rolls.copy() }

// String renders the frame the way a scoresheet shows it.
func (f *NormalFrame) String() string {
	switch {
	case len(f.rolls) == 0:
		return ""
	case f.IsStrike():
		return "X"
	case len(f.rolls) == 1:
		return strconv.Itoa(f.rolls[0].Pins)
	case f.IsSpare():
		return strconv.Itoa(f.rolls[0].Pins) + " | /"
	default:
		return strconv.Itoa(f.rolls[0].Pins) + " | " + strconv.Itoa(f.rolls[1].Pins)
	}
}

// TenthFrame is the last frame. A strike or spare in it earns one extra roll.
type TenthFrame struct {
	rolls rolls
	extra *Roll
}

// NewTenthFrame returns an empty tenth frame.
func NewTenthFrame() *TenthFrame {
	return &TenthFrame{}
}

func (*TenthFrame) frame() {}

func (f *TenthFrame) opened() bool {
	return f.rolls.isStrike() || f.rolls.isSpare()
}

// AddRoll records a roll. Until a strike or spare opens the frame the usual
// 10-pin ceiling applies to the running total; afterwards the pins are reset
// and each roll only has to fit a full rack.
func (f *TenthFrame) AddRoll(pins int) error {
	if len(f.rolls) == rollsPerFrame {
		switch {
		case !f.opened():
			return ErrExtraRollWithOpenTenthFrame
		case f.extra != nil:
			return ErrRollWithGameCompleted
		case pins > Pins:
			return ErrFramePinsExceeded
		}
		f.extra = &Roll{Pins: pins}
		return nil
	}

	if f.opened() {
		if pins > Pins {
			return ErrFramePinsExceeded
		}
	} else if pins+f.rolls.total() > Pins {
		return ErrFramePinsExceeded
	}
	f.rolls = append(f.rolls, Roll{Pins: pins})
	return nil
}

// Score ignores following frames; nothing comes after the tenth.
func (f *TenthFrame) Score(_ []Frame) int {
	points := f.rolls.total()
	if f.extra != nil {
		points += f.extra.Pins
	}
	return points
}

func (f *TenthFrame) IsStrike() bool { return f.rolls.isStrike() }

func (f *TenthFrame) IsSpare() bool { return f.rolls.isSpare() }

// IsComplete reports whether the frame, and therefore the game, is over.
func (f *TenthFrame) IsComplete() bool {
	if len(f.rolls) < rollsPerFrame {
		return false
	}
	return !f.opened() || f.extra != nil
}

// TotalPins excludes the extra roll.
func (f *TenthFrame) TotalPins() int { return f.rolls.total() }

func (f *TenthFrame) Rolls() []Roll { return f.rolls.copy() }

// ExtraRoll returns the bonus roll, if one was thrown.
func (f *TenthFrame) ExtraRoll() (Roll, bool) {
	if f.extra == nil {
		return Roll{}, false
	}
	return *f.extra, true
}

// String renders every ball of the frame, e.g. "X | X | X" or "7 | / | 4".
func (f *TenthFrame) String() string {
	all := f.rolls.copy()
	if f.extra != nil {
		all = append(all, *f.extra)
	}

	out := ""
	standing := Pins
	fresh := true
	for i, roll := range all {
		mark := strconv.Itoa(roll.Pins)
		switch {
		case fresh && roll.Pins == Pins:
			mark = "X"
		case !fresh && roll.Pins == standing:
			mark = "/"
			standing, fresh = Pins, true
		case fresh:
			standing, fresh = Pins-roll.Pins, false
		default:
			standing, fresh = Pins, true
		}
		if i > 0 {
			out += " | "
		}
		out += mark
	}
	return out
}
