package markup

// Decoration is an inline style applied to a single inserted character.
type Decoration int

const (
	None Decoration = iota
	Bold
	Italic
	Underline
)

func (d Decoration) String() string {
	switch d {
	case Bold:
		return "BOLD"
	case Italic:
		return "ITALIC"
	case Underline:
		return "UNDERLINE"
	default:
		return ""
	}
}

// marker returns the delimiter written on each side of a decorated character.
func (d Decoration) marker() string {
	switch d {
	case Bold:
		return "**"
	case Italic:
		return "*"
	case Underline:
		return "_"
	default:
		return ""
	}
}

// Annotate wraps ch in the markup for d. Only one character is wrapped per
// call, so a run typed under one armed decoration is not merged.
func Annotate(ch byte, d Decoration) string {
	m := d.marker()
	return m + string(ch) + m
}

// Latch holds at most one pending decoration until the next insertion.
type Latch struct {
	pending Decoration
}

func (l *Latch) Arm(d Decoration) { l.pending = d }

// Pending reports the armed decoration without consuming it.
func (l *Latch) Pending() Decoration { return l.pending }

// Take returns the armed decoration and resets the latch.
func (l *Latch) Take() Decoration {
	d := l.pending
	l.pending = None
	return d
}
