package buffer

type Cursor struct {
	Line, Col int
}

type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Move moves the cursor one step in dir, clamped to the buffer.
func (b *Buffer) Move(dir Direction) {
	b.checkInvariants()
	switch dir {
	case Left:
		b.MoveLeft()
	case Right:
		b.MoveRight()
	case Up:
		b.MoveUp()
	case Down:
		b.MoveDown()
	}
}
