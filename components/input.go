package components

import "github.com/yohamta/donburi"

// InputData is the intent driving a character this tick.
type InputData struct {
	Left, Right bool
	Jump        bool

	JumpWasPressed bool
}

// Direction returns -1, 0 or 1.
func (i *InputData) Direction() float64 {
	switch {
	case i.Left && !i.Right:
		return -1
	case i.Right && !i.Left:
		return 1
	}
	return 0
}

// JumpPressed reports a jump that started this tick.
func (i *InputData) JumpPressed() bool {
	return i.Jump && !i.JumpWasPressed
}

var Input = donburi.NewComponentType[InputData]()
