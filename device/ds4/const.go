package ds4

import "fmt"

// Frame framing constants.
const (
	// Header is the sentinel every frame starts with.
	Header byte = 0x80
	// Length is the fixed frame size in bytes.
	Length = 10
)

// Byte offsets within a frame.
const (
	ByteHeader = iota
	ByteButtonsHigh
	ByteButtonsLow
	ByteStickRX
	ByteStickRY
	ByteStickLX
	ByteStickLY
	ByteR2
	ByteL2
	ByteChecksum
)

// Button is a single bit of the 16-bit button mask carried in bytes 1-2.
type Button uint16

const (
	Circle   Button = 1 << 0
	Triangle Button = 1 << 1
	Square   Button = 1 << 2
	Cross    Button = 1 << 3

	// D-pad
	Right Button = 1 << 4
	Up    Button = 1 << 5
	Left  Button = 1 << 6
	Down  Button = 1 << 7

	R1 Button = 1 << 8
	L1 Button = 1 << 9
	R3 Button = 1 << 10 // right stick press
	L3 Button = 1 << 11 // left stick press

	Options  Button = 1 << 12
	Share    Button = 1 << 13
	PSLogo   Button = 1 << 14
	Touchpad Button = 1 << 15
)

var buttonNames = [16]string{
	"Circle", "Triangle", "Square", "Cross",
	"Right", "Up", "Left", "Down",
	"R1", "L1", "R3", "L3",
	"Options", "Share", "PSLogo", "Touchpad",
}

// Buttons returns all named buttons ordered from bit 0 to bit 15.
func Buttons() []Button {
	out := make([]Button, len(buttonNames))
	for i := range out {
		out[i] = Button(1 << i)
	}
	return out
}

func (b Button) String() string {
	for i, name := range buttonNames {
		if b == Button(1<<i) {
			return name
		}
	}
	return fmt.Sprintf("Button(%#06x)", uint16(b))
}
