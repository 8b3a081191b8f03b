// Package ds4 decodes the 10-byte telemetry frame an ESP32 DS4 bridge sends
// for a DualShock 4 style controller.
//
// Wire format (controller -> host): fixed 10 bytes.
//
//	0: header sentinel 0x80
//	1: buttons, high 8 bits
//	2: buttons, low 8 bits
//	3: right stick X (int8)
//	4: right stick Y (int8)
//	5: left stick X (int8)
//	6: left stick Y (int8)
//	7: R2 (uint8)
//	8: L2 (uint8)
//	9: checksum, sum of bytes 0-8 mod 256
package ds4

import (
	"errors"
	"fmt"
	"io"
)

// ErrValidation is returned by Parse for a frame with a bad header or checksum.
var ErrValidation = errors.New("packet validation failed")

// Sticks holds the raw two's-complement axis displacement of both sticks.
type Sticks struct {
	RX, RY int8
	LX, LY int8
}

// Triggers holds the analog pressure of both triggers.
type Triggers struct {
	R2, L2 uint8
}

// Packet is a read-only view over a caller-owned frame buffer.
//
// The buffer is referenced, never copied, so a Packet must not be used after
// the buffer is reused or released. Validity is computed once by New; the
// accessors re-read the buffer on every call and will reflect later writes
// to it even though Valid does not.
//
// Accessor results are only meaningful when Valid reports true.
type Packet struct {
	raw   *[Length]byte
	valid bool
}

// New wraps raw and validates it. It never fails; check Valid before using
// the accessors.
func New(raw *[Length]byte) Packet {
	return Packet{raw: raw, valid: validate(raw)}
}

// Parse is like New but returns ErrValidation for a malformed frame.
func Parse(raw *[Length]byte) (Packet, error) {
	p := New(raw)
	if !p.valid {
		return Packet{}, ErrValidation
	}
	return p, nil
}

// Checksum returns the 8-bit additive sum of every byte before the checksum
// byte.
func Checksum(raw *[Length]byte) byte {
	var sum byte
	for _, b := range raw[:ByteChecksum] {
		sum += b
	}
	return sum
}

func validate(raw *[Length]byte) bool {
	if raw[ByteHeader] != Header {
		return false
	}
	return Checksum(raw) == raw[ByteChecksum]
}

// Valid reports whether the frame had a correct header and checksum when the
// Packet was created.
func (p Packet) Valid() bool { return p.valid }

// Raw returns the referenced frame buffer.
func (p Packet) Raw() *[Length]byte { return p.raw }

// Bit reports whether the bit for b is set.
func (p Packet) Bit(b Button) bool {
	if b > 0xff {
		return p.raw[ByteButtonsHigh]&uint8(b>>8) != 0
	}
	return p.raw[ByteButtonsLow]&uint8(b) != 0
}

// Buttons returns the combined 16-bit button mask.
func (p Packet) Buttons() uint16 {
	return uint16(p.raw[ByteButtonsHigh])<<8 | uint16(p.raw[ByteButtonsLow])
}

// Sticks returns the current stick positions.
func (p Packet) Sticks() Sticks {
	return Sticks{
		RX: int8(p.raw[ByteStickRX]),
		RY: int8(p.raw[ByteStickRY]),
		LX: int8(p.raw[ByteStickLX]),
		LY: int8(p.raw[ByteStickLY]),
	}
}

// Triggers returns the current trigger values.
func (p Packet) Triggers() Triggers {
	return Triggers{
		R2: p.raw[ByteR2],
		L2: p.raw[ByteL2],
	}
}

// State copies every field of the frame into an InputState.
func (p Packet) State() InputState {
	return InputState{
		Buttons:  p.Buttons(),
		Sticks:   p.Sticks(),
		Triggers: p.Triggers(),
	}
}

// InputState is a detached snapshot of one frame.
type InputState struct {
	Buttons uint16
	Sticks
	Triggers
}

// UnmarshalBinary validates a 10-byte frame and copies its fields into s.
// Unlike New it takes a copy, so data may be reused afterwards.
func (s *InputState) UnmarshalBinary(data []byte) error {
	if len(data) < Length {
		return io.ErrUnexpectedEOF
	}
	var raw [Length]byte
	copy(raw[:], data)
	p, err := Parse(&raw)
	if err != nil {
		return err
	}
	*s = p.State()
	return nil
}

// Pressed reports whether b is set in the snapshot.
func (s InputState) Pressed(b Button) bool {
	return s.Buttons&uint16(b) != 0
}

func (s InputState) String() string {
	buf := make([]byte, 0, 64)
	buf = fmt.Appendf(buf, "L(%+4d %+4d) R(%+4d %+4d) 2(%3d %3d) ",
		s.LX, s.LY, s.RX, s.RY, s.L2, s.R2)
	for _, b := range Buttons() {
		if s.Pressed(b) {
			buf = append(buf, 'X')
		} else {
			buf = append(buf, '.')
		}
	}
	return string(buf)
}
