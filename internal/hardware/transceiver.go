// Package hardware holds the infrared front-end back ends.
package hardware

import (
	"errors"

	"ir_gateway/internal/protocol"
)

// Transceiver is the interface every IR front end must implement.
// The simulated device is the default; the serial bridge drives a
// microcontroller attached over UART.
type Transceiver interface {
	// Name returns the human-readable name of this back end.
	Name() string
	// Begin sets the transmit line inactive and arms the receiver.
	Begin() error
	// Close releases the underlying device.
	Close() error

	// Send emits one frame plus repeat repetitions.
	Send(p protocol.ID, code uint32, bits, repeat uint16) error
	// PauseReceive stops capturing incoming signals.
	PauseReceive() error
	// ResumeReceive re-arms capture. It must also be called after every
	// successful Decode, capture stays stopped until then.
	ResumeReceive() error
	// Decode returns a frame decoded since the last call, if any.
	// It never blocks.
	Decode() (Frame, bool)
}

// Frame is one decoded incoming signal.
type Frame struct {
	Protocol protocol.ID
	Value    uint64
	Bits     uint16
}

// DefaultBits is the frame width used for every transmission.
const DefaultBits = 32

var (
	ErrNotConnected = errors.New("hardware: device not connected")
	ErrNotStarted   = errors.New("hardware: Begin has not been called")
)
