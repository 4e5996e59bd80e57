package hardware

import (
	"sync"

	"ir_gateway/internal/protocol"
)

// Simulated is an in-memory transceiver. With loopback enabled, anything
// sent while capture is armed is heard back by the receiver, just like an
// LED sitting next to a photodiode.
type Simulated struct {
	mu       sync.Mutex
	loopback bool
	started  bool
	armed    bool
	txLine   bool
	pending  []Frame
	sent     []Sent
}

// Sent records one call to Send.
type Sent struct {
	Protocol protocol.ID
	Code     uint32
	Bits     uint16
	Repeat   uint16
}

// NewSimulated returns a simulated front end.
func NewSimulated(loopback bool) *Simulated {
	return &Simulated{loopback: loopback}
}

func (s *Simulated) Name() string { return "simulated" }

func (s *Simulated) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txLine = false
	s.started = true
	s.armed = true
	return nil
}

func (s *Simulated) Close() error { return nil }

func (s *Simulated) Send(p protocol.ID, code uint32, bits, repeat uint16) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return ErrNotStarted
	}
	s.sent = append(s.sent, Sent{Protocol: p, Code: code, Bits: bits, Repeat: repeat})
	if s.loopback && s.armed {
		s.pending = append(s.pending, Frame{Protocol: p, Value: uint64(code), Bits: bits})
	}
	return nil
}

func (s *Simulated) PauseReceive() error {
	s.mu.Lock()
	s.armed = false
	s.mu.Unlock()
	return nil
}

func (s *Simulated) ResumeReceive() error {
	s.mu.Lock()
	s.armed = s.started
	s.mu.Unlock()
	return nil
}

// Decode hands out the oldest pending frame. Capture stops until the next
// ResumeReceive.
func (s *Simulated) Decode() (Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.armed || len(s.pending) == 0 {
		return Frame{}, false
	}
	f := s.pending[0]
	s.pending = s.pending[1:]
	s.armed = false
	return f, true
}

// Inject queues a frame as if a remote had been pressed. Frames arriving
// while capture is paused are lost.
func (s *Simulated) Inject(f Frame) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.armed {
		return false
	}
	s.pending = append(s.pending, f)
	return true
}

// Sent returns a copy of every Send call so far.
func (s *Simulated) Sent() []Sent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Sent, len(s.sent))
	copy(out, s.sent)
	return out
}

// Armed reports whether capture is currently running.
func (s *Simulated) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.armed
}

// TxLineActive reports the transmit line level.
func (s *Simulated) TxLineActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.txLine
}
