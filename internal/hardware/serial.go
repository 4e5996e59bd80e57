package hardware

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"ir_gateway/internal/protocol"

	"go.bug.st/serial"
)

// SerialTransceiver drives an IR bridge microcontroller over a UART using a
// line protocol:
//
//	host -> bridge: BEGIN | PAUSE | RESUME | TX <PROTO> 0x<CODE> <BITS> <REPEAT>
//	bridge -> host: RX <PROTO> 0x<VALUE> [<BITS>]
//
// Any other bridge line (OK, ERR ..., banners) is ignored.
type SerialTransceiver struct {
	portPath string
	baudRate int

	mu     sync.Mutex
	port   io.ReadWriteCloser
	frames chan Frame
	done   chan struct{}
	onLine func(string)
}

// SerialConfig holds configuration for the serial IR bridge.
type SerialConfig struct {
	PortPath string
	BaudRate int
	// OnUnparsed, if set, is called for bridge lines that are not RX frames.
	OnUnparsed func(line string)
}

// frameBuffer bounds frames decoded by the bridge but not yet polled.
const frameBuffer = 16

// NewSerial creates a serial bridge transceiver. The port is opened by Begin.
func NewSerial(cfg SerialConfig) *SerialTransceiver {
	if cfg.BaudRate == 0 {
		cfg.BaudRate = 115200
	}
	return &SerialTransceiver{
		portPath: cfg.PortPath,
		baudRate: cfg.BaudRate,
		onLine:   cfg.OnUnparsed,
	}
}

func (s *SerialTransceiver) Name() string { return "serial " + s.portPath }

// Begin opens the port, starts the reader and arms the bridge.
func (s *SerialTransceiver) Begin() error {
	mode := &serial.Mode{
		BaudRate: s.baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(s.portPath, mode)
	if err != nil {
		return fmt.Errorf("ir bridge: failed to open %s: %w", s.portPath, err)
	}
	if err := port.SetReadTimeout(200 * time.Millisecond); err != nil {
		_ = port.Close()
		return fmt.Errorf("ir bridge: set read timeout: %w", err)
	}
	return s.attach(port)
}

// attach binds an already-open stream and sends BEGIN.
func (s *SerialTransceiver) attach(rw io.ReadWriteCloser) error {
	s.mu.Lock()
	s.port = rw
	s.frames = make(chan Frame, frameBuffer)
	s.done = make(chan struct{})
	s.mu.Unlock()

	go s.readLoop(rw, s.frames, s.done)
	return s.writeLine("BEGIN")
}

func (s *SerialTransceiver) readLoop(r io.Reader, frames chan<- Frame, done <-chan struct{}) {
	scanner := bufio.NewScanner(r)
	for {
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			f, ok := parseRXLine(line)
			if !ok {
				if s.onLine != nil {
					s.onLine(line)
				}
				continue
			}
			select {
			case frames <- f:
			default:
				// poller is behind; drop like a receiver with a full buffer
			}
		}
		select {
		case <-done:
			return
		default:
		}
		// Serial read timeouts surface as empty reads, which the scanner
		// reports as ErrNoProgress. EOF and real errors stop the reader.
		if !errors.Is(scanner.Err(), io.ErrNoProgress) {
			return
		}
		scanner = bufio.NewScanner(r)
	}
}

// parseRXLine parses "RX <PROTO> 0x<VALUE> [<BITS>]".
func parseRXLine(line string) (Frame, bool) {
	fields := strings.Fields(line)
	if len(fields) < 3 || !strings.EqualFold(fields[0], "RX") {
		return Frame{}, false
	}
	hex := fields[2]
	if len(hex) < 3 || hex[0] != '0' || (hex[1] != 'x' && hex[1] != 'X') {
		return Frame{}, false
	}
	v, err := strconv.ParseUint(hex[2:], 16, 64)
	if err != nil {
		return Frame{}, false
	}
	f := Frame{Protocol: protocol.FromName(fields[1]), Value: v}
	if len(fields) > 3 {
		if b, err := strconv.ParseUint(fields[3], 10, 16); err == nil {
			f.Bits = uint16(b)
		}
	}
	return f, true
}

func (s *SerialTransceiver) writeLine(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return ErrNotConnected
	}
	if _, err := io.WriteString(s.port, line+"\n"); err != nil {
		return fmt.Errorf("ir bridge: write %q: %w", line, err)
	}
	return nil
}

func (s *SerialTransceiver) Send(p protocol.ID, code uint32, bits, repeat uint16) error {
	return s.writeLine(fmt.Sprintf("TX %s 0x%X %d %d", p, code, bits, repeat))
}

func (s *SerialTransceiver) PauseReceive() error  { return s.writeLine("PAUSE") }
func (s *SerialTransceiver) ResumeReceive() error { return s.writeLine("RESUME") }

func (s *SerialTransceiver) Decode() (Frame, bool) {
	s.mu.Lock()
	frames := s.frames
	s.mu.Unlock()
	if frames == nil {
		return Frame{}, false
	}
	select {
	case f := <-frames:
		return f, true
	default:
		return Frame{}, false
	}
}

func (s *SerialTransceiver) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return nil
	}
	close(s.done)
	err := s.port.Close()
	s.port = nil
	return err
}
