package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"ir_gateway/internal/activitylog"
	"ir_gateway/internal/hardware"
	"ir_gateway/internal/logger"
	"ir_gateway/internal/models"
	"ir_gateway/internal/protocol"
)

// MaxRepeat bounds the repeat count of every transmission.
const MaxRepeat = 15

// TimestampLayout is used for every activity log line.
const TimestampLayout = "2006-01-02 15:04:05"

// Input errors. Each maps to a distinct negative status via Status.
var (
	ErrMissingArgument = errors.New("missing argument")
	ErrUnknownProtocol = errors.New("unknown protocol")
	ErrInvalidNumber   = protocol.ErrInvalidNumber
)

// Status maps an input error to the numeric status used by the console:
// 0 on success, -1 missing argument, -2 unknown protocol, -3 invalid number.
func Status(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrMissingArgument):
		return -1
	case errors.Is(err, ErrUnknownProtocol):
		return -2
	case errors.Is(err, ErrInvalidNumber):
		return -3
	default:
		return -4
	}
}

// EventRecorder archives transmissions and receptions. Failures are logged
// and never reach the caller.
type EventRecorder interface {
	Append(ctx context.Context, e models.IREvent) error
}

// IRConfig configures an IRController.
type IRConfig struct {
	LogSize  int
	Location *time.Location
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// IRController owns the infrared front end, both activity logs and the
// counters. It is safe for concurrent use.
type IRController struct {
	hw       hardware.Transceiver
	recorder EventRecorder
	log      *logger.Logger

	// hwMu serialises pause/send/resume against decode/resume.
	hwMu sync.Mutex

	txLog *activitylog.Log
	rxLog *activitylog.Log

	txCount atomic.Uint32
	rxCount atomic.Uint32

	loc     *time.Location
	now     func() time.Time
	startMu sync.Mutex
	started time.Time
}

// NewIRController builds a controller around device. recorder may be nil.
func NewIRController(device hardware.Transceiver, cfg IRConfig, recorder EventRecorder, log *logger.Logger) *IRController {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &IRController{
		hw:       device,
		recorder: recorder,
		log:      logger.OrNop(log),
		txLog:    activitylog.New(cfg.LogSize),
		rxLog:    activitylog.New(cfg.LogSize),
		loc:      cfg.Location,
		now:      cfg.Now,
	}
}

// Begin drives the transmit line inactive and arms the receiver. Call once.
func (c *IRController) Begin() error {
	c.hwMu.Lock()
	defer c.hwMu.Unlock()
	if err := c.hw.Begin(); err != nil {
		return fmt.Errorf("begin %s: %w", c.hw.Name(), err)
	}
	c.startMu.Lock()
	c.started = c.now()
	c.startMu.Unlock()
	c.log.Infow("ir_front_end_ready", "device", c.hw.Name())
	return nil
}

// Uptime reports the time since Begin, or zero before it.
func (c *IRController) Uptime() time.Duration {
	c.startMu.Lock()
	defer c.startMu.Unlock()
	if c.started.IsZero() {
		return 0
	}
	return c.now().Sub(c.started)
}

// TransmitText parses textual arguments and transmits. All three must be
// present. repeatText is clamped into 0..MaxRepeat.
func (c *IRController) TransmitText(ctx context.Context, protocolText, codeText, repeatText string) (string, error) {
	if protocolText == "" || codeText == "" || repeatText == "" {
		return "", ErrMissingArgument
	}
	id := protocol.FromName(protocolText)
	if id == protocol.Unknown {
		return "", fmt.Errorf("%w: %q", ErrUnknownProtocol, protocolText)
	}
	code, err := protocol.ParseCode(codeText)
	if err != nil {
		return "", fmt.Errorf("code: %w", err)
	}
	repeat, err := protocol.ParseCount(repeatText, MaxRepeat)
	if err != nil {
		return "", fmt.Errorf("repeat: %w", err)
	}
	return c.Transmit(ctx, id, code, repeat)
}

// Transmit sends one command and returns the tx log entry it added. The
// receiver is paused for the duration of the hardware send so the emission
// is never decoded as incoming.
func (c *IRController) Transmit(ctx context.Context, id protocol.ID, code uint32, repeat int) (string, error) {
	repeat = protocol.Clamp(repeat, 0, MaxRepeat)

	c.hwMu.Lock()
	if err := c.hw.PauseReceive(); err != nil {
		c.log.Errorw("ir_pause_failed", "err", err)
	}
	sendErr := c.hw.Send(id, code, hardware.DefaultBits, uint16(repeat))
	if err := c.hw.ResumeReceive(); err != nil {
		c.log.Errorw("ir_resume_failed", "err", err)
	}
	c.hwMu.Unlock()

	if sendErr != nil {
		c.log.Errorw("ir_send_failed", "protocol", id.String(), "code", code, "err", sendErr)
		return "", fmt.Errorf("send: %w", sendErr)
	}

	now := c.now()
	hex := fmt.Sprintf("0x%X", code)
	line := c.formatLine(now, id.String(), hex)
	c.txLog.Push(line)
	c.txCount.Add(1)

	if repeat != 0 {
		c.log.Infof("IR TX: %s %s (repeat %dx)", id, hex, repeat)
	} else {
		c.log.Infof("IR TX: %s %s", id, hex)
	}
	c.record(ctx, models.IREvent{
		OccurredAt: now,
		Direction:  models.DirectionTX,
		Protocol:   id.String(),
		Code:       hex,
		Repeat:     repeat,
		Line:       line,
	})
	return line, nil
}

// HandleReceive polls the front end once. When a frame is ready the receiver
// is re-armed before the entry is logged. It never blocks on the hardware.
func (c *IRController) HandleReceive(ctx context.Context) bool {
	c.hwMu.Lock()
	f, ok := c.hw.Decode()
	if ok {
		if err := c.hw.ResumeReceive(); err != nil {
			c.log.Errorw("ir_resume_failed", "err", err)
		}
	}
	c.hwMu.Unlock()
	if !ok {
		return false
	}

	now := c.now()
	name := f.Protocol.String()
	hex := fmt.Sprintf("0x%X", f.Value)
	line := c.formatLine(now, name, hex)
	c.rxLog.Push(line)
	c.rxCount.Add(1)

	c.log.Infof("IR RX: %s %s", name, hex)
	c.record(ctx, models.IREvent{
		OccurredAt: now,
		Direction:  models.DirectionRX,
		Protocol:   name,
		Code:       hex,
		Line:       line,
	})
	return true
}

func (c *IRController) formatLine(t time.Time, proto, hex string) string {
	return c.Timestamp(t) + "; " + proto + "; " + hex
}

// Timestamp renders t in the configured zone.
func (c *IRController) Timestamp(t time.Time) string {
	return t.In(c.loc).Format(TimestampLayout)
}

// Now is the controller clock rendered as a timestamp.
func (c *IRController) Now() string { return c.Timestamp(c.now()) }

func (c *IRController) record(ctx context.Context, e models.IREvent) {
	if c.recorder == nil {
		return
	}
	// the emission already happened; a caller hanging up must not lose it
	if err := c.recorder.Append(context.WithoutCancel(ctx), e); err != nil {
		c.log.Errorw("ir_event_archive_failed", "direction", e.Direction, "err", err)
	}
}

func (c *IRController) TxCount() uint32 { return c.txCount.Load() }
func (c *IRController) RxCount() uint32 { return c.rxCount.Load() }
func (c *IRController) LastTx() string  { return c.txLog.Peek() }
func (c *IRController) LastRx() string  { return c.rxLog.Peek() }
func (c *IRController) TxLog() string   { return c.txLog.Dump() }
func (c *IRController) RxLog() string   { return c.rxLog.Dump() }

// DeviceName names the attached front end.
func (c *IRController) DeviceName() string { return c.hw.Name() }

// Snapshot returns counters and last entries together.
func (c *IRController) Snapshot() models.Status {
	return models.Status{
		Date:    c.Now(),
		Uptime:  FormatUptime(c.Uptime()),
		TxCount: c.TxCount(),
		RxCount: c.RxCount(),
		LastTx:  c.LastTx(),
		LastRx:  c.LastRx(),
	}
}

// FormatUptime renders d as "<days>d hh:mm:ss".
func FormatUptime(d time.Duration) string {
	s := int64(d / time.Second)
	days := s / 86400
	s %= 86400
	return fmt.Sprintf("%dd %02d:%02d:%02d", days, s/3600, (s%3600)/60, s%60)
}
