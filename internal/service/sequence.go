package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ir_gateway/internal/logger"
	"ir_gateway/internal/protocol"
)

const (
	// DefaultPauseText applies when a step has no fourth field.
	DefaultPauseText = "100"
	// MaxPauseMillis bounds the wait after a step.
	MaxPauseMillis = 5000
)

// Usage describes the sequence grammar.
const Usage = "Usage: sequence=protocol:code:repeat[:pause][,protocol:code:repeat[:pause]...]\n" +
	"  code is decimal or 0x-prefixed hex, repeat 0..15, pause in ms 0..5000 (default 100)\n" +
	"Example: sequence=nec:0x20DF10EF:0:500,nec:0x20DFC03F:2\n"

// ErrUnknownMacro is returned by ExecuteMacro for names not in the store.
var ErrUnknownMacro = errors.New("unknown macro")

// Transmitter is the part of the controller a sequence drives.
type Transmitter interface {
	Transmit(ctx context.Context, id protocol.ID, code uint32, repeat int) (string, error)
}

// MacroSource resolves stored sequences by name.
type MacroSource interface {
	Lookup(name string) (string, bool)
	Names() []string
}

// SequenceResult reports how far a sequence got.
type SequenceResult struct {
	Executed int
	Message  string
}

// StepError identifies the step and field that stopped a sequence.
type StepError struct {
	Step  int // 1-based, counting non-empty segments
	Field string
	Text  string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %s %q: %v", e.Step, e.Field, e.Text, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

type sequenceStep struct {
	id     protocol.ID
	code   uint32
	repeat int
	pause  time.Duration
}

// SequenceService parses and runs sequences step by step. Steps that ran
// before a failure are not rolled back.
type SequenceService struct {
	tx     Transmitter
	macros MacroSource
	log    *logger.Logger
	wait   func(ctx context.Context, d time.Duration) error
}

// NewSequenceService returns an executor over tx. macros may be nil.
func NewSequenceService(tx Transmitter, macros MacroSource, log *logger.Logger) *SequenceService {
	return &SequenceService{tx: tx, macros: macros, log: logger.OrNop(log), wait: sleepCtx}
}

// Execute runs text. On error the result still carries the steps executed.
func (s *SequenceService) Execute(ctx context.Context, text string) (SequenceResult, error) {
	var res SequenceResult
	step := 0
	for _, seg := range strings.Split(text, ",") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		step++

		st, err := parseStep(step, seg)
		if err != nil {
			s.log.Warnw("sequence_aborted", "step", step, "executed", res.Executed, "err", err)
			return res, err
		}
		if _, err := s.tx.Transmit(ctx, st.id, st.code, st.repeat); err != nil {
			return res, &StepError{Step: step, Field: "transmit", Text: seg, Err: err}
		}
		res.Executed++

		if st.pause > 0 {
			if err := s.wait(ctx, st.pause); err != nil {
				s.log.Infow("sequence_cancelled", "executed", res.Executed, "err", err)
				return res, fmt.Errorf("sequence cancelled after %d steps: %w", res.Executed, err)
			}
		}
	}
	return res, nil
}

// ExecuteMacro runs the stored sequence called name.
func (s *SequenceService) ExecuteMacro(ctx context.Context, name string) (SequenceResult, error) {
	if s.macros == nil {
		return SequenceResult{}, fmt.Errorf("%w: %q", ErrUnknownMacro, name)
	}
	text, ok := s.macros.Lookup(name)
	if !ok {
		return SequenceResult{}, fmt.Errorf("%w: %q", ErrUnknownMacro, name)
	}
	res, err := s.Execute(ctx, text)
	res.Message = "macro " + name + "\n"
	return res, err
}

// MacroNames lists the stored macros, sorted.
func (s *SequenceService) MacroNames() []string {
	if s.macros == nil {
		return nil
	}
	return s.macros.Names()
}

// parseStep splits "protocol:code:repeat[:pause]". A fifth field ends up in
// the pause text and fails number parsing.
func parseStep(step int, seg string) (sequenceStep, error) {
	fields := strings.SplitN(seg, ":", 4)
	if len(fields) < 3 {
		return sequenceStep{}, &StepError{Step: step, Field: "step", Text: seg, Err: ErrMissingArgument}
	}
	pauseText := DefaultPauseText
	if len(fields) == 4 {
		pauseText = fields[3]
	}
	for i, name := range []string{"protocol", "code", "repeat"} {
		if strings.TrimSpace(fields[i]) == "" {
			return sequenceStep{}, &StepError{Step: step, Field: name, Text: fields[i], Err: ErrMissingArgument}
		}
	}

	id := protocol.FromName(strings.TrimSpace(fields[0]))
	if id == protocol.Unknown {
		return sequenceStep{}, &StepError{Step: step, Field: "protocol", Text: fields[0], Err: ErrUnknownProtocol}
	}
	code, err := protocol.ParseCode(fields[1])
	if err != nil {
		return sequenceStep{}, &StepError{Step: step, Field: "code", Text: fields[1], Err: ErrInvalidNumber}
	}
	repeat, err := protocol.ParseCount(fields[2], MaxRepeat)
	if err != nil {
		return sequenceStep{}, &StepError{Step: step, Field: "repeat", Text: fields[2], Err: ErrInvalidNumber}
	}
	pause, err := protocol.ParseCount(pauseText, MaxPauseMillis)
	if err != nil {
		return sequenceStep{}, &StepError{Step: step, Field: "pause", Text: pauseText, Err: ErrInvalidNumber}
	}
	return sequenceStep{
		id:     id,
		code:   code,
		repeat: repeat,
		pause:  time.Duration(pause) * time.Millisecond,
	}, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
