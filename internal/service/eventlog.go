package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ir_gateway/internal/models"
	"ir_gateway/internal/repository"
)

// MaxHistoryLimit caps a single history page.
const MaxHistoryLimit = 1000

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

// ErrInvalidFilter wraps every history filter validation failure.
var ErrInvalidFilter = errors.New("invalid history filter")

var (
	errInvalidTimeRange = fmt.Errorf("%w: from must be <= to", ErrInvalidFilter)
	errInvalidDirection = fmt.Errorf("%w: direction must be TX or RX", ErrInvalidFilter)
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func normalizeDirection(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates them.
func normalizeAndValidateFilter(f HistoryFilter) (HistoryFilter, error) {
	out := HistoryFilter{
		From:      normalizeToUTC(f.From),
		To:        normalizeToUTC(f.To),
		Direction: normalizeDirection(f.Direction),
		Limit:     f.Limit,
	}
	if !out.From.IsZero() && !out.To.IsZero() && out.From.After(out.To) {
		return HistoryFilter{}, errInvalidTimeRange
	}
	switch out.Direction {
	case "", models.DirectionTX, models.DirectionRX:
	default:
		return HistoryFilter{}, errInvalidDirection
	}
	if out.Limit <= 0 || out.Limit > MaxHistoryLimit {
		out.Limit = MaxHistoryLimit
	}
	return out, nil
}

// List returns archived events matching f, oldest first.
func (s *EventLogService) List(ctx context.Context, f HistoryFilter) ([]models.IREvent, error) {
	nf, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, nf.From, nf.To, nf.Direction, nf.Limit)
}
