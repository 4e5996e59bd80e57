package service

import (
	"context"
	"time"
)

// DefaultPollInterval is used when Run is given a non-positive tick.
const DefaultPollInterval = 10 * time.Millisecond

// maxFramesPerTick bounds how many frames one tick may log.
const maxFramesPerTick = 8

// ReceivePoller is the receive half of the controller.
type ReceivePoller interface {
	HandleReceive(ctx context.Context) bool
}

// ReceiverService polls the front end for decoded frames.
type ReceiverService struct {
	ir ReceivePoller
}

func NewReceiverService(ir ReceivePoller) *ReceiverService {
	return &ReceiverService{ir: ir}
}

// Run polls every tick until ctx is canceled.
func (s *ReceiverService) Run(ctx context.Context, tick time.Duration) {
	if tick <= 0 {
		tick = DefaultPollInterval
	}
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			for i := 0; i < maxFramesPerTick; i++ {
				if !s.ir.HandleReceive(ctx) {
					break
				}
			}
		}
	}
}
