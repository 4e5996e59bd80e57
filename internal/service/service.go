package service

import (
	"context"
	"time"

	"ir_gateway/internal/hardware"
	"ir_gateway/internal/logger"
	"ir_gateway/internal/models"
	"ir_gateway/internal/protocol"
	"ir_gateway/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Infrared is the controller surface shared by the console and HTTP layers.
type Infrared interface {
	Begin() error
	TransmitText(ctx context.Context, protocolText, codeText, repeatText string) (string, error)
	Transmit(ctx context.Context, id protocol.ID, code uint32, repeat int) (string, error)
	TxCount() uint32
	RxCount() uint32
	LastTx() string
	LastRx() string
	TxLog() string
	RxLog() string
	Snapshot() models.Status
	DeviceName() string
}

// Sequencer runs multi-step transmissions.
type Sequencer interface {
	Execute(ctx context.Context, text string) (SequenceResult, error)
	ExecuteMacro(ctx context.Context, name string) (SequenceResult, error)
	MacroNames() []string
}

// EventLog exposes the persisted tx/rx history.
type EventLog interface {
	List(ctx context.Context, f HistoryFilter) ([]models.IREvent, error)
}

// Receiver runs the background receive poll. Stop it by canceling ctx.
type Receiver interface {
	Run(ctx context.Context, tick time.Duration)
}

type Service struct {
	Infrared
	Sequencer
	EventLog
	Receiver
	Authorization
}

// Config carries the settings services need at construction.
type Config struct {
	IR   IRConfig
	Auth AuthConfig
}

// NewService wires the repository layer and the IR front end into services.
// macros may be nil.
func NewService(repos *repository.Repository, device hardware.Transceiver, macros MacroSource, cfg Config, log *logger.Logger) *Service {
	ir := NewIRController(device, cfg.IR, repos.EventRepo, log)
	return &Service{
		Infrared:      ir,
		Sequencer:     NewSequenceService(ir, macros, log),
		EventLog:      NewEventLogService(repos.EventRepo),
		Receiver:      NewReceiverService(ir),
		Authorization: NewAuthService(repos.Auth, cfg.Auth),
	}
}
