package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"

	"ir_gateway/internal/models"
	"ir_gateway/internal/protocol"
	"ir_gateway/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type txCall struct {
	id     protocol.ID
	code   uint32
	repeat int
}

type mockInfrared struct {
	mu     sync.Mutex
	calls  []txCall
	txErr  error
	status models.Status
	txLog  string
	rxLog  string
}

func (m *mockInfrared) Begin() error { return nil }
func (m *mockInfrared) TransmitText(ctx context.Context, p, c, r string) (string, error) {
	return "", service.ErrMissingArgument
}
func (m *mockInfrared) Transmit(ctx context.Context, id protocol.ID, code uint32, repeat int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.txErr != nil {
		return "", m.txErr
	}
	m.calls = append(m.calls, txCall{id: id, code: code, repeat: repeat})
	return "2025-01-02 03:04:05; " + id.String() + "; line", nil
}
func (m *mockInfrared) TxCount() uint32 { return m.status.TxCount }
func (m *mockInfrared) RxCount() uint32 { return m.status.RxCount }
func (m *mockInfrared) LastTx() string  { return m.status.LastTx }
func (m *mockInfrared) LastRx() string  { return m.status.LastRx }
func (m *mockInfrared) TxLog() string   { return m.txLog }
func (m *mockInfrared) RxLog() string   { return m.rxLog }
func (m *mockInfrared) Snapshot() models.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}
func (m *mockInfrared) DeviceName() string { return "mock" }

func (m *mockInfrared) sent() []txCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]txCall(nil), m.calls...)
}

type mockSequencer struct {
	res      service.SequenceResult
	err      error
	names    []string
	lastText string
	lastName string
}

func (m *mockSequencer) Execute(ctx context.Context, text string) (service.SequenceResult, error) {
	m.lastText = text
	return m.res, m.err
}
func (m *mockSequencer) ExecuteMacro(ctx context.Context, name string) (service.SequenceResult, error) {
	m.lastName = name
	return m.res, m.err
}
func (m *mockSequencer) MacroNames() []string { return m.names }

type mockEventLog struct {
	resp       []models.IREvent
	err        error
	lastFilter service.HistoryFilter
}

func (m *mockEventLog) List(ctx context.Context, f service.HistoryFilter) ([]models.IREvent, error) {
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, opts Options) *gin.Engine {
	h := NewHandler(s, nil, opts)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func doGet(r http.Handler, target string, hdr http.Header) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, vv := range hdr {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	return w
}
