package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"ir_gateway/internal/models"
	"ir_gateway/internal/protocol"
	"ir_gateway/internal/service"
)

func newIRRouter(opts Options) (*mockInfrared, *mockSequencer, http.Handler) {
	ir := &mockInfrared{
		status: models.Status{
			Date: "2025-01-02 03:04:05", Uptime: "0d 00:01:00",
			TxCount: 3, RxCount: 1,
			LastTx: "2025-01-02 03:04:00; NEC; 0x1234", LastRx: "none",
		},
		txLog: "a\nb\n",
		rxLog: "empty\n",
	}
	seq := &mockSequencer{}
	s := &service.Service{
		Infrared:      ir,
		Sequencer:     seq,
		Authorization: &mockAuth{parseID: 1},
	}
	return ir, seq, newTestRouter(s, opts)
}

func TestStatusPage(t *testing.T) {
	_, _, r := newIRRouter(Options{})
	w := doGet(r, "/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		"Date:          2025-01-02 03:04:05\n",
		"Uptime:        0d 00:01:00\n",
		"Tx Data:\n  Count:  3\n  Last:   2025-01-02 03:04:00; NEC; 0x1234\n  Log:    http://example.com/txlog\n",
		"Rx Data:\n  Count:  1\n  Last:   none\n  Log:    http://example.com/rxlog\n",
		"  http://example.com/tx?type=nec&code=0x1234&repeat=1\n",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("status page missing %q:\n%s", want, body)
		}
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("Content-Type = %q", ct)
	}
}

func TestTransmit_Defaults(t *testing.T) {
	ir, _, r := newIRRouter(Options{})

	w := doGet(r, "/tx?code=0x1234&foo=bar", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if w.Body.String() != "2025-01-02 03:04:05; NEC; line\n" {
		t.Fatalf("body = %q", w.Body.String())
	}
	sent := ir.sent()
	if len(sent) != 1 || sent[0] != (txCall{protocol.NEC, 0x1234, 0}) {
		t.Fatalf("sent = %+v", sent)
	}
}

func TestTransmit_TypeAndClampedRepeat(t *testing.T) {
	ir, _, r := newIRRouter(Options{})

	w := doGet(r, "/tx?type=sony&code=6699&repeat=20", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if sent := ir.sent(); sent[0] != (txCall{protocol.Sony, 6699, 15}) {
		t.Fatalf("sent = %+v", sent)
	}
}

func TestTransmit_InvalidInput(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"", errMissingCode},
		{"type=nec", errMissingCode},
		{"code=12ab", errInvalidCode},
		{"code=0x123456789", errInvalidCode},
		{"code=1&type=bogus", errUnknownType},
		{"code=1&repeat=many", errInvalidRepeat},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			ir, _, r := newIRRouter(Options{})
			w := doGet(r, "/tx?"+tc.query, nil)
			if w.Code != http.StatusBadRequest || w.Body.String() != tc.want {
				t.Fatalf("got %d %q; want 400 %q", w.Code, w.Body.String(), tc.want)
			}
			if len(ir.sent()) != 0 {
				t.Fatalf("nothing must be sent")
			}
		})
	}
}

func TestTransmit_HardwareError(t *testing.T) {
	ir, _, r := newIRRouter(Options{})
	ir.txErr = errors.New("port closed")

	w := doGet(r, "/tx?code=1", nil)
	if w.Code != http.StatusInternalServerError || w.Body.String() != errTransmit {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
}

func TestSequence(t *testing.T) {
	_, seq, r := newIRRouter(Options{})

	w := doGet(r, "/seq", nil)
	if w.Code != http.StatusBadRequest || w.Body.String() != service.Usage {
		t.Fatalf("missing sequence: got %d %q", w.Code, w.Body.String())
	}

	seq.res = service.SequenceResult{Executed: 2}
	w = doGet(r, "/seq?sequence=nec:0x1:0:0,nec:0x2:0:0", nil)
	if w.Code != http.StatusOK || w.Body.String() != "Executed 2 steps\n" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
	if seq.lastText != "nec:0x1:0:0,nec:0x2:0:0" {
		t.Fatalf("lastText = %q", seq.lastText)
	}

	seq.res = service.SequenceResult{Executed: 1, Message: "macro tv_on\n"}
	w = doGet(r, "/seq?name=tv_on", nil)
	if w.Code != http.StatusOK || w.Body.String() != "Executed 1 steps\nmacro tv_on\n" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
	if seq.lastName != "tv_on" {
		t.Fatalf("lastName = %q", seq.lastName)
	}
}

func TestSequence_Errors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"parse", &service.StepError{Step: 2, Field: "protocol", Text: "bogus", Err: service.ErrUnknownProtocol}, http.StatusBadRequest},
		{"transmit", &service.StepError{Step: 1, Field: "transmit", Err: errors.New("port closed")}, http.StatusInternalServerError},
		{"macro", service.ErrUnknownMacro, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, seq, r := newIRRouter(Options{})
			seq.res = service.SequenceResult{Executed: 1}
			seq.err = tc.err

			w := doGet(r, "/seq?sequence=x", nil)
			if w.Code != tc.code {
				t.Fatalf("status = %d; want %d", w.Code, tc.code)
			}
			want := "Executed 1 steps\nERROR: " + tc.err.Error() + "\n"
			if w.Body.String() != want {
				t.Fatalf("body = %q; want %q", w.Body.String(), want)
			}
		})
	}
}

func TestLogsProtocolsMacros(t *testing.T) {
	_, seq, r := newIRRouter(Options{})

	if w := doGet(r, "/txlog", nil); w.Body.String() != "a\nb\n" {
		t.Fatalf("txlog = %q", w.Body.String())
	}
	if w := doGet(r, "/rxlog", nil); w.Body.String() != "empty\n" {
		t.Fatalf("rxlog = %q", w.Body.String())
	}

	w := doGet(r, "/protocols", nil)
	var protos struct {
		Count     int      `json:"count"`
		Protocols []string `json:"protocols"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &protos); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if protos.Count != protocol.Count() || protos.Protocols[protocol.NEC] != "NEC" {
		t.Fatalf("protocols = %+v", protos)
	}

	w = doGet(r, "/api/v1/macros", nil)
	if w.Body.String() != `{"count":0,"macros":[]}` {
		t.Fatalf("macros = %s", w.Body.String())
	}
	seq.names = []string{"tv_on"}
	w = doGet(r, "/api/v1/macros", nil)
	if w.Body.String() != `{"count":1,"macros":["tv_on"]}` {
		t.Fatalf("macros = %s", w.Body.String())
	}
}

func TestNotFound(t *testing.T) {
	_, _, r := newIRRouter(Options{})
	w := doGet(r, "/nope", nil)
	if w.Code != http.StatusNotFound || w.Body.String() != "File Not Found\n" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
	// auth routes are absent unless enabled
	if w := doGet(r, "/auth/sign-in", nil); w.Code != http.StatusNotFound {
		t.Fatalf("auth route status = %d", w.Code)
	}
}

func TestAuthEnabled_ProtectsControlRoutes(t *testing.T) {
	ir, _, r := newIRRouter(Options{AuthEnabled: true})

	for _, path := range []string{"/tx?code=1", "/seq?sequence=nec:1:0", "/api/v1/macros", "/api/v1/history"} {
		if w := doGet(r, path, nil); w.Code != http.StatusUnauthorized {
			t.Fatalf("%s without token: status %d", path, w.Code)
		}
	}
	if len(ir.sent()) != 0 {
		t.Fatalf("unauthenticated tx must not transmit")
	}

	if w := doGet(r, "/tx?code=1", authHeader("valid")); w.Code != http.StatusOK {
		t.Fatalf("tx with token: status %d", w.Code)
	}
	for _, path := range []string{"/", "/txlog", "/rxlog", "/protocols", "/health"} {
		if w := doGet(r, path, nil); w.Code != http.StatusOK {
			t.Fatalf("%s must stay public: status %d", path, w.Code)
		}
	}
}
