package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"ir_gateway/internal/protocol"
	"ir_gateway/internal/service"
	"ir_gateway/internal/version"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errInvalidCode   = "ERROR: Invalid code value.\n"
	errMissingCode   = "ERROR: Missing code value.\n"
	errUnknownType   = "ERROR: Unknown type.\n"
	errInvalidRepeat = "ERROR: Invalid repeat value.\n"
	errTransmit      = "ERROR: Transmission failed.\n"
	errLoadHistory   = "failed to load history"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Status page
// @Description  Version, clock, uptime and the tx/rx counters as plain text.
// @Tags         ir
// @Produce      plain
// @Success      200  {string}  string
// @Router       / [get]
func (h *Handler) statusPage(c *gin.Context) {
	st := h.services.Snapshot()
	host := c.Request.Host

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", version.Banner())
	fmt.Fprintf(&b, "Date:          %s\n", st.Date)
	fmt.Fprintf(&b, "Uptime:        %s\n", st.Uptime)
	fmt.Fprintf(&b, "\n")
	fmt.Fprintf(&b, "Tx Data:\n")
	fmt.Fprintf(&b, "  Count:  %d\n", st.TxCount)
	fmt.Fprintf(&b, "  Last:   %s\n", st.LastTx)
	fmt.Fprintf(&b, "  Log:    http://%s/txlog\n", host)
	fmt.Fprintf(&b, "\n")
	fmt.Fprintf(&b, "Rx Data:\n")
	fmt.Fprintf(&b, "  Count:  %d\n", st.RxCount)
	fmt.Fprintf(&b, "  Last:   %s\n", st.LastRx)
	fmt.Fprintf(&b, "  Log:    http://%s/rxlog\n", host)
	fmt.Fprintf(&b, "\n")
	fmt.Fprintf(&b, "Trigger IR transmission via:\n")
	fmt.Fprintf(&b, "  http://%s/tx?type=nec&code=0x1234&repeat=1\n", host)
	fmt.Fprintf(&b, "\n")

	c.String(http.StatusOK, b.String())
}

// @Summary      Transmit one IR code
// @Description  Unknown query parameters are ignored. type defaults to NEC and repeat to 0.
// @Tags         ir
// @Produce      plain
// @Param        code    query  string  true   "Code, decimal or 0x-prefixed hex"  example(0x20DF10EF)
// @Param        type    query  string  false  "Protocol name"  example(nec)
// @Param        repeat  query  int     false  "Repeat count, clamped to 0..15"
// @Success      200  {string}  string  "the logged tx entry"
// @Failure      400  {string}  string
// @Failure      401  {object}  map[string]string
// @Failure      500  {string}  string
// @Router       /tx [get]
// @Security     BearerAuth
func (h *Handler) transmit(c *gin.Context) {
	var (
		id     = protocol.Default
		repeat int
		code   uint32
		err    error
	)

	codeText, ok := c.GetQuery("code")
	if !ok || strings.TrimSpace(codeText) == "" {
		c.String(http.StatusBadRequest, errMissingCode)
		return
	}
	if code, err = protocol.ParseCode(codeText); err != nil {
		c.String(http.StatusBadRequest, errInvalidCode)
		return
	}
	if t, ok := c.GetQuery("type"); ok {
		if id = protocol.FromName(strings.TrimSpace(t)); id == protocol.Unknown {
			c.String(http.StatusBadRequest, errUnknownType)
			return
		}
	}
	if r, ok := c.GetQuery("repeat"); ok {
		if repeat, err = protocol.ParseCount(r, service.MaxRepeat); err != nil {
			c.String(http.StatusBadRequest, errInvalidRepeat)
			return
		}
	}

	line, err := h.services.Transmit(c.Request.Context(), id, code, repeat)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("http_tx_failed", "err", err, "protocol", id.String(), "code", code)
		}
		c.String(http.StatusInternalServerError, errTransmit)
		return
	}
	c.String(http.StatusOK, line+"\n")
}

// @Summary      Run a sequence or macro
// @Description  sequence is protocol:code:repeat[:pause][,...]; name runs a stored macro instead.
// @Tags         ir
// @Produce      plain
// @Param        sequence  query  string  false  "Sequence text"  example(nec:0x20DF10EF:0:500,nec:0x20DFC03F:2)
// @Param        name      query  string  false  "Macro name"
// @Success      200  {string}  string  "Executed N steps"
// @Failure      400  {string}  string
// @Failure      401  {object}  map[string]string
// @Failure      404  {string}  string
// @Failure      500  {string}  string
// @Router       /seq [get]
// @Security     BearerAuth
func (h *Handler) sequence(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		res service.SequenceResult
		err error
	)
	if name := strings.TrimSpace(c.Query("name")); name != "" {
		res, err = h.services.ExecuteMacro(ctx, name)
	} else if text := c.Query("sequence"); strings.TrimSpace(text) != "" {
		res, err = h.services.Execute(ctx, text)
	} else {
		c.String(http.StatusBadRequest, service.Usage)
		return
	}

	body := fmt.Sprintf("Executed %d steps\n%s", res.Executed, res.Message)
	if err != nil {
		if h.log != nil {
			h.log.Infow("http_seq_failed", "err", err, "executed", res.Executed)
		}
		c.String(sequenceErrorStatus(err), "%sERROR: %v\n", body, err)
		return
	}
	c.String(http.StatusOK, body)
}

func sequenceErrorStatus(err error) int {
	var se *service.StepError
	switch {
	case errors.Is(err, service.ErrUnknownMacro):
		return http.StatusNotFound
	case errors.As(err, &se) && se.Field == "transmit":
		return http.StatusInternalServerError
	case errors.As(err, &se):
		return http.StatusBadRequest
	default:
		// cancelled by the client
		return http.StatusRequestTimeout
	}
}

// @Summary      Transmit log
// @Tags         ir
// @Produce      plain
// @Success      200  {string}  string
// @Router       /txlog [get]
func (h *Handler) txLog(c *gin.Context) {
	c.String(http.StatusOK, h.services.TxLog())
}

// @Summary      Receive log
// @Tags         ir
// @Produce      plain
// @Success      200  {string}  string
// @Router       /rxlog [get]
func (h *Handler) rxLog(c *gin.Context) {
	c.String(http.StatusOK, h.services.RxLog())
}

// @Summary      Supported protocols
// @Tags         ir
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, protocols"
// @Router       /protocols [get]
func (h *Handler) protocols(c *gin.Context) {
	names := protocol.Names()
	c.JSON(http.StatusOK, gin.H{
		"count":     len(names),
		"protocols": names,
	})
}

// @Summary      Stored macros
// @Tags         ir
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, macros"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/macros [get]
// @Security     BearerAuth
func (h *Handler) listMacros(c *gin.Context) {
	names := h.services.MacroNames()
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(names),
		"macros": names,
	})
}
