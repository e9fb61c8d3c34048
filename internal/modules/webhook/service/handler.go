package service

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"signal_bot/internal/helper"
	"signal_bot/internal/models"
	"signal_bot/internal/notify"
	"signal_bot/internal/runner"
	"signal_bot/pkg/logger"
	"signal_bot/pkg/tracing"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

const (
	maxBodyBytes = 64 << 10

	textSignalSent     = "Signal Sent!"
	textInvalidPayload = "Invalid payload"
	textInvalidPrice   = "Invalid price"
	textInternalError  = "Internal error"
	textBalanceUpdated = "Balance Updated!"
	textInvalidBalance = "Invalid balance value!"
)

var (
	ErrInvalidPayload = errors.New("invalid payload")
	ErrInvalidPrice   = errors.New("invalid price")
)

// Feed — websocket-лента уведомлений.
type Feed interface {
	ServeWS(w http.ResponseWriter, r *http.Request) error
}

type Handler struct {
	runner *runner.Runner
	feed   Feed
	tracer opentracing.Tracer
}

func NewHandler(r *runner.Runner, feed Feed, tracer opentracing.Tracer) *Handler {
	return &Handler{runner: r, feed: feed, tracer: tracer}
}

// тело алерта TradingView
type webhookPayload struct {
	Ticker string `json:"ticker"`
	Close  any    `json:"close"`
	Action string `json:"action"`
}

type balancePayload struct {
	Balance any `json:"balance"`
}

// Home — GET /
func (h *Handler) Home(c *gin.Context) {
	c.String(http.StatusOK, notify.HomeText)
}

// Webhook — POST /webhook
func (h *Handler) Webhook(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		c.String(http.StatusBadRequest, textInvalidPayload)
		return
	}

	ev, err := DecodeEvent(body, time.Now())
	switch {
	case errors.Is(err, ErrInvalidPrice):
		logger.Warn("[WEBHOOK] %v: %s", err, body)
		c.String(http.StatusBadRequest, textInvalidPrice)
		return
	case err != nil:
		logger.Warn("[WEBHOOK] %v: %s", err, body)
		c.String(http.StatusBadRequest, textInvalidPayload)
		return
	}

	span, ctx := tracing.StartSpan(c.Request.Context(), h.tracer, "webhook.signal", opentracing.Tags{
		"ticker": ev.Ticker,
		"action": string(ev.Action),
	})
	defer span.Finish()

	if _, err := h.runner.HandleSignal(ctx, ev); err != nil {
		ext.Error.Set(span, true)
		span.LogKV("error", err.Error())
		logger.Error("[WEBHOOK] event %s (trace=%s): %v", ev.ID, tracing.TraceID(span), err)
		c.String(http.StatusInternalServerError, textInternalError)
		return
	}

	c.String(http.StatusOK, textSignalSent)
}

// SetBalance — POST /balance {"balance": x}
func (h *Handler) SetBalance(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		c.String(http.StatusBadRequest, textInvalidBalance)
		return
	}

	var p balancePayload
	if err := sonic.Unmarshal(body, &p); err != nil {
		c.String(http.StatusBadRequest, textInvalidBalance)
		return
	}
	v, ok, err := parseNumber(p.Balance)
	if err != nil || !ok {
		c.String(http.StatusBadRequest, textInvalidBalance)
		return
	}

	if err := h.runner.SetBalance(v); err != nil {
		logger.Warn("[WEBHOOK] balance %v rejected: %v", v, err)
		c.String(http.StatusBadRequest, textInvalidBalance)
		return
	}
	c.String(http.StatusOK, textBalanceUpdated)
}

// Balance — GET /balance
func (h *Handler) Balance(c *gin.Context) {
	c.JSON(http.StatusOK, h.runner.Account().Snapshot())
}

// WS — GET /ws
func (h *Handler) WS(c *gin.Context) {
	if h.feed == nil {
		c.String(http.StatusNotFound, "feed disabled")
		return
	}
	if err := h.feed.ServeWS(c.Writer, c.Request); err != nil {
		// апгрейдер уже ответил клиенту
		logger.Warn("[WEBHOOK] ws upgrade: %v", err)
	}
}

func readBody(c *gin.Context) ([]byte, error) {
	if c.Request.Body == nil {
		return nil, ErrInvalidPayload
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// DecodeEvent разбирает тело вебхука. Для BUY/SELL цена обязательна и > 0,
// для TP/SL поле close можно не передавать.
func DecodeEvent(body []byte, now time.Time) (models.Event, error) {
	trimmed := strings.TrimSpace(string(body))
	if !strings.HasPrefix(trimmed, "{") {
		return models.Event{}, ErrInvalidPayload
	}

	var p webhookPayload
	if err := sonic.UnmarshalString(trimmed, &p); err != nil {
		return models.Event{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	price, hasPrice, err := parseNumber(p.Close)
	if err != nil {
		return models.Event{}, fmt.Errorf("%w: close=%v", ErrInvalidPrice, p.Close)
	}

	action := models.ParseAction(p.Action)
	if action.IsEntry() && (!hasPrice || price <= 0) {
		return models.Event{}, fmt.Errorf("%w: %s needs positive close", ErrInvalidPrice, action)
	}

	return models.Event{
		ID:         uuid.NewString(),
		Ticker:     strings.TrimSpace(p.Ticker),
		Action:     action,
		RawAction:  p.Action,
		Price:      price,
		HasPrice:   hasPrice,
		ReceivedAt: now,
	}, nil
}

// parseNumber принимает число или строку. nil/"" — значения нет.
func parseNumber(v any) (float64, bool, error) {
	switch x := v.(type) {
	case nil:
		return 0, false, nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false, fmt.Errorf("not finite: %v", x)
		}
		return x, true, nil
	case string:
		if strings.TrimSpace(x) == "" {
			return 0, false, nil
		}
		f, err := helper.ParseFloat(x)
		if err != nil {
			return 0, false, err
		}
		return f, true, nil
	default:
		return 0, false, fmt.Errorf("unexpected type %T", v)
	}
}
