package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"long-division-api/internal/division"
	"long-division-api/internal/handlers"
	"long-division-api/internal/history"
	"long-division-api/internal/observability"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Handler serves the division endpoints. Every successful calculation is
// appended to the injected history store; rejected input never is.
type Handler struct {
	history  history.Store
	interval time.Duration
	now      func() time.Time
}

// Option configures a Handler.
type Option func(*Handler)

// WithRevealInterval sets the pause between streamed steps.
func WithRevealInterval(d time.Duration) Option {
	return func(h *Handler) { h.interval = d }
}

// WithClock replaces time.Now for history timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// NewHandler returns a Handler recording into store.
func NewHandler(store history.Store, opts ...Option) *Handler {
	h := &Handler{
		history:  store,
		interval: 500 * time.Millisecond,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ---------------------------------------------------------------------------
// Handlers: numeric JSON operands
// ---------------------------------------------------------------------------

// Long handles POST /calculator/long
func (h *Handler) Long(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.long")
	defer span.End()

	var req LongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "long", "invalid request body", err, http.StatusBadRequest, w)
		return
	}
	dividend, divisor, err := req.operands()
	if err != nil {
		rejectInput(ctx, span, logger, "long", err, w)
		return
	}

	h.writeLong(ctx, span, logger, w, dividend, divisor, req.resolve())
}

// Chain handles POST /calculator/chain
func (h *Handler) Chain(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.chain")
	defer span.End()

	var req ChainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "chain", "invalid request body", err, http.StatusBadRequest, w)
		return
	}
	start, err := req.operands()
	if err != nil {
		rejectInput(ctx, span, logger, "chain", err, w)
		return
	}

	h.writeChain(ctx, span, logger, w, start, req.Divisors, req.resolve())
}

// ---------------------------------------------------------------------------
// Handler: raw text input, dispatched by mode
// ---------------------------------------------------------------------------

// Calculate handles POST /calculator/calculate. Operands arrive as the text a
// user typed and go through sanitization before validation.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.calculate")
	defer span.End()

	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "calculate", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	mode, err := division.ParseMode(req.Mode)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "calculate", err.Error(), err, http.StatusBadRequest, w)
		return
	}
	span.SetAttributes(attribute.String("calculator.mode", mode.String()))

	switch mode {
	case division.ChainMode:
		start, divisors, err := division.ParseChain(req.Start, req.Divisors)
		if err != nil {
			rejectInput(ctx, span, logger, "chain", err, w)
			return
		}
		h.writeChain(ctx, span, logger, w, start, divisors, req.resolve())
	default:
		dividend, divisor, err := division.ParseLong(req.Dividend, req.Divisor)
		if err != nil {
			rejectInput(ctx, span, logger, "long", err, w)
			return
		}
		h.writeLong(ctx, span, logger, w, dividend, divisor, req.resolve())
	}
}

// ---------------------------------------------------------------------------
// Handlers: history
// ---------------------------------------------------------------------------

// History handles GET /calculator/history
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.history.list")
	defer span.End()

	entries, err := h.history.List(ctx)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "history", "listing history failed", err, http.StatusInternalServerError, w)
		return
	}

	resp := HistoryResponse{Entries: make([]HistoryItem, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, HistoryItem{Entry: e, Line: e.Line()})
	}
	span.SetAttributes(attribute.Int("history.size", len(entries)))
	handlers.WriteJSON(w, http.StatusOK, resp)
}

// ClearHistory handles DELETE /calculator/history
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.history.clear")
	defer span.End()

	if err := h.history.Clear(ctx); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "history", "clearing history failed", err, http.StatusInternalServerError, w)
		return
	}

	logger.Info("history cleared", zap.String("request_id", observability.RequestIDFromContext(ctx)))
	span.SetStatus(codes.Ok, "")
	w.WriteHeader(http.StatusNoContent)
}

// Replay handles POST /calculator/history/{index}/replay. It re-runs the entry
// at index (0 is newest) in its own mode. The replay is recorded as a new entry.
func (h *Handler) Replay(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.history.replay")
	defer span.End()

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "replay", "invalid history index", err, http.StatusBadRequest, w)
		return
	}

	entry, err := history.At(ctx, h.history, index)
	if errors.Is(err, history.ErrNotFound) {
		observability.RecordError(ctx, span, logger, errorCounter, "replay", history.ErrNotFound.Error(), err, http.StatusNotFound, w)
		return
	}
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "replay", "listing history failed", err, http.StatusInternalServerError, w)
		return
	}

	span.SetAttributes(
		attribute.Int("history.index", index),
		attribute.String("history.entry_id", entry.ID),
	)

	opts := division.DefaultOptions()
	switch entry.Mode() {
	case division.ChainMode:
		h.writeChain(ctx, span, logger, w, entry.Chain.Start, entry.Chain.Divisors, opts)
	default:
		h.writeLong(ctx, span, logger, w, entry.Simple.Dividend, entry.Simple.Divisor, opts)
	}
}

// ---------------------------------------------------------------------------
// Handlers: canned examples
// ---------------------------------------------------------------------------

// Examples handles GET /calculator/examples
func (h *Handler) Examples(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, ExamplesResponse{
		Simple: division.LongExamples(),
		Chain:  division.ChainExamples(),
	})
}

// RandomExample handles POST /calculator/examples/random?mode=simple|chain
func (h *Handler) RandomExample(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.example")
	defer span.End()

	mode, err := division.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "example", err.Error(), err, http.StatusBadRequest, w)
		return
	}

	opts := division.DefaultOptions()
	switch mode {
	case division.ChainMode:
		ex := division.RandomChainExample()
		h.writeChain(ctx, span, logger, w, ex.Start, ex.Divisors, opts)
	default:
		ex := division.RandomLongExample()
		h.writeLong(ctx, span, logger, w, ex.Dividend, ex.Divisor, opts)
	}
}

// ---------------------------------------------------------------------------
// Shared implementation
// ---------------------------------------------------------------------------

func startSpan(r *http.Request, name string) (context.Context, trace.Span, *zap.Logger) {
	ctx := r.Context()
	ctx, span := tracer.Start(ctx, name,
		trace.WithAttributes(
			attribute.String("request.id", observability.RequestIDFromContext(ctx)),
		),
	)
	return ctx, span, observability.LoggerWithTrace(ctx)
}

func rejectInput(ctx context.Context, span trace.Span, logger *zap.Logger, opName string, err error, w http.ResponseWriter) {
	if !division.IsInputError(err) {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "calculation failed", err, http.StatusInternalServerError, w)
		return
	}
	observability.RecordError(ctx, span, logger, errorCounter, opName, division.Message(err), err, http.StatusBadRequest, w)
}

func (h *Handler) writeLong(ctx context.Context, span trace.Span, logger *zap.Logger, w http.ResponseWriter, dividend, divisor float64, opts division.Options) {
	resp, err := h.long(ctx, dividend, divisor, opts)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "long", "recording history failed", err, http.StatusInternalServerError, w)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeChain(ctx context.Context, span trace.Span, logger *zap.Logger, w http.ResponseWriter, start float64, divisors []float64, opts division.Options) {
	resp, err := h.chain(ctx, start, divisors, opts)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "chain", "recording history failed", err, http.StatusInternalServerError, w)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, resp)
}

// long runs a validated long division, records metrics, the span event and
// the history entry, and logs the outcome.
func (h *Handler) long(ctx context.Context, dividend, divisor float64, opts division.Options) (LongResponse, error) {
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	span := trace.SpanFromContext(ctx)

	span.SetAttributes(
		attribute.Float64("division.dividend", dividend),
		attribute.Float64("division.divisor", divisor),
	)

	start := time.Now()
	result := division.Divide(dividend, divisor)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	entry := history.NewSimpleEntry(result, h.now())
	if err := h.history.Append(ctx, entry); err != nil {
		return LongResponse{}, fmt.Errorf("append history: %w", err)
	}

	attrs := metric.WithAttributes(attribute.String("operation", "long"))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, result.Quotient, attrs)
	stepsHistogram.Record(ctx, int64(len(result.Steps)), attrs)

	span.AddEvent("division.complete", trace.WithAttributes(
		attribute.Float64("quotient", result.Quotient),
		attribute.Float64("remainder", result.Remainder),
		attribute.Int("steps", len(result.Steps)),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("long division completed",
		zap.Float64("dividend", dividend),
		zap.Float64("divisor", divisor),
		zap.Float64("quotient", result.Quotient),
		zap.Float64("remainder", result.Remainder),
		zap.Int("steps", len(result.Steps)),
		zap.String("history_id", entry.ID),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	return LongResponse{
		Mode:      division.SimpleMode.String(),
		Result:    result,
		Rendering: division.Render(result, opts),
		HistoryID: entry.ID,
	}, nil
}

// chain runs a validated chain division. Each step gets a child span so the
// trace mirrors the chain.
func (h *Handler) chain(ctx context.Context, startNumber float64, divisors []float64, opts division.Options) (ChainResponse, error) {
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	span := trace.SpanFromContext(ctx)

	span.SetAttributes(
		attribute.Float64("chain.start", startNumber),
		attribute.Int("chain.steps_count", len(divisors)),
	)

	start := time.Now()
	result := division.DivideChain(startNumber, divisors)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	for _, step := range result.Steps {
		_, stepSpan := tracer.Start(ctx, fmt.Sprintf("calculator.chain.step.%d", step.Step),
			trace.WithAttributes(
				attribute.Int("chain.step.index", step.Step),
				attribute.Float64("chain.step.dividend", step.Dividend),
				attribute.Float64("chain.step.divisor", step.Divisor),
				attribute.Float64("chain.step.quotient", step.Quotient),
				attribute.Float64("chain.step.remainder", step.Remainder),
			),
		)
		stepSpan.SetStatus(codes.Ok, "")
		stepSpan.End()

		logger.Debug("chain step completed",
			zap.Int("step", step.Step),
			zap.Float64("dividend", step.Dividend),
			zap.Float64("divisor", step.Divisor),
			zap.Float64("quotient", step.Quotient),
			zap.Float64("remainder", step.Remainder),
		)
	}

	entry := history.NewChainEntry(result, h.now())
	if err := h.history.Append(ctx, entry); err != nil {
		return ChainResponse{}, fmt.Errorf("append history: %w", err)
	}

	attrs := metric.WithAttributes(attribute.String("operation", "chain"))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, result.FinalResult, attrs)
	stepsHistogram.Record(ctx, int64(len(result.Steps)), attrs)

	span.AddEvent("chain.complete", trace.WithAttributes(
		attribute.Float64("final_result", result.FinalResult),
		attribute.Int("total_steps", len(result.Steps)),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("chain division completed",
		zap.Float64("start", startNumber),
		zap.Float64s("divisors", divisors),
		zap.Float64("result", result.FinalResult),
		zap.String("history_id", entry.ID),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	return ChainResponse{
		Mode:        division.ChainMode.String(),
		ChainResult: result,
		Rendering:   division.RenderChain(result, opts),
		HistoryID:   entry.ID,
	}, nil
}
