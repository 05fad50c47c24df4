package calculator

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"long-division-api/internal/division"
	"long-division-api/internal/observability"
)

// StreamLong handles POST /calculator/long/stream. It performs a long division
// and writes its steps as NDJSON, one line per step paced by the reveal
// interval, then a summary line. Disconnecting stops the stream; the
// calculation is already recorded by then.
func (h *Handler) StreamLong(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.long.stream")
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

	resp, err := h.long(ctx, dividend, divisor, req.resolve())
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "long", "recording history failed", err, http.StatusInternalServerError, w)
		return
	}

	streamSteps(ctx, span, logger, w, h.interval, resp.Steps,
		func(s *division.Step) any { return StreamEvent{Type: "step", Step: s} },
		StreamEvent{Type: "summary", Summary: &resp},
	)
}

// StreamChain handles POST /calculator/chain/stream. Same pacing as
// StreamLong, one line per chain step.
func (h *Handler) StreamChain(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.chain.stream")
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

	resp, err := h.chain(ctx, start, req.Divisors, req.resolve())
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "chain", "recording history failed", err, http.StatusInternalServerError, w)
		return
	}

	streamSteps(ctx, span, logger, w, h.interval, resp.Steps,
		func(s *division.ChainStep) any { return ChainStreamEvent{Type: "step", Step: s} },
		ChainStreamEvent{Type: "summary", Summary: &resp},
	)
}

// streamSteps writes one NDJSON line per step, step i at i × interval, then
// summary. It returns early when ctx is done.
func streamSteps[S any](ctx context.Context, span trace.Span, logger *zap.Logger, w http.ResponseWriter, interval time.Duration, steps []S, event func(*S) any, summary any) {
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	enc := json.NewEncoder(w)
	emit := func(v any) error {
		if err := enc.Encode(v); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	}

	reveal := division.NewReveal(steps, interval)
	began := time.Now()
	delivered := 0
	for {
		step, at, ok := reveal.Next()
		if !ok {
			break
		}

		if wait := at - time.Since(began); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				logger.Info("step stream cancelled",
					zap.Int("delivered", delivered),
					zap.Int("total", reveal.Len()),
					zap.String("request_id", observability.RequestIDFromContext(ctx)),
				)
				span.AddEvent("stream.cancelled")
				return
			case <-timer.C:
			}
		}

		if err := emit(event(&step)); err != nil {
			logger.Warn("writing step failed", zap.Error(err))
			return
		}
		delivered++
	}

	span.AddEvent("stream.complete", trace.WithAttributes(attribute.Int("steps", reveal.Len())))
	if err := emit(summary); err != nil {
		logger.Warn("writing summary failed", zap.Error(err))
	}
}
