package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"dotcalc/internal/engine"
	"dotcalc/internal/handlers"
	"dotcalc/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

const maxBodyBytes = 64 << 10

// Handler serves the calculator session endpoints.
type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// ---------------------------------------------------------------------------
// Session lifecycle
// ---------------------------------------------------------------------------

// CreateSession handles POST /calculator/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger, requestID := h.begin(r, "calculator.session.create", "")
	defer span.End()

	id, state, err := h.store.Create()
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "create", err.Error(), err, statusFor(err), w)
		return
	}

	span.SetAttributes(attribute.String("calculator.session_id", id))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator session created",
		zap.String("session_id", id),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusCreated, StateResponse{SessionID: id, State: state})
}

// GetSession handles GET /calculator/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, span, logger, _ := h.begin(r, "calculator.session.get", id)
	defer span.End()

	state, err := h.store.Do(id, func(*engine.Engine) {})
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "get", err.Error(), err, statusFor(err), w)
		return
	}

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, StateResponse{SessionID: id, State: state})
}

// DeleteSession handles DELETE /calculator/sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, span, logger, requestID := h.begin(r, "calculator.session.delete", id)
	defer span.End()

	if err := h.store.Delete(id); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "delete", err.Error(), err, statusFor(err), w)
		return
	}

	span.SetStatus(codes.Ok, "")
	logger.Info("calculator session deleted",
		zap.String("session_id", id),
		zap.String("request_id", requestID),
	)

	w.WriteHeader(http.StatusNoContent)
}

// ClearHistory handles DELETE /calculator/sessions/{id}/history
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, span, logger, _ := h.begin(r, "calculator.history.clear", id)
	defer span.End()

	state, err := h.store.Do(id, (*engine.Engine).ClearHistory)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "clear_history", err.Error(), err, statusFor(err), w)
		return
	}

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, StateResponse{SessionID: id, State: state})
}

// ---------------------------------------------------------------------------
// Inputs
// ---------------------------------------------------------------------------

// PressKeys handles POST /calculator/sessions/{id}/keys. It applies keyboard
// keys in order, one child span per key. An unknown key stops the batch;
// the keys before it stay applied.
func (h *Handler) PressKeys(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, span, logger, _ := h.begin(r, "calculator.keys", id)
	defer span.End()

	var req KeysRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if len(req.Keys) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", "no keys provided", fmt.Errorf("keys array is empty"), http.StatusBadRequest, w)
		return
	}

	h.applyInputs(ctx, span, logger, w, id, "keys", req.Keys, (*engine.Engine).Press)
}

// ApplyAction handles POST /calculator/sessions/{id}/actions. It runs one named
// button action such as "sqrt" or "m+".
func (h *Handler) ApplyAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, span, logger, _ := h.begin(r, "calculator.action", id)
	defer span.End()

	var req ActionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "action", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if req.Action == "" {
		observability.RecordError(ctx, span, logger, errorCounter, "action", "no action provided", fmt.Errorf("action is empty"), http.StatusBadRequest, w)
		return
	}

	h.applyInputs(ctx, span, logger, w, id, "action", []string{req.Action}, (*engine.Engine).Apply)
}

// applyInputs feeds inputs to the session engine through apply and writes
// the resulting state, or an error naming the first rejected input.
func (h *Handler) applyInputs(ctx context.Context, span trace.Span, logger *zap.Logger, w http.ResponseWriter, id, opName string, inputs []string, apply func(*engine.Engine, string) bool) {
	requestID := observability.RequestIDFromContext(ctx)
	span.SetAttributes(attribute.Int("calculator.inputs_count", len(inputs)))

	start := time.Now()
	rejected := -1

	state, err := h.store.Do(id, func(e *engine.Engine) {
		for i, input := range inputs {
			if !h.applyInput(ctx, logger, e, i, input, apply) {
				rejected = i
				return
			}
		}
	})
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, statusFor(err), w)
		return
	}

	reqHistogram.Record(ctx, elapsed, metric.WithAttributes(attribute.String("operation", opName)))

	if rejected >= 0 {
		err := fmt.Errorf("unknown input %q at position %d", inputs[rejected], rejected)
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.String("calculator.display", state.Display),
		attribute.Bool("calculator.error", state.Error),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator inputs applied",
		zap.String("session_id", id),
		zap.Strings("inputs", inputs),
		zap.String("display", state.Display),
		zap.String("expression", state.Expression),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, StateResponse{SessionID: id, State: state})
}

// applyInput runs a single input under its own child span and reports
// whether the engine recognised it.
func (h *Handler) applyInput(ctx context.Context, logger *zap.Logger, e *engine.Engine, index int, input string, apply func(*engine.Engine, string) bool) bool {
	_, span := tracer.Start(ctx, "calculator.input."+strconv.Itoa(index),
		trace.WithAttributes(
			attribute.Int("calculator.input.index", index),
			attribute.String("calculator.input", input),
			attribute.String("calculator.display.before", e.Display()),
		),
	)
	defer span.End()

	hadFault := e.Fault() != nil
	historyBefore := e.HistoryLen()

	if !apply(e, input) {
		err := fmt.Errorf("unknown input %q", input)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false
	}

	inputCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("input", input)))

	if fault := e.Fault(); fault != nil && !hadFault {
		kind := faultKind(fault)
		faultCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("fault", kind)))
		span.AddEvent("calculator.fault", trace.WithAttributes(
			attribute.String("fault", kind),
			attribute.String("message", fault.Error()),
		))
		logger.Warn("calculator entered error state",
			zap.Int("input_index", index),
			zap.String("input", input),
			zap.Error(fault),
		)
	}

	if entry, ok := e.LastEntry(); ok && e.HistoryLen() > historyBefore {
		if v, err := strconv.ParseFloat(entry.Result, 64); err == nil {
			resultGauge.Record(ctx, v)
		}
		span.AddEvent("calculator.result", trace.WithAttributes(
			attribute.String("expression", entry.Expression),
			attribute.String("result", entry.Result),
		))
	}

	span.SetAttributes(attribute.String("calculator.display.after", e.Display()))
	span.SetStatus(codes.Ok, "")
	return true
}

// begin opens the request span and returns the trace-correlated logger.
func (h *Handler) begin(r *http.Request, spanName, sessionID string) (context.Context, trace.Span, *zap.Logger, string) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	attrs := []attribute.KeyValue{attribute.String("request.id", requestID)}
	if sessionID != "" {
		attrs = append(attrs, attribute.String("calculator.session_id", sessionID))
	}

	ctx, span := tracer.Start(ctx, spanName, trace.WithAttributes(attrs...))
	return ctx, span, logger, requestID
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrTooManySessions):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func faultKind(err error) string {
	if errors.Is(err, engine.ErrDivisionByZero) {
		return "division_by_zero"
	}
	return "domain"
}
