package convert

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dotcalc/internal/handlers"
	"dotcalc/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("convert")

const maxBodyBytes = 64 << 10

// Handler serves the conversion endpoints.
type Handler struct {
	now func() time.Time
}

// NewHandler returns a handler; now supplies "today" for age calculations.
func NewHandler(now func() time.Time) *Handler {
	return &Handler{now: now}
}

// Units handles POST /convert/units
func (h *Handler) Units(w http.ResponseWriter, r *http.Request) {
	handleConversion(w, r, "units", func(req UnitRequest) (any, error) {
		return ConvertUnit(req.Value, req.From, req.To)
	})
}

// Currency handles POST /convert/currency
func (h *Handler) Currency(w http.ResponseWriter, r *http.Request) {
	handleConversion(w, r, "currency", func(req CurrencyRequest) (any, error) {
		return ConvertCurrency(req.Amount, req.From, req.To)
	})
}

// Age handles POST /convert/age
func (h *Handler) Age(w http.ResponseWriter, r *http.Request) {
	handleConversion(w, r, "age", func(req AgeRequest) (any, error) {
		return AgeOn(req.Year, req.Month, req.Day, h.now())
	})
}

// ListUnits handles GET /convert/units
func (h *Handler) ListUnits(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, Units)
}

// ListCurrencies handles GET /convert/currency
func (h *Handler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, map[string][]string{"currencies": Currencies()})
}

// handleConversion is the shared implementation for conversion endpoints:
// span, body decoding, metrics, trace-correlated logging and the JSON reply.
// Every conversion error is a client error.
func handleConversion[Req any](w http.ResponseWriter, r *http.Request, opName string, compute func(Req) (any, error)) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, fmt.Sprintf("convert.%s", opName),
		trace.WithAttributes(
			attribute.String("convert.kind", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req Req
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	result, err := compute(req)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, http.StatusBadRequest, w)
		return
	}

	conversionCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", opName)))
	span.SetStatus(codes.Ok, "")

	logger.Info("conversion completed",
		zap.String("kind", opName),
		zap.Any("request", req),
		zap.Any("result", result),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, result)
}
