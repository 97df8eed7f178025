package http

import (
	"concert-ticket-pipeline/common"
	"concert-ticket-pipeline/common/constant"
	"concert-ticket-pipeline/common/errs"
	"concert-ticket-pipeline/common/jetstream"
	"concert-ticket-pipeline/common/otel"
	"concert-ticket-pipeline/model"
	"context"
	"encoding/json"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

type PurchaseHttp struct {
	Publisher jetstream.Publisher
	Validate  *validator.Validate
	Subject   string

	TimeNow    func() time.Time
	NewOrderID func() string
}

func NewPurchaseHttp(publisher jetstream.Publisher, validate *validator.Validate, subject string) *PurchaseHttp {
	return &PurchaseHttp{
		Publisher:  publisher,
		Validate:   validate,
		Subject:    subject,
		TimeNow:    time.Now,
		NewOrderID: uuid.NewString,
	}
}

func RegisterPurchaseHttp(mux *http.ServeMux, publisher jetstream.Publisher, validate *validator.Validate, subject string) *PurchaseHttp {
	in := NewPurchaseHttp(publisher, validate, subject)

	mux.HandleFunc("POST /api/purchases", in.create)

	return in
}

func (in PurchaseHttp) create(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to read purchase request", slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	resp, err := in.Purchase(r.Context(), payload)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, resp)
}

// Invoke runs a purchase for callers outside HTTP and renders the outcome
// the way the HTTP endpoint would.
func (in PurchaseHttp) Invoke(ctx context.Context, payload []byte) model.InvokeResponse {
	resp, err := in.Purchase(ctx, payload)
	if err != nil {
		return invokeResponse(http.StatusInternalServerError, model.ErrorResponse{Error: constant.InternalErrorMessage})
	}

	return invokeResponse(http.StatusOK, resp)
}

// Purchase turns a request payload into an order and publishes it. Every
// failure is reported as an internal error, nothing is retried here.
func (in PurchaseHttp) Purchase(ctx context.Context, payload []byte) (model.PurchaseResponse, error) {
	ctx, span := otel.Tracer.Start(ctx, "PurchaseHttp.Purchase")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	req, err := decodePurchaseRequest(payload)
	if err != nil {
		slog.ErrorContext(ctx, "failed to decode purchase request", traceIdAttr, slog.String(constant.LogFieldPayload, string(payload)), slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		return model.PurchaseResponse{}, err
	}

	if err := in.Validate.Struct(req); err != nil {
		err = errs.Malformed("tickets", err)
		slog.ErrorContext(ctx, "invalid purchase request", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		return model.PurchaseResponse{}, err
	}

	order := model.NewOrder(req, in.NewOrderID(), in.TimeNow())
	orderIdAttr := slog.String(constant.LogFieldOrderId, order.OrderID)

	slog.InfoContext(ctx, "purchase receive request", orderIdAttr, slog.Int("tickets", len(order.Tickets)), traceIdAttr)

	header := nats.Header{}
	header.Set(constant.HeaderHasFanClubMember, strconv.FormatBool(order.HasFanClubMember()))

	if err := common.PublishMessage(ctx, in.Publisher, in.Subject, order, header); err != nil {
		common.UtilSpanError(span, err)
		return model.PurchaseResponse{}, errs.Dependency("publish order", err)
	}

	resp := model.PurchaseResponse{Message: constant.PurchaseSuccessMessage, OrderID: order.OrderID}
	slog.InfoContext(ctx, "purchase success", orderIdAttr, slog.Any(constant.LogFieldResponse, resp), traceIdAttr)

	return resp, nil
}

// decodePurchaseRequest accepts the request at the top level or as a JSON
// string under "body".
func decodePurchaseRequest(payload []byte) (model.PurchaseRequest, error) {
	var envelope model.PurchaseEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return model.PurchaseRequest{}, errs.Malformed("", err)
	}

	raw := payload
	if envelope.Body != nil {
		raw = []byte(*envelope.Body)
	}

	var req model.PurchaseRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return model.PurchaseRequest{}, errs.Malformed("body", err)
	}

	return req, nil
}

func invokeResponse(statusCode int, body any) model.InvokeResponse {
	data, err := json.Marshal(body)
	if err != nil {
		return model.InvokeResponse{StatusCode: http.StatusInternalServerError, Body: `{"error":"` + constant.InternalErrorMessage + `"}`}
	}

	return model.InvokeResponse{StatusCode: statusCode, Body: string(data)}
}
