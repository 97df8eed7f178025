package event

import (
	"concert-ticket-pipeline/common/constant"
	"concert-ticket-pipeline/common/errs"
	"concert-ticket-pipeline/common/otel"
	"context"
	"fmt"
	"github.com/nats-io/nats.go"
	"golang.org/x/sync/errgroup"
	"log/slog"
	"strings"
	"time"
)

// Record is one delivery taken off a subscriber queue.
type Record struct {
	Subject string
	Header  nats.Header
	Data    []byte
}

type HandlerFunc func(ctx context.Context, rec Record) error

type Outcome int

const (
	OutcomeProcessed Outcome = iota
	OutcomeMalformed
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeProcessed:
		return "processed"
	case OutcomeMalformed:
		return "malformed"
	default:
		return "failed"
	}
}

type Result struct {
	Outcome Outcome
	Err     error
}

func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeProcessed
	case errs.IsMalformed(err):
		return OutcomeMalformed
	default:
		return OutcomeFailed
	}
}

// Dispatcher fans a batch of records out to one handler.
type Dispatcher struct {
	Consumer    string
	Handler     HandlerFunc
	Concurrency int
}

// Dispatch runs the handler once per record, up to Concurrency at a time.
// Results line up with records; one record's failure never affects another's.
func (d Dispatcher) Dispatch(ctx context.Context, records []Record) []Result {
	results := make([]Result, len(records))

	var g errgroup.Group
	if d.Concurrency > 0 {
		g.SetLimit(d.Concurrency)
	}

	for i, rec := range records {
		g.Go(func() error {
			results[i] = d.handle(ctx, rec)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (d Dispatcher) handle(ctx context.Context, rec Record) (result Result) {
	ctx = otel.ExtractHeader(ctx, rec.Header)

	defer func() {
		if r := recover(); r != nil {
			result = Result{Outcome: OutcomeFailed, Err: fmt.Errorf("handler panic: %v", r)}
			slog.ErrorContext(ctx, "record handler panicked", slog.String(constant.LogFieldConsumer, d.Consumer), slog.Any(constant.LogFieldErr, result.Err))
		}
	}()

	err := d.Handler(ctx, rec)
	result = Result{Outcome: Classify(err), Err: err}

	switch result.Outcome {
	case OutcomeMalformed:
		slog.WarnContext(ctx, "record skipped, malformed input",
			slog.String(constant.LogFieldConsumer, d.Consumer),
			slog.String(constant.LogFieldSubject, rec.Subject),
			slog.String(constant.LogFieldPayload, string(rec.Data)),
			slog.Any(constant.LogFieldErr, err),
		)
	case OutcomeFailed:
		slog.ErrorContext(ctx, "record failed",
			slog.String(constant.LogFieldConsumer, d.Consumer),
			slog.String(constant.LogFieldSubject, rec.Subject),
			slog.Any(constant.LogFieldErr, err),
		)
	}

	return result
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// headerValue looks a key up exactly first, then case-insensitively, since
// some transports canonicalize header names.
func headerValue(header nats.Header, key string) string {
	if v := header.Get(key); v != "" {
		return v
	}
	for k, values := range header {
		if strings.EqualFold(k, key) && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}
