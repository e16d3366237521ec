package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/hibiken/asynq"

	"github.com/speedbike/speedbike/internal/notifications"
	"github.com/speedbike/speedbike/internal/payments"
	"github.com/speedbike/speedbike/internal/sales"
)

// SaleLister provides the sales table with derived ledger figures.
type SaleLister interface {
	List(ctx context.Context, q sales.ListQuery) (*sales.ListResult, error)
}

// FeedRecorder appends entries to the notification feed and exposes
// the latest entry per target so repeat scans stay quiet.
type FeedRecorder interface {
	Record(ctx context.Context, action, target, details string)
	LastRecorded(ctx context.Context, action, target string) (string, error)
}

// DueScanJob walks the sales table and records a feed entry for every
// sale carrying overdue installments. A sale is only re-flagged when
// its past-due amount changed since the last recorded entry.
type DueScanJob struct {
	Sales    SaleLister
	Recorder FeedRecorder
	Logger   *slog.Logger
	clock    func() time.Time
}

// NewDueScanJob initialises the overdue scan handler.
func NewDueScanJob(lister SaleLister, recorder FeedRecorder, logger *slog.Logger) *DueScanJob {
	return &DueScanJob{
		Sales:    lister,
		Recorder: recorder,
		Logger:   logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes the overdue scan.
func (j *DueScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("due scan: handler not configured")
	}
	var payload DueScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	asOf := j.clock()
	if payload.AsOf != "" {
		parsed, err := time.Parse("2006-01-02", payload.AsOf)
		if err != nil {
			return asynq.SkipRetry
		}
		asOf = parsed
	}

	j.Logger.Info("starting overdue scan", slog.Time("as_of", asOf))

	result, err := j.Sales.List(ctx, sales.ListQuery{})
	if err != nil {
		j.Logger.Error("overdue scan failed", slog.Any("error", err))
		return err
	}

	flagged := 0
	for _, view := range result.Sales {
		totals := payments.Aggregate(view.Figures(), asOf)
		if totals.PastDue <= 0 {
			continue
		}
		target := "Facture " + view.InvoiceNumber
		details := fmt.Sprintf("Client: %s, %s DA en retard", view.NomPrenom, strconv.FormatFloat(totals.PastDue, 'f', -1, 64))
		last, err := j.Recorder.LastRecorded(ctx, notifications.ActionEcheance, target)
		if err != nil {
			j.Logger.Error("overdue scan lookup failed", slog.String("target", target), slog.Any("error", err))
			return err
		}
		if last == details {
			continue
		}
		flagged++
		j.Recorder.Record(ctx, notifications.ActionEcheance, target, details)
	}

	j.Logger.Info("completed overdue scan",
		slog.Int("sales", len(result.Sales)),
		slog.Int("flagged", flagged),
	)
	return nil
}
