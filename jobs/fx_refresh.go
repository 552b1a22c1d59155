package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/cargodesk/cargodesk/internal/exchangerate"
	jobmetrics "github.com/cargodesk/cargodesk/internal/jobs"
)

// RateRefresher is satisfied by *exchangerate.Service.
type RateRefresher interface {
	Base() string
	Refresh(ctx context.Context) (exchangerate.Rates, error)
}

// FXRefreshJob keeps the exchange-rate cache warm.
type FXRefreshJob struct {
	Rates   RateRefresher
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewFXRefreshJob wires dependencies for the refresh handler.
func NewFXRefreshJob(rates RateRefresher, logger *slog.Logger, metrics *jobmetrics.Metrics) *FXRefreshJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &FXRefreshJob{Rates: rates, Logger: logger, Metrics: metrics}
}

// Handle processes fx:refresh tasks. A demo fallback counts as a failure so
// asynq retries it.
func (j *FXRefreshJob) Handle(ctx context.Context, t *asynq.Task) (err error) {
	if j == nil || j.Rates == nil {
		return errors.New("fx refresh: handler not configured")
	}
	var payload FXRefreshPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("fx refresh: %v: %w", err, asynq.SkipRetry)
		}
	}
	if payload.Base != "" && payload.Base != j.Rates.Base() {
		j.Logger.Warn("fx refresh for foreign base skipped", slog.String("base", payload.Base), slog.String("configured", j.Rates.Base()))
		return nil
	}

	tracker := j.Metrics.Track(TaskFXRefresh)
	defer func() {
		err = tracker.End(err)
	}()

	rates, err := j.Rates.Refresh(ctx)
	if err != nil {
		j.Logger.Warn("fx refresh", slog.String("base", j.Rates.Base()), slog.Any("error", err))
		return err
	}
	j.Logger.Info("fx rates refreshed",
		slog.String("base", rates.Base),
		slog.String("date", rates.Date),
		slog.Int("currencies", len(rates.Rates)))
	return nil
}
