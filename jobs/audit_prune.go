package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/cargodesk/cargodesk/internal/jobs"
	"github.com/cargodesk/cargodesk/internal/platform/db"
)

// DefaultAuditRetainDays is used when a prune task carries no retention.
const DefaultAuditRetainDays = 365

// AuditPruneJob deletes audit entries older than the retention window.
type AuditPruneJob struct {
	DB      db.DBTX
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() time.Time
}

// NewAuditPruneJob wires dependencies for the prune handler.
func NewAuditPruneJob(conn db.DBTX, logger *slog.Logger, metrics *jobmetrics.Metrics) *AuditPruneJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditPruneJob{DB: conn, Logger: logger, Metrics: metrics, clock: time.Now}
}

// Handle processes audit:prune tasks.
func (j *AuditPruneJob) Handle(ctx context.Context, t *asynq.Task) (err error) {
	if j == nil || j.DB == nil {
		return errors.New("audit prune: handler not configured")
	}
	payload := AuditPrunePayload{RetainDays: DefaultAuditRetainDays}
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("audit prune: %v: %w", err, asynq.SkipRetry)
		}
	}
	if payload.RetainDays <= 0 {
		return fmt.Errorf("audit prune: retain days must be positive: %w", asynq.SkipRetry)
	}

	tracker := j.Metrics.Track(TaskAuditPrune)
	defer func() {
		err = tracker.End(err)
	}()

	cutoff := j.clock().AddDate(0, 0, -payload.RetainDays)
	tag, err := j.DB.Exec(ctx, `DELETE FROM audit_logs WHERE occurred_at < $1`, cutoff)
	if err != nil {
		j.Logger.Error("prune audit logs", slog.Any("error", err))
		return err
	}
	j.Logger.Info("pruned audit logs",
		slog.Int64("deleted", tag.RowsAffected()),
		slog.Time("cutoff", cutoff))
	return nil
}
