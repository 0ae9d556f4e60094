package consumer

import (
	"context"
	"encoding/json"

	"github.com/sims96/lesims-hrm-sub000/internal/bootstrap"
	"github.com/sims96/lesims-hrm-sub000/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumePayrollRuns turns payroll run completion events into audit log
// entries. Downstream reporting tooling hangs off the same topic, so the
// consumer commits even on undecodable payloads rather than wedging the
// partition.
func ConsumePayrollRuns(
	ctx context.Context,
	reader *kafkago.Reader,
	auditLogger bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_runs")
	log.Info("payroll run consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll run consumer stopped")
				return
			}
			log.Error("fetch payroll run message failed", zap.Error(err))
			continue
		}

		var event events.PayrollRunCompletedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payroll_run_completed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		auditLogger.Log(ctx, bootstrap.AuditLog{
			Action:   "PAYROLL_RUN_COMPLETED",
			Message:  "Monthly payroll recompute finished",
			Operator: event.Operator,
			Meta: map[string]any{
				"run_id":    event.RunID,
				"year":      event.Year,
				"month":     event.Month,
				"processed": event.Processed,
				"created":   event.Created,
				"deleted":   event.Deleted,
			},
		})

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payroll run message failed", zap.Error(err))
			continue
		}

		log.Info("payroll run audited",
			zap.String("run_id", event.RunID),
			zap.Int("year", event.Year),
			zap.Int("month", event.Month),
		)
	}
}
