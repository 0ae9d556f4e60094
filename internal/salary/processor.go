package salary

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/sims96/lesims-hrm-sub000/internal/employee"
	"github.com/sims96/lesims-hrm-sub000/internal/events"
	"github.com/sims96/lesims-hrm-sub000/internal/messaging/kafka"
	salaryerrors "github.com/sims96/lesims-hrm-sub000/internal/salary/errors"
	"github.com/sims96/lesims-hrm-sub000/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	runBatchSize    = 10
	interBatchDelay = 100 * time.Millisecond
)

type EmployeeSource interface {
	FindAll(ctx context.Context) ([]employee.Employee, error)
}

// Processor recomputes a full calendar month of salaries. A run is
// destructive: existing records for the period are deleted first, then one
// fresh record per active employee is computed and saved.
//
// Work is paced in batches of runBatchSize with a short pause between save
// batches so a roster-wide run does not hammer the database. Batches that
// complete before a later batch fails are kept.
type Processor struct {
	salaries  Repository
	employees EmployeeSource
	calc      *Calculator
	outbox    kafka.OutboxRepository
	progress  ProgressSink
	logger    *zap.Logger
}

func NewProcessor(
	salaries Repository,
	employees EmployeeSource,
	calc *Calculator,
	outbox kafka.OutboxRepository,
	progress ProgressSink,
	logger ...*zap.Logger,
) *Processor {
	l := zap.L().Named("salary.processor")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.processor")
	}
	return &Processor{
		salaries:  salaries,
		employees: employees,
		calc:      calc,
		outbox:    outbox,
		progress:  progress,
		logger:    l,
	}
}

// periodBounds returns the first and last instant of the calendar month.
func periodBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}

// Run executes one payroll run for the requested period.
//
// Guard order matters: the future-period check and the confirmation gate
// both fire before anything is deleted, so a rejected run leaves the period
// untouched.
func (p *Processor) Run(ctx context.Context, req RunPayrollRequest) (*RunPayrollResult, error) {
	operator := contextutil.GetOperator(ctx)
	logger := p.logger.With(
		zap.Int("year", req.Year),
		zap.Int("month", req.Month),
		zap.String("operator", operator),
	)

	periodStart, periodEnd := periodBounds(req.Year, req.Month)

	now := time.Now().UTC()
	currentMonthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if periodStart.After(currentMonthStart) {
		return nil, salaryerrors.ErrFuturePeriod
	}

	roster, err := p.employees.FindAll(ctx)
	if err != nil {
		logger.Error("load roster failed", zap.Error(err))
		return nil, err
	}
	if len(roster) == 0 {
		logger.Warn("payroll run skipped, no employees on roster")
		return &RunPayrollResult{Status: RunStatusEmptyRoster}, nil
	}

	existing, err := p.salaries.FindByMonth(ctx, req.Year, req.Month)
	if err != nil {
		logger.Error("load existing period records failed", zap.Error(err))
		return nil, err
	}
	if len(existing) > 0 && !req.Force {
		return nil, salaryerrors.ErrConfirmRequired.WithDetails(map[string]any{
			"year":             req.Year,
			"month":            req.Month,
			"existing_records": len(existing),
		})
	}

	runID := uuid.New().String()
	logger = logger.With(zap.String("run_id", runID))
	logger.Info("payroll run started",
		zap.Int("roster_size", len(roster)),
		zap.Int("existing_records", len(existing)),
	)

	deleted, err := p.deleteExisting(ctx, req, existing)
	if err != nil {
		logger.Error("payroll run aborted during delete phase",
			zap.Int("deleted", deleted), zap.Error(err))
		return nil, salaryerrors.ErrRunDeleteFailed
	}

	drafts := p.computeDrafts(ctx, req, roster, periodStart, periodEnd)

	created, err := p.saveDrafts(ctx, req, drafts)
	result := &RunPayrollResult{
		RunID:     runID,
		Status:    RunStatusCompleted,
		Total:     len(roster),
		Processed: len(drafts),
		Created:   created,
		Deleted:   deleted,
	}
	if err != nil {
		logger.Error("payroll run aborted during save phase",
			zap.Int("created", created), zap.Error(err))
		return result, salaryerrors.ErrRunSaveFailed
	}

	p.progress.Report(ctx, req.Year, req.Month, Progress{
		Phase:     PhaseDone,
		Processed: len(drafts),
		Total:     len(roster),
	})

	if err := p.enqueueCompletedEvent(ctx, runID, req, operator, result); err != nil {
		// The run itself succeeded, only the audit event is lost.
		logger.Warn("enqueue payroll run event failed", zap.Error(err))
	}

	logger.Info("payroll run completed",
		zap.Int("created", created),
		zap.Int("deleted", deleted),
	)
	return result, nil
}

// deleteExisting clears the period's old records, runBatchSize at a time
// with concurrent deletes inside each batch. It returns how many rows were
// removed before the first failure, if any.
func (p *Processor) deleteExisting(ctx context.Context, req RunPayrollRequest, existing []Salary) (int, error) {
	deleted := 0
	for start := 0; start < len(existing); start += runBatchSize {
		end := start + runBatchSize
		if end > len(existing) {
			end = len(existing)
		}
		batch := existing[start:end]

		var (
			wg   sync.WaitGroup
			errs = make([]error, len(batch))
		)
		for i, rec := range batch {
			wg.Add(1)
			go func(i int, id string) {
				defer wg.Done()
				errs[i] = p.salaries.Delete(ctx, id)
			}(i, rec.ID.String())
		}
		wg.Wait()

		for _, err := range errs {
			if err == nil {
				deleted++
			}
		}
		if err := errors.Join(errs...); err != nil {
			return deleted, err
		}

		p.progress.Report(ctx, req.Year, req.Month, Progress{
			Phase:     PhaseDeleting,
			Processed: deleted,
			Total:     len(existing),
		})
	}
	return deleted, nil
}

// computeDrafts walks the roster strictly in order. The calculator never
// fails, so every employee yields a draft.
func (p *Processor) computeDrafts(
	ctx context.Context,
	req RunPayrollRequest,
	roster []employee.Employee,
	periodStart, periodEnd time.Time,
) []Salary {
	drafts := make([]Salary, 0, len(roster))
	for _, emp := range roster {
		drafts = append(drafts, p.calc.Calculate(ctx, emp, periodStart, periodEnd))
		p.progress.Report(ctx, req.Year, req.Month, Progress{
			Phase:     PhaseCalculating,
			Processed: len(drafts),
			Total:     len(roster),
		})
	}
	return drafts
}

// saveDrafts persists the drafts in batches, pausing between batches. A
// failed batch aborts the remaining ones; records already saved stand.
func (p *Processor) saveDrafts(ctx context.Context, req RunPayrollRequest, drafts []Salary) (int, error) {
	created := 0
	for start := 0; start < len(drafts); start += runBatchSize {
		if start > 0 {
			select {
			case <-time.After(interBatchDelay):
			case <-ctx.Done():
				return created, ctx.Err()
			}
		}

		end := start + runBatchSize
		if end > len(drafts) {
			end = len(drafts)
		}
		batch := drafts[start:end]

		var (
			wg   sync.WaitGroup
			errs = make([]error, len(batch))
		)
		for i := range batch {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = p.salaries.Create(ctx, &batch[i])
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			if err == nil {
				created++
			}
		}
		if err := errors.Join(errs...); err != nil {
			return created, err
		}

		p.progress.Report(ctx, req.Year, req.Month, Progress{
			Phase:     PhaseSaving,
			Processed: created,
			Total:     len(drafts),
		})
	}
	return created, nil
}

func (p *Processor) enqueueCompletedEvent(
	ctx context.Context,
	runID string,
	req RunPayrollRequest,
	operator string,
	result *RunPayrollResult,
) error {
	payload, err := json.Marshal(events.PayrollRunCompletedEvent{
		EventType:  "payroll.run.completed",
		RunID:      runID,
		Year:       req.Year,
		Month:      req.Month,
		Operator:   operator,
		Processed:  result.Processed,
		Created:    result.Created,
		Deleted:    result.Deleted,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return p.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll_run",
		AggregateID:   runID,
		EventType:     "payroll.run.completed",
		Topic:         events.PayrollRunCompletedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}
