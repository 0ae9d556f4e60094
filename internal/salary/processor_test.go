package salary_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sims96/lesims-hrm-sub000/internal/advance"
	"github.com/sims96/lesims-hrm-sub000/internal/debt"
	"github.com/sims96/lesims-hrm-sub000/internal/employee"
	"github.com/sims96/lesims-hrm-sub000/internal/events"
	"github.com/sims96/lesims-hrm-sub000/internal/messaging/kafka"
	"github.com/sims96/lesims-hrm-sub000/internal/salary"
	salaryerrors "github.com/sims96/lesims-hrm-sub000/internal/salary/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSalaryRepository struct {
	mu sync.Mutex

	created []salary.Salary
	deleted []string

	createFn      func(ctx context.Context, sal *salary.Salary) error
	findAllFn     func(ctx context.Context) ([]salary.Salary, error)
	findByMonthFn func(ctx context.Context, year, month int) ([]salary.Salary, error)
	findByIDFn    func(ctx context.Context, id string) (*salary.Salary, error)
	updateFn      func(ctx context.Context, sal *salary.Salary) error
	deleteFn      func(ctx context.Context, id string) error
}

func (f *fakeSalaryRepository) WithTx(tx *sql.Tx) salary.Repository {
	return f
}

func (f *fakeSalaryRepository) Create(ctx context.Context, sal *salary.Salary) error {
	if f.createFn != nil {
		if err := f.createFn(ctx, sal); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, *sal)
	return nil
}

func (f *fakeSalaryRepository) FindAll(ctx context.Context) ([]salary.Salary, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeSalaryRepository) FindByMonth(ctx context.Context, year, month int) ([]salary.Salary, error) {
	if f.findByMonthFn != nil {
		return f.findByMonthFn(ctx, year, month)
	}
	return nil, nil
}

func (f *fakeSalaryRepository) FindByID(ctx context.Context, id string) (*salary.Salary, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeSalaryRepository) Update(ctx context.Context, sal *salary.Salary) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, sal)
	}
	return nil
}

func (f *fakeSalaryRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		if err := f.deleteFn(ctx, id); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeSalaryRepository) createdCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

func (f *fakeSalaryRepository) deletedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.deleted)
}

type fakeEmployeeSource struct {
	findAllFn func(ctx context.Context) ([]employee.Employee, error)
}

func (f *fakeEmployeeSource) FindAll(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

type fakeOutboxRepository struct {
	withTxFn func(tx *sql.Tx) kafka.OutboxRepository
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type recordingProgressSink struct {
	mu      sync.Mutex
	reports []salary.Progress
}

func (s *recordingProgressSink) Report(ctx context.Context, year, month int, p salary.Progress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, p)
}

func (s *recordingProgressSink) all() []salary.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]salary.Progress(nil), s.reports...)
}

type processorDeps struct {
	repo      *fakeSalaryRepository
	employees *fakeEmployeeSource
	outbox    *fakeOutboxRepository
	progress  *recordingProgressSink
	processor *salary.Processor
}

func setupProcessorTest(advances salary.AdvanceSource, sanctions salary.SanctionSource, debts salary.DebtSource) *processorDeps {
	repo := &fakeSalaryRepository{}
	employees := &fakeEmployeeSource{}
	outbox := &fakeOutboxRepository{}
	progress := &recordingProgressSink{}

	calc := salary.NewCalculator(advances, sanctions, debts, zap.NewNop())
	proc := salary.NewProcessor(repo, employees, calc, outbox, progress, zap.NewNop())

	return &processorDeps{
		repo:      repo,
		employees: employees,
		outbox:    outbox,
		progress:  progress,
		processor: proc,
	}
}

func emptySources() (salary.AdvanceSource, salary.SanctionSource, salary.DebtSource) {
	return &fakeAdvanceSource{}, &fakeSanctionSource{}, &fakeDebtSource{}
}

func TestProcessor_RejectsFuturePeriod(t *testing.T) {
	deps := setupProcessorTest(emptySources())
	rosterQueried := false
	deps.employees.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
		rosterQueried = true
		return nil, nil
	}

	_, err := deps.processor.Run(context.Background(), salary.RunPayrollRequest{Year: 2099, Month: 1})

	assert.ErrorIs(t, err, salaryerrors.ErrFuturePeriod)
	assert.False(t, rosterQueried)
	assert.Equal(t, 0, deps.repo.createdCount())
	assert.Equal(t, 0, deps.repo.deletedCount())
}

func TestProcessor_EmptyRoster(t *testing.T) {
	deps := setupProcessorTest(emptySources())
	deps.employees.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
		return []employee.Employee{}, nil
	}

	result, err := deps.processor.Run(context.Background(), salary.RunPayrollRequest{Year: 2024, Month: 1})

	assert.NoError(t, err)
	assert.Equal(t, salary.RunStatusEmptyRoster, result.Status)
	assert.Equal(t, 0, deps.repo.createdCount())
}

func TestProcessor_ExistingRecordsRequireForce(t *testing.T) {
	deps := setupProcessorTest(emptySources())
	deps.employees.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
		return []employee.Employee{{ID: uuid.New(), BaseSalary: 100000}}, nil
	}
	deps.repo.findByMonthFn = func(ctx context.Context, year, month int) ([]salary.Salary, error) {
		return []salary.Salary{{ID: uuid.New()}, {ID: uuid.New()}}, nil
	}

	_, err := deps.processor.Run(context.Background(), salary.RunPayrollRequest{Year: 2024, Month: 1})

	assert.ErrorIs(t, err, salaryerrors.ErrConfirmRequired)
	assert.Equal(t, 0, deps.repo.deletedCount())
	assert.Equal(t, 0, deps.repo.createdCount())
}

func TestProcessor_FullRun(t *testing.T) {
	empA := employee.Employee{ID: uuid.New(), FullName: "A", BaseSalary: 300000}
	empB := employee.Employee{ID: uuid.New(), FullName: "B", BaseSalary: 250000}

	advances := &fakeAdvanceSource{}
	sanctions := &fakeSanctionSource{}
	debts := &fakeDebtSource{}
	deps := setupProcessorTest(advances, sanctions, debts)

	deps.employees.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
		return []employee.Employee{empA, empB}, nil
	}

	var published *kafka.OutboxEvent
	deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
		published = &event
		return nil
	}

	result, err := deps.processor.Run(context.Background(), salary.RunPayrollRequest{Year: 2024, Month: 1})

	assert.NoError(t, err)
	assert.Equal(t, salary.RunStatusCompleted, result.Status)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Deleted)

	assert.Equal(t, 2, deps.repo.createdCount())
	for _, rec := range deps.repo.created {
		assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), rec.PeriodStart)
		assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC).Add(-time.Millisecond), rec.PeriodEnd)
		assert.False(t, rec.IsPaid)
	}

	// Calculation progress must tick once per employee, in order.
	var calcReports []salary.Progress
	for _, p := range deps.progress.all() {
		if p.Phase == salary.PhaseCalculating {
			calcReports = append(calcReports, p)
		}
	}
	assert.Equal(t, []salary.Progress{
		{Phase: salary.PhaseCalculating, Processed: 1, Total: 2},
		{Phase: salary.PhaseCalculating, Processed: 2, Total: 2},
	}, calcReports)

	final := deps.progress.all()[len(deps.progress.all())-1]
	assert.Equal(t, salary.PhaseDone, final.Phase)

	assert.NotNil(t, published)
	assert.Equal(t, events.PayrollRunCompletedTopic, published.Topic)
	var event events.PayrollRunCompletedEvent
	assert.NoError(t, json.Unmarshal(published.Payload, &event))
	assert.Equal(t, result.RunID, event.RunID)
	assert.Equal(t, 2, event.Created)
}

func TestProcessor_ForceRecomputeReplacesRecords(t *testing.T) {
	emp := employee.Employee{ID: uuid.New(), BaseSalary: 200000}
	oldRecord := salary.Salary{ID: uuid.New(), EmployeeID: emp.ID}

	deps := setupProcessorTest(emptySources())
	deps.employees.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
		return []employee.Employee{emp}, nil
	}
	deps.repo.findByMonthFn = func(ctx context.Context, year, month int) ([]salary.Salary, error) {
		return []salary.Salary{oldRecord}, nil
	}

	result, err := deps.processor.Run(context.Background(), salary.RunPayrollRequest{Year: 2024, Month: 1, Force: true})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Deleted)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, []string{oldRecord.ID.String()}, deps.repo.deleted)
	assert.NotEqual(t, oldRecord.ID, deps.repo.created[0].ID)
}

func TestProcessor_RecomputeYieldsSameTotals(t *testing.T) {
	emp := employee.Employee{ID: uuid.New(), BaseSalary: 300000}

	advances := &fakeAdvanceSource{findUnpaidFn: func(ctx context.Context, employeeID string) ([]advance.Advance, error) {
		return []advance.Advance{{ID: uuid.New(), Amount: 20000}}, nil
	}}
	debts := &fakeDebtSource{findUnpaidFn: func(ctx context.Context, employeeID string) ([]debt.Debt, error) {
		return []debt.Debt{{ID: uuid.New(), Amount: 10000}}, nil
	}}
	deps := setupProcessorTest(advances, &fakeSanctionSource{}, debts)
	deps.employees.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
		return []employee.Employee{emp}, nil
	}

	_, err := deps.processor.Run(context.Background(), salary.RunPayrollRequest{Year: 2024, Month: 1})
	assert.NoError(t, err)
	first := deps.repo.created[0]

	// Second run deletes the first record and recreates with equal totals.
	deps.repo.findByMonthFn = func(ctx context.Context, year, month int) ([]salary.Salary, error) {
		return []salary.Salary{first}, nil
	}

	result, err := deps.processor.Run(context.Background(), salary.RunPayrollRequest{Year: 2024, Month: 1, Force: true})
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Deleted)

	second := deps.repo.created[1]
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.BaseSalary, second.BaseSalary)
	assert.Equal(t, first.Advances, second.Advances)
	assert.Equal(t, first.Sanctions, second.Sanctions)
	assert.Equal(t, first.Debts, second.Debts)
	assert.Equal(t, first.NetSalary, second.NetSalary)
}

func TestProcessor_DeleteFailureAborts(t *testing.T) {
	emp := employee.Employee{ID: uuid.New(), BaseSalary: 200000}

	deps := setupProcessorTest(emptySources())
	deps.employees.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
		return []employee.Employee{emp}, nil
	}
	deps.repo.findByMonthFn = func(ctx context.Context, year, month int) ([]salary.Salary, error) {
		return []salary.Salary{{ID: uuid.New()}}, nil
	}
	deps.repo.deleteFn = func(ctx context.Context, id string) error {
		return errors.New("deadlock detected")
	}

	_, err := deps.processor.Run(context.Background(), salary.RunPayrollRequest{Year: 2024, Month: 1, Force: true})

	assert.ErrorIs(t, err, salaryerrors.ErrRunDeleteFailed)
	assert.Equal(t, 0, deps.repo.createdCount())
}

func TestProcessor_SaveFailureKeepsCompletedRecords(t *testing.T) {
	roster := make([]employee.Employee, 12)
	for i := range roster {
		roster[i] = employee.Employee{ID: uuid.New(), BaseSalary: 100000}
	}

	deps := setupProcessorTest(emptySources())
	deps.employees.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
		return roster, nil
	}

	// The first batch of ten saves cleanly; the second batch fails.
	var mu sync.Mutex
	saves := 0
	deps.repo.createFn = func(ctx context.Context, sal *salary.Salary) error {
		mu.Lock()
		defer mu.Unlock()
		saves++
		if saves > 10 {
			return errors.New("disk full")
		}
		return nil
	}

	result, err := deps.processor.Run(context.Background(), salary.RunPayrollRequest{Year: 2024, Month: 1})

	assert.ErrorIs(t, err, salaryerrors.ErrRunSaveFailed)
	assert.Equal(t, 10, result.Created)
	assert.Equal(t, 12, result.Processed)
	assert.Equal(t, 10, deps.repo.createdCount())
}
