package salary_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sims96/lesims-hrm-sub000/internal/events"
	"github.com/sims96/lesims-hrm-sub000/internal/messaging/kafka"
	"github.com/sims96/lesims-hrm-sub000/internal/salary"
	salaryerrors "github.com/sims96/lesims-hrm-sub000/internal/salary/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type salaryServiceDeps struct {
	sqlMock sqlmock.Sqlmock
	repo    *fakeSalaryRepository
	outbox  *fakeOutboxRepository
	service salary.Service
	closeFn func() error
}

func setupSalaryServiceTest(t *testing.T) *salaryServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeSalaryRepository{}
	outbox := &fakeOutboxRepository{}
	svc := salary.NewService(db, repo, outbox, nil, zap.NewNop())

	return &salaryServiceDeps{
		sqlMock: sqlMock,
		repo:    repo,
		outbox:  outbox,
		service: svc,
		closeFn: db.Close,
	}
}

func storedSalary() *salary.Salary {
	return &salary.Salary{
		ID:          uuid.New(),
		EmployeeID:  uuid.New(),
		PaymentDate: time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
		PeriodStart: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, time.January, 31, 23, 59, 59, 0, time.UTC),
		BaseSalary:  300000,
		Advances:    20000,
		Sanctions:   5000,
		Debts:       10000,
		NetSalary:   265000,
		Details: salary.SalaryDetails{
			AdvanceIDs:  []string{uuid.New().String()},
			SanctionIDs: []string{uuid.New().String()},
			DebtIDs:     []string{uuid.New().String()},
		},
	}
}

func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestSalaryService_Update_PreservesLinkageAndRecomputesNet(t *testing.T) {
	ctx := context.Background()
	deps := setupSalaryServiceTest(t)
	defer deps.closeFn()

	stored := storedSalary()
	deps.repo.findByIDFn = func(ctx context.Context, id string) (*salary.Salary, error) {
		cp := *stored
		return &cp, nil
	}

	var updated *salary.Salary
	deps.repo.updateFn = func(ctx context.Context, sal *salary.Salary) error {
		updated = sal
		return nil
	}

	resp, err := deps.service.Update(ctx, stored.ID.String(), salary.UpdateSalaryRequest{
		BaseSalary: int64Ptr(320000),
		Advances:   int64Ptr(15000),
		Sanctions:  int64Ptr(0),
		Debts:      int64Ptr(10000),
		IsPaid:     boolPtr(false),
		Notes:      "corrected after review",
	})

	assert.NoError(t, err)
	assert.NotNil(t, updated)
	assert.Equal(t, stored.ID, updated.ID)
	assert.Equal(t, stored.EmployeeID, updated.EmployeeID)
	assert.Equal(t, stored.PeriodStart, updated.PeriodStart)
	assert.Equal(t, stored.PeriodEnd, updated.PeriodEnd)
	assert.Equal(t, stored.Details, updated.Details)

	assert.Equal(t, int64(320000-15000-0-10000), updated.NetSalary)
	assert.Equal(t, int64(295000), resp.NetSalary)
	assert.Equal(t, "corrected after review", resp.Notes)
}

func TestSalaryService_Update_InvalidPaymentDate(t *testing.T) {
	ctx := context.Background()
	deps := setupSalaryServiceTest(t)
	defer deps.closeFn()

	stored := storedSalary()
	deps.repo.findByIDFn = func(ctx context.Context, id string) (*salary.Salary, error) {
		return stored, nil
	}

	_, err := deps.service.Update(ctx, stored.ID.String(), salary.UpdateSalaryRequest{
		BaseSalary:  int64Ptr(300000),
		Advances:    int64Ptr(0),
		Sanctions:   int64Ptr(0),
		Debts:       int64Ptr(0),
		IsPaid:      boolPtr(false),
		PaymentDate: "31-01-2024",
	})

	assert.ErrorIs(t, err, salaryerrors.ErrInvalidPaymentDate)
}

func TestSalaryService_Update_InvalidID(t *testing.T) {
	ctx := context.Background()
	deps := setupSalaryServiceTest(t)
	defer deps.closeFn()

	_, err := deps.service.Update(ctx, "not-a-uuid", salary.UpdateSalaryRequest{
		BaseSalary: int64Ptr(1),
		Advances:   int64Ptr(0),
		Sanctions:  int64Ptr(0),
		Debts:      int64Ptr(0),
		IsPaid:     boolPtr(false),
	})

	assert.ErrorIs(t, err, salaryerrors.ErrInvalidSalaryID)
}

func TestSalaryService_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	deps := setupSalaryServiceTest(t)
	defer deps.closeFn()

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*salary.Salary, error) {
		return nil, gorm.ErrRecordNotFound
	}

	_, err := deps.service.GetByID(ctx, uuid.New().String())

	assert.ErrorIs(t, err, salaryerrors.ErrSalaryNotFound)
}

func TestSalaryService_MarkAsPaid(t *testing.T) {
	ctx := context.Background()
	deps := setupSalaryServiceTest(t)
	defer deps.closeFn()

	stored := storedSalary()
	deps.repo.findByIDFn = func(ctx context.Context, id string) (*salary.Salary, error) {
		cp := *stored
		return &cp, nil
	}

	var updated *salary.Salary
	deps.repo.updateFn = func(ctx context.Context, sal *salary.Salary) error {
		updated = sal
		return nil
	}

	var published *kafka.OutboxEvent
	deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
		published = &event
		return nil
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	resp, err := deps.service.MarkAsPaid(ctx, stored.ID.String(), "")

	assert.NoError(t, err)
	assert.False(t, resp.AlreadyPaid)
	assert.True(t, resp.Salary.IsPaid)
	assert.NotNil(t, resp.Salary.PaidDate)
	assert.Equal(t, "cash", resp.Salary.PaymentMethod)

	assert.NotNil(t, updated)
	assert.True(t, updated.IsPaid)
	assert.NotNil(t, updated.PaidDate)

	assert.NotNil(t, published)
	assert.Equal(t, events.SalaryPaidTopic, published.Topic)
	var event events.SalaryPaidEvent
	assert.NoError(t, json.Unmarshal(published.Payload, &event))
	assert.Equal(t, stored.ID.String(), event.SalaryID)
	assert.Equal(t, int64(265000), event.NetSalary)

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestSalaryService_MarkAsPaid_OutboxFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	deps := setupSalaryServiceTest(t)
	defer deps.closeFn()

	stored := storedSalary()
	deps.repo.findByIDFn = func(ctx context.Context, id string) (*salary.Salary, error) {
		cp := *stored
		return &cp, nil
	}

	updateCalled := false
	deps.repo.updateFn = func(ctx context.Context, sal *salary.Salary) error {
		updateCalled = true
		return nil
	}

	deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
		return errors.New("outbox insert failed")
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectRollback()

	_, err := deps.service.MarkAsPaid(ctx, stored.ID.String(), "cash")

	assert.Error(t, err)
	assert.True(t, updateCalled)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestSalaryService_MarkAsPaid_AlreadyPaid(t *testing.T) {
	ctx := context.Background()
	deps := setupSalaryServiceTest(t)
	defer deps.closeFn()

	paidAt := time.Date(2024, time.February, 1, 10, 0, 0, 0, time.UTC)
	stored := storedSalary()
	stored.IsPaid = true
	stored.PaidDate = &paidAt
	stored.PaymentMethod = "transfer"

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*salary.Salary, error) {
		cp := *stored
		return &cp, nil
	}

	updateCalled := false
	deps.repo.updateFn = func(ctx context.Context, sal *salary.Salary) error {
		updateCalled = true
		return nil
	}

	resp, err := deps.service.MarkAsPaid(ctx, stored.ID.String(), "cash")

	assert.NoError(t, err)
	assert.True(t, resp.AlreadyPaid)
	assert.Equal(t, "2024-02-01", *resp.Salary.PaidDate)
	assert.Equal(t, "transfer", resp.Salary.PaymentMethod)
	assert.False(t, updateCalled)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}
