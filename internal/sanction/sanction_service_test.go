package sanction_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/sims96/lesims-hrm-sub000/internal/sanction"
	sanctionerrors "github.com/sims96/lesims-hrm-sub000/internal/sanction/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeSanctionRepository struct {
	createFn         func(ctx context.Context, sanc *sanction.Sanction) error
	findAllFn        func(ctx context.Context) ([]sanction.Sanction, error)
	findByEmployeeFn func(ctx context.Context, employeeID string) ([]sanction.Sanction, error)
	findByPeriodFn   func(ctx context.Context, start, end time.Time) ([]sanction.Sanction, error)
	findByIDFn       func(ctx context.Context, id string) (*sanction.Sanction, error)
	updateFn         func(ctx context.Context, sanc *sanction.Sanction) error
	deleteFn         func(ctx context.Context, id string) error
}

func (f *fakeSanctionRepository) WithTx(tx *sql.Tx) sanction.Repository { return f }

func (f *fakeSanctionRepository) Create(ctx context.Context, sanc *sanction.Sanction) error {
	if f.createFn != nil {
		return f.createFn(ctx, sanc)
	}
	return nil
}

func (f *fakeSanctionRepository) FindAll(ctx context.Context) ([]sanction.Sanction, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeSanctionRepository) FindByEmployee(ctx context.Context, employeeID string) ([]sanction.Sanction, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeSanctionRepository) FindByPeriod(ctx context.Context, start, end time.Time) ([]sanction.Sanction, error) {
	if f.findByPeriodFn != nil {
		return f.findByPeriodFn(ctx, start, end)
	}
	return nil, nil
}

func (f *fakeSanctionRepository) FindByID(ctx context.Context, id string) (*sanction.Sanction, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSanctionRepository) Update(ctx context.Context, sanc *sanction.Sanction) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, sanc)
	}
	return nil
}

func (f *fakeSanctionRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func TestSanctionService_GetByPeriod_PassesParsedBounds(t *testing.T) {
	stored := sanction.Sanction{
		ID:         uuid.New(),
		EmployeeID: uuid.New(),
		Date:       time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		Type:       "late",
		Amount:     5000,
	}

	var gotStart, gotEnd time.Time
	repo := &fakeSanctionRepository{
		findByPeriodFn: func(ctx context.Context, start, end time.Time) ([]sanction.Sanction, error) {
			gotStart = start
			gotEnd = end
			return []sanction.Sanction{stored}, nil
		},
	}
	svc := sanction.NewService(repo, zap.NewNop())

	resp, err := svc.GetByPeriod(context.Background(), "2024-01-01", "2024-01-31")

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), gotStart)
	assert.Equal(t, time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC), gotEnd)
	if assert.Len(t, resp, 1) {
		assert.Equal(t, stored.ID.String(), resp[0].ID)
		assert.Equal(t, "2024-01-15", resp[0].Date)
	}
}

func TestSanctionService_GetByPeriod_InvalidDate(t *testing.T) {
	svc := sanction.NewService(&fakeSanctionRepository{}, zap.NewNop())

	_, err := svc.GetByPeriod(context.Background(), "01/01/2024", "2024-01-31")

	assert.ErrorIs(t, err, sanctionerrors.ErrInvalidDate)
}

func TestSanctionService_GetByPeriod_EndBeforeStart(t *testing.T) {
	called := false
	repo := &fakeSanctionRepository{
		findByPeriodFn: func(ctx context.Context, start, end time.Time) ([]sanction.Sanction, error) {
			called = true
			return nil, nil
		},
	}
	svc := sanction.NewService(repo, zap.NewNop())

	_, err := svc.GetByPeriod(context.Background(), "2024-02-01", "2024-01-01")

	assert.ErrorIs(t, err, sanctionerrors.ErrInvalidDate)
	assert.False(t, called)
}
