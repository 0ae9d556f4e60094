package salary

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, sal *Salary) error
	FindAll(ctx context.Context) ([]Salary, error)
	FindByMonth(ctx context.Context, year, month int) ([]Salary, error)
	FindByID(ctx context.Context, id string) (*Salary, error)
	Update(ctx context.Context, sal *Salary) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, sal *Salary) error {
	return r.db.WithContext(ctx).Create(sal).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Salary, error) {
	var salaries []Salary
	err := r.db.WithContext(ctx).
		Order("period_start DESC, created_at DESC").
		Find(&salaries).Error
	return salaries, err
}

// FindByMonth returns every salary whose period starts inside the given
// calendar month. Period starts are always the first of the month, so this
// is the "one record per employee per period" view.
func (r *repository) FindByMonth(ctx context.Context, year, month int) ([]Salary, error) {
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var salaries []Salary
	err := r.db.WithContext(ctx).
		Where("period_start >= ? AND period_start < ?", monthStart, monthEnd).
		Order("created_at ASC").
		Find(&salaries).Error
	return salaries, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Salary, error) {
	var sal Salary
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&sal).Error
	if err != nil {
		return nil, err
	}
	return &sal, nil
}

func (r *repository) Update(ctx context.Context, sal *Salary) error {
	if r.tx != nil {
		return r.updateInTx(ctx, sal)
	}
	return r.db.WithContext(ctx).Save(sal).Error
}

// updateInTx writes through the enlisted transaction. A gorm session cannot
// ride an external *sql.Tx, so this path speaks SQL directly, the same way
// the outbox repository does. Without it a paid stamp would commit on its
// own even when the outbox insert next to it fails.
func (r *repository) updateInTx(ctx context.Context, sal *Salary) error {
	details, err := json.Marshal(sal.Details)
	if err != nil {
		return err
	}

	query := `
UPDATE salaries
SET
	payment_date = $2, period_start = $3, period_end = $4,
	base_salary = $5, advances = $6, sanctions = $7, debts = $8, net_salary = $9,
	is_paid = $10, paid_date = $11, payment_method = $12, notes = $13,
	details = $14, updated_at = NOW()
WHERE id = $1
`
	_, err = r.tx.ExecContext(ctx, query,
		sal.ID, sal.PaymentDate, sal.PeriodStart, sal.PeriodEnd,
		sal.BaseSalary, sal.Advances, sal.Sanctions, sal.Debts, sal.NetSalary,
		sal.IsPaid, sal.PaidDate, sal.PaymentMethod, sal.Notes,
		details,
	)
	return err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Salary{}).Error
}
