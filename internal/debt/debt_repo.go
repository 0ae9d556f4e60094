package debt

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *Debt) error
	FindAll(ctx context.Context) ([]Debt, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Debt, error)
	FindUnpaidByEmployee(ctx context.Context, employeeID string) ([]Debt, error)
	FindByID(ctx context.Context, id string) (*Debt, error)
	Update(ctx context.Context, d *Debt) error
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

func (r *repository) Create(ctx context.Context, d *Debt) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Debt, error) {
	var debts []Debt
	err := r.db.WithContext(ctx).
		Order("date DESC, created_at DESC").
		Find(&debts).Error
	return debts, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Debt, error) {
	var debts []Debt
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date DESC").
		Find(&debts).Error
	return debts, err
}

func (r *repository) FindUnpaidByEmployee(ctx context.Context, employeeID string) ([]Debt, error) {
	var debts []Debt
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND is_paid = false", employeeID).
		Order("date ASC").
		Find(&debts).Error
	return debts, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Debt, error) {
	var d Debt
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) Update(ctx context.Context, d *Debt) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Debt{}).Error
}
