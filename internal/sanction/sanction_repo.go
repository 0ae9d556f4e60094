package sanction

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, sanc *Sanction) error
	FindAll(ctx context.Context) ([]Sanction, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Sanction, error)
	FindByPeriod(ctx context.Context, start, end time.Time) ([]Sanction, error)
	FindByID(ctx context.Context, id string) (*Sanction, error)
	Update(ctx context.Context, sanc *Sanction) error
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

func (r *repository) Create(ctx context.Context, sanc *Sanction) error {
	return r.db.WithContext(ctx).Create(sanc).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Sanction, error) {
	var sanctions []Sanction
	err := r.db.WithContext(ctx).
		Order("date DESC, created_at DESC").
		Find(&sanctions).Error
	return sanctions, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Sanction, error) {
	var sanctions []Sanction
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date ASC").
		Find(&sanctions).Error
	return sanctions, err
}

func (r *repository) FindByPeriod(ctx context.Context, start, end time.Time) ([]Sanction, error) {
	var sanctions []Sanction
	err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", start, end).
		Order("date ASC").
		Find(&sanctions).Error
	return sanctions, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Sanction, error) {
	var sanc Sanction
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&sanc).Error
	if err != nil {
		return nil, err
	}
	return &sanc, nil
}

func (r *repository) Update(ctx context.Context, sanc *Sanction) error {
	return r.db.WithContext(ctx).Save(sanc).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Sanction{}).Error
}
