package advance

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, adv *Advance) error
	FindAll(ctx context.Context) ([]Advance, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Advance, error)
	FindUnpaidByEmployee(ctx context.Context, employeeID string) ([]Advance, error)
	FindByID(ctx context.Context, id string) (*Advance, error)
	Update(ctx context.Context, adv *Advance) error
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

func (r *repository) Create(ctx context.Context, adv *Advance) error {
	return r.db.WithContext(ctx).Create(adv).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Advance, error) {
	var advances []Advance
	err := r.db.WithContext(ctx).
		Order("date DESC, created_at DESC").
		Find(&advances).Error
	return advances, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Advance, error) {
	var advances []Advance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date DESC").
		Find(&advances).Error
	return advances, err
}

func (r *repository) FindUnpaidByEmployee(ctx context.Context, employeeID string) ([]Advance, error) {
	var advances []Advance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND is_paid = false", employeeID).
		Order("date ASC").
		Find(&advances).Error
	return advances, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Advance, error) {
	var adv Advance
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&adv).Error
	if err != nil {
		return nil, err
	}
	return &adv, nil
}

func (r *repository) Update(ctx context.Context, adv *Advance) error {
	return r.db.WithContext(ctx).Save(adv).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Advance{}).Error
}
