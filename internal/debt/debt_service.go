package debt

import (
	"context"
	"errors"
	"time"

	debterrors "github.com/sims96/lesims-hrm-sub000/internal/debt/errors"
	"github.com/sims96/lesims-hrm-sub000/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateDebtRequest) (DebtResponse, error)
	GetAll(ctx context.Context) ([]DebtResponse, error)
	GetByEmployee(ctx context.Context, employeeID string, unpaidOnly bool) ([]DebtResponse, error)
	GetByID(ctx context.Context, id string) (DebtResponse, error)
	Update(ctx context.Context, id string, req UpdateDebtRequest) (DebtResponse, error)
	Settle(ctx context.Context, id string) (DebtResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("debt.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("debt.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDebtRequest) (DebtResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return DebtResponse{}, debterrors.ErrInvalidDate
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return DebtResponse{}, debterrors.ErrInvalidDebtID
	}

	d := &Debt{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		ClientName:  req.ClientName,
		Date:        date,
		Amount:      req.Amount,
		Description: req.Description,
		IsPaid:      false,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return DebtResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*d), nil
}

func (s *service) GetAll(ctx context.Context) ([]DebtResponse, error) {
	debts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(debts), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string, unpaidOnly bool) ([]DebtResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, debterrors.ErrInvalidDebtID
	}

	var (
		debts []Debt
		err   error
	)
	if unpaidOnly {
		debts, err = s.repo.FindUnpaidByEmployee(ctx, employeeID)
	} else {
		debts, err = s.repo.FindByEmployee(ctx, employeeID)
	}
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(debts), nil
}

func (s *service) GetByID(ctx context.Context, id string) (DebtResponse, error) {
	d, err := s.findByID(ctx, id)
	if err != nil {
		return DebtResponse{}, err
	}

	return mapToResponse(*d), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDebtRequest) (DebtResponse, error) {
	d, err := s.findByID(ctx, id)
	if err != nil {
		return DebtResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return DebtResponse{}, debterrors.ErrInvalidDate
	}

	d.ClientName = req.ClientName
	d.Date = date
	d.Amount = req.Amount
	d.Description = req.Description

	if err := s.repo.Update(ctx, d); err != nil {
		return DebtResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*d), nil
}

func (s *service) Settle(ctx context.Context, id string) (DebtResponse, error) {
	d, err := s.findByID(ctx, id)
	if err != nil {
		return DebtResponse{}, err
	}

	if d.IsPaid {
		return DebtResponse{}, debterrors.ErrDebtAlreadySettled
	}

	now := time.Now().UTC()
	d.IsPaid = true
	d.PaidDate = &now

	if err := s.repo.Update(ctx, d); err != nil {
		return DebtResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("debt settled",
		zap.String("debt_id", d.ID.String()),
		zap.String("employee_id", d.EmployeeID.String()),
		zap.String("client_name", d.ClientName),
		zap.Int64("amount", d.Amount),
		zap.String("operator", contextutil.GetOperator(ctx)),
	)

	return mapToResponse(*d), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.findByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	return nil
}

func (s *service) findByID(ctx context.Context, id string) (*Debt, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, debterrors.ErrInvalidDebtID
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return d, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return debterrors.ErrDebtNotFound
	}
	return err
}

func mapToResponse(d Debt) DebtResponse {
	resp := DebtResponse{
		ID:          d.ID.String(),
		EmployeeID:  d.EmployeeID.String(),
		ClientName:  d.ClientName,
		Date:        d.Date.Format("2006-01-02"),
		Amount:      d.Amount,
		Description: d.Description,
		IsPaid:      d.IsPaid,
	}
	if d.PaidDate != nil {
		v := d.PaidDate.Format("2006-01-02")
		resp.PaidDate = &v
	}
	return resp
}

func mapToListResponse(debts []Debt) []DebtResponse {
	resp := make([]DebtResponse, len(debts))
	for i, d := range debts {
		resp[i] = mapToResponse(d)
	}
	return resp
}
