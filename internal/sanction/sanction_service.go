package sanction

import (
	"context"
	"errors"
	"time"

	sanctionerrors "github.com/sims96/lesims-hrm-sub000/internal/sanction/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateSanctionRequest) (SanctionResponse, error)
	GetAll(ctx context.Context) ([]SanctionResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]SanctionResponse, error)
	GetByPeriod(ctx context.Context, start, end string) ([]SanctionResponse, error)
	GetByID(ctx context.Context, id string) (SanctionResponse, error)
	Update(ctx context.Context, id string, req UpdateSanctionRequest) (SanctionResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("sanction.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("sanction.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateSanctionRequest) (SanctionResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return SanctionResponse{}, sanctionerrors.ErrInvalidDate
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return SanctionResponse{}, sanctionerrors.ErrInvalidSanctionID
	}

	sanc := &Sanction{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Date:       date,
		Type:       req.Type,
		Amount:     req.Amount,
		Reason:     req.Reason,
	}

	if err := s.repo.Create(ctx, sanc); err != nil {
		return SanctionResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*sanc), nil
}

func (s *service) GetAll(ctx context.Context) ([]SanctionResponse, error) {
	sanctions, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(sanctions), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]SanctionResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, sanctionerrors.ErrInvalidSanctionID
	}

	sanctions, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(sanctions), nil
}

// GetByPeriod lists sanctions dated inside [start, end], both inclusive,
// the same window a payroll run uses when it sums them.
func (s *service) GetByPeriod(ctx context.Context, startStr, endStr string) ([]SanctionResponse, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return nil, sanctionerrors.ErrInvalidDate
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return nil, sanctionerrors.ErrInvalidDate
	}
	if end.Before(start) {
		return nil, sanctionerrors.ErrInvalidDate
	}

	sanctions, err := s.repo.FindByPeriod(ctx, start, end)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(sanctions), nil
}

func (s *service) GetByID(ctx context.Context, id string) (SanctionResponse, error) {
	sanc, err := s.findByID(ctx, id)
	if err != nil {
		return SanctionResponse{}, err
	}

	return mapToResponse(*sanc), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateSanctionRequest) (SanctionResponse, error) {
	sanc, err := s.findByID(ctx, id)
	if err != nil {
		return SanctionResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return SanctionResponse{}, sanctionerrors.ErrInvalidDate
	}

	sanc.Date = date
	sanc.Type = req.Type
	sanc.Amount = req.Amount
	sanc.Reason = req.Reason

	if err := s.repo.Update(ctx, sanc); err != nil {
		return SanctionResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*sanc), nil
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

func (s *service) findByID(ctx context.Context, id string) (*Sanction, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, sanctionerrors.ErrInvalidSanctionID
	}

	sanc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return sanc, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sanctionerrors.ErrSanctionNotFound
	}
	return err
}

func mapToResponse(sanc Sanction) SanctionResponse {
	return SanctionResponse{
		ID:         sanc.ID.String(),
		EmployeeID: sanc.EmployeeID.String(),
		Date:       sanc.Date.Format("2006-01-02"),
		Type:       sanc.Type,
		Amount:     sanc.Amount,
		Reason:     sanc.Reason,
	}
}

func mapToListResponse(sanctions []Sanction) []SanctionResponse {
	resp := make([]SanctionResponse, len(sanctions))
	for i, sanc := range sanctions {
		resp[i] = mapToResponse(sanc)
	}
	return resp
}
