package advance

import (
	"context"
	"errors"
	"time"

	advanceerrors "github.com/sims96/lesims-hrm-sub000/internal/advance/errors"
	"github.com/sims96/lesims-hrm-sub000/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateAdvanceRequest) (AdvanceResponse, error)
	GetAll(ctx context.Context) ([]AdvanceResponse, error)
	GetByEmployee(ctx context.Context, employeeID string, unpaidOnly bool) ([]AdvanceResponse, error)
	GetByID(ctx context.Context, id string) (AdvanceResponse, error)
	Update(ctx context.Context, id string, req UpdateAdvanceRequest) (AdvanceResponse, error)
	Settle(ctx context.Context, id string) (AdvanceResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("advance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("advance.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateAdvanceRequest) (AdvanceResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return AdvanceResponse{}, advanceerrors.ErrInvalidDate
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AdvanceResponse{}, advanceerrors.ErrInvalidAdvanceID
	}

	adv := &Advance{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Date:       date,
		Amount:     req.Amount,
		Reason:     req.Reason,
		IsPaid:     false,
	}

	if err := s.repo.Create(ctx, adv); err != nil {
		return AdvanceResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*adv), nil
}

func (s *service) GetAll(ctx context.Context) ([]AdvanceResponse, error) {
	advances, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(advances), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string, unpaidOnly bool) ([]AdvanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, advanceerrors.ErrInvalidAdvanceID
	}

	var (
		advances []Advance
		err      error
	)
	if unpaidOnly {
		advances, err = s.repo.FindUnpaidByEmployee(ctx, employeeID)
	} else {
		advances, err = s.repo.FindByEmployee(ctx, employeeID)
	}
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(advances), nil
}

func (s *service) GetByID(ctx context.Context, id string) (AdvanceResponse, error) {
	adv, err := s.findByID(ctx, id)
	if err != nil {
		return AdvanceResponse{}, err
	}

	return mapToResponse(*adv), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateAdvanceRequest) (AdvanceResponse, error) {
	adv, err := s.findByID(ctx, id)
	if err != nil {
		return AdvanceResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return AdvanceResponse{}, advanceerrors.ErrInvalidDate
	}

	adv.Date = date
	adv.Amount = req.Amount
	adv.Reason = req.Reason

	if err := s.repo.Update(ctx, adv); err != nil {
		return AdvanceResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*adv), nil
}

// Settle flips the advance to paid with a timestamp. Settling twice is
// rejected so the paid date is never overwritten.
func (s *service) Settle(ctx context.Context, id string) (AdvanceResponse, error) {
	adv, err := s.findByID(ctx, id)
	if err != nil {
		return AdvanceResponse{}, err
	}

	if adv.IsPaid {
		return AdvanceResponse{}, advanceerrors.ErrAdvanceAlreadySettled
	}

	now := time.Now().UTC()
	adv.IsPaid = true
	adv.PaidDate = &now

	if err := s.repo.Update(ctx, adv); err != nil {
		return AdvanceResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("advance settled",
		zap.String("advance_id", adv.ID.String()),
		zap.String("employee_id", adv.EmployeeID.String()),
		zap.Int64("amount", adv.Amount),
		zap.String("operator", contextutil.GetOperator(ctx)),
	)

	return mapToResponse(*adv), nil
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

func (s *service) findByID(ctx context.Context, id string) (*Advance, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, advanceerrors.ErrInvalidAdvanceID
	}

	adv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return adv, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return advanceerrors.ErrAdvanceNotFound
	}
	return err
}

func mapToResponse(adv Advance) AdvanceResponse {
	resp := AdvanceResponse{
		ID:         adv.ID.String(),
		EmployeeID: adv.EmployeeID.String(),
		Date:       adv.Date.Format("2006-01-02"),
		Amount:     adv.Amount,
		Reason:     adv.Reason,
		IsPaid:     adv.IsPaid,
	}
	if adv.PaidDate != nil {
		v := adv.PaidDate.Format("2006-01-02")
		resp.PaidDate = &v
	}
	return resp
}

func mapToListResponse(advances []Advance) []AdvanceResponse {
	resp := make([]AdvanceResponse, len(advances))
	for i, adv := range advances {
		resp[i] = mapToResponse(adv)
	}
	return resp
}
