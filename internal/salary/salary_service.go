package salary

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/sims96/lesims-hrm-sub000/internal/events"
	"github.com/sims96/lesims-hrm-sub000/internal/messaging/kafka"
	salaryerrors "github.com/sims96/lesims-hrm-sub000/internal/salary/errors"
	"github.com/sims96/lesims-hrm-sub000/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	GetAll(ctx context.Context) ([]SalaryResponse, error)
	GetByMonth(ctx context.Context, year, month int) ([]SalaryResponse, error)
	GetByID(ctx context.Context, id string) (SalaryResponse, error)
	Update(ctx context.Context, id string, req UpdateSalaryRequest) (SalaryResponse, error)
	MarkAsPaid(ctx context.Context, id string, paymentMethod string) (MarkAsPaidResponse, error)
	Delete(ctx context.Context, id string) error
	RunPayroll(ctx context.Context, req RunPayrollRequest) (*RunPayrollResult, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	outbox    kafka.OutboxRepository
	processor *Processor
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	processor *Processor,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("salary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		outbox:    outbox,
		processor: processor,
		logger:    l,
	}
}

func (s *service) GetAll(ctx context.Context) ([]SalaryResponse, error) {
	salaries, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(salaries), nil
}

func (s *service) GetByMonth(ctx context.Context, year, month int) ([]SalaryResponse, error) {
	salaries, err := s.repo.FindByMonth(ctx, year, month)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(salaries), nil
}

func (s *service) GetByID(ctx context.Context, id string) (SalaryResponse, error) {
	sal, err := s.findByID(ctx, id)
	if err != nil {
		return SalaryResponse{}, err
	}

	return mapToResponse(*sal), nil
}

// Update applies a manual correction on top of the stored record. Only the
// amount and payment fields move; the employee link, the period bounds and
// the Details audit trail stay exactly as the run computed them. The net
// is recomputed from the edited amounts so the record stays coherent.
func (s *service) Update(ctx context.Context, id string, req UpdateSalaryRequest) (SalaryResponse, error) {
	sal, err := s.findByID(ctx, id)
	if err != nil {
		return SalaryResponse{}, err
	}

	if req.PaymentDate != "" {
		paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
		if err != nil {
			return SalaryResponse{}, salaryerrors.ErrInvalidPaymentDate
		}
		sal.PaymentDate = paymentDate
	}

	sal.BaseSalary = *req.BaseSalary
	sal.Advances = *req.Advances
	sal.Sanctions = *req.Sanctions
	sal.Debts = *req.Debts
	sal.NetSalary = sal.BaseSalary - sal.Advances - sal.Sanctions - sal.Debts
	sal.IsPaid = *req.IsPaid
	sal.PaymentMethod = req.PaymentMethod
	sal.Notes = req.Notes

	if err := s.repo.Update(ctx, sal); err != nil {
		return SalaryResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("salary record edited",
		zap.String("salary_id", sal.ID.String()),
		zap.String("employee_id", sal.EmployeeID.String()),
		zap.Int64("net_salary", sal.NetSalary),
		zap.String("operator", contextutil.GetOperator(ctx)),
	)

	return mapToResponse(*sal), nil
}

// MarkAsPaid stamps the record as paid exactly once. A record that is
// already paid is reported back unchanged with AlreadyPaid set, so the
// original paid date survives repeated calls. The paid update and the
// outbox event commit in one transaction.
func (s *service) MarkAsPaid(ctx context.Context, id string, paymentMethod string) (MarkAsPaidResponse, error) {
	sal, err := s.findByID(ctx, id)
	if err != nil {
		return MarkAsPaidResponse{}, err
	}

	if sal.IsPaid {
		return MarkAsPaidResponse{Salary: mapToResponse(*sal), AlreadyPaid: true}, nil
	}

	now := time.Now().UTC()
	sal.IsPaid = true
	sal.PaidDate = &now
	sal.PaymentMethod = paymentMethod
	if sal.PaymentMethod == "" {
		sal.PaymentMethod = "cash"
	}

	operator := contextutil.GetOperator(ctx)
	payload, err := json.Marshal(events.SalaryPaidEvent{
		EventType:     "payroll.salary.paid",
		SalaryID:      sal.ID.String(),
		EmployeeID:    sal.EmployeeID.String(),
		NetSalary:     sal.NetSalary,
		PaymentMethod: sal.PaymentMethod,
		Operator:      operator,
		OccurredAt:    now,
	})
	if err != nil {
		return MarkAsPaidResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return MarkAsPaidResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Update(ctx, sal); err != nil {
		return MarkAsPaidResponse{}, mapRepositoryError(err)
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "salary",
		AggregateID:   sal.ID.String(),
		EventType:     "payroll.salary.paid",
		Topic:         events.SalaryPaidTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		return MarkAsPaidResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return MarkAsPaidResponse{}, err
	}

	s.logger.Info("salary marked as paid",
		zap.String("salary_id", sal.ID.String()),
		zap.String("employee_id", sal.EmployeeID.String()),
		zap.Int64("net_salary", sal.NetSalary),
		zap.String("payment_method", sal.PaymentMethod),
		zap.String("operator", operator),
	)

	return MarkAsPaidResponse{Salary: mapToResponse(*sal)}, nil
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

func (s *service) RunPayroll(ctx context.Context, req RunPayrollRequest) (*RunPayrollResult, error) {
	return s.processor.Run(ctx, req)
}

func (s *service) findByID(ctx context.Context, id string) (*Salary, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, salaryerrors.ErrInvalidSalaryID
	}

	sal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return sal, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salaryerrors.ErrSalaryNotFound
	}
	return err
}

func mapToResponse(sal Salary) SalaryResponse {
	resp := SalaryResponse{
		ID:            sal.ID.String(),
		EmployeeID:    sal.EmployeeID.String(),
		PaymentDate:   sal.PaymentDate.Format("2006-01-02"),
		PeriodStart:   sal.PeriodStart.Format("2006-01-02"),
		PeriodEnd:     sal.PeriodEnd.Format("2006-01-02"),
		BaseSalary:    sal.BaseSalary,
		Advances:      sal.Advances,
		Sanctions:     sal.Sanctions,
		Debts:         sal.Debts,
		NetSalary:     sal.NetSalary,
		IsPaid:        sal.IsPaid,
		PaymentMethod: sal.PaymentMethod,
		Notes:         sal.Notes,
		Details: SalaryDetailsResponse{
			AdvanceIDs:  sal.Details.AdvanceIDs,
			SanctionIDs: sal.Details.SanctionIDs,
			DebtIDs:     sal.Details.DebtIDs,
			CalcError:   sal.Details.CalcError,
		},
	}
	if sal.PaidDate != nil {
		v := sal.PaidDate.Format("2006-01-02")
		resp.PaidDate = &v
	}
	return resp
}

func mapToListResponse(salaries []Salary) []SalaryResponse {
	resp := make([]SalaryResponse, len(salaries))
	for i, sal := range salaries {
		resp[i] = mapToResponse(sal)
	}
	return resp
}
