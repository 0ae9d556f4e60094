package salary

import (
	"context"
	"sync"
	"time"

	"github.com/sims96/lesims-hrm-sub000/internal/advance"
	"github.com/sims96/lesims-hrm-sub000/internal/debt"
	"github.com/sims96/lesims-hrm-sub000/internal/employee"
	"github.com/sims96/lesims-hrm-sub000/internal/sanction"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Narrow read interfaces over the transaction stores. The concrete
// repositories satisfy them; tests swap in fakes.
type AdvanceSource interface {
	FindUnpaidByEmployee(ctx context.Context, employeeID string) ([]advance.Advance, error)
}

type SanctionSource interface {
	FindByEmployee(ctx context.Context, employeeID string) ([]sanction.Sanction, error)
}

type DebtSource interface {
	FindUnpaidByEmployee(ctx context.Context, employeeID string) ([]debt.Debt, error)
}

const calcErrAllFetchesFailed = "all transaction fetches failed; record holds base salary only"

// Calculator turns one employee and one period into a salary draft.
//
// Deduction rules:
//   - unpaid advances and unpaid debts count in full, whatever their date,
//     since an advance is owed until it is repaid;
//   - sanctions count only when dated inside [periodStart, periodEnd],
//     because a sanction belongs to the payroll period it happened in.
//
// A failed sub-fetch degrades to an empty category rather than failing the
// employee: one flaky read must never sink a whole roster run.
type Calculator struct {
	advances  AdvanceSource
	sanctions SanctionSource
	debts     DebtSource
	logger    *zap.Logger
}

func NewCalculator(
	advances AdvanceSource,
	sanctions SanctionSource,
	debts DebtSource,
	logger ...*zap.Logger,
) *Calculator {
	l := zap.L().Named("salary.calculator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.calculator")
	}
	return &Calculator{
		advances:  advances,
		sanctions: sanctions,
		debts:     debts,
		logger:    l,
	}
}

// Calculate builds an unsaved draft. It never returns an error: the worst
// case is a base-salary-only record flagged via Details.CalcError.
func (c *Calculator) Calculate(
	ctx context.Context,
	emp employee.Employee,
	periodStart, periodEnd time.Time,
) Salary {
	empID := emp.ID.String()

	var (
		wg        sync.WaitGroup
		advances  []advance.Advance
		sanctions []sanction.Sanction
		debts     []debt.Debt
		advErr    error
		sancErr   error
		debtErr   error
	)

	// The three reads are independent, so they run concurrently; each
	// goroutine owns exactly one result slot.
	wg.Add(3)
	go func() {
		defer wg.Done()
		advances, advErr = c.advances.FindUnpaidByEmployee(ctx, empID)
	}()
	go func() {
		defer wg.Done()
		sanctions, sancErr = c.sanctions.FindByEmployee(ctx, empID)
	}()
	go func() {
		defer wg.Done()
		debts, debtErr = c.debts.FindUnpaidByEmployee(ctx, empID)
	}()
	wg.Wait()

	failures := 0
	if advErr != nil {
		failures++
		advances = nil
		c.logger.Warn("advance fetch failed, treating as none",
			zap.String("employee_id", empID), zap.Error(advErr))
	}
	if sancErr != nil {
		failures++
		sanctions = nil
		c.logger.Warn("sanction fetch failed, treating as none",
			zap.String("employee_id", empID), zap.Error(sancErr))
	}
	if debtErr != nil {
		failures++
		debts = nil
		c.logger.Warn("debt fetch failed, treating as none",
			zap.String("employee_id", empID), zap.Error(debtErr))
	}

	details := SalaryDetails{
		AdvanceIDs:  make([]string, 0, len(advances)),
		SanctionIDs: make([]string, 0),
		DebtIDs:     make([]string, 0, len(debts)),
	}
	if failures == 3 {
		details.CalcError = calcErrAllFetchesFailed
	}

	var sumAdvances, sumSanctions, sumDebts int64

	for _, a := range advances {
		if a.Amount <= 0 {
			continue
		}
		sumAdvances += a.Amount
		details.AdvanceIDs = append(details.AdvanceIDs, a.ID.String())
	}

	for _, s := range sanctions {
		if s.Amount <= 0 || !dateWithin(s.Date, periodStart, periodEnd) {
			continue
		}
		sumSanctions += s.Amount
		details.SanctionIDs = append(details.SanctionIDs, s.ID.String())
	}

	for _, d := range debts {
		if d.Amount <= 0 {
			continue
		}
		sumDebts += d.Amount
		details.DebtIDs = append(details.DebtIDs, d.ID.String())
	}

	// Not clamped at zero: a negative net means the employee owes the
	// business more than a month's pay.
	netSalary := emp.BaseSalary - sumAdvances - sumSanctions - sumDebts

	return Salary{
		ID:          uuid.New(),
		EmployeeID:  emp.ID,
		PaymentDate: periodEnd,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		BaseSalary:  emp.BaseSalary,
		Advances:    sumAdvances,
		Sanctions:   sumSanctions,
		Debts:       sumDebts,
		NetSalary:   netSalary,
		IsPaid:      false,
		PaidDate:    nil,
		Details:     details,
	}
}

// dateWithin reports whether d falls inside [start, end], comparing dates
// only so a sanction stored with a time-of-day still lands in its period.
func dateWithin(d, start, end time.Time) bool {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(startDay) && !day.After(endDay)
}
