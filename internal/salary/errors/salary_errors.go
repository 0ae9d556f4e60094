package salaryerrors

import (
	"net/http"

	"github.com/sims96/lesims-hrm-sub000/internal/shared/apperror"
)

var (
	ErrSalaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary record not found",
		http.StatusNotFound,
	)
	ErrInvalidSalaryID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid salary ID",
		http.StatusBadRequest,
	)
	ErrInvalidPaymentDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid payment date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrFuturePeriod = apperror.New(
		apperror.CodeInvalidInput,
		"Cannot run payroll for a period that has not started yet",
		http.StatusBadRequest,
	)
	ErrConfirmRequired = apperror.New(
		apperror.CodeConfirmRequired,
		"Salary records already exist for this period; re-submit with force=true to delete and recompute them",
		http.StatusConflict,
	)
	ErrRunDeleteFailed = apperror.New(
		apperror.CodeInternalError,
		"Could not clear the period's existing salary records",
		http.StatusInternalServerError,
	)
	ErrProgressUnavailable = apperror.New(
		apperror.CodeInternalError,
		"Could not read payroll run progress",
		http.StatusInternalServerError,
	)
	ErrRunSaveFailed = apperror.New(
		apperror.CodeInternalError,
		"Some salary records could not be saved",
		http.StatusInternalServerError,
	)
)
