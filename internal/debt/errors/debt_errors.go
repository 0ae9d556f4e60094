package debterrors

import (
	"net/http"

	"github.com/sims96/lesims-hrm-sub000/internal/shared/apperror"
)

var (
	ErrDebtNotFound = apperror.New(
		apperror.CodeNotFound,
		"Debt not found",
		http.StatusNotFound,
	)
	ErrDebtAlreadySettled = apperror.New(
		apperror.CodeInvalidState,
		"Debt is already settled",
		http.StatusConflict,
	)
	ErrInvalidDebtID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid debt ID",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
