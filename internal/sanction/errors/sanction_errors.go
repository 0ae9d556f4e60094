package sanctionerrors

import (
	"net/http"

	"github.com/sims96/lesims-hrm-sub000/internal/shared/apperror"
)

var (
	ErrSanctionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Sanction not found",
		http.StatusNotFound,
	)
	ErrInvalidSanctionID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid sanction ID",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
