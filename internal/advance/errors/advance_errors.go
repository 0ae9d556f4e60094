package advanceerrors

import (
	"net/http"

	"github.com/sims96/lesims-hrm-sub000/internal/shared/apperror"
)

var (
	ErrAdvanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Advance not found",
		http.StatusNotFound,
	)
	ErrAdvanceAlreadySettled = apperror.New(
		apperror.CodeInvalidState,
		"Advance is already settled",
		http.StatusConflict,
	)
	ErrInvalidAdvanceID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid advance ID",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
