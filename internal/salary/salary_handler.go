package salary

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	salaryerrors "github.com/sims96/lesims-hrm-sub000/internal/salary/errors"
	"github.com/sims96/lesims-hrm-sub000/internal/shared/apperror"
	"github.com/sims96/lesims-hrm-sub000/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("salary.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("salary request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// GetAll lists salary records, optionally narrowed to one period with the
// year and month query parameters (both required together).
func (h *Handler) GetAll(c *gin.Context) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")

	var (
		resp []SalaryResponse
		err  error
	)
	if yearStr != "" || monthStr != "" {
		year, yerr := strconv.Atoi(yearStr)
		month, merr := strconv.Atoi(monthStr)
		if yerr != nil || merr != nil || month < 1 || month > 12 {
			h.writeServiceError(c, apperror.InvalidField("year/month").WithDetails("expected numeric year and month 1-12"))
			return
		}
		resp, err = h.service.GetByMonth(c.Request.Context(), year, month)
	} else {
		resp, err = h.service.GetAll(c.Request.Context())
	}
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MarkAsPaid(c *gin.Context) {
	var req MarkAsPaidRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.writeServiceError(c, apperror.MapValidationError(err))
			return
		}
	}

	resp, err := h.service.MarkAsPaid(c.Request.Context(), c.Param("id"), req.PaymentMethod)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

// RunPayroll kicks off a full recompute of one period. The idempotency
// middleware may hand over a lock and cache key; the lock is always
// released here, and the result is cached only on success so a failed run
// can be retried with the same key.
func (h *Handler) RunPayroll(c *gin.Context) {
	var req RunPayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.releaseIdempotencyLock(c)
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	result, err := h.service.RunPayroll(c.Request.Context(), req)
	if err != nil {
		h.releaseIdempotencyLock(c)
		h.writeServiceError(c, err)
		return
	}

	h.finishIdempotency(c, result)
	response.Success(c, http.StatusOK, result, nil)
}

// GetRunProgress reports how far the period's last run has gotten.
func (h *Handler) GetRunProgress(c *gin.Context) {
	year, yerr := strconv.Atoi(c.Param("year"))
	month, merr := strconv.Atoi(c.Param("month"))
	if yerr != nil || merr != nil || month < 1 || month > 12 {
		h.writeServiceError(c, apperror.InvalidField("year/month").WithDetails("expected numeric year and month 1-12"))
		return
	}

	progress, err := GetProgress(c.Request.Context(), h.rdb, year, month)
	if err != nil {
		h.writeServiceError(c, salaryerrors.ErrProgressUnavailable)
		return
	}

	response.Success(c, http.StatusOK, progress, nil)
}

func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	lockKey := c.GetString("idempotency_lock_key")
	if lockKey == "" {
		return
	}
	if err := h.rdb.Del(c.Request.Context(), lockKey).Err(); err != nil {
		h.logger.Warn("release idempotency lock failed", zap.Error(err))
	}
}

func (h *Handler) finishIdempotency(c *gin.Context, result *RunPayrollResult) {
	cacheKey := c.GetString("idempotency_cache_key")
	if cacheKey != "" {
		if payload, err := json.Marshal(result); err == nil {
			if err := h.rdb.Set(c.Request.Context(), cacheKey, payload, 24*time.Hour).Err(); err != nil {
				h.logger.Warn("cache idempotent response failed", zap.Error(err))
			}
		}
	}
	h.releaseIdempotencyLock(c)
}
