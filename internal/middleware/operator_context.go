package middleware

import (
	"github.com/sims96/lesims-hrm-sub000/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OperatorContext builds a request-scoped logger carrying the request id and
// the operator identity from the X-Operator header. Le Sims is a
// single-tenant admin panel behind a trusted gateway, so the header is
// taken at face value here.
func OperatorContext(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// RequestID normally runs first; reuse its id so the gin key, the
		// context value and the log field never diverge.
		rid := c.GetString("request_id")
		if rid == "" {
			rid = c.GetHeader("X-Request-ID")
			if rid == "" {
				rid = uuid.New().String()
			}
			c.Set("request_id", rid)
			c.Header("X-Request-ID", rid)
		}

		operator := c.GetHeader("X-Operator")
		if operator == "" {
			operator = "admin"
		}
		c.Set("operator", operator)

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("operator", operator),
		)

		ctx := c.Request.Context()
		ctx = contextutil.WithRequestID(ctx, rid)
		ctx = contextutil.WithOperator(ctx, operator)
		ctx = contextutil.WithLogger(ctx, reqLogger)

		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
