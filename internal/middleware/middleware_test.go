package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sims96/lesims-hrm-sub000/internal/middleware"
	"github.com/sims96/lesims-hrm-sub000/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type testEnvelope struct {
	Ok   bool           `json:"ok"`
	Data map[string]any `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) testEnvelope {
	t.Helper()
	var env testEnvelope
	assert.NoError(t, json.Unmarshal(body, &env))
	return env
}

func TestRequestIDSharedAcrossMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.OperatorContext(zap.NewNop()))

	var ctxRid, ginRid string
	r.GET("/ping", func(c *gin.Context) {
		ctxRid = contextutil.GetRequestID(c.Request.Context())
		ginRid = c.GetString("request_id")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.NotEmpty(t, ctxRid)
	assert.Equal(t, ctxRid, ginRid)
	assert.Equal(t, ctxRid, w.Header().Get("X-Request-ID"))
}

func TestRequestIDKeepsClientProvidedID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.OperatorContext(zap.NewNop()))

	var ctxRid string
	r.GET("/ping", func(c *gin.Context) {
		ctxRid = contextutil.GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-abc-123")
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-abc-123", ctxRid)
	assert.Equal(t, "req-abc-123", w.Header().Get("X-Request-ID"))
}

func TestIdempotencyReplayWearsEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, redisMock := redismock.NewClientMock()

	handlerCalled := false
	r := gin.New()
	r.Use(middleware.OperatorContext(zap.NewNop()))
	r.POST("/payroll-runs", middleware.Idempotency(rdb), func(c *gin.Context) {
		handlerCalled = true
	})

	redisMock.ExpectGet("idemp:/payroll-runs:admin:run-2024-01").
		SetVal(`{"status":"COMPLETED","created":2}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payroll-runs", nil)
	req.Header.Set("Idempotency-Key", "run-2024-01")
	r.ServeHTTP(w, req)

	assert.False(t, handlerCalled)
	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
	assert.Equal(t, "COMPLETED", env.Data["status"])

	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestIdempotencyConcurrentRequestConflicts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, redisMock := redismock.NewClientMock()

	r := gin.New()
	r.Use(middleware.OperatorContext(zap.NewNop()))
	r.POST("/payroll-runs", middleware.Idempotency(rdb), func(c *gin.Context) {
		t.Fatal("handler must not run while the key is locked")
	})

	cacheKey := "idemp:/payroll-runs:admin:run-2024-01"
	redisMock.ExpectGet(cacheKey).RedisNil()
	redisMock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payroll-runs", nil)
	req.Header.Set("Idempotency-Key", "run-2024-01")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "PROCESSING", env.Error.Code)

	assert.NoError(t, redisMock.ExpectationsWereMet())
}
