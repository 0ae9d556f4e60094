package salary

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	PhaseDeleting    = "deleting"
	PhaseCalculating = "calculating"
	PhaseSaving      = "saving"
	PhaseDone        = "done"
)

type Progress struct {
	Phase     string `json:"phase"`
	Processed int    `json:"processed"`
	Total     int    `json:"total"`
}

// ProgressSink receives incremental progress while a payroll run is in
// flight, so partial completion is observable as it happens.
type ProgressSink interface {
	Report(ctx context.Context, year, month int, p Progress)
}

type logProgressSink struct {
	logger *zap.Logger
}

func NewLogProgressSink(logger *zap.Logger) ProgressSink {
	return &logProgressSink{logger: logger.Named("salary.progress")}
}

func (s *logProgressSink) Report(ctx context.Context, year, month int, p Progress) {
	s.logger.Info("payroll run progress",
		zap.Int("year", year),
		zap.Int("month", month),
		zap.String("phase", p.Phase),
		zap.Int("processed", p.Processed),
		zap.Int("total", p.Total),
	)
}

// redisProgressSink mirrors every report into redis so the admin panel can
// poll the run while it is still going. Write failures only log: progress
// visibility must never fail a payroll run.
type redisProgressSink struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewRedisProgressSink(rdb *redis.Client, logger *zap.Logger) ProgressSink {
	return &redisProgressSink{
		rdb:    rdb,
		logger: logger.Named("salary.progress"),
	}
}

func progressKey(year, month int) string {
	return fmt.Sprintf("payroll:progress:%04d-%02d", year, month)
}

func (s *redisProgressSink) Report(ctx context.Context, year, month int, p Progress) {
	s.logger.Info("payroll run progress",
		zap.Int("year", year),
		zap.Int("month", month),
		zap.String("phase", p.Phase),
		zap.Int("processed", p.Processed),
		zap.Int("total", p.Total),
	)

	payload, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, progressKey(year, month), payload, 10*time.Minute).Err(); err != nil {
		s.logger.Warn("store payroll progress failed", zap.Error(err))
	}
}

// GetProgress reads the last reported progress for a period. A missing key
// reports an idle zero-value so the poller does not have to special-case.
func GetProgress(ctx context.Context, rdb *redis.Client, year, month int) (Progress, error) {
	val, err := rdb.Get(ctx, progressKey(year, month)).Result()
	if err == redis.Nil {
		return Progress{Phase: "idle"}, nil
	}
	if err != nil {
		return Progress{}, err
	}

	var p Progress
	if err := json.Unmarshal([]byte(val), &p); err != nil {
		return Progress{}, err
	}
	return p, nil
}
