package app

import (
	"database/sql"

	"github.com/sims96/lesims-hrm-sub000/internal/advance"
	"github.com/sims96/lesims-hrm-sub000/internal/debt"
	"github.com/sims96/lesims-hrm-sub000/internal/employee"
	"github.com/sims96/lesims-hrm-sub000/internal/messaging/kafka"
	"github.com/sims96/lesims-hrm-sub000/internal/middleware"
	"github.com/sims96/lesims-hrm-sub000/internal/salary"
	"github.com/sims96/lesims-hrm-sub000/internal/sanction"
	"github.com/sims96/lesims-hrm-sub000/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	advanceRepo := advance.NewRepository(gormDB)
	sanctionRepo := sanction.NewRepository(gormDB)
	debtRepo := debt.NewRepository(gormDB)
	salaryRepo := salary.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	employeeService := employee.NewService(employeeRepo, counterRepo, rdb)
	advanceService := advance.NewService(advanceRepo)
	sanctionService := sanction.NewService(sanctionRepo)
	debtService := debt.NewService(debtRepo)

	calculator := salary.NewCalculator(advanceRepo, sanctionRepo, debtRepo)
	progressSink := salary.NewRedisProgressSink(rdb, zap.L())
	processor := salary.NewProcessor(salaryRepo, employeeRepo, calculator, outboxRepo, progressSink)
	salaryService := salary.NewService(db, salaryRepo, outboxRepo, processor)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	advanceHandler := advance.NewHandler(advanceService)
	sanctionHandler := sanction.NewHandler(sanctionService)
	debtHandler := debt.NewHandler(debtService)
	salaryHandler := salary.NewHandler(salaryService, rdb)

	// --- Routes ---
	api := router.Group("/api/v1")
	api.Use(
		middleware.RequestID(),
		middleware.OperatorContext(zap.L()),
		middleware.RateLimitByIP(rate.Limit(20), 40),
	)

	employee.RegisterRoutes(api, employeeHandler)
	advance.RegisterRoutes(api, advanceHandler)
	sanction.RegisterRoutes(api, sanctionHandler)
	debt.RegisterRoutes(api, debtHandler)
	salary.RegisterRoutes(api, salaryHandler, rdb)

	return nil
}
