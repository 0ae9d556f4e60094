package app

import (
	"os"

	"github.com/sims96/lesims-hrm-sub000/internal/advance"
	"github.com/sims96/lesims-hrm-sub000/internal/debt"
	"github.com/sims96/lesims-hrm-sub000/internal/employee"
	"github.com/sims96/lesims-hrm-sub000/internal/salary"
	"github.com/sims96/lesims-hrm-sub000/internal/sanction"
	"github.com/sims96/lesims-hrm-sub000/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and registers every module's routes
// on the router.
func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	gormDB, sqlDB, err := connectDatabase()
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	if err := gormDB.AutoMigrate(
		&employee.Employee{},
		&advance.Advance{},
		&sanction.Sanction{},
		&debt.Debt{},
		&salary.Salary{},
	); err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	return registerModules(router, sqlDB, gormDB, rdb)
}
