package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/hrpay/payroll-backend-go/internal/config"
	appHTTP "github.com/hrpay/payroll-backend-go/internal/handler/http"
	"github.com/hrpay/payroll-backend-go/internal/pkg/database"
	"github.com/hrpay/payroll-backend-go/internal/repository/postgresql"
	payrollService "github.com/hrpay/payroll-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db, cfg.App.MigrationsDir); err != nil {
		log.Fatal("Failed to apply migrations: ", err)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	txManager := postgresql.NewTxManager(db)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "payroll-backend"),
	)

	calculator := payrollService.NewCalculator(employeeRepo, payrollRepo, attendanceRepo, payrollService.CalculatorConfig{
		WeekendPolicy:        payrollService.WeekendPolicy(cfg.Payroll.WeekendPolicy),
		StandardWeeklyHours:  cfg.Payroll.StandardWeeklyHours,
		StandardMonthlyHours: cfg.Payroll.StandardMonthlyHours,
	})
	payrollSvc := payrollService.NewService(txManager, payrollRepo, employeeRepo, calculator, logger)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	router := appHTTP.NewRouter(cfg.App.Env, payrollHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
