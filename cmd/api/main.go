package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brightmind-academy/payroll-engine/internal/config"
	"github.com/brightmind-academy/payroll-engine/internal/domain/filing"
	"github.com/brightmind-academy/payroll-engine/internal/domain/payroll"
	appHTTP "github.com/brightmind-academy/payroll-engine/internal/handler/http"
	"github.com/brightmind-academy/payroll-engine/internal/pkg/cron"
	"github.com/brightmind-academy/payroll-engine/internal/pkg/database"
	"github.com/brightmind-academy/payroll-engine/internal/pkg/jwt"
	"github.com/brightmind-academy/payroll-engine/internal/pkg/lock"
	"github.com/brightmind-academy/payroll-engine/internal/repository/postgresql"
	filingService "github.com/brightmind-academy/payroll-engine/internal/service/filing"
	payrollService "github.com/brightmind-academy/payroll-engine/internal/service/payroll"
	staffService "github.com/brightmind-academy/payroll-engine/internal/service/staff"
	timesheetService "github.com/brightmind-academy/payroll-engine/internal/service/timesheet"
)

const version = "v1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, database.PoolConfig{
		DSN:             cfg.DatabaseURL(),
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := postgresql.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	locker, closeLocker, err := newLocker(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer closeLocker()

	policy, err := payroll.PolicyForVersion(cfg.Payroll.PolicyVersion)
	if err != nil {
		return err
	}
	selector, err := payrollService.NewFormulaSelector(policy)
	if err != nil {
		return err
	}

	staffRepo := postgresql.NewStaffRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	paySlipRepo := postgresql.NewPaySlipRepository(db)
	obligationRepo := postgresql.NewObligationRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	staffSvc := staffService.NewStaffService(staffRepo)
	timesheetSvc := timesheetService.NewTimesheetService(shiftRepo, staffRepo)
	payrollSvc := payrollService.NewPayrollService(
		payrollService.NewComposer(selector),
		paySlipRepo,
		staffRepo,
		timesheetSvc,
		cfg.Payroll.BatchLimit,
	)
	filingSvc := filingService.NewFilingService(obligationRepo, locker)

	scheduler := cron.NewScheduler(ctx)
	cron.NewFilingJobs(filingSvc).RegisterJobs(scheduler, cfg.Filing.JobInterval)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{Env: cfg.App.Env, Version: version, AllowedOrigins: cfg.App.AllowedOrigins},
		JWTService,
		appHTTP.Handlers{
			Staff:   appHTTP.NewStaffHandler(staffSvc),
			Shift:   appHTTP.NewShiftHandler(timesheetSvc),
			PaySlip: appHTTP.NewPaySlipHandler(payrollSvc),
			Filing:  appHTTP.NewFilingHandler(filingSvc),
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "policy_version", policy.Version)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newLocker uses Redis when configured, otherwise an in-process lock.
func newLocker(ctx context.Context, cfg config.RedisConfig) (filing.Locker, func(), error) {
	if cfg.Addr == "" {
		slog.Warn("REDIS_ADDR not set, filing schedule lock is process-local")
		return lock.NewLocal(), func() {}, nil
	}

	rdb, err := lock.NewRedisClient(ctx, cfg.Addr, cfg.Password, cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	closeFn := func() {
		if err := rdb.Close(); err != nil {
			slog.Warn("Failed to close redis client", "error", err)
		}
	}
	return lock.NewRedis(rdb, cfg.KeyPrefix, cfg.LockTTL), closeFn, nil
}
