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

	"github.com/cmlabs-hris/inzone-backend-go/internal/config"
	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/geofence"
	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/signup"
	appHTTP "github.com/cmlabs-hris/inzone-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/inzone-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/inzone-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/inzone-backend-go/internal/service/attendance"
	geofenceService "github.com/cmlabs-hris/inzone-backend-go/internal/service/geofence"
	reportService "github.com/cmlabs-hris/inzone-backend-go/internal/service/report"
	signupService "github.com/cmlabs-hris/inzone-backend-go/internal/service/signup"
)

const version = "v1.0.0"

type repositories struct {
	attendance attendance.AttendanceRepository
	employee   employee.EmployeeRepository
	geofence   geofence.GeofenceRepository
	declineLog signup.DeclineLogRepository
	tx         database.Transactor
	close      func()
}

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).With(
		slog.String("app", "inzone"),
		slog.String("env", cfg.App.Env),
	))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.close()

	policy := cfg.Policy()
	clk := clock.System()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		return fmt.Errorf("failed to initialize email service: %w", err)
	}

	geofenceSvc := geofenceService.NewGeofenceService(repos.geofence, cfg.Attendance.FallbackGeofence)
	attendanceSvc := attendanceService.NewAttendanceService(repos.attendance, repos.employee, geofenceSvc, policy, clk)
	sweepSvc := attendanceService.NewSweepService(repos.attendance, repos.employee, policy, clk)
	reportSvc := reportService.NewReportService(repos.attendance, repos.employee, policy, clk)
	signupSvc := signupService.NewSignupService(repos.tx, repos.employee, repos.declineLog, repos.attendance, emailService, policy, clk)

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, sweepSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Geofence:   appHTTP.NewGeofenceHandler(geofenceSvc),
		Signup:     appHTTP.NewSignupHandler(signupSvc),
	}, appHTTP.RouterOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Env:            cfg.App.Env,
		Version:        version,
	})

	sweepHour, sweepMinute, err := config.ParseClockHHMM(cfg.Attendance.AbsenceSweepTime)
	if err != nil {
		return err
	}
	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(sweepSvc).RegisterJobs(scheduler, sweepHour, sweepMinute, policy.Location, cfg.Attendance.StaleSessionInterval)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "storage", cfg.Storage.Driver, "timezone", cfg.Attendance.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		slog.Warn("Using in-memory storage; data is lost on restart")
		return &repositories{
			attendance: memory.NewAttendanceRepository(),
			employee:   memory.NewEmployeeRepository(),
			geofence:   memory.NewGeofenceRepository(),
			declineLog: memory.NewDeclineLogRepository(),
			tx:         memory.NewTransactor(),
			close:      func() {},
		}, nil

	case config.StorageDriverPostgres:
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("error connecting to database: %w", err)
		}
		if err := postgresql.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("error migrating database: %w", err)
		}
		return &repositories{
			attendance: postgresql.NewAttendanceRepository(db),
			employee:   postgresql.NewEmployeeRepository(db),
			geofence:   postgresql.NewGeofenceRepository(db),
			declineLog: postgresql.NewDeclineLogRepository(db),
			tx:         postgresql.NewTransactor(db),
			close:      db.Close,
		}, nil
	}

	return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
}
