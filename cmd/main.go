package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/clinicdesk/CDS-ClinicBookingService/internal/api/handlers/cancel_appointment"
	checkAvailabilityHandler "github.com/clinicdesk/CDS-ClinicBookingService/internal/api/handlers/check_availability"
	confirmAppointmentHandler "github.com/clinicdesk/CDS-ClinicBookingService/internal/api/handlers/confirm_appointment"
	createClinicHandler "github.com/clinicdesk/CDS-ClinicBookingService/internal/api/handlers/create_clinic"
	getAppointmentHandler "github.com/clinicdesk/CDS-ClinicBookingService/internal/api/handlers/get_appointment"
	getClinicHandler "github.com/clinicdesk/CDS-ClinicBookingService/internal/api/handlers/get_clinic"
	getClinicAppointmentsHandler "github.com/clinicdesk/CDS-ClinicBookingService/internal/api/handlers/get_clinic_appointments"
	getPatientAppointmentsHandler "github.com/clinicdesk/CDS-ClinicBookingService/internal/api/handlers/get_patient_appointments"
	listClinicsHandler "github.com/clinicdesk/CDS-ClinicBookingService/internal/api/handlers/list_clinics"
	reserveSlotHandler "github.com/clinicdesk/CDS-ClinicBookingService/internal/api/handlers/reserve_slot"
	updateClinicHandler "github.com/clinicdesk/CDS-ClinicBookingService/internal/api/handlers/update_clinic"
	"github.com/clinicdesk/CDS-ClinicBookingService/internal/api/middleware"
	"github.com/clinicdesk/CDS-ClinicBookingService/internal/config"
	appointmentRepo "github.com/clinicdesk/CDS-ClinicBookingService/internal/infra/storage/appointment"
	clinicRepo "github.com/clinicdesk/CDS-ClinicBookingService/internal/infra/storage/clinic"
	identityClient "github.com/clinicdesk/CDS-ClinicBookingService/internal/integrations/identity"
	appointmentsService "github.com/clinicdesk/CDS-ClinicBookingService/internal/service/appointments"
	clinicsService "github.com/clinicdesk/CDS-ClinicBookingService/internal/service/clinics"
	checkAvailabilityUC "github.com/clinicdesk/CDS-ClinicBookingService/internal/usecase/check_availability"
	reserveSlotUC "github.com/clinicdesk/CDS-ClinicBookingService/internal/usecase/reserve_slot"
	"github.com/clinicdesk/CDS-ClinicBookingService/pkg/dbmetrics"
	"github.com/clinicdesk/CDS-ClinicBookingService/pkg/logger"
	"github.com/clinicdesk/CDS-ClinicBookingService/pkg/metrics"
	"github.com/clinicdesk/CDS-ClinicBookingService/pkg/simpletxmanager"
	"github.com/clinicdesk/CDS-ClinicBookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting CDS-ClinicBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if err := runMigrations(db, cfg.Database.MigrationsPath, cfg.Database.DBName); err != nil {
		log.Fatal("Failed to run migrations: %v", err)
	}
	log.Info("Database migrations applied")

	// Резолвер идентичности вызывающего: сервис идентичности или
	// заголовки доверенного шлюза
	var callerResolver middleware.CallerResolver
	if cfg.Identity.Enabled {
		idClient := identityClient.NewClient(
			cfg.Identity.URL,
			time.Duration(cfg.Identity.Timeout)*time.Second,
			log,
		)
		callerResolver = middleware.NewIdentityResolver(idClient)
		log.Info("Identity client initialized (url=%s, timeout=%ds)", cfg.Identity.URL, cfg.Identity.Timeout)
	} else {
		callerResolver = middleware.HeaderResolver{}
		log.Info("Using gateway header identity resolution")
	}

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		apptRepository   *appointmentRepo.Repository
		clinicRepository *clinicRepo.Repository
		txMgr            reserveSlotUC.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		apptRepository = appointmentRepo.NewRepository(wrappedDB)
		clinicRepository = clinicRepo.NewRepository(wrappedDB)

		manager := txmanager.NewTransactionManager(wrappedDB)
		manager.SetRetryObserver(metricsCollector)
		txMgr = manager
	} else {
		apptRepository = appointmentRepo.NewRepository(db)
		clinicRepository = clinicRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(apptRepository, log)
	clinicSvc := clinicsService.NewService(clinicRepository, log)

	// Инициализируем use cases
	reserveSlotUseCase := reserveSlotUC.NewUseCase(
		apptRepository,
		clinicRepository,
		txMgr,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		apptRepository,
		clinicRepository,
		log,
	)

	if cfg.Metrics.Enabled {
		reserveSlotUseCase.SetOutcomeObserver(metricsCollector)
	}

	// Инициализируем handlers
	reserveSlot := reserveSlotHandler.NewHandler(reserveSlotUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	confirmAppointment := confirmAppointmentHandler.NewHandler(appointmentSvc, log)
	getPatientAppointments := getPatientAppointmentsHandler.NewHandler(appointmentSvc, log)
	getClinicAppointments := getClinicAppointmentsHandler.NewHandler(appointmentSvc, log)
	createClinic := createClinicHandler.NewHandler(clinicSvc, log)
	getClinic := getClinicHandler.NewHandler(clinicSvc, log)
	listClinics := listClinicsHandler.NewHandler(clinicSvc, log)
	updateClinic := updateClinicHandler.NewHandler(clinicSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Идентификатор запроса проставляется всем запросам
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Справочник клиник
	api.HandleFunc("/clinics", listClinics.Handle).Methods(http.MethodGet)
	api.HandleFunc("/clinics/{clinicId}", getClinic.Handle).Methods(http.MethodGet)

	// Проверка доступности слотов на дату
	api.HandleFunc("/clinics/{clinicId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют идентичность вызывающего)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(callerResolver))

	// --- Записи на прием ---
	// Резервирование слота
	protected.HandleFunc("/appointments", reserveSlot.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Подтверждение записи (для персонала)
	protected.HandleFunc("/appointments/{appointmentId}/confirm", confirmAppointment.Handle).Methods(http.MethodPatch)

	// История записей пациента
	protected.HandleFunc("/patients/{patientId}/appointments", getPatientAppointments.Handle).Methods(http.MethodGet)

	// --- Управление клиниками ---
	// Список записей клиники (для персонала)
	protected.HandleFunc("/clinics/{clinicId}/appointments", getClinicAppointments.Handle).Methods(http.MethodGet)

	// Регистрация и изменение клиник (для администраторов)
	protected.HandleFunc("/clinics", createClinic.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/clinics/{clinicId}", updateClinic.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped")
}

// runMigrations применяет миграции схемы из каталога migrationsPath
func runMigrations(db *sql.DB, migrationsPath, dbName string) error {
	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		dbName,
		driver,
	)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
