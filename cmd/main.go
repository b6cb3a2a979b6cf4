package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	createAppointmentHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/create_appointment"
	createDoctorHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/create_doctor"
	createPatientHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/create_patient"
	deleteAppointmentHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/delete_appointment"
	deleteDoctorHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/delete_doctor"
	deletePatientHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/delete_patient"
	exportAppointmentsHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/export_appointments"
	getAdminDashboardHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/get_admin_dashboard"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/get_available_slots"
	getDoctorDashboardHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/get_doctor_dashboard"
	getDoctorScheduleHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/get_doctor_schedule"
	getPatientHistoryHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/get_patient_history"
	getPrescriptionHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/get_prescription"
	listAppointmentsHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/list_appointments"
	listDoctorAppointmentsHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/list_doctor_appointments"
	listDoctorPatientsHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/list_doctor_patients"
	listDoctorsHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/list_doctors"
	listPatientsHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/list_patients"
	loginHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/login"
	logoutHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/logout"
	printPrescriptionHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/print_prescription"
	registerHospitalHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/register_hospital"
	savePrescriptionHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/save_prescription"
	setDoctorCredentialsHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/set_doctor_credentials"
	setWorkingWindowHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/set_working_window"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/update_appointment_status"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/auth"
	"github.com/m04kA/SMC-ClinicService/internal/config"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/infra/images"
	"github.com/m04kA/SMC-ClinicService/internal/infra/migrator"
	"github.com/m04kA/SMC-ClinicService/internal/infra/sessions"
	appointmentRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/appointment"
	doctorRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/doctor"
	hospitalRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/hospital"
	patientRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/patient"
	prescriptionRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/prescription"
	scheduleRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/schedule"
	staffRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/staff"
	appointmentsService "github.com/m04kA/SMC-ClinicService/internal/service/appointments"
	authService "github.com/m04kA/SMC-ClinicService/internal/service/auth"
	authModels "github.com/m04kA/SMC-ClinicService/internal/service/auth/models"
	dashboardService "github.com/m04kA/SMC-ClinicService/internal/service/dashboard"
	doctorsService "github.com/m04kA/SMC-ClinicService/internal/service/doctors"
	patientsService "github.com/m04kA/SMC-ClinicService/internal/service/patients"
	prescriptionsService "github.com/m04kA/SMC-ClinicService/internal/service/prescriptions"
	scheduleService "github.com/m04kA/SMC-ClinicService/internal/service/schedule"
	createAppointmentUC "github.com/m04kA/SMC-ClinicService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-ClinicService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ClinicService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicService/pkg/logger"
	"github.com/m04kA/SMC-ClinicService/pkg/metrics"
	"github.com/m04kA/SMC-ClinicService/pkg/txmanager"
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

	log.Info("Starting SMC-ClinicService...")

	clinicLocation, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Invalid scheduling timezone %q: %v", cfg.Scheduling.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Применяем миграции отдельным соединением: драйвер migrate закрывает его при завершении
	if cfg.Database.AutoMigrate {
		if err := runMigrations(cfg.Database.DSN()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
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

	// Без метрик обёртка только прокидывает вызовы в *sql.DB
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Подключаемся к Redis (отозванные токены)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	sessionStore := sessions.NewStore(redisClient, cfg.Redis.KeyPrefix)
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := sessionStore.Ping(pingCtx); err != nil {
		log.Warn("Redis is unavailable, authenticated requests will fail until it recovers: %v", err)
	} else {
		log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr)
	}
	pingCancel()

	// Инициализируем репозитории
	hospitalRepository := hospitalRepo.NewRepository(wrappedDB)
	staffRepository := staffRepo.NewRepository(wrappedDB)
	doctorRepository := doctorRepo.NewRepository(wrappedDB)
	patientRepository := patientRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	prescriptionRepository := prescriptionRepo.NewRepository(wrappedDB)

	// Аутентификация
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokenIssuer := auth.NewTokenIssuer(
		cfg.Auth.JWTSecret,
		cfg.Auth.Issuer,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
	)

	// Инициализируем сервисы
	authSvc := authService.NewService(
		hospitalRepository,
		staffRepository,
		doctorRepository,
		hasher,
		tokenIssuer,
		sessionStore,
		txMgr,
		log,
	)
	// Хранилище фотографий врачей
	var (
		imageStore  doctorsService.ImageStore
		localImages *images.LocalStore
	)
	switch cfg.Images.Backend {
	case config.ImagesBackendCloudinary:
		imageStore, err = images.NewCloudinaryStore(cfg.Images.CloudName, cfg.Images.APIKey, cfg.Images.APISecret, cfg.Images.Folder)
	default:
		localImages, err = images.NewLocalStore(cfg.Images.Dir, cfg.Images.BaseURL)
		imageStore = localImages
	}
	if err != nil {
		log.Fatal("Failed to initialize image store (backend=%s): %v", cfg.Images.Backend, err)
	}
	log.Info("Doctor images stored in %s backend", cfg.Images.Backend)

	doctorSvc := doctorsService.NewService(
		doctorRepository,
		scheduleRepository,
		prescriptionRepository,
		appointmentRepository,
		imageStore,
		hasher,
		txMgr,
		log,
	)
	patientSvc := patientsService.NewService(
		patientRepository,
		appointmentRepository,
		prescriptionRepository,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		doctorRepository,
		scheduleRepository,
		txMgr,
		log,
	)
	appointmentSvc := appointmentsService.NewService(appointmentRepository, log)
	prescriptionSvc := prescriptionsService.NewService(
		appointmentRepository,
		prescriptionRepository,
		hospitalRepository,
		log,
	)
	dashboardSvc := dashboardService.NewService(
		hospitalRepository,
		appointmentRepository,
		&dashboardService.RealTimeProvider{Location: clinicLocation},
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		patientRepository,
		doctorRepository,
		scheduleRepository,
		appointmentRepository,
		txMgr,
		metricsCollector,
		&createAppointmentUC.RealTimeProvider{Location: clinicLocation},
		cfg.Scheduling.SlotDurationMinutes,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		doctorRepository,
		scheduleRepository,
		appointmentRepository,
		cfg.Scheduling.SlotDurationMinutes,
		log,
	)

	// Администратор по умолчанию
	if cfg.Bootstrap.CreateDefaultAdmin {
		bootstrapCtx, bootstrapCancel := context.WithTimeout(context.Background(), 10*time.Second)
		created, err := authSvc.EnsureDefaultAdmin(bootstrapCtx, authModels.BootstrapAdmin{
			Name:         cfg.Bootstrap.DefaultAdminName,
			Email:        cfg.Bootstrap.DefaultAdminEmail,
			Password:     cfg.Bootstrap.DefaultAdminPassword,
			HospitalName: cfg.Bootstrap.DefaultHospitalName,
		})
		bootstrapCancel()
		if err != nil {
			log.Fatal("Failed to create default admin: %v", err)
		}
		if created {
			log.Info("Default admin created (email=%s)", cfg.Bootstrap.DefaultAdminEmail)
		}
	}

	// Инициализируем handlers
	registerHospital := registerHospitalHandler.NewHandler(authSvc, log)
	login := loginHandler.NewHandler(authSvc, log)
	logout := logoutHandler.NewHandler(authSvc, log)

	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)

	getAdminDashboard := getAdminDashboardHandler.NewHandler(dashboardSvc, log)
	getDoctorDashboard := getDoctorDashboardHandler.NewHandler(dashboardSvc, log)

	createPatient := createPatientHandler.NewHandler(patientSvc, log)
	listPatients := listPatientsHandler.NewHandler(patientSvc, log)
	deletePatient := deletePatientHandler.NewHandler(patientSvc, log)
	listDoctorPatients := listDoctorPatientsHandler.NewHandler(patientSvc, log)
	getPatientHistory := getPatientHistoryHandler.NewHandler(patientSvc, log)

	createDoctor := createDoctorHandler.NewHandler(doctorSvc, cfg.Images.MaxSizeBytes, log)
	listDoctors := listDoctorsHandler.NewHandler(doctorSvc, log)
	deleteDoctor := deleteDoctorHandler.NewHandler(doctorSvc, log)
	setDoctorCredentials := setDoctorCredentialsHandler.NewHandler(doctorSvc, log)

	getDoctorSchedule := getDoctorScheduleHandler.NewHandler(scheduleSvc, log)
	setWorkingWindow := setWorkingWindowHandler.NewHandler(scheduleSvc, log)

	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentSvc, log)
	exportAppointments := exportAppointmentsHandler.NewHandler(appointmentSvc, log)
	listDoctorAppointments := listDoctorAppointmentsHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)

	getPrescription := getPrescriptionHandler.NewHandler(prescriptionSvc, log)
	savePrescription := savePrescriptionHandler.NewHandler(prescriptionSvc, log)
	printPrescription := printPrescriptionHandler.NewHandler(prescriptionSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Локальные фотографии врачей раздаёт сам сервис
	if localImages != nil {
		prefix := strings.TrimRight(cfg.Images.BaseURL, "/") + "/"
		r.PathPrefix(prefix).
			Handler(http.StripPrefix(prefix, http.FileServer(http.Dir(localImages.Dir())))).
			Methods(http.MethodGet)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	loginLimiter := middleware.NewIPRateLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst)
	trustedProxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
	if err != nil {
		log.Fatal("Invalid rate_limit.trusted_proxies: %v", err)
	}

	api.HandleFunc("/auth/register", registerHospital.Handle).Methods(http.MethodPost)
	api.Handle("/auth/login",
		middleware.RateLimit(loginLimiter, trustedProxies, log)(http.HandlerFunc(login.Handle))).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokenIssuer, sessionStore, log))

	protected.HandleFunc("/auth/logout", logout.Handle).Methods(http.MethodPost)

	// Свободные слоты врача (администратор и врач)
	protected.HandleFunc("/doctors/{doctorId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Администратор больницы ---
	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireRole(domain.RoleAdmin))

	admin.HandleFunc("/admin/dashboard", getAdminDashboard.Handle).Methods(http.MethodGet)

	admin.HandleFunc("/patients", createPatient.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/patients", listPatients.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/patients/{patientId}", deletePatient.Handle).Methods(http.MethodDelete)

	admin.HandleFunc("/doctors", createDoctor.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", listDoctors.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{doctorId}", deleteDoctor.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/doctors/{doctorId}/credentials", setDoctorCredentials.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{doctorId}/schedule", getDoctorSchedule.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{doctorId}/schedule/{weekday}", setWorkingWindow.Handle).Methods(http.MethodPut)

	admin.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/export", exportAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)

	// --- Кабинет врача ---
	doctor := protected.PathPrefix("/doctor").Subrouter()
	doctor.Use(middleware.RequireRole(domain.RoleDoctor))

	doctor.HandleFunc("/dashboard", getDoctorDashboard.Handle).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments", listDoctorAppointments.Handle).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	doctor.HandleFunc("/appointments/{appointmentId}/prescription", getPrescription.Handle).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/{appointmentId}/prescription", savePrescription.Handle).Methods(http.MethodPut)
	doctor.HandleFunc("/appointments/{appointmentId}/prescription/print", printPrescription.Handle).Methods(http.MethodGet)
	doctor.HandleFunc("/patients", listDoctorPatients.Handle).Methods(http.MethodGet)
	doctor.HandleFunc("/patients/{patientId}/history", getPatientHistory.Handle).Methods(http.MethodGet)

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
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

func runMigrations(dsn string) error {
	migrationDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}

	m, err := migrator.New(migrationDB)
	if err != nil {
		migrationDB.Close()
		return err
	}
	defer m.Close()

	return m.Up()
}
