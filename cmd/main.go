package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bulkApplyHandler "github.com/funinthesundocs/epictours/internal/api/handlers/bulk_apply"
	cancelBookingHandler "github.com/funinthesundocs/epictours/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/funinthesundocs/epictours/internal/api/handlers/create_booking"
	deleteAvailabilityHandler "github.com/funinthesundocs/epictours/internal/api/handlers/delete_availability"
	deleteBookingHandler "github.com/funinthesundocs/epictours/internal/api/handlers/delete_booking"
	getAvailabilityHandler "github.com/funinthesundocs/epictours/internal/api/handlers/get_availability"
	getBookingHandler "github.com/funinthesundocs/epictours/internal/api/handlers/get_booking"
	getPricingRatesHandler "github.com/funinthesundocs/epictours/internal/api/handlers/get_pricing_rates"
	listAvailabilitiesHandler "github.com/funinthesundocs/epictours/internal/api/handlers/list_availabilities"
	quoteBookingHandler "github.com/funinthesundocs/epictours/internal/api/handlers/quote_booking"
	updateAvailabilityHandler "github.com/funinthesundocs/epictours/internal/api/handlers/update_availability"
	updateBookingHandler "github.com/funinthesundocs/epictours/internal/api/handlers/update_booking"
	"github.com/funinthesundocs/epictours/internal/api/middleware"
	"github.com/funinthesundocs/epictours/internal/config"
	availabilityRepo "github.com/funinthesundocs/epictours/internal/infra/storage/availability"
	bookingRepo "github.com/funinthesundocs/epictours/internal/infra/storage/booking"
	pricingRepo "github.com/funinthesundocs/epictours/internal/infra/storage/pricing"
	fleetServiceClient "github.com/funinthesundocs/epictours/internal/integrations/fleetservice"
	availabilitiesService "github.com/funinthesundocs/epictours/internal/service/availabilities"
	bookingsService "github.com/funinthesundocs/epictours/internal/service/bookings"
	pricingService "github.com/funinthesundocs/epictours/internal/service/pricing"
	bulkApplyUC "github.com/funinthesundocs/epictours/internal/usecase/bulk_apply"
	createBookingUC "github.com/funinthesundocs/epictours/internal/usecase/create_booking"
	quoteBookingUC "github.com/funinthesundocs/epictours/internal/usecase/quote_booking"
	updateBookingUC "github.com/funinthesundocs/epictours/internal/usecase/update_booking"
	"github.com/funinthesundocs/epictours/pkg/dbmetrics"
	"github.com/funinthesundocs/epictours/pkg/logger"
	"github.com/funinthesundocs/epictours/pkg/metrics"
	"github.com/funinthesundocs/epictours/pkg/simpletxmanager"
	"github.com/funinthesundocs/epictours/pkg/txmanager"
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

	log.Info("Starting EpicTours booking engine...")
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

	// Инициализируем интеграционного клиента справочника
	fleetClient := fleetServiceClient.NewClient(
		cfg.FleetService.URL,
		time.Duration(cfg.FleetService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (FleetService=%s timeout=%ds)",
		cfg.FleetService.URL, cfg.FleetService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		availabilityRepository *availabilityRepo.Repository
		bookingRepository      *bookingRepo.Repository
		pricingRepository      *pricingRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		pricingRepository = pricingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		availabilityRepository = availabilityRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		pricingRepository = pricingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	pricingSvc := pricingService.NewService(pricingRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	availabilitySvc := availabilitiesService.NewService(
		availabilityRepository,
		bookingRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		availabilityRepository,
		bookingRepository,
		pricingSvc,
		txMgr,
		log,
	)

	updateBookingUseCase := updateBookingUC.NewUseCase(
		availabilityRepository,
		bookingRepository,
		pricingSvc,
		txMgr,
		log,
	)

	quoteBookingUseCase := quoteBookingUC.NewUseCase(
		availabilityRepository,
		bookingRepository,
		pricingSvc,
		log,
	)

	bulkApplyUseCase := bulkApplyUC.NewUseCase(
		availabilityRepository,
		bookingRepository,
		fleetClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	quoteBooking := quoteBookingHandler.NewHandler(quoteBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	listAvailabilities := listAvailabilitiesHandler.NewHandler(availabilitySvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(availabilitySvc, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(availabilitySvc, log)
	bulkApply := bulkApplyHandler.NewHandler(bulkApplyUseCase, log)
	getPricingRates := getPricingRatesHandler.NewHandler(pricingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

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

	// Тарифы прайс-листа для тира
	api.HandleFunc("/pricing/schedules/{scheduleId}/rates",
		getPricingRates.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Расчет драфта без сохранения: регистрируется раньше /{bookingId}
	protected.HandleFunc("/bookings/quote", quoteBooking.Handle).Methods(http.MethodPost)

	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Редактирование бронирования (тот же id, пересчет сумм)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Жесткое удаление бронирования
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// --- Слоты ---
	// Массовая мутация: регистрируется раньше /{availabilityId}
	protected.HandleFunc("/availabilities/bulk", bulkApply.Handle).Methods(http.MethodPost)

	// Список слотов с фильтрами и занятостью
	protected.HandleFunc("/availabilities", listAvailabilities.Handle).Methods(http.MethodGet)

	// Один слот с занятостью
	protected.HandleFunc("/availabilities/{availabilityId}", getAvailability.Handle).Methods(http.MethodGet)

	// Редактирование полей слота
	protected.HandleFunc("/availabilities/{availabilityId}", updateAvailability.Handle).Methods(http.MethodPatch)

	// Удаление слота (защищено active-bookings инвариантом)
	protected.HandleFunc("/availabilities/{availabilityId}", deleteAvailability.Handle).Methods(http.MethodDelete)

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

	log.Info("Server stopped gracefully")
}
