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
	"github.com/redis/go-redis/v9"

	bookingSessionHandler "github.com/rameshwari28/QuickCourt/internal/api/handlers/booking_session"
	cancelReservationHandler "github.com/rameshwari28/QuickCourt/internal/api/handlers/cancel_reservation"
	checkAvailabilityHandler "github.com/rameshwari28/QuickCourt/internal/api/handlers/check_availability"
	createReservationHandler "github.com/rameshwari28/QuickCourt/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/rameshwari28/QuickCourt/internal/api/handlers/get_available_slots"
	getReservationHandler "github.com/rameshwari28/QuickCourt/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/rameshwari28/QuickCourt/internal/api/handlers/get_user_reservations"
	getVenueReservationsHandler "github.com/rameshwari28/QuickCourt/internal/api/handlers/get_venue_reservations"
	"github.com/rameshwari28/QuickCourt/internal/api/middleware"
	"github.com/rameshwari28/QuickCourt/internal/config"
	"github.com/rameshwari28/QuickCourt/internal/domain"
	"github.com/rameshwari28/QuickCourt/internal/infra/cache"
	reservationRepo "github.com/rameshwari28/QuickCourt/internal/infra/storage/reservation"
	venueServiceClient "github.com/rameshwari28/QuickCourt/internal/integrations/venueservice"
	reservationsService "github.com/rameshwari28/QuickCourt/internal/service/reservations"
	checkAvailabilityUC "github.com/rameshwari28/QuickCourt/internal/usecase/check_availability"
	createReservationUC "github.com/rameshwari28/QuickCourt/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/rameshwari28/QuickCourt/internal/usecase/get_available_slots"
	"github.com/rameshwari28/QuickCourt/internal/workflow"
	"github.com/rameshwari28/QuickCourt/pkg/dbmetrics"
	"github.com/rameshwari28/QuickCourt/pkg/logger"
	"github.com/rameshwari28/QuickCourt/pkg/metrics"
	"github.com/rameshwari28/QuickCourt/pkg/simpletxmanager"
	"github.com/rameshwari28/QuickCourt/pkg/txmanager"
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

	log.Info("Starting QuickCourt reservation service...")
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

	// Инициализируем клиент каталога площадок
	venueClient := venueServiceClient.NewClient(
		cfg.VenueService.URL,
		time.Duration(cfg.VenueService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (VenueService=%s timeout=%ds)",
		cfg.VenueService.URL, cfg.VenueService.Timeout)

	// Инициализируем кэш доступности (опционально)
	type slotsCache interface {
		GetSlots(ctx context.Context, courtID int64, date time.Time) ([]domain.AvailableSlot, bool, error)
		SetSlots(ctx context.Context, courtID int64, date time.Time, slots []domain.AvailableSlot) error
		Invalidate(ctx context.Context, courtID int64, date time.Time) error
	}
	var slotsStore slotsCache = cache.Disabled{}

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		slotsStore = cache.New(rdb, time.Duration(cfg.Redis.CacheTTLSeconds)*time.Second)
		log.Info("Availability cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.CacheTTLSeconds)
	}

	// Политика бронирования
	policy := domain.BookingPolicy{
		GranularityMinutes:      cfg.Booking.GranularityMinutes,
		MinBookingNoticeMinutes: cfg.Booking.MinBookingNoticeMinutes,
		AdvanceBookingDays:      cfg.Booking.AdvanceBookingDays,
		MaxDurationMinutes:      cfg.Booking.MaxDurationMinutes,
	}

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var reservationRepository *reservationRepo.Repository

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервис бронирований
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		venueClient,
		slotsStore,
		reservationsService.RealTimeProvider{},
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		venueClient,
		slotsStore,
		txMgr,
		policy,
		time.Duration(cfg.Booking.CreateTimeoutSeconds)*time.Second,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		venueClient,
		slotsStore,
		policy,
		log,
	)

	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		reservationRepository,
		venueClient,
		policy,
		log,
	)

	// Менеджер сессий пошагового бронирования
	sessionManager := workflow.NewManager(
		checkAvailabilityUseCase,
		createReservationUseCase,
		venueClient,
		workflow.NewLogPublisher(log),
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getVenueReservations := getVenueReservationsHandler.NewHandler(reservationSvc, log)
	bookingSession := bookingSessionHandler.NewHandler(sessionManager, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Все маршруты требуют идентификацию (X-User-ID header)
	api.Use(middleware.Identity(log))

	// --- Доступность ---
	// Слоты корта на дату
	api.HandleFunc("/courts/{courtId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Проверка доступности интервала
	api.HandleFunc("/courts/{courtId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	// Создание бронирования
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	api.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	api.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Управление площадкой (для владельцев) ---
	// Список бронирований площадки
	api.HandleFunc("/venues/{venueId}/reservations", getVenueReservations.Handle).Methods(http.MethodGet)

	// --- Сессии пошагового бронирования ---
	api.HandleFunc("/booking-sessions", bookingSession.Start).Methods(http.MethodPost)
	api.HandleFunc("/booking-sessions/{sessionId}", bookingSession.Get).Methods(http.MethodGet)
	api.HandleFunc("/booking-sessions/{sessionId}", bookingSession.Close).Methods(http.MethodDelete)
	api.HandleFunc("/booking-sessions/{sessionId}/date", bookingSession.SelectDate).Methods(http.MethodPost)
	api.HandleFunc("/booking-sessions/{sessionId}/court", bookingSession.SelectCourt).Methods(http.MethodPost)
	api.HandleFunc("/booking-sessions/{sessionId}/slot", bookingSession.SelectSlot).Methods(http.MethodPost)
	api.HandleFunc("/booking-sessions/{sessionId}/confirm", bookingSession.Confirm).Methods(http.MethodPost)

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
