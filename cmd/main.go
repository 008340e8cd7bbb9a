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

	"cloud.google.com/go/firestore"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/api/option"

	cancelReservationHandler "github.com/m04kA/STS-BookingService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/STS-BookingService/internal/api/handlers/create_reservation"
	getAvailabilityHandler "github.com/m04kA/STS-BookingService/internal/api/handlers/get_availability"
	getReservationHandler "github.com/m04kA/STS-BookingService/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/m04kA/STS-BookingService/internal/api/handlers/get_user_reservations"
	getWalletHandler "github.com/m04kA/STS-BookingService/internal/api/handlers/get_wallet"
	startSessionHandler "github.com/m04kA/STS-BookingService/internal/api/handlers/start_session"
	topupWalletHandler "github.com/m04kA/STS-BookingService/internal/api/handlers/topup_wallet"
	watchAvailabilityHandler "github.com/m04kA/STS-BookingService/internal/api/handlers/watch_availability"
	"github.com/m04kA/STS-BookingService/internal/api/middleware"
	"github.com/m04kA/STS-BookingService/internal/config"
	"github.com/m04kA/STS-BookingService/internal/domain"
	"github.com/m04kA/STS-BookingService/internal/infra/events"
	"github.com/m04kA/STS-BookingService/internal/infra/fsledger"
	reservationRepo "github.com/m04kA/STS-BookingService/internal/infra/storage/reservation"
	walletRepo "github.com/m04kA/STS-BookingService/internal/infra/storage/wallet"
	"github.com/m04kA/STS-BookingService/internal/integrations/identity"
	availabilityService "github.com/m04kA/STS-BookingService/internal/service/availability"
	reservationsService "github.com/m04kA/STS-BookingService/internal/service/reservations"
	walletService "github.com/m04kA/STS-BookingService/internal/service/wallet"
	createReservationUC "github.com/m04kA/STS-BookingService/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/m04kA/STS-BookingService/internal/usecase/get_availability"
	startSessionUC "github.com/m04kA/STS-BookingService/internal/usecase/start_session"
	"github.com/m04kA/STS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/STS-BookingService/pkg/logger"
	"github.com/m04kA/STS-BookingService/pkg/metrics"
	"github.com/m04kA/STS-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/STS-BookingService/pkg/txmanager"
	"github.com/m04kA/STS-BookingService/pkg/types"
)

// reservationStore общий контракт журнала бронирований, который закрывают
// оба бэкенда (Postgres и Firestore)
type reservationStore interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	GetConfirmedByDate(ctx context.Context, date string) ([]*domain.Reservation, error)
	FindConflict(ctx context.Context, sunbedID, date string, slot types.TimeString) (*domain.Reservation, error)
	GetByUserID(ctx context.Context, userID string) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error
}

// passthroughTxManager заглушка транзакций для Firestore-бэкенда:
// атомарность одиночных операций обеспечивает сам Firestore
type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

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

	log.Info("Starting STS-BookingService...")
	log.Info("Configuration loaded from config.toml (storage driver=%s)", cfg.Storage.Driver)

	ctx := context.Background()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Клиент проверки ID-токенов (Firebase Auth)
	identityClient, err := identity.NewClient(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile, log)
	if err != nil {
		log.Fatal("Failed to initialize identity client: %v", err)
	}
	log.Info("Identity client initialized (project=%s)", cfg.Firebase.ProjectID)

	// Инициализируем хранилище бронирований и кошельков
	var (
		resStore reservationStore
		wltStore walletService.WalletRepository
		feed     availabilityService.SubscriptionFeed
		txMgr    createReservationUC.TransactionManager
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		var pgReservations *reservationRepo.Repository

		if cfg.Metrics.Enabled {
			wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
			log.Info("Database metrics collection started")

			pgReservations = reservationRepo.NewRepository(wrappedDB)
			wltStore = walletRepo.NewRepository(wrappedDB)
			txMgr = txmanager.NewTransactionManager(wrappedDB)
		} else {
			pgReservations = reservationRepo.NewRepository(db)
			wltStore = walletRepo.NewRepository(db)
			txMgr = simpletxmanager.NewTransactionManager(db)
		}
		resStore = pgReservations

		// LISTEN/NOTIFY лента изменений для push-доступности
		pgFeed, err := reservationRepo.NewFeed(cfg.Database.DSN(), pgReservations, log)
		if err != nil {
			log.Fatal("Failed to start reservation feed: %v", err)
		}
		defer pgFeed.Close()
		feed = pgFeed

	case config.StorageDriverFirestore:
		var opts []option.ClientOption
		if cfg.Firebase.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
		}

		fsClient, err := firestore.NewClient(ctx, cfg.Firebase.ProjectID, opts...)
		if err != nil {
			log.Fatal("Failed to connect to Firestore: %v", err)
		}
		defer fsClient.Close()
		log.Info("Successfully connected to Firestore (project=%s)", cfg.Firebase.ProjectID)

		ledger := fsledger.NewReservationLedger(fsClient, log)
		resStore = ledger
		feed = ledger
		wltStore = fsledger.NewWalletStore(fsClient, log)
		txMgr = passthroughTxManager{}
	}

	// Публикация событий бронирования (если включена)
	var eventPublisher createReservationUC.EventPublisher
	if cfg.Events.Enabled {
		publisher, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to message broker: %v", err)
		}
		defer publisher.Close()
		eventPublisher = publisher
		log.Info("Event publisher initialized (exchange=%s)", cfg.Events.Exchange)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(resStore, feed, domain.DefaultSunbeds, log)
	defer availabilitySvc.Close()

	walletSvc := walletService.NewService(wltStore, log)
	reservationsSvc := reservationsService.NewService(resStore, eventPublisher, log)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		resStore,
		availabilitySvc,
		walletSvc,
		eventPublisher,
		txMgr,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(availabilitySvc, domain.DefaultSunbeds, log)

	startSessionUseCase := startSessionUC.NewUseCase(
		resStore,
		createReservationUseCase,
		walletSvc,
		eventPublisher,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	watchAvailability := watchAvailabilityHandler.NewHandler(availabilitySvc, log)
	startSession := startSessionHandler.NewHandler(startSessionUseCase, log)
	getWallet := getWalletHandler.NewHandler(walletSvc, log)
	topupWallet := topupWalletHandler.NewHandler(walletSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Таблица доступности на дату
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Поток изменений доступности (Server-Sent Events)
	api.HandleFunc("/availability/watch", watchAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer-токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(identityClient, log))

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Киоск ---
	protected.HandleFunc("/sessions/start", startSession.Handle).Methods(http.MethodPost)

	// --- Кошелек ---
	protected.HandleFunc("/users/{userId}/wallet", getWallet.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/wallet/topup", topupWallet.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	// WriteTimeout должен позволять длинные SSE-соединения
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
