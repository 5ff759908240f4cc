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
	"golang.org/x/time/rate"

	createPlacementHandler "github.com/m04kA/FestAccommodationService/internal/api/handlers/create_placement"
	deletePlacementHandler "github.com/m04kA/FestAccommodationService/internal/api/handlers/delete_placement"
	deleteRoomHandler "github.com/m04kA/FestAccommodationService/internal/api/handlers/delete_room"
	getChildrenPlacementsHandler "github.com/m04kA/FestAccommodationService/internal/api/handlers/get_children_placements"
	getFreeSlotsHandler "github.com/m04kA/FestAccommodationService/internal/api/handlers/get_free_slots"
	listPlacementsHandler "github.com/m04kA/FestAccommodationService/internal/api/handlers/list_placements"
	listRoomsHandler "github.com/m04kA/FestAccommodationService/internal/api/handlers/list_rooms"
	updatePlacementHandler "github.com/m04kA/FestAccommodationService/internal/api/handlers/update_placement"
	updateRoomHandler "github.com/m04kA/FestAccommodationService/internal/api/handlers/update_room"
	"github.com/m04kA/FestAccommodationService/internal/api/middleware"
	"github.com/m04kA/FestAccommodationService/internal/config"
	"github.com/m04kA/FestAccommodationService/internal/domain"
	cacheRoom "github.com/m04kA/FestAccommodationService/internal/infra/cache/room"
	"github.com/m04kA/FestAccommodationService/internal/infra/migrator"
	attachmentRepo "github.com/m04kA/FestAccommodationService/internal/infra/storage/attachment"
	festivalRepo "github.com/m04kA/FestAccommodationService/internal/infra/storage/festival"
	placementRepo "github.com/m04kA/FestAccommodationService/internal/infra/storage/placement"
	registrationRepo "github.com/m04kA/FestAccommodationService/internal/infra/storage/registration"
	roomRepo "github.com/m04kA/FestAccommodationService/internal/infra/storage/room"
	userRepo "github.com/m04kA/FestAccommodationService/internal/infra/storage/user"
	"github.com/m04kA/FestAccommodationService/internal/service/children"
	"github.com/m04kA/FestAccommodationService/internal/service/intervals"
	"github.com/m04kA/FestAccommodationService/internal/service/ledger"
	"github.com/m04kA/FestAccommodationService/internal/service/rooms"
	allocatePlacementUC "github.com/m04kA/FestAccommodationService/internal/usecase/allocate_placement"
	deletePlacementUC "github.com/m04kA/FestAccommodationService/internal/usecase/delete_placement"
	"github.com/m04kA/FestAccommodationService/migrations"
	"github.com/m04kA/FestAccommodationService/pkg/dbmetrics"
	"github.com/m04kA/FestAccommodationService/pkg/logger"
	"github.com/m04kA/FestAccommodationService/pkg/metrics"
	"github.com/m04kA/FestAccommodationService/pkg/txmanager"
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

	log.Info("Starting FestAccommodationService...")

	// Метрики (если включены); nil коллектор безопасен
	var metricsCollector *metrics.Metrics
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Миграции схемы
	if cfg.Migrations.Enabled {
		m, err := migrator.NewMigrator(db, migrations.FS, log)
		if err != nil {
			log.Fatal("Failed to initialize migrator: %v", err)
		}
		if err := m.Run(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Репозитории
	placements := placementRepo.NewRepository(wrappedDB)
	roomCatalog := cacheRoom.NewCachedRepository(
		roomRepo.NewRepository(wrappedDB),
		time.Duration(cfg.Cache.RoomTTL)*time.Second,
		time.Duration(cfg.Cache.CleanupInterval)*time.Second,
	)
	attachments := attachmentRepo.NewRepository(wrappedDB)
	registrations := registrationRepo.NewRepository(wrappedDB)
	users := userRepo.NewRepository(wrappedDB)
	festivals := festivalRepo.NewRepository(wrappedDB)

	txMgr := txmanager.NewTransactionManager(wrappedDB, cfg.Database.TxRetries)

	// Сервисы
	ledgerSvc := ledger.NewService(placements, roomCatalog, users, log)
	index := intervals.NewIndex(placements)
	childManager := children.NewManager(ledgerSvc, index, attachments, registrations, roomCatalog, users, festivals, log)
	roomSvc := rooms.NewService(
		roomCatalog,
		ledgerSvc,
		index,
		placements,
		attachments,
		registrations,
		users,
		festivals,
		txMgr,
		log,
	)

	// Use cases
	allocatePlacementUseCase := allocatePlacementUC.NewUseCase(
		ledgerSvc,
		index,
		childManager,
		attachments,
		users,
		placements,
		txMgr,
		metricsCollector,
		log,
	)
	deletePlacementUseCase := deletePlacementUC.NewUseCase(
		ledgerSvc,
		childManager,
		placements,
		txMgr,
		metricsCollector,
		log,
	)

	// Handlers
	createPlacement := createPlacementHandler.NewHandler(allocatePlacementUseCase, log)
	updatePlacement := updatePlacementHandler.NewHandler(allocatePlacementUseCase, log)
	deletePlacement := deletePlacementHandler.NewHandler(deletePlacementUseCase, log)
	listPlacements := listPlacementsHandler.NewHandler(ledgerSvc, log)
	listRooms := listRoomsHandler.NewHandler(roomSvc, log)
	getFreeSlots := getFreeSlotsHandler.NewHandler(roomSvc, log)
	updateRoom := updateRoomHandler.NewHandler(roomSvc, log)
	deleteRoom := deleteRoomHandler.NewHandler(roomSvc, log)
	getChildrenPlacements := getChildrenPlacementsHandler.NewHandler(childManager, log)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	if cfg.RateLimit.Enabled {
		limiter, err := middleware.NewIPRateLimiter(
			rate.Limit(cfg.RateLimit.RequestsPerSecond),
			cfg.RateLimit.Burst,
			time.Duration(cfg.RateLimit.IdleTTL)*time.Second,
			cfg.RateLimit.TrustedProxies...,
		)
		if err != nil {
			log.Fatal("Failed to initialize rate limiter: %v", err)
		}
		api.Use(middleware.RateLimit(limiter))
		log.Info("Rate limit enabled: %.1f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// ============================================================
	// USER ROUTES (любой авторизованный пользователь)
	// ============================================================

	api.HandleFunc("/users/{userId}/children-placements", getChildrenPlacements.Handle).Methods(http.MethodGet)

	// ============================================================
	// STAFF ROUTES (администратор или менеджер расселения)
	// ============================================================

	staff := api.PathPrefix("").Subrouter()
	staff.Use(middleware.RequireRoles(domain.StaffRoles...))

	// --- Размещения ---
	staff.HandleFunc("/placements", listPlacements.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/placements", createPlacement.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/placements/{placementId}", updatePlacement.Handle).Methods(http.MethodPut)
	staff.HandleFunc("/placements/{placementId}", deletePlacement.Handle).Methods(http.MethodDelete)

	// --- Комнаты ---
	staff.HandleFunc("/rooms", listRooms.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/rooms/{roomId}/free-slots", getFreeSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireRoles(domain.RoleAdmin))

	admin.HandleFunc("/rooms/{roomId}", updateRoom.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/rooms/{roomId}", deleteRoom.Handle).Methods(http.MethodDelete)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
