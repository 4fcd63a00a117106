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

	cancelBookingHandler "github.com/mymy770/activelaser/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/mymy770/activelaser/internal/api/handlers/create_booking"
	getAgendaHandler "github.com/mymy770/activelaser/internal/api/handlers/get_agenda"
	getBookingHandler "github.com/mymy770/activelaser/internal/api/handlers/get_booking"
	getBranchBookingsHandler "github.com/mymy770/activelaser/internal/api/handlers/get_branch_bookings"
	getBranchConfigHandler "github.com/mymy770/activelaser/internal/api/handlers/get_branch_config"
	updateBookingHandler "github.com/mymy770/activelaser/internal/api/handlers/update_booking"
	updateBranchConfigHandler "github.com/mymy770/activelaser/internal/api/handlers/update_branch_config"
	"github.com/mymy770/activelaser/internal/api/middleware"
	"github.com/mymy770/activelaser/internal/config"
	bookingRepo "github.com/mymy770/activelaser/internal/infra/storage/booking"
	branchConfigRepo "github.com/mymy770/activelaser/internal/infra/storage/branchconfig"
	bookingsService "github.com/mymy770/activelaser/internal/service/bookings"
	configService "github.com/mymy770/activelaser/internal/service/config"
	createBookingUC "github.com/mymy770/activelaser/internal/usecase/create_booking"
	getAgendaUC "github.com/mymy770/activelaser/internal/usecase/get_agenda"
	updateBookingUC "github.com/mymy770/activelaser/internal/usecase/update_booking"
	"github.com/mymy770/activelaser/pkg/logger"
	"github.com/mymy770/activelaser/pkg/metrics"
	"github.com/mymy770/activelaser/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting activelaser booking service...")

	// Collectors are always registered; only the endpoint and the HTTP
	// middleware are gated on the metrics flag.
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)

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
	log.Info("Connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Repositories and transaction manager.
	bookingRepository := bookingRepo.NewRepository(db)
	configRepository := branchConfigRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Services.
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	configSvc := configService.NewService(configRepository, txMgr, log)

	// Use cases.
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		configRepository,
		txMgr,
		metricsCollector,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		configRepository,
		txMgr,
		metricsCollector,
		log,
	)
	getAgendaUseCase := getAgendaUC.NewUseCase(
		bookingRepository,
		configRepository,
		log,
	)

	// Handlers.
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	getAgenda := getAgendaHandler.NewHandler(getAgendaUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBranchBookings := getBranchBookingsHandler.NewHandler(bookingSvc, log)
	getBranchConfig := getBranchConfigHandler.NewHandler(configSvc, log)
	updateBranchConfig := updateBranchConfigHandler.NewHandler(configSvc, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Read-only routes: the agenda and configuration lookups the dashboard
	// polls without a staff identity.
	api.HandleFunc("/branches/{branchId}/agenda", getAgenda.Handle).Methods(http.MethodGet)
	api.HandleFunc("/branches/{branchId}/bookings", getBranchBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/branches/{branchId}/config", getBranchConfig.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)

	// Mutating routes require the staff identity header.
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{id}", updateBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{id}", cancelBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/branches/{branchId}/config", updateBranchConfig.Handle).Methods(http.MethodPut)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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
