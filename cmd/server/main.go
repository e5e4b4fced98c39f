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

	cancelBookingHandler "github.com/lepotilnica/SalonBookingService/internal/api/handlers/cancel_booking"
	checkBlacklistHandler "github.com/lepotilnica/SalonBookingService/internal/api/handlers/check_blacklist"
	createBlockedTimeHandler "github.com/lepotilnica/SalonBookingService/internal/api/handlers/create_blocked_time"
	createBookingHandler "github.com/lepotilnica/SalonBookingService/internal/api/handlers/create_booking"
	createCustomerNoteHandler "github.com/lepotilnica/SalonBookingService/internal/api/handlers/create_customer_note"
	deleteBlockedTimeHandler "github.com/lepotilnica/SalonBookingService/internal/api/handlers/delete_blocked_time"
	deleteBookingHandler "github.com/lepotilnica/SalonBookingService/internal/api/handlers/delete_booking"
	deleteCustomerNoteHandler "github.com/lepotilnica/SalonBookingService/internal/api/handlers/delete_customer_note"
	getAnalyticsHandler "github.com/lepotilnica/SalonBookingService/internal/api/handlers/get_analytics"
	getAvailabilityHandler "github.com/lepotilnica/SalonBookingService/internal/api/handlers/get_availability"
	listBlockedTimesHandler "github.com/lepotilnica/SalonBookingService/internal/api/handlers/list_blocked_times"
	listBookingsHandler "github.com/lepotilnica/SalonBookingService/internal/api/handlers/list_bookings"
	listCustomersHandler "github.com/lepotilnica/SalonBookingService/internal/api/handlers/list_customers"
	listServicesHandler "github.com/lepotilnica/SalonBookingService/internal/api/handlers/list_services"
	loginHandler "github.com/lepotilnica/SalonBookingService/internal/api/handlers/login"
	recordNoShowHandler "github.com/lepotilnica/SalonBookingService/internal/api/handlers/record_no_show"
	updateBookingHandler "github.com/lepotilnica/SalonBookingService/internal/api/handlers/update_booking"
	"github.com/lepotilnica/SalonBookingService/internal/api/middleware"
	"github.com/lepotilnica/SalonBookingService/internal/config"
	blockedTimeRepo "github.com/lepotilnica/SalonBookingService/internal/infra/storage/blockedtime"
	bookingRepo "github.com/lepotilnica/SalonBookingService/internal/infra/storage/booking"
	customerNoteRepo "github.com/lepotilnica/SalonBookingService/internal/infra/storage/customernote"
	noShowRepo "github.com/lepotilnica/SalonBookingService/internal/infra/storage/noshow"
	serviceRepo "github.com/lepotilnica/SalonBookingService/internal/infra/storage/service"
	"github.com/lepotilnica/SalonBookingService/internal/integrations/mailer"
	"github.com/lepotilnica/SalonBookingService/internal/integrations/realtimehub"
	analyticsService "github.com/lepotilnica/SalonBookingService/internal/service/analytics"
	authService "github.com/lepotilnica/SalonBookingService/internal/service/auth"
	blockedTimesService "github.com/lepotilnica/SalonBookingService/internal/service/blockedtimes"
	bookingsService "github.com/lepotilnica/SalonBookingService/internal/service/bookings"
	catalogService "github.com/lepotilnica/SalonBookingService/internal/service/catalog"
	customersService "github.com/lepotilnica/SalonBookingService/internal/service/customers"
	noShowsService "github.com/lepotilnica/SalonBookingService/internal/service/noshows"
	cancelBookingUC "github.com/lepotilnica/SalonBookingService/internal/usecase/cancel_booking"
	createBookingUC "github.com/lepotilnica/SalonBookingService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/lepotilnica/SalonBookingService/internal/usecase/get_availability"
	recordNoShowUC "github.com/lepotilnica/SalonBookingService/internal/usecase/record_no_show"
	"github.com/lepotilnica/SalonBookingService/pkg/logger"
	"github.com/lepotilnica/SalonBookingService/pkg/metrics"
	"github.com/lepotilnica/SalonBookingService/pkg/ratelimit"
	"github.com/lepotilnica/SalonBookingService/pkg/txmanager"
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

	log.Info("Starting SalonBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Расписание и часовой пояс салона
	schedule, err := cfg.WeekSchedule()
	if err != nil {
		log.Fatal("Invalid schedule: %v", err)
	}
	salonLocation, err := cfg.Location()
	if err != nil {
		log.Fatal("Invalid timezone: %v", err)
	}

	// Инициализируем интеграционных клиентов
	onBroadcastFailure := func() {}
	if cfg.Metrics.Enabled {
		onBroadcastFailure = func() { metricsCollector.BroadcastFailures.Inc() }
	}
	hubClient := realtimehub.NewClient(
		cfg.Hub.BroadcastURL,
		time.Duration(cfg.Hub.TimeoutSeconds)*time.Second,
		log,
		onBroadcastFailure,
	)
	log.Info("Realtime hub client initialized (url=%s, timeout=%ds)",
		cfg.Hub.BroadcastURL, cfg.Hub.TimeoutSeconds)

	mailAPIKey := ""
	if cfg.Mailer.Enabled {
		mailAPIKey = cfg.Mailer.APIKey
	}
	mailClient := mailer.New(mailAPIKey, cfg.Mailer.From, cfg.Mailer.BaseURL, log)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(db)
	serviceRepository := serviceRepo.NewRepository(db)
	blockedTimeRepository := blockedTimeRepo.NewRepository(db)
	noShowRepository := noShowRepo.NewRepository(db)
	customerNoteRepository := customerNoteRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	timeProvider := cancelBookingUC.RealTimeProvider{}

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		blockedTimeRepository,
		schedule,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		serviceRepository,
		blockedTimeRepository,
		noShowRepository,
		txMgr,
		hubClient,
		mailClient,
		schedule,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		hubClient,
		timeProvider,
		salonLocation,
		log,
	)
	recordNoShowUseCase := recordNoShowUC.NewUseCase(
		bookingRepository,
		noShowRepository,
		txMgr,
		hubClient,
		timeProvider,
		log,
	)

	// Инициализируем сервисы
	bookingsSvc := bookingsService.NewService(bookingRepository, hubClient, log)
	blockedTimesSvc := blockedTimesService.NewService(blockedTimeRepository, hubClient, log)
	catalogSvc := catalogService.NewService(serviceRepository, log)
	noShowsSvc := noShowsService.NewService(noShowRepository, log)
	authSvc := authService.NewService(cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, log)
	analyticsSvc := analyticsService.NewService(bookingRepository, timeProvider, salonLocation, log)
	customersSvc := customersService.NewService(bookingRepository, customerNoteRepository, noShowRepository, log)

	// Инициализируем limiter-ы: Redis для нескольких инстансов,
	// иначе счетчики в памяти процесса
	var bookingLimiter, authLimiter, cancelLimiter, apiLimiter middleware.Limiter
	if cfg.RateLimits.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RateLimits.RedisAddr})
		bookingLimiter = ratelimit.NewRedisLimiter(rdb, "booking", cfg.RateLimits.Booking.Limit, cfg.RateLimits.Booking.Window(), log)
		authLimiter = ratelimit.NewRedisLimiter(rdb, "auth", cfg.RateLimits.Auth.Limit, cfg.RateLimits.Auth.Window(), log)
		cancelLimiter = ratelimit.NewRedisLimiter(rdb, "cancel", cfg.RateLimits.Cancel.Limit, cfg.RateLimits.Cancel.Window(), log)
		apiLimiter = ratelimit.NewRedisLimiter(rdb, "api", cfg.RateLimits.API.Limit, cfg.RateLimits.API.Window(), log)
		log.Info("Rate limiting backed by Redis at %s", cfg.RateLimits.RedisAddr)
	} else {
		newLimiter := func(name string, rl config.RateLimitConfig) *ratelimit.Limiter {
			return ratelimit.New(ratelimit.Config{
				Name:     name,
				Limit:    rl.Limit,
				Window:   rl.Window(),
				Capacity: cfg.RateLimits.Capacity,
			})
		}
		bookingMem := newLimiter("booking", cfg.RateLimits.Booking)
		authMem := newLimiter("auth", cfg.RateLimits.Auth)
		cancelMem := newLimiter("cancel", cfg.RateLimits.Cancel)
		apiMem := newLimiter("api", cfg.RateLimits.API)
		defer bookingMem.Stop()
		defer authMem.Stop()
		defer cancelMem.Stop()
		defer apiMem.Stop()
		bookingLimiter, authLimiter, cancelLimiter, apiLimiter = bookingMem, authMem, cancelMem, apiMem
		log.Info("Rate limiting uses in-memory counters")
	}

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	login := loginHandler.NewHandler(authSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingsSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingsSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingsSvc, log)
	listBlockedTimes := listBlockedTimesHandler.NewHandler(blockedTimesSvc, log)
	createBlockedTime := createBlockedTimeHandler.NewHandler(blockedTimesSvc, log)
	deleteBlockedTime := deleteBlockedTimeHandler.NewHandler(blockedTimesSvc, log)
	recordNoShow := recordNoShowHandler.NewHandler(recordNoShowUseCase, log)
	checkBlacklist := checkBlacklistHandler.NewHandler(noShowsSvc, log)
	getAnalytics := getAnalyticsHandler.NewHandler(analyticsSvc, log)
	listCustomers := listCustomersHandler.NewHandler(customersSvc, log)
	createCustomerNote := createCustomerNoteHandler.NewHandler(customersSvc, log)
	deleteCustomerNote := deleteCustomerNoteHandler.NewHandler(customersSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix, общий limiter на все эндпоинты
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.RateLimit(apiLimiter, metricsCollector, log))

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	bookingRoutes := api.PathPrefix("/bookings").Subrouter()
	bookingRoutes.Use(middleware.RateLimit(bookingLimiter, metricsCollector, log))
	bookingRoutes.HandleFunc("", createBooking.Handle).Methods(http.MethodPost)

	cancelRoutes := api.PathPrefix("/cancel").Subrouter()
	cancelRoutes.Use(middleware.RateLimit(cancelLimiter, metricsCollector, log))
	cancelRoutes.HandleFunc("/{token}", cancelBooking.Handle).Methods(http.MethodGet)

	authRoutes := api.PathPrefix("/auth").Subrouter()
	authRoutes.Use(middleware.RateLimit(authLimiter, metricsCollector, log))
	authRoutes.HandleFunc("/login", login.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()

	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}", updateBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{id}", deleteBooking.Handle).Methods(http.MethodDelete)

	admin.HandleFunc("/blocked-times", listBlockedTimes.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/blocked-times", createBlockedTime.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/blocked-times/{id}", deleteBlockedTime.Handle).Methods(http.MethodDelete)

	admin.HandleFunc("/no-shows", recordNoShow.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/blacklist", checkBlacklist.Handle).Methods(http.MethodGet)

	admin.HandleFunc("/analytics", getAnalytics.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/customers", listCustomers.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/customers/notes", createCustomerNote.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/customers/notes/{id}", deleteCustomerNote.Handle).Methods(http.MethodDelete)

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
