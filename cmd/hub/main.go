package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lepotilnica/SalonBookingService/internal/config"
	"github.com/lepotilnica/SalonBookingService/internal/hub"
	"github.com/lepotilnica/SalonBookingService/pkg/logger"
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

	log.Info("Starting realtime hub...")

	h := hub.New(log)
	go h.Run()

	handler := hub.NewHandler(h, log)

	addr := fmt.Sprintf(":%d", cfg.Hub.HTTPPort)
	srv := &http.Server{
		Addr:        addr,
		Handler:     handler.Router(),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Hub listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Hub failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down hub...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Hub forced to shutdown: %v", err)
	}
	h.Stop()

	log.Info("Hub stopped gracefully")
}
