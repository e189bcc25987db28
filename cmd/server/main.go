package main

import (
	"flag"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/xinmi/exammaster/internal/app"
	"github.com/xinmi/exammaster/internal/handlers"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to init service: %v", err)
	}
	defer service.Close()

	if err := service.Store.ApplyMigrations(service.Config.Database.MigrationsDir); err != nil {
		logger.Error.Fatalf("Failed to apply migrations: %v", err)
	}

	verifyHandler := handlers.NewVerifyHandler(service)
	progressHandler := handlers.NewProgressHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/verify-code", verifyHandler.HandleVerifyCode)
	mux.HandleFunc("GET /api/course-progress", progressHandler.HandleGetProgress)
	mux.HandleFunc("POST /api/course-progress", progressHandler.HandleUpsertProgress)
	mux.Handle("GET /metrics", promhttp.Handler())

	logger.Info.Printf("Starting exammaster server on %s", service.Config.Server.Port)
	if err := http.ListenAndServe(
		service.Config.Server.Port,
		handlers.CORS(service.Config.Server.CORSOrigin, mux),
	); err != nil {
		logger.Error.Fatalf("Exammaster server failed: %v", err)
	}
}
