package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/config"
	"github.com/attendly/attendance-backend-go/internal/domain/report"
	appHTTP "github.com/attendly/attendance-backend-go/internal/handler/http"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/attendly/attendance-backend-go/internal/repository/postgresql"
	reportService "github.com/attendly/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	// The attendance store is optional: without it reports are still
	// computed, just not mirrored.
	var store report.AttendanceStore
	if cfg.PersistenceEnabled() {
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			slog.Warn("Database unavailable, continuing without attendance store", "error", err)
		} else {
			store = postgresql.NewAttendanceStore(db)
		}
	}

	reportSvc := reportService.NewReportService(store, slog.Default())
	reportHandler := appHTTP.NewReportHandler(reportSvc, cfg.App.MaxUploadSize)

	router := appHTTP.NewRouter(reportHandler, cfg.App.FrontendURL, cfg.App.Env)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
