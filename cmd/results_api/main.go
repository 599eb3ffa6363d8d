package main

import (
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/DjordjeVuckovic/vector-bench/internal/server"
	pkgserver "github.com/DjordjeVuckovic/vector-bench/pkg/server"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelInfo)

	cfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	healthChecker := pkgserver.NewOkHealthChecker()

	e := echo.New()
	s := server.NewServer(e, cfg, healthChecker)

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "vector-bench results API is running")
	})

	server.NewReportsRouter(s.Echo, cfg.ReportsDir).Bind()

	slog.Info("Serving benchmark reports", "dir", cfg.ReportsDir, "port", cfg.Port)

	if err := s.Start(); err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}
