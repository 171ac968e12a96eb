package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/Esteban8482/blog-platform/internal/config"
	"github.com/Esteban8482/blog-platform/internal/infra/database"
	"github.com/Esteban8482/blog-platform/internal/infra/repository"
	"github.com/Esteban8482/blog-platform/internal/services/commentsvc"
)

func main() {
	configPath := flag.String("config", "config/comments-service.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := database.NewPostgres(cfg.Server.PostgresDsn)
	if err != nil {
		slog.Error("failed to connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := database.MigratePostgres(db); err != nil {
		slog.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handler := commentsvc.NewHandler(repository.NewCommentRepository(db))

	e := echo.New()
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	handler.RegisterRoutes(e)

	listen := cfg.Server.Listen
	if listen == "" {
		listen = ":8083"
	}
	e.Logger.Fatal(e.Start(listen))
}
