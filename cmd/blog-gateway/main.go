package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/Esteban8482/blog-platform/client"
	"github.com/Esteban8482/blog-platform/internal/config"
	"github.com/Esteban8482/blog-platform/internal/domain"
	"github.com/Esteban8482/blog-platform/internal/identity"
	"github.com/Esteban8482/blog-platform/internal/infra/database"
	"github.com/Esteban8482/blog-platform/internal/present/rest"
	"github.com/Esteban8482/blog-platform/internal/present/rest/middleware"
	"github.com/Esteban8482/blog-platform/internal/usecase"
)

const defaultSessionTTL = 24 * time.Hour

func main() {
	configPath := flag.String("config", "config/gateway.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := cfg.Auth.Validate(); err != nil {
		slog.Error("invalid auth config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.Gateway.EnableTrace {
		shutdown, err := setupTrace(cfg.Gateway.TraceEndpoint)
		if err != nil {
			slog.Error("failed to set up tracing", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			shutdown(ctx)
		}()
	}

	userClient := client.NewUserClient(cfg.Services.UserServiceURL)
	postClient := client.NewPostClient(cfg.Services.PostServiceURL)
	commentClient := client.NewCommentClient(cfg.Services.CommentServiceURL)

	leeway := time.Duration(cfg.Auth.LeewaySeconds) * time.Second
	verifier := identity.NewVerifier(cfg.Auth.Issuer, cfg.Auth.Audience, cfg.Auth.JWKSURL, leeway)

	sessionTTL := defaultSessionTTL
	if cfg.Auth.SessionTTLMinutes > 0 {
		sessionTTL = time.Duration(cfg.Auth.SessionTTLMinutes) * time.Minute
	}

	var sessions *identity.SessionStore
	if cfg.Auth.Mode == domain.AuthModeSession {
		rdb := database.NewRedis(cfg.Auth.RedisAddr, "", cfg.Auth.RedisDB)
		sessions = identity.NewSessionStore(rdb, cfg.Auth.SessionSecret, sessionTTL)
	}

	resolver := identity.NewResolver(cfg.Auth.Mode, sessions, verifier, userClient)

	posts := usecase.NewPostUsecase(postClient, commentClient)
	comments := usecase.NewCommentUsecase(postClient, commentClient)
	profiles := usecase.NewProfileUsecase(userClient, postClient)

	handler := rest.NewHandler(posts, comments, profiles, verifier, sessions, sessionTTL)
	auth := middleware.NewAuthMiddleware(resolver)

	e := echo.New()
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	if cfg.Gateway.EnableTrace {
		e.Use(otelecho.Middleware("blog-gateway"))
	}

	handler.RegisterRoutes(e, auth)

	listen := cfg.Gateway.Listen
	if listen == "" {
		listen = ":8080"
	}
	e.Logger.Fatal(e.Start(listen))
}

func setupTrace(endpoint string) (func(context.Context) error, error) {
	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName("blog-gateway"),
		)),
	)
	otel.SetTracerProvider(provider)
	return provider.Shutdown, nil
}
