package app

import (
	"context"
	"fmt"
	"strings"

	"campus-prep/internal/config"
	"campus-prep/internal/datastore"
	"campus-prep/internal/delivery/http/handler"
	"campus-prep/internal/delivery/http/middleware"
	"campus-prep/internal/delivery/http/routes"
	v1 "campus-prep/internal/delivery/http/routes/v1"
	"campus-prep/internal/pkg/jwt"
	"campus-prep/internal/pkg/logger"
	"campus-prep/internal/usecase"
	ucauth "campus-prep/internal/usecase/auth"
	"campus-prep/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
	Data  *datastore.Service
	Hub   *ws.Hub

	stopHub context.CancelFunc
}

// New wires services and routes on top of an already built container and
// starts the change-feed hub. Call Close to stop it.
func New(ctx context.Context, cfg config.Config, c *Container) (*App, error) {
	hubCtx, stopHub := context.WithCancel(context.Background())
	hub := ws.NewHub(logger.With("ws"))
	go hub.Run(hubCtx)

	data := datastore.New(c.Records,
		datastore.WithLogger(logger.With("datastore")),
		datastore.WithNotifier(ws.NewNotifier(hub)),
	)
	if err := data.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		stopHub()
		return nil, fmt.Errorf("ensure admin: %w", err)
	}
	if err := data.EnsureSeeded(ctx); err != nil {
		stopHub()
		return nil, fmt.Errorf("seed records: %w", err)
	}

	jwtSvc := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn, cfg.App.AppName)
	authSvc := ucauth.NewService(data, c.Sessions, ucauth.Config{
		AdminEmail:      cfg.Auth.AdminEmail,
		AdminPassword:   cfg.Auth.AdminPassword,
		AllowReregister: cfg.Auth.AllowReregister,
	}, logger.With("auth"))
	authUC := usecase.NewAuthUsecase(authSvc, jwtSvc)

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	registerGlobalMiddleware(f)

	authMw := middleware.NewAuthMiddleware(jwtSvc, authUC)
	registry := routes.NewRegistry(
		handler.NewHealthHandler(cfg.App.AppName, c.Checkers),
		v1.Handlers{
			Auth:      handler.NewAuthHandler(authUC),
			Profile:   handler.NewProfileHandler(authUC),
			Companies: handler.NewCompanyHandler(data),
			FAQs:      handler.NewFAQHandler(data),
			Updates:   handler.NewUpdateHandler(data),
			Users:     handler.NewAdminUserHandler(data),
		},
		authMw.Middleware(),
		ws.NewHandler(hub, logger.With("ws")).HandleChangesWS,
	)
	registry.Register(f)

	return &App{Fiber: f, Data: data, Hub: hub, stopHub: stopHub}, nil
}

// Bootstrap builds the container from cfg and the app on top of it. The
// returned cleanup stops the hub and closes backing connections.
func Bootstrap(ctx context.Context, cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	a, err := New(ctx, cfg, c)
	if err != nil {
		_ = c.Close()
		return nil, nil, err
	}

	cleanup := func() error {
		a.Close()
		return c.Close()
	}
	return a, cleanup, nil
}

func (a *App) Close() {
	if a == nil || a.stopHub == nil {
		return
	}
	a.stopHub()
}

func registerGlobalMiddleware(app *fiber.App) {
	if app == nil {
		return
	}

	accessMw := middleware.NewAccessLogMiddleware(logger.With("access"))
	app.Use(accessMw.Middleware())

	errMw := middleware.NewErrorMiddleware(logger.With("http"))
	app.Use(errMw.Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
