package server

import (
	"log/slog"

	"footcrop/app/api"
	"footcrop/app/middleware"
	"footcrop/store"

	"github.com/gofiber/fiber/v2"
)

// maxUploadSize caps crop uploads at 64 MiB.
const maxUploadSize = 64 << 20

var config = fiber.Config{
	ErrorHandler: api.ErrorHandler,
	BodyLimit:    maxUploadSize,
}

type Server struct {
	listenAddr string
	logger     *slog.Logger
	app        *fiber.App
}

func NewServer(addr string, s store.DBStorer) *Server {
	return &Server{
		listenAddr: addr,
		logger:     slog.Default(),
		app:        NewApp(s),
	}
}

// NewApp wires the routes onto a fresh fiber app.
func NewApp(s store.DBStorer) *fiber.App {
	var (
		app           = fiber.New(config)
		checkHandler  = api.NewCheckHandler
		cropHandler   = api.NewCropHandler(s)
		jobHandler    = api.NewJobHandler(s)
		configHandler = api.NewConfigHandler(s)
		check         = app.Group("/check")
		apiv1         = app.Group("/api/v1")
	)

	check.Get("/healthy", checkHandler().HandleHealthy)
	apiv1.Post("/crop", middleware.RequireMultipart(), cropHandler.HandleCrop)
	apiv1.Get("/jobs", jobHandler.HandleListJobs)
	apiv1.Get("/jobs/:id", jobHandler.HandleGetJob)
	apiv1.Get("/config", configHandler.HandleGetConfig)
	apiv1.Put("/config", configHandler.HandleSetConfig)

	return app
}

func (s *Server) Stop() {
	if err := s.app.Shutdown(); err != nil {
		s.logger.Error("error to stop server", "error", err.Error())
	}
	s.logger.Info("server stopped")
}

func (s *Server) Run() error {
	s.logger.Info("server started", "addr", s.listenAddr)
	if err := s.app.Listen(s.listenAddr); err != nil {
		s.logger.Error("error to start server", "error", err.Error())
		return err
	}
	return nil
}
