// Package httpapi exposes the ledger over HTTP.
package httpapi

import (
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/buddybudget/networth-backend/internal/usecase/ledger"
)

// Server wires the ledger service into a Fiber application.
type Server struct {
	app      *fiber.App
	ledger   *ledger.Service
	validate *validator.Validate
	logger   *slog.Logger
}

// New creates a new Server with all routes registered.
// apiToken protects every /v1 route; the health endpoint stays open.
func New(ledgerSvc *ledger.Service, apiToken string, logger *slog.Logger) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:               "networth-backend",
			DisableStartupMessage: true,
		}),
		ledger:   ledgerSvc,
		validate: validator.New(),
		logger:   logger,
	}

	s.app.Get("/healthz", s.handleHealth)

	v1 := s.app.Group("/v1", AuthMiddleware(apiToken))
	v1.Post("/onboarding", s.handleCompleteOnboarding)
	v1.Get("/accounts", s.handleListAccounts)
	v1.Post("/accounts", s.handleCreateAccount)
	v1.Get("/accounts/:id", s.handleGetAccount)
	v1.Patch("/accounts/:id", s.handleUpdateAccount)
	v1.Delete("/accounts/:id", s.handleDeleteAccount)
	v1.Get("/snapshots", s.handleSnapshotHistory)
	v1.Get("/snapshots/latest", s.handleLatestSnapshot)

	return s
}

// App exposes the underlying Fiber app, used by tests via app.Test
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen starts serving on addr and blocks
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
