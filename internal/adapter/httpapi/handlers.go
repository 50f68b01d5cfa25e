package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/buddybudget/networth-backend/internal/domain"
	"github.com/buddybudget/networth-backend/internal/usecase/ledger"
)

func (s *Server) handleCompleteOnboarding(c *fiber.Ctx) error {
	var req CompleteOnboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	accounts := make([]ledger.OnboardingAccount, 0, len(req.Accounts))
	for _, a := range req.Accounts {
		value, err := parseValue(a.Value)
		if err != nil {
			return badRequest(c, "invalid value for account "+a.Name)
		}
		accounts = append(accounts, ledger.OnboardingAccount{
			Name:     a.Name,
			Type:     domain.AccountType(a.Type),
			Value:    value,
			Currency: a.Currency,
			Icon:     a.Icon,
			Color:    a.Color,
		})
	}

	seed, err := s.ledger.CompleteOnboarding(c.Context(), ledger.CompleteOnboardingInput{
		UserID:          currentUserID(c),
		PrimaryCurrency: req.PrimaryCurrency,
		Accounts:        accounts,
	})
	if err != nil {
		return s.mapError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toSnapshotResponse(seed))
}

func (s *Server) handleCreateAccount(c *fiber.Ctx) error {
	var req CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	value, err := parseValue(req.Value)
	if err != nil {
		return badRequest(c, "invalid value")
	}

	account, err := s.ledger.CreateAccount(c.Context(), ledger.CreateAccountInput{
		UserID:   currentUserID(c),
		Name:     req.Name,
		Type:     domain.AccountType(req.Type),
		Value:    value,
		Currency: req.Currency,
		Icon:     req.Icon,
		Color:    req.Color,
	})
	if err != nil {
		return s.mapError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toAccountResponse(account))
}

func (s *Server) handleGetAccount(c *fiber.Ctx) error {
	accountID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid account id")
	}

	account, err := s.ledger.GetAccount(c.Context(), currentUserID(c), accountID)
	if err != nil {
		return s.mapError(c, err)
	}
	return c.JSON(toAccountResponse(account))
}

func (s *Server) handleListAccounts(c *fiber.Ctx) error {
	accounts, err := s.ledger.ListAccounts(c.Context(), currentUserID(c))
	if err != nil {
		return s.mapError(c, err)
	}

	resp := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		resp = append(resp, toAccountResponse(a))
	}
	return c.JSON(resp)
}

func (s *Server) handleUpdateAccount(c *fiber.Ctx) error {
	accountID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid account id")
	}

	var req UpdateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	input := ledger.UpdateAccountInput{
		UserID:    currentUserID(c),
		AccountID: accountID,
		Name:      req.Name,
		Icon:      req.Icon,
		Color:     req.Color,
	}
	if req.Type != nil {
		accountType := domain.AccountType(*req.Type)
		input.Type = &accountType
	}
	if req.Value != nil {
		value, err := parseValue(*req.Value)
		if err != nil {
			return badRequest(c, "invalid value")
		}
		input.Value = &value
	}

	account, err := s.ledger.UpdateAccount(c.Context(), input)
	if err != nil {
		return s.mapError(c, err)
	}
	return c.JSON(toAccountResponse(account))
}

func (s *Server) handleDeleteAccount(c *fiber.Ctx) error {
	accountID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid account id")
	}

	if err := s.ledger.DeleteAccount(c.Context(), currentUserID(c), accountID); err != nil {
		return s.mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleLatestSnapshot(c *fiber.Ctx) error {
	snapshot, err := s.ledger.LatestSnapshot(c.Context(), currentUserID(c))
	if err != nil {
		return s.mapError(c, err)
	}
	return c.JSON(toSnapshotResponse(snapshot))
}

func (s *Server) handleSnapshotHistory(c *fiber.Ctx) error {
	snapshots, err := s.ledger.SnapshotHistory(c.Context(), currentUserID(c))
	if err != nil {
		return s.mapError(c, err)
	}

	resp := make([]SnapshotResponse, 0, len(snapshots))
	for _, snapshot := range snapshots {
		resp = append(resp, toSnapshotResponse(snapshot))
	}
	return c.JSON(resp)
}

// mapError translates ledger errors into HTTP responses. ErrInconsistentState
// gets its own code so clients can tell unretryable corruption apart from a
// transient rate-provider outage.
func (s *Server) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(errorBody("not_found", "resource not found"))
	case errors.Is(err, domain.ErrAlreadyOnboarded):
		return c.Status(fiber.StatusConflict).JSON(errorBody("already_onboarded", "onboarding was already completed"))
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(errorBody("conflict", "concurrent update, retry the request"))
	case errors.Is(err, domain.ErrExchangeRateUnavailable):
		return c.Status(fiber.StatusBadGateway).JSON(errorBody("exchange_rate_unavailable", "exchange rate lookup failed, retry later"))
	case errors.Is(err, domain.ErrInconsistentState):
		s.logger.Error("ledger state inconsistent", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(errorBody("inconsistent_state", "ledger state is inconsistent"))
	default:
		s.logger.Error("request failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(errorBody("internal", "internal server error"))
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorBody("bad_request", message))
}

func errorBody(code, message string) fiber.Map {
	return fiber.Map{"error": fiber.Map{"code": code, "message": message}}
}

// parseValue parses a monetary amount from its wire representation.
// Negative amounts are rejected here so the ledger only ever sees valid input.
func parseValue(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if value.IsNegative() {
		return decimal.Zero, errors.New("value cannot be negative")
	}
	return value, nil
}
