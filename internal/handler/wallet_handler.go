package handler

import (
	"vendshop/internal/service"
	"vendshop/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type WalletHandler struct {
	wallet service.WalletService
}

func NewWalletHandler(wallet service.WalletService) *WalletHandler {
	return &WalletHandler{wallet: wallet}
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type growIDRequest struct {
	GrowID string `json:"growId" validate:"required,growid"`
}

// TopUp credits the caller's own wallet
// POST /api/wallet/topup
func (h *WalletHandler) TopUp(c *fiber.Ctx) error {
	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid amount"})
	}

	balance, err := h.wallet.TopUp(currentUserID(c), req.Amount)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"balance": balance})
}

// SetGrowID binds a globally unique GrowID to the caller
// POST /api/wallet/growid
func (h *WalletHandler) SetGrowID(c *fiber.Ctx) error {
	var req growIDRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"message": "GrowID must be 3-20 characters and contain only letters, numbers, and underscores"})
	}

	user, err := h.wallet.SetGrowID(currentUserID(c), req.GrowID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user.ToResponse())
}
