package handler

import (
	"vendshop/internal/service"

	"github.com/gofiber/fiber/v2"
)

// StoreHandler covers the buyer-facing catalog and purchase surface
type StoreHandler struct {
	purchases service.PurchaseService
}

func NewStoreHandler(purchases service.PurchaseService) *StoreHandler {
	return &StoreHandler{purchases: purchases}
}

type purchaseRequest struct {
	Quantity float64 `json:"quantity"`
}

// GetProducts lists the catalog
// GET /api/products
func (h *StoreHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.purchases.GetProducts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch products"})
	}
	return c.JSON(products)
}

// Purchase buys quantity units of a product
// POST /api/products/:id/purchase
func (h *StoreHandler) Purchase(c *fiber.Ctx) error {
	productID, err := parseIDParam(c)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Product not found"})
	}

	req := purchaseRequest{Quantity: 1}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
		}
	}

	result, err := h.purchases.Purchase(currentUserID(c), productID, req.Quantity)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

// GetPurchases lists the caller's purchases, newest first
// GET /api/purchases
func (h *StoreHandler) GetPurchases(c *fiber.Ctx) error {
	purchases, err := h.purchases.GetUserPurchases(currentUserID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch purchases"})
	}
	return c.JSON(purchases)
}

// GetTransactions lists the caller's ledger entries, newest first
// GET /api/transactions
func (h *StoreHandler) GetTransactions(c *fiber.Ctx) error {
	transactions, err := h.purchases.GetUserTransactions(currentUserID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch transactions"})
	}
	return c.JSON(transactions)
}
