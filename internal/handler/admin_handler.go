package handler

import (
	"vendshop/internal/model"
	"vendshop/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// AdminHandler covers the admin panel plus the public catalog reads that
// share the same service (slides, settings).
type AdminHandler struct {
	catalog service.CatalogService
	wallet  service.WalletService
}

func NewAdminHandler(catalog service.CatalogService, wallet service.WalletService) *AdminHandler {
	return &AdminHandler{catalog: catalog, wallet: wallet}
}

type banRequest struct {
	Banned *bool `json:"banned"`
}

type settingsRequest struct {
	DepositWorld string `json:"depositWorld"`
}

type pendingProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
}

type approvePendingRequest struct {
	StockData []string `json:"stockData"`
	AdminNote string   `json:"adminNote"`
}

// ---- users ----

// GET /api/admin/users
func (h *AdminHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.catalog.GetUsers()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(users)
}

// PATCH /api/admin/users/:id/ban
func (h *AdminHandler) BanUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "User not found"})
	}

	var req banRequest
	if err := c.BodyParser(&req); err != nil || req.Banned == nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid banned value"})
	}

	user, err := h.catalog.SetUserBanned(id, *req.Banned)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user.ToResponse())
}

// POST /api/admin/users/:id/balance
func (h *AdminHandler) AddBalance(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "User not found"})
	}

	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid amount"})
	}

	balance, err := h.wallet.AdminCredit(id, req.Amount)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"balance": balance})
}

// GET /api/admin/users/:id/ledger
func (h *AdminHandler) UserLedger(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "User not found"})
	}
	summary, err := h.wallet.LedgerSummary(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}

// ---- products ----

// POST /api/admin/products
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}
	if err := h.catalog.CreateProduct(&product); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(product)
}

// PATCH /api/admin/products/:id
func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Product not found"})
	}

	var update service.ProductUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	product, err := h.catalog.UpdateProduct(id, &update)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(product)
}

// DELETE /api/admin/products/:id
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Product not found"})
	}
	if err := h.catalog.DeleteProduct(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// ---- purchases & transactions ----

// GET /api/admin/purchases
func (h *AdminHandler) GetPurchases(c *fiber.Ctx) error {
	purchases, err := h.catalog.GetAllPurchases()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch purchases"})
	}
	return c.JSON(purchases)
}

// GET /api/admin/purchases/pending
func (h *AdminHandler) GetPendingPurchases(c *fiber.Ctx) error {
	purchases, err := h.catalog.GetPendingPurchases()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch pending purchases"})
	}
	return c.JSON(purchases)
}

// PATCH /api/admin/purchases/:id/approve
func (h *AdminHandler) ApprovePurchase(c *fiber.Ctx) error {
	return h.reviewPurchase(c, model.PurchaseApproved)
}

// PATCH /api/admin/purchases/:id/reject
func (h *AdminHandler) RejectPurchase(c *fiber.Ctx) error {
	return h.reviewPurchase(c, model.PurchaseRejected)
}

func (h *AdminHandler) reviewPurchase(c *fiber.Ctx, status model.PurchaseStatus) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Purchase not found"})
	}
	purchase, err := h.catalog.ReviewPurchase(id, status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(purchase)
}

// GET /api/admin/transactions
func (h *AdminHandler) GetTransactions(c *fiber.Ctx) error {
	transactions, err := h.catalog.GetAllTransactions()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch transactions"})
	}
	return c.JSON(transactions)
}

// ---- slides ----

// GET /api/slides (public, active only) and GET /api/admin/slides (all)
func (h *AdminHandler) GetSlides(activeOnly bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slides, err := h.catalog.GetSlides(activeOnly)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch slides"})
		}
		return c.JSON(slides)
	}
}

// POST /api/admin/slides
func (h *AdminHandler) CreateSlide(c *fiber.Ctx) error {
	slide := model.Slide{IsActive: true}
	if err := c.BodyParser(&slide); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}
	if err := h.catalog.CreateSlide(&slide); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(slide)
}

// PATCH /api/admin/slides/:id
func (h *AdminHandler) UpdateSlide(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Slide not found"})
	}

	var update model.Slide
	if err := c.BodyParser(&update); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	slide, err := h.catalog.UpdateSlide(id, &update)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(slide)
}

// DELETE /api/admin/slides/:id
func (h *AdminHandler) DeleteSlide(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Slide not found"})
	}
	if err := h.catalog.DeleteSlide(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// ---- settings ----

// GET /api/settings (public)
func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.catalog.GetSettings()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(settings)
}

// PATCH /api/admin/settings
func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var req settingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}
	settings, err := h.catalog.UpdateSettings(req.DepositWorld)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(settings)
}

// ---- pending products ----

// POST /api/pending-products (authenticated, not admin)
func (h *AdminHandler) SubmitPendingProduct(c *fiber.Ctx) error {
	var req pendingProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	pending := model.PendingProduct{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
	}
	if err := h.catalog.SubmitPendingProduct(currentUserID(c), currentUserEmail(c), &pending); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(pending)
}

// GET /api/admin/pending-products
func (h *AdminHandler) GetPendingProducts(c *fiber.Ctx) error {
	pendings, err := h.catalog.GetPendingProducts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch pending products"})
	}
	return c.JSON(pendings)
}

// PATCH /api/admin/pending-products/:id/approve
func (h *AdminHandler) ApprovePendingProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Pending product not found"})
	}

	var req approvePendingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	product, err := h.catalog.ApprovePendingProduct(id, req.StockData, req.AdminNote)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(product)
}

// PATCH /api/admin/pending-products/:id/reject
func (h *AdminHandler) RejectPendingProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Pending product not found"})
	}

	var req approvePendingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	pending, err := h.catalog.RejectPendingProduct(id, req.AdminNote)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(pending)
}
