package handler

import (
	"vendshop/internal/service"
	"vendshop/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// Register creates an account and returns it with a session token
// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"message": "A valid email and a password of at least 6 characters are required"})
	}

	user, token, err := h.authService.Register(req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"user": user.ToResponse(), "token": token})
}

// Login authenticates an account
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"message": "Email and password are required"})
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"user": user.ToResponse(), "token": token})
}

// Me returns the authenticated account with a fresh balance
// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.authService.GetUser(currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user.ToResponse())
}

// ForgotPassword issues a reset token and mails the link
// POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"message": "A valid email is required"})
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password reset link sent to your email"})
}

// ResetPassword consumes a reset token and sets the new password
// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Token and a password of at least 6 characters are required"})
	}

	if err := h.authService.ResetPassword(req.Token, req.Password); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password reset successfully"})
}
