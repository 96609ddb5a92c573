package handler

import (
	"vendshop/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ChatHandler struct {
	chat service.ChatService
}

func NewChatHandler(chat service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type chatMessageRequest struct {
	Message string `json:"message"`
}

// GetMessages returns the last 100 chat messages, oldest first
// GET /api/chat
func (h *ChatHandler) GetMessages(c *fiber.Ctx) error {
	messages, err := h.chat.GetMessages()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch messages"})
	}
	return c.JSON(messages)
}

// PostMessage appends a message to the global chat
// POST /api/chat
func (h *ChatHandler) PostMessage(c *fiber.Ctx) error {
	var req chatMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	message, err := h.chat.PostMessage(currentUserID(c), req.Message)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(message)
}
