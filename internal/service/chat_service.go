package service

import (
	"sync"
	"time"

	"vendshop/internal/model"
	"vendshop/internal/repository"
	"vendshop/internal/ws"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const chatHistoryLimit = 100

type ChatService interface {
	GetMessages() ([]model.ChatMessage, error)
	PostMessage(userID uuid.UUID, message string) (*model.ChatMessage, error)
}

type chatService struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
	wsHub    *ws.Hub
	log      *zap.Logger

	mu       sync.Mutex
	limiters map[uuid.UUID]*rate.Limiter
}

func NewChatService(cRepo repository.ChatRepository, uRepo repository.UserRepository, hub *ws.Hub, log *zap.Logger) ChatService {
	return &chatService{
		chatRepo: cRepo,
		userRepo: uRepo,
		wsHub:    hub,
		log:      log,
		limiters: make(map[uuid.UUID]*rate.Limiter),
	}
}

func (s *chatService) GetMessages() ([]model.ChatMessage, error) {
	return s.chatRepo.FindRecent(chatHistoryLimit)
}

// limiter allows a burst of 3 messages, refilling one every two seconds
func (s *chatService) limiter(userID uuid.UUID) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.limiters[userID]
	if !ok {
		l = rate.NewLimiter(rate.Every(2*time.Second), 3)
		s.limiters[userID] = l
	}
	return l
}

func (s *chatService) PostMessage(userID uuid.UUID, message string) (*model.ChatMessage, error) {
	if len(message) == 0 || len(message) > 500 {
		return nil, badRequest("Message must be between 1 and 500 characters")
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("User not found")
		}
		return nil, internal("Failed to send message")
	}
	if user.IsBanned {
		return nil, forbidden("You are banned from chatting")
	}

	if !s.limiter(userID).Allow() {
		return nil, tooManyRequests("You are sending messages too quickly")
	}

	chatMessage := &model.ChatMessage{
		UserID:    user.ID,
		UserEmail: user.Email,
		Message:   message,
	}
	if err := s.chatRepo.Create(chatMessage); err != nil {
		s.log.Error("chat message create failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, internal("Failed to send message")
	}

	s.wsHub.BroadcastEvent("chat_message", map[string]interface{}{
		"id":         chatMessage.ID,
		"user_id":    chatMessage.UserID,
		"user_email": chatMessage.UserEmail,
		"message":    chatMessage.Message,
		"created_at": chatMessage.CreatedAt,
	})

	return chatMessage, nil
}
