package service

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestChatPostAndHistory(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "chatty@example.com", "0.00", false)

	for i := 1; i <= 3; i++ {
		if _, err := env.chat.PostMessage(user.ID, fmt.Sprintf("hello %d", i)); err != nil {
			t.Fatal("PostMessage failed:", err)
		}
	}

	messages, err := env.chat.GetMessages()
	if err != nil {
		t.Fatal("GetMessages failed:", err)
	}
	if len(messages) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(messages))
	}
	// Chronological order, email snapshotted
	if messages[0].Message != "hello 1" || messages[2].Message != "hello 3" {
		t.Errorf("Messages out of order: %v", messages)
	}
	if messages[0].UserEmail != "chatty@example.com" {
		t.Errorf("Expected snapshotted email, got %s", messages[0].UserEmail)
	}
}

func TestChatBannedUser(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "banned@example.com", "0.00", true)

	_, err := env.chat.PostMessage(user.ID, "let me in")
	if statusOf(t, err) != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", HTTPStatus(err))
	}
}

func TestChatMessageLength(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "user@example.com", "0.00", false)

	if _, err := env.chat.PostMessage(user.ID, ""); statusOf(t, err) != http.StatusBadRequest {
		t.Errorf("Expected 400 on empty message, got %d", HTTPStatus(err))
	}
	if _, err := env.chat.PostMessage(user.ID, strings.Repeat("x", 501)); statusOf(t, err) != http.StatusBadRequest {
		t.Errorf("Expected 400 on oversized message, got %d", HTTPStatus(err))
	}
}

func TestChatRateLimit(t *testing.T) {
	env := newTestEnv(t)
	fast := env.createUser(t, "spammer@example.com", "0.00", false)
	calm := env.createUser(t, "calm@example.com", "0.00", false)

	// Burst of 3 is allowed, the 4th is throttled
	for i := 0; i < 3; i++ {
		if _, err := env.chat.PostMessage(fast.ID, "spam"); err != nil {
			t.Fatalf("Message %d unexpectedly throttled: %v", i+1, err)
		}
	}
	_, err := env.chat.PostMessage(fast.ID, "spam")
	if statusOf(t, err) != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d", HTTPStatus(err))
	}

	// The limiter is per user
	if _, err := env.chat.PostMessage(calm.ID, "hi"); err != nil {
		t.Errorf("Other user unexpectedly throttled: %v", err)
	}
}
