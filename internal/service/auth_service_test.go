package service

import (
	"net/http"
	"testing"
	"time"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	user, token, err := env.auth.Register("New@Example.com", "secret123")
	if err != nil {
		t.Fatal("Register failed:", err)
	}
	if token == "" {
		t.Error("Expected a session token")
	}
	if user.Email != "new@example.com" {
		t.Errorf("Expected lower-cased email, got %s", user.Email)
	}
	if user.IsAdmin {
		t.Error("Regular registration must not grant admin")
	}
	if !user.Balance.IsZero() {
		t.Errorf("Expected zero starting balance, got %s", user.Balance)
	}

	// The duplicate is rejected by the unique index, in any casing
	if _, _, err := env.auth.Register("new@example.com", "secret123"); statusOf(t, err) != http.StatusBadRequest {
		t.Errorf("Expected 400 on duplicate email, got %d", HTTPStatus(err))
	}
	dup, _, err := env.auth.Register("NEW@Example.com", "secret123")
	if statusOf(t, err) != http.StatusBadRequest {
		t.Errorf("Expected 400 on case-variant duplicate, got %d", HTTPStatus(err))
	}
	if err.Error() != "Email already registered" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
	if dup != nil {
		t.Error("Duplicate registration returned a user")
	}

	if _, _, err := env.auth.Login("new@example.com", "secret123"); err != nil {
		t.Errorf("Login failed: %v", err)
	}
	if _, _, err := env.auth.Login("new@example.com", "wrong"); statusOf(t, err) != http.StatusUnauthorized {
		t.Errorf("Expected 401 on bad password, got %d", HTTPStatus(err))
	}
	if _, _, err := env.auth.Login("nobody@example.com", "secret123"); statusOf(t, err) != http.StatusUnauthorized {
		t.Errorf("Expected 401 on unknown email, got %d", HTTPStatus(err))
	}
}

func TestRegisterAdminEmail(t *testing.T) {
	env := newTestEnv(t)

	user, _, err := env.auth.Register("Admin@GrowVend.com", "secret123")
	if err != nil {
		t.Fatal("Register failed:", err)
	}
	if !user.IsAdmin {
		t.Error("Configured admin email must register with admin rights")
	}
}

func TestLoginBannedUser(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "banned@example.com", "0.00", true)

	_, _, err := env.auth.Login("banned@example.com", "password123")
	if statusOf(t, err) != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", HTTPStatus(err))
	}
}

func TestPasswordResetFlow(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "forgetful@example.com", "0.00", false)

	if err := env.auth.ForgotPassword("forgetful@example.com"); err != nil {
		t.Fatal("ForgotPassword failed:", err)
	}

	stored, _ := env.userRepo.FindByID(user.ID)
	if stored.ResetToken == nil || stored.ResetTokenExpiry == nil {
		t.Fatal("Expected a reset token with expiry")
	}

	if err := env.auth.ResetPassword(*stored.ResetToken, "newpassword"); err != nil {
		t.Fatal("ResetPassword failed:", err)
	}

	if _, _, err := env.auth.Login("forgetful@example.com", "newpassword"); err != nil {
		t.Errorf("Login with new password failed: %v", err)
	}
	if _, _, err := env.auth.Login("forgetful@example.com", "password123"); err == nil {
		t.Error("Old password still works after reset")
	}

	// Token is single-use
	if err := env.auth.ResetPassword(*stored.ResetToken, "another"); statusOf(t, err) != http.StatusBadRequest {
		t.Errorf("Expected 400 on reused token, got %d", HTTPStatus(err))
	}
}

func TestPasswordResetExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "slow@example.com", "0.00", false)

	if err := env.userRepo.SetResetToken(user.ID, "stale-token", time.Now().Add(-time.Minute)); err != nil {
		t.Fatal(err)
	}

	err := env.auth.ResetPassword("stale-token", "newpassword")
	if statusOf(t, err) != http.StatusBadRequest {
		t.Errorf("Expected 400 on expired token, got %d", HTTPStatus(err))
	}
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	env := newTestEnv(t)
	err := env.auth.ForgotPassword("nobody@example.com")
	if statusOf(t, err) != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", HTTPStatus(err))
	}
}
