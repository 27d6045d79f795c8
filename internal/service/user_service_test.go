package service

import (
	"context"
	"testing"

	"ecycle/internal/model"
)

func TestRegisterDefaultsToRequesterRole(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo)

	user, err := svc.Register(context.Background(), RegisterUserRequest{
		Username: "dana",
		Email:    "dana@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Role != model.RoleRequester {
		t.Errorf("role = %q, want %q", user.Role, model.RoleRequester)
	}

	stored, err := repo.GetByEmail(context.Background(), "dana@example.com")
	if err != nil {
		t.Fatalf("registered user not stored: %v", err)
	}
	if stored.Password == "secret123" {
		t.Error("password must be hashed before storage")
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo)

	req := RegisterUserRequest{Username: "dana", Email: "dana@example.com", Password: "secret123"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), req); err == nil {
		t.Error("duplicate registration must fail")
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := NewUserService(newMockUserRepo())

	_, err := svc.Register(context.Background(), RegisterUserRequest{
		Username: "dana",
		Email:    "dana@example.com",
		Password: "secret123",
		Role:     "superuser",
	})
	if err == nil {
		t.Error("unknown role must be rejected")
	}
}

func TestLoginAndRefreshRotation(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo)

	if _, err := svc.Register(context.Background(), RegisterUserRequest{
		Username: "dana",
		Email:    "dana@example.com",
		Password: "secret123",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tokens, err := svc.Login(context.Background(), LoginUserRequest{Email: "dana@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if tokens.Token == "" || tokens.RefreshToken == "" {
		t.Fatal("Login must return both tokens")
	}

	rotated, err := svc.RefreshToken(context.Background(), RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	if err != nil {
		t.Fatalf("RefreshToken failed: %v", err)
	}
	if rotated.RefreshToken == tokens.RefreshToken {
		t.Error("refresh must rotate the token")
	}

	// The old refresh token was invalidated by the rotation
	if _, err := svc.RefreshToken(context.Background(), RefreshTokenRequest{RefreshToken: tokens.RefreshToken}); err == nil {
		t.Error("a rotated-out refresh token must be rejected")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo)

	if _, err := svc.Register(context.Background(), RegisterUserRequest{
		Username: "dana",
		Email:    "dana@example.com",
		Password: "secret123",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), LoginUserRequest{Email: "dana@example.com", Password: "wrong"}); err == nil {
		t.Error("wrong password must fail")
	}
}

func TestListAgents(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo)

	_ = repo.Create(context.Background(), &model.User{Username: "carrier", Email: "c@e.com", Role: model.RoleAgent})
	_ = repo.Create(context.Background(), &model.User{Username: "ops", Email: "o@e.com", Role: model.RoleAdmin})

	agents, err := svc.ListAgents(context.Background())
	if err != nil {
		t.Fatalf("ListAgents failed: %v", err)
	}
	if len(agents) != 1 || agents[0].Username != "carrier" {
		t.Errorf("agents = %+v, want only carrier", agents)
	}
}
