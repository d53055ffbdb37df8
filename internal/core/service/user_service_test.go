package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lendly/rental-marketplace/internal/core/domain"
)

func TestUserService_FindByUsername_CaseInsensitiveInput(t *testing.T) {
	users := newStubUserRepo()
	users.add(&domain.User{ID: 1, Username: "lena"})
	svc := NewUserService(users)

	got, err := svc.FindByUsername(context.Background(), "LeNa")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 1 {
		t.Fatalf("id = %d, want 1", got.ID)
	}
}

func TestUserService_Delete_Missing(t *testing.T) {
	svc := NewUserService(newStubUserRepo())

	if err := svc.Delete(context.Background(), 404); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
