package service

import (
	"context"
	"errors"
	"strings"

	"github.com/lendly/rental-marketplace/internal/core/domain"
	"github.com/lendly/rental-marketplace/internal/core/ports"
)

// RoleService exposes role CRUD and startup seeding.
type RoleService struct {
	roles ports.RoleRepository
}

func NewRoleService(roles ports.RoleRepository) *RoleService {
	return &RoleService{roles: roles}
}

func (s *RoleService) FindByID(ctx context.Context, id int64) (*domain.Role, error) {
	return s.roles.FindByID(ctx, id)
}

func (s *RoleService) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	return s.roles.FindByName(ctx, strings.ToLower(name))
}

func (s *RoleService) FindAll(ctx context.Context) ([]*domain.Role, error) {
	return s.roles.FindAll(ctx)
}

func (s *RoleService) Save(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	role.Name = strings.ToLower(role.Name)
	return s.roles.Save(ctx, role)
}

func (s *RoleService) Delete(ctx context.Context, id int64) error {
	if _, err := s.roles.FindByID(ctx, id); err != nil {
		return err
	}
	return s.roles.Delete(ctx, id)
}

// SeedCanonical ensures the three canonical roles exist. Roles already
// present are left untouched.
func (s *RoleService) SeedCanonical(ctx context.Context) error {
	for _, name := range []string{domain.RoleAdmin, domain.RoleLender, domain.RoleUser} {
		_, err := s.roles.FindByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrRoleNotFound) {
			return err
		}
		if _, err := s.roles.Save(ctx, &domain.Role{Name: name}); err != nil {
			return err
		}
	}
	return nil
}
