package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/lendly/rental-marketplace/internal/core/domain"
	"github.com/lendly/rental-marketplace/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	users     ports.UserRepository
	roles     ports.RoleRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, roles: roles, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates a user holding the given role names. Unknown role names
// are rejected.
func (s *AuthService) Register(ctx context.Context, username, password, email string, roleNames []string) (*domain.User, error) {
	if username == "" || password == "" || len(roleNames) == 0 {
		return nil, domain.ErrInvalidCredentials
	}

	var joins []domain.UserRole
	for _, name := range roleNames {
		role, err := s.roles.FindByName(ctx, strings.ToLower(name))
		if err != nil {
			return nil, err
		}
		joins = append(joins, domain.UserRole{RoleID: role.ID})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     strings.ToLower(username),
		PasswordHash: string(hash),
		PrimaryEmail: strings.ToLower(email),
		Roles:        joins,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.users.Create(ctx, user)
}

// Login verifies credentials and returns a signed HS256 token carrying the
// username and resolved role names.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	roleNames, err := s.roleNames(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(user, roleNames)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) roleNames(ctx context.Context, user *domain.User) ([]string, error) {
	names := make([]string, 0, len(user.Roles))
	for _, join := range user.Roles {
		role, err := s.roles.FindByID(ctx, join.RoleID)
		if err != nil {
			return nil, err
		}
		names = append(names, role.Name)
	}
	return names, nil
}

func (s *AuthService) generateToken(user *domain.User, roleNames []string) (string, error) {
	claims := jwt.MapClaims{
		"username": user.Username,
		"roles":    roleNames,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
