package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"guestbook/internal/model"
	"guestbook/internal/repository"
)

var (
	ErrCredentialsRequired = errors.New("username and password are required")
	ErrUserExists          = errors.New("username already taken")
	ErrInvalidCredentials  = errors.New("invalid username or password")
)

const bcryptCost = 12

// AuthResult is returned after a successful register or login.
type AuthResult struct {
	User        model.User `json:"user"`
	AccessToken string     `json:"access_token"`
}

// AuthService handles user registration and login.
type AuthService interface {
	// Register creates a user with a bcrypt password hash and returns an access token.
	Register(ctx context.Context, username, password string) (*AuthResult, error)

	// Login verifies credentials and returns an access token.
	// Unknown user and wrong password produce the same error.
	Login(ctx context.Context, username, password string) (*AuthResult, error)
}

type authService struct {
	users     repository.UserRepository
	jwtSecret []byte
	tokenExp  time.Duration
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UserRepository, jwtSecret string, expiryMinutes int) AuthService {
	if expiryMinutes <= 0 {
		expiryMinutes = 60
	}
	return &authService{
		users:     users,
		jwtSecret: []byte(jwtSecret),
		tokenExp:  time.Duration(expiryMinutes) * time.Minute,
	}
}

func (s *authService) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.users.Create(ctx, u)
	if err != nil {
		// The unique index on username is the source of truth for duplicates.
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, ErrUserExists
		}
		return nil, err
	}

	token, err := s.generateToken(stored)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: *stored, AccessToken: token}, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(u)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: *u, AccessToken: token}, nil
}

func (s *authService) generateToken(u *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      u.ID,
		"username": u.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenExp).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
