package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/config"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/domain"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Request / Response types
// ──────────────────────────────────────────────────────────────────────────────

// RegisterRequest contains the fields required to create a new account.
type RegisterRequest struct {
	Email    string          `json:"email"    binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8"`
	Role     domain.UserRole `json:"role"     binding:"required,oneof=CREATOR BRAND FAN"`
}

// RegisterResponse is returned on successful registration.
type RegisterResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// TokenPair holds both tokens returned by generateTokenPair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// ──────────────────────────────────────────────────────────────────────────────
// JWT claims
// ──────────────────────────────────────────────────────────────────────────────

// AppClaims extends jwt.RegisteredClaims with application-specific fields.
type AppClaims struct {
	jwt.RegisteredClaims
	Role      string `json:"role"`
	TokenType string `json:"type"` // "access" or "refresh"
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthService
// ──────────────────────────────────────────────────────────────────────────────

// AuthService handles account registration, login, and JWT token operations.
type AuthService struct {
	userRepo *repository.UserRepository
	cfg      *config.Config
}

// NewAuthService creates an AuthService.
func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, cfg: cfg}
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

// Register creates a new account with the requested marketplace role.
// Creator and brand profiles are created separately once the account exists,
// so registration is a single insert.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	role := domain.UserRole(strings.ToUpper(string(req.Role)))
	if !role.IsValid() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("auth_service.Register: hash: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err = s.userRepo.Create(ctx, user); err != nil {
		return nil, err // ErrEmailTaken surfaces unchanged
	}

	pair, err := s.generateTokenPair(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("auth_service.Register: tokens: %w", err)
	}

	return &RegisterResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

// Login validates credentials and returns a fresh token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		// Map not-found to a generic credential error to prevent user enumeration.
		return nil, domain.ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.generateTokenPair(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("auth_service.Login: tokens: %w", err)
	}

	return &LoginResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// RefreshToken
// ──────────────────────────────────────────────────────────────────────────────

// RefreshToken validates a refresh token and issues a new token pair.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return "", "", domain.ErrTokenInvalid
	}
	if claims.TokenType != "refresh" {
		return "", "", domain.ErrTokenInvalid
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return "", "", domain.ErrTokenInvalid
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", "", domain.ErrUserNotFound
	}

	pair, err := s.generateTokenPair(user.ID, string(user.Role))
	if err != nil {
		return "", "", fmt.Errorf("auth_service.RefreshToken: %w", err)
	}
	return pair.AccessToken, pair.RefreshToken, nil
}

// GetUser returns the account for the /api/me endpoint.
func (s *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("auth_service.GetUser: %w", err)
	}
	return user, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Token helpers
// ──────────────────────────────────────────────────────────────────────────────

// generateTokenPair creates a signed access token (AccessTTL) and a signed
// refresh token (RefreshTTL) for the given user.
func (s *AuthService) generateTokenPair(userID uuid.UUID, role string) (TokenPair, error) {
	now := time.Now().UTC()
	secret := []byte(s.cfg.JWT.AccessSecret) // same secret for both; type claim differentiates

	accessClaims := AppClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWT.AccessTTL)),
		},
		Role:      role,
		TokenType: "access",
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(secret)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}

	refreshClaims := AppClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWT.RefreshTTL)),
		},
		TokenType: "refresh",
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(secret)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// parseToken validates the token signature, algorithm, and expiry.
func (s *AuthService) parseToken(tokenString string) (*AppClaims, error) {
	secret := []byte(s.cfg.JWT.AccessSecret)
	tok, err := jwt.ParseWithClaims(tokenString, &AppClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, domain.ErrTokenInvalid
	}
	claims, ok := tok.Claims.(*AppClaims)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

// ParseAccessToken is exported for use by the JWT middleware.
func (s *AuthService) ParseAccessToken(tokenString string) (*AppClaims, error) {
	return s.parseToken(tokenString)
}
