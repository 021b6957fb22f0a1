package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ptit-edu/portal-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStaffDisabled      = errors.New("staff login is not configured")
)

// TokenTypeStaff marks tokens issued to admission staff.
const TokenTypeStaff = "staff"

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
	Username  string `json:"username"`
}

// AuthService authenticates the admission staff account.
type AuthService struct {
	cfg *config.Config
	now func() time.Time
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg, now: time.Now}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// Login checks the staff credentials and returns a signed token.
func (s *AuthService) Login(username, password string) (string, error) {
	if s.cfg.StaffPasswordHash == "" {
		return "", ErrStaffDisabled
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.StaffUsername)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.StaffPasswordHash), []byte(password))
	if !userOK || passErr != nil {
		return "", ErrInvalidCredentials
	}
	return s.GenerateToken(username)
}

// GenerateToken signs a staff token valid for the configured expiry.
func (s *AuthService) GenerateToken(username string) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		TokenType: TokenTypeStaff,
		Username:  username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.TokenType != TokenTypeStaff {
		return nil, errors.New("not a staff token")
	}
	return claims, nil
}
