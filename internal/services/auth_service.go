// internal/services/auth_service.go
package services

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/chukainspires/coachsite/internal/apperrors"
	"github.com/chukainspires/coachsite/internal/config"
	"github.com/chukainspires/coachsite/internal/utils"
)

// genericLoginError is returned for every failed login. Empty input and a
// wrong password read the same, so the response leaks nothing about which
// part was wrong.
const genericLoginError = "invalid username or password"

// AuthService is the operator access gate. Credentials live server-side: the
// username and a bcrypt hash come from configuration, and a successful login
// issues a signed, expiring session token.
type AuthService struct {
	username     string
	passwordHash []byte
	secret       []byte
	tokenTTL     time.Duration
}

// NewAuthService builds the gate from configuration. When only a plaintext
// ADMIN_PASSWORD is configured (development), it is hashed here at startup
// so the comparison path is identical either way.
func NewAuthService(cfg *config.Config, logger *utils.Logger) (*AuthService, error) {
	hash := []byte(cfg.AdminPasswordHash)
	if len(hash) == 0 {
		generated, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		hash = generated
		logger.Warn("ADMIN_PASSWORD_HASH not set, hashed ADMIN_PASSWORD at startup; set the hash in production", nil)
	}

	secret := []byte(cfg.AuthSecretKey)
	if len(secret) == 0 {
		// No configured secret: generate one. Sessions will not survive a
		// restart, which is acceptable for a single-operator panel.
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate auth secret: %w", err)
		}
		logger.Warn("AUTH_SECRET_KEY not set, using a random per-process secret; sessions reset on restart", nil)
	}

	return &AuthService{
		username:     cfg.AdminUsername,
		passwordHash: hash,
		secret:       secret,
		tokenTTL:     cfg.AuthTokenTTL,
	}, nil
}

// Authenticate checks the credentials and returns a session token. Any
// failure (empty input, unknown username, wrong password) yields the same
// generic unauthorized error.
func (s *AuthService) Authenticate(username, password string) (string, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return "", apperrors.NewUnauthorizedError(genericLoginError)
	}
	if username != s.username {
		// Burn a comparison anyway so the timing matches the wrong-password path.
		bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
		return "", apperrors.NewUnauthorizedError(genericLoginError)
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", apperrors.NewUnauthorizedError(genericLoginError)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": s.username,
		"sid": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// ValidateToken verifies a session token and returns its session id.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return "", apperrors.NewUnauthorizedError("invalid or expired session")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperrors.NewUnauthorizedError("invalid or expired session")
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", apperrors.NewUnauthorizedError("invalid or expired session")
	}
	return sid, nil
}
