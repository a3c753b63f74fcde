package jwt

import (
	"errors"
	"time"

	"medical-data-app/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const (
	AntiForgeryToken TokenType = "antiforgery"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidTokenType = errors.New("invalid token type")
)

// Claims binds a form token to the browser session it was issued for.
type Claims struct {
	SessionID string    `json:"session_id"`
	TokenType TokenType `json:"token_type"`
	TokenID   string    `json:"token_id"`
	jwt.RegisteredClaims
}

type JWTService struct {
	config config.AntiForgeryConfig
	now    func() time.Time
}

func NewJWTService(cfg config.AntiForgeryConfig) *JWTService {
	return &JWTService{config: cfg, now: time.Now}
}

// GenerateAntiForgeryToken signs a token for sessionID and returns it with
// its token id.
func (s *JWTService) GenerateAntiForgeryToken(sessionID string) (string, string, error) {
	now := s.now()
	tokenID := uuid.New().String()
	claims := Claims{
		SessionID: sessionID,
		TokenType: AntiForgeryToken,
		TokenID:   tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", "", err
	}

	return signedToken, tokenID, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != AntiForgeryToken {
		return nil, ErrInvalidTokenType
	}

	return claims, nil
}

func (s *JWTService) GetExpiry() time.Duration {
	return s.config.Expiry
}
