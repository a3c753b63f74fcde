package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medical-data-app/pkg/jwt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var (
	ErrAntiForgeryMissing = errors.New("anti-forgery token is missing")
	ErrAntiForgeryInvalid = errors.New("anti-forgery token is invalid or expired")
	ErrAntiForgerySession = errors.New("anti-forgery token belongs to another session")
	ErrAntiForgeryRevoked = errors.New("anti-forgery token is unknown")
)

const (
	RedisAntiForgeryKeyPrefix = "antiforgery:"

	// Timeout for individual Redis operations
	antiForgeryRedisTimeout = 3 * time.Second
)

// AntiForgeryService issues the tokens embedded in form views and checks
// them when a form is posted back. A token is valid for the session it was
// issued to until it expires.
type AntiForgeryService interface {
	Issue(ctx context.Context, sessionID string) (string, error)
	Validate(ctx context.Context, sessionID, token string) error
}

type antiForgeryService struct {
	jwtService  *jwt.JWTService
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewAntiForgeryService(jwtService *jwt.JWTService, redisClient *redis.Client, log *logrus.Logger) AntiForgeryService {
	return &antiForgeryService{
		jwtService:  jwtService,
		redisClient: redisClient,
		log:         log,
	}
}

func antiForgeryKey(sessionID, tokenID string) string {
	return fmt.Sprintf("%s%s:%s", RedisAntiForgeryKeyPrefix, sessionID, tokenID)
}

func (s *antiForgeryService) Issue(ctx context.Context, sessionID string) (string, error) {
	token, tokenID, err := s.jwtService.GenerateAntiForgeryToken(sessionID)
	if err != nil {
		s.log.Warnf("Failed to sign anti-forgery token: %+v", err)
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, antiForgeryRedisTimeout)
	defer cancel()

	if err := s.redisClient.Set(ctx, antiForgeryKey(sessionID, tokenID), "valid", s.jwtService.GetExpiry()).Err(); err != nil {
		s.log.Warnf("Failed to store anti-forgery token: %+v", err)
		return "", err
	}

	return token, nil
}

func (s *antiForgeryService) Validate(ctx context.Context, sessionID, token string) error {
	if token == "" {
		return ErrAntiForgeryMissing
	}

	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAntiForgeryInvalid, err)
	}
	if claims.SessionID != sessionID {
		return ErrAntiForgerySession
	}

	ctx, cancel := context.WithTimeout(ctx, antiForgeryRedisTimeout)
	defer cancel()

	exists, err := s.redisClient.Exists(ctx, antiForgeryKey(sessionID, claims.TokenID)).Result()
	if err != nil {
		s.log.Warnf("Failed to look up anti-forgery token: %+v", err)
		return err
	}
	if exists == 0 {
		return ErrAntiForgeryRevoked
	}

	return nil
}
