package service

import (
	"strings"
	"time"

	"github.com/rarebeats-player/internal/config"
	"github.com/rarebeats-player/internal/constants"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// NonceService 嵌入页防伪令牌（HS256 JWT，audience 固定）
type NonceService struct {
	secret   []byte
	ttl      time.Duration
	audience string
	now      func() time.Time
}

// NewNonceService 创建令牌服务
func NewNonceService(cfg config.NonceConfig) *NonceService {
	ttlHours := cfg.TTLHours
	if ttlHours <= 0 {
		ttlHours = 12
	}
	return &NonceService{
		secret:   []byte(cfg.Secret),
		ttl:      time.Duration(ttlHours) * time.Hour,
		audience: constants.DefaultNonceAudience,
		now:      time.Now,
	}
}

// Issue 签发令牌
func (s *NonceService) Issue() (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Audience:  jwt.ClaimStrings{s.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify 校验令牌，失败统一返回 ErrInvalidNonce
func (s *NonceService) Verify(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidNonce
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	parsed, err := parser.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidNonce
	}
	return nil
}
