package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const accessTokenType = "access"

type accessClaims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	Type  string      `json:"typ"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 access tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *TokenService) Issue(user domain.User) (string, error) {
	now := s.now()
	claims := accessClaims{
		Email: user.Email,
		Role:  user.Role,
		Type:  accessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("token.SignedString: %w", err)
	}
	return signed, nil
}

// Parse returns domain.ErrUnauthorized for any token that is malformed, expired or not an access token.
func (s *TokenService) Parse(raw string) (domain.Principal, error) {
	var claims accessClaims

	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.Principal{}, errors.Join(domain.ErrUnauthorized, err)
	}

	if claims.Type != accessTokenType {
		return domain.Principal{}, domain.ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Principal{}, domain.ErrUnauthorized
	}

	return domain.Principal{UserID: userID, Email: claims.Email, Role: claims.Role}, nil
}
