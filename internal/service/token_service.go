package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	appErr "github.com/samims/notification-api/internal/errors"
	"github.com/samims/notification-api/internal/model"
)

type TokenService interface {
	GenerateToken(userID int64, role model.Role) (string, error)
	// ValidateToken returns the principal a token was issued for. Any
	// failure is reported as ErrInvalidToken.
	ValidateToken(tokenStr string) (model.Principal, error)
}

type Claims struct {
	UserID int64      `json:"user_id"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

type jwtService struct {
	secret     []byte
	expiryTime time.Duration
	issuer     string
	now        func() time.Time
}

func NewJWTService(secret string, expiry time.Duration, issuer string) TokenService {
	return &jwtService{secret: []byte(secret), expiryTime: expiry, issuer: issuer, now: time.Now}
}

func (s *jwtService) GenerateToken(userID int64, role model.Role) (string, error) {
	if !role.Valid() {
		return "", fmt.Errorf("cannot issue token for role %q", role)
	}
	now := s.now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiryTime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *jwtService) ValidateToken(tokenStr string) (model.Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return model.Principal{}, errors.Join(appErr.ErrInvalidToken, err)
	}
	if !token.Valid {
		return model.Principal{}, appErr.ErrInvalidToken
	}
	if !claims.Role.Valid() || claims.UserID <= 0 {
		return model.Principal{}, errors.Join(appErr.ErrInvalidToken, jwt.ErrTokenInvalidClaims)
	}
	return model.Principal{UserID: claims.UserID, Role: claims.Role}, nil
}
