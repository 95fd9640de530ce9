package processor

import (
	"affiliate-ledger/internal/auth"
	"affiliate-ledger/internal/observability"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrExpiredToken    = errors.New("token expired")
	ErrInvalidJWTToken = errors.New("invalid jwt token")
	ErrParseJWTToken   = errors.New("failed to parse jwt token")
	ErrInvalidRole     = errors.New("invalid role")
	ErrFailedSignIn    = errors.New("failed to sign token")
)

const (
	tokenIssuer     = "affiliate-ledger"
	defaultTokenTTL = 24 * time.Hour
)

// Claims are the registered claims plus the caller's role
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AuthProcessor struct {
	jwtSecret string
	now       func() time.Time
	logger    *observability.Logger
}

func New(jwtSecret string, logger *observability.Logger) AuthProcessor {
	return AuthProcessor{
		jwtSecret: jwtSecret,
		now:       time.Now,
		logger:    logger,
	}
}

// IssueToken signs a token for userID with role. A zero ttl means 24 hours.
func (p *AuthProcessor) IssueToken(ctx context.Context, userID uuid.UUID, role string, ttl time.Duration) (string, error) {
	if !auth.ValidRole(role) {
		return "", ErrInvalidRole
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	now := p.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenIssuer},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(p.jwtSecret))
	if err != nil {
		p.logger.Error(ctx, "failed to sign token", err)
		return "", ErrFailedSignIn
	}
	return tokenString, nil
}

// ValidateJWTToken verifies the signature, expiry and audience, and returns the caller
func (p *AuthProcessor) ValidateJWTToken(ctx context.Context, token string) (auth.Actor, error) {
	var claims Claims
	t, err := jwt.ParseWithClaims(token, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(p.jwtSecret), nil
	},
		jwt.WithAudience(tokenIssuer),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.Actor{}, ErrExpiredToken
		}
		p.logger.WarnWithError(ctx, "failed to parse token", err)
		return auth.Actor{}, ErrParseJWTToken
	}
	if !t.Valid {
		return auth.Actor{}, ErrInvalidJWTToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return auth.Actor{}, ErrInvalidJWTToken
	}
	if !auth.ValidRole(claims.Role) {
		return auth.Actor{}, ErrInvalidRole
	}
	return auth.Actor{UserID: userID, Role: claims.Role}, nil
}
