package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "sift/pkg/domain-errors"
)

// Issuer and audience shared by the server and the tokengen tool. Tokens
// minted with different values are rejected at validation time.
const (
	DefaultIssuer   = "sift"
	DefaultAudience = "sift-services"
)

// ServiceTokenClaims represents the JWT claims for service-to-service tokens.
// The subject carries the calling service's identifier.
type ServiceTokenClaims struct {
	ServiceID string `json:"service_id"`
	Env       string `json:"env,omitempty"`
	jwt.RegisteredClaims
}

// JWTService handles service token creation and validation.
type JWTService struct {
	signingKey []byte
	issuer     string
	audience   string
	tokenTTL   time.Duration
	env        string
}

func NewJWTService(signingKey, issuer, audience string, tokenTTL time.Duration) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
		tokenTTL:   tokenTTL,
	}
}

// WithEnv tags minted tokens with an environment claim.
func (s *JWTService) WithEnv(env string) *JWTService {
	s.env = env
	return s
}

// GenerateServiceToken mints a signed service token for the given service ID.
// Returns the token string plus the JTI assigned to it.
func (s *JWTService) GenerateServiceToken(serviceID string) (string, string, error) {
	if serviceID == "" {
		return "", "", dErrors.New(dErrors.CodeValidation, "service id is required")
	}

	now := time.Now()
	jti := uuid.New().String()

	claims := ServiceTokenClaims{
		ServiceID: serviceID,
		Env:       s.env,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   serviceID,
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", "", dErrors.Wrap(err, dErrors.CodeInternal, "could not sign token")
	}
	return signed, jti, nil
}

// ValidateToken parses and validates a service token string.
// Signature, expiry, issuer, and audience are all enforced.
func (s *JWTService) ValidateToken(tokenString string) (*ServiceTokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ServiceTokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.signingKey, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := token.Claims.(*ServiceTokenClaims)
	if !ok || !token.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	if claims.ServiceID == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token missing service id")
	}
	return claims, nil
}
