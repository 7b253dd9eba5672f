package httptransport

import (
	jwttoken "sift/internal/jwt_token"
	"sift/internal/platform/middleware"
)

// NewTokenValidator adapts the JWT service to the auth middleware's
// validator interface so transport wiring stays free of JWT details.
func NewTokenValidator(jwtService *jwttoken.JWTService) middleware.TokenValidator {
	return &jwtTokenValidator{jwtService: jwtService}
}

type jwtTokenValidator struct {
	jwtService *jwttoken.JWTService
}

func (v *jwtTokenValidator) ValidateToken(tokenString string) (*middleware.ServiceClaims, error) {
	claims, err := v.jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &middleware.ServiceClaims{
		ServiceID: claims.ServiceID,
		JTI:       claims.ID,
	}, nil
}
