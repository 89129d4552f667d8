package usecase

import (
	"examgate/internal/domain/identity"
	"examgate/internal/pkg/errs"
	"examgate/internal/pkg/jwt"

	"github.com/google/uuid"
)

var ErrUnknownRole = errs.New("unknown role in token")

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, identity.Role, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (uuid.UUID, identity.Role, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", err
	}

	role := identity.Role(claims.Role)
	if !role.IsValid() {
		return uuid.Nil, "", ErrUnknownRole
	}

	return claims.ApplicantID, role, nil
}
