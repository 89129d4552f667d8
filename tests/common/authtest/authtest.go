//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"examgate/internal/domain/identity"
	"examgate/internal/pkg/config"
	"examgate/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// IssueToken signs a bearer token directly with the test secret. There is
// no login endpoint: identity is established upstream by the portal that
// fronts this service.
func IssueToken(t *testing.T, cfg config.JWTConfig, applicantID uuid.UUID, role identity.Role) string {
	t.Helper()

	duration, err := time.ParseDuration(cfg.Duration)
	require.NoError(t, err)

	token, err := jwt.NewService(cfg.Secret, duration).GenerateToken(applicantID, role)
	require.NoError(t, err)
	return token
}

func IssueExpiredToken(t *testing.T, cfg config.JWTConfig, applicantID uuid.UUID, role identity.Role) string {
	t.Helper()

	token, err := jwt.NewService(cfg.Secret, -time.Minute).GenerateToken(applicantID, role)
	require.NoError(t, err)
	return token
}
