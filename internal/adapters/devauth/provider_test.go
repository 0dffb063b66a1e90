package devauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/framevault/studio-gate/internal/domain/auth"
	apperrors "github.com/framevault/studio-gate/internal/errors"
)

func TestNewProviderRequiresUserAndEmail(t *testing.T) {
	_, err := NewProvider(Config{Email: "dev@studio.test"})
	assert.Error(t, err)

	_, err = NewProvider(Config{UserID: "dev-1"})
	assert.Error(t, err)
}

func TestValidateAcceptsOnlyDevToken(t *testing.T) {
	p, err := NewProvider(Config{
		UserID:   "dev-1",
		Email:    "dev@studio.test",
		Role:     "admin",
		ClientID: "dev-studio",
	})
	require.NoError(t, err)

	identity, err := p.Validate(context.Background(), domainauth.Session{AccessToken: DevAccessToken})
	require.NoError(t, err)
	assert.Equal(t, "dev-1", identity.UserID)
	assert.Equal(t, domainauth.RoleAdmin, identity.Role)
	assert.Equal(t, "dev-studio", identity.ClientID)

	_, err = p.Validate(context.Background(), domainauth.Session{AccessToken: "anything-else"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnauthenticated))
}

func TestRefreshReissuesDevSession(t *testing.T) {
	p, err := NewProvider(Config{UserID: "dev-1", Email: "dev@studio.test"})
	require.NoError(t, err)

	sess, err := p.Refresh(context.Background(), domainauth.Session{RefreshToken: DevRefreshToken})
	require.NoError(t, err)
	assert.Equal(t, DevAccessToken, sess.AccessToken)
	assert.Equal(t, DevRefreshToken, sess.RefreshToken)

	_, err = p.Refresh(context.Background(), domainauth.Session{RefreshToken: "stale"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnauthenticated))
}
