package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/protomem/people-registry/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestIssuer(t *testing.T, secret string, now time.Time) *Issuer {
	t.Helper()

	issuer, err := NewIssuer(IssuerConfig{
		Secret:   secret,
		Issuer:   "people-registry",
		Audience: "people-registry-api",
		TTL:      time.Hour,
	})
	require.NoError(t, err)
	issuer.nowFunc = func() time.Time { return now }
	return issuer
}

func TestIssuer_RoundTrip(t *testing.T) {
	now := time.Now()
	issuer := newTestIssuer(t, testSecret, now)
	user := model.User{ID: uuid.New(), Username: "gerente", Role: model.RoleManager}

	token, err := issuer.Issue(user)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), token.ExpiresAt)

	claims, err := issuer.Verify(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "gerente", claims.Username)
	assert.Equal(t, model.RoleManager, claims.Role)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestIssuer_Expired(t *testing.T) {
	now := time.Now()
	issuer := newTestIssuer(t, testSecret, now)

	token, err := issuer.Issue(model.User{ID: uuid.New(), Username: "usuario", Role: model.RoleUser})
	require.NoError(t, err)

	issuer.nowFunc = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = issuer.Verify(token.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestIssuer_RejectsForeignTokens(t *testing.T) {
	now := time.Now()
	issuer := newTestIssuer(t, testSecret, now)
	other := newTestIssuer(t, strings.Repeat("x", MinSecretLength), now)

	token, err := other.Issue(model.User{ID: uuid.New(), Username: "usuario", Role: model.RoleUser})
	require.NoError(t, err)

	_, err = issuer.Verify(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewIssuer_ShortSecret(t *testing.T) {
	_, err := NewIssuer(IssuerConfig{Secret: "short"})
	assert.Error(t, err)
}
