package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService([]byte("test-jwt-secret"), 15*time.Minute, 7*24*time.Hour)
}

func TestIssueAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	id := Identity{ID: 42, Email: "a@x.com", Role: "admin", Username: "alice"}

	token, exp, err := svc.IssueAccessToken(id)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 2*time.Second)

	claims, err := svc.ParseAccessClaims(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, DefaultIssuer, claims.Issuer)
	require.Len(t, claims.Audience, 1)
	assert.Equal(t, DefaultAudience, claims.Audience[0])
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
}

func TestIssueRefreshToken_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestService()

	token, exp, err := svc.IssueRefreshToken(7)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, 2*time.Second)

	claims, err := svc.ParseRefreshClaims(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, RefreshTokenType, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
}

func TestParseAccessClaims_Expired(t *testing.T) {
	t.Parallel()

	svc := &Service{
		Secret:     []byte("test-jwt-secret"),
		Issuer:     DefaultIssuer,
		Audience:   DefaultAudience,
		AccessTTL:  -time.Minute,
		RefreshTTL: time.Hour,
	}

	token, _, err := svc.IssueAccessToken(Identity{ID: 1})
	require.NoError(t, err)

	_, err = svc.ParseAccessClaims(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseAccessClaims_NotActive(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	claims := AccessClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    svc.Issuer,
			Audience:  jwt.ClaimStrings{svc.Audience},
			NotBefore: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.Secret)
	require.NoError(t, err)

	_, err = svc.ParseAccessClaims(token)
	assert.ErrorIs(t, err, ErrTokenNotActive)
}

func TestParseAccessClaims_Malformed(t *testing.T) {
	t.Parallel()

	svc := newTestService()

	_, err := svc.ParseAccessClaims("not-a-token")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestParseAccessClaims_WrongSecret(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	other := NewService([]byte("another-secret"), time.Minute, time.Hour)

	token, _, err := other.IssueAccessToken(Identity{ID: 1})
	require.NoError(t, err)

	_, err = svc.ParseAccessClaims(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestParseAccessClaims_RejectsUnexpectedAlgorithm(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	claims := AccessClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    svc.Issuer,
			Audience:  jwt.ClaimStrings{svc.Audience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(svc.Secret)
	require.NoError(t, err)

	_, err = svc.ParseAccessClaims(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestParseAccessClaims_RejectsForeignIssuer(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	foreign := &Service{
		Secret:     svc.Secret,
		Issuer:     "some-other-service",
		Audience:   "some-other-audience",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	}

	token, _, err := foreign.IssueAccessToken(Identity{ID: 1})
	require.NoError(t, err)

	_, err = svc.ParseAccessClaims(token)
	assert.Error(t, err)
}
