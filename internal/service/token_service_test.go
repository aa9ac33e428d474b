package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmedbr1/zapvent-courts/internal/models"
	appErrors "github.com/ahmedbr1/zapvent-courts/pkg/errors"
)

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims *models.JWTClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func studentClaims(issuer string, expiresIn time.Duration) *models.JWTClaims {
	now := time.Now()
	return &models.JWTClaims{
		UserID: testUserID,
		Role:   models.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   testUserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
	}
}

func TestValidateTokenAcceptsAccountServiceToken(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "secret", Issuer: "zapvent-auth"})
	token := signToken(t, "secret", jwt.SigningMethodHS256, studentClaims("zapvent-auth", time.Hour))

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.Role)
}

func TestValidateTokenRejections(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "secret", Issuer: "zapvent-auth"})

	cases := map[string]string{
		"wrong secret":  signToken(t, "other", jwt.SigningMethodHS256, studentClaims("zapvent-auth", time.Hour)),
		"wrong issuer":  signToken(t, "secret", jwt.SigningMethodHS256, studentClaims("someone-else", time.Hour)),
		"expired":       signToken(t, "secret", jwt.SigningMethodHS256, studentClaims("zapvent-auth", -time.Minute)),
		"wrong method":  signToken(t, "secret", jwt.SigningMethodHS512, studentClaims("zapvent-auth", time.Hour)),
		"not a jwt":     "garbage",
		"missing token": "",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(token)
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
		})
	}
}

func TestValidateTokenRequiresUserID(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "secret"})
	claims := studentClaims("", time.Hour)
	claims.UserID = ""

	_, err := svc.ValidateToken(signToken(t, "secret", jwt.SigningMethodHS256, claims))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
