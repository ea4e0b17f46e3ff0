package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sshusain313/causeconnect-sub000/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpiresIn = 3600
	return cfg
}

func TestGenerateOTPCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateOTPCode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestHashOTPCode(t *testing.T) {
	hash := HashOTPCode("123456")

	assert.Len(t, hash, 64)
	assert.Equal(t, hash, HashOTPCode("123456"))
	assert.NotEqual(t, hash, HashOTPCode("123457"))
	assert.NotEqual(t, "123456", hash)
}

func TestJWTRoundTrip(t *testing.T) {
	cfg := testConfig()

	token, err := GenerateJWT("user-1", "sam@example.com", "sponsor", cfg)
	require.NoError(t, err)

	claims, err := ValidateJWT(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["sub"])
	assert.Equal(t, "sam@example.com", claims["email"])
	assert.Equal(t, "sponsor", claims["role"])
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateJWT("user-1", "sam@example.com", "sponsor", testConfig())
	require.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "other-secret"
	_, err = ValidateJWT(token, other)
	assert.Error(t, err)
}
