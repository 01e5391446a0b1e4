package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpiry(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"7d", 7 * 24 * time.Hour},
		{"1d", 24 * time.Hour},
		{"36h", 36 * time.Hour},
		{"15m", 15 * time.Minute},
	}
	for _, tc := range cases {
		got, err := parseExpiry(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := parseExpiry("xd")
	assert.Error(t, err)
}

func TestJWTExpiresInFallsBackOnGarbage(t *testing.T) {
	Set("JWT_EXPIRES_IN", "soon")
	defer Unset("JWT_EXPIRES_IN")

	assert.Equal(t, 7*24*time.Hour, JWTExpiresIn())
}

func TestSetOverridesDefaults(t *testing.T) {
	Set("APP_ENV", "production")
	defer Unset("APP_ENV")

	assert.True(t, IsProduction())
	Set("APP_ENV", "local")
	assert.False(t, IsProduction())
}

func TestAllowAdminSignupDefaultsOff(t *testing.T) {
	assert.False(t, AllowAdminSignup())

	Set("ALLOW_ADMIN_SIGNUP", "true")
	defer Unset("ALLOW_ADMIN_SIGNUP")
	assert.True(t, AllowAdminSignup())
}

func TestValidateRequiresSecretInProduction(t *testing.T) {
	Set("APP_ENV", "production")
	defer Unset("APP_ENV")

	assert.Error(t, Validate())

	Set("JWT_SECRET", "")
	assert.Error(t, Validate())

	Set("JWT_SECRET", "a-private-signing-key")
	defer Unset("JWT_SECRET")
	assert.NoError(t, Validate())

	Set("APP_ENV", "local")
	Set("JWT_SECRET", defaultJWTSecret)
	assert.NoError(t, Validate())
}

func TestTrustedProxiesDefaultsEmpty(t *testing.T) {
	assert.Empty(t, TrustedProxies())

	Set("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1")
	defer Unset("TRUSTED_PROXIES")
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, TrustedProxies())
}

func TestCORSOriginsSplitsList(t *testing.T) {
	Set("CORS_ORIGINS", " http://a.test , ,http://b.test")
	defer Unset("CORS_ORIGINS")

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, CORSOrigins())
}

func TestMergeSources(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "app.json")
	envPath := filepath.Join(dir, ".env")

	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"app_port":"7000","bcrypt_cost":12}`), 0o644))
	require.NoError(t, os.WriteFile(envPath, []byte("APP_PORT=7100\n# comment\nJWT_SECRET=\"s3cret\"\n"), 0o644))

	out := defaultValues()
	require.NoError(t, mergeJSONConfig(jsonPath, out))
	assert.Equal(t, "7000", out["APP_PORT"])
	assert.Equal(t, "12", out["BCRYPT_COST"])

	require.NoError(t, mergeDotEnv(envPath, out))
	assert.Equal(t, "7100", out["APP_PORT"])
	assert.Equal(t, "s3cret", out["JWT_SECRET"])

	err := mergeDotEnv(filepath.Join(dir, "missing.env"), out)
	assert.True(t, os.IsNotExist(err))
}
