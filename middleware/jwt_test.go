package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finance-guru/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret-key"

func setupJWT(t *testing.T) {
	t.Helper()
	InitJWT(&config.Config{JWT: config.JWTConfig{Secret: testSecret}})
}

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuth())
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, "%d:%s", GetCurrentUserID(c), GetCurrentUsername(c))
	})
	return r
}

func callWithAuth(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateAndParseToken(t *testing.T) {
	setupJWT(t)

	token, err := GenerateToken(7, "saver", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "saver", claims.Username)
	assert.Equal(t, "finance-guru", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseToken_Rejects(t *testing.T) {
	setupJWT(t)

	expired, err := GenerateToken(7, "saver", -time.Minute)
	require.NoError(t, err)

	otherKey := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 7})
	forged, err := otherKey.SignedString([]byte("someone-else"))
	require.NoError(t, err)

	// HS512 签名即使密钥正确也拒绝
	wrongAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: 7}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	cases := map[string]string{
		"empty":     "",
		"garbage":   "not.a.jwt",
		"expired":   expired,
		"forged":    forged,
		"wrong alg": wrongAlg,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseToken(token)
			assert.Error(t, err)
		})
	}
}

func TestJWTAuth(t *testing.T) {
	setupJWT(t)
	r := protectedRouter()

	token, err := GenerateToken(42, "user42", time.Hour)
	require.NoError(t, err)

	w := callWithAuth(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42:user42", w.Body.String())

	for _, header := range []string{"", "Basic xyz", "Bearer ", "Bearer broken"} {
		w := callWithAuth(r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		assert.Contains(t, w.Body.String(), `"code":401`)
	}
}

func TestGetCurrentUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, uint(0), GetCurrentUserID(c))
	assert.Equal(t, "", GetCurrentUsername(c))

	// 类型不对时视为未登录
	c.Set(ContextUserIDKey, 99)
	assert.Equal(t, uint(0), GetCurrentUserID(c))

	c.Set(ContextUserIDKey, uint(99))
	assert.Equal(t, uint(99), GetCurrentUserID(c))
}
