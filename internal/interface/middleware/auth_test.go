package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventapp/server/pkg/helpers"
)

func authRouter(jwt *helpers.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(jwt), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"uid":   c.GetString(CtxUserIDKey),
			"email": c.GetString(CtxUserEmailKey),
		})
	})
	return r
}

func TestAuthMissingToken(t *testing.T) {
	jwt := &helpers.JWTManager{Secret: []byte("s"), TokenTTL: time.Hour}
	r := authRouter(jwt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthInvalidToken(t *testing.T) {
	jwt := &helpers.JWTManager{Secret: []byte("s"), TokenTTL: time.Hour}
	r := authRouter(jwt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthExpiredToken(t *testing.T) {
	jwt := &helpers.JWTManager{Secret: []byte("s"), TokenTTL: -time.Minute}
	tok, _, err := jwt.Generate("u1", "u1@x.com")
	require.NoError(t, err)
	r := authRouter(jwt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthValidToken(t *testing.T) {
	jwt := &helpers.JWTManager{Secret: []byte("s"), TokenTTL: time.Hour}
	tok, _, err := jwt.Generate("u1", "u1@x.com")
	require.NoError(t, err)
	r := authRouter(jwt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"uid":"u1"`)
	assert.Contains(t, w.Body.String(), `"email":"u1@x.com"`)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer abc"))
	assert.Equal(t, "", bearerToken("Basic abc"))
	assert.Equal(t, "", bearerToken(""))
}
