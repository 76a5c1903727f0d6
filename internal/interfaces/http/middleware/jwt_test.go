package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/auth"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/config"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestValidator() *auth.TokenValidator {
	return auth.NewTokenValidator(config.JWTConfig{
		Secret: "test-secret-key-at-least-32-chars",
		Issuer: "test-issuer",
	})
}

func newTestSession() shared.Session {
	return shared.Session{OfficeID: uuid.New(), UserID: uuid.New(), Username: "accountant"}
}

func sessionRouter(cfg JWTMiddlewareConfig, seen *shared.Session) *gin.Engine {
	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(cfg))
	handler := func(c *gin.Context) {
		if s, ok := GetSession(c); ok && seen != nil {
			*seen = s
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/test", handler)
	router.GET("/health", handler)
	return router
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	validator := newTestValidator()
	session := newTestSession()
	token, err := validator.Issue(session, 15*time.Minute)
	require.NoError(t, err)

	var seen shared.Session
	router := sessionRouter(DefaultJWTConfig(validator), &seen)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, session, seen)
}

func TestJWTAuthMiddleware_Rejections(t *testing.T) {
	validator := newTestValidator()
	expired, err := validator.Issue(newTestSession(), -time.Minute)
	require.NoError(t, err)
	other := auth.NewTokenValidator(config.JWTConfig{Secret: "another-secret-key-at-least-32-chars", Issuer: "test-issuer"})
	foreign, err := other.Issue(newTestSession(), time.Minute)
	require.NoError(t, err)
	noOffice, err := validator.Issue(shared.Session{UserID: uuid.New()}, time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"empty bearer", "Bearer "},
		{"garbage token", "Bearer not-a-jwt"},
		{"expired token", "Bearer " + expired},
		{"wrong signature", "Bearer " + foreign},
		{"no office", "Bearer " + noOffice},
	}

	router := sessionRouter(DefaultJWTConfig(validator), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, dto.ErrCodeSessionRequired, resp.Error.Code)
			assert.Equal(t, shared.ErrSessionRequired.Message, resp.Error.Message)
		})
	}
}

func TestJWTAuthMiddleware_SkipPaths(t *testing.T) {
	router := sessionRouter(DefaultJWTConfig(newTestValidator()), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthMiddleware_RevokedToken(t *testing.T) {
	validator := newTestValidator()
	token, err := validator.Issue(newTestSession(), time.Minute)
	require.NoError(t, err)
	claims, err := validator.Validate(token)
	require.NoError(t, err)

	blacklist := auth.NewInMemoryTokenBlacklist()
	require.NoError(t, blacklist.Revoke(t.Context(), claims.ID, time.Minute))

	cfg := DefaultJWTConfig(validator)
	cfg.Blacklist = blacklist
	router := sessionRouter(cfg, nil)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, dto.ErrCodeTokenRevoked, decodeError(t, rec).Error.Code)
}

func TestGetSession_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetSession(c)
	assert.False(t, ok)
	assert.Nil(t, GetJWTClaims(c))
}
