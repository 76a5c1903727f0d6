package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/auth"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/logger"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by the session middleware
const (
	JWTClaimsKey  = "jwt_claims"
	SessionKey    = "session"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTMiddlewareConfig holds configuration for the session middleware
type JWTMiddlewareConfig struct {
	// Validator is required for token validation
	Validator *auth.TokenValidator
	// Blacklist is optional; when set, revoked token IDs are rejected
	Blacklist auth.TokenBlacklist
	// SkipPaths are paths that don't require a session
	SkipPaths []string
	Logger    *zap.Logger
}

// DefaultJWTConfig returns the default session middleware configuration
func DefaultJWTConfig(validator *auth.TokenValidator) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		Validator: validator,
		SkipPaths: []string{"/health", "/metrics", "/api/v1/health"},
	}
}

// JWTAuthMiddleware resolves the request session with default configuration
func JWTAuthMiddleware(validator *auth.TokenValidator) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(DefaultJWTConfig(validator))
}

// JWTAuthMiddlewareWithConfig validates the bearer token and stores the
// resulting session in the gin context. Every failure answers 401
// SESSION_REQUIRED except revocation, which answers TOKEN_REVOKED.
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}

		tokenString, ok := bearerToken(c)
		if !ok {
			abortSession(c, log, dto.ErrCodeSessionRequired, shared.ErrSessionRequired.Message, errors.New("missing bearer token"))
			return
		}

		claims, err := cfg.Validator.Validate(tokenString)
		if err != nil {
			abortSession(c, log, dto.ErrCodeSessionRequired, shared.ErrSessionRequired.Message, err)
			return
		}

		if cfg.Blacklist != nil && claims.ID != "" {
			revoked, err := cfg.Blacklist.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				// fail open when the blacklist is unreachable
				log.Error("failed to check token revocation", zap.String("jti", claims.ID), zap.Error(err))
			} else if revoked {
				abortSession(c, log, dto.ErrCodeTokenRevoked, "Your session was ended. Please sign in again", auth.ErrInvalidToken)
				return
			}
		}

		session, err := claims.Session()
		if err != nil {
			abortSession(c, log, dto.ErrCodeSessionRequired, shared.ErrSessionRequired.Message, err)
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(SessionKey, session)

		ctx := c.Request.Context()
		reqLogger := logger.FromContext(ctx)
		ctx, reqLogger = logger.WithOfficeID(ctx, reqLogger, session.OfficeID.String())
		ctx, _ = logger.WithUserID(ctx, reqLogger, session.UserID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	return token, token != ""
}

func abortSession(c *gin.Context, log *zap.Logger, code, message string, err error) {
	log.Warn("session rejected",
		zap.String("path", c.Request.URL.Path),
		zap.String("code", code),
		zap.Error(err),
	)
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, message, c.GetString("request_id")))
}

// GetSession returns the session resolved for the request
func GetSession(c *gin.Context) (shared.Session, bool) {
	if v, exists := c.Get(SessionKey); exists {
		if s, ok := v.(shared.Session); ok {
			return s, true
		}
	}
	return shared.Session{}, false
}

// GetJWTClaims retrieves the validated claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}
