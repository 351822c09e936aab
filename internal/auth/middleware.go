package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/apperrors"
)

// Context keys for the authenticated identity
const (
	ContextKeyUserID  = "auth_user_id"
	ContextKeyTokenID = "auth_token_id"
)

// Authenticator resolves bearer tokens. Implemented by *Service.
type Authenticator interface {
	Authenticate(ctx context.Context, plaintext string) (*Identity, error)
}

// Middleware authenticates API requests with bearer tokens.
type Middleware struct {
	authenticator Authenticator
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(authenticator Authenticator) *Middleware {
	return &Middleware{authenticator: authenticator}
}

// RequireAuth rejects requests without a valid bearer token with 401 and
// stores the user and token ids in the gin context otherwise.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortUnauthorized(c, msgUnauthenticated)
			return
		}

		identity, err := m.authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			if apperrors.IsKind(err, apperrors.KindUnauthorized) {
				abortUnauthorized(c, apperrors.As(err).Message)
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "internal server error",
				"code":  apperrors.KindInternal.String(),
			})
			return
		}

		c.Set(ContextKeyUserID, identity.UserID)
		c.Set(ContextKeyTokenID, identity.TokenID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": message,
		"code":  apperrors.KindUnauthorized.String(),
	})
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetUserID retrieves the authenticated user's ID from the context.
// Returns 0 if the request is not authenticated.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}

// GetTokenID retrieves the id of the token used for the request.
func GetTokenID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyTokenID); exists {
		if tokenID, ok := id.(uint); ok {
			return tokenID
		}
	}
	return 0
}
