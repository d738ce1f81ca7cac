package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sira-backend/internal/service"
)

// ClientContextKey is the gin context key holding the authenticated client.
const ClientContextKey = "auth_client"

// RequireAuth rejects requests that do not carry a valid bearer token for an
// active client account. All failures produce the same 401 body so callers
// cannot probe which check failed.
func RequireAuth(authService service.AuthService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c, logger, "missing bearer token")
			return
		}

		client, err := authService.Authenticate(token)
		if err != nil {
			unauthorized(c, logger, err.Error())
			return
		}

		c.Set(ClientContextKey, client)
		c.Next()
	}
}

// bearerToken extracts the credential from an "Authorization: Bearer x"
// header. The scheme comparison is case-insensitive per RFC 6750.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c *gin.Context, logger *slog.Logger, reason string) {
	logger.Warn("unauthorized request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"reason", reason,
	)
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   "Unauthorized",
		"message": "No se pudieron validar las credenciales",
	})
}
