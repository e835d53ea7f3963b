package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"notekeeper/internal/domain"
	"notekeeper/internal/service"
)

const (
	currentUserKey = "current_user"
	rawTokenKey    = "raw_token"
)

// AuthMiddleware es el único punto de autorización: extrae el bearer
// token, lo verifica y re-resuelve el subject contra el almacenamiento en
// cada request antes de exponer la identidad a los handlers.
func AuthMiddleware(jwtSvc *service.JWTService, userSvc *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtSvc == nil || userSvc == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
			c.Abort()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
			c.Abort()
			return
		}
		token := strings.TrimSpace(header[len("Bearer "):])

		// Fallo de firma y expiración se colapsan en un solo mensaje.
		claims, err := jwtSvc.Verify(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "please authenticate"})
			c.Abort()
			return
		}

		user, err := userSvc.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not resolve user"})
			}
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Set(rawTokenKey, token)
		c.Next()
	}
}

// CurrentUser obtiene el usuario resuelto desde el contexto del request.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	val, ok := c.Get(currentUserKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := val.(domain.User)
	return user, ok
}

// RawToken obtiene el token tal como llegó en el header.
func RawToken(c *gin.Context) (string, bool) {
	val, ok := c.Get(rawTokenKey)
	if !ok {
		return "", false
	}
	token, ok := val.(string)
	return token, ok
}
