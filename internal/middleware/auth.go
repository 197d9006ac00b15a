package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/saloes-online/internal/auth"
	"github.com/BruksfildServices01/saloes-online/internal/httperr"
)

const (
	ContextUsername = "username"
	ContextUserRole = "userRole"

	SessionUserKey = "admin_user"
)

type TokenParser interface {
	ParseToken(token string) (auth.Claims, error)
}

// AuthMiddleware protege a API do painel (Authorization: Bearer <jwt>).
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Faça login para continuar.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Cabeçalho de autorização inválido.")
			return
		}

		claims, err := tokens.ParseToken(parts[1])
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Sessão expirada. Faça login novamente.")
			return
		}

		c.Set(ContextUsername, claims.Username)
		c.Set(ContextUserRole, claims.Role)

		c.Next()
	}
}

// SessionAuth protege as páginas do painel; sem sessão volta para o login.
func SessionAuth(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := sessions.Default(c).Get(SessionUserKey).(string)
		if user == "" {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}

		c.Set(ContextUsername, user)
		c.Set(ContextUserRole, auth.RoleAdmin)
		c.Next()
	}
}

// Actor devolve o usuário autenticado, ou "anonymous".
func Actor(c *gin.Context) string {
	if v := c.GetString(ContextUsername); v != "" {
		return v
	}
	return "anonymous"
}
