package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/saloes-online/internal/auth"
	"github.com/BruksfildServices01/saloes-online/internal/httperr"
	"github.com/BruksfildServices01/saloes-online/internal/middleware"
)

type AuthHandler struct {
	auth *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{auth: svc}
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Informe usuário e senha.")
		return
	}

	sess, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		writeLoginError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login realizado com sucesso.",
		"token":   sess.Token,
		"user": gin.H{
			"username": sess.Username,
			"role":     sess.Role,
		},
		"expires_at": sess.ExpiresAt,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"username": c.GetString(middleware.ContextUsername),
			"role":     c.GetString(middleware.ContextUserRole),
		},
	})
}

func writeLoginError(c *gin.Context, err error) {
	var locked auth.LockedError
	switch {
	case errors.As(err, &locked):
		httperr.TooManyRequests(c, "account_locked", locked.Message())
	case errors.Is(err, auth.ErrInvalidCredentials):
		httperr.Unauthorized(c, "invalid_credentials", "Credenciais inválidas.")
	default:
		httperr.Internal(c, "internal_error", "Erro interno do servidor.")
	}
}

// loginMessage é o texto mostrado no formulário de login das páginas web.
func loginMessage(err error) string {
	var locked auth.LockedError
	if errors.As(err, &locked) {
		return locked.Message()
	}
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return "Credenciais inválidas."
	}
	return "Erro interno do servidor."
}
