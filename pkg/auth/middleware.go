package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-conveniencia/pkg/apperror"
)

// Chaves usadas no contexto do gin
const (
	ctxUserID    = "user_id"
	ctxUserEmail = "user_email"
	ctxUserName  = "user_name"
	ctxUserRole  = "user_role"
)

// CurrentUser são os dados do usuário autenticado
type CurrentUser struct {
	ID    string
	Email string
	Name  string
	Role  string
}

func abort(c *gin.Context, status int, kind apperror.Kind, message, details string) {
	c.AbortWithStatusJSON(status, gin.H{
		"code":    status,
		"kind":    kind,
		"message": message,
		"details": details,
	})
}

// JWTAuthMiddleware cria um middleware para autenticação JWT. Com required
// falso, requisições sem o cabeçalho Authorization seguem sem usuário.
func JWTAuthMiddleware(jwtService *JWTService, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if !required {
				c.Next()
				return
			}
			abort(c, http.StatusUnauthorized, apperror.KindUnauthorized, "Autenticação requerida", "O cabeçalho Authorization não foi fornecido")
			return
		}

		// Verificar o formato "Bearer <token>"
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			abort(c, http.StatusUnauthorized, apperror.KindUnauthorized, "Formato de token inválido", "Use o formato 'Bearer <token>'")
			return
		}

		if jwtService == nil {
			abort(c, http.StatusInternalServerError, apperror.KindInternal, "Erro ao configurar autenticação", "O serviço JWT não foi inicializado")
			return
		}

		claims, err := jwtService.ValidateToken(tokenParts[1])
		if err != nil {
			message := "Token inválido"
			if err == ErrExpiredToken {
				message = "Token expirado"
			}
			abort(c, http.StatusUnauthorized, apperror.KindUnauthorized, message, err.Error())
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUserEmail, claims.Email)
		c.Set(ctxUserName, claims.Name)
		c.Set(ctxUserRole, claims.Role)

		c.Next()
	}
}

// RoleAuthMiddleware cria um middleware para verificação de papel/função do
// usuário. Sem usuário no contexto (autenticação opcional) a requisição segue.
func RoleAuthMiddleware(required bool, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(ctxUserRole)
		if userRole == "" {
			if required {
				abort(c, http.StatusUnauthorized, apperror.KindUnauthorized, "Autenticação requerida", "")
				return
			}
			c.Next()
			return
		}

		for _, r := range roles {
			if userRole == r {
				c.Next()
				return
			}
		}

		abort(c, http.StatusForbidden, apperror.KindUnauthorized, "Acesso negado", "Você não tem permissão para acessar este recurso")
	}
}

// GetCurrentUser obtém as informações do usuário atual do contexto. ok é
// falso quando a requisição não foi autenticada.
func GetCurrentUser(c *gin.Context) (CurrentUser, bool) {
	u := CurrentUser{
		ID:    c.GetString(ctxUserID),
		Email: c.GetString(ctxUserEmail),
		Name:  c.GetString(ctxUserName),
		Role:  c.GetString(ctxUserRole),
	}
	return u, u.ID != ""
}
