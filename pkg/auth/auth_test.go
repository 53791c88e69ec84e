package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/user"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testUser() *user.User {
	return &user.User{ID: "u1", Name: "Ana", Email: "ana@loja.com", Role: user.RoleCashier}
}

func TestNewJWTService(t *testing.T) {
	if _, err := NewJWTService("", time.Hour); err != ErrMissingJWTKey {
		t.Errorf("NewJWTService(\"\") error = %v, want ErrMissingJWTKey", err)
	}
	svc, err := NewJWTService("segredo", 0)
	if err != nil {
		t.Fatal(err)
	}
	if svc.Expiration() != 24*time.Hour {
		t.Errorf("Expiration() = %v, want 24h", svc.Expiration())
	}
}

func TestGenerateAndValidate(t *testing.T) {
	svc, _ := NewJWTService("segredo", time.Hour)
	token, err := svc.GenerateToken(testUser())
	if err != nil {
		t.Fatal(err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != "u1" || claims.Role != "cashier" {
		t.Errorf("claims = %+v", claims)
	}

	other, _ := NewJWTService("outro", time.Hour)
	if _, err := other.ValidateToken(token); err != ErrInvalidToken {
		t.Errorf("chave diferente error = %v, want ErrInvalidToken", err)
	}
	if _, err := svc.ValidateToken("lixo"); err != ErrInvalidToken {
		t.Errorf("token malformado error = %v", err)
	}
}

func TestExpiredTokenRefresh(t *testing.T) {
	svc, _ := NewJWTService("segredo", time.Hour)
	past := time.Now().Add(-2 * time.Hour)
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(past),
		},
	})
	token, err := expired.SignedString([]byte("segredo"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ValidateToken(token); err != ErrExpiredToken {
		t.Fatalf("ValidateToken() error = %v, want ErrExpiredToken", err)
	}
	renewed, err := svc.RefreshToken(token)
	if err != nil {
		t.Fatalf("RefreshToken() error = %v", err)
	}
	if _, err := svc.ValidateToken(renewed); err != nil {
		t.Errorf("token renovado inválido: %v", err)
	}
}

func TestJWTAuthMiddleware(t *testing.T) {
	svc, _ := NewJWTService("segredo", time.Hour)
	token, _ := svc.GenerateToken(testUser())

	tests := []struct {
		name       string
		required   bool
		header     string
		wantStatus int
		wantUser   string
	}{
		{"required without header", true, "", http.StatusUnauthorized, ""},
		{"optional without header", false, "", http.StatusOK, ""},
		{"bad format", false, "Token " + token, http.StatusUnauthorized, ""},
		{"invalid token", true, "Bearer lixo", http.StatusUnauthorized, ""},
		{"valid token", true, "Bearer " + token, http.StatusOK, "u1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(JWTAuthMiddleware(svc, tt.required))
			r.GET("/", func(c *gin.Context) {
				u, _ := GetCurrentUser(c)
				c.String(http.StatusOK, u.ID)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && w.Body.String() != tt.wantUser {
				t.Errorf("usuário = %q, want %q", w.Body.String(), tt.wantUser)
			}
		})
	}
}

func TestRoleAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		required   bool
		wantStatus int
	}{
		{"allowed", "manager", true, http.StatusOK},
		{"forbidden", "cashier", true, http.StatusForbidden},
		{"anonymous required", "", true, http.StatusUnauthorized},
		{"anonymous optional", "", false, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(func(c *gin.Context) {
				if tt.role != "" {
					c.Set(ctxUserID, "u1")
					c.Set(ctxUserRole, tt.role)
				}
			})
			r.GET("/", RoleAuthMiddleware(tt.required, "admin", "manager"), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
