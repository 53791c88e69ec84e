package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/pdv-conveniencia/pkg/apperror"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = apperror.New(apperror.KindNotFound, "usuário não encontrado")
	ErrDuplicateEmail     = apperror.New(apperror.KindDuplicateEmail, "email já cadastrado")
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthorized, "credenciais inválidas")
	ErrUserInactive       = apperror.New(apperror.KindUnauthorized, "usuário inativo")
	ErrSetupDone          = apperror.New(apperror.KindValidation, "o administrador inicial já foi criado")
	ErrEmptyName          = apperror.Validation("nome não pode ser vazio")
	ErrInvalidEmail       = apperror.Validation("email inválido")
	ErrWeakPassword       = apperror.Validation("a senha deve ter ao menos 6 caracteres")
	ErrInvalidRole        = apperror.Validation("papel inválido")
	ErrInvalidStatus      = apperror.Validation("status inválido")
)

// Role representa o papel/função do usuário
type Role string

// Status representa o status do usuário
type Status string

// Constantes para Role
const (
	RoleAdmin   Role = "admin"   // Administrador da loja
	RoleManager Role = "manager" // Gerente
	RoleCashier Role = "cashier" // Operador de caixa
)

// Constantes para Status
const (
	StatusActive   Status = "active"   // Usuário ativo
	StatusInactive Status = "inactive" // Usuário inativo
)

// User representa um operador do sistema (caixa, gerente ou administrador)
type User struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Password    string     `json:"-"` // O campo senha não é retornado nas respostas JSON
	Role        Role       `json:"role"`
	Status      Status     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewUser cria um novo usuário ativo com a senha já criptografada
func NewUser(name, email, password string, role Role) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, ErrEmptyName
	}
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	now := time.Now()
	u := &User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Role:      role,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// Valid verifica se o papel é conhecido
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleCashier
}

// SetPassword configura a senha do usuário com hash
func (u *User) SetPassword(password string) error {
	if len(password) < 6 {
		return ErrWeakPassword
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifica se a senha fornecida é válida
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// IsActive verifica se o usuário está ativo
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// IsAdmin verifica se o usuário é um administrador
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
