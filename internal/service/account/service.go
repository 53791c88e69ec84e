// Package account autentica operadores e administra seus cadastros.
package account

import (
	"context"
	"fmt"
	"time"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/user"
	"github.com/hugohenrick/pdv-conveniencia/pkg/auth"
	"github.com/hugohenrick/pdv-conveniencia/pkg/logger"
)

// Session é o resultado de um login bem-sucedido
type Session struct {
	User      *user.User
	Token     string
	ExpiresAt time.Time
}

// Service implementa autenticação e gestão de usuários
type Service struct {
	tx     domain.Transactor
	users  user.Repository
	jwt    *auth.JWTService
	logger logger.Logger
}

// NewService cria uma nova instância de Service
func NewService(tx domain.Transactor, users user.Repository, jwtService *auth.JWTService, log logger.Logger) *Service {
	return &Service{
		tx:     tx,
		users:  users,
		jwt:    jwtService,
		logger: log,
	}
}

// SetupAdmin cria o primeiro administrador. Só é permitido enquanto não
// houver nenhum usuário cadastrado.
func (s *Service) SetupAdmin(ctx context.Context, name, email, password string) (*user.User, error) {
	u, err := user.NewUser(name, email, password, user.RoleAdmin)
	if err != nil {
		return nil, err
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		count, err := s.users.Count(ctx)
		if err != nil {
			return fmt.Errorf("erro ao contar usuários: %w", err)
		}
		if count > 0 {
			return user.ErrSetupDone
		}
		return s.users.Create(ctx, u)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("administrador inicial criado", "user_id", u.ID)
	return u, nil
}

// CreateUser cadastra um novo operador
func (s *Service) CreateUser(ctx context.Context, name, email, password string, role user.Role) (*user.User, error) {
	u, err := user.NewUser(name, email, password, role)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.logger.Info("usuário criado", "user_id", u.ID, "role", u.Role)
	return u, nil
}

// Login valida as credenciais e emite um token de acesso
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == user.ErrUserNotFound {
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.CheckPassword(password) {
		return nil, user.ErrInvalidCredentials
	}
	if !u.IsActive() {
		return nil, user.ErrUserInactive
	}

	token, err := s.jwt.GenerateToken(u)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar token: %w", err)
	}

	// Falha ao registrar o último acesso não impede o login
	if err := s.users.UpdateLastLogin(ctx, u.ID); err != nil {
		s.logger.Warn("erro ao atualizar último login", "user_id", u.ID, "error", err)
	}

	s.logger.Info("login realizado", "user_id", u.ID)
	return &Session{User: u, Token: token, ExpiresAt: time.Now().Add(s.jwt.Expiration())}, nil
}

// Refresh emite um novo token a partir de um token anterior, inclusive
// expirado, desde que o usuário continue ativo
func (s *Service) Refresh(ctx context.Context, token string) (*Session, error) {
	claims, err := s.jwt.ParseAllowExpired(token)
	if err != nil {
		return nil, err
	}
	u, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if err == user.ErrUserNotFound {
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.IsActive() {
		return nil, user.ErrUserInactive
	}

	renewed, err := s.jwt.GenerateToken(u)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar token: %w", err)
	}
	return &Session{User: u, Token: renewed, ExpiresAt: time.Now().Add(s.jwt.Expiration())}, nil
}

// GetUser busca um usuário pelo ID
func (s *Service) GetUser(ctx context.Context, id string) (*user.User, error) {
	return s.users.FindByID(ctx, id)
}

// ListUsers lista os usuários
func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*user.User, error) {
	return s.users.List(ctx, limit, offset)
}

// SetUserStatus ativa ou desativa um usuário
func (s *Service) SetUserStatus(ctx context.Context, id string, status user.Status) error {
	if status != user.StatusActive && status != user.StatusInactive {
		return user.ErrInvalidStatus
	}
	if err := s.users.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.logger.Info("status do usuário alterado", "user_id", id, "status", status)
	return nil
}
