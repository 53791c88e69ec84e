package user

import (
	"errors"
	"testing"
)

func TestNewUser(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		role     Role
		wantErr  error
	}{
		{"ok", "Ana", " Ana@Loja.com ", "segredo1", RoleCashier, nil},
		{"empty name", "", "a@b.c", "segredo1", RoleCashier, ErrEmptyName},
		{"bad email", "Ana", "ana", "segredo1", RoleCashier, ErrInvalidEmail},
		{"bad role", "Ana", "a@b.c", "segredo1", Role("root"), ErrInvalidRole},
		{"short password", "Ana", "a@b.c", "123", RoleAdmin, ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewUser(tt.userName, tt.email, tt.password, tt.role)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewUser() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if u.Email != "ana@loja.com" {
				t.Errorf("Email = %q", u.Email)
			}
			if u.Password == tt.password || !u.CheckPassword(tt.password) || u.CheckPassword("outra") {
				t.Error("senha não foi criptografada corretamente")
			}
		})
	}
}
