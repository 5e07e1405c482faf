// Package auth autentica las cuentas configuradas y emite tokens JWT.
package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/colorstock/internal/application/dto"
	"github.com/jhoicas/colorstock/internal/domain"
	"github.com/jhoicas/colorstock/pkg/jwt"
)

// Roles de acceso.
const (
	RoleOperator = "operator" // lectura y escritura
	RoleViewer   = "viewer"   // solo lectura
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Account cuenta habilitada; PasswordHash es bcrypt.
type Account struct {
	Username     string
	PasswordHash string
	Role         string
}

// AuthUseCase login contra las cuentas configuradas (no hay alta de usuarios).
type AuthUseCase struct {
	accounts []Account
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso. Las cuentas sin usuario o sin hash se ignoran.
func NewAuthUseCase(accounts []Account, jwtCfg JWTConfig) *AuthUseCase {
	uc := &AuthUseCase{jwtCfg: jwtCfg}
	for _, a := range accounts {
		if a.Username != "" && a.PasswordHash != "" {
			uc.accounts = append(uc.accounts, a)
		}
	}
	return uc
}

// Login verifica usuario/password y genera el JWT con el rol de la cuenta.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	account := uc.find(strings.TrimSpace(in.Username))
	if account == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, account.Username, account.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		Username:  account.Username,
		Role:      account.Role,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
	}, nil
}

func (uc *AuthUseCase) find(username string) *Account {
	for i := range uc.accounts {
		if subtle.ConstantTimeCompare([]byte(uc.accounts[i].Username), []byte(username)) == 1 {
			return &uc.accounts[i]
		}
	}
	return nil
}
