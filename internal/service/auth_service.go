package service

import (
	"sira-backend/internal/apperr"
	"sira-backend/internal/auth"
	"sira-backend/internal/model"
	"sira-backend/internal/repository"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(in repository.CreateClientInput) (*model.Client, error)
	Login(cif, password string) (*TokenResponse, error)
	Authenticate(token string) (*model.Client, error)
}

// TokenResponse is the OAuth2-style bearer token payload
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type authService struct {
	clients repository.ClientRepository
	tokens  *auth.TokenService
}

// NewAuthService creates a new auth service
func NewAuthService(clients repository.ClientRepository, tokens *auth.TokenService) AuthService {
	return &authService{clients: clients, tokens: tokens}
}

// Register creates a client account. The repository hashes the password and
// enforces CIF uniqueness.
func (s *authService) Register(in repository.CreateClientInput) (*model.Client, error) {
	return s.clients.Create(in)
}

// Login verifies credentials and issues a bearer token with the client CIF
// as subject. Bad CIF and bad password are indistinguishable to the caller.
func (s *authService) Login(cif, password string) (*TokenResponse, error) {
	client, err := s.clients.GetByCIF(cif)
	if err != nil {
		return nil, apperr.Unauthorized("CIF o contrasena incorrectos")
	}
	if !client.Active {
		return nil, apperr.Unauthorized("CIF o contrasena incorrectos")
	}
	if !auth.VerifyPassword(client.PasswordHash, password) {
		return nil, apperr.Unauthorized("CIF o contrasena incorrectos")
	}

	token, err := s.tokens.Issue(client.CIF)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// Authenticate resolves a bearer token to its active client account.
func (s *authService) Authenticate(token string) (*model.Client, error) {
	cif, err := s.tokens.Verify(token)
	if err != nil {
		return nil, apperr.Unauthorized("No se pudieron validar las credenciales")
	}
	client, err := s.clients.GetByCIF(cif)
	if err != nil {
		return nil, apperr.Unauthorized("No se pudieron validar las credenciales")
	}
	if !client.Active {
		return nil, apperr.Unauthorized("Cliente inactivo")
	}
	return client, nil
}
