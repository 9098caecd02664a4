package service

import (
	"context"
	"fmt"
	"strings"

	"homebite/internal/model"
	"homebite/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// passwordCost is the bcrypt work factor. Tests lower it.
var passwordCost = bcrypt.DefaultCost

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

// authService implements AuthService.
type authService struct {
	users  repository.UserRepository
	tokens *TokenIssuer
	logger zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(users repository.UserRepository, tokens *TokenIssuer, logger zerolog.Logger) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		logger: logger.With().Str("service", "auth").Logger(),
	}
}

// Signup registers an account and issues its first access token.
func (s *authService) Signup(ctx context.Context, req *model.SignupRequest) (*model.TokenResponse, error) {
	if req == nil || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, model.ErrMissingCredentials
	}

	role := model.RoleCustomer
	if req.Role != "" {
		parsed, ok := model.RoleFromWire(strings.ToLower(req.Role))
		if !ok {
			s.logger.Warn().Str("role", req.Role).Msg("signup with unknown role")
			return nil, model.ErrInvalidRole
		}
		role = parsed
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, err
	}

	rec := &repository.UserRecord{
		User: model.UserDTO{
			ID:       uuid.New(),
			FullName: req.FullName,
			Email:    strings.TrimSpace(req.Email),
			Role:     model.WireRole(role),
			CampusID: req.CampusID,
		},
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, rec); err != nil {
		s.logger.Warn().Err(err).Str("email", rec.User.Email).Msg("signup rejected")
		return nil, err
	}

	s.logger.Info().Str("user_id", rec.User.ID.String()).Str("role", rec.User.Role).Msg("account created")

	return s.issue(rec.User)
}

// Login verifies credentials and issues an access token.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	if req == nil || req.Email == "" || req.Password == "" {
		return nil, model.ErrInvalidCredentials
	}

	rec, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up account")
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	// Unknown accounts and wrong passwords are reported identically.
	if rec == nil || len(rec.PasswordHash) == 0 ||
		bcrypt.CompareHashAndPassword(rec.PasswordHash, []byte(req.Password)) != nil {
		s.logger.Debug().Msg("login rejected")
		return nil, model.ErrInvalidCredentials
	}

	return s.issue(rec.User)
}

// Me returns the account identified by userID.
func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*model.UserDTO, error) {
	rec, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to get account")
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if rec == nil {
		return nil, model.ErrUserNotFound
	}
	return &rec.User, nil
}

// Authenticate resolves a bearer token to an existing account.
func (s *authService) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	id, err := s.tokens.Parse(token)
	if err != nil {
		return uuid.Nil, err
	}
	if _, err := s.Me(ctx, id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (s *authService) issue(user model.UserDTO) (*model.TokenResponse, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to issue token")
		return nil, err
	}
	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	}, nil
}
