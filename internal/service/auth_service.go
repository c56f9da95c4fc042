package service

import (
	"log"
	"strings"

	"chainmove/config"
	"chainmove/internal/auth"
	"chainmove/internal/database"
	"chainmove/internal/domain"
	"chainmove/internal/models"
	"chainmove/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	users *repository.UserRepository
	jwt   *config.JWTConfig
}

func NewAuthService(users *repository.UserRepository, jwt *config.JWTConfig) *AuthService {
	return &AuthService{users: users, jwt: jwt}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Phone    string
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Register creates an investor or driver account. Admin accounts are only
// seeded or promoted, never self-registered.
func (s *AuthService) Register(in RegisterInput) (*models.User, *TokenPair, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	role := strings.ToLower(strings.TrimSpace(in.Role))

	if name == "" {
		return nil, nil, domain.Validation("name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, domain.Validation("a valid email is required")
	}
	if len(in.Password) < 8 {
		return nil, nil, domain.Validation("password must be at least 8 characters")
	}
	if role != domain.RoleInvestor && role != domain.RoleDriver {
		return nil, nil, domain.Validation("role must be investor or driver")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Phone:        strings.TrimSpace(in.Phone),
	}
	if err := s.users.Create(user); err != nil {
		if database.IsDuplicateKey(err) {
			return nil, nil, domain.BusinessRule("an account with this email already exists")
		}
		return nil, nil, database.Classify(err)
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[AUTH] registered user=%d role=%s", user.ID, user.Role)
	return user, tokens, nil
}

func (s *AuthService) Login(email, password string) (*models.User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, domain.ErrUnauthorized
		}
		return nil, nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrUnauthorized
	}
	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	userID, err := auth.ParseRefreshToken(s.jwt, refreshToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := s.users.GetByID(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return s.issueTokens(user)
}

func (s *AuthService) GetProfile(userID uint) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, database.Classify(err)
	}
	return user, nil
}

func (s *AuthService) issueTokens(user *models.User) (*TokenPair, error) {
	access, err := auth.GenerateAccessToken(s.jwt, user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateRefreshToken(s.jwt, user.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
