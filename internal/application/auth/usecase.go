package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hgl-interieur/ordertrack-api/internal/application/dto"
	"github.com/hgl-interieur/ordertrack-api/internal/domain"
	"github.com/hgl-interieur/ordertrack-api/internal/domain/entity"
	"github.com/hgl-interieur/ordertrack-api/internal/domain/repository"
	"github.com/hgl-interieur/ordertrack-api/pkg/jwt"
)

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	BearerTTL  time.Duration
	Issuer     string
}

// AuthUseCase authentication use cases: login, user creation and derived
// bearer-token issuance.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase builds the auth use case.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register creates a user: hashes the password with bcrypt and persists.
// Returns ErrEmailAlreadyExists when the email is taken and
// ErrInvalidInput for an unknown role.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	naam := in.Naam
	if naam == "" {
		naam = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Naam:         naam,
		Role:         in.Role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifies email/password, generates a session JWT and returns
// token + user.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role,
		uc.jwtCfg.Issuer, time.Duration(uc.jwtCfg.ExpMinutes)*time.Minute)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// IssueBearerToken derives a time-limited bearer token from an already
// established session. The payload is exactly {userId, email, role}.
// A missing signing secret is a server configuration fault: no token is
// ever issued unsigned.
func (uc *AuthUseCase) IssueBearerToken(userID, email, role string) (string, error) {
	if userID == "" {
		return "", domain.ErrUnauthorized
	}
	if uc.jwtCfg.Secret == "" {
		return "", domain.ErrServerConfiguration
	}
	ttl := uc.jwtCfg.BearerTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return jwt.Generate(uc.jwtCfg.Secret, userID, email, role, uc.jwtCfg.Issuer, ttl)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Naam:      u.Naam,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
