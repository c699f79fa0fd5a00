package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shelftrack/shelftrack-api/internal/application/dto"
	"github.com/shelftrack/shelftrack-api/internal/domain"
	"github.com/shelftrack/shelftrack-api/internal/domain/entity"
	"github.com/shelftrack/shelftrack-api/internal/domain/repository"
	"github.com/shelftrack/shelftrack-api/pkg/jwt"
)

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// LibrarianVerifier checks a librarian id against the staff registry.
// The HTTP-backed implementation lives in infrastructure/verify.
type LibrarianVerifier interface {
	Verify(ctx context.Context, librarianID string) (bool, error)
}

// PrefixVerifier is the offline predicate: the id must be non-empty and start
// with the uppercase marker letter 'L'.
type PrefixVerifier struct{}

// Verify applies the prefix predicate.
func (PrefixVerifier) Verify(_ context.Context, librarianID string) (bool, error) {
	return strings.HasPrefix(librarianID, "L"), nil
}

// UseCase registration and login. Passwords are bcrypt-hashed before they
// reach the repository; plaintext is never persisted or logged.
type UseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	verifier LibrarianVerifier
	jwtCfg   JWTConfig
}

// New builds the auth use case.
func New(userRepo repository.UserRepository, roleRepo repository.RoleRepository, verifier LibrarianVerifier, jwtCfg JWTConfig) *UseCase {
	if verifier == nil {
		verifier = PrefixVerifier{}
	}
	return &UseCase{userRepo: userRepo, roleRepo: roleRepo, verifier: verifier, jwtCfg: jwtCfg}
}

// RegisterMember creates a member account. Members start unverified and can
// log in regardless of the flag.
func (uc *UseCase) RegisterMember(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	return uc.register(ctx, in.Name, in.Email, in.Password, entity.RoleMember, "", false)
}

// RegisterLibrarian creates a librarian account. The librarian id must pass
// external verification first; a rejected id is a conflict and no account is
// created. On success the account is created already verified.
func (uc *UseCase) RegisterLibrarian(ctx context.Context, in dto.RegisterLibrarianRequest) (*dto.UserResponse, error) {
	ok, err := uc.verifier.Verify(ctx, in.LibrarianID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrVerificationRejected
	}
	return uc.register(ctx, in.Name, in.Email, in.Password, entity.RoleLibrarian, in.LibrarianID, true)
}

func (uc *UseCase) register(ctx context.Context, name, email, password, roleName, librarianID string, verified bool) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	role, err := uc.roleRepo.GetByName(roleName)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       role.ID,
		Role:         role.Name,
		LibrarianID:  librarianID,
		Verified:     verified,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifies credentials and issues a JWT. An unverified librarian is
// denied even with the right password; members are never gated on verified.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
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
	if user.Role == entity.RoleLibrarian && !user.Verified {
		return nil, domain.ErrLibrarianUnverified
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		LibrarianID: u.LibrarianID,
		Verified:    u.Verified,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
