package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelftrack/shelftrack-api/internal/application/auth"
	"github.com/shelftrack/shelftrack-api/internal/application/dto"
	"github.com/shelftrack/shelftrack-api/internal/domain"
	"github.com/shelftrack/shelftrack-api/internal/domain/entity"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func (f *fakeUserRepo) Create(u *entity.User) error { f.byEmail[u.Email] = u; return nil }
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	return f.byEmail[email], nil
}
func (f *fakeUserRepo) Update(*entity.User) error             { return nil }
func (f *fakeUserRepo) List(int, int) ([]*entity.User, error) { return nil, nil }
func (f *fakeUserRepo) Delete(string) error                   { return nil }

type fakeRoleRepo struct{}

func (fakeRoleRepo) GetByName(name string) (*entity.Role, error) {
	return &entity.Role{ID: "role-" + name, Name: name}, nil
}
func (fakeRoleRepo) List() ([]*entity.Role, error) { return nil, nil }

// rejectAllVerifier simulates a staff registry that knows nobody.
type rejectAllVerifier struct{}

func (rejectAllVerifier) Verify(context.Context, string) (bool, error) { return false, nil }

var testJWTCfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "shelftrack-test"}

func newUseCase(verifier auth.LibrarianVerifier) (*auth.UseCase, *fakeUserRepo) {
	users := &fakeUserRepo{byEmail: map[string]*entity.User{}}
	return auth.New(users, fakeRoleRepo{}, verifier, testJWTCfg), users
}

// ──────────────────────────────────────────────────────────────────────────────
// PrefixVerifier
// ──────────────────────────────────────────────────────────────────────────────

func TestPrefixVerifier(t *testing.T) {
	cases := []struct {
		id   string
		want bool
	}{
		{"L12345", true},
		{"L", true},
		{"l12345", false}, // lowercase marker is rejected
		{"X12345", false},
		{"", false},
	}
	v := auth.PrefixVerifier{}
	for _, tc := range cases {
		ok, err := v.Verify(context.Background(), tc.id)
		require.NoError(t, err)
		assert.Equal(t, tc.want, ok, "id %q", tc.id)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Registration
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMember_HashesPassword(t *testing.T) {
	uc, users := newUseCase(nil)

	resp, err := uc.RegisterMember(context.Background(), dto.RegisterRequest{
		Name: "Ada Lovelace", Email: "ada@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleMember, resp.Role)
	assert.False(t, resp.Verified, "members start unverified")

	stored := users.byEmail["ada@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct-horse", stored.PasswordHash,
		"the plaintext password must never be stored")
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegisterMember_DuplicateEmail(t *testing.T) {
	uc, _ := newUseCase(nil)

	req := dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "correct-horse"}
	_, err := uc.RegisterMember(context.Background(), req)
	require.NoError(t, err)

	_, err = uc.RegisterMember(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterLibrarian_VerifiedOnSuccess(t *testing.T) {
	uc, users := newUseCase(auth.PrefixVerifier{})

	resp, err := uc.RegisterLibrarian(context.Background(), dto.RegisterLibrarianRequest{
		Name: "Grace Hopper", Email: "grace@example.com", Password: "correct-horse",
		LibrarianID: "L98765",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleLibrarian, resp.Role)
	assert.True(t, resp.Verified, "a librarian that passed verification is created verified")
	assert.Equal(t, "L98765", users.byEmail["grace@example.com"].LibrarianID)
}

func TestRegisterLibrarian_RejectedIDCreatesNoAccount(t *testing.T) {
	uc, users := newUseCase(rejectAllVerifier{})

	_, err := uc.RegisterLibrarian(context.Background(), dto.RegisterLibrarianRequest{
		Name: "Grace Hopper", Email: "grace@example.com", Password: "correct-horse",
		LibrarianID: "L98765",
	})
	require.ErrorIs(t, err, domain.ErrVerificationRejected)
	assert.Empty(t, users.byEmail, "a rejected verification must not create an account")
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	uc, _ := newUseCase(nil)
	_, err := uc.RegisterMember(context.Background(), dto.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "ada@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ada@example.com", resp.User.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, _ := newUseCase(nil)
	_, err := uc.RegisterMember(context.Background(), dto.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "ada@example.com", Password: "wrong",
	})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UnknownEmail(t *testing.T) {
	uc, _ := newUseCase(nil)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "nobody@example.com", Password: "whatever",
	})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UnverifiedLibrarianDenied(t *testing.T) {
	uc, users := newUseCase(auth.PrefixVerifier{})
	_, err := uc.RegisterLibrarian(context.Background(), dto.RegisterLibrarianRequest{
		Name: "Grace", Email: "grace@example.com", Password: "correct-horse",
		LibrarianID: "L98765",
	})
	require.NoError(t, err)

	// Flip the flag off, as if verification were later revoked.
	users.byEmail["grace@example.com"].Verified = false

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "grace@example.com", Password: "correct-horse",
	})
	require.ErrorIs(t, err, domain.ErrLibrarianUnverified)
}

func TestLogin_MemberNeverGatedOnVerified(t *testing.T) {
	uc, users := newUseCase(nil)
	_, err := uc.RegisterMember(context.Background(), dto.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)
	require.False(t, users.byEmail["ada@example.com"].Verified)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "ada@example.com", Password: "correct-horse",
	})
	assert.NoError(t, err, "members log in regardless of the verified flag")
}
