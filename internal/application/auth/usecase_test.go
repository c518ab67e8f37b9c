package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/auth"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/pkg/jwt"
)

type memUsers struct{ byEmail map[string]*entity.User }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.byEmail[email], nil
}

const secret = "test-secret"

func newAuth() (*auth.AuthUseCase, *memUsers) {
	repo := &memUsers{byEmail: map[string]*entity.User{}}
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "bodega-api"}), repo
}

func TestRegisterAndLogin(t *testing.T) {
	uc, repo := newAuth()
	ctx := context.Background()

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: " Ana@Bodega.co ", Password: "s3cret-pass", Role: entity.RoleBodeguero})
	require.NoError(t, err)
	assert.Equal(t, "ana@bodega.co", user.Email)
	assert.Equal(t, "ana@bodega.co", user.Name)
	assert.NotEqual(t, "s3cret-pass", repo.byEmail["ana@bodega.co"].PasswordHash)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@bodega.co", Password: "s3cret-pass"})
	require.NoError(t, err)
	userID, role, err := jwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entity.RoleBodeguero, role)

	me, err := uc.Me(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, me.Email)
}

func TestRegister_DefaultsAndErrors(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "v@b.co", Password: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, u.Role)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "v@b.co", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "no-es-email", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "x@b.co", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "y@b.co", Password: "12345678", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_Failures(t *testing.T) {
	uc, repo := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.co", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "z@b.co", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	repo.byEmail["a@b.co"].Status = "suspended"
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.co", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
