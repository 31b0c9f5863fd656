package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcsalazar/abasto-api/internal/application/auth"
	"github.com/jcsalazar/abasto-api/internal/application/dto"
	"github.com/jcsalazar/abasto-api/internal/domain"
	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/jcsalazar/abasto-api/internal/testutil"
	pkgjwt "github.com/jcsalazar/abasto-api/pkg/jwt"
)

func buildAuthUseCase() (*auth.UseCase, *testutil.MemUserRepo, *testutil.MemUnitRepo) {
	users := testutil.NewMemUserRepo()
	f := testutil.NewFixture()
	_ = f.Units.Create(&entity.Unit{ID: "unidad-1", Name: "Sede Centro", Active: true})
	uc := auth.NewUseCase(users, f.Units, auth.JWTConfig{
		Secret:     "secreto-de-prueba",
		ExpMinutes: 60,
		Issuer:     "abasto-api-test",
	})
	return uc, users, f.Units
}

func TestRegister_HasheaYAsignaRolPorDefecto(t *testing.T) {
	uc, users, _ := buildAuthUseCase()

	resp, err := uc.Register(dto.RegisterRequest{
		UnitID:   "unidad-1",
		Email:    "ana@example.com",
		Password: "clave-segura",
		Name:     "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSolicitante, resp.Role, "sin rol explícito se asigna solicitante")
	assert.Equal(t, "active", resp.Status)

	stored, _ := users.FindByEmail("ana@example.com")
	require.NotNil(t, stored)
	assert.NotEqual(t, "clave-segura", stored.PasswordHash, "la contraseña nunca se guarda en claro")
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _, _ := buildAuthUseCase()

	_, err := uc.Register(dto.RegisterRequest{UnitID: "unidad-1", Email: "ana@example.com", Password: "x"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{UnitID: "unidad-1", Email: "ana@example.com", Password: "y"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_UnidadInexistente(t *testing.T) {
	uc, _, _ := buildAuthUseCase()

	_, err := uc.Register(dto.RegisterRequest{UnitID: "no-existe", Email: "x@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegister_RolInvalido(t *testing.T) {
	uc, _, _ := buildAuthUseCase()

	_, err := uc.Register(dto.RegisterRequest{UnitID: "unidad-1", Email: "x@example.com", Password: "x", Role: "gerente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_EmiteTokenConClaims(t *testing.T) {
	uc, _, _ := buildAuthUseCase()

	reg, err := uc.Register(dto.RegisterRequest{
		UnitID:   "unidad-1",
		Email:    "ana@example.com",
		Password: "clave-segura",
		Role:     entity.RoleComprador,
	})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "clave-segura"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID, unitID, role, err := pkgjwt.Parse("secreto-de-prueba", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, userID)
	assert.Equal(t, "unidad-1", unitID)
	assert.Equal(t, entity.RoleComprador, role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc, _, _ := buildAuthUseCase()
	_, err := uc.Register(dto.RegisterRequest{UnitID: "unidad-1", Email: "ana@example.com", Password: "correcta"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _, _ := buildAuthUseCase()
	_, err := uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, users, _ := buildAuthUseCase()
	_, err := uc.Register(dto.RegisterRequest{UnitID: "unidad-1", Email: "ana@example.com", Password: "clave"})
	require.NoError(t, err)

	stored, _ := users.FindByEmail("ana@example.com")
	stored.Status = "suspended"
	_ = users.Update(stored)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "clave"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
