package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Vitrina-api/internal/application/auth"
	"github.com/jhoicas/Vitrina-api/internal/application/dto"
	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
	"github.com/jhoicas/Vitrina-api/internal/domain/subscription"
	"github.com/jhoicas/Vitrina-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeTenantRepo struct {
	byEmail   map[string]*entity.Tenant
	created   int
	lookupErr error // simula fallo de almacenamiento en GetByEmail
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{byEmail: make(map[string]*entity.Tenant)}
}

func (r *fakeTenantRepo) Create(t *entity.Tenant) error {
	r.byEmail[t.Email] = t
	r.created++
	return nil
}
func (r *fakeTenantRepo) GetByID(id string) (*entity.Tenant, error) {
	for _, t := range r.byEmail {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}
func (r *fakeTenantRepo) GetByEmail(email string) (*entity.Tenant, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	return r.byEmail[email], nil
}
func (r *fakeTenantRepo) GetByBillingCustomerRef(ref string) (*entity.Tenant, error) {
	return nil, nil
}
func (r *fakeTenantRepo) UpdateBilling(t *entity.Tenant) error            { return nil }
func (r *fakeTenantRepo) SetBillingCustomerRef(id, ref string) error      { return nil }
func (r *fakeTenantRepo) SetTutorialCompleted(id string, done bool) error { return nil }

var testJWT = auth.JWTConfig{Secret: "secreto-de-prueba", ExpMinutes: 60, Issuer: "vitrina-test"}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_IniciaTrialActivo(t *testing.T) {
	repo := newFakeTenantRepo()
	uc := auth.NewAuthUseCase(repo, testJWT)

	out, err := uc.Register(dto.RegisterRequest{
		Email:    "Maria@Tienda.co",
		Password: "contraseña-segura",
		Name:     "Artesanías María",
	})
	require.NoError(t, err)

	// El email se normaliza a minúsculas.
	assert.Equal(t, "maria@tienda.co", out.Email)
	assert.Equal(t, entity.StatusTrialing, out.SubscriptionStatus)
	require.NotNil(t, out.TrialEndsAt)

	// Recién registrado: trialing con 7 días restantes y acceso vigente.
	stored := repo.byEmail["maria@tienda.co"]
	require.NotNil(t, stored)
	ent := subscription.Derive(subscription.FieldsFromTenant(stored), time.Now())
	assert.True(t, ent.IsActive)
	assert.Equal(t, entity.TrialDays, ent.DaysLeftInTrial)

	// El password nunca se guarda en plano.
	assert.NotEqual(t, "contraseña-segura", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("contraseña-segura")))
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := newFakeTenantRepo()
	uc := auth.NewAuthUseCase(repo, testJWT)

	_, err := uc.Register(dto.RegisterRequest{Email: "maria@tienda.co", Password: "contraseña-segura"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{Email: "MARIA@tienda.co", Password: "otra-contraseña"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Equal(t, 1, repo.created)
}

// Un fallo de almacenamiento al verificar el email NO debe leerse como
// "email libre": el registro se aborta con el error.
func TestRegister_FalloDeLecturaNoCreaCuenta(t *testing.T) {
	repo := newFakeTenantRepo()
	repo.lookupErr = assert.AnError
	uc := auth.NewAuthUseCase(repo, testJWT)

	_, err := uc.Register(dto.RegisterRequest{Email: "maria@tienda.co", Password: "contraseña-segura"})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 0, repo.created, "ante un fallo de lectura no debe crearse la cuenta")
}

func TestRegister_PasswordCorto(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeTenantRepo(), testJWT)

	_, err := uc.Register(dto.RegisterRequest{Email: "maria@tienda.co", Password: "corto"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_TokenConSnapshot(t *testing.T) {
	repo := newFakeTenantRepo()
	uc := auth.NewAuthUseCase(repo, testJWT)

	_, err := uc.Register(dto.RegisterRequest{Email: "maria@tienda.co", Password: "contraseña-segura"})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "maria@tienda.co", Password: "contraseña-segura"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	// El token carga el snapshot de facturación con el que se deriva el gating.
	tenantID, snap, err := jwt.Parse(testJWT.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.Tenant.ID, tenantID)
	assert.Equal(t, entity.StatusTrialing, snap.Status)
	assert.NotZero(t, snap.TrialEndsAt)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	repo := newFakeTenantRepo()
	uc := auth.NewAuthUseCase(repo, testJWT)

	_, err := uc.Register(dto.RegisterRequest{Email: "maria@tienda.co", Password: "contraseña-segura"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "maria@tienda.co", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CuentaInexistente(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeTenantRepo(), testJWT)

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@tienda.co", Password: "lo-que-sea"})
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)
}
