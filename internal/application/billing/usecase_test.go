package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Vitrina-api/internal/application/billing"
	"github.com/jhoicas/Vitrina-api/internal/application/dto"
	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
	"github.com/jhoicas/Vitrina-api/internal/domain/subscription"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeTenantRepo struct {
	tenants      map[string]*entity.Tenant // por id
	byRef        map[string]string         // customer ref -> tenant id
	getByIDCalls int
	updates      int
}

func (r *fakeTenantRepo) Create(t *entity.Tenant) error { return nil }
func (r *fakeTenantRepo) GetByID(id string) (*entity.Tenant, error) {
	r.getByIDCalls++
	return r.tenants[id], nil
}
func (r *fakeTenantRepo) GetByEmail(email string) (*entity.Tenant, error) { return nil, nil }
func (r *fakeTenantRepo) GetByBillingCustomerRef(ref string) (*entity.Tenant, error) {
	id, ok := r.byRef[ref]
	if !ok {
		return nil, nil
	}
	return r.tenants[id], nil
}
func (r *fakeTenantRepo) UpdateBilling(t *entity.Tenant) error {
	r.updates++
	r.tenants[t.ID] = t
	return nil
}
func (r *fakeTenantRepo) SetBillingCustomerRef(id, ref string) error {
	r.byRef[ref] = id
	cr := ref
	r.tenants[id].BillingCustomerRef = &cr
	return nil
}
func (r *fakeTenantRepo) SetTutorialCompleted(id string, completed bool) error { return nil }

type fakeProvider struct {
	down  bool // simula proveedor caído
	calls int
}

func (p *fakeProvider) EnsureCustomer(ctx context.Context, tenantID, email string) (string, error) {
	p.calls++
	if p.down {
		return "", domain.ErrUpstreamUnavailable
	}
	return "cus_test", nil
}
func (p *fakeProvider) CheckoutURL(ctx context.Context, customerRef, plan string) (string, error) {
	p.calls++
	if p.down {
		return "", domain.ErrUpstreamUnavailable
	}
	return "https://checkout.example/" + plan, nil
}
func (p *fakeProvider) PortalURL(ctx context.Context, customerRef string) (string, error) {
	p.calls++
	if p.down {
		return "", domain.ErrUpstreamUnavailable
	}
	return "https://portal.example/", nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const tenantID = "00000000-0000-0000-0000-000000000001"

func newFixture(t *entity.Tenant, providerDown bool) (*billing.UseCase, *fakeTenantRepo, *fakeProvider) {
	repo := &fakeTenantRepo{
		tenants: map[string]*entity.Tenant{t.ID: t},
		byRef:   map[string]string{},
	}
	if t.BillingCustomerRef != nil {
		repo.byRef[*t.BillingCustomerRef] = t.ID
	}
	provider := &fakeProvider{down: providerDown}
	uc := billing.NewUseCase(repo, provider, zerolog.Nop())
	return uc, repo, provider
}

func activeTenant() *entity.Tenant {
	ref := "cus_activo"
	end := time.Now().Add(30 * 24 * time.Hour)
	return &entity.Tenant{
		ID:                 tenantID,
		Email:              "tienda@example.com",
		Plan:               entity.PlanPremium,
		SubscriptionStatus: entity.StatusActive,
		CurrentPeriodEnd:   &end,
		BillingCustomerRef: &ref,
		BillingEventSeq:    100,
	}
}

func testScope(t *testing.T) domain.Scope {
	t.Helper()
	scope, err := domain.NewScope(tenantID)
	require.NoError(t, err)
	return scope
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Subscribe / Portal (camino de escritura: falla cerrado)
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: proveedor caído → la suscripción NO se inicia (fallo cerrado).
func TestSubscribe_ProveedorCaidoFallaCerrado(t *testing.T) {
	uc, repo, _ := newFixture(activeTenant(), true)

	_, err := uc.Subscribe(context.Background(), testScope(t), dto.SubscribeRequest{Plan: entity.PlanPremium})
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.Zero(t, repo.updates, "no debe escribirse nada en el tenant")
}

// Caso 2: plan desconocido se rechaza antes de tocar al proveedor.
func TestSubscribe_PlanInvalido(t *testing.T) {
	uc, _, provider := newFixture(activeTenant(), false)

	_, err := uc.Subscribe(context.Background(), testScope(t), dto.SubscribeRequest{Plan: "gold"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, provider.calls, "el proveedor no debe ser invocado")
}

// Caso 3: tenant sin customer ref en el proveedor → se crea y persiste.
func TestSubscribe_CreaCustomerRefSiFalta(t *testing.T) {
	tenant := activeTenant()
	tenant.BillingCustomerRef = nil
	uc, repo, _ := newFixture(tenant, false)

	out, err := uc.Subscribe(context.Background(), testScope(t), dto.SubscribeRequest{Plan: entity.PlanStarter})
	require.NoError(t, err)
	assert.Contains(t, out.URL, "starter")
	require.NotNil(t, repo.tenants[tenantID].BillingCustomerRef)
	assert.Equal(t, "cus_test", *repo.tenants[tenantID].BillingCustomerRef)
}

// Caso 4: portal sin customer ref previo → not found, no hay nada que autogestionar.
func TestPortal_SinCustomerRef(t *testing.T) {
	tenant := activeTenant()
	tenant.BillingCustomerRef = nil
	uc, _, _ := newFixture(tenant, false)

	_, err := uc.Portal(context.Background(), testScope(t))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests HandleEvent
// ──────────────────────────────────────────────────────────────────────────────

// Caso 5: evento huérfano (customer ref sin cuenta) se descarta sin error,
// para que el proveedor no reintente.
func TestHandleEvent_HuerfanoSeDescarta(t *testing.T) {
	uc, repo, _ := newFixture(activeTenant(), false)

	err := uc.HandleEvent(subscription.BillingEvent{
		CustomerRef:   "cus_desconocido",
		Status:        entity.StatusActive,
		EventSequence: 200,
	})
	assert.NoError(t, err, "huérfano debe confirmarse sin error")
	assert.Zero(t, repo.updates)
}

// Caso 6: evento con secuencia vieja se descarta sin tocar el estado.
func TestHandleEvent_EventoViejoSeDescarta(t *testing.T) {
	uc, repo, _ := newFixture(activeTenant(), false)

	err := uc.HandleEvent(subscription.BillingEvent{
		CustomerRef:   "cus_activo",
		Status:        entity.StatusCanceled,
		EventSequence: 50, // < BillingEventSeq almacenado (100)
	})
	assert.NoError(t, err)
	assert.Zero(t, repo.updates, "un evento viejo no debe escribir")
	assert.Equal(t, entity.StatusActive, repo.tenants[tenantID].SubscriptionStatus)
}

// Caso 7: evento nuevo se aplica, persiste e invalida el cache de entitlement.
func TestHandleEvent_AplicaEInvalidaCache(t *testing.T) {
	uc, repo, _ := newFixture(activeTenant(), false)
	scope := testScope(t)

	// Cargar el cache con el estado activo.
	ent, err := uc.Entitlement(scope)
	require.NoError(t, err)
	require.True(t, ent.IsActive)

	err = uc.HandleEvent(subscription.BillingEvent{
		CustomerRef:   "cus_activo",
		Status:        entity.StatusCanceled,
		EventSequence: 200,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.updates)

	// La siguiente lectura debe ver la cancelación de inmediato, no el cache.
	ent, err = uc.Entitlement(scope)
	require.NoError(t, err)
	assert.False(t, ent.IsActive, "la cancelación debe reflejarse sin esperar el TTL")
	assert.Equal(t, entity.StatusCanceled, ent.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Entitlement (camino de lectura: nunca toca al proveedor)
// ──────────────────────────────────────────────────────────────────────────────

// Caso 8: el gating de lectura funciona con el proveedor caído (falla abierto
// sobre el estado persistido).
func TestEntitlement_ProveedorCaidoNoAfectaLectura(t *testing.T) {
	uc, _, provider := newFixture(activeTenant(), true)

	ent, err := uc.Entitlement(testScope(t))
	require.NoError(t, err)
	assert.True(t, ent.IsActive)
	assert.Zero(t, provider.calls, "la lectura jamás consulta al proveedor")
}

// Caso 9: dentro del TTL las lecturas salen del cache, sin ir a la DB.
func TestEntitlement_CacheDentroDelTTL(t *testing.T) {
	uc, repo, _ := newFixture(activeTenant(), false)
	scope := testScope(t)

	_, err := uc.Entitlement(scope)
	require.NoError(t, err)
	calls := repo.getByIDCalls

	_, err = uc.Entitlement(scope)
	require.NoError(t, err)
	assert.Equal(t, calls, repo.getByIDCalls, "la segunda lectura debe salir del cache")
}
