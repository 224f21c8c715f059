package store_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Vitrina-api/internal/application/dto"
	"github.com/jhoicas/Vitrina-api/internal/application/store"
	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeStoreRepo struct {
	stores map[string]*entity.PublicStore // por tenant id
}

func (r *fakeStoreRepo) Create(scope domain.Scope, s *entity.PublicStore) error {
	for _, other := range r.stores {
		if other.Slug == s.Slug {
			return domain.ErrDuplicate
		}
	}
	r.stores[scope.TenantID()] = s
	return nil
}
func (r *fakeStoreRepo) GetByTenant(scope domain.Scope) (*entity.PublicStore, error) {
	return r.stores[scope.TenantID()], nil
}
func (r *fakeStoreRepo) Update(scope domain.Scope, s *entity.PublicStore) error {
	r.stores[scope.TenantID()] = s
	return nil
}
func (r *fakeStoreRepo) GetActiveBySlug(slug string) (*entity.PublicStore, error) {
	for _, s := range r.stores {
		if s.Slug == slug && s.IsActive {
			return s, nil
		}
	}
	return nil, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(scope domain.Scope, p *entity.Product) error { return nil }
func (r *fakeProductRepo) GetByID(scope domain.Scope, id string) (*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) GetBySKU(scope domain.Scope, sku string) (*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) GetByIDs(scope domain.Scope, ids []string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok && p.TenantID == scope.TenantID() {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *fakeProductRepo) Update(scope domain.Scope, p *entity.Product) error { return nil }
func (r *fakeProductRepo) AdjustStock(scope domain.Scope, productID string, delta int) error {
	return nil
}
func (r *fakeProductRepo) List(scope domain.Scope, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Delete(scope domain.Scope, id string) error { return nil }

type visitKey struct{ storeID, sessionID string }

type fakeAnalyticsRepo struct {
	visits map[visitKey]int
}

func (r *fakeAnalyticsRepo) Upsert(storeID, sessionID string) error {
	if r.visits == nil {
		r.visits = map[visitKey]int{}
	}
	r.visits[visitKey{storeID, sessionID}]++
	return nil
}
func (r *fakeAnalyticsRepo) ListByStore(scope domain.Scope, storeID string, limit, offset int) ([]*entity.StoreAnalytics, error) {
	return nil, nil
}
func (r *fakeAnalyticsRepo) TotalVisits(scope domain.Scope, storeID string) (int, error) {
	total := 0
	for k, n := range r.visits {
		if k.storeID == storeID {
			total += n
		}
	}
	return total, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	tenantA = "00000000-0000-0000-0000-00000000000a"
	tenantB = "00000000-0000-0000-0000-00000000000b"
)

func newFixture() (*store.UseCase, *fakeStoreRepo, *fakeProductRepo, *fakeAnalyticsRepo) {
	stores := &fakeStoreRepo{stores: map[string]*entity.PublicStore{}}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", TenantID: tenantA, Name: "Collar", Price: decimal.RequireFromString("35.50")},
		"p2": {ID: "p2", TenantID: tenantB, Name: "Ajeno", Price: decimal.RequireFromString("10")},
	}}
	analytics := &fakeAnalyticsRepo{}
	return store.NewUseCase(stores, products, analytics), stores, products, analytics
}

func scopeFor(t *testing.T, tenantID string) domain.Scope {
	t.Helper()
	scope, err := domain.NewScope(tenantID)
	require.NoError(t, err)
	return scope
}

func ptr[T any](v T) *T { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Tests Upsert
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: crear deriva el slug del título (sin tildes ni espacios) y editar
// el título después NO cambia el slug: la URL pública es estable.
func TestUpsert_SlugInmutable(t *testing.T) {
	uc, _, _, _ := newFixture()
	scope := scopeFor(t, tenantA)

	created, err := uc.Upsert(scope, dto.UpsertStoreRequest{Title: "Artesanías María"})
	require.NoError(t, err)
	assert.Equal(t, "artesanias-maria", created.Slug)

	updated, err := uc.Upsert(scope, dto.UpsertStoreRequest{Title: "Otro Nombre Total"})
	require.NoError(t, err)
	assert.Equal(t, "artesanias-maria", updated.Slug, "el slug no debe cambiar al editar el título")
	assert.Equal(t, "Otro Nombre Total", updated.Title)
}

// Caso 2: exhibir productos de otro tenant se rechaza.
func TestUpsert_ProductosAjenosRechazados(t *testing.T) {
	uc, _, _, _ := newFixture()
	scope := scopeFor(t, tenantA)

	_, err := uc.Upsert(scope, dto.UpsertStoreRequest{
		Title:              "Mi tienda",
		SelectedProductIDs: []string{"p1", "p2"}, // p2 es del tenant B
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Caso 3: colisión de slug con la vitrina de otro tenant.
func TestUpsert_SlugDuplicadoEntreTenants(t *testing.T) {
	uc, _, _, _ := newFixture()

	_, err := uc.Upsert(scopeFor(t, tenantA), dto.UpsertStoreRequest{Title: "La Tienda"})
	require.NoError(t, err)

	_, err = uc.Upsert(scopeFor(t, tenantB), dto.UpsertStoreRequest{Title: "La Tienda"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests lectura pública
// ──────────────────────────────────────────────────────────────────────────────

// Caso 4: vitrina inactiva y vitrina inexistente responden el MISMO not found.
func TestPublicBySlug_NotFoundUniforme(t *testing.T) {
	uc, _, _, _ := newFixture()
	scope := scopeFor(t, tenantA)

	_, err := uc.Upsert(scope, dto.UpsertStoreRequest{
		Title:    "Tienda Pausada",
		IsActive: ptr(false),
	})
	require.NoError(t, err)

	_, errInactiva := uc.PublicBySlug("tienda-pausada")
	_, errInexistente := uc.PublicBySlug("no-existe")

	assert.ErrorIs(t, errInactiva, domain.ErrNotFound)
	assert.ErrorIs(t, errInexistente, domain.ErrNotFound)
	assert.Equal(t, errInactiva, errInexistente,
		"pausada e inexistente deben ser indistinguibles para el visitante")
}

// Caso 5: la vista pública resuelve los productos en línea, sin ids internos.
func TestPublicBySlug_ProductosEnLinea(t *testing.T) {
	uc, _, _, _ := newFixture()
	scope := scopeFor(t, tenantA)

	_, err := uc.Upsert(scope, dto.UpsertStoreRequest{
		Title:              "Tienda Activa",
		SelectedProductIDs: []string{"p1"},
		IsActive:           ptr(true),
	})
	require.NoError(t, err)

	out, err := uc.PublicBySlug("tienda-activa")
	require.NoError(t, err)
	require.Len(t, out.SelectedProducts, 1)
	assert.Equal(t, "Collar", out.SelectedProducts[0].Name)
	assert.Equal(t, "35.50", out.SelectedProducts[0].Price)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests visitas
// ──────────────────────────────────────────────────────────────────────────────

// Caso 6: una sesión que repite visita acumula en su fila; sesiones distintas
// suman filas. El total refleja todo.
func TestRegisterVisit_AcumulaPorSesion(t *testing.T) {
	uc, _, _, analytics := newFixture()
	scope := scopeFor(t, tenantA)

	_, err := uc.Upsert(scope, dto.UpsertStoreRequest{Title: "Mi Tienda", IsActive: ptr(true)})
	require.NoError(t, err)

	require.NoError(t, uc.RegisterVisit("mi-tienda", "sesion-1"))
	require.NoError(t, uc.RegisterVisit("mi-tienda", "sesion-1"))
	require.NoError(t, uc.RegisterVisit("mi-tienda", "sesion-2"))

	assert.Len(t, analytics.visits, 2, "una fila por sesión")

	stats, err := uc.Stats(scope)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalVisits)
}

// Caso 7: visita sin session_id se rechaza; a vitrina inactiva, not found.
func TestRegisterVisit_Validaciones(t *testing.T) {
	uc, _, _, _ := newFixture()
	scope := scopeFor(t, tenantA)

	_, err := uc.Upsert(scope, dto.UpsertStoreRequest{Title: "Cerrada", IsActive: ptr(false)})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.RegisterVisit("cerrada", ""), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.RegisterVisit("cerrada", "sesion-1"), domain.ErrNotFound)
}
