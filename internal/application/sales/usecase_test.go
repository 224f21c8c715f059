package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Vitrina-api/internal/application/dto"
	"github.com/jhoicas/Vitrina-api/internal/application/sales"
	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
	"github.com/jhoicas/Vitrina-api/internal/domain/repository"
	"github.com/jhoicas/Vitrina-api/internal/domain/subscription"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeState struct {
	products     map[string]*entity.Product // por id, con tenant
	movements    []*entity.Movement
	installments []*entity.PaymentInstallment
}

type fakeProductRepo struct{ s *fakeState }

func (r *fakeProductRepo) Create(scope domain.Scope, p *entity.Product) error { return nil }
func (r *fakeProductRepo) GetByID(scope domain.Scope, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok || p.TenantID != scope.TenantID() {
		return nil, nil
	}
	return p, nil
}
func (r *fakeProductRepo) GetBySKU(scope domain.Scope, sku string) (*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) GetByIDs(scope domain.Scope, ids []string) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Update(scope domain.Scope, p *entity.Product) error { return nil }
func (r *fakeProductRepo) AdjustStock(scope domain.Scope, productID string, delta int) error {
	p := r.s.products[productID]
	if p == nil || p.TenantID != scope.TenantID() || p.Stock+delta < 0 {
		return domain.ErrInsufficientStock
	}
	p.Stock += delta
	return nil
}
func (r *fakeProductRepo) List(scope domain.Scope, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Delete(scope domain.Scope, id string) error { return nil }

type fakeMovementRepo struct{ s *fakeState }

func (r *fakeMovementRepo) Create(scope domain.Scope, m *entity.Movement) error {
	r.s.movements = append(r.s.movements, m)
	return nil
}
func (r *fakeMovementRepo) GetByID(scope domain.Scope, id string) (*entity.Movement, error) {
	for _, m := range r.s.movements {
		if m.ID == id && m.TenantID == scope.TenantID() {
			return m, nil
		}
	}
	return nil, nil
}
func (r *fakeMovementRepo) List(scope domain.Scope, limit, offset int) ([]*entity.Movement, error) {
	return r.s.movements, nil
}
func (r *fakeMovementRepo) SummaryByPeriod(scope domain.Scope, from, to time.Time) (*repository.MovementSummary, error) {
	return &repository.MovementSummary{}, nil
}

type fakeInstallmentRepo struct {
	s         *fakeState
	failOnSet bool // simula fallo de infraestructura al crear el plan
}

func (r *fakeInstallmentRepo) CreateSet(scope domain.Scope, list []*entity.PaymentInstallment) error {
	if r.failOnSet {
		return assert.AnError
	}
	r.s.installments = append(r.s.installments, list...)
	return nil
}
func (r *fakeInstallmentRepo) GetByID(scope domain.Scope, id string) (*entity.PaymentInstallment, error) {
	return nil, nil
}
func (r *fakeInstallmentRepo) ListByMovement(scope domain.Scope, movementID string) ([]*entity.PaymentInstallment, error) {
	return nil, nil
}
func (r *fakeInstallmentRepo) ListByCustomer(scope domain.Scope, customerID string, limit, offset int) ([]*entity.PaymentInstallment, error) {
	return r.s.installments, nil
}
func (r *fakeInstallmentRepo) MarkPaid(scope domain.Scope, id string) (*entity.PaymentInstallment, error) {
	return nil, nil
}

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (r *fakeCustomerRepo) Create(scope domain.Scope, c *entity.Customer) error { return nil }
func (r *fakeCustomerRepo) GetByID(scope domain.Scope, id string) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok || c.TenantID != scope.TenantID() {
		return nil, nil
	}
	return c, nil
}
func (r *fakeCustomerRepo) Update(scope domain.Scope, c *entity.Customer) error { return nil }
func (r *fakeCustomerRepo) List(scope domain.Scope, limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) Delete(scope domain.Scope, id string) error { return nil }

// fakeTxRunner imita la semántica transaccional: si el callback falla, el
// estado queda como antes (copia y restaura).
type fakeTxRunner struct {
	s           *fakeState
	failInstSet bool
}

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	movements repository.MovementRepository,
	products repository.ProductRepository,
	installments repository.InstallmentRepository,
) error) error {
	backup := fakeState{
		products:     make(map[string]*entity.Product, len(t.s.products)),
		movements:    append([]*entity.Movement(nil), t.s.movements...),
		installments: append([]*entity.PaymentInstallment(nil), t.s.installments...),
	}
	for k, v := range t.s.products {
		cp := *v
		backup.products[k] = &cp
	}

	err := fn(&fakeMovementRepo{s: t.s}, &fakeProductRepo{s: t.s}, &fakeInstallmentRepo{s: t.s, failOnSet: t.failInstSet})
	if err != nil {
		*t.s = backup
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	tenantA   = "00000000-0000-0000-0000-00000000000a"
	tenantB   = "00000000-0000-0000-0000-00000000000b"
	productID = "00000000-0000-0000-0000-0000000000p1"
	custID    = "00000000-0000-0000-0000-0000000000c1"
)

func scopeFor(t *testing.T, tenantID string) domain.Scope {
	t.Helper()
	scope, err := domain.NewScope(tenantID)
	require.NoError(t, err)
	return scope
}

func newFixture(failInstSet bool) (*sales.UseCase, *fakeState) {
	state := &fakeState{
		products: map[string]*entity.Product{
			productID: {
				ID:       productID,
				TenantID: tenantA,
				Name:     "Collar artesanal",
				Price:    decimal.RequireFromString("100"),
				Stock:    10,
			},
		},
	}
	customers := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		custID: {ID: custID, TenantID: tenantA, Name: "Ana"},
	}}
	installments := &fakeInstallmentRepo{s: state}
	uc := sales.NewUseCase(&fakeTxRunner{s: state, failInstSet: failInstSet}, customers, installments)
	return uc, state
}

func ptr[T any](v T) *T { return &v }

// premiumEnt entitlement de un tenant premium activo: habilita cuotas.
func premiumEnt() subscription.Entitlement {
	return subscription.Entitlement{Plan: entity.PlanPremium, Status: entity.StatusActive, IsActive: true}
}

// starterEnt entitlement de un tenant starter activo: sin cuotas.
func starterEnt() subscription.Entitlement {
	return subscription.Entitlement{Plan: entity.PlanStarter, Status: entity.StatusActive, IsActive: true}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SplitInstallments
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: la suma de las cuotas es exactamente el total, con residuo en la última.
func TestSplitInstallments_SumaExacta(t *testing.T) {
	casos := []struct {
		total  string
		n      int
		ultima string
	}{
		{"100.00", 3, "33.34"},  // 33.33 + 33.33 + 33.34
		{"100.00", 4, "25.00"},  // división exacta
		{"0.10", 3, "0.04"},     // 0.03 + 0.03 + 0.04
		{"999.99", 7, "142.89"}, // 142.85 * 6 + 142.89
	}
	firstDue := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	for _, c := range casos {
		total := decimal.RequireFromString(c.total)
		set := sales.SplitInstallments(total, c.n, firstDue)
		require.Len(t, set, c.n)

		suma := decimal.Zero
		for _, cuota := range set {
			suma = suma.Add(cuota.Amount)
		}
		assert.True(t, suma.Equal(total),
			"total %s en %d cuotas: la suma debe ser exacta, fue %s", c.total, c.n, suma)
		assert.Equal(t, c.ultima, set[c.n-1].Amount.StringFixed(2),
			"total %s en %d cuotas: la última absorbe el residuo", c.total, c.n)
	}
}

// Caso 2: vencimientos mensuales a partir del primero.
func TestSplitInstallments_VencimientosMensuales(t *testing.T) {
	firstDue := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	set := sales.SplitInstallments(decimal.RequireFromString("300"), 3, firstDue)

	assert.Equal(t, firstDue, set[0].DueDate)
	assert.Equal(t, firstDue.AddDate(0, 1, 0), set[1].DueDate)
	assert.Equal(t, firstDue.AddDate(0, 2, 0), set[2].DueDate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CreateSale
// ──────────────────────────────────────────────────────────────────────────────

// Caso 3: venta de contado descuenta stock y registra el movimiento.
func TestCreateSale_ContadoDescuentaStock(t *testing.T) {
	uc, state := newFixture(false)
	scope := scopeFor(t, tenantA)

	out, err := uc.CreateSale(context.Background(), scope, starterEnt(), dto.CreateSaleRequest{
		ProductID: productID,
		Quantity:  3,
	})
	require.NoError(t, err)

	assert.Equal(t, 7, state.products[productID].Stock, "stock 10 - 3 = 7")
	assert.Len(t, state.movements, 1)
	assert.Equal(t, "300", out.Movement.Total.String(), "3 x 100")
	assert.Empty(t, out.Installments, "venta de contado no genera cuotas")
}

// Caso 4: stock insuficiente rechaza la venta sin efectos.
func TestCreateSale_StockInsuficiente(t *testing.T) {
	uc, state := newFixture(false)
	scope := scopeFor(t, tenantA)

	_, err := uc.CreateSale(context.Background(), scope, starterEnt(), dto.CreateSaleRequest{
		ProductID: productID,
		Quantity:  11,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 10, state.products[productID].Stock, "el stock no debe cambiar")
	assert.Empty(t, state.movements, "no debe quedar movimiento registrado")
}

// Caso 5: venta a cuotas persiste el plan completo y la suma cuadra.
func TestCreateSale_ConCuotas(t *testing.T) {
	uc, state := newFixture(false)
	scope := scopeFor(t, tenantA)
	firstDue := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	out, err := uc.CreateSale(context.Background(), scope, premiumEnt(), dto.CreateSaleRequest{
		ProductID:    productID,
		Quantity:     1,
		CustomerID:   ptr(custID),
		Installments: 3,
		FirstDueDate: &firstDue,
	})
	require.NoError(t, err)
	require.Len(t, out.Installments, 3)
	assert.Len(t, state.installments, 3)

	suma := decimal.Zero
	for _, cuota := range out.Installments {
		suma = suma.Add(cuota.Amount)
		assert.Equal(t, entity.InstallmentPending, cuota.Status)
	}
	assert.True(t, suma.Equal(out.Movement.Total), "las cuotas deben sumar el total de la venta")
}

// Caso 6: si el plan de cuotas falla, se revierte TODO: ni movimiento ni stock.
func TestCreateSale_FalloEnCuotasRevierteTodo(t *testing.T) {
	uc, state := newFixture(true)
	scope := scopeFor(t, tenantA)
	firstDue := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	_, err := uc.CreateSale(context.Background(), scope, premiumEnt(), dto.CreateSaleRequest{
		ProductID:    productID,
		Quantity:     2,
		CustomerID:   ptr(custID),
		Installments: 3,
		FirstDueDate: &firstDue,
	})
	require.Error(t, err)

	assert.Equal(t, 10, state.products[productID].Stock, "el stock debe volver a 10")
	assert.Empty(t, state.movements, "el movimiento debe revertirse")
	assert.Empty(t, state.installments, "no debe quedar plan parcial")
}

// Caso 7: cuotas exigen cliente y primera fecha de vencimiento.
func TestCreateSale_CuotasSinClienteRechazada(t *testing.T) {
	uc, _ := newFixture(false)
	scope := scopeFor(t, tenantA)

	_, err := uc.CreateSale(context.Background(), scope, premiumEnt(), dto.CreateSaleRequest{
		ProductID:    productID,
		Quantity:     1,
		Installments: 3,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Caso 7b: las cuotas son una feature premium; un tenant starter activo puede
// vender de contado pero no abrir un plan de cuotas.
func TestCreateSale_CuotasExigenPlanPremium(t *testing.T) {
	uc, state := newFixture(false)
	scope := scopeFor(t, tenantA)
	firstDue := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	_, err := uc.CreateSale(context.Background(), scope, starterEnt(), dto.CreateSaleRequest{
		ProductID:    productID,
		Quantity:     1,
		CustomerID:   ptr(custID),
		Installments: 3,
		FirstDueDate: &firstDue,
	})
	assert.ErrorIs(t, err, domain.ErrEntitlementDenied)
	assert.Equal(t, 10, state.products[productID].Stock, "sin venta: el stock no cambia")
	assert.Empty(t, state.movements)
	assert.Empty(t, state.installments, "no debe persistirse ninguna cuota")

	// La misma cuenta starter sí vende de contado.
	_, err = uc.CreateSale(context.Background(), scope, starterEnt(), dto.CreateSaleRequest{
		ProductID: productID,
		Quantity:  1,
	})
	assert.NoError(t, err)
}

// Caso 8: el producto de otro tenant es invisible: not found, no fuga.
func TestCreateSale_ProductoDeOtroTenantEsNotFound(t *testing.T) {
	uc, state := newFixture(false)
	scope := scopeFor(t, tenantB)

	_, err := uc.CreateSale(context.Background(), scope, starterEnt(), dto.CreateSaleRequest{
		ProductID: productID,
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"un producto ajeno debe responder igual que uno inexistente")
	assert.Equal(t, 10, state.products[productID].Stock)
}
