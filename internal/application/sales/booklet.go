package sales

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
	"github.com/jhoicas/Vitrina-api/internal/domain/repository"
)

// BookletData datos para el PDF del carné de pagos de una venta a cuotas.
type BookletData struct {
	StoreName    string
	CustomerName string
	SaleDate     time.Time
	Total        decimal.Decimal
	Rows         []BookletRow
}

// BookletRow una cuota en el carné.
type BookletRow struct {
	Number  int
	Amount  decimal.Decimal
	DueDate time.Time
	Status  string
}

// BookletUseCase genera el carné de pagos (PDF) del plan de cuotas de una venta.
type BookletUseCase struct {
	tenantRepo      repository.TenantRepository
	movementRepo    repository.MovementRepository
	customerRepo    repository.CustomerRepository
	installmentRepo repository.InstallmentRepository
	generator       BookletGenerator
}

// NewBookletUseCase construye el caso de uso.
func NewBookletUseCase(
	tenantRepo repository.TenantRepository,
	movementRepo repository.MovementRepository,
	customerRepo repository.CustomerRepository,
	installmentRepo repository.InstallmentRepository,
	generator BookletGenerator,
) *BookletUseCase {
	return &BookletUseCase{
		tenantRepo:      tenantRepo,
		movementRepo:    movementRepo,
		customerRepo:    customerRepo,
		installmentRepo: installmentRepo,
		generator:       generator,
	}
}

// Generate arma y genera el PDF del carné para la venta indicada.
// La venta debe tener plan de cuotas; si no, ErrNotFound.
func (uc *BookletUseCase) Generate(scope domain.Scope, movementID string) ([]byte, error) {
	movement, err := uc.movementRepo.GetByID(scope, movementID)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, domain.ErrNotFound
	}
	installments, err := uc.installmentRepo.ListByMovement(scope, movementID)
	if err != nil {
		return nil, err
	}
	if len(installments) == 0 {
		return nil, domain.ErrNotFound
	}

	tenant, err := uc.tenantRepo.GetByID(scope.TenantID())
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrTenantNotFound
	}

	customerName := ""
	if movement.CustomerID != nil {
		customer, err := uc.customerRepo.GetByID(scope, *movement.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer != nil {
			customerName = customer.Name
		}
	}

	data := BookletData{
		StoreName:    tenant.Name,
		CustomerName: customerName,
		SaleDate:     movement.OccurredAt,
		Total:        movement.Total,
		Rows:         make([]BookletRow, 0, len(installments)),
	}
	for _, i := range installments {
		data.Rows = append(data.Rows, BookletRow{
			Number:  i.Number,
			Amount:  i.Amount,
			DueDate: i.DueDate,
			Status:  statusLabel(i.Status),
		})
	}
	return uc.generator.Generate(data)
}

func statusLabel(s string) string {
	switch s {
	case entity.InstallmentPaid:
		return "Pagada"
	case entity.InstallmentOverdue:
		return "Vencida"
	default:
		return "Pendiente"
	}
}
