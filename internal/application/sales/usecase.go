package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Vitrina-api/internal/application/dto"
	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
	"github.com/jhoicas/Vitrina-api/internal/domain/repository"
	"github.com/jhoicas/Vitrina-api/internal/domain/subscription"
)

// maxInstallments cota superior razonable para un plan de cuotas.
const maxInstallments = 48

// UseCase registra ventas y administra los planes de cuotas asociados.
type UseCase struct {
	tx              TxRunner
	customerRepo    repository.CustomerRepository
	installmentRepo repository.InstallmentRepository
}

// NewUseCase construye el caso de uso de ventas.
func NewUseCase(tx TxRunner, customerRepo repository.CustomerRepository, installmentRepo repository.InstallmentRepository) *UseCase {
	return &UseCase{tx: tx, customerRepo: customerRepo, installmentRepo: installmentRepo}
}

// CreateSale registra una venta de forma atómica: movimiento de inventario,
// descuento de stock y, si Installments > 0, el plan de cuotas completo.
// Cualquier fallo revierte todo: no hay ventas sin stock descontado ni planes
// de cuotas a medias.
//
// La venta de contado es una operación starter; el plan de cuotas exige que el
// entitlement del tenant habilite la feature, si no responde ErrEntitlementDenied.
func (uc *UseCase) CreateSale(ctx context.Context, scope domain.Scope, ent subscription.Entitlement, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Installments < 0 || in.Installments > maxInstallments {
		return nil, domain.ErrInvalidInput
	}
	if in.Installments > 0 {
		if !ent.CanUse(subscription.FeatureInstallments) {
			return nil, domain.ErrEntitlementDenied
		}
		if in.CustomerID == nil || *in.CustomerID == "" || in.FirstDueDate == nil {
			return nil, domain.ErrInvalidInput
		}
		customer, err := uc.customerRepo.GetByID(scope, *in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
	}

	var out dto.SaleResponse
	err := uc.tx.Run(ctx, func(
		movements repository.MovementRepository,
		products repository.ProductRepository,
		installments repository.InstallmentRepository,
	) error {
		product, err := products.GetByID(scope, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.Stock < in.Quantity {
			return domain.ErrInsufficientStock
		}

		unitPrice := product.Price
		if in.UnitPrice != nil {
			if in.UnitPrice.IsNegative() {
				return domain.ErrInvalidInput
			}
			unitPrice = *in.UnitPrice
		}
		total := unitPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))

		now := time.Now()
		movement := &entity.Movement{
			ID:         uuid.New().String(),
			TenantID:   scope.TenantID(),
			Type:       entity.MovementSale,
			ProductID:  product.ID,
			Quantity:   in.Quantity,
			UnitPrice:  unitPrice,
			Total:      total,
			CustomerID: in.CustomerID,
			OccurredAt: now,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := movements.Create(scope, movement); err != nil {
			return err
		}
		if err := products.AdjustStock(scope, product.ID, -in.Quantity); err != nil {
			return err
		}

		out.Movement = toMovementResponse(movement)

		if in.Installments > 0 {
			set := SplitInstallments(total, in.Installments, *in.FirstDueDate)
			plan := make([]*entity.PaymentInstallment, 0, len(set))
			for i, cuota := range set {
				plan = append(plan, &entity.PaymentInstallment{
					ID:                uuid.New().String(),
					TenantID:          scope.TenantID(),
					CustomerID:        *in.CustomerID,
					MovementID:        movement.ID,
					Number:            i + 1,
					TotalInstallments: in.Installments,
					Amount:            cuota.Amount,
					DueDate:           cuota.DueDate,
					Status:            entity.InstallmentPending,
					CreatedAt:         now,
					UpdatedAt:         now,
				})
			}
			if err := installments.CreateSet(scope, plan); err != nil {
				return err
			}
			out.Installments = toInstallmentResponses(plan)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Installment monto y vencimiento de una cuota calculada.
type Installment struct {
	Amount  decimal.Decimal
	DueDate time.Time
}

// SplitInstallments reparte el total en n cuotas mensuales de dos decimales.
// La última cuota absorbe el residuo del redondeo: la suma de las cuotas es
// exactamente el total.
func SplitInstallments(total decimal.Decimal, n int, firstDue time.Time) []Installment {
	base := total.Div(decimal.NewFromInt(int64(n))).RoundDown(2)
	out := make([]Installment, n)
	acc := decimal.Zero
	for i := 0; i < n; i++ {
		amount := base
		if i == n-1 {
			amount = total.Sub(acc)
		}
		out[i] = Installment{
			Amount:  amount,
			DueDate: firstDue.AddDate(0, i, 0),
		}
		acc = acc.Add(amount)
	}
	return out
}

// ListInstallmentsByCustomer lista las cuotas de un cliente del tenant.
func (uc *UseCase) ListInstallmentsByCustomer(scope domain.Scope, customerID string, limit, offset int) (*dto.InstallmentListResponse, error) {
	list, err := uc.installmentRepo.ListByCustomer(scope, customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	return &dto.InstallmentListResponse{
		Items: toInstallmentResponses(list),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// PayInstallment marca una cuota como pagada.
func (uc *UseCase) PayInstallment(scope domain.Scope, id string) (*dto.InstallmentResponse, error) {
	installment, err := uc.installmentRepo.MarkPaid(scope, id)
	if err != nil {
		return nil, err
	}
	if installment == nil {
		return nil, domain.ErrNotFound
	}
	resp := toInstallmentResponse(installment)
	return &resp, nil
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:         m.ID,
		Type:       m.Type,
		ProductID:  m.ProductID,
		Quantity:   m.Quantity,
		UnitPrice:  m.UnitPrice,
		Total:      m.Total,
		CustomerID: m.CustomerID,
		OccurredAt: m.OccurredAt,
	}
}

func toInstallmentResponse(i *entity.PaymentInstallment) dto.InstallmentResponse {
	return dto.InstallmentResponse{
		ID:                i.ID,
		CustomerID:        i.CustomerID,
		MovementID:        i.MovementID,
		Number:            i.Number,
		TotalInstallments: i.TotalInstallments,
		Amount:            i.Amount,
		DueDate:           i.DueDate,
		Status:            i.Status,
		PaidAt:            i.PaidAt,
	}
}

func toInstallmentResponses(list []*entity.PaymentInstallment) []dto.InstallmentResponse {
	out := make([]dto.InstallmentResponse, 0, len(list))
	for _, i := range list {
		out = append(out, toInstallmentResponse(i))
	}
	return out
}
