package sales

import (
	"context"

	"github.com/jhoicas/Vitrina-api/internal/domain/repository"
)

// TxRunner ejecuta el callback con repos atados a una misma transacción:
// la venta (movimiento + ajuste de stock + plan de cuotas) se confirma o se
// revierte completa, nunca queda un plan de cuotas parcial visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movements repository.MovementRepository,
		products repository.ProductRepository,
		installments repository.InstallmentRepository,
	) error) error
}

// BookletGenerator genera el PDF del carné de pagos de una venta a cuotas.
// La implementación vive en infrastructure (maroto).
type BookletGenerator interface {
	Generate(data BookletData) ([]byte, error)
}
