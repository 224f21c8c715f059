package repository

import (
	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
)

// InstallmentRepository define el puerto de persistencia para PaymentInstallment (DIP).
// CreateSet inserta el plan de cuotas completo; dentro de una transacción
// (TxRunner) el plan nunca queda parcialmente visible.
type InstallmentRepository interface {
	CreateSet(scope domain.Scope, installments []*entity.PaymentInstallment) error
	GetByID(scope domain.Scope, id string) (*entity.PaymentInstallment, error)
	ListByMovement(scope domain.Scope, movementID string) ([]*entity.PaymentInstallment, error)
	ListByCustomer(scope domain.Scope, customerID string, limit, offset int) ([]*entity.PaymentInstallment, error)
	MarkPaid(scope domain.Scope, id string) (*entity.PaymentInstallment, error)
}
