package repository

import (
	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(scope domain.Scope, supplier *entity.Supplier) error
	GetByID(scope domain.Scope, id string) (*entity.Supplier, error)
	Update(scope domain.Scope, supplier *entity.Supplier) error
	List(scope domain.Scope, limit, offset int) ([]*entity.Supplier, error)
	Delete(scope domain.Scope, id string) error
}
