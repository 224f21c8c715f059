package repository

import (
	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Todas las operaciones exigen el Scope del tenant autenticado: el filtro por
// tenant_id no es opcional ni puede omitirse por convención.
type ProductRepository interface {
	Create(scope domain.Scope, product *entity.Product) error
	GetByID(scope domain.Scope, id string) (*entity.Product, error)
	GetBySKU(scope domain.Scope, sku string) (*entity.Product, error)
	GetByIDs(scope domain.Scope, ids []string) ([]*entity.Product, error)
	Update(scope domain.Scope, product *entity.Product) error
	AdjustStock(scope domain.Scope, productID string, delta int) error
	List(scope domain.Scope, limit, offset int) ([]*entity.Product, error)
	Delete(scope domain.Scope, id string) error
}
