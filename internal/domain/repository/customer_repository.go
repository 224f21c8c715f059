package repository

import (
	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer (DIP).
type CustomerRepository interface {
	Create(scope domain.Scope, customer *entity.Customer) error
	GetByID(scope domain.Scope, id string) (*entity.Customer, error)
	Update(scope domain.Scope, customer *entity.Customer) error
	List(scope domain.Scope, limit, offset int) ([]*entity.Customer, error)
	Delete(scope domain.Scope, id string) error
}
