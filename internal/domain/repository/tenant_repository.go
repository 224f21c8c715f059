package repository

import "github.com/jhoicas/Vitrina-api/internal/domain/entity"

// TenantRepository define el puerto de persistencia para Tenant (DIP).
// El tenant es la identidad, no un registro poseído, por lo que no exige Scope;
// la búsqueda por BillingCustomerRef la usa el motor de entitlement al aplicar
// eventos del proveedor de pagos.
type TenantRepository interface {
	Create(tenant *entity.Tenant) error
	GetByID(id string) (*entity.Tenant, error)
	GetByEmail(email string) (*entity.Tenant, error)
	GetByBillingCustomerRef(ref string) (*entity.Tenant, error)
	UpdateBilling(tenant *entity.Tenant) error
	SetBillingCustomerRef(id, ref string) error
	SetTutorialCompleted(id string, completed bool) error
}
