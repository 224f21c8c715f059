package usecase

import (
	"github.com/jhoicas/Vitrina-api/internal/application/dto"
	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/internal/domain/repository"
)

// TenantUseCase operaciones sobre la propia cuenta: perfil y toggle de tutorial.
type TenantUseCase struct {
	repo repository.TenantRepository
}

// NewTenantUseCase construye el caso de uso.
func NewTenantUseCase(repo repository.TenantRepository) *TenantUseCase {
	return &TenantUseCase{repo: repo}
}

// Me devuelve el perfil de la cuenta autenticada.
func (uc *TenantUseCase) Me(scope domain.Scope) (*dto.TenantResponse, error) {
	tenant, err := uc.repo.GetByID(scope.TenantID())
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrTenantNotFound
	}
	return &dto.TenantResponse{
		ID:                 tenant.ID,
		Email:              tenant.Email,
		Name:               tenant.Name,
		Plan:               tenant.Plan,
		SubscriptionStatus: tenant.SubscriptionStatus,
		TrialEndsAt:        tenant.TrialEndsAt,
		TutorialCompleted:  tenant.TutorialCompleted,
		CreatedAt:          tenant.CreatedAt,
		UpdatedAt:          tenant.UpdatedAt,
	}, nil
}

// SetTutorialCompleted marca el tutorial como completado (o lo reinicia).
// Sin validación más allá del tipo: es un boolean de la propia cuenta.
func (uc *TenantUseCase) SetTutorialCompleted(scope domain.Scope, completed bool) error {
	return uc.repo.SetTutorialCompleted(scope.TenantID(), completed)
}
