package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Vitrina-api/internal/application/dto"
	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
	"github.com/jhoicas/Vitrina-api/internal/domain/repository"
)

var percentMax = decimal.NewFromInt(100)

// CampaignUseCase casos de uso CRUD para campañas de descuento (premium).
type CampaignUseCase struct {
	repo repository.CampaignRepository
}

// NewCampaignUseCase construye el caso de uso.
func NewCampaignUseCase(repo repository.CampaignRepository) *CampaignUseCase {
	return &CampaignUseCase{repo: repo}
}

// Create crea una nueva campaña. El descuento debe estar en [0, 100] y el
// rango de fechas ser coherente.
func (uc *CampaignUseCase) Create(scope domain.Scope, in dto.CreateCampaignRequest) (*dto.CampaignResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.DiscountPercent.IsNegative() || in.DiscountPercent.GreaterThan(percentMax) {
		return nil, domain.ErrInvalidInput
	}
	if !in.EndsAt.After(in.StartsAt) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	campaign := &entity.Campaign{
		ID:              uuid.New().String(),
		TenantID:        scope.TenantID(),
		Name:            in.Name,
		Description:     in.Description,
		DiscountPercent: in.DiscountPercent,
		StartsAt:        in.StartsAt,
		EndsAt:          in.EndsAt,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(scope, campaign); err != nil {
		return nil, err
	}
	return toCampaignResponse(campaign), nil
}

// GetByID obtiene una campaña por ID dentro del scope del tenant.
func (uc *CampaignUseCase) GetByID(scope domain.Scope, id string) (*dto.CampaignResponse, error) {
	campaign, err := uc.repo.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, domain.ErrNotFound
	}
	return toCampaignResponse(campaign), nil
}

// Update actualiza una campaña.
func (uc *CampaignUseCase) Update(scope domain.Scope, id string, in dto.UpdateCampaignRequest) (*dto.CampaignResponse, error) {
	campaign, err := uc.repo.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		campaign.Name = *in.Name
	}
	if in.Description != nil {
		campaign.Description = *in.Description
	}
	if in.DiscountPercent != nil {
		if in.DiscountPercent.IsNegative() || in.DiscountPercent.GreaterThan(percentMax) {
			return nil, domain.ErrInvalidInput
		}
		campaign.DiscountPercent = *in.DiscountPercent
	}
	if in.StartsAt != nil {
		campaign.StartsAt = *in.StartsAt
	}
	if in.EndsAt != nil {
		campaign.EndsAt = *in.EndsAt
	}
	if !campaign.EndsAt.After(campaign.StartsAt) {
		return nil, domain.ErrInvalidInput
	}
	if in.Active != nil {
		campaign.Active = *in.Active
	}
	campaign.UpdatedAt = time.Now()
	if err := uc.repo.Update(scope, campaign); err != nil {
		return nil, err
	}
	return toCampaignResponse(campaign), nil
}

// List lista campañas del tenant con paginación.
func (uc *CampaignUseCase) List(scope domain.Scope, limit, offset int) (*dto.CampaignListResponse, error) {
	list, err := uc.repo.List(scope, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CampaignResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCampaignResponse(c))
	}
	return &dto.CampaignListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una campaña del tenant.
func (uc *CampaignUseCase) Delete(scope domain.Scope, id string) error {
	return uc.repo.Delete(scope, id)
}

func toCampaignResponse(c *entity.Campaign) *dto.CampaignResponse {
	if c == nil {
		return nil
	}
	return &dto.CampaignResponse{
		ID:              c.ID,
		Name:            c.Name,
		Description:     c.Description,
		DiscountPercent: c.DiscountPercent,
		StartsAt:        c.StartsAt,
		EndsAt:          c.EndsAt,
		Active:          c.Active,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
