package repository

import (
	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
)

// CampaignRepository define el puerto de persistencia para Campaign (DIP).
type CampaignRepository interface {
	Create(scope domain.Scope, campaign *entity.Campaign) error
	GetByID(scope domain.Scope, id string) (*entity.Campaign, error)
	Update(scope domain.Scope, campaign *entity.Campaign) error
	List(scope domain.Scope, limit, offset int) ([]*entity.Campaign, error)
	Delete(scope domain.Scope, id string) error
}
