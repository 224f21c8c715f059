package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Vitrina-api/internal/application/dto"
	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
	"github.com/jhoicas/Vitrina-api/internal/domain/repository"
	"github.com/jhoicas/Vitrina-api/internal/domain/slug"
)

// maxSelectedProducts cota del subconjunto curado exhibido en la vitrina.
const maxSelectedProducts = 50

// UseCase casos de uso de la vitrina pública: gestión (dueño, premium) y
// lectura/visitas anónimas.
type UseCase struct {
	storeRepo     repository.StoreRepository
	productRepo   repository.ProductRepository
	analyticsRepo repository.AnalyticsRepository
}

// NewUseCase construye el caso de uso de vitrina.
func NewUseCase(storeRepo repository.StoreRepository, productRepo repository.ProductRepository, analyticsRepo repository.AnalyticsRepository) *UseCase {
	return &UseCase{storeRepo: storeRepo, productRepo: productRepo, analyticsRepo: analyticsRepo}
}

// Upsert crea o actualiza la vitrina del tenant (una por tenant).
// El slug se deriva del título en la creación y nunca cambia después, aunque
// el título se edite: la URL pública es estable.
func (uc *UseCase) Upsert(scope domain.Scope, in dto.UpsertStoreRequest) (*dto.StoreResponse, error) {
	if in.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.SelectedProductIDs) > maxSelectedProducts {
		return nil, domain.ErrInvalidInput
	}
	// Los productos exhibidos deben existir y ser del tenant.
	if len(in.SelectedProductIDs) > 0 {
		owned, err := uc.productRepo.GetByIDs(scope, in.SelectedProductIDs)
		if err != nil {
			return nil, err
		}
		if len(owned) != len(in.SelectedProductIDs) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	existing, err := uc.storeRepo.GetByTenant(scope)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		s := slug.Make(in.Title)
		if s == "" {
			return nil, domain.ErrInvalidInput
		}
		created := &entity.PublicStore{
			ID:                 uuid.New().String(),
			TenantID:           scope.TenantID(),
			Slug:               s,
			Title:              in.Title,
			Description:        in.Description,
			WhatsappMessage:    in.WhatsappMessage,
			Phone:              in.Phone,
			BackgroundColor:    in.BackgroundColor,
			LogoURL:            in.LogoURL,
			SelectedProductIDs: in.SelectedProductIDs,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if in.IsActive != nil {
			created.IsActive = *in.IsActive
		}
		if err := uc.storeRepo.Create(scope, created); err != nil {
			return nil, err
		}
		return toStoreResponse(created), nil
	}

	existing.Title = in.Title
	existing.Description = in.Description
	existing.WhatsappMessage = in.WhatsappMessage
	existing.Phone = in.Phone
	existing.BackgroundColor = in.BackgroundColor
	existing.LogoURL = in.LogoURL
	existing.SelectedProductIDs = in.SelectedProductIDs
	if in.IsActive != nil {
		existing.IsActive = *in.IsActive
	}
	existing.UpdatedAt = now
	if err := uc.storeRepo.Update(scope, existing); err != nil {
		return nil, err
	}
	return toStoreResponse(existing), nil
}

// Mine devuelve la vitrina del tenant autenticado.
func (uc *UseCase) Mine(scope domain.Scope) (*dto.StoreResponse, error) {
	store, err := uc.storeRepo.GetByTenant(scope)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	return toStoreResponse(store), nil
}

// Stats devuelve las visitas acumuladas de la vitrina del tenant.
func (uc *UseCase) Stats(scope domain.Scope) (*dto.StoreStatsResponse, error) {
	store, err := uc.storeRepo.GetByTenant(scope)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	total, err := uc.analyticsRepo.TotalVisits(scope, store.ID)
	if err != nil {
		return nil, err
	}
	return &dto.StoreStatsResponse{TotalVisits: total}, nil
}

// PublicBySlug resuelve la vitrina pública por slug, solo si está activa.
// Inactiva o inexistente responden igual (ErrNotFound uniforme): el lector
// anónimo no puede distinguir "existe pero apagada" de "nunca existió".
func (uc *UseCase) PublicBySlug(slugValue string) (*dto.PublicStoreResponse, error) {
	store, err := uc.storeRepo.GetActiveBySlug(slugValue)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	out := &dto.PublicStoreResponse{
		Title:            store.Title,
		Description:      store.Description,
		WhatsappMessage:  store.WhatsappMessage,
		Phone:            store.Phone,
		BackgroundColor:  store.BackgroundColor,
		LogoURL:          store.LogoURL,
		SelectedProducts: []dto.PublicStoreProduct{},
	}
	if len(store.SelectedProductIDs) == 0 {
		return out, nil
	}

	// Lectura transitiva: el scope sale de la vitrina, no de una sesión.
	ownerScope, err := domain.NewScope(store.TenantID)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.GetByIDs(ownerScope, store.SelectedProductIDs)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		out.SelectedProducts = append(out.SelectedProducts, dto.PublicStoreProduct{
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price.StringFixed(2),
			ImageURL:    p.ImageURL,
		})
	}
	return out, nil
}

// RegisterVisit registra una visita anónima: una fila por (vitrina, sesión),
// actualizada en el lugar. Vitrina inactiva o inexistente -> ErrNotFound
// uniforme; la sesión no puede enumerar vitrinas ni inflar el almacenamiento.
func (uc *UseCase) RegisterVisit(slugValue, sessionID string) error {
	if sessionID == "" {
		return domain.ErrInvalidInput
	}
	store, err := uc.storeRepo.GetActiveBySlug(slugValue)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.ErrNotFound
	}
	return uc.analyticsRepo.Upsert(store.ID, sessionID)
}

func toStoreResponse(s *entity.PublicStore) *dto.StoreResponse {
	if s == nil {
		return nil
	}
	ids := s.SelectedProductIDs
	if ids == nil {
		ids = []string{}
	}
	return &dto.StoreResponse{
		ID:                 s.ID,
		Slug:               s.Slug,
		Title:              s.Title,
		Description:        s.Description,
		WhatsappMessage:    s.WhatsappMessage,
		Phone:              s.Phone,
		BackgroundColor:    s.BackgroundColor,
		LogoURL:            s.LogoURL,
		SelectedProductIDs: ids,
		IsActive:           s.IsActive,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}
