package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Vitrina-api/internal/application/dto"
	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
	"github.com/jhoicas/Vitrina-api/internal/domain/repository"
	"github.com/jhoicas/Vitrina-api/internal/domain/subscription"
	"github.com/jhoicas/Vitrina-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	tenantRepo repository.TenantRepository
	jwtCfg     JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(tenantRepo repository.TenantRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{tenantRepo: tenantRepo, jwtCfg: jwtCfg}
}

// Register crea la cuenta del comerciante: hashea password con bcrypt, inicia el
// trial de 7 días y persiste. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.TenantResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.tenantRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = email
	}
	tenant := &entity.Tenant{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	subscription.StartTrial(tenant, now)
	if err := uc.tenantRepo.Create(tenant); err != nil {
		return nil, err
	}
	return toTenantResponse(tenant), nil
}

// Login verifica email/password, genera JWT con el snapshot de entitlement y
// retorna token + cuenta.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	tenant, err := uc.tenantRepo.GetByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrTenantNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(tenant.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, tenant.ID, SnapshotFor(tenant), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:  token,
		Tenant: *toTenantResponse(tenant),
	}, nil
}

// SnapshotFor arma el snapshot de entitlement que viaja en el token.
func SnapshotFor(t *entity.Tenant) jwt.Snapshot {
	snap := jwt.Snapshot{
		Plan:              t.Plan,
		Status:            t.SubscriptionStatus,
		TutorialCompleted: t.TutorialCompleted,
	}
	if t.TrialEndsAt != nil {
		snap.TrialEndsAt = t.TrialEndsAt.Unix()
	}
	if t.CurrentPeriodEnd != nil {
		snap.CurrentPeriodEnd = t.CurrentPeriodEnd.Unix()
	}
	return snap
}

func toTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	if t == nil {
		return nil
	}
	return &dto.TenantResponse{
		ID:                 t.ID,
		Email:              t.Email,
		Name:               t.Name,
		Plan:               t.Plan,
		SubscriptionStatus: t.SubscriptionStatus,
		TrialEndsAt:        t.TrialEndsAt,
		TutorialCompleted:  t.TutorialCompleted,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}
