package subscription

import (
	"time"

	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
)

// Feature identifica una función de la aplicación sujeta a gating por plan.
type Feature string

// Features starter: disponibles con cualquier plan mientras la suscripción esté activa.
// Features premium: requieren plan premium (o trial vigente) además de estar activa.
const (
	FeatureProducts  Feature = "products"
	FeatureSuppliers Feature = "suppliers"
	FeatureMovements Feature = "movements"
	FeatureReports   Feature = "reports"

	FeatureCustomers    Feature = "customers"
	FeatureStorefront   Feature = "storefront"
	FeatureCampaigns    Feature = "campaigns"
	FeatureInstallments Feature = "installments"
)

// premiumFeatures son las que exigen plan premium efectivo.
var premiumFeatures = map[Feature]bool{
	FeatureCustomers:    true,
	FeatureStorefront:   true,
	FeatureCampaigns:    true,
	FeatureInstallments: true,
}

// Fields son los campos de facturación almacenados a partir de los cuales se
// deriva el entitlement. Pueden venir del registro del tenant o del snapshot
// cacheado en la sesión; la derivación es idéntica en ambos casos.
type Fields struct {
	Plan             string
	Status           string
	TrialEndsAt      *time.Time
	CurrentPeriodEnd *time.Time
}

// FieldsFromTenant extrae los campos de facturación del registro del tenant.
func FieldsFromTenant(t *entity.Tenant) Fields {
	return Fields{
		Plan:             t.Plan,
		Status:           t.SubscriptionStatus,
		TrialEndsAt:      t.TrialEndsAt,
		CurrentPeriodEnd: t.CurrentPeriodEnd,
	}
}

// Entitlement es la vista autoritativa derivada del acceso de un tenant:
// plan efectivo x estado efectivo. Es un valor puro, sin efectos.
type Entitlement struct {
	Plan            string // plan efectivo (trial vigente cuenta como premium)
	Status          string // estado efectivo; un trial vencido degrada a "expired"
	IsActive        bool
	DaysLeftInTrial int // solo significativo en trialing; 0 en el resto
}

// Derive calcula el entitlement efectivo a partir de los campos almacenados.
// Función pura: no toca almacenamiento ni al proveedor de pagos, por lo que el
// gating de lectura nunca depende de la disponibilidad del proveedor.
//
// Reglas:
//  1. active con CurrentPeriodEnd futuro -> activo.
//  2. trialing: días restantes = ceil((TrialEndsAt - now) / 24h), acotado a >= 0.
//     Trial vencido degrada el estado efectivo a "expired" en lectura; el campo
//     almacenado se corrige perezosamente en la siguiente escritura.
//  3. past_due, canceled, incomplete o vacío -> inactivo.
func Derive(f Fields, now time.Time) Entitlement {
	ent := Entitlement{Plan: f.Plan, Status: f.Status}

	switch f.Status {
	case entity.StatusActive:
		ent.IsActive = f.CurrentPeriodEnd != nil && f.CurrentPeriodEnd.After(now)
	case entity.StatusTrialing:
		ent.DaysLeftInTrial = daysLeft(f.TrialEndsAt, now)
		if f.TrialEndsAt != nil && f.TrialEndsAt.After(now) {
			ent.IsActive = true
			// El trial otorga acceso completo: plan efectivo premium si no hay plan elegido.
			if ent.Plan == "" {
				ent.Plan = entity.PlanPremium
			}
		} else {
			ent.Status = entity.StatusExpired
		}
	}

	return ent
}

// CanUse informa si el entitlement habilita la feature.
// Premium: requiere plan efectivo premium Y suscripción activa.
// Starter: solo requiere suscripción activa.
func (e Entitlement) CanUse(f Feature) bool {
	if !e.IsActive {
		return false
	}
	if premiumFeatures[f] {
		return e.Plan == entity.PlanPremium
	}
	return true
}

// daysLeft calcula los días restantes de trial con redondeo hacia arriba,
// acotado a >= 0. Un trial que vence "ahora mismo" reporta 0.
func daysLeft(trialEndsAt *time.Time, now time.Time) int {
	if trialEndsAt == nil || !trialEndsAt.After(now) {
		return 0
	}
	remaining := trialEndsAt.Sub(now)
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) != 0 {
		days++
	}
	return days
}
