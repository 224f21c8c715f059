package subscription_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
	"github.com/jhoicas/Vitrina-api/internal/domain/subscription"
)

// ──────────────────────────────────────────────────────────────────────────────
// Derive — derivación pura del entitlement efectivo
// ──────────────────────────────────────────────────────────────────────────────

func ptrTime(t time.Time) *time.Time { return &t }

// Un registro recién creado queda en trialing con 7 días: activo y con acceso completo.
func TestDerive_RegistroNuevo_TrialCompleto(t *testing.T) {
	now := time.Now()
	tenant := &entity.Tenant{ID: "t1", Email: "ana@example.com"}
	subscription.StartTrial(tenant, now)

	ent := subscription.Derive(subscription.FieldsFromTenant(tenant), now)

	assert.True(t, ent.IsActive, "el trial recién iniciado debe estar activo")
	assert.Equal(t, 7, ent.DaysLeftInTrial, "deben quedar 7 días de trial")
	assert.Equal(t, entity.StatusTrialing, ent.Status)
	assert.Equal(t, entity.PlanPremium, ent.Plan,
		"el trial otorga acceso completo: plan efectivo premium")
}

// Frontera del trial: vencido hace 1 segundo -> inactivo, 0 días, estado efectivo expired.
func TestDerive_TrialVencidoHaceUnSegundo_Inactivo(t *testing.T) {
	now := time.Now()
	f := subscription.Fields{
		Status:      entity.StatusTrialing,
		TrialEndsAt: ptrTime(now.Add(-1 * time.Second)),
	}

	ent := subscription.Derive(f, now)

	assert.False(t, ent.IsActive, "trial vencido no puede estar activo")
	assert.Equal(t, 0, ent.DaysLeftInTrial)
	assert.Equal(t, entity.StatusExpired, ent.Status,
		"en lectura el trial vencido degrada a expired aunque el campo almacenado diga trialing")
}

// El redondeo de días es hacia arriba: 1 segundo restante cuenta como 1 día.
func TestDerive_DiasRestantes_RedondeoHaciaArriba(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name     string
		endsIn   time.Duration
		expected int
	}{
		{"un segundo restante", time.Second, 1},
		{"medio día restante", 12 * time.Hour, 1},
		{"un día y un minuto", 24*time.Hour + time.Minute, 2},
		{"exactamente 24h", 24 * time.Hour, 1},
		{"siete días", 7 * 24 * time.Hour, 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := subscription.Fields{
				Status:      entity.StatusTrialing,
				TrialEndsAt: ptrTime(now.Add(tc.endsIn)),
			}
			ent := subscription.Derive(f, now)
			assert.Equal(t, tc.expected, ent.DaysLeftInTrial)
			assert.True(t, ent.IsActive)
		})
	}
}

// Suscripción active con período vigente -> activo; con período vencido -> inactivo.
func TestDerive_Active_DependeDelPeriodo(t *testing.T) {
	now := time.Now()

	vigente := subscription.Derive(subscription.Fields{
		Plan:             entity.PlanPremium,
		Status:           entity.StatusActive,
		CurrentPeriodEnd: ptrTime(now.Add(30 * 24 * time.Hour)),
	}, now)
	assert.True(t, vigente.IsActive)

	vencida := subscription.Derive(subscription.Fields{
		Plan:             entity.PlanPremium,
		Status:           entity.StatusActive,
		CurrentPeriodEnd: ptrTime(now.Add(-time.Hour)),
	}, now)
	assert.False(t, vencida.IsActive, "período vencido no da acceso aunque el estado diga active")

	sinPeriodo := subscription.Derive(subscription.Fields{
		Plan:   entity.PlanPremium,
		Status: entity.StatusActive,
	}, now)
	assert.False(t, sinPeriodo.IsActive, "active sin CurrentPeriodEnd no da acceso")
}

// past_due, canceled, incomplete y vacío siempre derivan inactivo.
func TestDerive_EstadosInactivos(t *testing.T) {
	now := time.Now()
	for _, status := range []string{entity.StatusPastDue, entity.StatusCanceled, entity.StatusIncomplete, ""} {
		ent := subscription.Derive(subscription.Fields{
			Plan:             entity.PlanPremium,
			Status:           status,
			CurrentPeriodEnd: ptrTime(now.Add(time.Hour)),
		}, now)
		assert.False(t, ent.IsActive, "estado %q debe derivar inactivo", status)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CanUse — gating por plan
// ──────────────────────────────────────────────────────────────────────────────

// Starter activo: features starter sí, features premium no.
func TestCanUse_StarterActivo_PremiumDenegado(t *testing.T) {
	now := time.Now()
	ent := subscription.Derive(subscription.Fields{
		Plan:             entity.PlanStarter,
		Status:           entity.StatusActive,
		CurrentPeriodEnd: ptrTime(now.Add(time.Hour)),
	}, now)

	assert.True(t, ent.CanUse(subscription.FeatureProducts))
	assert.True(t, ent.CanUse(subscription.FeatureSuppliers))
	assert.True(t, ent.CanUse(subscription.FeatureMovements))
	assert.True(t, ent.CanUse(subscription.FeatureReports))

	assert.False(t, ent.CanUse(subscription.FeatureCustomers),
		"la gestión de clientes es premium")
	assert.False(t, ent.CanUse(subscription.FeatureStorefront))
	assert.False(t, ent.CanUse(subscription.FeatureCampaigns))
	assert.False(t, ent.CanUse(subscription.FeatureInstallments))
}

// Premium activo habilita todo; premium inactivo no habilita nada.
func TestCanUse_Premium(t *testing.T) {
	now := time.Now()
	activo := subscription.Derive(subscription.Fields{
		Plan:             entity.PlanPremium,
		Status:           entity.StatusActive,
		CurrentPeriodEnd: ptrTime(now.Add(time.Hour)),
	}, now)
	for _, f := range []subscription.Feature{
		subscription.FeatureProducts, subscription.FeatureCustomers,
		subscription.FeatureStorefront, subscription.FeatureCampaigns,
		subscription.FeatureInstallments, subscription.FeatureReports,
	} {
		assert.True(t, activo.CanUse(f), "premium activo debe habilitar %s", f)
	}

	inactivo := subscription.Derive(subscription.Fields{
		Plan:   entity.PlanPremium,
		Status: entity.StatusCanceled,
	}, now)
	for _, f := range []subscription.Feature{
		subscription.FeatureProducts, subscription.FeatureCustomers,
	} {
		assert.False(t, inactivo.CanUse(f), "suscripción cancelada no habilita %s", f)
	}
}

// Trial vigente habilita también las features premium (acceso completo).
func TestCanUse_TrialVigente_AccesoCompleto(t *testing.T) {
	now := time.Now()
	ent := subscription.Derive(subscription.Fields{
		Status:      entity.StatusTrialing,
		TrialEndsAt: ptrTime(now.Add(3 * 24 * time.Hour)),
	}, now)

	assert.True(t, ent.CanUse(subscription.FeatureCustomers))
	assert.True(t, ent.CanUse(subscription.FeatureStorefront))
	assert.True(t, ent.CanUse(subscription.FeatureProducts))
}
