package entity

import "time"

// Planes disponibles.
const (
	PlanStarter = "starter"
	PlanPremium = "premium"
)

// Estados de suscripción tal como los reporta el proveedor de pagos.
// StatusExpired es un estado EFECTIVO derivado en lectura (trial vencido);
// el campo almacenado se corrige de forma perezosa en la siguiente escritura.
const (
	StatusTrialing   = "trialing"
	StatusActive     = "active"
	StatusPastDue    = "past_due"
	StatusCanceled   = "canceled"
	StatusIncomplete = "incomplete"
	StatusExpired    = "expired"
)

// TrialDays duración del período de prueba otorgado en el registro.
const TrialDays = 7

// Tenant representa la cuenta de un comerciante: la unidad de aislamiento de datos.
// Los campos de facturación (Plan, SubscriptionStatus, CurrentPeriodEnd,
// BillingEventSeq) los escribe únicamente el motor de entitlement.
type Tenant struct {
	ID                 string
	Email              string
	PasswordHash       string // bcrypt hash, nunca plano en dominio después de persistir
	Name               string
	Plan               string     // starter, premium o vacío
	SubscriptionStatus string     // ver constantes Status*
	TrialEndsAt        *time.Time // nil = sin trial
	CurrentPeriodEnd   *time.Time // nil = sin período pagado vigente
	BillingCustomerRef *string    // id del customer en el proveedor de pagos
	BillingEventSeq    int64      // última secuencia de evento aplicada (orden del proveedor)
	TutorialCompleted  bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
