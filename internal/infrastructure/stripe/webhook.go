package stripe

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"

	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
	"github.com/jhoicas/Vitrina-api/internal/domain/subscription"
)

// Eventos de Stripe que cambian el estado de suscripción del tenant.
const (
	eventSubscriptionCreated = "customer.subscription.created"
	eventSubscriptionUpdated = "customer.subscription.updated"
	eventSubscriptionDeleted = "customer.subscription.deleted"
)

// WebhookParser verifica la firma de los webhooks de Stripe y los traduce a
// eventos de dominio secuenciados.
type WebhookParser struct {
	cfg parserConfig
}

type parserConfig struct {
	webhookSecret string
	priceStarter  string
	pricePremium  string
}

// NewWebhookParser construye el verificador de webhooks.
func NewWebhookParser(webhookSecret, priceStarter, pricePremium string) *WebhookParser {
	return &WebhookParser{cfg: parserConfig{
		webhookSecret: webhookSecret,
		priceStarter:  priceStarter,
		pricePremium:  pricePremium,
	}}
}

// Parse verifica la firma del payload y, si el evento es de suscripción,
// devuelve el BillingEvent correspondiente. Eventos de otro tipo devuelven
// (nil, nil): se confirman al proveedor sin procesarlos para evitar reintentos.
// Una firma inválida devuelve ErrUnauthorized.
func (p *WebhookParser) Parse(payload []byte, signature string) (*subscription.BillingEvent, error) {
	event, err := webhook.ConstructEventWithOptions(
		payload,
		signature,
		p.cfg.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	switch event.Type {
	case eventSubscriptionCreated, eventSubscriptionUpdated, eventSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("%w: payload de suscripción inválido", domain.ErrInvalidInput)
		}
		return p.toBillingEvent(&event, &sub)
	default:
		return nil, nil
	}
}

// toBillingEvent traduce la suscripción de Stripe al evento de dominio.
// EventSequence es el timestamp de creación del evento: es el campo de orden
// del proveedor, no el orden de llegada.
func (p *WebhookParser) toBillingEvent(event *stripe.Event, sub *stripe.Subscription) (*subscription.BillingEvent, error) {
	if sub.Customer == nil || sub.Customer.ID == "" {
		return nil, fmt.Errorf("%w: suscripción sin customer", domain.ErrInvalidInput)
	}
	ev := &subscription.BillingEvent{
		CustomerRef:   sub.Customer.ID,
		Status:        normalizeStatus(string(event.Type), sub.Status),
		Plan:          p.planForPrice(sub),
		EventSequence: event.Created,
	}
	if sub.CurrentPeriodEnd > 0 {
		t := timeFromUnix(sub.CurrentPeriodEnd)
		ev.CurrentPeriodEnd = &t
	}
	return ev, nil
}

// normalizeStatus colapsa la taxonomía de estados de Stripe a las constantes
// del dominio. Un deleted siempre termina en canceled, diga lo que diga el
// campo status del payload.
func normalizeStatus(eventType string, status stripe.SubscriptionStatus) string {
	if eventType == eventSubscriptionDeleted {
		return entity.StatusCanceled
	}
	switch status {
	case stripe.SubscriptionStatusActive:
		return entity.StatusActive
	case stripe.SubscriptionStatusTrialing:
		return entity.StatusTrialing
	case stripe.SubscriptionStatusPastDue, stripe.SubscriptionStatusUnpaid:
		return entity.StatusPastDue
	case stripe.SubscriptionStatusCanceled, stripe.SubscriptionStatusIncompleteExpired:
		return entity.StatusCanceled
	case stripe.SubscriptionStatusIncomplete:
		return entity.StatusIncomplete
	default:
		return entity.StatusIncomplete
	}
}

func timeFromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

func (p *WebhookParser) planForPrice(sub *stripe.Subscription) string {
	if sub.Items == nil || len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil {
		return ""
	}
	switch sub.Items.Data[0].Price.ID {
	case p.cfg.priceStarter:
		return entity.PlanStarter
	case p.cfg.pricePremium:
		return entity.PlanPremium
	default:
		return ""
	}
}
