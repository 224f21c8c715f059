// Package stripe adapta el proveedor de suscripciones Stripe a los puertos de
// la aplicación. Las escrituras fallan CERRADO: cualquier error de la API se
// traduce a domain.ErrUpstreamUnavailable y la operación no continúa.
package stripe

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v75"
	portalsession "github.com/stripe/stripe-go/v75/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/customer"

	"github.com/jhoicas/Vitrina-api/internal/application/billing"
	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
	"github.com/jhoicas/Vitrina-api/pkg/config"
)

var _ billing.Provider = (*Provider)(nil)

// Provider implementación del puerto billing.Provider sobre la API de Stripe.
type Provider struct {
	cfg config.StripeConfig
	log zerolog.Logger
}

// NewProvider construye el adaptador y fija la clave global del SDK.
func NewProvider(cfg config.StripeConfig, log zerolog.Logger) *Provider {
	stripe.Key = cfg.SecretKey
	return &Provider{cfg: cfg, log: log}
}

// EnsureCustomer crea el customer en Stripe para el tenant. El tenant_id viaja
// en metadata para correlacionar eventos huérfanos durante soporte.
func (p *Provider) EnsureCustomer(ctx context.Context, tenantID, email string) (string, error) {
	cus, err := customer.New(&stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
		Email:  stripe.String(email),
		Metadata: map[string]string{
			"tenant_id": tenantID,
		},
	})
	if err != nil {
		p.log.Error().Err(err).Str("tenant_id", tenantID).Msg("Stripe: error creando customer")
		return "", domain.ErrUpstreamUnavailable
	}
	return cus.ID, nil
}

// CheckoutURL abre una sesión de checkout en modo suscripción para el plan dado.
func (p *Provider) CheckoutURL(ctx context.Context, customerRef, plan string) (string, error) {
	priceID, err := p.priceForPlan(plan)
	if err != nil {
		return "", err
	}
	sess, err := checkoutsession.New(&stripe.CheckoutSessionParams{
		Params:     stripe.Params{Context: ctx},
		SuccessURL: stripe.String(p.cfg.CheckoutURL),
		CancelURL:  stripe.String(p.cfg.CheckoutURL + "?canceled=1"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer:   stripe.String(customerRef),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},
	})
	if err != nil {
		p.log.Error().Err(err).Str("customer_ref", customerRef).Msg("Stripe: error creando sesión de checkout")
		return "", domain.ErrUpstreamUnavailable
	}
	return sess.URL, nil
}

// PortalURL abre una sesión del portal de autogestión de facturación.
func (p *Provider) PortalURL(ctx context.Context, customerRef string) (string, error) {
	sess, err := portalsession.New(&stripe.BillingPortalSessionParams{
		Params:    stripe.Params{Context: ctx},
		Customer:  stripe.String(customerRef),
		ReturnURL: stripe.String(p.cfg.PortalReturnURL),
	})
	if err != nil {
		p.log.Error().Err(err).Str("customer_ref", customerRef).Msg("Stripe: error creando sesión de portal")
		return "", domain.ErrUpstreamUnavailable
	}
	return sess.URL, nil
}

func (p *Provider) priceForPlan(plan string) (string, error) {
	switch plan {
	case entity.PlanStarter:
		return p.cfg.PriceStarter, nil
	case entity.PlanPremium:
		return p.cfg.PricePremium, nil
	default:
		return "", fmt.Errorf("%w: plan desconocido %q", domain.ErrInvalidInput, plan)
	}
}
