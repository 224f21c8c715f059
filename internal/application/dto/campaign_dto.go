package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCampaignRequest alta de campaña de descuento (premium).
type CreateCampaignRequest struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	StartsAt        time.Time       `json:"starts_at"`
	EndsAt          time.Time       `json:"ends_at"`
}

// UpdateCampaignRequest actualización parcial de campaña.
type UpdateCampaignRequest struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	StartsAt        *time.Time       `json:"starts_at"`
	EndsAt          *time.Time       `json:"ends_at"`
	Active          *bool            `json:"active"`
}

// CampaignResponse representación de salida de una campaña.
type CampaignResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	StartsAt        time.Time       `json:"starts_at"`
	EndsAt          time.Time       `json:"ends_at"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CampaignListResponse listado paginado de campañas.
type CampaignListResponse struct {
	Items []CampaignResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
