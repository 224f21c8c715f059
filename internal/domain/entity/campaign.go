package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Campaign representa una campaña de descuento del tenant (plan premium).
type Campaign struct {
	ID              string
	TenantID        string
	Name            string
	Description     string
	DiscountPercent decimal.Decimal // 0..100
	StartsAt        time.Time
	EndsAt          time.Time
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
