package entity

import "time"

// PublicStore representa la vitrina pública del tenant (plan premium).
// Una vez activa es legible por visitantes anónimos, pero solo a través de su
// slug inmutable y globalmente único, nunca por el id del registro.
type PublicStore struct {
	ID                 string
	TenantID           string
	Slug               string // único global, inmutable después de creado
	Title              string
	Description        string
	WhatsappMessage    string
	Phone              string
	BackgroundColor    string
	LogoURL            string
	SelectedProductIDs []string // subconjunto curado de productos a exhibir
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// StoreAnalytics acumula visitas anónimas a una vitrina: una fila por
// (store, sesión anónima), actualizada en el lugar para acotar el crecimiento.
// No lleva tenant_id propio: su pertenencia es transitiva vía la vitrina.
type StoreAnalytics struct {
	ID           string
	StoreID      string
	SessionID    string
	Visits       int
	FirstVisitAt time.Time
	LastVisitAt  time.Time
}
