package dto

import "time"

// UpsertStoreRequest crea o actualiza la vitrina del tenant (premium).
// El slug se deriva del título en la creación y es inmutable después.
type UpsertStoreRequest struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	WhatsappMessage    string   `json:"whatsapp_message"`
	Phone              string   `json:"phone"`
	BackgroundColor    string   `json:"background_color"`
	LogoURL            string   `json:"logo_url"`
	SelectedProductIDs []string `json:"selected_product_ids"`
	IsActive           *bool    `json:"is_active"`
}

// StoreResponse vista del dueño de la vitrina.
type StoreResponse struct {
	ID                 string    `json:"id"`
	Slug               string    `json:"slug"`
	Title              string    `json:"title"`
	Description        string    `json:"description,omitempty"`
	WhatsappMessage    string    `json:"whatsapp_message,omitempty"`
	Phone              string    `json:"phone,omitempty"`
	BackgroundColor    string    `json:"background_color,omitempty"`
	LogoURL            string    `json:"logo_url,omitempty"`
	SelectedProductIDs []string  `json:"selected_product_ids"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// PublicStoreResponse vista anónima de la vitrina (solo si está activa).
// No expone ids internos del tenant: los productos van resueltos en línea.
type PublicStoreResponse struct {
	Title            string               `json:"title"`
	Description      string               `json:"description,omitempty"`
	WhatsappMessage  string               `json:"whatsapp_message,omitempty"`
	Phone            string               `json:"phone,omitempty"`
	BackgroundColor  string               `json:"background_color,omitempty"`
	LogoURL          string               `json:"logo_url,omitempty"`
	SelectedProducts []PublicStoreProduct `json:"selected_products"`
}

// PublicStoreProduct producto exhibido en la vitrina pública.
type PublicStoreProduct struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	ImageURL    string `json:"image_url,omitempty"`
}

// RegisterVisitRequest visita anónima a una vitrina. El session_id lo genera
// el cliente y agrupa las visitas repetidas de la misma sesión.
type RegisterVisitRequest struct {
	SessionID string `json:"session_id"`
}

// StoreStatsResponse visitas acumuladas de la vitrina (vista del dueño).
type StoreStatsResponse struct {
	TotalVisits int `json:"total_visits"`
}
