package dto

import "time"

// RegisterRequest alta de cuenta (merchant).
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TenantResponse datos públicos de la cuenta.
type TenantResponse struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	Plan               string     `json:"plan,omitempty"`
	SubscriptionStatus string     `json:"subscription_status,omitempty"`
	TrialEndsAt        *time.Time `json:"trial_ends_at,omitempty"`
	TutorialCompleted  bool       `json:"tutorial_completed"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// LoginResponse token + cuenta.
type LoginResponse struct {
	Token  string         `json:"token"`
	Tenant TenantResponse `json:"tenant"`
}

// EntitlementResponse vista derivada del acceso vigente.
type EntitlementResponse struct {
	Plan            string `json:"plan,omitempty"`
	Status          string `json:"status,omitempty"`
	IsActive        bool   `json:"is_active"`
	DaysLeftInTrial int    `json:"days_left_in_trial"`
}

// TutorialRequest toggle de tutorial completado.
type TutorialRequest struct {
	Completed bool `json:"completed"`
}
