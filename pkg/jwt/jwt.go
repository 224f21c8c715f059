package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Snapshot es la copia cacheada de la facturación del tenant que viaja en el token.
// Se usa para el gating de features sin consultar la DB en cada petición; se
// refresca al re-emitir el token (login) o al recibir un evento de facturación.
// Nunca es fuente en tiempo real: la DB manda.
type Snapshot struct {
	Plan              string `json:"plan"`                // "starter" | "premium" | ""
	Status            string `json:"status"`              // "trialing" | "active" | "past_due" | "canceled" | "incomplete" | ""
	TrialEndsAt       int64  `json:"trial_ends_at"`       // unix, 0 = sin trial
	CurrentPeriodEnd  int64  `json:"current_period_end"`  // unix, 0 = sin período vigente
	TutorialCompleted bool   `json:"tutorial_completed"`
}

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Se añade el Snapshot de entitlement para que el middleware pueda tomar
// decisiones de gating sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	TenantID string   `json:"tenant_id"`
	Snapshot Snapshot `json:"entitlement"`
}

// Generate genera un token JWT firmado que incluye tenantID y el snapshot de entitlement.
func Generate(secret, tenantID string, snap Snapshot, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   tenantID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		TenantID: tenantID,
		Snapshot: snap,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve tenantID y el snapshot de entitlement.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (tenantID string, snap Snapshot, err error) {
	if secret == "" {
		return "", Snapshot{}, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", Snapshot{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", Snapshot{}, fmt.Errorf("claims inválidos")
	}
	return claims.TenantID, claims.Snapshot, nil
}
