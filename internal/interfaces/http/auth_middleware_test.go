package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/Vitrina-api/internal/interfaces/http"
	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
	"github.com/jhoicas/Vitrina-api/internal/domain/subscription"
	pkgjwt "github.com/jhoicas/Vitrina-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testTenantID  = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "vitrina-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireFeature para el gating por plan
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(feature subscription.Feature) *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	// Ruta protegida: JWT + gating por feature
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireFeature(feature),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":        true,
				"tenant_id": apphttp.GetTenantID(c),
			})
		},
	)
	return app
}

// tokenForSnapshot genera un JWT con el snapshot de entitlement indicado.
func tokenForSnapshot(t *testing.T, snap pkgjwt.Snapshot) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testTenantID, snap, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func activeSnapshot(plan string) pkgjwt.Snapshot {
	return pkgjwt.Snapshot{
		Plan:             plan,
		Status:           entity.StatusActive,
		CurrentPeriodEnd: time.Now().Add(30 * 24 * time.Hour).Unix(),
	}
}

func trialSnapshot(endsAt time.Time) pkgjwt.Snapshot {
	return pkgjwt.Snapshot{
		Status:      entity.StatusTrialing,
		TrialEndsAt: endsAt.Unix(),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: sin header Authorization → 401.
func TestAuthMiddleware_SinToken(t *testing.T) {
	app := buildTestApp(subscription.FeatureProducts)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

// Caso 2: token firmado con otro secret → 401.
func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	app := buildTestApp(subscription.FeatureProducts)
	tok, err := pkgjwt.Generate("otro-secret", testTenantID, activeSnapshot(entity.PlanStarter), testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 3: token válido carga el tenant_id en locals.
func TestAuthMiddleware_TokenValidoCargaTenant(t *testing.T) {
	app := buildTestApp(subscription.FeatureProducts)
	resp := doRequest(t, app, tokenForSnapshot(t, activeSnapshot(entity.PlanStarter)))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testTenantID, body["tenant_id"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireFeature
// ──────────────────────────────────────────────────────────────────────────────

// Caso 4: starter activo accede a feature starter → 200.
func TestRequireFeature_StarterAccedeFeatureStarter(t *testing.T) {
	app := buildTestApp(subscription.FeatureProducts)
	resp := doRequest(t, app, tokenForSnapshot(t, activeSnapshot(entity.PlanStarter)))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"plan starter activo debe acceder a productos")
}

// Caso 5: starter activo bloqueado en feature premium → 402 con invitación
// a mejorar el plan.
func TestRequireFeature_StarterBloqueadoEnPremium(t *testing.T) {
	app := buildTestApp(subscription.FeatureStorefront)
	resp := doRequest(t, app, tokenForSnapshot(t, activeSnapshot(entity.PlanStarter)))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode,
		"feature premium con plan starter debe responder 402")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UPGRADE_REQUIRED")
}

// Caso 6: trial vigente equivale a premium: acceso completo.
func TestRequireFeature_TrialVigenteAccedePremium(t *testing.T) {
	app := buildTestApp(subscription.FeatureStorefront)
	snap := trialSnapshot(time.Now().Add(3 * 24 * time.Hour))
	resp := doRequest(t, app, tokenForSnapshot(t, snap))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"trial vigente debe dar acceso a features premium")
}

// Caso 7: trial vencido bloquea hasta las features starter → 402.
func TestRequireFeature_TrialVencidoBloqueado(t *testing.T) {
	app := buildTestApp(subscription.FeatureProducts)
	snap := trialSnapshot(time.Now().Add(-time.Hour))
	resp := doRequest(t, app, tokenForSnapshot(t, snap))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode,
		"trial vencido no debe acceder a ninguna feature con gating")
}

// Caso 8: suscripción cancelada bloqueada → 402.
func TestRequireFeature_CanceladoBloqueado(t *testing.T) {
	app := buildTestApp(subscription.FeatureProducts)
	snap := pkgjwt.Snapshot{Plan: entity.PlanPremium, Status: entity.StatusCanceled}
	resp := doRequest(t, app, tokenForSnapshot(t, snap))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
}

// Caso 9: premium activo accede a todo.
func TestRequireFeature_PremiumAccedeTodo(t *testing.T) {
	for _, feature := range []subscription.Feature{
		subscription.FeatureProducts,
		subscription.FeatureCustomers,
		subscription.FeatureStorefront,
		subscription.FeatureCampaigns,
		subscription.FeatureInstallments,
	} {
		app := buildTestApp(feature)
		resp := doRequest(t, app, tokenForSnapshot(t, activeSnapshot(entity.PlanPremium)))
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode,
			"premium activo debe acceder a %s", feature)
	}
}
