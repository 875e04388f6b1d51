package devserver

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload), "body: %s", raw)
	return resp.StatusCode, payload
}

func TestValidateLicense(t *testing.T) {
	_, app := New()

	t.Run("known tier validates", func(t *testing.T) {
		status, payload := doJSON(t, app, http.MethodPost, "/api/v1/license/validate",
			`{"key":"AEGIS-GAMER-2024-ABCDEF123456"}`)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, payload["valid"])
		assert.Equal(t, "gamer", payload["tier"])
		assert.Equal(t, float64(99), payload["price"])
	})

	t.Run("unknown key rejected", func(t *testing.T) {
		status, payload := doJSON(t, app, http.MethodPost, "/api/v1/license/validate",
			`{"key":"NOT-A-KEY"}`)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, false, payload["valid"])
		assert.Equal(t, "Invalid key", payload["error"])
	})

	t.Run("missing key rejected", func(t *testing.T) {
		status, payload := doJSON(t, app, http.MethodPost, "/api/v1/license/validate", `{}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "No license key", payload["error"])
	})
}

func TestTierEndpoints(t *testing.T) {
	_, app := New()

	status, payload := doJSON(t, app, http.MethodGet, "/api/v1/tiers", "")
	assert.Equal(t, http.StatusOK, status)
	tiers, ok := payload["tiers"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, tiers, "freemium")
	assert.Contains(t, tiers, "server")

	status, payload = doJSON(t, app, http.MethodGet, "/api/v1/tier/basic", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "basic", payload["tier"])
	assert.Equal(t, float64(49), payload["price"])

	status, payload = doJSON(t, app, http.MethodGet, "/api/v1/tier/platinum", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Tier not found", payload["error"])
}

func TestPaymentFlow(t *testing.T) {
	_, app := New()

	status, payload := doJSON(t, app, http.MethodPost, "/api/v1/payment/initiate",
		`{"tier":"ai-dev","email":"dev@example.com"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready_for_payment", payload["status"])
	assert.Equal(t, float64(149), payload["amount"])

	status, payload = doJSON(t, app, http.MethodPost, "/api/v1/payment/verify",
		`{"transaction_id":"tx-123","tier":"ai-dev"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, payload["verified"])
	key, _ := payload["license_key"].(string)
	assert.True(t, strings.HasPrefix(key, "AEGIS-AI-DEV-2024-"), "got %q", key)

	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/payment/initiate",
		`{"tier":"platinum","email":"dev@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAccountLifecycle(t *testing.T) {
	_, app := New()

	status, payload := doJSON(t, app, http.MethodPost, "/api/v1/auth/register",
		`{"email":"dev@example.com","password":"hunter22"}`)
	require.Equal(t, http.StatusCreated, status)
	userID, _ := payload["user_id"].(string)
	require.NotEmpty(t, userID)
	assert.NotEmpty(t, payload["token"])

	status, payload = doJSON(t, app, http.MethodPost, "/api/v1/auth/login",
		`{"email":"dev@example.com","password":"hunter22"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, userID, payload["user_id"])
	assert.Equal(t, false, payload["two_fa_required"])

	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/login",
		`{"email":"dev@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, status)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/profile", nil)
	req.Header.Set("X-User-ID", userID)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var profile map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
	assert.Equal(t, "dev@example.com", profile["email"])
	assert.Equal(t, "user", profile["role"])

	req = httptest.NewRequest(http.MethodPost, "/api/v1/user/2fa/enable", nil)
	req.Header.Set("X-User-ID", userID)
	resp, err = app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	status, payload = doJSON(t, app, http.MethodPost, "/api/v1/auth/login",
		`{"email":"dev@example.com","password":"hunter22"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, payload["two_fa_required"])
}

func TestWebhookLifecycle(t *testing.T) {
	_, app := New()

	status, payload := doJSON(t, app, http.MethodPost, "/api/v1/webhooks/register",
		`{"url":"https://cb.example.com","events":["license.validated"]}`)
	require.Equal(t, http.StatusCreated, status)
	webhookID, _ := payload["webhook_id"].(string)
	require.NotEmpty(t, webhookID)
	assert.Equal(t, "active", payload["status"])

	status, payload = doJSON(t, app, http.MethodGet, "/api/v1/webhooks", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), payload["total"])

	status, payload = doJSON(t, app, http.MethodDelete, "/api/v1/webhooks/"+webhookID, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "deleted", payload["status"])

	status, _ = doJSON(t, app, http.MethodDelete, "/api/v1/webhooks/"+webhookID, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAuditLogLimit(t *testing.T) {
	_, app := New()

	for i := 0; i < 5; i++ {
		doJSON(t, app, http.MethodPost, "/api/v1/license/validate",
			`{"key":"AEGIS-BASIC-2024-ABCDEF123456"}`)
	}

	status, payload := doJSON(t, app, http.MethodGet, "/api/v1/analytics/audit?limit=2", "")
	assert.Equal(t, http.StatusOK, status)
	entries, ok := payload["audit_log"].([]any)
	require.True(t, ok)
	assert.Len(t, entries, 2)
	assert.Equal(t, float64(5), payload["total"])
}

func TestSystemEndpoints(t *testing.T) {
	_, app := New()

	status, payload := doJSON(t, app, http.MethodGet, "/api/v1/system/status", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "operational", payload["status"])
	editions, ok := payload["editions"].([]any)
	require.True(t, ok)
	assert.Len(t, editions, 5)

	status, payload = doJSON(t, app, http.MethodGet, "/api/v1/system/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", payload["status"])

	status, payload = doJSON(t, app, http.MethodGet, "/api/v1/security/check", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, payload["system_secure"])

	status, payload = doJSON(t, app, http.MethodGet, "/api/v1/rate-limit/status", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1000), payload["limit"])
}
